package background

import (
	"context"

	publisher "github.com/darkbluein/locale-store-service/internal/infrastructure/kafka"
)

type BackgroundTasks struct {
	Mirror *publisher.EventMirror
}

func NewBackgroundTasks(mirror *publisher.EventMirror) *BackgroundTasks {
	return &BackgroundTasks{
		Mirror: mirror,
	}
}

func (bt *BackgroundTasks) StartAll(ctx context.Context) {
	if bt.Mirror != nil {
		go bt.Mirror.Run(ctx)
	}
}
