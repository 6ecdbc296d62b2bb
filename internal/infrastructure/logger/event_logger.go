package logger

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// OperationFailedEvent keeps the specific cause of an error the client
// boundary deliberately swallows behind "cannot perform operation".
type OperationFailedEvent struct {
	ID        uint `gorm:"primaryKey"`
	RequestID string
	StoreID   string
	Operation string
	Cause     string
	Timestamp time.Time
}

type OperationEventLogger interface {
	LogOperationFailed(ctx context.Context, event OperationFailedEvent) error
}

type PGOperationEventLogger struct {
	db *gorm.DB
}

func NewPGOperationEventLogger(db *gorm.DB) *PGOperationEventLogger {
	db.AutoMigrate(&OperationFailedEvent{})
	return &PGOperationEventLogger{db: db}
}

func (l *PGOperationEventLogger) LogOperationFailed(ctx context.Context, event OperationFailedEvent) error {
	return l.db.WithContext(ctx).Create(&event).Error
}
