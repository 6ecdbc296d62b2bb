package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/darkbluein/locale-store-service/internal/domain"
)

// SubscriptionHandler streams update-bus events over SSE, one stream per
// subscribed store identity. The bus contract applies: events published
// before the stream opened are never replayed.
type SubscriptionHandler struct {
	bus domain.UpdateBusPort
}

func NewSubscriptionHandler(bus domain.UpdateBusPort) *SubscriptionHandler {
	return &SubscriptionHandler{bus: bus}
}

func (h *SubscriptionHandler) StoreUpdates(w http.ResponseWriter, r *http.Request) {
	h.stream(w, r, domain.TopicStoreUpdate)
}

func (h *SubscriptionHandler) InventoryUpdates(w http.ResponseWriter, r *http.Request) {
	h.stream(w, r, domain.TopicInventoryUpdate)
}

func (h *SubscriptionHandler) stream(w http.ResponseWriter, r *http.Request, topic string) {
	targetID := chi.URLParam(r, "id")
	if targetID == "" {
		writeError(w, domain.ErrValidation)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, domain.ErrOperationFailed)
		return
	}

	events, cancel := h.bus.Subscribe(topic, targetID)
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			payload, err := json.Marshal(event.Payload)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Topic, payload)
			flusher.Flush()
		}
	}
}
