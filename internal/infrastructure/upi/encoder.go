package upi

import (
	"strings"
	"time"

	"github.com/darkbluein/locale-store-service/internal/domain"
)

const unavailableDisplay = "unavailable"

// Encoder turns a raw payment handle into its stored value and the masked
// display string shown to consumers.
type Encoder struct{}

func NewEncoder() *Encoder {
	return &Encoder{}
}

func (e *Encoder) Encode(raw string) domain.UPI {
	value := strings.ToLower(strings.TrimSpace(raw))

	return domain.UPI{
		Value:       value,
		Display:     mask(value),
		LastUpdated: time.Now(),
	}
}

// Unavailable is the overwrite-on-absence state applied when an edit
// supplies no payment handle.
func (e *Encoder) Unavailable() domain.UPI {
	return domain.UPI{
		Value:       "",
		Display:     unavailableDisplay,
		LastUpdated: time.Now(),
	}
}

func mask(value string) string {
	if value == "" {
		return unavailableDisplay
	}

	at := strings.Index(value, "@")
	if at <= 0 {
		return value
	}

	user := value[:at]
	if len(user) <= 2 {
		return value
	}

	return user[:2] + strings.Repeat("*", len(user)-2) + value[at:]
}
