package domain

import (
	"time"

	"github.com/google/uuid"
)

// Stream names
const (
	StreamComplaintEscalation = "stream:complaint:escalation"
)

// EscalationEvent is published when several complaints of the same category
// pile up around one location.
type EscalationEvent struct {
	EventID          uuid.UUID `json:"event_id"`
	City             string    `json:"city"`
	Category         Category  `json:"category"`
	Authority        Authority `json:"authority"`
	Center           Point     `json:"center"`
	ComplaintIDs     []int64   `json:"complaint_ids"`
	Count            int       `json:"count"`
	MaxIntensity     int       `json:"max_intensity"`
	Tier             Tier      `json:"tier"`
	SuggestedActions []string  `json:"suggested_actions"`
	CreatedAt        time.Time `json:"created_at"`
}

// StreamMessage is one entry read from a Redis stream
type StreamMessage struct {
	ID   string
	Data string
}
