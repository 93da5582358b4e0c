package repository

import (
	"context"

	"github.com/complaint-map/internal/domain"
)

// Notifier delivers escalation events to the responsible authority
type Notifier interface {
	NotifyEscalation(ctx context.Context, event domain.EscalationEvent) error
}
