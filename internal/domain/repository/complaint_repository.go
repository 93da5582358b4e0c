package repository

import (
	"context"

	"github.com/complaint-map/internal/domain"
)

// ComplaintRepository is the append-only complaint store
type ComplaintRepository interface {
	// Initialize creates the schema if absent; safe to call on every start
	Initialize(ctx context.Context) error

	// Insert stores a new complaint and returns its id
	Insert(ctx context.Context, c domain.NewComplaint) (int64, error)

	// LoadAll returns every complaint ordered by timestamp
	LoadAll(ctx context.Context) ([]domain.Complaint, error)

	// Get returns one complaint or errors.ErrComplaintNotFound
	Get(ctx context.Context, id int64) (*domain.Complaint, error)

	// AddVote appends an upvote for the complaint and returns the new total
	AddVote(ctx context.Context, id int64) (int, error)
}
