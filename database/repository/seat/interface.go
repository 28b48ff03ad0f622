package seatRepo

import (
	"context"

	"deskhive/models"
)

// SeatRepository defines data access to the seats collection.
type SeatRepository interface {
	// Create inserts a new seat. Duplicate seat numbers return ErrDuplicateSeatNumber.
	Create(ctx context.Context, seat *models.Seat) error
	// GetByID retrieves a seat by its ID, nil when not found.
	GetByID(ctx context.Context, seatID string) (*models.Seat, error)
	// GetByIDs retrieves the seats with the given IDs.
	GetByIDs(ctx context.Context, seatIDs []string) ([]models.Seat, error)
	// List returns all seats ordered by seat number.
	List(ctx context.Context) ([]models.Seat, error)
	// Delete removes a seat by its ID.
	Delete(ctx context.Context, seatID string) error
	// EnsureIndexes creates the indexes the collection depends on.
	EnsureIndexes() error
}
