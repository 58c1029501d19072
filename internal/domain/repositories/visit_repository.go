package repositories

import (
	"context"

	"github.com/voyageai/recommender-backend/internal/domain/entities"
)

// VisitEventRepository defines the read-only boundary to the historical
// transaction log. Implementations return the flat joined table described by
// the data model; events whose dimension rows are missing are dropped by the
// inner join, never surfaced as partial rows.
type VisitEventRepository interface {
	// LoadEnriched returns all visit events joined with their user,
	// attraction, type and mode dimensions, ordered by TransactionID
	LoadEnriched(ctx context.Context) ([]entities.VisitEvent, error)
}
