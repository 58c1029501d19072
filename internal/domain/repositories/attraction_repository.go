package repositories

import (
	"context"

	"github.com/voyageai/recommender-backend/internal/domain/entities"
)

// AttractionRepository defines read access to the static attraction catalog,
// the universe of recommendable items
type AttractionRepository interface {
	// ListAll returns every known attraction with its descriptive
	// attributes, ordered by AttractionID
	ListAll(ctx context.Context) ([]entities.Attraction, error)
}
