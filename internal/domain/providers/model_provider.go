package providers

import (
	"context"

	"github.com/voyageai/recommender-backend/internal/domain/entities"
)

// Model is the opaque trained classifier. It is stateless and safe for
// concurrent use; scoring the same matrix twice yields identical output.
type Model interface {
	// PredictProba returns one probability vector per matrix row,
	// [P(negative), P(positive)]. Callers consume the positive column.
	PredictProba(ctx context.Context, matrix *entities.FeatureMatrix) ([][]float64, error)
}
