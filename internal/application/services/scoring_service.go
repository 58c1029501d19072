package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/voyageai/recommender-backend/internal/domain/entities"
	"github.com/voyageai/recommender-backend/internal/domain/providers"
	"github.com/voyageai/recommender-backend/internal/infrastructure/observability"
	apperrors "github.com/voyageai/recommender-backend/pkg/errors"
)

// ScoringService invokes the opaque model on an aligned feature matrix and
// ranks candidates by the positive-class probability. Stateless: every call
// recomputes from its inputs.
type ScoringService struct {
	model   providers.Model
	metrics *observability.Metrics
}

// NewScoringService creates a scoring service. metrics may be nil.
func NewScoringService(model providers.Model, metrics *observability.Metrics) *ScoringService {
	return &ScoringService{
		model:   model,
		metrics: metrics,
	}
}

// ScoreAndRank scores every candidate, sorts descending by score with ties
// keeping input order, and truncates to topK. topK beyond the candidate
// count returns everything; an empty candidate list returns an empty result
// without calling the model.
func (s *ScoringService) ScoreAndRank(
	ctx context.Context,
	candidates []entities.Candidate,
	matrix *entities.FeatureMatrix,
	topK int,
) ([]entities.Recommendation, error) {
	if topK < 1 {
		return nil, apperrors.NewScoringInputError(fmt.Sprintf("top_k must be at least 1, got %d", topK))
	}
	if len(candidates) != matrix.RowCount() {
		return nil, apperrors.NewScoringInputError(
			fmt.Sprintf("candidate count %d does not match matrix rows %d", len(candidates), matrix.RowCount()))
	}

	if len(candidates) == 0 {
		return []entities.Recommendation{}, nil
	}

	start := time.Now()
	probs, err := s.model.PredictProba(ctx, matrix)
	if err != nil {
		return nil, err
	}
	if s.metrics != nil {
		observability.RecordPrediction(ctx, s.metrics, len(candidates), time.Since(start))
	}
	if len(probs) != len(candidates) {
		return nil, apperrors.NewModelInferenceError(
			fmt.Sprintf("model returned %d probability rows for %d candidates", len(probs), len(candidates)), nil)
	}

	scored := make([]entities.Candidate, len(candidates))
	copy(scored, candidates)
	for i, p := range probs {
		if len(p) < 2 {
			return nil, apperrors.NewModelInferenceError(
				fmt.Sprintf("model returned %d class probabilities for row %d, want 2", len(p), i), nil)
		}
		scored[i].Score = p[1]
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if topK > len(scored) {
		topK = len(scored)
	}

	recommendations := make([]entities.Recommendation, topK)
	for i, c := range scored[:topK] {
		recommendations[i] = entities.Recommendation{
			AttractionID:   c.AttractionID,
			Attraction:     c.Attraction,
			CityName:       c.CityName,
			Country:        c.Country,
			AttractionType: c.AttractionType,
			Score:          c.Score,
		}
	}

	return recommendations, nil
}
