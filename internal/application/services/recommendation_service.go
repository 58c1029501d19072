package services

import (
	"context"

	"github.com/voyageai/recommender-backend/internal/domain/entities"
	apperrors "github.com/voyageai/recommender-backend/pkg/errors"
)

// RecommendationService is the caller-facing operation: it runs the feature
// pipeline and scoring end-to-end against the current snapshot
type RecommendationService struct {
	snapshots *SnapshotService
	features  *FeatureService
	scorer    *ScoringService
	schema    []string
}

// NewRecommendationService creates a recommendation service. schema is the
// training-time feature column list the model expects.
func NewRecommendationService(
	snapshots *SnapshotService,
	features *FeatureService,
	scorer *ScoringService,
	schema []string,
) *RecommendationService {
	return &RecommendationService{
		snapshots: snapshots,
		features:  features,
		scorer:    scorer,
		schema:    schema,
	}
}

// Recommend returns the user's top-K unvisited attractions ranked by the
// model's positive-class probability. Unknown users surface the typed
// UNKNOWN_USER error; an exhausted catalog returns an empty list.
func (s *RecommendationService) Recommend(ctx context.Context, userID, topK int) ([]entities.Recommendation, error) {
	snapshot, catalog, err := s.snapshots.Current()
	if err != nil {
		return nil, err
	}

	candidates, matrix, err := s.features.BuildCandidates(userID, snapshot, catalog, s.schema)
	if err != nil {
		return nil, err
	}

	return s.scorer.ScoreAndRank(ctx, candidates, matrix, topK)
}

// UserStats summarises a traveler's history for the profile endpoint.
// Favorite type and mode are modal values; ties resolve to the
// lexicographically smallest label so the output is deterministic.
func (s *RecommendationService) UserStats(ctx context.Context, userID int) (*entities.UserStats, error) {
	snapshot, _, err := s.snapshots.Current()
	if err != nil {
		return nil, err
	}

	visits := snapshot.UserVisits(userID)
	if len(visits) == 0 {
		return nil, apperrors.NewUnknownUserError(userID)
	}

	ratingSum := 0.0
	typeCounts := make(map[string]int)
	modeCounts := make(map[string]int)
	for _, v := range visits {
		ratingSum += v.Rating
		typeCounts[v.AttractionType]++
		modeCounts[v.VisitMode]++
	}

	latest := visits[len(visits)-1]
	return &entities.UserStats{
		UserID:         userID,
		TripCount:      len(visits),
		AvgRating:      ratingSum / float64(len(visits)),
		FavoriteType:   modalValue(typeCounts),
		FavoriteMode:   modalValue(modeCounts),
		LastVisitYear:  latest.VisitYear,
		LastVisitMonth: latest.VisitMonth,
	}, nil
}

// ListUsers returns the distinct user ids present in the snapshot, ascending
func (s *RecommendationService) ListUsers(ctx context.Context) ([]int, error) {
	snapshot, _, err := s.snapshots.Current()
	if err != nil {
		return nil, err
	}
	return snapshot.UserIDs(), nil
}

// Catalog returns the attraction catalog backing candidate enumeration
func (s *RecommendationService) Catalog(ctx context.Context) ([]entities.Attraction, error) {
	_, catalog, err := s.snapshots.Current()
	if err != nil {
		return nil, err
	}
	return catalog, nil
}

// Refresh rebuilds the shared snapshot from the data source
func (s *RecommendationService) Refresh(ctx context.Context) error {
	return s.snapshots.Refresh(ctx)
}

func modalValue(counts map[string]int) string {
	best := ""
	bestCount := -1
	for value, count := range counts {
		if count > bestCount || (count == bestCount && value < best) {
			best = value
			bestCount = count
		}
	}
	return best
}
