package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/voyageai/recommender-backend/internal/domain/entities"
	"github.com/voyageai/recommender-backend/internal/domain/repositories"
	"github.com/voyageai/recommender-backend/internal/infrastructure/observability"
	apperrors "github.com/voyageai/recommender-backend/pkg/errors"
)

// SnapshotBuilder derives the historical context tables from the raw joined
// visit log. The build is a pure transform: no I/O, no retained state.
type SnapshotBuilder struct{}

// NewSnapshotBuilder creates a snapshot builder
func NewSnapshotBuilder() *SnapshotBuilder {
	return &SnapshotBuilder{}
}

// Build computes the enriched log and the derived aggregate tables.
//
// Per user, ordered by TransactionID ascending, UserHistoricalAvg is the
// expanding mean of ratings over strictly preceding visits: the current
// visit's own rating never contributes to its own feature. A user's first
// visit has no preceding data and falls back to the global mean rating.
func (b *SnapshotBuilder) Build(events []entities.VisitEvent) *entities.Snapshot {
	globalMean := 0.0
	if len(events) > 0 {
		sum := 0.0
		for _, e := range events {
			sum += e.Rating
		}
		globalMean = sum / float64(len(events))
	}

	// Group per user, preserving the source order within each group before
	// ordering by TransactionID. Stable sort keeps equal ids deterministic.
	byUser := make(map[int][]entities.VisitEvent)
	for _, e := range events {
		byUser[e.UserID] = append(byUser[e.UserID], e)
	}

	enriched := make([]entities.EnrichedVisit, 0, len(events))
	typePrefs := make(map[int]map[string]float64, len(byUser))

	for userID, visits := range byUser {
		sort.SliceStable(visits, func(i, j int) bool {
			return visits[i].TransactionID < visits[j].TransactionID
		})

		ratingSum := 0.0
		for i, v := range visits {
			avg := globalMean
			if i > 0 {
				avg = ratingSum / float64(i)
			}
			enriched = append(enriched, entities.EnrichedVisit{
				VisitEvent:          v,
				UserHistoricalAvg:   avg,
				UserHistoricalCount: i,
			})
			ratingSum += v.Rating
		}

		prefs := make(map[string]float64)
		for _, v := range visits {
			prefs[v.AttractionType]++
		}
		total := float64(len(visits))
		for attractionType := range prefs {
			prefs[attractionType] /= total
		}
		typePrefs[userID] = prefs
	}

	sort.SliceStable(enriched, func(i, j int) bool {
		return enriched[i].TransactionID < enriched[j].TransactionID
	})

	attractionStats := make(map[int]entities.AttractionStats)
	for _, e := range events {
		stat := attractionStats[e.AttractionID]
		stat.AttractionID = e.AttractionID
		stat.AvgRating += e.Rating
		stat.VisitCount++
		attractionStats[e.AttractionID] = stat
	}
	for id, stat := range attractionStats {
		stat.AvgRating /= float64(stat.VisitCount)
		attractionStats[id] = stat
	}

	return entities.NewSnapshot(enriched, typePrefs, attractionStats, globalMean)
}

// SnapshotService owns the shared read-only snapshot and catalog. Serving
// reads them under a shared lock; Refresh rebuilds them under the exclusive
// lock so a rebuild is never observed half-done.
type SnapshotService struct {
	visitRepo      repositories.VisitEventRepository
	attractionRepo repositories.AttractionRepository
	builder        *SnapshotBuilder
	metrics        *observability.Metrics

	gate     sync.RWMutex
	snapshot *entities.Snapshot
	catalog  []entities.Attraction
}

// NewSnapshotService creates a snapshot service. metrics may be nil.
func NewSnapshotService(
	visitRepo repositories.VisitEventRepository,
	attractionRepo repositories.AttractionRepository,
	metrics *observability.Metrics,
) *SnapshotService {
	return &SnapshotService{
		visitRepo:      visitRepo,
		attractionRepo: attractionRepo,
		builder:        NewSnapshotBuilder(),
		metrics:        metrics,
	}
}

// Refresh reloads the visit log and catalog from the data source and swaps
// in a freshly built snapshot. Called once at startup and on demand.
func (s *SnapshotService) Refresh(ctx context.Context) error {
	start := time.Now()

	events, err := s.visitRepo.LoadEnriched(ctx)
	if err != nil {
		return err
	}

	catalog, err := s.attractionRepo.ListAll(ctx)
	if err != nil {
		return err
	}

	snapshot := s.builder.Build(events)

	s.gate.Lock()
	s.snapshot = snapshot
	s.catalog = catalog
	s.gate.Unlock()

	if s.metrics != nil {
		observability.RecordSnapshotBuild(ctx, s.metrics, len(events), time.Since(start))
	}
	log.Info().
		Int("events", len(events)).
		Int("attractions", len(catalog)).
		Int("users", len(snapshot.UserIDs())).
		Dur("took", time.Since(start)).
		Msg("Historical snapshot rebuilt")

	return nil
}

// Current returns the snapshot and catalog for serving. It fails if Refresh
// has never succeeded.
func (s *SnapshotService) Current() (*entities.Snapshot, []entities.Attraction, error) {
	s.gate.RLock()
	defer s.gate.RUnlock()

	if s.snapshot == nil {
		return nil, nil, apperrors.NewDataAccessError("historical snapshot not loaded", nil)
	}
	return s.snapshot, s.catalog, nil
}
