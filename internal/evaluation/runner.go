package evaluation

import (
	"context"
	"time"

	"github.com/voyageai/recommender-backend/internal/application/services"
	"github.com/voyageai/recommender-backend/internal/domain/entities"
	"github.com/voyageai/recommender-backend/internal/domain/providers"
)

// Runner scores leave-last-out holdout trials. For each eligible user the
// most recent visit is withheld, the snapshot is rebuilt from the remaining
// log, and the withheld attraction is checked against the top-K output.
type Runner struct {
	builder    *services.SnapshotBuilder
	features   *services.FeatureService
	scorer     *services.ScoringService
	schema     []string
	guardrails *Guardrails
}

func NewRunner(model providers.Model, schema []string, guardrails *Guardrails) *Runner {
	return &Runner{
		builder:    services.NewSnapshotBuilder(),
		features:   services.NewFeatureService(),
		scorer:     services.NewScoringService(model, nil),
		schema:     schema,
		guardrails: guardrails,
	}
}

func (r *Runner) Run(
	ctx context.Context,
	events []entities.VisitEvent,
	catalog []entities.Attraction,
	k int,
	userIDs []int,
) (*EvalSummary, error) {
	full := r.builder.Build(events)

	if len(userIDs) == 0 {
		userIDs = full.UserIDs()
	}
	userIDs = r.guardrails.LimitUsers(userIDs)

	summary := &EvalSummary{
		K:          k,
		TotalUsers: len(userIDs),
	}

	for _, userID := range userIDs {
		holdout, ok := r.holdoutCase(full, userID)
		if !ok || !r.guardrails.ShouldEvaluate(holdout.HistoryCount) {
			summary.SkippedUsers++
			continue
		}

		result, err := r.evaluateUser(ctx, events, catalog, holdout, k)
		if err != nil {
			summary.SkippedUsers++
			continue
		}

		summary.EvaluatedUsers++
		if result.Hit {
			summary.HitRateAtK++
		}
		summary.AvgRecallAtK += result.RecallAtK
		summary.MRRAtK += result.ReciprocalRank
		summary.AvgLatency += result.Latency
	}

	r.finalizeSummary(summary)
	return summary, nil
}

// holdoutCase picks the user's latest visit as the withheld item. Users with
// fewer than two visits have no history left to recommend from.
func (r *Runner) holdoutCase(snapshot *entities.Snapshot, userID int) (HoldoutCase, bool) {
	visits := snapshot.UserVisits(userID)
	if len(visits) < 2 {
		return HoldoutCase{}, false
	}
	latest := visits[len(visits)-1]
	return HoldoutCase{
		UserID:       userID,
		HeldOutID:    latest.AttractionID,
		HistoryCount: len(visits) - 1,
	}, true
}

func (r *Runner) evaluateUser(
	ctx context.Context,
	events []entities.VisitEvent,
	catalog []entities.Attraction,
	holdout HoldoutCase,
	k int,
) (*EvalResult, error) {
	reduced := r.withoutLatestVisit(events, holdout.UserID)
	snapshot := r.builder.Build(reduced)

	start := time.Now()
	candidates, matrix, err := r.features.BuildCandidates(holdout.UserID, snapshot, catalog, r.schema)
	if err != nil {
		return nil, err
	}
	recommendations, err := r.scorer.ScoreAndRank(ctx, candidates, matrix, k)
	if err != nil {
		return nil, err
	}
	latency := time.Since(start)

	retrieved := make([]int, len(recommendations))
	for i, rec := range recommendations {
		retrieved[i] = rec.AttractionID
	}
	relevant := []int{holdout.HeldOutID}

	recall := RecallAtK(relevant, retrieved, k)
	return &EvalResult{
		UserID:         holdout.UserID,
		HeldOutID:      holdout.HeldOutID,
		Hit:            recall > 0,
		RecallAtK:      recall,
		ReciprocalRank: MRRAtK(relevant, retrieved, k),
		ResultCount:    len(recommendations),
		Latency:        latency,
	}, nil
}

// withoutLatestVisit drops the user's highest-TransactionID event from the log
func (r *Runner) withoutLatestVisit(events []entities.VisitEvent, userID int) []entities.VisitEvent {
	latestTx := -1
	for _, e := range events {
		if e.UserID == userID && e.TransactionID > latestTx {
			latestTx = e.TransactionID
		}
	}

	reduced := make([]entities.VisitEvent, 0, len(events))
	for _, e := range events {
		if e.UserID == userID && e.TransactionID == latestTx {
			continue
		}
		reduced = append(reduced, e)
	}
	return reduced
}

func (r *Runner) finalizeSummary(s *EvalSummary) {
	if s.EvaluatedUsers > 0 {
		n := float64(s.EvaluatedUsers)
		s.HitRateAtK /= n
		s.AvgRecallAtK /= n
		s.MRRAtK /= n
		s.AvgLatency /= time.Duration(s.EvaluatedUsers)
	}
}
