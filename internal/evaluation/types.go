package evaluation

import "time"

// HoldoutCase identifies one leave-last-out trial: the user's most recent
// visit is withheld from the snapshot and treated as the relevant item.
type HoldoutCase struct {
	UserID       int
	HeldOutID    int // attraction id of the withheld visit
	HistoryCount int // visits remaining after the holdout
}

// EvalResult holds the outcome for a single holdout trial.
type EvalResult struct {
	UserID         int
	HeldOutID      int
	Hit            bool
	RecallAtK      float64
	ReciprocalRank float64
	ResultCount    int
	Latency        time.Duration
}

// EvalSummary holds aggregate metrics across all evaluated users.
type EvalSummary struct {
	K              int
	TotalUsers     int
	EvaluatedUsers int
	SkippedUsers   int // too little history, or scoring failed
	HitRateAtK     float64
	AvgRecallAtK   float64
	MRRAtK         float64
	AvgLatency     time.Duration
}
