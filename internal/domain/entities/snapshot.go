package entities

import "sort"

// Snapshot is the immutable, pre-joined historical dataset plus its derived
// aggregate tables, built once and shared read-only across requests. A new
// Snapshot is swapped in whole on refresh; existing readers keep the old one.
type Snapshot struct {
	visits           []EnrichedVisit
	byUser           map[int][]EnrichedVisit
	typePrefs        map[int]map[string]float64
	attractionStats  map[int]AttractionStats
	globalMeanRating float64
}

// NewSnapshot assembles a snapshot from already-derived tables. Callers are
// expected to go through services.SnapshotBuilder rather than build the
// inputs by hand.
func NewSnapshot(
	visits []EnrichedVisit,
	typePrefs map[int]map[string]float64,
	attractionStats map[int]AttractionStats,
	globalMeanRating float64,
) *Snapshot {
	byUser := make(map[int][]EnrichedVisit)
	for _, v := range visits {
		byUser[v.UserID] = append(byUser[v.UserID], v)
	}
	return &Snapshot{
		visits:           visits,
		byUser:           byUser,
		typePrefs:        typePrefs,
		attractionStats:  attractionStats,
		globalMeanRating: globalMeanRating,
	}
}

// Visits returns the full enriched log in TransactionID order
func (s *Snapshot) Visits() []EnrichedVisit {
	return s.visits
}

// UserVisits returns the user's visits in TransactionID order, or nil for an
// unknown user
func (s *Snapshot) UserVisits(userID int) []EnrichedVisit {
	return s.byUser[userID]
}

// UserIDs returns the distinct user ids present in the log, ascending
func (s *Snapshot) UserIDs() []int {
	ids := make([]int, 0, len(s.byUser))
	for id := range s.byUser {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// LatestVisit returns the user's most recent visit by TransactionID
func (s *Snapshot) LatestVisit(userID int) (EnrichedVisit, bool) {
	visits := s.byUser[userID]
	if len(visits) == 0 {
		return EnrichedVisit{}, false
	}
	return visits[len(visits)-1], true
}

// VisitedSet returns the set of attraction ids the user has already visited
func (s *Snapshot) VisitedSet(userID int) map[int]struct{} {
	visits := s.byUser[userID]
	visited := make(map[int]struct{}, len(visits))
	for _, v := range visits {
		visited[v.AttractionID] = struct{}{}
	}
	return visited
}

// TypePreference returns the share of the user's visits that went to the
// given attraction type, zero when the user never visited that type
func (s *Snapshot) TypePreference(userID int, attractionType string) float64 {
	return s.typePrefs[userID][attractionType]
}

// AttractionStat returns the global aggregate for one attraction
func (s *Snapshot) AttractionStat(attractionID int) (AttractionStats, bool) {
	stat, ok := s.attractionStats[attractionID]
	return stat, ok
}

// GlobalMeanRating is the mean rating across the entire enriched log,
// used as the cold-start and missing-stats fallback
func (s *Snapshot) GlobalMeanRating() float64 {
	return s.globalMeanRating
}
