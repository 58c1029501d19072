package entities

// Candidate is one unvisited attraction prepared for scoring: the catalog
// attributes plus the user-contextual and attraction-aggregate features the
// model consumes. Its AttractionID is never in the requesting user's
// visited set.
type Candidate struct {
	UserID              int     `json:"user_id"`
	AttractionID        int     `json:"attraction_id"`
	Attraction          string  `json:"attraction"`
	CityName            string  `json:"city_name"`
	Country             string  `json:"country"`
	AttractionType      string  `json:"attraction_type"`
	VisitMode           string  `json:"visit_mode"`
	VisitMonth          int     `json:"visit_month"`
	Quarter             int     `json:"quarter"`
	PostCovid           int     `json:"post_covid"`
	UserHistoricalAvg   float64 `json:"user_historical_avg"`
	UserHistoricalCount int     `json:"user_historical_count"`
	// UserAttractionHistoryCount is structurally always zero: candidates are
	// unvisited by construction. Kept because the training features carry it.
	UserAttractionHistoryCount int     `json:"user_attraction_history_count"`
	AttractionHistoricalAvg    float64 `json:"attraction_historical_avg"`
	AttractionHistoricalCount  int     `json:"attraction_historical_count"`
	UserTypePreference         float64 `json:"user_type_preference"`
	Score                      float64 `json:"score"`
}

// Recommendation is a scored candidate as returned to callers
type Recommendation struct {
	AttractionID   int     `json:"attraction_id"`
	Attraction     string  `json:"attraction"`
	CityName       string  `json:"city_name"`
	Country        string  `json:"country"`
	AttractionType string  `json:"attraction_type"`
	Score          float64 `json:"score"`
}

// UserStats summarises one traveler's history for the profile endpoint
type UserStats struct {
	UserID         int     `json:"user_id"`
	TripCount      int     `json:"trip_count"`
	AvgRating      float64 `json:"avg_rating"`
	FavoriteType   string  `json:"favorite_type"`
	FavoriteMode   string  `json:"favorite_mode"`
	LastVisitYear  int     `json:"last_visit_year"`
	LastVisitMonth int     `json:"last_visit_month"`
}
