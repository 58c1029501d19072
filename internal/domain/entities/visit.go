package entities

// VisitEvent is one historical (user, attraction) visit from the joined
// transaction log. Rows are immutable facts produced by the external data
// source; this service never writes them.
type VisitEvent struct {
	TransactionID    int     `json:"transaction_id" db:"TransactionId"`
	UserID           int     `json:"user_id" db:"UserId"`
	UserCityID       int     `json:"user_city_id" db:"UserCityId"`
	AttractionID     int     `json:"attraction_id" db:"AttractionId"`
	Attraction       string  `json:"attraction" db:"Attraction"`
	AttractionTypeID int     `json:"attraction_type_id" db:"AttractionTypeId"`
	AttractionType   string  `json:"attraction_type" db:"AttractionType"`
	VisitModeID      int     `json:"visit_mode_id" db:"VisitModeId"`
	VisitMode        string  `json:"visit_mode" db:"VisitMode"`
	VisitYear        int     `json:"visit_year" db:"VisitYear"`
	VisitMonth       int     `json:"visit_month" db:"VisitMonth"`
	Rating           float64 `json:"rating" db:"Rating"`
}

// EnrichedVisit is a VisitEvent extended with the per-user expanding
// statistics derived by the snapshot builder. UserHistoricalAvg covers
// strictly preceding visits only; the event's own rating is excluded.
type EnrichedVisit struct {
	VisitEvent
	UserHistoricalAvg   float64 `json:"user_historical_avg"`
	UserHistoricalCount int     `json:"user_historical_count"`
}
