package entities

// Attraction is one recommendable item from the static catalog
type Attraction struct {
	AttractionID     int    `json:"attraction_id" db:"AttractionId"`
	AttractionTypeID int    `json:"attraction_type_id" db:"AttractionTypeId"`
	Name             string `json:"name" db:"Attraction"`
	CityName         string `json:"city_name" db:"CityName"`
	Country          string `json:"country" db:"Country"`
	AttractionType   string `json:"attraction_type" db:"AttractionType"`
}

// AttractionStats holds the global aggregate statistics for one attraction
// across all users in the snapshot
type AttractionStats struct {
	AttractionID int     `json:"attraction_id"`
	AvgRating    float64 `json:"avg_rating"`
	VisitCount   int     `json:"visit_count"`
}
