package services

import (
	"sort"

	"github.com/voyageai/recommender-backend/internal/domain/entities"
	apperrors "github.com/voyageai/recommender-backend/pkg/errors"
)

// numericFeatureColumns is the fixed numeric part of the model's input, in
// the order the training pipeline emitted it. The categorical columns
// (VisitMode, AttractionType) follow as one-hot indicators.
var numericFeatureColumns = []string{
	"VisitMonth",
	"Quarter",
	"PostCovid",
	"UserHistoricalAvg",
	"UserHistoricalCount",
	"AttractionHistoricalAvg",
	"AttractionHistoricalCount",
	"UserAttractionHistoryCount",
	"UserTypePreference",
}

// FeatureService builds the model-ready feature matrix for one user's
// unvisited candidates
type FeatureService struct{}

// NewFeatureService creates a feature service
func NewFeatureService() *FeatureService {
	return &FeatureService{}
}

// BuildCandidates enumerates the catalog attractions the user has not
// visited and attaches the features the model expects, aligned to schema.
//
// The month, mode, quarter and post-covid flags are broadcast from the
// user's single most recent transaction: the next trip is assumed to mirror
// the last one. An unknown user yields a typed UNKNOWN_USER error; a fully
// visited catalog yields an empty candidate list, which is a valid result.
func (s *FeatureService) BuildCandidates(
	userID int,
	snapshot *entities.Snapshot,
	catalog []entities.Attraction,
	schema []string,
) ([]entities.Candidate, *entities.FeatureMatrix, error) {
	if len(schema) == 0 {
		return nil, nil, apperrors.NewScoringInputError("feature schema is empty")
	}

	profile, ok := snapshot.LatestVisit(userID)
	if !ok {
		return nil, nil, apperrors.NewUnknownUserError(userID)
	}
	visited := snapshot.VisitedSet(userID)

	quarter := (profile.VisitMonth-1)/3 + 1
	postCovid := 0
	if profile.VisitYear >= 2020 {
		postCovid = 1
	}

	candidates := make([]entities.Candidate, 0, len(catalog))
	for _, attraction := range catalog {
		if _, seen := visited[attraction.AttractionID]; seen {
			continue
		}

		attrAvg := snapshot.GlobalMeanRating()
		attrCount := 0
		if stat, found := snapshot.AttractionStat(attraction.AttractionID); found {
			attrAvg = stat.AvgRating
			attrCount = stat.VisitCount
		}

		candidates = append(candidates, entities.Candidate{
			UserID:                     userID,
			AttractionID:               attraction.AttractionID,
			Attraction:                 attraction.Name,
			CityName:                   attraction.CityName,
			Country:                    attraction.Country,
			AttractionType:             attraction.AttractionType,
			VisitMode:                  profile.VisitMode,
			VisitMonth:                 profile.VisitMonth,
			Quarter:                    quarter,
			PostCovid:                  postCovid,
			UserHistoricalAvg:          profile.UserHistoricalAvg,
			UserHistoricalCount:        profile.UserHistoricalCount,
			UserAttractionHistoryCount: 0,
			AttractionHistoricalAvg:    attrAvg,
			AttractionHistoricalCount:  attrCount,
			UserTypePreference:         snapshot.TypePreference(userID, attraction.AttractionType),
		})
	}

	matrix := encodeFeatures(candidates).Reindex(schema)
	return candidates, matrix, nil
}

// encodeFeatures lays out the numeric columns followed by drop-first one-hot
// indicators for VisitMode and AttractionType. Indicator columns cover only
// the levels present in this batch; Reindex against the training schema is
// what makes the encoding stable across batches.
func encodeFeatures(candidates []entities.Candidate) *entities.FeatureMatrix {
	modeLevels := oneHotLevels(candidates, func(c entities.Candidate) string { return c.VisitMode })
	typeLevels := oneHotLevels(candidates, func(c entities.Candidate) string { return c.AttractionType })

	columns := append([]string(nil), numericFeatureColumns...)
	for _, level := range modeLevels {
		columns = append(columns, "VisitMode_"+level)
	}
	for _, level := range typeLevels {
		columns = append(columns, "AttractionType_"+level)
	}

	matrix := entities.NewFeatureMatrix(columns, len(candidates))
	for i, c := range candidates {
		row := matrix.Rows[i]
		row[0] = float64(c.VisitMonth)
		row[1] = float64(c.Quarter)
		row[2] = float64(c.PostCovid)
		row[3] = c.UserHistoricalAvg
		row[4] = float64(c.UserHistoricalCount)
		row[5] = c.AttractionHistoricalAvg
		row[6] = float64(c.AttractionHistoricalCount)
		row[7] = float64(c.UserAttractionHistoryCount)
		row[8] = c.UserTypePreference

		offset := len(numericFeatureColumns)
		for j, level := range modeLevels {
			if c.VisitMode == level {
				row[offset+j] = 1
			}
		}
		offset += len(modeLevels)
		for j, level := range typeLevels {
			if c.AttractionType == level {
				row[offset+j] = 1
			}
		}
	}

	return matrix
}

// oneHotLevels returns the batch's distinct levels sorted lexicographically
// with the first dropped, mirroring the training-time encoder
func oneHotLevels(candidates []entities.Candidate, value func(entities.Candidate) string) []string {
	distinct := make(map[string]struct{})
	for _, c := range candidates {
		distinct[value(c)] = struct{}{}
	}

	levels := make([]string, 0, len(distinct))
	for level := range distinct {
		levels = append(levels, level)
	}
	sort.Strings(levels)

	if len(levels) == 0 {
		return nil
	}
	return levels[1:]
}
