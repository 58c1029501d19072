package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voyageai/recommender-backend/internal/domain/entities"
	apperrors "github.com/voyageai/recommender-backend/pkg/errors"
)

var testSchema = []string{
	"VisitMonth",
	"Quarter",
	"PostCovid",
	"UserHistoricalAvg",
	"UserHistoricalCount",
	"AttractionHistoricalAvg",
	"AttractionHistoricalCount",
	"UserAttractionHistoryCount",
	"UserTypePreference",
	"VisitMode_Couples",
	"VisitMode_Friends",
	"AttractionType_Museum",
	"AttractionType_Park",
}

func museumBeachSnapshot() *entities.Snapshot {
	return NewSnapshotBuilder().Build([]entities.VisitEvent{
		{TransactionID: 1, UserID: 7, AttractionID: 100, Attraction: "Louvre", AttractionType: "Museum",
			VisitMode: "Family", VisitYear: 2023, VisitMonth: 7, Rating: 5},
		{TransactionID: 2, UserID: 8, AttractionID: 101, Attraction: "Bar Beach", AttractionType: "Beach",
			VisitMode: "Friends", VisitYear: 2019, VisitMonth: 2, Rating: 3},
	})
}

var museumBeachCatalog = []entities.Attraction{
	{AttractionID: 100, Name: "Louvre", CityName: "Paris", Country: "France", AttractionType: "Museum"},
	{AttractionID: 101, Name: "Bar Beach", CityName: "Lagos", Country: "Nigeria", AttractionType: "Beach"},
	{AttractionID: 102, Name: "Orsay", CityName: "Paris", Country: "France", AttractionType: "Museum"},
}

func TestFeatureService_ExcludesVisitedAttractions(t *testing.T) {
	service := NewFeatureService()

	candidates, matrix, err := service.BuildCandidates(7, museumBeachSnapshot(), museumBeachCatalog, testSchema)
	require.NoError(t, err)
	require.Len(t, candidates, 2)
	assert.Equal(t, 101, candidates[0].AttractionID)
	assert.Equal(t, 102, candidates[1].AttractionID)
	assert.Equal(t, 2, matrix.RowCount())
}

func TestFeatureService_BroadcastsLatestVisitContext(t *testing.T) {
	service := NewFeatureService()

	candidates, _, err := service.BuildCandidates(7, museumBeachSnapshot(), museumBeachCatalog, testSchema)
	require.NoError(t, err)

	for _, c := range candidates {
		assert.Equal(t, 7, c.VisitMonth)
		assert.Equal(t, 3, c.Quarter)
		assert.Equal(t, 1, c.PostCovid)
		assert.Equal(t, "Family", c.VisitMode)
		assert.Equal(t, 0, c.UserAttractionHistoryCount)
	}

	// user 8's only trip was February 2019
	candidates, _, err = service.BuildCandidates(8, museumBeachSnapshot(), museumBeachCatalog, testSchema)
	require.NoError(t, err)
	require.NotEmpty(t, candidates)
	assert.Equal(t, 1, candidates[0].Quarter)
	assert.Equal(t, 0, candidates[0].PostCovid)
}

func TestFeatureService_UserAndAttractionFeatures(t *testing.T) {
	service := NewFeatureService()
	snapshot := museumBeachSnapshot()

	candidates, _, err := service.BuildCandidates(7, snapshot, museumBeachCatalog, testSchema)
	require.NoError(t, err)
	require.Len(t, candidates, 2)

	globalMean := snapshot.GlobalMeanRating()

	// single-visit user: the profile carries its cold-start fallback
	beach, museum := candidates[0], candidates[1]
	assert.InDelta(t, globalMean, beach.UserHistoricalAvg, 1e-9)
	assert.Equal(t, 0, beach.UserHistoricalCount)

	// attraction 101 has one recorded visit, attraction 102 has none
	assert.InDelta(t, 3.0, beach.AttractionHistoricalAvg, 1e-9)
	assert.Equal(t, 1, beach.AttractionHistoricalCount)
	assert.InDelta(t, globalMean, museum.AttractionHistoricalAvg, 1e-9)
	assert.Equal(t, 0, museum.AttractionHistoricalCount)

	// user 7 only ever visited museums
	assert.Zero(t, beach.UserTypePreference)
	assert.InDelta(t, 1.0, museum.UserTypePreference, 1e-9)
}

func TestFeatureService_AlignsToSchema(t *testing.T) {
	service := NewFeatureService()

	candidates, matrix, err := service.BuildCandidates(7, museumBeachSnapshot(), museumBeachCatalog, testSchema)
	require.NoError(t, err)
	require.Equal(t, testSchema, matrix.Columns)

	// VisitMode has a single level in this batch, so drop-first leaves no
	// indicator for it and every schema mode column fills to zero
	for _, column := range []string{"VisitMode_Couples", "VisitMode_Friends"} {
		idx, ok := matrix.ColumnIndex(column)
		require.True(t, ok)
		for row := range candidates {
			assert.Zerof(t, matrix.Rows[row][idx], "%s row %d", column, row)
		}
	}

	// Beach is the batch's dropped baseline level, Museum keeps an indicator
	idx, ok := matrix.ColumnIndex("AttractionType_Museum")
	require.True(t, ok)
	assert.Zero(t, matrix.Rows[0][idx])
	assert.Equal(t, 1.0, matrix.Rows[1][idx])

	idx, ok = matrix.ColumnIndex("AttractionType_Park")
	require.True(t, ok)
	assert.Zero(t, matrix.Rows[0][idx])
	assert.Zero(t, matrix.Rows[1][idx])
}

func TestFeatureService_UnseenCategoricalLevel(t *testing.T) {
	service := NewFeatureService()

	// a catalog type the training schema never saw still scores, encoded as
	// all-zero indicators after alignment
	catalog := append([]entities.Attraction{
		{AttractionID: 200, Name: "Sky Zipline", CityName: "Queenstown", Country: "New Zealand", AttractionType: "Adventure"},
	}, museumBeachCatalog...)

	candidates, matrix, err := service.BuildCandidates(7, museumBeachSnapshot(), catalog, testSchema)
	require.NoError(t, err)
	require.Equal(t, 200, candidates[0].AttractionID)
	require.Equal(t, testSchema, matrix.Columns)

	idx, ok := matrix.ColumnIndex("AttractionType_Museum")
	require.True(t, ok)
	assert.Zero(t, matrix.Rows[0][idx])
	idx, ok = matrix.ColumnIndex("AttractionType_Park")
	require.True(t, ok)
	assert.Zero(t, matrix.Rows[0][idx])
}

func TestFeatureService_UnknownUser(t *testing.T) {
	service := NewFeatureService()

	_, _, err := service.BuildCandidates(999, museumBeachSnapshot(), museumBeachCatalog, testSchema)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeUnknownUser))
}

func TestFeatureService_EmptySchema(t *testing.T) {
	service := NewFeatureService()

	_, _, err := service.BuildCandidates(7, museumBeachSnapshot(), museumBeachCatalog, nil)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeScoringInput))
}

func TestFeatureService_FullyVisitedCatalog(t *testing.T) {
	service := NewFeatureService()
	catalog := []entities.Attraction{
		{AttractionID: 100, Name: "Louvre", AttractionType: "Museum"},
	}

	candidates, matrix, err := service.BuildCandidates(7, museumBeachSnapshot(), catalog, testSchema)
	require.NoError(t, err)
	assert.Empty(t, candidates)
	assert.Zero(t, matrix.RowCount())
	assert.Equal(t, testSchema, matrix.Columns)
}
