package database_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/voyageai/recommender-backend/internal/adapters/database"
)

// openTestDB creates an in-memory tourism schema with a small fixture set.
// One connection only: each pooled connection would otherwise see its own
// empty in-memory database.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	schema := []string{
		`CREATE TABLE User (UserId INTEGER PRIMARY KEY, CityId INTEGER)`,
		`CREATE TABLE City (CityId INTEGER PRIMARY KEY, CityName TEXT, CountryId INTEGER)`,
		`CREATE TABLE Country (CountryId INTEGER PRIMARY KEY, Country TEXT)`,
		`CREATE TABLE Type (AttractionTypeId INTEGER PRIMARY KEY, AttractionType TEXT)`,
		`CREATE TABLE Mode (VisitModeId INTEGER PRIMARY KEY, VisitMode TEXT)`,
		`CREATE TABLE Attraction (
			AttractionId INTEGER PRIMARY KEY,
			Attraction TEXT,
			AttractionCityId INTEGER,
			AttractionTypeId INTEGER
		)`,
		`CREATE TABLE TransactionTable (
			TransactionId INTEGER PRIMARY KEY,
			UserId INTEGER,
			AttractionId INTEGER,
			VisitModeId INTEGER,
			VisitYear INTEGER,
			VisitMonth INTEGER,
			Rating REAL
		)`,
	}
	for _, stmt := range schema {
		_, err := db.Exec(stmt)
		require.NoError(t, err)
	}

	fixtures := []string{
		`INSERT INTO City VALUES (10, 'Paris', 1), (11, 'Lagos', 2)`,
		`INSERT INTO Country VALUES (1, 'France'), (2, 'Nigeria')`,
		`INSERT INTO Type VALUES (1, 'Museum'), (2, 'Beach')`,
		`INSERT INTO Mode VALUES (1, 'Couples'), (2, 'Family')`,
		`INSERT INTO User VALUES (100, 10), (101, 11)`,
		`INSERT INTO Attraction VALUES
			(500, 'Louvre', 10, 1),
			(501, 'Bar Beach', 11, 2),
			(502, 'Orsay', 10, 1)`,
		`INSERT INTO TransactionTable VALUES
			(1, 100, 500, 1, 2019, 7, 4.0),
			(3, 100, 502, 2, 2022, 1, 5.0),
			(2, 101, 501, 2, 2021, 12, 3.0)`,
	}
	for _, stmt := range fixtures {
		_, err := db.Exec(stmt)
		require.NoError(t, err)
	}

	return db
}

func TestVisitAdapter_LoadEnriched(t *testing.T) {
	db := openTestDB(t)
	adapter := database.NewVisitAdapter(db, "sqlite3")

	events, err := adapter.LoadEnriched(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 3)

	// TransactionID ascending regardless of insertion order
	assert.Equal(t, 1, events[0].TransactionID)
	assert.Equal(t, 2, events[1].TransactionID)
	assert.Equal(t, 3, events[2].TransactionID)

	first := events[0]
	assert.Equal(t, 100, first.UserID)
	assert.Equal(t, 10, first.UserCityID)
	assert.Equal(t, 500, first.AttractionID)
	assert.Equal(t, "Louvre", first.Attraction)
	assert.Equal(t, "Museum", first.AttractionType)
	assert.Equal(t, "Couples", first.VisitMode)
	assert.Equal(t, 2019, first.VisitYear)
	assert.Equal(t, 7, first.VisitMonth)
	assert.Equal(t, 4.0, first.Rating)
}

func TestVisitAdapter_InnerJoinDropsOrphanRows(t *testing.T) {
	db := openTestDB(t)

	// Transaction referencing a mode that does not exist
	_, err := db.Exec(`INSERT INTO TransactionTable VALUES (4, 100, 500, 99, 2023, 3, 2.0)`)
	require.NoError(t, err)

	adapter := database.NewVisitAdapter(db, "sqlite3")
	events, err := adapter.LoadEnriched(context.Background())

	require.NoError(t, err)
	assert.Len(t, events, 3, "orphan transaction must be silently dropped by the join")
}

func TestVisitAdapter_MissingTableIsDataAccessError(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	defer db.Close()

	adapter := database.NewVisitAdapter(db, "sqlite3")
	_, err = adapter.LoadEnriched(context.Background())

	assert.Error(t, err)
}
