package main

import (
	"database/sql"
	"log"
	"os"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3"
	_ "modernc.org/sqlite"
)

// Seeds a small development tourism database so the API and evaluator can
// run without the real export. Opens its own handle because the serving
// client is read-only.

var schema = []string{
	`CREATE TABLE IF NOT EXISTS Country (CountryId INTEGER PRIMARY KEY, Country TEXT)`,
	`CREATE TABLE IF NOT EXISTS City (CityId INTEGER PRIMARY KEY, CityName TEXT, CountryId INTEGER)`,
	`CREATE TABLE IF NOT EXISTS Type (AttractionTypeId INTEGER PRIMARY KEY, AttractionType TEXT)`,
	`CREATE TABLE IF NOT EXISTS Mode (VisitModeId INTEGER PRIMARY KEY, VisitMode TEXT)`,
	`CREATE TABLE IF NOT EXISTS User (UserId INTEGER PRIMARY KEY, CityId INTEGER)`,
	`CREATE TABLE IF NOT EXISTS Attraction (
		AttractionId INTEGER PRIMARY KEY,
		Attraction TEXT,
		AttractionCityId INTEGER,
		AttractionTypeId INTEGER
	)`,
	`CREATE TABLE IF NOT EXISTS TransactionTable (
		TransactionId INTEGER PRIMARY KEY,
		UserId INTEGER,
		AttractionId INTEGER,
		VisitModeId INTEGER,
		VisitYear INTEGER,
		VisitMonth INTEGER,
		Rating REAL
	)`,
}

var tables = []string{"TransactionTable", "Attraction", "User", "Mode", "Type", "City", "Country"}

func main() {
	path := os.Getenv("SQLITE_PATH")
	if path == "" {
		path = "database/tourism.db"
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, dropping tables before seeding")
		for _, table := range tables {
			if _, err := db.Exec(`DROP TABLE IF EXISTS ` + table); err != nil {
				log.Fatalf("Failed to drop %s: %v", table, err)
			}
		}
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			log.Fatalf("Failed to create schema: %v", err)
		}
	}

	qb := goqu.New("sqlite3", db)

	seed := []struct {
		table string
		rows  []interface{}
	}{
		{"Country", []interface{}{
			goqu.Record{"CountryId": 1, "Country": "France"},
			goqu.Record{"CountryId": 2, "Country": "Nigeria"},
			goqu.Record{"CountryId": 3, "Country": "New Zealand"},
		}},
		{"City", []interface{}{
			goqu.Record{"CityId": 1, "CityName": "Paris", "CountryId": 1},
			goqu.Record{"CityId": 2, "CityName": "Lagos", "CountryId": 2},
			goqu.Record{"CityId": 3, "CityName": "Queenstown", "CountryId": 3},
		}},
		{"Type", []interface{}{
			goqu.Record{"AttractionTypeId": 1, "AttractionType": "Museum"},
			goqu.Record{"AttractionTypeId": 2, "AttractionType": "Beach"},
			goqu.Record{"AttractionTypeId": 3, "AttractionType": "Adventure"},
		}},
		{"Mode", []interface{}{
			goqu.Record{"VisitModeId": 1, "VisitMode": "Family"},
			goqu.Record{"VisitModeId": 2, "VisitMode": "Couples"},
			goqu.Record{"VisitModeId": 3, "VisitMode": "Friends"},
			goqu.Record{"VisitModeId": 4, "VisitMode": "Solo"},
		}},
		{"User", []interface{}{
			goqu.Record{"UserId": 100, "CityId": 1},
			goqu.Record{"UserId": 101, "CityId": 2},
			goqu.Record{"UserId": 102, "CityId": 3},
		}},
		{"Attraction", []interface{}{
			goqu.Record{"AttractionId": 500, "Attraction": "Louvre", "AttractionCityId": 1, "AttractionTypeId": 1},
			goqu.Record{"AttractionId": 501, "Attraction": "Orsay", "AttractionCityId": 1, "AttractionTypeId": 1},
			goqu.Record{"AttractionId": 502, "Attraction": "Bar Beach", "AttractionCityId": 2, "AttractionTypeId": 2},
			goqu.Record{"AttractionId": 503, "Attraction": "Sky Zipline", "AttractionCityId": 3, "AttractionTypeId": 3},
		}},
		{"TransactionTable", []interface{}{
			goqu.Record{"TransactionId": 1, "UserId": 100, "AttractionId": 500, "VisitModeId": 1, "VisitYear": 2022, "VisitMonth": 6, "Rating": 5.0},
			goqu.Record{"TransactionId": 2, "UserId": 100, "AttractionId": 502, "VisitModeId": 2, "VisitYear": 2023, "VisitMonth": 8, "Rating": 4.0},
			goqu.Record{"TransactionId": 3, "UserId": 101, "AttractionId": 502, "VisitModeId": 3, "VisitYear": 2021, "VisitMonth": 1, "Rating": 3.0},
			goqu.Record{"TransactionId": 4, "UserId": 101, "AttractionId": 501, "VisitModeId": 3, "VisitYear": 2023, "VisitMonth": 3, "Rating": 4.0},
			goqu.Record{"TransactionId": 5, "UserId": 102, "AttractionId": 503, "VisitModeId": 4, "VisitYear": 2024, "VisitMonth": 11, "Rating": 5.0},
		}},
	}

	for _, s := range seed {
		query, args, err := qb.Insert(s.table).Rows(s.rows...).ToSQL()
		if err != nil {
			log.Fatalf("Failed to build insert for %s: %v", s.table, err)
		}
		if _, err := db.Exec(query, args...); err != nil {
			log.Fatalf("Failed to seed %s: %v", s.table, err)
		}
		log.Printf("Seeded %s (%d rows)", s.table, len(s.rows))
	}

	log.Printf("Seed complete: %s", path)
}
