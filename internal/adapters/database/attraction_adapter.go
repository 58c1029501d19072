package database

import (
	"context"
	"database/sql"

	"github.com/doug-martin/goqu/v9"

	"github.com/voyageai/recommender-backend/internal/domain/entities"
	"github.com/voyageai/recommender-backend/internal/domain/repositories"
	apperrors "github.com/voyageai/recommender-backend/pkg/errors"
)

// AttractionAdapter implements AttractionRepository, the static catalog of
// recommendable attractions
type AttractionAdapter struct {
	db *sql.DB
	qb *goqu.Database
}

// NewAttractionAdapter creates an attraction adapter for the given database
// handle. dialect is a goqu dialect name ("sqlite3" or "postgres").
func NewAttractionAdapter(db *sql.DB, dialect string) repositories.AttractionRepository {
	return &AttractionAdapter{
		db: db,
		qb: goqu.New(dialect, db),
	}
}

// ListAll returns the full catalog with descriptive attributes
func (a *AttractionAdapter) ListAll(ctx context.Context) ([]entities.Attraction, error) {
	query, args, err := a.qb.
		From(goqu.T("Attraction").As("a")).
		Join(goqu.T("City").As("c"), goqu.On(goqu.Ex{"a.AttractionCityId": goqu.I("c.CityId")})).
		Join(goqu.T("Country").As("co"), goqu.On(goqu.Ex{"c.CountryId": goqu.I("co.CountryId")})).
		Join(goqu.T("Type").As("ty"), goqu.On(goqu.Ex{"a.AttractionTypeId": goqu.I("ty.AttractionTypeId")})).
		Select(
			goqu.I("a.AttractionId"),
			goqu.I("a.AttractionTypeId"),
			goqu.I("a.Attraction"),
			goqu.I("c.CityName"),
			goqu.I("co.Country"),
			goqu.I("ty.AttractionType"),
		).
		Order(goqu.I("a.AttractionId").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewDataAccessError("failed to build catalog query", err)
	}

	rows, err := a.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewDataAccessError("failed to load attraction catalog", err)
	}
	defer rows.Close()

	var attractions []entities.Attraction
	for rows.Next() {
		var attr entities.Attraction
		err := rows.Scan(
			&attr.AttractionID,
			&attr.AttractionTypeID,
			&attr.Name,
			&attr.CityName,
			&attr.Country,
			&attr.AttractionType,
		)
		if err != nil {
			return nil, apperrors.NewDataAccessError("failed to scan attraction", err)
		}
		attractions = append(attractions, attr)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewDataAccessError("error iterating attraction catalog", err)
	}

	return attractions, nil
}
