package database

import (
	"context"
	"database/sql"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3"
	"github.com/rs/zerolog/log"

	"github.com/voyageai/recommender-backend/internal/domain/entities"
	"github.com/voyageai/recommender-backend/internal/domain/repositories"
	apperrors "github.com/voyageai/recommender-backend/pkg/errors"
)

// Dialect maps a configured database driver to its goqu dialect name
func Dialect(driver string) string {
	if driver == "sqlite" {
		return "sqlite3"
	}
	return driver
}

// VisitAdapter implements VisitEventRepository over a relational source.
// The join is deliberately inner: transactions referencing a user,
// attraction, type or mode row that does not exist are dropped here, never
// surfaced as partial events.
type VisitAdapter struct {
	db *sql.DB
	qb *goqu.Database
}

// NewVisitAdapter creates a visit adapter for the given database handle.
// dialect is a goqu dialect name ("sqlite3" or "postgres").
func NewVisitAdapter(db *sql.DB, dialect string) repositories.VisitEventRepository {
	return &VisitAdapter{
		db: db,
		qb: goqu.New(dialect, db),
	}
}

// LoadEnriched returns the flat joined transaction log in TransactionID order
func (a *VisitAdapter) LoadEnriched(ctx context.Context) ([]entities.VisitEvent, error) {
	query, args, err := a.qb.
		From(goqu.T("TransactionTable").As("t")).
		Join(goqu.T("User").As("u"), goqu.On(goqu.Ex{"t.UserId": goqu.I("u.UserId")})).
		Join(goqu.T("Attraction").As("a"), goqu.On(goqu.Ex{"t.AttractionId": goqu.I("a.AttractionId")})).
		Join(goqu.T("Type").As("ty"), goqu.On(goqu.Ex{"a.AttractionTypeId": goqu.I("ty.AttractionTypeId")})).
		Join(goqu.T("Mode").As("m"), goqu.On(goqu.Ex{"t.VisitModeId": goqu.I("m.VisitModeId")})).
		Select(
			goqu.I("t.TransactionId"),
			goqu.I("t.UserId"),
			goqu.I("u.CityId"),
			goqu.I("t.AttractionId"),
			goqu.I("a.Attraction"),
			goqu.I("a.AttractionTypeId"),
			goqu.I("ty.AttractionType"),
			goqu.I("t.VisitModeId"),
			goqu.I("m.VisitMode"),
			goqu.I("t.VisitYear"),
			goqu.I("t.VisitMonth"),
			goqu.I("t.Rating"),
		).
		Order(goqu.I("t.TransactionId").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewDataAccessError("failed to build visit log query", err)
	}

	rows, err := a.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewDataAccessError("failed to load visit log", err)
	}
	defer rows.Close()

	var events []entities.VisitEvent
	for rows.Next() {
		var e entities.VisitEvent
		err := rows.Scan(
			&e.TransactionID,
			&e.UserID,
			&e.UserCityID,
			&e.AttractionID,
			&e.Attraction,
			&e.AttractionTypeID,
			&e.AttractionType,
			&e.VisitModeID,
			&e.VisitMode,
			&e.VisitYear,
			&e.VisitMonth,
			&e.Rating,
		)
		if err != nil {
			return nil, apperrors.NewDataAccessError("failed to scan visit event", err)
		}
		events = append(events, e)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewDataAccessError("error iterating visit log", err)
	}

	// Observability only: correctness never depends on the joined row count.
	log.Debug().Int("events", len(events)).Msg("Loaded joined visit log")

	return events, nil
}
