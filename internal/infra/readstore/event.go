package readstore

import (
	"context"

	"ticketbooth/internal/infra"
	"ticketbooth/internal/infra/db"
	"ticketbooth/internal/pkg/pgconv"
	"ticketbooth/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const listEventsSQL = `
SELECT id, name, date, location, status, created_at, updated_at
FROM events
WHERE status = 'published'
ORDER BY date, name`

const findEventByIDSQL = `
SELECT id, name, date, location, status, created_at, updated_at
FROM events
WHERE id = $1`

type EventReadStore struct{}

func NewEventReadStore() *EventReadStore {
	return &EventReadStore{}
}

func (r *EventReadStore) ListEvents(ctx context.Context, dbtx db.DBTX) ([]queries.EventView, error) {
	rows, err := dbtx.Query(ctx, listEventsSQL)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list events", err)
	}
	defer rows.Close()

	var views []queries.EventView
	for rows.Next() {
		view, err := scanEventView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan event", err)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read events", err)
	}

	return views, nil
}

func (r *EventReadStore) FindEventByID(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*queries.EventView, error) {
	view, err := scanEventView(dbtx.QueryRow(ctx, findEventByIDSQL, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("event not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find event", err)
	}
	return &view, nil
}

func scanEventView(row rowScanner) (queries.EventView, error) {
	var (
		view      queries.EventView
		date      pgtype.Timestamptz
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
	)
	if err := row.Scan(&view.ID, &view.Name, &date, &view.Location, &view.Status, &createdAt, &updatedAt); err != nil {
		return queries.EventView{}, err
	}
	view.Date = pgconv.TimeFromPgtype(date)
	view.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	view.UpdatedAt = pgconv.TimeFromPgtype(updatedAt)
	return view, nil
}
