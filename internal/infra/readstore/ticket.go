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

const findCategoryByIDSQL = `
SELECT id, event_id, name, description, price_cents, quantity, created_at, updated_at
FROM ticket_categories
WHERE id = $1`

const findCategoriesByIDsSQL = `
SELECT id, event_id, name, description, price_cents, quantity, created_at, updated_at
FROM ticket_categories
WHERE id = ANY($1)
ORDER BY id`

const listCategoriesByEventSQL = `
SELECT id, event_id, name, description, price_cents, quantity, created_at, updated_at
FROM ticket_categories
WHERE event_id = $1
ORDER BY price_cents, name`

type TicketReadStore struct{}

func NewTicketReadStore() *TicketReadStore {
	return &TicketReadStore{}
}

func (r *TicketReadStore) FindCategoryByID(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*queries.TicketCategoryView, error) {
	row := dbtx.QueryRow(ctx, findCategoryByIDSQL, id)

	view, err := scanCategoryView(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("ticket category not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find ticket category", err)
	}

	return view, nil
}

func (r *TicketReadStore) FindCategoriesByIDs(ctx context.Context, dbtx db.DBTX, ids []uuid.UUID) ([]queries.TicketCategoryView, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	rows, err := dbtx.Query(ctx, findCategoriesByIDsSQL, ids)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find ticket categories", err)
	}
	defer rows.Close()

	var views []queries.TicketCategoryView
	for rows.Next() {
		view, err := scanCategoryView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan ticket category", err)
		}
		views = append(views, *view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read ticket categories", err)
	}

	return views, nil
}

func (r *TicketReadStore) ListCategoriesByEvent(ctx context.Context, dbtx db.DBTX, eventID uuid.UUID) ([]queries.TicketCategoryView, error) {
	rows, err := dbtx.Query(ctx, listCategoriesByEventSQL, eventID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list ticket categories", err)
	}
	defer rows.Close()

	var views []queries.TicketCategoryView
	for rows.Next() {
		view, err := scanCategoryView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan ticket category", err)
		}
		views = append(views, *view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read ticket categories", err)
	}

	return views, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCategoryView(row rowScanner) (*queries.TicketCategoryView, error) {
	var (
		view        queries.TicketCategoryView
		description pgtype.Text
		createdAt   pgtype.Timestamptz
		updatedAt   pgtype.Timestamptz
	)

	err := row.Scan(&view.ID, &view.EventID, &view.Name, &description, &view.PriceCents, &view.Quantity, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	if desc := pgconv.StringPtrFromPgtype(description); desc != nil {
		view.Description = *desc
	}
	view.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	view.UpdatedAt = pgconv.TimeFromPgtype(updatedAt)

	return &view, nil
}
