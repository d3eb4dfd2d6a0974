package repository

import (
	"context"
	"errors"

	"ticketbooth/internal/domain/ticket"
	"ticketbooth/internal/infra"
	"ticketbooth/internal/infra/db"
	"ticketbooth/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

// Locks rows in ascending id order so concurrent multi-line checkouts cannot
// deadlock against each other.
const lockCategoriesSQL = `
SELECT id, event_id, name, price_cents, quantity
FROM ticket_categories
WHERE id = ANY($1)
ORDER BY id
FOR UPDATE`

// The quantity guard makes the decrement conditional on remaining stock;
// a zero row count means the guard rejected it.
const decrementQuantitySQL = `
UPDATE ticket_categories
SET quantity = quantity - $2, updated_at = now()
WHERE id = $1 AND quantity >= $2`

const insertCategorySQL = `
INSERT INTO ticket_categories (id, event_id, name, description, price_cents, quantity)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id`

type InventoryRepository struct{}

func NewInventoryRepository() *InventoryRepository {
	return &InventoryRepository{}
}

func (r *InventoryRepository) LockCategories(ctx context.Context, tx db.DBTX, ids []uuid.UUID) ([]shared.TicketCategorySnapshot, error) {
	rows, err := tx.Query(ctx, lockCategoriesSQL, ids)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to lock ticket categories", err)
	}
	defer rows.Close()

	var snapshots []shared.TicketCategorySnapshot
	for rows.Next() {
		var s shared.TicketCategorySnapshot
		if err := rows.Scan(&s.ID, &s.EventID, &s.Name, &s.PriceCents, &s.Quantity); err != nil {
			return nil, infra.WrapRepoErr("failed to scan locked ticket category", err)
		}
		snapshots = append(snapshots, s)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read locked ticket categories", err)
	}

	return snapshots, nil
}

func (r *InventoryRepository) Decrement(ctx context.Context, tx db.DBTX, id uuid.UUID, amount int32) error {
	tag, err := tx.Exec(ctx, decrementQuantitySQL, id, amount)
	if err != nil {
		return infra.WrapRepoErr("failed to decrement ticket quantity", err)
	}

	// The caller holds a row lock, so a zero row count cannot mean the
	// category vanished: the stock guard refused the decrement.
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("insufficient stock for ticket category "+id.String(), nil, infra.KindInsufficientStock)
	}

	return nil
}

func (r *InventoryRepository) CreateCategory(ctx context.Context, tx db.DBTX, cat *ticket.Category) (uuid.UUID, error) {
	var id uuid.UUID
	err := tx.QueryRow(ctx, insertCategorySQL,
		cat.ID(),
		cat.EventID(),
		cat.Name(),
		cat.Description(),
		cat.PriceCents(),
		cat.Quantity(),
	).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return uuid.Nil, infra.WrapRepoErr("event not found for ticket category", err, infra.KindForeignKeyViolated)
		}
		return uuid.Nil, infra.WrapRepoErr("failed to create ticket category", err)
	}

	return id, nil
}
