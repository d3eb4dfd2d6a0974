package readstore

import (
	"context"
	"encoding/json"

	"ticketbooth/internal/infra"
	"ticketbooth/internal/infra/db"
	"ticketbooth/internal/pkg/pgconv"
	"ticketbooth/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const findOrderByIDSQL = `
SELECT id, user_id, customer_info, billing_address, payment_info, total_amount_cents, status, created_at, updated_at
FROM orders
WHERE id = $1`

const findOrderItemsSQL = `
SELECT ticket_category_id, name, price_at_purchase_cents, quantity
FROM order_items
WHERE order_id = $1
ORDER BY created_at, id`

const listOrdersByUserSQL = `
SELECT o.id, o.total_amount_cents, o.status, o.created_at,
       (SELECT COALESCE(SUM(oi.quantity), 0) FROM order_items oi WHERE oi.order_id = o.id) AS item_count
FROM orders o
WHERE o.user_id = $1
ORDER BY o.created_at DESC, o.id DESC
LIMIT $2 OFFSET $3`

const countOrdersByUserSQL = `
SELECT COUNT(*) FROM orders WHERE user_id = $1`

type OrderReadStore struct{}

func NewOrderReadStore() *OrderReadStore {
	return &OrderReadStore{}
}

func (r *OrderReadStore) FindByID(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*queries.OrderView, error) {
	var (
		view         queries.OrderView
		customerJSON []byte
		billingJSON  []byte
		paymentJSON  []byte
		createdAt    pgtype.Timestamptz
		updatedAt    pgtype.Timestamptz
	)

	err := dbtx.QueryRow(ctx, findOrderByIDSQL, id).Scan(
		&view.ID,
		&view.UserID,
		&customerJSON,
		&billingJSON,
		&paymentJSON,
		&view.TotalAmountCents,
		&view.Status,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("order not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find order", err)
	}

	if err := json.Unmarshal(customerJSON, &view.Customer); err != nil {
		return nil, infra.WrapRepoErr("failed to decode customer info", err)
	}
	if err := json.Unmarshal(billingJSON, &view.Billing); err != nil {
		return nil, infra.WrapRepoErr("failed to decode billing address", err)
	}
	if err := json.Unmarshal(paymentJSON, &view.Payment); err != nil {
		return nil, infra.WrapRepoErr("failed to decode payment info", err)
	}
	view.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	view.UpdatedAt = pgconv.TimeFromPgtype(updatedAt)

	items, err := r.findItems(ctx, dbtx, id)
	if err != nil {
		return nil, err
	}
	view.Items = items

	return &view, nil
}

func (r *OrderReadStore) ListByUser(ctx context.Context, dbtx db.DBTX, userID uuid.UUID, limit, offset int32) ([]queries.OrderListItem, int64, error) {
	var total int64
	if err := dbtx.QueryRow(ctx, countOrdersByUserSQL, userID).Scan(&total); err != nil {
		return nil, 0, infra.WrapRepoErr("failed to count orders", err)
	}

	rows, err := dbtx.Query(ctx, listOrdersByUserSQL, userID, limit, offset)
	if err != nil {
		return nil, 0, infra.WrapRepoErr("failed to list orders", err)
	}
	defer rows.Close()

	var items []queries.OrderListItem
	for rows.Next() {
		var (
			item      queries.OrderListItem
			createdAt pgtype.Timestamptz
			itemCount int64
		)
		if err := rows.Scan(&item.ID, &item.TotalAmountCents, &item.Status, &createdAt, &itemCount); err != nil {
			return nil, 0, infra.WrapRepoErr("failed to scan order list item", err)
		}
		item.CreatedAt = pgconv.TimeFromPgtype(createdAt)
		item.ItemCount = int32(itemCount)
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, infra.WrapRepoErr("failed to read orders", err)
	}

	return items, total, nil
}

func (r *OrderReadStore) findItems(ctx context.Context, dbtx db.DBTX, orderID uuid.UUID) ([]queries.OrderLineItemView, error) {
	rows, err := dbtx.Query(ctx, findOrderItemsSQL, orderID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find order items", err)
	}
	defer rows.Close()

	var items []queries.OrderLineItemView
	for rows.Next() {
		var item queries.OrderLineItemView
		if err := rows.Scan(&item.TicketCategoryID, &item.Name, &item.UnitPriceCents, &item.Quantity); err != nil {
			return nil, infra.WrapRepoErr("failed to scan order item", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read order items", err)
	}

	return items, nil
}
