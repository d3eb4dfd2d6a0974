package repository

import (
	"context"
	"encoding/json"
	"errors"

	"ticketbooth/internal/domain/order"
	"ticketbooth/internal/infra"
	"ticketbooth/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

const insertOrderSQL = `
INSERT INTO orders (id, user_id, customer_info, billing_address, payment_info, total_amount_cents, status)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id`

const insertOrderItemSQL = `
INSERT INTO order_items (id, order_id, ticket_category_id, name, price_at_purchase_cents, quantity)
VALUES ($1, $2, $3, $4, $5, $6)`

// The jsonb snapshot keys are a contract with the read side: the order views
// decode these exact keys, so the domain value objects are mapped through
// tagged records instead of being marshaled directly.
type customerInfoRecord struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
}

type billingAddressRecord struct {
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state,omitempty"`
	ZipCode string `json:"zip_code"`
}

type paymentInfoRecord struct {
	LastFour       string `json:"last_four"`
	CardholderName string `json:"cardholder_name"`
}

type OrderRepository struct{}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{}
}

func (r *OrderRepository) Create(ctx context.Context, tx db.DBTX, o *order.Order) (uuid.UUID, error) {
	customer := o.Customer()
	customerJSON, err := json.Marshal(customerInfoRecord{
		FirstName: customer.FirstName,
		LastName:  customer.LastName,
		Email:     customer.Email,
		Phone:     customer.Phone,
	})
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to encode customer info", err)
	}
	billing := o.Billing()
	billingJSON, err := json.Marshal(billingAddressRecord{
		Address: billing.Address,
		City:    billing.City,
		State:   billing.State,
		ZipCode: billing.ZipCode,
	})
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to encode billing address", err)
	}
	payment := o.Payment()
	paymentJSON, err := json.Marshal(paymentInfoRecord{
		LastFour:       payment.LastFour,
		CardholderName: payment.CardholderName,
	})
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to encode payment info", err)
	}

	var orderID uuid.UUID
	err = tx.QueryRow(ctx, insertOrderSQL,
		o.ID(),
		o.UserID(),
		customerJSON,
		billingJSON,
		paymentJSON,
		o.TotalAmount().Cents(),
		o.Status().String(),
	).Scan(&orderID)
	if err != nil {
		return uuid.Nil, wrapOrderWriteErr(err)
	}

	for _, item := range o.Items() {
		_, err := tx.Exec(ctx, insertOrderItemSQL,
			uuid.New(),
			orderID,
			item.TicketCategoryID,
			item.Name,
			item.UnitPrice.Cents(),
			item.Quantity,
		)
		if err != nil {
			return uuid.Nil, wrapOrderWriteErr(err)
		}
	}

	return orderID, nil
}

func wrapOrderWriteErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return infra.WrapRepoErr("order already exists", err, infra.KindDuplicateKey)
		case "23503":
			return infra.WrapRepoErr("order references unknown ticket category", err, infra.KindForeignKeyViolated)
		}
	}
	return infra.WrapRepoErr("failed to persist order", err)
}
