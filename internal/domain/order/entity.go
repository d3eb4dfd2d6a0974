package order

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNoLineItems     = errors.New("order must contain at least one line item")
	ErrInvalidQuantity = errors.New("line item quantity must be positive")
	ErrEmptyItemName   = errors.New("line item name cannot be empty")
	ErrTotalMismatch   = errors.New("total amount does not match line items")
)

// LineItem is an immutable snapshot of a ticket category at purchase time.
// The category id is kept for traceability only; name and unit price never
// follow later catalog changes.
type LineItem struct {
	TicketCategoryID uuid.UUID
	Name             string
	UnitPrice        Money
	Quantity         int32
}

func NewLineItem(categoryID uuid.UUID, name string, unitPrice Money, quantity int32) (LineItem, error) {
	if name == "" {
		return LineItem{}, ErrEmptyItemName
	}
	if quantity <= 0 {
		return LineItem{}, ErrInvalidQuantity
	}
	return LineItem{
		TicketCategoryID: categoryID,
		Name:             name,
		UnitPrice:        unitPrice,
		Quantity:         quantity,
	}, nil
}

func (li LineItem) Subtotal() Money {
	return li.UnitPrice.MultiplyBy(li.Quantity)
}

// Order is the immutable record of a completed purchase. Only the status
// field may change after creation (e.g. completed -> refunded).
type Order struct {
	id          uuid.UUID
	userID      uuid.UUID
	items       []LineItem
	customer    CustomerInfo
	billing     BillingAddress
	payment     PaymentInfo
	totalAmount Money
	status      Status
	createdAt   time.Time
	updatedAt   time.Time
}

// NewOrder builds a completed order from line-item snapshots. The total is
// derived, never supplied: totalAmount == sum of UnitPrice * Quantity holds
// by construction.
func NewOrder(
	userID uuid.UUID,
	items []LineItem,
	customer CustomerInfo,
	billing BillingAddress,
	payment PaymentInfo,
) (*Order, error) {
	if len(items) == 0 {
		return nil, ErrNoLineItems
	}

	var total Money
	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}
		total = total.Add(item.Subtotal())
	}

	return &Order{
		id:          uuid.New(),
		userID:      userID,
		items:       append([]LineItem(nil), items...),
		customer:    customer,
		billing:     billing,
		payment:     payment,
		totalAmount: total,
		status:      StatusCompleted,
	}, nil
}

func ReconstructOrder(
	id, userID uuid.UUID,
	items []LineItem,
	customer CustomerInfo,
	billing BillingAddress,
	payment PaymentInfo,
	totalAmount Money,
	status Status,
	createdAt, updatedAt time.Time,
) *Order {
	return &Order{
		id:          id,
		userID:      userID,
		items:       items,
		customer:    customer,
		billing:     billing,
		payment:     payment,
		totalAmount: totalAmount,
		status:      status,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

// VerifyTotal re-derives the total from line items; reconstructed orders use
// it to detect snapshots that drifted from their stored total.
func (o *Order) VerifyTotal() error {
	var total Money
	for _, item := range o.items {
		total = total.Add(item.Subtotal())
	}
	if total.Cents() != o.totalAmount.Cents() {
		return ErrTotalMismatch
	}
	return nil
}

func (o *Order) ID() uuid.UUID           { return o.id }
func (o *Order) UserID() uuid.UUID       { return o.userID }
func (o *Order) Items() []LineItem       { return append([]LineItem(nil), o.items...) }
func (o *Order) Customer() CustomerInfo  { return o.customer }
func (o *Order) Billing() BillingAddress { return o.billing }
func (o *Order) Payment() PaymentInfo    { return o.payment }
func (o *Order) TotalAmount() Money      { return o.totalAmount }
func (o *Order) Status() Status          { return o.status }
func (o *Order) CreatedAt() time.Time    { return o.createdAt }
func (o *Order) UpdatedAt() time.Time    { return o.updatedAt }
