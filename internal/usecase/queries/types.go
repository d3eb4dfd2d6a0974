package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTOs for the read side)

type TicketCategoryView struct {
	ID          uuid.UUID `json:"id"`
	EventID     uuid.UUID `json:"event_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	PriceCents  int64     `json:"price_cents"`
	Quantity    int32     `json:"quantity"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type EventView struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Date      time.Time `json:"date"`
	Location  string    `json:"location"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type OrderLineItemView struct {
	TicketCategoryID uuid.UUID `json:"ticket_category_id"`
	Name             string    `json:"name"`
	UnitPriceCents   int64     `json:"unit_price_cents"`
	Quantity         int32     `json:"quantity"`
}

type CustomerInfoView struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
}

type BillingAddressView struct {
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state,omitempty"`
	ZipCode string `json:"zip_code"`
}

type PaymentInfoView struct {
	LastFour       string `json:"last_four"`
	CardholderName string `json:"cardholder_name"`
}

type OrderView struct {
	ID               uuid.UUID           `json:"id"`
	UserID           uuid.UUID           `json:"user_id"`
	Items            []OrderLineItemView `json:"items"`
	Customer         CustomerInfoView    `json:"customer_info"`
	Billing          BillingAddressView  `json:"billing_address"`
	Payment          PaymentInfoView     `json:"payment_info"`
	TotalAmountCents int64               `json:"total_amount_cents"`
	Status           string              `json:"status"`
	CreatedAt        time.Time           `json:"created_at"`
	UpdatedAt        time.Time           `json:"updated_at"`
}

type OrderListItem struct {
	ID               uuid.UUID `json:"id"`
	TotalAmountCents int64     `json:"total_amount_cents"`
	Status           string    `json:"status"`
	ItemCount        int32     `json:"item_count"`
	CreatedAt        time.Time `json:"created_at"`
}

// OrderPage carries one page of order history plus the total row count the
// caller needs for pagination.
type OrderPage struct {
	Total  int64           `json:"total"`
	Limit  int32           `json:"limit"`
	Offset int32           `json:"offset"`
	Orders []OrderListItem `json:"orders"`
}

type CartLineView struct {
	TicketCategoryID uuid.UUID `json:"ticket_category_id"`
	Name             string    `json:"name"`
	UnitPriceCents   int64     `json:"unit_price_cents"`
	Quantity         int32     `json:"quantity"`
	SubtotalCents    int64     `json:"subtotal_cents"`
}

type CartView struct {
	Lines         []CartLineView `json:"lines"`
	TotalItems    int32          `json:"total_items"`
	SubtotalCents int64          `json:"subtotal_cents"`
}

type AuthorizedUserView struct {
	ID        uuid.UUID  `json:"id"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	IsActive  bool       `json:"is_active"`
	LastLogin *time.Time `json:"last_login,omitempty"`
}
