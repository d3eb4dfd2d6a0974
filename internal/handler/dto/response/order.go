package response

import (
	"time"

	"ticketbooth/internal/pkg/errs"
	"ticketbooth/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type OrderLineItemResponse struct {
	TicketCategoryID uuid.UUID `json:"ticket_category_id"`
	Name             string    `json:"name"`
	UnitPriceCents   int64     `json:"unit_price_cents"`
	Quantity         int32     `json:"quantity"`
}

type CustomerInfoResponse struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
}

type BillingAddressResponse struct {
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state,omitempty"`
	ZipCode string `json:"zip_code"`
}

type PaymentInfoResponse struct {
	LastFour       string `json:"last_four"`
	CardholderName string `json:"cardholder_name"`
}

type OrderResponse struct {
	ID               uuid.UUID               `json:"id"`
	UserID           uuid.UUID               `json:"user_id"`
	Items            []OrderLineItemResponse `json:"items"`
	Customer         CustomerInfoResponse    `json:"customer_info"`
	Billing          BillingAddressResponse  `json:"billing_address"`
	Payment          PaymentInfoResponse     `json:"payment_info"`
	TotalAmountCents int64                   `json:"total_amount_cents"`
	Status           string                  `json:"status"`
	CreatedAt        time.Time               `json:"created_at"`
	UpdatedAt        time.Time               `json:"updated_at"`
}

type OrderListItemResponse struct {
	ID               uuid.UUID `json:"id"`
	TotalAmountCents int64     `json:"total_amount_cents"`
	Status           string    `json:"status"`
	ItemCount        int32     `json:"item_count"`
	CreatedAt        time.Time `json:"created_at"`
}

type OrderPageResponse struct {
	Total  int64                   `json:"total"`
	Limit  int32                   `json:"limit"`
	Offset int32                   `json:"offset"`
	Orders []OrderListItemResponse `json:"orders"`
}

func FromOrderView(rm *queries.OrderView) (*OrderResponse, error) {
	var resp OrderResponse
	if err := copier.Copy(&resp, rm); err != nil {
		return nil, errs.Wrap(err, "failed to convert order view")
	}
	return &resp, nil
}

func FromOrderPage(rm *queries.OrderPage) (*OrderPageResponse, error) {
	resp := &OrderPageResponse{
		Total:  rm.Total,
		Limit:  rm.Limit,
		Offset: rm.Offset,
		Orders: make([]OrderListItemResponse, 0, len(rm.Orders)),
	}
	if err := copier.Copy(&resp.Orders, &rm.Orders); err != nil {
		return nil, errs.Wrap(err, "failed to convert order list items")
	}
	return resp, nil
}
