//go:build unit || e2e

package builder

import (
	"time"

	"ticketbooth/internal/domain/cart"
	domorder "ticketbooth/internal/domain/order"
	reqdto "ticketbooth/internal/handler/dto/request"
	"ticketbooth/internal/usecase/queries"
	"ticketbooth/internal/usecase/shared"

	"github.com/google/uuid"
)

// CheckoutBuilder assembles a single-line checkout scenario: one ticket
// category, one cart line and the customer/billing/card details needed to
// complete the purchase.
type CheckoutBuilder struct {
	UserID         uuid.UUID
	EventID        uuid.UUID
	CategoryID     uuid.UUID
	CategoryName   string
	PriceCents     int64
	Stock          int32
	Quantity       int32
	FirstName      string
	LastName       string
	Email          string
	Phone          string
	Address        string
	City           string
	State          string
	ZipCode        string
	CardNumber     string
	ExpMonth       int
	ExpYear        int
	CVC            string
	CardholderName string
	CreatedAt      time.Time
}

func NewCheckoutBuilder() *CheckoutBuilder {
	now := time.Now()
	return &CheckoutBuilder{
		UserID:         uuid.New(),
		EventID:        uuid.New(),
		CategoryID:     uuid.New(),
		CategoryName:   "General Admission",
		PriceCents:     5000,
		Stock:          10,
		Quantity:       2,
		FirstName:      "Jane",
		LastName:       "Doe",
		Email:          "jane.doe@example.com",
		Phone:          "555-0100",
		Address:        "1 Main St",
		City:           "Springfield",
		State:          "IL",
		ZipCode:        "62701",
		CardNumber:     "4242424242424242",
		ExpMonth:       12,
		ExpYear:        now.Year() + 2,
		CVC:            "123",
		CardholderName: "Jane Doe",
		CreatedAt:      now,
	}
}

func (b *CheckoutBuilder) With(mutate func(*CheckoutBuilder)) *CheckoutBuilder {
	mutate(b)
	return b
}

// Build methods

func (b *CheckoutBuilder) BuildCheckoutRequestDTO() reqdto.CheckoutRequest {
	return reqdto.CheckoutRequest{
		Customer: reqdto.CustomerInfoRequest{
			FirstName: b.FirstName,
			LastName:  b.LastName,
			Email:     b.Email,
			Phone:     b.Phone,
		},
		Billing: reqdto.BillingAddressRequest{
			Address: b.Address,
			City:    b.City,
			State:   b.State,
			ZipCode: b.ZipCode,
		},
		Payment: reqdto.PaymentCardRequest{
			CardNumber:     b.CardNumber,
			ExpMonth:       b.ExpMonth,
			ExpYear:        b.ExpYear,
			CVC:            b.CVC,
			CardholderName: b.CardholderName,
		},
	}
}

func (b *CheckoutBuilder) BuildAddItemRequestDTO() reqdto.AddCartItemRequest {
	return reqdto.AddCartItemRequest{
		TicketCategoryID: b.CategoryID,
		Quantity:         b.Quantity,
	}
}

// BuildDomain assembles the order the way the checkout path does: value
// objects first, then line items from the category snapshot.
func (b *CheckoutBuilder) BuildDomain() (*domorder.Order, error) {
	customer, err := domorder.NewCustomerInfo(b.FirstName, b.LastName, b.Email, b.Phone)
	if err != nil {
		return nil, err
	}
	billing, err := domorder.NewBillingAddress(b.Address, b.City, b.State, b.ZipCode)
	if err != nil {
		return nil, err
	}
	lastFour := b.CardNumber
	if len(lastFour) > 4 {
		lastFour = lastFour[len(lastFour)-4:]
	}
	payment, err := domorder.NewPaymentInfo(lastFour, b.CardholderName)
	if err != nil {
		return nil, err
	}

	price, err := domorder.NewMoney(b.PriceCents)
	if err != nil {
		return nil, err
	}
	item, err := domorder.NewLineItem(b.CategoryID, b.CategoryName, price, b.Quantity)
	if err != nil {
		return nil, err
	}

	return domorder.NewOrder(b.UserID, []domorder.LineItem{item}, customer, billing, payment)
}

func (b *CheckoutBuilder) BuildSnapshot() shared.TicketCategorySnapshot {
	return shared.TicketCategorySnapshot{
		ID:         b.CategoryID,
		EventID:    b.EventID,
		Name:       b.CategoryName,
		PriceCents: b.PriceCents,
		Quantity:   b.Stock,
	}
}

func (b *CheckoutBuilder) BuildCartLine() cart.Line {
	return cart.Line{TicketCategoryID: b.CategoryID, Quantity: b.Quantity}
}

func (b *CheckoutBuilder) BuildCart() *cart.Cart {
	return cart.Reconstruct([]cart.Line{b.BuildCartLine()})
}

func (b *CheckoutBuilder) BuildOrderView() *queries.OrderView {
	lastFour := b.CardNumber
	if len(lastFour) > 4 {
		lastFour = lastFour[len(lastFour)-4:]
	}
	return &queries.OrderView{
		ID:     uuid.New(),
		UserID: b.UserID,
		Items: []queries.OrderLineItemView{
			{
				TicketCategoryID: b.CategoryID,
				Name:             b.CategoryName,
				UnitPriceCents:   b.PriceCents,
				Quantity:         b.Quantity,
			},
		},
		Customer: queries.CustomerInfoView{
			FirstName: b.FirstName,
			LastName:  b.LastName,
			Email:     b.Email,
			Phone:     b.Phone,
		},
		Billing: queries.BillingAddressView{
			Address: b.Address,
			City:    b.City,
			State:   b.State,
			ZipCode: b.ZipCode,
		},
		Payment: queries.PaymentInfoView{
			LastFour:       lastFour,
			CardholderName: b.CardholderName,
		},
		TotalAmountCents: b.PriceCents * int64(b.Quantity),
		Status:           "completed",
		CreatedAt:        b.CreatedAt,
		UpdatedAt:        b.CreatedAt,
	}
}

func (b *CheckoutBuilder) BuildListItem() queries.OrderListItem {
	return queries.OrderListItem{
		ID:               uuid.New(),
		TotalAmountCents: b.PriceCents * int64(b.Quantity),
		Status:           "completed",
		ItemCount:        b.Quantity,
		CreatedAt:        b.CreatedAt,
	}
}

func (b *CheckoutBuilder) BuildCartView() *queries.CartView {
	return &queries.CartView{
		Lines: []queries.CartLineView{
			{
				TicketCategoryID: b.CategoryID,
				Name:             b.CategoryName,
				UnitPriceCents:   b.PriceCents,
				Quantity:         b.Quantity,
				SubtotalCents:    b.PriceCents * int64(b.Quantity),
			},
		},
		TotalItems:    b.Quantity,
		SubtotalCents: b.PriceCents * int64(b.Quantity),
	}
}

// Fluent builder methods

func (b *CheckoutBuilder) WithUserID(userID uuid.UUID) *CheckoutBuilder {
	b.UserID = userID
	return b
}

func (b *CheckoutBuilder) WithCategoryID(categoryID uuid.UUID) *CheckoutBuilder {
	b.CategoryID = categoryID
	return b
}

func (b *CheckoutBuilder) WithCategoryName(name string) *CheckoutBuilder {
	b.CategoryName = name
	return b
}

func (b *CheckoutBuilder) WithPriceCents(cents int64) *CheckoutBuilder {
	b.PriceCents = cents
	return b
}

func (b *CheckoutBuilder) WithStock(stock int32) *CheckoutBuilder {
	b.Stock = stock
	return b
}

func (b *CheckoutBuilder) WithQuantity(quantity int32) *CheckoutBuilder {
	b.Quantity = quantity
	return b
}

func (b *CheckoutBuilder) WithFirstName(firstName string) *CheckoutBuilder {
	b.FirstName = firstName
	return b
}

func (b *CheckoutBuilder) WithLastName(lastName string) *CheckoutBuilder {
	b.LastName = lastName
	return b
}

func (b *CheckoutBuilder) WithEmail(email string) *CheckoutBuilder {
	b.Email = email
	return b
}

func (b *CheckoutBuilder) WithAddress(address string) *CheckoutBuilder {
	b.Address = address
	return b
}

func (b *CheckoutBuilder) WithZipCode(zipCode string) *CheckoutBuilder {
	b.ZipCode = zipCode
	return b
}

func (b *CheckoutBuilder) WithCardNumber(number string) *CheckoutBuilder {
	b.CardNumber = number
	return b
}

func (b *CheckoutBuilder) WithCardholderName(name string) *CheckoutBuilder {
	b.CardholderName = name
	return b
}
