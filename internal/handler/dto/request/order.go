package request

import (
	"ticketbooth/internal/domain/cart"
	"ticketbooth/internal/domain/order"
	"ticketbooth/internal/usecase/shared"

	"github.com/google/uuid"
)

type CustomerInfoRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Phone     string `json:"phone,omitempty"`
}

type BillingAddressRequest struct {
	Address string `json:"address" binding:"required"`
	City    string `json:"city" binding:"required"`
	State   string `json:"state,omitempty"`
	ZipCode string `json:"zip_code" binding:"required"`
}

type PaymentCardRequest struct {
	CardNumber     string `json:"card_number" binding:"required"`
	ExpMonth       int    `json:"exp_month" binding:"required,min=1,max=12"`
	ExpYear        int    `json:"exp_year" binding:"required"`
	CVC            string `json:"cvc" binding:"required"`
	CardholderName string `json:"cardholder_name" binding:"required"`
}

type CheckoutTicketRequest struct {
	TicketCategoryID uuid.UUID `json:"ticket_category_id" binding:"required"`
	Quantity         int32     `json:"quantity" binding:"required,gt=0"`
}

// CheckoutRequest carries the purchase details. Tickets is optional: when
// present it is bought as given, otherwise the user's staged cart is used.
type CheckoutRequest struct {
	Tickets  []CheckoutTicketRequest `json:"tickets,omitempty" binding:"omitempty,dive"`
	Customer CustomerInfoRequest     `json:"customer_info" binding:"required"`
	Billing  BillingAddressRequest   `json:"billing_address" binding:"required"`
	Payment  PaymentCardRequest      `json:"payment_info" binding:"required"`
}

func (r *CheckoutRequest) TicketLines() []cart.Line {
	if len(r.Tickets) == 0 {
		return nil
	}
	lines := make([]cart.Line, len(r.Tickets))
	for i, t := range r.Tickets {
		lines[i] = cart.Line{TicketCategoryID: t.TicketCategoryID, Quantity: t.Quantity}
	}
	return lines
}

func (r *CheckoutRequest) CustomerToDomain() (order.CustomerInfo, error) {
	return order.NewCustomerInfo(r.Customer.FirstName, r.Customer.LastName, r.Customer.Email, r.Customer.Phone)
}

func (r *CheckoutRequest) BillingToDomain() (order.BillingAddress, error) {
	return order.NewBillingAddress(r.Billing.Address, r.Billing.City, r.Billing.State, r.Billing.ZipCode)
}

// PaymentToDomain keeps only the card's last four digits; the full number
// never leaves the payment request.
func (r *CheckoutRequest) PaymentToDomain() (order.PaymentInfo, error) {
	digits := r.Payment.CardNumber
	if len(digits) < 4 {
		return order.PaymentInfo{}, order.ErrInvalidCardInfo
	}
	return order.NewPaymentInfo(digits[len(digits)-4:], r.Payment.CardholderName)
}

func (r *CheckoutRequest) CardDetails() shared.CardDetails {
	return shared.CardDetails{
		Number:         r.Payment.CardNumber,
		ExpMonth:       r.Payment.ExpMonth,
		ExpYear:        r.Payment.ExpYear,
		CVC:            r.Payment.CVC,
		CardholderName: r.Payment.CardholderName,
	}
}
