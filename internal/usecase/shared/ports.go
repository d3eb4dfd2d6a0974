package shared

import (
	"context"

	"ticketbooth/internal/domain/cart"

	"github.com/google/uuid"
)

// CartStore is the keyed staging store for pre-checkout carts. The default
// implementation is in-process and non-durable; a multi-instance deployment
// swaps in an external keyed store behind the same port.
type CartStore interface {
	Get(ctx context.Context, userID uuid.UUID) (*cart.Cart, error)
	Put(ctx context.Context, userID uuid.UUID, c *cart.Cart) error
	Delete(ctx context.Context, userID uuid.UUID) error
}

type PaymentStatus string

const (
	PaymentApproved PaymentStatus = "approved"
	PaymentDeclined PaymentStatus = "declined"
	PaymentError    PaymentStatus = "error"
)

type CardDetails struct {
	Number         string
	ExpMonth       int
	ExpYear        int
	CVC            string
	CardholderName string
}

type PaymentRequest struct {
	AmountCents int64
	Card        CardDetails
}

type PaymentResult struct {
	Status    PaymentStatus
	Reference string
	Reason    string
}

// PaymentAuthorizer is the pluggable payment capability. Authorize returns
// a typed result; transport-level failures come back as the error.
type PaymentAuthorizer interface {
	Authorize(ctx context.Context, req PaymentRequest) (PaymentResult, error)
}
