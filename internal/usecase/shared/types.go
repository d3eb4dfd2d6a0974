package shared

import (
	"time"

	"github.com/google/uuid"
)

// TicketCategorySnapshot is the command-side view of a ticket category:
// just enough to validate stock and snapshot price/name into an order.
type TicketCategorySnapshot struct {
	ID         uuid.UUID
	EventID    uuid.UUID
	Name       string
	PriceCents int64
	Quantity   int32
}

type UserSnapshot struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	Role         string
	IsActive     bool
	LastLogin    *time.Time
}
