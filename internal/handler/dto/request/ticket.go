package request

import (
	"ticketbooth/internal/domain/ticket"

	"github.com/google/uuid"
)

type CreateTicketCategoryRequest struct {
	EventID     uuid.UUID `json:"event_id" binding:"required"`
	Name        string    `json:"name" binding:"required"`
	Description string    `json:"description,omitempty"`
	PriceCents  int64     `json:"price_cents" binding:"required,gte=0"`
	Quantity    int32     `json:"quantity" binding:"required,gte=0"`
}

func (r *CreateTicketCategoryRequest) ToDomain() (*ticket.Category, error) {
	return ticket.NewCategory(r.EventID, r.Name, r.Description, r.PriceCents, r.Quantity)
}
