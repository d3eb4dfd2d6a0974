package request

import (
	"github.com/google/uuid"
)

type AddCartItemRequest struct {
	TicketCategoryID uuid.UUID `json:"ticket_category_id" binding:"required"`
	Quantity         int32     `json:"quantity" binding:"required,gt=0"`
}
