package response

import (
	"ticketbooth/internal/pkg/errs"
	"ticketbooth/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type CartLineResponse struct {
	TicketCategoryID uuid.UUID `json:"ticket_category_id"`
	Name             string    `json:"name"`
	UnitPriceCents   int64     `json:"unit_price_cents"`
	Quantity         int32     `json:"quantity"`
	SubtotalCents    int64     `json:"subtotal_cents"`
}

type CartResponse struct {
	Lines         []CartLineResponse `json:"lines"`
	TotalItems    int32              `json:"total_items"`
	SubtotalCents int64              `json:"subtotal_cents"`
}

func FromCartView(rm *queries.CartView) (*CartResponse, error) {
	resp := &CartResponse{Lines: make([]CartLineResponse, 0, len(rm.Lines))}
	if err := copier.Copy(resp, rm); err != nil {
		return nil, errs.Wrap(err, "failed to convert cart view")
	}
	if resp.Lines == nil {
		resp.Lines = []CartLineResponse{}
	}
	return resp, nil
}
