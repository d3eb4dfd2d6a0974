package response

import (
	"time"

	"ticketbooth/internal/pkg/errs"
	"ticketbooth/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type TicketCategoryResponse struct {
	ID          uuid.UUID `json:"id"`
	EventID     uuid.UUID `json:"event_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	PriceCents  int64     `json:"price_cents"`
	Quantity    int32     `json:"quantity"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func FromTicketCategoryView(rm *queries.TicketCategoryView) (*TicketCategoryResponse, error) {
	var resp TicketCategoryResponse
	if err := copier.Copy(&resp, rm); err != nil {
		return nil, errs.Wrap(err, "failed to convert ticket category view")
	}
	return &resp, nil
}

func FromTicketCategoryViews(rms []queries.TicketCategoryView) ([]TicketCategoryResponse, error) {
	resp := make([]TicketCategoryResponse, 0, len(rms))
	if err := copier.Copy(&resp, &rms); err != nil {
		return nil, errs.Wrap(err, "failed to convert ticket category views")
	}
	return resp, nil
}
