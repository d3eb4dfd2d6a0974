package response

import (
	"time"

	"ticketbooth/internal/pkg/errs"
	"ticketbooth/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type EventResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Date      time.Time `json:"date"`
	Location  string    `json:"location"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func FromEventView(rm *queries.EventView) (*EventResponse, error) {
	var resp EventResponse
	if err := copier.Copy(&resp, rm); err != nil {
		return nil, errs.Wrap(err, "failed to convert event view")
	}
	return &resp, nil
}

func FromEventViews(rms []queries.EventView) ([]EventResponse, error) {
	resp := make([]EventResponse, 0, len(rms))
	if err := copier.Copy(&resp, &rms); err != nil {
		return nil, errs.Wrap(err, "failed to convert event views")
	}
	return resp, nil
}
