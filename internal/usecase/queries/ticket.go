package queries

import (
	"context"

	"ticketbooth/internal/infra"
	"ticketbooth/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrTicketCategoryNotFound = errs.New("ticket category not found")

type TicketReadStore interface {
	FindCategoryByID(ctx context.Context, id uuid.UUID) (*TicketCategoryView, error)
	FindCategoriesByIDs(ctx context.Context, ids []uuid.UUID) ([]TicketCategoryView, error)
	ListCategoriesByEvent(ctx context.Context, eventID uuid.UUID) ([]TicketCategoryView, error)
}

type TicketQueries interface {
	GetCategory(ctx context.Context, id uuid.UUID) (*TicketCategoryView, error)
	ListByEvent(ctx context.Context, eventID uuid.UUID) ([]TicketCategoryView, error)
}

type ticketQueriesImpl struct {
	readStore TicketReadStore
}

func NewTicketQueries(readStore TicketReadStore) TicketQueries {
	return &ticketQueriesImpl{readStore: readStore}
}

func (q *ticketQueriesImpl) GetCategory(ctx context.Context, id uuid.UUID) (*TicketCategoryView, error) {
	view, err := q.readStore.FindCategoryByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrTicketCategoryNotFound
		}
		return nil, err
	}
	return view, nil
}

func (q *ticketQueriesImpl) ListByEvent(ctx context.Context, eventID uuid.UUID) ([]TicketCategoryView, error) {
	views, err := q.readStore.ListCategoriesByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if views == nil {
		views = []TicketCategoryView{}
	}
	return views, nil
}
