package queries

import (
	"context"

	"ticketbooth/internal/infra"
	"ticketbooth/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrEventNotFound = errs.New("event not found")

type EventReadStore interface {
	List(ctx context.Context) ([]EventView, error)
	FindByID(ctx context.Context, id uuid.UUID) (*EventView, error)
}

type EventQueries interface {
	List(ctx context.Context) ([]EventView, error)
	GetByID(ctx context.Context, id uuid.UUID) (*EventView, error)
}

type eventQueriesImpl struct {
	readStore EventReadStore
}

func NewEventQueries(readStore EventReadStore) EventQueries {
	return &eventQueriesImpl{readStore: readStore}
}

func (q *eventQueriesImpl) List(ctx context.Context) ([]EventView, error) {
	views, err := q.readStore.List(ctx)
	if err != nil {
		return nil, err
	}
	if views == nil {
		views = []EventView{}
	}
	return views, nil
}

func (q *eventQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*EventView, error) {
	view, err := q.readStore.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return view, nil
}
