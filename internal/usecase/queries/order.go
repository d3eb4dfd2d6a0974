package queries

import (
	"context"

	"ticketbooth/internal/domain/user"
	"ticketbooth/internal/infra"
	"ticketbooth/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrOrderNotFound = errs.New("order not found")

const (
	minPageSize = 1
	maxPageSize = 100
)

type OrderReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*OrderView, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int32) ([]OrderListItem, int64, error)
}

type OrderQueries interface {
	GetByID(ctx context.Context, id uuid.UUID, actorID uuid.UUID, actorRole string) (*OrderView, error)
	ListForUser(ctx context.Context, userID uuid.UUID, limit, offset int) (*OrderPage, error)
}

type orderQueriesImpl struct {
	readStore OrderReadStore
}

func NewOrderQueries(readStore OrderReadStore) OrderQueries {
	return &orderQueriesImpl{readStore: readStore}
}

// GetByID hides orders from everyone but their owner and admins. Access
// failures look identical to missing orders so ids cannot be probed.
func (q *orderQueriesImpl) GetByID(ctx context.Context, id uuid.UUID, actorID uuid.UUID, actorRole string) (*OrderView, error) {
	view, err := q.readStore.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	role, err := user.NewRole(actorRole)
	if err != nil {
		return nil, ErrOrderNotFound
	}
	if !role.CanViewOrder(view.UserID == actorID) {
		return nil, ErrOrderNotFound
	}

	return view, nil
}

func (q *orderQueriesImpl) ListForUser(ctx context.Context, userID uuid.UUID, limit, offset int) (*OrderPage, error) {
	pageLimit, pageOffset := normalizePage(limit, offset)

	orders, total, err := q.readStore.ListByUser(ctx, userID, pageLimit, pageOffset)
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []OrderListItem{}
	}

	return &OrderPage{
		Total:  total,
		Limit:  pageLimit,
		Offset: pageOffset,
		Orders: orders,
	}, nil
}

// Limit is clamped into [1,100] and offset to >= 0; the HTTP layer supplies
// the default page size when the caller sends no limit at all.
func normalizePage(limit, offset int) (int32, int32) {
	if limit < minPageSize {
		limit = minPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return int32(limit), int32(offset)
}
