package readstore

import (
	"context"

	"ticketbooth/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Pool-bound adapters for the query side. Command-side callers inside a
// transaction use the stateless stores with an explicit DBTX instead.

type OrderReads struct {
	pool  *pgxpool.Pool
	store *OrderReadStore
}

func NewOrderReads(pool *pgxpool.Pool) *OrderReads {
	return &OrderReads{pool: pool, store: NewOrderReadStore()}
}

func (r *OrderReads) FindByID(ctx context.Context, id uuid.UUID) (*queries.OrderView, error) {
	return r.store.FindByID(ctx, r.pool, id)
}

func (r *OrderReads) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int32) ([]queries.OrderListItem, int64, error) {
	return r.store.ListByUser(ctx, r.pool, userID, limit, offset)
}

type TicketReads struct {
	pool  *pgxpool.Pool
	store *TicketReadStore
}

func NewTicketReads(pool *pgxpool.Pool) *TicketReads {
	return &TicketReads{pool: pool, store: NewTicketReadStore()}
}

func (r *TicketReads) FindCategoryByID(ctx context.Context, id uuid.UUID) (*queries.TicketCategoryView, error) {
	return r.store.FindCategoryByID(ctx, r.pool, id)
}

func (r *TicketReads) FindCategoriesByIDs(ctx context.Context, ids []uuid.UUID) ([]queries.TicketCategoryView, error) {
	return r.store.FindCategoriesByIDs(ctx, r.pool, ids)
}

func (r *TicketReads) ListCategoriesByEvent(ctx context.Context, eventID uuid.UUID) ([]queries.TicketCategoryView, error) {
	return r.store.ListCategoriesByEvent(ctx, r.pool, eventID)
}

type EventReads struct {
	pool  *pgxpool.Pool
	store *EventReadStore
}

func NewEventReads(pool *pgxpool.Pool) *EventReads {
	return &EventReads{pool: pool, store: NewEventReadStore()}
}

func (r *EventReads) List(ctx context.Context) ([]queries.EventView, error) {
	return r.store.ListEvents(ctx, r.pool)
}

func (r *EventReads) FindByID(ctx context.Context, id uuid.UUID) (*queries.EventView, error) {
	return r.store.FindEventByID(ctx, r.pool, id)
}

type UserReads struct {
	pool  *pgxpool.Pool
	store *UserReadStore
}

func NewUserReads(pool *pgxpool.Pool) *UserReads {
	return &UserReads{pool: pool, store: NewUserReadStore()}
}

func (r *UserReads) FindByID(ctx context.Context, id uuid.UUID) (*queries.AuthorizedUserView, error) {
	snap, err := r.store.FindByID(ctx, r.pool, id)
	if err != nil {
		return nil, err
	}
	return &queries.AuthorizedUserView{
		ID:        snap.ID,
		Email:     snap.Email,
		Role:      snap.Role,
		IsActive:  snap.IsActive,
		LastLogin: snap.LastLogin,
	}, nil
}

func (r *UserReads) FindByEmail(ctx context.Context, email string) (*queries.AuthorizedUserView, string, error) {
	snap, err := r.store.FindByEmail(ctx, r.pool, email)
	if err != nil {
		return nil, "", err
	}
	view := &queries.AuthorizedUserView{
		ID:        snap.ID,
		Email:     snap.Email,
		Role:      snap.Role,
		IsActive:  snap.IsActive,
		LastLogin: snap.LastLogin,
	}
	return view, snap.PasswordHash, nil
}
