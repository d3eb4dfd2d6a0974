package shared

import (
	"context"

	"ticketbooth/internal/domain/order"
	"ticketbooth/internal/domain/ticket"
	"ticketbooth/internal/infra/db"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: full read-committed transaction with retry on serialization
	// failures and deadlocks. All checkout writes run here.
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: read-only transaction for multi-table consistent reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error
	// WithDB: single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error
	// CommandReads: validation reads outside any transaction
	CommandReads() CommandReads
}

type Tx interface {
	Orders() OrderRepository
	Inventory() InventoryRepository
	Outbox() OutboxRepository
	Users() UserRepository
	Reads() CommandReads
	DB() db.DBTX
}

type CommandReads interface {
	TicketCategoryByID(ctx context.Context, id uuid.UUID) (*TicketCategorySnapshot, error)
	TicketCategoriesByIDs(ctx context.Context, ids []uuid.UUID) ([]TicketCategorySnapshot, error)
}

type OrderRepository interface {
	Create(ctx context.Context, tx db.DBTX, o *order.Order) (uuid.UUID, error)
}

// InventoryRepository is the write side of the inventory ledger. Both
// operations are only meaningful inside the checkout transaction.
type InventoryRepository interface {
	// LockCategories acquires row locks in ascending id order and returns
	// the locked snapshots. Categories missing from the result were not
	// found.
	LockCategories(ctx context.Context, tx db.DBTX, ids []uuid.UUID) ([]TicketCategorySnapshot, error)
	// Decrement subtracts amount from the category's quantity, failing
	// rather than letting it go negative.
	Decrement(ctx context.Context, tx db.DBTX, id uuid.UUID, amount int32) error
	CreateCategory(ctx context.Context, tx db.DBTX, cat *ticket.Category) (uuid.UUID, error)
}

type OutboxRepository interface {
	CreateEvent(ctx context.Context, tx db.DBTX, topic string, payload []byte) error
}

type UserRepository interface {
	UpdateLastLogin(ctx context.Context, tx db.DBTX, userID uuid.UUID) error
	Create(ctx context.Context, tx db.DBTX, email, passwordHash, role string) (uuid.UUID, error)
}
