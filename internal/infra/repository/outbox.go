package repository

import (
	"context"

	"ticketbooth/internal/infra"
	"ticketbooth/internal/infra/db"

	"github.com/google/uuid"
)

const insertOutboxEventSQL = `
INSERT INTO outbox_events (id, topic, payload, status)
VALUES ($1, $2, $3, 'pending')`

// OutboxRepository stages domain events in the same transaction as the
// writes that caused them; cmd/worker relays pending rows to the broker.
type OutboxRepository struct{}

func NewOutboxRepository() *OutboxRepository {
	return &OutboxRepository{}
}

func (r *OutboxRepository) CreateEvent(ctx context.Context, tx db.DBTX, topic string, payload []byte) error {
	_, err := tx.Exec(ctx, insertOutboxEventSQL, uuid.New(), topic, payload)
	if err != nil {
		return infra.WrapRepoErr("failed to stage outbox event", err)
	}
	return nil
}
