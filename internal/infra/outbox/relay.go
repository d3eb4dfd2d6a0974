package outbox

import (
	"context"
	"log/slog"
	"time"

	"ticketbooth/internal/pkg/config"
	"ticketbooth/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SKIP LOCKED lets multiple relay instances drain the table without
// double-publishing each other's rows.
const claimPendingSQL = `
SELECT id, topic, payload
FROM outbox_events
WHERE status = 'pending'
ORDER BY created_at
LIMIT $1
FOR UPDATE SKIP LOCKED`

const markPublishedSQL = `
UPDATE outbox_events
SET status = 'published', published_at = now()
WHERE id = $1`

const markFailedSQL = `
UPDATE outbox_events
SET attempts = attempts + 1, last_error = $2
WHERE id = $1`

// Relay drains pending outbox rows to the broker. Delivery is at-least-once:
// a crash between publish and commit replays the row on the next pass.
type Relay struct {
	pool  *pgxpool.Pool
	pub   Publisher
	poll  time.Duration
	batch int
}

func NewRelay(pool *pgxpool.Pool, pub Publisher, cfg config.KafkaConfig) *Relay {
	return &Relay{
		pool:  pool,
		pub:   pub,
		poll:  cfg.RelayPoll,
		batch: cfg.RelayBatch,
	}
}

// Run polls until the context is cancelled.
func (r *Relay) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.poll)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			sent, err := r.DrainOnce(ctx)
			if err != nil {
				slog.Error("outbox drain failed", "error", err.Error())
				continue
			}
			if sent > 0 {
				slog.Info("relayed outbox events", "count", sent)
			}
		}
	}
}

// DrainOnce claims one batch of pending rows, publishes them and records the
// outcome per row. Rows whose publish failed stay pending with an incremented
// attempt counter.
func (r *Relay) DrainOnce(ctx context.Context) (int, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, errs.Wrap(err, "failed to begin outbox transaction")
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	rows, err := tx.Query(ctx, claimPendingSQL, r.batch)
	if err != nil {
		return 0, errs.Wrap(err, "failed to claim outbox events")
	}

	type pendingEvent struct {
		id      uuid.UUID
		topic   string
		payload []byte
	}
	var pending []pendingEvent
	for rows.Next() {
		var ev pendingEvent
		if err := rows.Scan(&ev.id, &ev.topic, &ev.payload); err != nil {
			rows.Close()
			return 0, errs.Wrap(err, "failed to scan outbox event")
		}
		pending = append(pending, ev)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return 0, errs.Wrap(err, "failed to read outbox events")
	}

	sent := 0
	for _, ev := range pending {
		if pubErr := r.pub.Publish(ctx, ev.topic, ev.id.String(), ev.payload); pubErr != nil {
			slog.Warn("failed to publish outbox event", "event_id", ev.id, "topic", ev.topic, "error", pubErr.Error())
			if _, markErr := tx.Exec(ctx, markFailedSQL, ev.id, pubErr.Error()); markErr != nil {
				return sent, errs.Wrap(markErr, "failed to record outbox failure")
			}
			continue
		}
		if _, markErr := tx.Exec(ctx, markPublishedSQL, ev.id); markErr != nil {
			return sent, errs.Wrap(markErr, "failed to mark outbox event published")
		}
		sent++
	}

	if err := tx.Commit(ctx); err != nil {
		return sent, errs.Wrap(err, "failed to commit outbox transaction")
	}
	return sent, nil
}
