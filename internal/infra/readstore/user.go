package readstore

import (
	"context"

	"ticketbooth/internal/infra"
	"ticketbooth/internal/infra/db"
	"ticketbooth/internal/pkg/pgconv"
	"ticketbooth/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const findUserByEmailSQL = `
SELECT id, email, password_hash, role, is_active, last_login
FROM users
WHERE email = $1`

const findUserByIDSQL = `
SELECT id, email, password_hash, role, is_active, last_login
FROM users
WHERE id = $1`

type UserReadStore struct{}

func NewUserReadStore() *UserReadStore {
	return &UserReadStore{}
}

func (r *UserReadStore) FindByEmail(ctx context.Context, dbtx db.DBTX, email string) (*shared.UserSnapshot, error) {
	return r.scanUser(ctx, dbtx, findUserByEmailSQL, email)
}

func (r *UserReadStore) FindByID(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*shared.UserSnapshot, error) {
	return r.scanUser(ctx, dbtx, findUserByIDSQL, id)
}

func (r *UserReadStore) scanUser(ctx context.Context, dbtx db.DBTX, query string, arg any) (*shared.UserSnapshot, error) {
	var (
		snap      shared.UserSnapshot
		lastLogin pgtype.Timestamptz
	)
	err := dbtx.QueryRow(ctx, query, arg).Scan(
		&snap.ID,
		&snap.Email,
		&snap.PasswordHash,
		&snap.Role,
		&snap.IsActive,
		&lastLogin,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user", err)
	}
	snap.LastLogin = pgconv.TimePtrFromPgtype(lastLogin)
	return &snap, nil
}
