package postgres

import (
	"context"
	"database/sql"

	"resolution-voting/internal/domain/moderator"
)

type ModeratorRepo struct {
	db *sql.DB
}

func NewModeratorRepo(db *sql.DB) *ModeratorRepo {
	return &ModeratorRepo{db: db}
}

func (r *ModeratorRepo) Create(ctx context.Context, m *moderator.Moderator) error {
	query := `
        INSERT INTO moderators (email, password_hash, role)
        VALUES ($1, $2, $3)
        RETURNING id, created_at
    `
	err := r.db.QueryRowContext(ctx, query, m.Email, m.PasswordHash, m.Role).
		Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return moderator.ErrEmailTaken
		}
		return err
	}
	return nil
}

func (r *ModeratorRepo) GetByEmail(ctx context.Context, email string) (*moderator.Moderator, error) {
	return r.scanOne(r.db.QueryRowContext(ctx, `
        SELECT id, email, password_hash, role, created_at
        FROM moderators WHERE email = $1
    `, email))
}

func (r *ModeratorRepo) GetByID(ctx context.Context, id int64) (*moderator.Moderator, error) {
	return r.scanOne(r.db.QueryRowContext(ctx, `
        SELECT id, email, password_hash, role, created_at
        FROM moderators WHERE id = $1
    `, id))
}

func (r *ModeratorRepo) scanOne(row *sql.Row) (*moderator.Moderator, error) {
	m := &moderator.Moderator{}
	err := row.Scan(&m.ID, &m.Email, &m.PasswordHash, &m.Role, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	return m, nil
}
