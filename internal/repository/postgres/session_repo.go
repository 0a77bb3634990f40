package postgres

import (
	"context"
	"database/sql"

	"resolution-voting/internal/domain/resolution"
	"resolution-voting/internal/domain/session"
)

type SessionRepo struct {
	db *sql.DB
}

func NewSessionRepo(db *sql.DB) *SessionRepo {
	return &SessionRepo{db: db}
}

const sessionColumns = `id, code, title, status, created_at, closed_at, created_by`

func (r *SessionRepo) CreateWithResolutions(ctx context.Context, s *session.Session, resolutions []resolution.Resolution) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	querySession := `
        INSERT INTO sessions (code, title, status, created_by)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at
    `
	err = tx.QueryRowContext(ctx, querySession, s.Code, s.Title, s.Status, s.CreatedBy).
		Scan(&s.ID, &s.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return session.ErrCodeTaken
		}
		return err
	}

	queryResolution := `
        INSERT INTO resolutions (session_id, text, ordinal, voting_status)
        VALUES ($1, $2, $3, $4)
        RETURNING id
    `
	for i := range resolutions {
		resolutions[i].SessionID = s.ID
		if err := tx.QueryRowContext(ctx, queryResolution,
			resolutions[i].SessionID,
			resolutions[i].Text,
			resolutions[i].Ordinal,
			resolutions[i].VotingStatus,
		).Scan(&resolutions[i].ID); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *SessionRepo) GetByID(ctx context.Context, id int64) (*session.Session, error) {
	return r.scanOne(r.db.QueryRowContext(ctx,
		`SELECT `+sessionColumns+` FROM sessions WHERE id = $1`, id))
}

func (r *SessionRepo) GetByCode(ctx context.Context, code string) (*session.Session, error) {
	return r.scanOne(r.db.QueryRowContext(ctx,
		`SELECT `+sessionColumns+` FROM sessions WHERE code = $1`, code))
}

func (r *SessionRepo) List(ctx context.Context, status *string) ([]session.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions`
	var rows *sql.Rows
	var err error

	if status != nil {
		query += ` WHERE status = $1 ORDER BY created_at DESC`
		rows, err = r.db.QueryContext(ctx, query, *status)
	} else {
		query += ` ORDER BY created_at DESC`
		rows, err = r.db.QueryContext(ctx, query)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []session.Session
	for rows.Next() {
		var s session.Session
		if err := rows.Scan(&s.ID, &s.Code, &s.Title, &s.Status,
			&s.CreatedAt, &s.ClosedAt, &s.CreatedBy); err != nil {
			return nil, err
		}
		res = append(res, s)
	}
	return res, rows.Err()
}

func (r *SessionRepo) Close(ctx context.Context, id int64) (*session.Session, error) {
	return r.scanOne(r.db.QueryRowContext(ctx, `
        UPDATE sessions SET status = 'closed', closed_at = now()
        WHERE id = $1 AND status = 'open'
        RETURNING `+sessionColumns, id))
}

func (r *SessionRepo) scanOne(row *sql.Row) (*session.Session, error) {
	s := &session.Session{}
	err := row.Scan(&s.ID, &s.Code, &s.Title, &s.Status,
		&s.CreatedAt, &s.ClosedAt, &s.CreatedBy)
	if err != nil {
		return nil, err
	}
	return s, nil
}
