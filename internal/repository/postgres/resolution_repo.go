package postgres

import (
	"context"
	"database/sql"

	"resolution-voting/internal/domain/resolution"
)

type ResolutionRepo struct {
	db *sql.DB
}

func NewResolutionRepo(db *sql.DB) *ResolutionRepo {
	return &ResolutionRepo{db: db}
}

const resolutionColumns = `id, session_id, text, ordinal, voting_status`

func (r *ResolutionRepo) GetByID(ctx context.Context, id int64) (*resolution.Resolution, error) {
	return scanResolution(r.db.QueryRowContext(ctx,
		`SELECT `+resolutionColumns+` FROM resolutions WHERE id = $1`, id))
}

func (r *ResolutionRepo) ListBySession(ctx context.Context, sessionID int64) ([]resolution.Resolution, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT `+resolutionColumns+`
        FROM resolutions WHERE session_id = $1
        ORDER BY ordinal ASC, id ASC
    `, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []resolution.Resolution
	for rows.Next() {
		var item resolution.Resolution
		if err := rows.Scan(&item.ID, &item.SessionID, &item.Text,
			&item.Ordinal, &item.VotingStatus); err != nil {
			return nil, err
		}
		res = append(res, item)
	}
	return res, rows.Err()
}

// Activate demotes the session's current active resolution and promotes the
// target inside one transaction. Two statements outside a transaction would
// leave a window where concurrent activations end with two active rows.
func (r *ResolutionRepo) Activate(ctx context.Context, sessionID, resolutionID int64) (*resolution.Resolution, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
        UPDATE resolutions SET voting_status = 'pending'
        WHERE session_id = $1 AND voting_status = 'active' AND id <> $2
    `, sessionID, resolutionID)
	if err != nil {
		return nil, err
	}

	res, err := scanResolution(tx.QueryRowContext(ctx, `
        UPDATE resolutions SET voting_status = 'active'
        WHERE id = $1 AND session_id = $2
        RETURNING `+resolutionColumns, resolutionID, sessionID))
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return res, nil
}

func (r *ResolutionRepo) SetClosed(ctx context.Context, resolutionID int64) (*resolution.Resolution, error) {
	return scanResolution(r.db.QueryRowContext(ctx, `
        UPDATE resolutions SET voting_status = 'closed'
        WHERE id = $1
        RETURNING `+resolutionColumns, resolutionID))
}

func (r *ResolutionRepo) SessionStatus(ctx context.Context, sessionID int64) (string, error) {
	var status string
	err := r.db.QueryRowContext(ctx,
		`SELECT status FROM sessions WHERE id = $1`, sessionID).Scan(&status)
	return status, err
}

func scanResolution(row *sql.Row) (*resolution.Resolution, error) {
	res := &resolution.Resolution{}
	err := row.Scan(&res.ID, &res.SessionID, &res.Text, &res.Ordinal, &res.VotingStatus)
	if err != nil {
		return nil, err
	}
	return res, nil
}
