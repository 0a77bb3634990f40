package postgres

import (
	"context"
	"database/sql"

	"resolution-voting/internal/domain/resolution"
	"resolution-voting/internal/domain/tally"
)

type TallyRepo struct {
	db *sql.DB
}

func NewTallyRepo(db *sql.DB) *TallyRepo {
	return &TallyRepo{db: db}
}

func (r *TallyRepo) ResolutionsBySession(ctx context.Context, sessionID int64) ([]resolution.Resolution, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT id, session_id, text, ordinal, voting_status
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

func (r *TallyRepo) VotesBySession(ctx context.Context, sessionID int64) ([]tally.VoteRow, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT v.resolution_id, v.voter_identity, v.choice
        FROM votes v
        JOIN resolutions res ON v.resolution_id = res.id
        WHERE res.session_id = $1
    `, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []tally.VoteRow
	for rows.Next() {
		var row tally.VoteRow
		if err := rows.Scan(&row.ResolutionID, &row.VoterIdentity, &row.Choice); err != nil {
			return nil, err
		}
		res = append(res, row)
	}
	return res, rows.Err()
}
