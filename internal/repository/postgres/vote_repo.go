package postgres

import (
	"context"
	"database/sql"

	"resolution-voting/internal/domain/vote"
)

type VoteRepo struct {
	db *sql.DB
}

func NewVoteRepo(db *sql.DB) *VoteRepo {
	return &VoteRepo{db: db}
}

func (r *VoteRepo) Get(ctx context.Context, resolutionID int64, voterIdentity string) (*vote.Vote, error) {
	v := &vote.Vote{}
	err := r.db.QueryRowContext(ctx, `
        SELECT id, resolution_id, voter_identity, choice, voted_at
        FROM votes WHERE resolution_id = $1 AND voter_identity = $2
    `, resolutionID, voterIdentity).
		Scan(&v.ID, &v.ResolutionID, &v.VoterIdentity, &v.Choice, &v.VotedAt)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (r *VoteRepo) Insert(ctx context.Context, resolutionID int64, voterIdentity, choice string) (*vote.Vote, error) {
	v := &vote.Vote{
		ResolutionID:  resolutionID,
		VoterIdentity: voterIdentity,
		Choice:        choice,
	}
	err := r.db.QueryRowContext(ctx, `
        INSERT INTO votes (resolution_id, voter_identity, choice)
        VALUES ($1, $2, $3)
        RETURNING id, voted_at
    `, resolutionID, voterIdentity, choice).Scan(&v.ID, &v.VotedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, vote.ErrDuplicateCast
		}
		return nil, err
	}
	return v, nil
}

func (r *VoteRepo) UpdateChoice(ctx context.Context, voteID int64, choice string) (*vote.Vote, error) {
	v := &vote.Vote{}
	err := r.db.QueryRowContext(ctx, `
        UPDATE votes SET choice = $1, voted_at = now()
        WHERE id = $2
        RETURNING id, resolution_id, voter_identity, choice, voted_at
    `, choice, voteID).
		Scan(&v.ID, &v.ResolutionID, &v.VoterIdentity, &v.Choice, &v.VotedAt)
	if err != nil {
		return nil, err
	}
	return v, nil
}
