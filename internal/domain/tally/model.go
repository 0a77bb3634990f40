package tally

import (
	"context"

	"resolution-voting/internal/domain/resolution"
)

const (
	OutcomeAccepted  = "accepted"
	OutcomeRejected  = "rejected"
	OutcomeTie       = "tie"
	OutcomeUndecided = "undecided"
)

// VoteRow is the slice of a ledger row the aggregator needs.
type VoteRow struct {
	ResolutionID  int64
	VoterIdentity string
	Choice        string
}

// Progress describes how far an open session has come: who has voted at all,
// and who has voted on everything that has been put to a vote so far.
type Progress struct {
	SessionID         int64 `json:"session_id"`
	TotalResolutions  int   `json:"total_resolutions"`
	VotersAtLeastOnce int   `json:"voters_at_least_once"`
	VotersOnAll       int   `json:"voters_on_all_contested"`
	TotalVotes        int   `json:"total_votes"`
}

// ResolutionResult is the final tally of one resolution. Ties and empty
// tallies are reported as such, never coerced into accepted or rejected.
type ResolutionResult struct {
	ResolutionID int64  `json:"resolution_id"`
	Text         string `json:"text"`
	Ordinal      int    `json:"ordinal"`
	VotingStatus string `json:"voting_status"`
	Yes          int    `json:"yes"`
	No           int    `json:"no"`
	Abstain      int    `json:"abstain"`
	Total        int    `json:"total"`
	Outcome      string `json:"outcome"`
}

type Results struct {
	SessionID   int64              `json:"session_id"`
	Resolutions []ResolutionResult `json:"resolutions"`
	TotalVoters int                `json:"total_voters"`
}

type Repository interface {
	ResolutionsBySession(ctx context.Context, sessionID int64) ([]resolution.Resolution, error)
	VotesBySession(ctx context.Context, sessionID int64) ([]VoteRow, error)
}
