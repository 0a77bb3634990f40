package vote

import (
	"context"
	"time"
)

const (
	ChoiceYes     = "yes"
	ChoiceNo      = "no"
	ChoiceAbstain = "abstain"
)

// Vote is one ledger row: the current choice of one voter identity on one
// resolution. Re-casting overwrites the row, it never creates a second one.
type Vote struct {
	ID            int64     `json:"id"`
	ResolutionID  int64     `json:"resolution_id"`
	VoterIdentity string    `json:"-"`
	Choice        string    `json:"choice"`
	VotedAt       time.Time `json:"voted_at"`
}

func IsValidChoice(choice string) bool {
	switch choice {
	case ChoiceYes, ChoiceNo, ChoiceAbstain:
		return true
	}
	return false
}

func AllowedChoices() []string {
	return []string{ChoiceYes, ChoiceNo, ChoiceAbstain}
}

type Repository interface {
	// Get returns the vote of the given identity on the given resolution, or
	// sql.ErrNoRows when none exists.
	Get(ctx context.Context, resolutionID int64, voterIdentity string) (*Vote, error)
	// Insert creates a first-cast row. Returns ErrDuplicateCast when a row
	// for (resolutionID, voterIdentity) already exists.
	Insert(ctx context.Context, resolutionID int64, voterIdentity, choice string) (*Vote, error)
	// UpdateChoice overwrites the choice and refreshes voted_at.
	UpdateChoice(ctx context.Context, voteID int64, choice string) (*Vote, error)
}
