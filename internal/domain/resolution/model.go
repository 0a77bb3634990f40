package resolution

import "context"

const (
	VotingPending = "pending"
	VotingActive  = "active"
	VotingClosed  = "closed"
)

// Resolution is one item put to a yes/no/abstain vote within a session. Text
// and ordinal are immutable after creation; only voting_status ever changes.
type Resolution struct {
	ID           int64  `json:"id"`
	SessionID    int64  `json:"session_id"`
	Text         string `json:"text"`
	Ordinal      int    `json:"ordinal"`
	VotingStatus string `json:"voting_status"`
}

type Repository interface {
	GetByID(ctx context.Context, id int64) (*Resolution, error)
	// ListBySession returns resolutions ordered by ordinal, ties broken by id.
	ListBySession(ctx context.Context, sessionID int64) ([]Resolution, error)
	// Activate demotes whatever resolution of the session is currently
	// active back to pending and promotes the target, in one transaction.
	Activate(ctx context.Context, sessionID, resolutionID int64) (*Resolution, error)
	SetClosed(ctx context.Context, resolutionID int64) (*Resolution, error)
	SessionStatus(ctx context.Context, sessionID int64) (string, error)
}
