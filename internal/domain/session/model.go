package session

import (
	"context"
	"time"

	"resolution-voting/internal/domain/resolution"
)

const (
	StatusOpen   = "open"
	StatusClosed = "closed"
)

// Session is one voting event: an ordered list of resolutions put to a
// yes/no/abstain vote, joined by participants via the join code.
type Session struct {
	ID        int64      `json:"id"`
	Code      string     `json:"code"`
	Title     string     `json:"title"`
	Status    string     `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	ClosedAt  *time.Time `json:"closed_at,omitempty"`
	CreatedBy int64      `json:"created_by"`
}

type Repository interface {
	// CreateWithResolutions persists the session and its resolutions in one
	// transaction, filling in generated ids and timestamps. Returns
	// ErrCodeTaken when the join code collides with an existing session.
	CreateWithResolutions(ctx context.Context, s *Session, resolutions []resolution.Resolution) error
	GetByID(ctx context.Context, id int64) (*Session, error)
	GetByCode(ctx context.Context, code string) (*Session, error)
	List(ctx context.Context, status *string) ([]Session, error)
	// Close marks an open session closed and stamps closed_at. Returns
	// sql.ErrNoRows when no open row matched the id.
	Close(ctx context.Context, id int64) (*Session, error)
}
