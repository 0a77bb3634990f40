package moderator

import (
	"context"
	"time"
)

const RoleModerator = "moderator"

// Moderator is the authenticated account that runs voting sessions.
// Participants stay anonymous; only moderators have credentials.
type Moderator struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

type Repository interface {
	Create(ctx context.Context, m *Moderator) error
	GetByEmail(ctx context.Context, email string) (*Moderator, error)
	GetByID(ctx context.Context, id int64) (*Moderator, error)
}
