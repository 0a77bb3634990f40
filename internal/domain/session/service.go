package session

import (
	"context"
	"crypto/rand"
	"database/sql"
	"errors"
	"strings"

	"resolution-voting/internal/domain/resolution"
)

var (
	ErrTitleRequired      = errors.New("session title is required")
	ErrNoResolutions      = errors.New("session needs at least one resolution")
	ErrBlankResolution    = errors.New("resolution text must not be blank")
	ErrInvalidStatusQuery = errors.New("status filter must be open, closed or all")
	ErrCodeTaken          = errors.New("join code already in use")
	ErrCodeExhausted      = errors.New("could not generate a unique join code")
)

const (
	codeAlphabet    = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	codeLength      = 6
	maxCodeAttempts = 5
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create persists a new open session together with its resolutions, numbered
// 1..N in the given order. The whole operation is atomic: a failure while
// inserting any resolution leaves no trace of the session.
func (s *Service) Create(ctx context.Context, title string, moderatorID int64, texts []string) (*Session, []resolution.Resolution, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, nil, ErrTitleRequired
	}
	if len(texts) == 0 {
		return nil, nil, ErrNoResolutions
	}
	resolutions := make([]resolution.Resolution, 0, len(texts))
	for i, text := range texts {
		text = strings.TrimSpace(text)
		if text == "" {
			return nil, nil, ErrBlankResolution
		}
		resolutions = append(resolutions, resolution.Resolution{
			Text:         text,
			Ordinal:      i + 1,
			VotingStatus: resolution.VotingPending,
		})
	}

	// Join codes are random, so a collision with an existing session is
	// possible. Retry against the store's uniqueness constraint a bounded
	// number of times rather than looping forever.
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code, err := newJoinCode(codeLength)
		if err != nil {
			return nil, nil, err
		}
		sess := &Session{
			Code:      code,
			Title:     title,
			Status:    StatusOpen,
			CreatedBy: moderatorID,
		}
		err = s.repo.CreateWithResolutions(ctx, sess, resolutions)
		if errors.Is(err, ErrCodeTaken) {
			continue
		}
		if err != nil {
			return nil, nil, err
		}
		return sess, resolutions, nil
	}
	return nil, nil, ErrCodeExhausted
}

// Close transitions the session to closed, stamping closed_at. Closing an
// already-closed session is a no-op success.
func (s *Service) Close(ctx context.Context, id int64) (*Session, error) {
	sess, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sess.Status == StatusClosed {
		return sess, nil
	}
	closed, err := s.repo.Close(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		// Lost a race against a concurrent close; the session is closed
		// either way.
		return s.repo.GetByID(ctx, id)
	}
	if err != nil {
		return nil, err
	}
	return closed, nil
}

func (s *Service) FindByID(ctx context.Context, id int64) (*Session, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) FindByCode(ctx context.Context, code string) (*Session, error) {
	return s.repo.GetByCode(ctx, strings.ToUpper(strings.TrimSpace(code)))
}

// List returns sessions filtered by status; filter may be "open", "closed" or
// "all" (empty means all).
func (s *Service) List(ctx context.Context, filter string) ([]Session, error) {
	switch filter {
	case "", "all":
		return s.repo.List(ctx, nil)
	case StatusOpen, StatusClosed:
		return s.repo.List(ctx, &filter)
	default:
		return nil, ErrInvalidStatusQuery
	}
}

func newJoinCode(length int) (string, error) {
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i, b := range buf {
		buf[i] = codeAlphabet[int(b)%len(codeAlphabet)]
	}
	return string(buf), nil
}
