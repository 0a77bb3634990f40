package resolution

import (
	"context"
	"errors"
)

var (
	ErrNotInSession    = errors.New("resolution does not belong to this session")
	ErrSessionNotOpen  = errors.New("session is not open")
	ErrVotingClosed    = errors.New("voting on this resolution has ended")
	ErrVotingNotActive = errors.New("resolution is not accepting votes")
)

const sessionOpen = "open"

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Get(ctx context.Context, id int64) (*Resolution, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListBySession(ctx context.Context, sessionID int64) ([]Resolution, error) {
	return s.repo.ListBySession(ctx, sessionID)
}

// Activate opens voting on the resolution. At most one resolution per session
// is active at a time: any currently active sibling is demoted back to
// pending in the same transaction that promotes the target. Activating an
// already-active resolution is a no-op success.
func (s *Service) Activate(ctx context.Context, sessionID, resolutionID int64) (*Resolution, error) {
	r, err := s.lookup(ctx, sessionID, resolutionID)
	if err != nil {
		return nil, err
	}
	if err := s.requireOpenSession(ctx, sessionID); err != nil {
		return nil, err
	}
	switch r.VotingStatus {
	case VotingActive:
		return r, nil
	case VotingClosed:
		return nil, ErrVotingClosed
	}
	return s.repo.Activate(ctx, sessionID, resolutionID)
}

// Deactivate ends voting on the resolution for good: both active and pending
// resolutions transition to closed, and closed is terminal. Deactivating an
// already-closed resolution is a no-op success.
func (s *Service) Deactivate(ctx context.Context, sessionID, resolutionID int64) (*Resolution, error) {
	r, err := s.lookup(ctx, sessionID, resolutionID)
	if err != nil {
		return nil, err
	}
	if err := s.requireOpenSession(ctx, sessionID); err != nil {
		return nil, err
	}
	if r.VotingStatus == VotingClosed {
		return r, nil
	}
	return s.repo.SetClosed(ctx, resolutionID)
}

// Votable reports whether the resolution currently accepts votes, returning
// it if so. The vote ledger itself performs no state checks; every caller
// casting a vote goes through here first.
func (s *Service) Votable(ctx context.Context, resolutionID int64) (*Resolution, error) {
	r, err := s.repo.GetByID(ctx, resolutionID)
	if err != nil {
		return nil, err
	}
	if err := s.requireOpenSession(ctx, r.SessionID); err != nil {
		return nil, err
	}
	if r.VotingStatus != VotingActive {
		return nil, ErrVotingNotActive
	}
	return r, nil
}

func (s *Service) lookup(ctx context.Context, sessionID, resolutionID int64) (*Resolution, error) {
	r, err := s.repo.GetByID(ctx, resolutionID)
	if err != nil {
		return nil, err
	}
	if r.SessionID != sessionID {
		return nil, ErrNotInSession
	}
	return r, nil
}

func (s *Service) requireOpenSession(ctx context.Context, sessionID int64) error {
	status, err := s.repo.SessionStatus(ctx, sessionID)
	if err != nil {
		return err
	}
	if status != sessionOpen {
		return ErrSessionNotOpen
	}
	return nil
}
