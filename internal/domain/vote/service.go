package vote

import (
	"context"
	"database/sql"
	"errors"
)

var (
	ErrInvalidChoice = errors.New("choice must be yes, no or abstain")
	ErrDuplicateCast = errors.New("vote already exists for this voter and resolution")
)

// Service is the vote ledger. It records at most one row per
// (resolution, voter identity) pair and trusts its input: checking that the
// resolution is active and belongs to the claimed session is the caller's
// job, which keeps the ledger a pure insert-or-overwrite store.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CastOrUpdate records the voter's choice on the resolution. A first cast
// inserts a row; a re-cast with a different choice overwrites choice and
// voted_at; a re-cast with the same choice returns the existing row untouched
// so retries from the client are free.
func (s *Service) CastOrUpdate(ctx context.Context, resolutionID int64, voterIdentity, choice string) (*Vote, error) {
	if !IsValidChoice(choice) {
		return nil, ErrInvalidChoice
	}

	existing, err := s.repo.Get(ctx, resolutionID, voterIdentity)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if existing != nil {
		return s.overwrite(ctx, existing, choice)
	}

	v, err := s.repo.Insert(ctx, resolutionID, voterIdentity, choice)
	if errors.Is(err, ErrDuplicateCast) {
		// Two concurrent first casts raced on the unique constraint and
		// this one lost. The row exists now, so fall back to the
		// overwrite path instead of surfacing the violation.
		existing, err = s.repo.Get(ctx, resolutionID, voterIdentity)
		if err != nil {
			return nil, err
		}
		return s.overwrite(ctx, existing, choice)
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

// Find returns the voter's current choice on the resolution, or nil when the
// voter has not cast one.
func (s *Service) Find(ctx context.Context, resolutionID int64, voterIdentity string) (*Vote, error) {
	v, err := s.repo.Get(ctx, resolutionID, voterIdentity)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (s *Service) overwrite(ctx context.Context, existing *Vote, choice string) (*Vote, error) {
	if existing.Choice == choice {
		return existing, nil
	}
	return s.repo.UpdateChoice(ctx, existing.ID, choice)
}
