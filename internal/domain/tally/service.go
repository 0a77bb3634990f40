package tally

import (
	"context"

	"resolution-voting/internal/domain/resolution"
	"resolution-voting/internal/domain/vote"
)

// Service derives live progress and final results from the vote ledger. Both
// views are recomputed from the votes of one session on every call; nothing
// is cached and nothing is mutated.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Progress reports participation for a running session. A voter counts
// towards VotersOnAll when they have voted on every contested resolution:
// one that is active or closed, or that already collected votes before being
// demoted back to pending.
func (s *Service) Progress(ctx context.Context, sessionID int64) (*Progress, error) {
	resolutions, votes, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	votedPer := make(map[string]map[int64]bool)
	hasVotes := make(map[int64]bool)
	for _, v := range votes {
		if votedPer[v.VoterIdentity] == nil {
			votedPer[v.VoterIdentity] = make(map[int64]bool)
		}
		votedPer[v.VoterIdentity][v.ResolutionID] = true
		hasVotes[v.ResolutionID] = true
	}

	contested := 0
	for _, r := range resolutions {
		if r.VotingStatus != resolution.VotingPending || hasVotes[r.ID] {
			contested++
		}
	}

	onAll := 0
	if contested > 0 {
		for _, seen := range votedPer {
			if len(seen) >= contested {
				onAll++
			}
		}
	}

	return &Progress{
		SessionID:         sessionID,
		TotalResolutions:  len(resolutions),
		VotersAtLeastOnce: len(votedPer),
		VotersOnAll:       onAll,
		TotalVotes:        len(votes),
	}, nil
}

// Results tallies every resolution of the session. Resolutions come back in
// display order (ordinal, then id).
func (s *Service) Results(ctx context.Context, sessionID int64) (*Results, error) {
	resolutions, votes, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	byResolution := make(map[int64]*ResolutionResult, len(resolutions))
	out := make([]ResolutionResult, len(resolutions))
	for i, r := range resolutions {
		out[i] = ResolutionResult{
			ResolutionID: r.ID,
			Text:         r.Text,
			Ordinal:      r.Ordinal,
			VotingStatus: r.VotingStatus,
		}
		byResolution[r.ID] = &out[i]
	}

	voters := make(map[string]bool)
	for _, v := range votes {
		res, ok := byResolution[v.ResolutionID]
		if !ok {
			continue
		}
		switch v.Choice {
		case vote.ChoiceYes:
			res.Yes++
		case vote.ChoiceNo:
			res.No++
		case vote.ChoiceAbstain:
			res.Abstain++
		default:
			continue
		}
		res.Total++
		voters[v.VoterIdentity] = true
	}

	for i := range out {
		out[i].Outcome = outcome(out[i].Yes, out[i].No, out[i].Total)
	}

	return &Results{
		SessionID:   sessionID,
		Resolutions: out,
		TotalVoters: len(voters),
	}, nil
}

func (s *Service) load(ctx context.Context, sessionID int64) ([]resolution.Resolution, []VoteRow, error) {
	resolutions, err := s.repo.ResolutionsBySession(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}
	votes, err := s.repo.VotesBySession(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}
	return resolutions, votes, nil
}

func outcome(yes, no, total int) string {
	switch {
	case total == 0:
		return OutcomeUndecided
	case yes > no:
		return OutcomeAccepted
	case no > yes:
		return OutcomeRejected
	default:
		return OutcomeTie
	}
}
