package vote

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"
	"time"
)

type memoryVoteRepo struct {
	mu     sync.Mutex
	votes  map[int64]map[string]*Vote
	nextID int64
	now    time.Time

	// raceChoice, when set, makes the next Insert behave as if a concurrent
	// writer won the unique constraint with that choice.
	raceChoice string
}

func newMemoryVoteRepo() *memoryVoteRepo {
	return &memoryVoteRepo{
		votes:  make(map[int64]map[string]*Vote),
		nextID: 1,
		now:    time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}
}

func (r *memoryVoteRepo) tick() time.Time {
	r.now = r.now.Add(time.Second)
	return r.now
}

func (r *memoryVoteRepo) store(resolutionID int64, voterIdentity, choice string) *Vote {
	v := &Vote{
		ID:            r.nextID,
		ResolutionID:  resolutionID,
		VoterIdentity: voterIdentity,
		Choice:        choice,
		VotedAt:       r.tick(),
	}
	r.nextID++
	if r.votes[resolutionID] == nil {
		r.votes[resolutionID] = make(map[string]*Vote)
	}
	r.votes[resolutionID][voterIdentity] = v
	return v
}

func (r *memoryVoteRepo) Get(ctx context.Context, resolutionID int64, voterIdentity string) (*Vote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.votes[resolutionID][voterIdentity]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copyVote := *v
	return &copyVote, nil
}

func (r *memoryVoteRepo) Insert(ctx context.Context, resolutionID int64, voterIdentity, choice string) (*Vote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.raceChoice != "" {
		r.store(resolutionID, voterIdentity, r.raceChoice)
		r.raceChoice = ""
		return nil, ErrDuplicateCast
	}
	if _, ok := r.votes[resolutionID][voterIdentity]; ok {
		return nil, ErrDuplicateCast
	}
	copyVote := *r.store(resolutionID, voterIdentity, choice)
	return &copyVote, nil
}

func (r *memoryVoteRepo) UpdateChoice(ctx context.Context, voteID int64, choice string) (*Vote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, byVoter := range r.votes {
		for _, v := range byVoter {
			if v.ID == voteID {
				v.Choice = choice
				v.VotedAt = r.tick()
				copyVote := *v
				return &copyVote, nil
			}
		}
	}
	return nil, sql.ErrNoRows
}

func (r *memoryVoteRepo) count(resolutionID int64) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.votes[resolutionID])
}

func TestCastInvalidChoice(t *testing.T) {
	svc := NewService(newMemoryVoteRepo())
	for _, bad := range []string{"", "YES", "maybe", "yes "} {
		if _, err := svc.CastOrUpdate(context.Background(), 1, "voter-a", bad); !errors.Is(err, ErrInvalidChoice) {
			t.Fatalf("choice %q: expected ErrInvalidChoice, got %v", bad, err)
		}
	}
}

func TestCastThenRecast(t *testing.T) {
	repo := newMemoryVoteRepo()
	svc := NewService(repo)
	ctx := context.Background()

	first, err := svc.CastOrUpdate(ctx, 1, "voter-a", ChoiceYes)
	if err != nil {
		t.Fatalf("first cast: %v", err)
	}
	if first.Choice != ChoiceYes {
		t.Fatalf("expected yes, got %s", first.Choice)
	}

	// Same choice again: nothing changes, not even the timestamp.
	same, err := svc.CastOrUpdate(ctx, 1, "voter-a", ChoiceYes)
	if err != nil {
		t.Fatalf("same-choice recast: %v", err)
	}
	if same.ID != first.ID || !same.VotedAt.Equal(first.VotedAt) {
		t.Fatalf("same-choice recast touched the row: %+v vs %+v", same, first)
	}

	changed, err := svc.CastOrUpdate(ctx, 1, "voter-a", ChoiceNo)
	if err != nil {
		t.Fatalf("changed recast: %v", err)
	}
	if changed.ID != first.ID {
		t.Fatalf("recast created a second row: id %d vs %d", changed.ID, first.ID)
	}
	if changed.Choice != ChoiceNo {
		t.Fatalf("expected no, got %s", changed.Choice)
	}
	if !changed.VotedAt.After(first.VotedAt) {
		t.Fatalf("voted_at not advanced on overwrite")
	}
	if n := repo.count(1); n != 1 {
		t.Fatalf("expected a single ledger row, got %d", n)
	}
}

func TestCastSeparateLedgerKeys(t *testing.T) {
	repo := newMemoryVoteRepo()
	svc := NewService(repo)
	ctx := context.Background()

	if _, err := svc.CastOrUpdate(ctx, 1, "voter-a", ChoiceYes); err != nil {
		t.Fatalf("cast: %v", err)
	}
	if _, err := svc.CastOrUpdate(ctx, 1, "voter-b", ChoiceAbstain); err != nil {
		t.Fatalf("cast: %v", err)
	}
	if _, err := svc.CastOrUpdate(ctx, 2, "voter-a", ChoiceNo); err != nil {
		t.Fatalf("cast: %v", err)
	}
	if repo.count(1) != 2 || repo.count(2) != 1 {
		t.Fatalf("unexpected ledger shape: res1=%d res2=%d", repo.count(1), repo.count(2))
	}
}

func TestCastLosesInsertRace(t *testing.T) {
	repo := newMemoryVoteRepo()
	svc := NewService(repo)
	ctx := context.Background()

	repo.raceChoice = ChoiceYes
	v, err := svc.CastOrUpdate(ctx, 1, "voter-a", ChoiceNo)
	if err != nil {
		t.Fatalf("losing the insert race must not surface an error, got %v", err)
	}
	if v.Choice != ChoiceNo {
		t.Fatalf("expected the late cast to win via overwrite, got %s", v.Choice)
	}
	if n := repo.count(1); n != 1 {
		t.Fatalf("expected a single row after the race, got %d", n)
	}

	// Race where both writers picked the same choice: the existing row is
	// returned as-is.
	repo.raceChoice = ChoiceAbstain
	v, err = svc.CastOrUpdate(ctx, 2, "voter-a", ChoiceAbstain)
	if err != nil {
		t.Fatalf("same-choice race: %v", err)
	}
	if v.Choice != ChoiceAbstain {
		t.Fatalf("expected abstain, got %s", v.Choice)
	}
}

func TestFind(t *testing.T) {
	repo := newMemoryVoteRepo()
	svc := NewService(repo)
	ctx := context.Background()

	v, err := svc.Find(ctx, 1, "voter-a")
	if err != nil {
		t.Fatalf("find on empty ledger: %v", err)
	}
	if v != nil {
		t.Fatalf("expected nil for absent vote, got %+v", v)
	}

	if _, err := svc.CastOrUpdate(ctx, 1, "voter-a", ChoiceYes); err != nil {
		t.Fatalf("cast: %v", err)
	}
	v, err = svc.Find(ctx, 1, "voter-a")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if v == nil || v.Choice != ChoiceYes {
		t.Fatalf("unexpected find result: %+v", v)
	}
}
