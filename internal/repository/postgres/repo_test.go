package postgres

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	pgcontainer "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"resolution-voting/internal/domain/moderator"
	"resolution-voting/internal/domain/resolution"
	"resolution-voting/internal/domain/session"
	"resolution-voting/internal/domain/vote"
)

// setupDB starts a throwaway PostgreSQL container and applies the migrations.
// Run with -short to skip.
func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container-backed tests in short mode")
	}

	ctx := context.Background()
	container, err := pgcontainer.Run(ctx, "postgres:16-alpine",
		pgcontainer.WithDatabase("voting_test"),
		pgcontainer.WithUsername("voting_user"),
		pgcontainer.WithPassword("voting_pass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = container.Terminate(context.Background())
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := sql.Open("pgx", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, applyMigrations(db, "../../../migrations"))
	return db
}

func applyMigrations(db *sql.DB, dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".up.sql") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	for _, name := range names {
		content, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return err
		}
		if _, err := db.Exec(string(content)); err != nil {
			return err
		}
	}
	return nil
}

func createModerator(t *testing.T, db *sql.DB, email string) int64 {
	t.Helper()
	var id int64
	err := db.QueryRow(
		`INSERT INTO moderators (email, password_hash) VALUES ($1, $2) RETURNING id`,
		email, "not-a-real-hash",
	).Scan(&id)
	require.NoError(t, err)
	return id
}

func createSessionFixture(t *testing.T, db *sql.DB, code string, texts ...string) (*session.Session, []resolution.Resolution) {
	t.Helper()
	moderatorID := createModerator(t, db, code+"@example.com")

	sess := &session.Session{
		Code:      code,
		Title:     "Annual general meeting",
		Status:    session.StatusOpen,
		CreatedBy: moderatorID,
	}
	resolutions := make([]resolution.Resolution, len(texts))
	for i, text := range texts {
		resolutions[i] = resolution.Resolution{
			Text:         text,
			Ordinal:      i + 1,
			VotingStatus: resolution.VotingPending,
		}
	}
	require.NoError(t, NewSessionRepo(db).CreateWithResolutions(context.Background(), sess, resolutions))
	return sess, resolutions
}

func TestPostgresRepositories(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	t.Run("session create and lookup", func(t *testing.T) {
		repo := NewSessionRepo(db)
		sess, resolutions := createSessionFixture(t, db, "AAAAAA", "R1", "R2")

		require.NotZero(t, sess.ID)
		require.Len(t, resolutions, 2)
		for _, res := range resolutions {
			assert.NotZero(t, res.ID)
			assert.Equal(t, sess.ID, res.SessionID)
		}

		found, err := repo.GetByCode(ctx, "AAAAAA")
		require.NoError(t, err)
		assert.Equal(t, sess.ID, found.ID)
		assert.Equal(t, session.StatusOpen, found.Status)
		assert.Nil(t, found.ClosedAt)

		_, err = repo.GetByCode(ctx, "NOPE42")
		assert.ErrorIs(t, err, sql.ErrNoRows)
	})

	t.Run("duplicate join code", func(t *testing.T) {
		createSessionFixture(t, db, "BBBBBB", "R1")

		moderatorID := createModerator(t, db, "dup@example.com")
		err := NewSessionRepo(db).CreateWithResolutions(ctx, &session.Session{
			Code:      "BBBBBB",
			Title:     "Clash",
			Status:    session.StatusOpen,
			CreatedBy: moderatorID,
		}, []resolution.Resolution{{Text: "R1", Ordinal: 1, VotingStatus: resolution.VotingPending}})
		assert.ErrorIs(t, err, session.ErrCodeTaken)
	})

	t.Run("close session once", func(t *testing.T) {
		repo := NewSessionRepo(db)
		sess, _ := createSessionFixture(t, db, "CCCCCC", "R1")

		closed, err := repo.Close(ctx, sess.ID)
		require.NoError(t, err)
		assert.Equal(t, session.StatusClosed, closed.Status)
		require.NotNil(t, closed.ClosedAt)

		// No open row left to close.
		_, err = repo.Close(ctx, sess.ID)
		assert.ErrorIs(t, err, sql.ErrNoRows)
	})

	t.Run("activation keeps a single active resolution", func(t *testing.T) {
		repo := NewResolutionRepo(db)
		sess, resolutions := createSessionFixture(t, db, "DDDDDD", "R1", "R2", "R3")

		first, err := repo.Activate(ctx, sess.ID, resolutions[0].ID)
		require.NoError(t, err)
		assert.Equal(t, resolution.VotingActive, first.VotingStatus)

		second, err := repo.Activate(ctx, sess.ID, resolutions[1].ID)
		require.NoError(t, err)
		assert.Equal(t, resolution.VotingActive, second.VotingStatus)

		var active int
		require.NoError(t, db.QueryRow(
			`SELECT count(*) FROM resolutions WHERE session_id = $1 AND voting_status = 'active'`,
			sess.ID,
		).Scan(&active))
		assert.Equal(t, 1, active)

		demoted, err := repo.GetByID(ctx, resolutions[0].ID)
		require.NoError(t, err)
		assert.Equal(t, resolution.VotingPending, demoted.VotingStatus)

		closed, err := repo.SetClosed(ctx, resolutions[1].ID)
		require.NoError(t, err)
		assert.Equal(t, resolution.VotingClosed, closed.VotingStatus)

		listed, err := repo.ListBySession(ctx, sess.ID)
		require.NoError(t, err)
		require.Len(t, listed, 3)
		for i, res := range listed {
			assert.Equal(t, i+1, res.Ordinal)
		}

		status, err := repo.SessionStatus(ctx, sess.ID)
		require.NoError(t, err)
		assert.Equal(t, "open", status)
	})

	t.Run("vote ledger upsert path", func(t *testing.T) {
		repo := NewVoteRepo(db)
		sess, resolutions := createSessionFixture(t, db, "EEEEEE", "R1")
		_, err := NewResolutionRepo(db).Activate(ctx, sess.ID, resolutions[0].ID)
		require.NoError(t, err)

		const voter = "11111111-1111-1111-1111-111111111111"

		v, err := repo.Insert(ctx, resolutions[0].ID, voter, vote.ChoiceYes)
		require.NoError(t, err)
		assert.Equal(t, vote.ChoiceYes, v.Choice)

		_, err = repo.Insert(ctx, resolutions[0].ID, voter, vote.ChoiceNo)
		assert.ErrorIs(t, err, vote.ErrDuplicateCast)

		updated, err := repo.UpdateChoice(ctx, v.ID, vote.ChoiceNo)
		require.NoError(t, err)
		assert.Equal(t, v.ID, updated.ID)
		assert.Equal(t, vote.ChoiceNo, updated.Choice)
		assert.True(t, updated.VotedAt.After(v.VotedAt) || updated.VotedAt.Equal(v.VotedAt))

		got, err := repo.Get(ctx, resolutions[0].ID, voter)
		require.NoError(t, err)
		assert.Equal(t, vote.ChoiceNo, got.Choice)

		var count int
		require.NoError(t, db.QueryRow(
			`SELECT count(*) FROM votes WHERE resolution_id = $1`, resolutions[0].ID,
		).Scan(&count))
		assert.Equal(t, 1, count)
	})

	t.Run("concurrent first casts keep one row", func(t *testing.T) {
		sess, resolutions := createSessionFixture(t, db, "FFFFFF", "R1")
		_, err := NewResolutionRepo(db).Activate(ctx, sess.ID, resolutions[0].ID)
		require.NoError(t, err)

		svc := vote.NewService(NewVoteRepo(db))
		const voter = "22222222-2222-2222-2222-222222222222"

		var wg sync.WaitGroup
		errs := make([]error, 8)
		for i := range errs {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				choice := vote.ChoiceYes
				if i%2 == 0 {
					choice = vote.ChoiceNo
				}
				_, errs[i] = svc.CastOrUpdate(ctx, resolutions[0].ID, voter, choice)
			}(i)
		}
		wg.Wait()
		for _, err := range errs {
			assert.NoError(t, err)
		}

		var count int
		require.NoError(t, db.QueryRow(
			`SELECT count(*) FROM votes WHERE resolution_id = $1 AND voter_identity = $2`,
			resolutions[0].ID, voter,
		).Scan(&count))
		assert.Equal(t, 1, count)
	})

	t.Run("tally queries", func(t *testing.T) {
		voteRepo := NewVoteRepo(db)
		sess, resolutions := createSessionFixture(t, db, "GGGGGG", "R1", "R2")
		_, err := NewResolutionRepo(db).Activate(ctx, sess.ID, resolutions[0].ID)
		require.NoError(t, err)

		_, err = voteRepo.Insert(ctx, resolutions[0].ID, "33333333-3333-3333-3333-333333333333", vote.ChoiceYes)
		require.NoError(t, err)
		_, err = voteRepo.Insert(ctx, resolutions[0].ID, "44444444-4444-4444-4444-444444444444", vote.ChoiceAbstain)
		require.NoError(t, err)

		tallyRepo := NewTallyRepo(db)
		listed, err := tallyRepo.ResolutionsBySession(ctx, sess.ID)
		require.NoError(t, err)
		assert.Len(t, listed, 2)

		rows, err := tallyRepo.VotesBySession(ctx, sess.ID)
		require.NoError(t, err)
		assert.Len(t, rows, 2)
		for _, row := range rows {
			assert.Equal(t, resolutions[0].ID, row.ResolutionID)
		}
	})

	t.Run("moderator unique email", func(t *testing.T) {
		repo := NewModeratorRepo(db)

		m := &moderator.Moderator{
			Email:        "unique@example.com",
			PasswordHash: "not-a-real-hash",
			Role:         moderator.RoleModerator,
		}
		require.NoError(t, repo.Create(ctx, m))
		require.NotZero(t, m.ID)

		dup := &moderator.Moderator{
			Email:        "unique@example.com",
			PasswordHash: "not-a-real-hash",
			Role:         moderator.RoleModerator,
		}
		err := repo.Create(ctx, dup)
		assert.ErrorIs(t, err, moderator.ErrEmailTaken)

		found, err := repo.GetByEmail(ctx, m.Email)
		require.NoError(t, err)
		assert.Equal(t, m.ID, found.ID)

		_, err = repo.GetByEmail(ctx, "nobody@example.com")
		assert.ErrorIs(t, err, sql.ErrNoRows)
	})
}
