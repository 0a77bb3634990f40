package main

import (
	"context"
	"database/sql"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	_ "resolution-voting/docs"
	"resolution-voting/internal/config"
	"resolution-voting/internal/domain/moderator"
	"resolution-voting/internal/domain/resolution"
	"resolution-voting/internal/domain/session"
	"resolution-voting/internal/domain/tally"
	"resolution-voting/internal/domain/vote"
	api "resolution-voting/internal/http"
	"resolution-voting/internal/metrics"
	"resolution-voting/internal/platform/database"
	jwtpkg "resolution-voting/internal/platform/jwt"
	"resolution-voting/internal/repository/postgres"
	"resolution-voting/internal/retry"
	"resolution-voting/internal/worker"
)

// @title           Resolution Voting API
// @version         1.0
// @description     Moderated yes/no/abstain voting on session resolutions
// @BasePath        /api/v1
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization
func main() {
	cfg := config.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)
	api.SetLogger(logger)

	metrics.Register()

	var db *sql.DB
	connectCtx, connectCancel := context.WithTimeout(context.Background(), 30*time.Second)
	err := retry.DoWithRetry(connectCtx, 5, time.Second, func() error {
		var err error
		db, err = database.NewPostgres(cfg.DBDSN)
		return err
	})
	connectCancel()
	if err != nil {
		log.Fatalf("db connect error: %v", err)
	}
	defer db.Close()

	moderatorRepo := postgres.NewModeratorRepo(db)
	sessionRepo := postgres.NewSessionRepo(db)
	resolutionRepo := postgres.NewResolutionRepo(db)
	voteRepo := postgres.NewVoteRepo(db)
	tallyRepo := postgres.NewTallyRepo(db)

	moderatorSvc := moderator.NewService(moderatorRepo)
	sessionSvc := session.NewService(sessionRepo)
	resolutionSvc := resolution.NewService(resolutionRepo)
	voteSvc := vote.NewService(voteRepo)
	tallySvc := tally.NewService(tallyRepo)

	jwtMgr := jwtpkg.NewManager(cfg.JWTSecret, "resolution-voting")

	voteCh := make(chan worker.VoteEvent, 100)
	voteWorker := worker.NewVoteWorker(voteCh, logger)

	router := api.NewRouter(moderatorSvc, sessionSvc, resolutionSvc, voteSvc, tallySvc, jwtMgr, voteCh, db)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go voteWorker.Run(ctx)

	go func() {
		logger.Info("server listening", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)

	<-stop
	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server shutdown error: %v", err)
	}

	logger.Info("server stopped")
}
