package worker

import (
	"context"
	"log/slog"

	"resolution-voting/internal/metrics"
)

// VoteEvent is emitted by the cast handler after the ledger accepted a vote.
// Sends are non-blocking, so a full buffer drops events rather than slowing
// down voters; the counters are observability, not bookkeeping.
type VoteEvent struct {
	SessionID    int64
	ResolutionID int64
	Choice       string
}

type VoteWorker struct {
	ch     <-chan VoteEvent
	logger *slog.Logger
}

func NewVoteWorker(ch <-chan VoteEvent, logger *slog.Logger) *VoteWorker {
	if logger == nil {
		logger = slog.Default()
	}
	return &VoteWorker{ch: ch, logger: logger}
}

func (w *VoteWorker) Run(ctx context.Context) {
	w.logger.Info("vote worker started")
	for {
		select {
		case <-ctx.Done():
			w.logger.Info("vote worker stopped")
			return
		case ev := <-w.ch:
			metrics.IncVoteCast(ev.Choice)
			w.logger.Info("vote recorded",
				"session_id", ev.SessionID,
				"resolution_id", ev.ResolutionID,
				"choice", ev.Choice,
			)
		}
	}
}
