package api

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"golang.org/x/time/rate"

	"resolution-voting/internal/domain/moderator"
	"resolution-voting/internal/domain/resolution"
	"resolution-voting/internal/domain/session"
	"resolution-voting/internal/domain/tally"
	"resolution-voting/internal/domain/vote"
	jwtpkg "resolution-voting/internal/platform/jwt"
	"resolution-voting/internal/worker"
)

type Handler struct {
	moderatorSvc  *moderator.Service
	sessionSvc    *session.Service
	resolutionSvc *resolution.Service
	voteSvc       *vote.Service
	tallySvc      *tally.Service
	jwtMgr        *jwtpkg.Manager
	voteCh        chan<- worker.VoteEvent
	db            *sql.DB
}

func NewRouter(
	moderatorSvc *moderator.Service,
	sessionSvc *session.Service,
	resolutionSvc *resolution.Service,
	voteSvc *vote.Service,
	tallySvc *tally.Service,
	jwtMgr *jwtpkg.Manager,
	voteCh chan<- worker.VoteEvent,
	db *sql.DB,
) http.Handler {
	h := &Handler{
		moderatorSvc:  moderatorSvc,
		sessionSvc:    sessionSvc,
		resolutionSvc: resolutionSvc,
		voteSvc:       voteSvc,
		tallySvc:      tallySvc,
		jwtMgr:        jwtMgr,
		voteCh:        voteCh,
		db:            db,
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(60 * time.Second))
	r.Use(RequestLogger)
	r.Use(CORSMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/ready", h.handleReady)
	r.Get("/swagger/*", httpSwagger.WrapHandler)
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/register", h.handleRegister)
		r.Post("/auth/login", h.handleLogin)

		// Participant endpoints: anonymous, identified only by voter token.
		r.Post("/sessions/join", h.handleJoinSession)
		r.Get("/sessions/code/{code}", h.handleSessionView)
		r.With(RateLimitVotes(rate.Every(time.Second), 5)).
			Post("/resolutions/{id}/vote", h.handleCastVote)

		r.Group(func(r chi.Router) {
			r.Use(AuthMiddleware(jwtMgr))
			r.Use(RequireRole(moderator.RoleModerator))

			r.Post("/sessions", h.handleCreateSession)
			r.Get("/sessions", h.handleListSessions)
			r.Get("/sessions/{id}", h.handleGetSession)
			r.Post("/sessions/{id}/close", h.handleCloseSession)
			r.Get("/sessions/{id}/report", h.handleSessionReport)
			r.Post("/sessions/{id}/resolutions/{rid}/activate", h.handleActivateResolution)
			r.Post("/sessions/{id}/resolutions/{rid}/deactivate", h.handleDeactivateResolution)
		})
	})

	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func parseIDParam(r *http.Request, name string) (int64, error) {
	idStr := chi.URLParam(r, name)
	return strconv.ParseInt(idStr, 10, 64)
}

func (h *Handler) handleReady(w http.ResponseWriter, r *http.Request) {
	if h.db == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"error":   "db_unavailable",
			"message": "database not configured",
		})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"error":   "db_unavailable",
			"message": "database not ready",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
