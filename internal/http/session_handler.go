package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"resolution-voting/internal/domain/resolution"
	"resolution-voting/internal/domain/session"
	"resolution-voting/internal/metrics"
	"resolution-voting/internal/platform/apperr"
	"resolution-voting/internal/platform/identity"
)

type createSessionRequest struct {
	Title       string   `json:"title"`
	Resolutions []string `json:"resolutions"`
}

type joinSessionRequest struct {
	Code string `json:"code"`
}

// voterResolutionView is a resolution as a participant sees it: pending
// resolutions are never included, and voted_choice reflects the presented
// voter token.
type voterResolutionView struct {
	ID           int64   `json:"id"`
	Text         string  `json:"text"`
	Ordinal      int     `json:"ordinal"`
	VotingStatus string  `json:"voting_status"`
	VotedChoice  *string `json:"voted_choice"`
}

type voterSessionView struct {
	Session     *session.Session      `json:"session"`
	Resolutions []voterResolutionView `json:"resolutions"`
}

// @Summary     Create a voting session with its resolutions
// @Tags        sessions
// @Security    BearerAuth
// @Accept      json
// @Param       request  body      createSessionRequest  true  "Title and resolution texts"
// @Success     201      {object}  map[string]any
// @Failure     400      {object}  map[string]string  "blank title or resolution"
// @Router      /api/v1/sessions [post]
func (h *Handler) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, apperr.BadRequest("invalid_input", "invalid body", err))
		return
	}

	moderatorID := moderatorIDFromCtx(r)

	sess, resolutions, err := h.sessionSvc.Create(r.Context(), req.Title, moderatorID, req.Resolutions)
	if err != nil {
		errorResponse(w, err)
		return
	}

	metrics.IncSessionCreated()

	writeJSON(w, http.StatusCreated, map[string]any{
		"session":     sess,
		"resolutions": resolutions,
	})
}

// @Summary     List sessions
// @Tags        sessions
// @Security    BearerAuth
// @Produce     json
// @Param       status  query     string  false  "open, closed or all"
// @Success     200     {array}   session.Session
// @Router      /api/v1/sessions [get]
func (h *Handler) handleListSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.sessionSvc.List(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		errorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sessions)
}

func (h *Handler) handleGetSession(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		errorResponse(w, apperr.BadRequest("invalid_input", "invalid session id", err))
		return
	}

	sess, err := h.sessionSvc.FindByID(r.Context(), id)
	if err != nil {
		errorResponse(w, err)
		return
	}
	resolutions, err := h.resolutionSvc.ListBySession(r.Context(), id)
	if err != nil {
		errorResponse(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"session":     sess,
		"resolutions": resolutions,
	})
}

// @Summary     Close a session
// @Tags        sessions
// @Security    BearerAuth
// @Param       id   path      int64  true  "Session ID"
// @Success     200  {object}  session.Session
// @Failure     404  {object}  map[string]string  "not found"
// @Router      /api/v1/sessions/{id}/close [post]
func (h *Handler) handleCloseSession(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		errorResponse(w, apperr.BadRequest("invalid_input", "invalid session id", err))
		return
	}

	sess, err := h.sessionSvc.Close(r.Context(), id)
	if err != nil {
		errorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

// @Summary     Join a session by code
// @Tags        sessions
// @Accept      json
// @Param       request  body      joinSessionRequest  true  "Join code"
// @Success     200      {object}  map[string]any
// @Failure     404      {object}  map[string]string  "unknown code"
// @Failure     409      {object}  map[string]string  "session not open"
// @Router      /api/v1/sessions/join [post]
func (h *Handler) handleJoinSession(w http.ResponseWriter, r *http.Request) {
	var req joinSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, apperr.BadRequest("invalid_input", "invalid body", err))
		return
	}
	if req.Code == "" {
		errorResponse(w, apperr.BadRequest("invalid_input", "code is required", nil))
		return
	}

	sess, err := h.sessionSvc.FindByCode(r.Context(), req.Code)
	if err != nil {
		errorResponse(w, err)
		return
	}
	if sess.Status != session.StatusOpen {
		errorResponse(w, apperr.Conflict("session_not_open", "session is not open", nil))
		return
	}

	// Reuse the presented token so a rejoining participant keeps their
	// votes; otherwise mint a fresh identity.
	token := voterToken(r)
	if !identity.Valid(token) {
		token = identity.NewToken()
	}

	view, err := h.voterView(r.Context(), sess, token)
	if err != nil {
		errorResponse(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"voter_token": token,
		"session":     view.Session,
		"resolutions": view.Resolutions,
	})
}

func (h *Handler) handleSessionView(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	sess, err := h.sessionSvc.FindByCode(r.Context(), code)
	if err != nil {
		errorResponse(w, err)
		return
	}
	if sess.Status != session.StatusOpen {
		errorResponse(w, apperr.Conflict("session_not_open", "session is not open", nil))
		return
	}

	view, err := h.voterView(r.Context(), sess, voterToken(r))
	if err != nil {
		errorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// @Summary     Session progress or results
// @Description Returns the live progress view while the session is open and
// @Description any resolution is still undecided, the final results otherwise.
// @Tags        sessions
// @Security    BearerAuth
// @Produce     json
// @Param       id   path      int64  true  "Session ID"
// @Success     200  {object}  map[string]any
// @Failure     404  {object}  map[string]string  "not found"
// @Router      /api/v1/sessions/{id}/report [get]
func (h *Handler) handleSessionReport(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		errorResponse(w, apperr.BadRequest("invalid_input", "invalid session id", err))
		return
	}

	sess, err := h.sessionSvc.FindByID(r.Context(), id)
	if err != nil {
		errorResponse(w, err)
		return
	}
	resolutions, err := h.resolutionSvc.ListBySession(r.Context(), id)
	if err != nil {
		errorResponse(w, err)
		return
	}

	allClosed := len(resolutions) > 0
	for _, res := range resolutions {
		if res.VotingStatus != resolution.VotingClosed {
			allClosed = false
			break
		}
	}

	if sess.Status == session.StatusOpen && !allClosed {
		progress, err := h.tallySvc.Progress(r.Context(), id)
		if err != nil {
			errorResponse(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"view":     "progress",
			"session":  sess,
			"progress": progress,
		})
		return
	}

	results, err := h.tallySvc.Results(r.Context(), id)
	if err != nil {
		errorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"view":    "results",
		"session": sess,
		"results": results,
	})
}

func (h *Handler) voterView(ctx context.Context, sess *session.Session, token string) (*voterSessionView, error) {
	resolutions, err := h.resolutionSvc.ListBySession(ctx, sess.ID)
	if err != nil {
		return nil, err
	}

	views := make([]voterResolutionView, 0, len(resolutions))
	for _, res := range resolutions {
		// Pending resolutions stay hidden from participants until the
		// moderator activates them.
		if res.VotingStatus == resolution.VotingPending {
			continue
		}
		view := voterResolutionView{
			ID:           res.ID,
			Text:         res.Text,
			Ordinal:      res.Ordinal,
			VotingStatus: res.VotingStatus,
		}
		if identity.Valid(token) {
			v, err := h.voteSvc.Find(ctx, res.ID, token)
			if err != nil {
				return nil, err
			}
			if v != nil {
				view.VotedChoice = &v.Choice
			}
		}
		views = append(views, view)
	}

	return &voterSessionView{Session: sess, Resolutions: views}, nil
}
