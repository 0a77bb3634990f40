package api

import (
	"net/http"

	"resolution-voting/internal/platform/apperr"
)

// @Summary     Open voting on a resolution
// @Description Demotes any other active resolution of the session back to
// @Description pending; at most one resolution is active at a time.
// @Tags        resolutions
// @Security    BearerAuth
// @Param       id   path      int64  true  "Session ID"
// @Param       rid  path      int64  true  "Resolution ID"
// @Success     200  {object}  resolution.Resolution
// @Failure     404  {object}  map[string]string  "not found"
// @Failure     409  {object}  map[string]string  "session not open or voting ended"
// @Router      /api/v1/sessions/{id}/resolutions/{rid}/activate [post]
func (h *Handler) handleActivateResolution(w http.ResponseWriter, r *http.Request) {
	sessionID, resolutionID, ok := h.resolutionParams(w, r)
	if !ok {
		return
	}

	res, err := h.resolutionSvc.Activate(r.Context(), sessionID, resolutionID)
	if err != nil {
		errorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// @Summary     End voting on a resolution
// @Tags        resolutions
// @Security    BearerAuth
// @Param       id   path      int64  true  "Session ID"
// @Param       rid  path      int64  true  "Resolution ID"
// @Success     200  {object}  resolution.Resolution
// @Failure     404  {object}  map[string]string  "not found"
// @Failure     409  {object}  map[string]string  "session not open"
// @Router      /api/v1/sessions/{id}/resolutions/{rid}/deactivate [post]
func (h *Handler) handleDeactivateResolution(w http.ResponseWriter, r *http.Request) {
	sessionID, resolutionID, ok := h.resolutionParams(w, r)
	if !ok {
		return
	}

	res, err := h.resolutionSvc.Deactivate(r.Context(), sessionID, resolutionID)
	if err != nil {
		errorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *Handler) resolutionParams(w http.ResponseWriter, r *http.Request) (sessionID, resolutionID int64, ok bool) {
	sessionID, err := parseIDParam(r, "id")
	if err != nil {
		errorResponse(w, apperr.BadRequest("invalid_input", "invalid session id", err))
		return 0, 0, false
	}
	resolutionID, err = parseIDParam(r, "rid")
	if err != nil {
		errorResponse(w, apperr.BadRequest("invalid_input", "invalid resolution id", err))
		return 0, 0, false
	}
	return sessionID, resolutionID, true
}
