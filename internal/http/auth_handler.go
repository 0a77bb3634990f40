package api

import (
	"encoding/json"
	"net/http"
	"time"

	"resolution-voting/internal/platform/apperr"
)

type authRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// @Summary     Register a moderator account
// @Tags        auth
// @Accept      json
// @Param       request  body      authRequest  true  "Credentials"
// @Success     201      {object}  map[string]any
// @Failure     400      {object}  map[string]string  "invalid body or email taken"
// @Router      /api/v1/auth/register [post]
func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req authRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, apperr.BadRequest("invalid_input", "invalid body", err))
		return
	}

	m, err := h.moderatorSvc.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		errorResponse(w, err)
		return
	}

	token, err := h.jwtMgr.Generate(m.ID, m.Role, 24*time.Hour)
	if err != nil {
		errorResponse(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"moderator": m,
		"token":     token,
	})
}

// @Summary     Log in as moderator
// @Tags        auth
// @Accept      json
// @Param       request  body      authRequest  true  "Credentials"
// @Success     200      {object}  map[string]any
// @Failure     401      {object}  map[string]string  "invalid credentials"
// @Router      /api/v1/auth/login [post]
func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req authRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, apperr.BadRequest("invalid_input", "invalid body", err))
		return
	}

	m, err := h.moderatorSvc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		errorResponse(w, err)
		return
	}

	token, err := h.jwtMgr.Generate(m.ID, m.Role, 24*time.Hour)
	if err != nil {
		errorResponse(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"moderator": m,
		"token":     token,
	})
}
