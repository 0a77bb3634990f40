package api

import (
	"database/sql"
	"errors"
	"net/http"

	"resolution-voting/internal/domain/moderator"
	"resolution-voting/internal/domain/resolution"
	"resolution-voting/internal/domain/session"
	"resolution-voting/internal/domain/vote"
	"resolution-voting/internal/platform/apperr"
)

func errorResponse(w http.ResponseWriter, err error) {
	appErr := mapError(err)
	if appErr.StatusCode() >= http.StatusInternalServerError {
		// Store failures stay opaque to the caller; the detail goes to the
		// log only.
		slogLogger.Error("internal error", "code", appErr.Code, "err", appErr.Unwrap())
	}
	writeJSON(w, appErr.StatusCode(), map[string]string{
		"error":   appErr.Code,
		"message": appErr.Message,
	})
}

func mapError(err error) *apperr.AppError {
	if err == nil {
		return apperr.Internal("internal_error", "internal server error", nil)
	}

	var appErr *apperr.AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	switch {
	case errors.Is(err, sql.ErrNoRows):
		return apperr.NotFound("not_found", "resource not found", err)
	case errors.Is(err, session.ErrTitleRequired),
		errors.Is(err, session.ErrNoResolutions),
		errors.Is(err, session.ErrBlankResolution),
		errors.Is(err, session.ErrInvalidStatusQuery):
		return apperr.BadRequest("invalid_input", err.Error(), err)
	case errors.Is(err, session.ErrCodeExhausted):
		return apperr.Internal("internal_error", "could not create session", err)
	case errors.Is(err, resolution.ErrNotInSession):
		return apperr.NotFound("resolution_not_found", "resolution does not belong to this session", err)
	case errors.Is(err, resolution.ErrSessionNotOpen):
		return apperr.Conflict("session_not_open", "session is not open", err)
	case errors.Is(err, resolution.ErrVotingClosed):
		return apperr.Conflict("voting_closed", "voting on this resolution has ended", err)
	case errors.Is(err, resolution.ErrVotingNotActive):
		return apperr.Conflict("voting_not_active", "resolution is not accepting votes", err)
	case errors.Is(err, vote.ErrInvalidChoice):
		return apperr.BadRequest("invalid_choice", "choice must be yes, no or abstain", err)
	case errors.Is(err, moderator.ErrInvalidCredentials):
		return apperr.Unauthorized("invalid_credentials", "invalid credentials", err)
	case errors.Is(err, moderator.ErrEmailTaken):
		return apperr.BadRequest("email_taken", "email already taken", err)
	case errors.Is(err, moderator.ErrMissingFields):
		return apperr.BadRequest("invalid_input", "email and password required", err)
	default:
		return apperr.Internal("internal_error", http.StatusText(http.StatusInternalServerError), err)
	}
}
