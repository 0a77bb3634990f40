package api

import (
	"encoding/json"
	"net/http"

	"resolution-voting/internal/platform/apperr"
	"resolution-voting/internal/platform/identity"
	"resolution-voting/internal/worker"
)

type castVoteRequest struct {
	Choice string `json:"choice"`
}

// @Summary     Cast or change a vote on the active resolution
// @Tags        votes
// @Accept      json
// @Param       id             path      int64            true  "Resolution ID"
// @Param       X-Voter-Token  header    string           true  "Voter identity token from join"
// @Param       request        body      castVoteRequest  true  "yes, no or abstain"
// @Success     200            {object}  vote.Vote
// @Failure     400            {object}  map[string]string  "invalid choice or missing token"
// @Failure     404            {object}  map[string]string  "unknown resolution"
// @Failure     409            {object}  map[string]string  "resolution not accepting votes"
// @Router      /api/v1/resolutions/{id}/vote [post]
func (h *Handler) handleCastVote(w http.ResponseWriter, r *http.Request) {
	resolutionID, err := parseIDParam(r, "id")
	if err != nil {
		errorResponse(w, apperr.BadRequest("invalid_input", "invalid resolution id", err))
		return
	}

	var req castVoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, apperr.BadRequest("invalid_input", "invalid body", err))
		return
	}

	token := voterToken(r)
	if !identity.Valid(token) {
		errorResponse(w, apperr.BadRequest("missing_voter_token", "join the session to obtain a voter token", nil))
		return
	}

	// The ledger trusts its callers on lifecycle state, so the activeness
	// check happens here, before anything is written.
	res, err := h.resolutionSvc.Votable(r.Context(), resolutionID)
	if err != nil {
		errorResponse(w, err)
		return
	}

	v, err := h.voteSvc.CastOrUpdate(r.Context(), resolutionID, token, req.Choice)
	if err != nil {
		errorResponse(w, err)
		return
	}

	select {
	case h.voteCh <- worker.VoteEvent{
		SessionID:    res.SessionID,
		ResolutionID: resolutionID,
		Choice:       v.Choice,
	}:
	default:
	}

	writeJSON(w, http.StatusOK, v)
}
