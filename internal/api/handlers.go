package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/gofrs/uuid/v5"
	"go.uber.org/zap"

	"github.com/manan0209/gitroaster/internal/errs"
	"github.com/manan0209/gitroaster/internal/model"
	"github.com/manan0209/gitroaster/internal/service"
)

// Handler holds API route handlers.
type Handler struct {
	roasts service.RoastService
	votes  service.VoteService
	log    *zap.Logger
}

// NewHandler creates a new Handler.
func NewHandler(roasts service.RoastService, votes service.VoteService, log *zap.Logger) *Handler {
	return &Handler{roasts: roasts, votes: votes, log: log}
}

// roastID extracts and parses the roast id path parameter.
func roastID(r *http.Request) (uuid.UUID, error) {
	return uuid.FromString(chi.URLParam(r, "roastID"))
}

// CreateRoast handles POST /api/roasts: the whole generation pipeline behind
// one endpoint. Only a failed identity lookup is a hard error; completion and
// persistence failures degrade inside the service.
func (h *Handler) CreateRoast(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req CreateRoastRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if err := req.Validate(); err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}

	var (
		res model.RoastResult
		err error
	)
	if req.RoastType == string(model.RoastTypeRepo) {
		res, err = h.roasts.RoastRepo(r.Context(), req.Username, req.RepoName)
	} else {
		res, err = h.roasts.RoastProfile(r.Context(), req.Username)
	}
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			msg := "GitHub user not found"
			if req.RoastType == string(model.RoastTypeRepo) {
				msg = "Repository not found"
			}
			h.writeJSON(w, http.StatusNotFound, errorBody(msg))
			return
		}
		h.log.Error("create roast failed", zap.String("username", req.Username), zap.Error(err))
		h.writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	h.writeJSON(w, http.StatusCreated, toRoastResponse(res.Roast, res.Saved, res.Fallback))
}

// GetRoast handles GET /api/roasts/{roastID}.
func (h *Handler) GetRoast(w http.ResponseWriter, r *http.Request) {
	id, err := roastID(r)
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorBody("invalid roast id"))
		return
	}
	rst, err := h.roasts.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			h.writeJSON(w, http.StatusNotFound, errorBody("roast not found"))
			return
		}
		h.log.Error("get roast failed", zap.String("roast_id", id.String()), zap.Error(err))
		h.writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	h.writeJSON(w, http.StatusOK, toRoastResponse(*rst, true, false))
}

// HallOfShame handles GET /api/roasts/top.
func (h *Handler) HallOfShame(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	roasts, err := h.roasts.HallOfShame(r.Context(), limit)
	if err != nil {
		h.log.Error("hall of shame failed", zap.Error(err))
		h.writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	out := make([]RoastResponse, 0, len(roasts))
	for _, rst := range roasts {
		out = append(out, toRoastResponse(rst, true, false))
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"roasts": out})
}

// RoastOfTheDay handles GET /api/roasts/daily.
func (h *Handler) RoastOfTheDay(w http.ResponseWriter, r *http.Request) {
	rst, err := h.roasts.RoastOfTheDay(r.Context())
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			h.writeJSON(w, http.StatusNotFound, errorBody("no featured roast today"))
			return
		}
		h.log.Error("daily roast failed", zap.Error(err))
		h.writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	h.writeJSON(w, http.StatusOK, toRoastResponse(*rst, true, false))
}

// CastVote handles POST /api/roasts/{roastID}/votes.
func (h *Handler) CastVote(w http.ResponseWriter, r *http.Request) {
	id, err := roastID(r)
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorBody("invalid roast id"))
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, 1<<16)
	var req CastVoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if err := req.Validate(); err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}

	total, err := h.votes.CastVote(r.Context(), id, req.Fingerprint)
	switch {
	case err == nil:
		h.writeJSON(w, http.StatusOK, VoteResponse{Votes: total})
	case errors.Is(err, errs.ErrAlreadyVoted):
		h.writeJSON(w, http.StatusConflict, errorBody("already voted on this roast"))
	case errors.Is(err, errs.ErrRateLimited):
		h.writeJSON(w, http.StatusTooManyRequests, errorBody("vote limit reached, try again later"))
	case errors.Is(err, errs.ErrNotFound):
		h.writeJSON(w, http.StatusNotFound, errorBody("roast not found"))
	default:
		h.log.Error("cast vote failed", zap.String("roast_id", id.String()), zap.Error(err))
		h.writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
	}
}

// HasVoted handles GET /api/roasts/{roastID}/votes/{fingerprint}. Advisory
// only: the UI uses it to pre-disable the vote button. It never errors; an
// unsure answer is "not voted" and CastVote remains the authoritative gate.
func (h *Handler) HasVoted(w http.ResponseWriter, r *http.Request) {
	id, err := roastID(r)
	if err != nil {
		h.writeJSON(w, http.StatusOK, VotedResponse{Voted: false})
		return
	}
	voted := h.votes.HasVoted(r.Context(), id, chi.URLParam(r, "fingerprint"))
	h.writeJSON(w, http.StatusOK, VotedResponse{Voted: voted})
}

// Health handles GET /healthz.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
