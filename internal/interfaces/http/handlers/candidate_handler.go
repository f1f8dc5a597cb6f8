package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	appCandidate "github.com/turtacn/DeNovo-Designer/internal/application/candidate"
	domainCand "github.com/turtacn/DeNovo-Designer/internal/domain/candidate"
	"github.com/turtacn/DeNovo-Designer/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/DeNovo-Designer/pkg/errors"
)

// CandidateHandler gives direct access to the result dataset.
type CandidateHandler struct {
	svc    appCandidate.Service
	logger logging.Logger
}

func NewCandidateHandler(svc appCandidate.Service, logger logging.Logger) *CandidateHandler {
	return &CandidateHandler{svc: svc, logger: logger}
}

// List handles GET /candidates?count=.
func (h *CandidateHandler) List(w http.ResponseWriter, r *http.Request) {
	count, err := queryInt(r, "count", domainCand.FixtureSize)
	if err != nil {
		writeAppError(w, h.logger, err)
		return
	}
	res, err := h.svc.List(r.Context(), count)
	if err != nil {
		writeAppError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// Get handles GET /candidates/{id}.
func (h *CandidateHandler) Get(w http.ResponseWriter, r *http.Request) {
	c, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeAppError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// Top handles GET /candidates/top?n=.
func (h *CandidateHandler) Top(w http.ResponseWriter, r *http.Request) {
	n, err := queryInt(r, "n", 5)
	if err != nil {
		writeAppError(w, h.logger, err)
		return
	}
	res, err := h.svc.Top(r.Context(), n)
	if err != nil {
		writeAppError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// Classify handles GET /classify?score=.
func (h *CandidateHandler) Classify(w http.ResponseWriter, r *http.Request) {
	raw, err := requireQuery(r, "score")
	if err != nil {
		writeAppError(w, h.logger, err)
		return
	}
	score, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		writeAppError(w, h.logger, errors.InvalidArgument("score must be a number").WithDetail("score="+raw))
		return
	}
	res, err := h.svc.Classify(r.Context(), score)
	if err != nil {
		writeAppError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

//Personal.AI order the ending
