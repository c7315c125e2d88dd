package handlers

import (
	"net/http"

	"github.com/gorilla/sessions"

	"github.com/ghuser/retailseed/pkg/auth"
	"github.com/ghuser/retailseed/pkg/httpx"
	"github.com/ghuser/retailseed/pkg/logger"
	pkgvalidator "github.com/ghuser/retailseed/pkg/validator"
)

// CreateSessionRequest is the request body for POST /api/sessions.
type CreateSessionRequest struct {
	Operator string `json:"operator" validate:"required,min=2,max=64"`
	Token    string `json:"token"    validate:"required"`
}

type CreateSessionResponse struct {
	Operator string `json:"operator"`
}

// SessionHandler exchanges the admin token for an operator session.
type SessionHandler struct {
	store      sessions.Store
	adminToken string
	log        logger.Logger
}

func NewSessionHandler(store sessions.Store, adminToken string, log logger.Logger) *SessionHandler {
	return &SessionHandler{store: store, adminToken: adminToken, log: log}
}

// Create handles POST /api/sessions.
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[CreateSessionRequest](w, r)
	if !ok {
		return
	}

	if !auth.TokenMatches(req.Token, h.adminToken) {
		h.log.WarnContext(r.Context(), "operator login rejected", "operator", req.Operator)
		httpx.JSONError(w, http.StatusUnauthorized, "invalid token")
		return
	}

	if err := auth.StartOperatorSession(h.store, w, r, req.Operator); err != nil {
		h.log.ErrorContext(r.Context(), "start operator session", "error", err)
		httpx.JSONError(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		return
	}

	h.log.InfoContext(r.Context(), "operator logged in", "operator", req.Operator)
	httpx.JSON(w, http.StatusCreated, CreateSessionResponse{Operator: req.Operator})
}

// Delete handles DELETE /api/sessions. It succeeds without a session too.
func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := auth.EndOperatorSession(h.store, w, r); err != nil {
		h.log.WarnContext(r.Context(), "end operator session", "error", err)
	}
	w.WriteHeader(http.StatusNoContent)
}
