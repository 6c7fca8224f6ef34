package api

import (
	"encoding/json"
	"net/http"
)

// AuthHandler serves sign-in, sign-out, and session introspection.
type AuthHandler struct {
	deps Dependencies
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(deps Dependencies) *AuthHandler {
	return &AuthHandler{deps: deps}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleLogin handles POST /api/login.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	sess, err := h.deps.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

// HandleLogout handles POST /api/logout.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	h.deps.SignOut(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

type sessionResponse struct {
	SignedIn bool `json:"signed_in"`
	Session  any  `json:"session,omitempty"`
}

// HandleSession handles GET /api/session.
func (h *AuthHandler) HandleSession(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	sess := h.deps.Session()
	if sess == nil {
		writeJSON(w, http.StatusOK, sessionResponse{SignedIn: false})
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{SignedIn: true, Session: sess})
}
