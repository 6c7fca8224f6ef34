package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/schema"

	"github.com/volleykit/drillboard/internal/domain/drill"
	"github.com/volleykit/drillboard/internal/domain/facet"
)

var queryDecoder = schema.NewDecoder() //nolint:gochecknoglobals // shared stateless decoder

func init() { //nolint:gochecknoinits // decoder setup
	queryDecoder.IgnoreUnknownKeys(true)
}

// DrillsHandler serves the catalog list, drill details, and the write
// endpoints hanging off a drill.
type DrillsHandler struct {
	deps Dependencies
}

// NewDrillsHandler creates a new drills handler.
func NewDrillsHandler(deps Dependencies) *DrillsHandler {
	return &DrillsHandler{deps: deps}
}

// HandleDrills handles /api/drills.
//
// GET  /api/drills?level=B1&fundamental=serve&type=Technical&coach=1&many=1
// POST /api/drills
func (h *DrillsHandler) HandleDrills(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPost:
		h.create(w, r)
	default:
		http.NotFound(w, r)
	}
}

// list decodes the facet selection from the query string and returns
// the ranked result list. No facet active means an empty list and no
// remote call; the catalog never shows unfiltered results.
func (h *DrillsHandler) list(w http.ResponseWriter, r *http.Request) {
	var sel facet.Selection
	if err := queryDecoder.Decode(&sel, r.URL.Query()); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	drills, err := h.deps.FetchNow(r.Context(), sel)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if drills == nil {
		drills = []drill.Drill{}
	}
	writeJSON(w, http.StatusOK, drills)
}

func (h *DrillsHandler) create(w http.ResponseWriter, r *http.Request) {
	var d drill.Drill
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	out, err := h.deps.CreateDrill(r.Context(), d)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, out)
}

// HandleDrill handles /api/drills/{id} and its subresources:
//
//	GET    /api/drills/{id}
//	PUT    /api/drills/{id}
//	DELETE /api/drills/{id}
//	POST   /api/drills/{id}/comments
//	POST   /api/drills/{id}/ratings
//	POST   /api/drills/{id}/feedback
func (h *DrillsHandler) HandleDrill(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/drills/")
	parts := strings.SplitN(rest, "/", 2)
	id := parts[0]
	if id == "" {
		http.NotFound(w, r)
		return
	}

	if len(parts) == 1 {
		switch r.Method {
		case http.MethodGet:
			h.details(w, r, id)
		case http.MethodPut:
			h.update(w, r, id)
		case http.MethodDelete:
			h.delete(w, r, id)
		default:
			http.NotFound(w, r)
		}
		return
	}

	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	switch parts[1] {
	case "comments":
		h.addComment(w, r, id)
	case "ratings":
		h.addRating(w, r, id)
	case "feedback":
		h.submitFeedback(w, r, id)
	default:
		http.NotFound(w, r)
	}
}

func (h *DrillsHandler) details(w http.ResponseWriter, r *http.Request, id string) {
	details, err := h.deps.Details(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, details)
}

func (h *DrillsHandler) update(w http.ResponseWriter, r *http.Request, id string) {
	var d drill.Drill
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	out, err := h.deps.UpdateDrill(r.Context(), id, d)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *DrillsHandler) delete(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.deps.DeleteDrill(r.Context(), id); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type commentRequest struct {
	Comment string `json:"comment"`
	Name    string `json:"created_by_name"`
	Email   string `json:"created_by_email"`
}

func (h *DrillsHandler) addComment(w http.ResponseWriter, r *http.Request, id string) {
	var req commentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	out, err := h.deps.AddComment(r.Context(), id, req.Comment, req.Name, req.Email)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, out)
}

type ratingRequest struct {
	Score int    `json:"score"`
	Name  string `json:"created_by_name"`
	Email string `json:"created_by_email"`
}

func (h *DrillsHandler) addRating(w http.ResponseWriter, r *http.Request, id string) {
	var req ratingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	out, err := h.deps.AddRating(r.Context(), id, req.Score, req.Name, req.Email)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, out)
}

func (h *DrillsHandler) submitFeedback(w http.ResponseWriter, r *http.Request, id string) {
	var fb Feedback
	if err := json.NewDecoder(r.Body).Decode(&fb); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	if err := h.deps.SubmitFeedback(r.Context(), id, fb); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "submitted"})
}

// HandleComment handles DELETE /api/comments/{id}. The operation is
// disabled by policy and always fails before reaching the platform.
func (h *DrillsHandler) HandleComment(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/comments/")
	if r.Method != http.MethodDelete || id == "" {
		http.NotFound(w, r)
		return
	}
	if err := h.deps.DeleteComment(r.Context(), id); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleRating handles DELETE /api/ratings/{id}, disabled like
// comment deletion.
func (h *DrillsHandler) HandleRating(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/ratings/")
	if r.Method != http.MethodDelete || id == "" {
		http.NotFound(w, r)
		return
	}
	if err := h.deps.DeleteRating(r.Context(), id); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
