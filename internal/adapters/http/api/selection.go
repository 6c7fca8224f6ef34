package api

import (
	"net/http"
	"strings"
)

// SelectionHandler serves the local selection set and the share text.
type SelectionHandler struct {
	deps Dependencies
}

// NewSelectionHandler creates a new selection handler.
func NewSelectionHandler(deps Dependencies) *SelectionHandler {
	return &SelectionHandler{deps: deps}
}

type selectionResponse struct {
	IDs   []string `json:"ids"`
	Count int      `json:"count"`
}

// HandleSelection handles /api/selection.
//
// GET    /api/selection  — current selected ids
// DELETE /api/selection  — clear the selection
func (h *SelectionHandler) HandleSelection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		ids := h.deps.SelectedIDs()
		if ids == nil {
			ids = []string{}
		}
		writeJSON(w, http.StatusOK, selectionResponse{IDs: ids, Count: len(ids)})
	case http.MethodDelete:
		h.deps.ClearSelection(r.Context())
		w.WriteHeader(http.StatusNoContent)
	default:
		http.NotFound(w, r)
	}
}

type toggleResponse struct {
	ID       string `json:"id"`
	Selected bool   `json:"selected"`
}

// HandleSelectionItem handles /api/selection/{id}/toggle and
// GET /api/selection/share-text.
func (h *SelectionHandler) HandleSelectionItem(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/selection/")

	if rest == "share-text" {
		if r.Method != http.MethodGet {
			http.NotFound(w, r)
			return
		}
		text := h.deps.ShareText()
		if text == "" {
			// Nothing selected; the client must not offer copy/share.
			w.WriteHeader(http.StatusNoContent)
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte(text))
		return
	}

	id, ok := strings.CutSuffix(rest, "/toggle")
	if !ok || id == "" || r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	selected := h.deps.ToggleSelect(r.Context(), id)
	writeJSON(w, http.StatusOK, toggleResponse{ID: id, Selected: selected})
}
