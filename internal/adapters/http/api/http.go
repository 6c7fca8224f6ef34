// Package api declares the HTTP contracts and route registration for
// the drillboard catalog surface.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/volleykit/drillboard/internal/app"
	"github.com/volleykit/drillboard/internal/domain/drill"
	"github.com/volleykit/drillboard/internal/domain/facet"
	"github.com/volleykit/drillboard/internal/session"
)

// Details and Feedback mirror the application-layer shapes.
type (
	Details  = app.DrillDetails
	Feedback = app.Feedback
)

// Dependencies required by the HTTP handlers. The interface bundle
// keeps the handler layer loosely coupled to the service package.
type Dependencies interface {
	// Catalog reads
	FetchNow(ctx context.Context, sel facet.Selection) ([]drill.Drill, error)
	Details(ctx context.Context, id string) (Details, error)

	// Gated writes
	CreateDrill(ctx context.Context, d drill.Drill) (drill.Drill, error)
	UpdateDrill(ctx context.Context, id string, d drill.Drill) (drill.Drill, error)
	DeleteDrill(ctx context.Context, id string) error
	AddComment(ctx context.Context, drillID, text, name, email string) (drill.Comment, error)
	AddRating(ctx context.Context, drillID string, score int, name, email string) (drill.Rating, error)
	SubmitFeedback(ctx context.Context, drillID string, fb Feedback) error
	DeleteComment(ctx context.Context, id string) error
	DeleteRating(ctx context.Context, id string) error

	// Selection + share
	ToggleSelect(ctx context.Context, id string) bool
	ClearSelection(ctx context.Context)
	SelectedIDs() []string
	IsSelected(id string) bool
	ShareText() string

	// Auth
	SignIn(ctx context.Context, email, password string) (*session.Session, error)
	SignOut(ctx context.Context)
	Session() *session.Session
}

// Server wires HTTP routes for the catalog API.
type Server struct {
	drillsHandler    *DrillsHandler
	selectionHandler *SelectionHandler
	authHandler      *AuthHandler
	healthHandler    *HealthHandler
}

// NewServer creates an API server with all handlers.
func NewServer(deps Dependencies) *Server {
	return &Server{
		drillsHandler:    NewDrillsHandler(deps),
		selectionHandler: NewSelectionHandler(deps),
		authHandler:      NewAuthHandler(deps),
		healthHandler:    NewHealthHandler(),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/api/drills", MetricsMiddleware(s.drillsHandler.HandleDrills, "drills"))
	mux.HandleFunc("/api/drills/", MetricsMiddleware(s.drillsHandler.HandleDrill, "drill"))
	mux.HandleFunc("/api/comments/", MetricsMiddleware(s.drillsHandler.HandleComment, "comment"))
	mux.HandleFunc("/api/ratings/", MetricsMiddleware(s.drillsHandler.HandleRating, "rating"))
	mux.HandleFunc("/api/selection", MetricsMiddleware(s.selectionHandler.HandleSelection, "selection"))
	mux.HandleFunc("/api/selection/", MetricsMiddleware(s.selectionHandler.HandleSelectionItem, "selection_item"))
	mux.HandleFunc("/api/login", MetricsMiddleware(s.authHandler.HandleLogin, "login"))
	mux.HandleFunc("/api/logout", MetricsMiddleware(s.authHandler.HandleLogout, "logout"))
	mux.HandleFunc("/api/session", MetricsMiddleware(s.authHandler.HandleSession, "session"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeDomainError maps the error taxonomy onto HTTP statuses:
// validation 400, unauthorized 401, disabled 403, not-found 404,
// remote failure 502 with the platform's message passed through.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, drill.ErrValidation):
		writeError(w, http.StatusBadRequest, "validation_failure", err)
	case errors.Is(err, session.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "unauthorized", err)
	case errors.Is(err, session.ErrDisabled):
		writeError(w, http.StatusForbidden, "disabled_operation", err)
	case isNotFound(err):
		writeError(w, http.StatusNotFound, "not_found", err)
	default:
		writeError(w, http.StatusBadGateway, "remote_failure", err)
	}
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
