// Package app wires the catalog domain to its adapters: the remote
// platform client, the session context, the persisted selection set,
// and the fetch cycle feeding the ranked result list.
package app

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/volleykit/drillboard/internal/domain/drill"
	"github.com/volleykit/drillboard/internal/domain/facet"
	"github.com/volleykit/drillboard/internal/domain/rank"
	"github.com/volleykit/drillboard/internal/domain/selection"
	"github.com/volleykit/drillboard/internal/domain/share"
	"github.com/volleykit/drillboard/internal/session"
	"github.com/volleykit/drillboard/pkg/logger"
	"github.com/volleykit/drillboard/pkg/metrics"
)

// Platform is the slice of the remote data platform the service needs.
type Platform interface {
	ListDrills(ctx context.Context, p facet.Params) ([]drill.Drill, error)
	GetDrill(ctx context.Context, id string) (drill.Drill, error)
	ListComments(ctx context.Context, drillID string) ([]drill.Comment, error)
	ListRatings(ctx context.Context, drillID string) ([]drill.Rating, error)

	CreateDrill(ctx context.Context, token string, d drill.Drill) (drill.Drill, error)
	UpdateDrill(ctx context.Context, token, id string, d drill.Drill) (drill.Drill, error)
	DeleteDrill(ctx context.Context, token, id string) error
	AddComment(ctx context.Context, token string, c drill.Comment) (drill.Comment, error)
	AddRating(ctx context.Context, token string, r drill.Rating) (drill.Rating, error)

	SignIn(ctx context.Context, email, password string) (*session.Session, error)
}

// Service implements the catalog operations exposed over HTTP.
type Service struct {
	mu sync.RWMutex

	platform    Platform
	sessions    *session.Context
	selPort     selection.Port
	selected    *selection.Store
	fetcher     *fetcher
	log         logger.Logger
	unsubscribe func()

	// Current ranked results. errMsg carries the human-readable remote
	// failure of the last fetch, empty on success. lastGen guards
	// against an older fetch landing after a newer state was applied.
	results []drill.Drill
	errMsg  string
	lastGen uint64
	version uint64

	started bool
}

// New creates a Service. A platform must be provided via WithPlatform.
func New(opts ...Option) *Service {
	s := &Service{
		sessions: session.NewContext(),
		selPort:  selection.NewMemoryPort(),
		log:      logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.fetcher = newFetcher(s.fetchDrills, s.applyResult, s.log)
	return s
}

// Start loads the persisted selection and launches the fetch worker.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return nil
	}
	s.started = true
	s.selected = selection.New(ctx, selection.WithPort(s.selPort))
	s.mu.Unlock()

	metrics.UpdateSelectionSize(s.selected.Len())
	s.unsubscribe = s.sessions.Subscribe(func(sess *session.Session) {
		metrics.UpdateSignedIn(sess != nil)
	})
	s.fetcher.Start(ctx)
	s.log.Info(ctx, "service started", logger.Int("selected", s.selected.Len()))
	return nil
}

// Stop tears down the fetch worker and the session subscription.
func (s *Service) Stop() {
	s.fetcher.Stop()
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
}

// Sessions exposes the injected session context.
func (s *Service) Sessions() *session.Context {
	return s.sessions
}

// --- catalog read cycle ---

// SetFilters applies a new facet selection. An empty selection renders
// an empty catalog without touching the network (product rule, not an
// optimization); anything else goes to the fetch worker, newest
// selection first.
func (s *Service) SetFilters(_ context.Context, sel facet.Selection) {
	params := sel.Params()
	if params.Empty() {
		metrics.RecordEmptyFilterHit()
		gen := s.fetcher.Invalidate()
		s.mu.Lock()
		s.results = nil
		s.errMsg = ""
		s.lastGen = gen
		s.version++
		s.mu.Unlock()
		metrics.UpdateResultCount(0)
		return
	}
	s.fetcher.Request(params)
}

// FetchNow runs one synchronous fetch for the given selection and
// returns the ranked list. The HTTP list endpoint is request/response
// shaped and uses this; the async cycle serves the push surface.
func (s *Service) FetchNow(ctx context.Context, sel facet.Selection) ([]drill.Drill, error) {
	params := sel.Params()
	if params.Empty() {
		metrics.RecordEmptyFilterHit()
		return []drill.Drill{}, nil
	}
	// Claim a generation without waking the worker; this path fetches
	// inline but still participates in last-issued-wins.
	gen := s.fetcher.Invalidate()
	metrics.RecordFetch()
	drills, err := s.fetchDrills(ctx, params)
	s.applyResult(gen, drills, err)
	if err != nil {
		metrics.RecordFetchError()
		return nil, err
	}
	return rank.Sorted(drills), nil
}

func (s *Service) fetchDrills(ctx context.Context, p facet.Params) ([]drill.Drill, error) {
	return s.platform.ListDrills(ctx, p)
}

// applyResult installs a fetch outcome unless a newer request was
// issued or applied in the meantime.
func (s *Service) applyResult(gen uint64, drills []drill.Drill, err error) {
	if gen != s.fetcher.current() {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen <= s.lastGen {
		return
	}
	if err != nil {
		s.results = nil
		s.errMsg = err.Error()
	} else {
		s.results = rank.Sorted(drills)
		s.errMsg = ""
	}
	s.lastGen = gen
	s.version++
	metrics.UpdateResultCount(len(s.results))
}

// Results returns the current ranked list, the last fetch error
// message ("" on success), and a version that increases with every
// applied change. The list is a copy; callers cannot disturb the
// ranked state.
func (s *Service) Results() ([]drill.Drill, string, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.results), s.errMsg, s.version
}

// DrillDetails bundles a drill with its comments and ratings and the
// resolved display rating.
type DrillDetails struct {
	Drill         drill.Drill     `json:"drill"`
	Comments      []drill.Comment `json:"comments"`
	Ratings       []drill.Rating  `json:"ratings"`
	DisplayRating *float64        `json:"display_rating"`
}

// Details fetches one drill together with its comments and ratings.
func (s *Service) Details(ctx context.Context, id string) (DrillDetails, error) {
	d, err := s.platform.GetDrill(ctx, id)
	if err != nil {
		return DrillDetails{}, err
	}
	comments, err := s.platform.ListComments(ctx, id)
	if err != nil {
		return DrillDetails{}, err
	}
	ratings, err := s.platform.ListRatings(ctx, id)
	if err != nil {
		return DrillDetails{}, err
	}
	return DrillDetails{
		Drill:         d,
		Comments:      comments,
		Ratings:       ratings,
		DisplayRating: drill.DisplayRating(d, ratings),
	}, nil
}

// --- selection + share ---

// ToggleSelect flips membership of id in the session selection and
// returns the new state.
func (s *Service) ToggleSelect(ctx context.Context, id string) bool {
	on := s.selected.Toggle(ctx, id)
	metrics.UpdateSelectionSize(s.selected.Len())
	return on
}

// ClearSelection empties the session selection.
func (s *Service) ClearSelection(ctx context.Context) {
	s.selected.Clear(ctx)
	metrics.UpdateSelectionSize(0)
}

// IsSelected reports membership of id.
func (s *Service) IsSelected(id string) bool {
	return s.selected.IsSelected(id)
}

// SelectedIDs returns the selected drill ids.
func (s *Service) SelectedIDs() []string {
	return s.selected.IDs()
}

// SelectedCount returns the selection size.
func (s *Service) SelectedCount() int {
	return s.selected.Len()
}

// ShareText composes the plain-text session summary from the current
// ranked results and the selection, in ranked order. Empty when
// nothing is selected; the caller must not offer copy/share then.
func (s *Service) ShareText() string {
	s.mu.RLock()
	ranked := s.results
	s.mu.RUnlock()
	return share.Compose(ranked, s.selected.IsSelected)
}

// --- auth ---

// SignIn authenticates against the platform and activates the session.
func (s *Service) SignIn(ctx context.Context, email, password string) (*session.Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", drill.ErrValidation)
	}
	sess, err := s.platform.SignIn(ctx, email, password)
	if err != nil {
		return nil, err
	}
	s.sessions.Set(sess)
	return sess, nil
}

// SignOut clears the active session.
func (s *Service) SignOut(_ context.Context) {
	s.sessions.Clear()
}

// Session returns the active session or nil.
func (s *Service) Session() *session.Session {
	return s.sessions.Current()
}
