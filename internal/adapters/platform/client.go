// Package platform is the client for the hosted data platform that
// owns all drill, comment, and rating records. It speaks the
// platform's REST dialect: reads against the public drills view with
// facet filters, writes against the entity tables, and the token-based
// auth endpoint. The client composes query parameters and surfaces
// remote errors verbatim; it never embeds query logic beyond that.
package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/volleykit/drillboard/internal/domain/drill"
	"github.com/volleykit/drillboard/internal/domain/facet"
	"github.com/volleykit/drillboard/pkg/logger"
)

// DefaultRowLimit caps list query result size.
const DefaultRowLimit = 2000

const defaultTimeout = 15 * time.Second

// Table and view names on the platform.
const (
	drillsView    = "drills_public"
	drillsTable   = "drills"
	commentsTable = "drill_comments"
	ratingsTable  = "drill_ratings"
)

// Client talks to the remote data platform.
type Client struct {
	baseURL  string
	apiKey   string
	http     *http.Client
	log      logger.Logger
	rowLimit int
}

// New creates a Client for the platform at baseURL. apiKey is the
// public (anonymous) key sent with every request; write requests
// additionally carry the session's bearer token.
func New(baseURL, apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		apiKey:   apiKey,
		http:     &http.Client{Timeout: defaultTimeout},
		log:      logger.Nop(),
		rowLimit: DefaultRowLimit,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListDrills reads the public drills view applying all active facet
// constraints: AND across facets, overlap within a multi-valued facet.
// The caller is expected to have rejected empty params already; an
// unfiltered catalog is never requested.
func (c *Client) ListDrills(ctx context.Context, p facet.Params) ([]drill.Drill, error) {
	q := url.Values{}
	q.Set("select", "*")
	q.Set("limit", strconv.Itoa(c.rowLimit))
	if len(p.Levels) > 0 {
		q.Set("levels", "ov."+intList(p.Levels))
	}
	if len(p.Fundamentals) > 0 {
		q.Set("fundamentals", "ov."+stringList(p.Fundamentals))
	}
	if len(p.DrillTypes) > 0 {
		q.Set("drill_types", "ov."+stringList(p.DrillTypes))
	}
	if p.Coach {
		q.Set("coach_participates", "is.true")
	}
	if p.Many {
		q.Set("good_for_many_players", "is.true")
	}

	var out []drill.Drill
	if err := c.do(ctx, http.MethodGet, c.restURL(drillsView, q), "", nil, &out); err != nil {
		return nil, err
	}
	for i := range out {
		out[i].Normalize()
	}
	return out, nil
}

// GetDrill reads one drill from the public view.
func (c *Client) GetDrill(ctx context.Context, id string) (drill.Drill, error) {
	q := url.Values{}
	q.Set("select", "*")
	q.Set("id", "eq."+id)
	q.Set("limit", "1")

	var out []drill.Drill
	if err := c.do(ctx, http.MethodGet, c.restURL(drillsView, q), "", nil, &out); err != nil {
		return drill.Drill{}, err
	}
	if len(out) == 0 {
		return drill.Drill{}, ErrNotFound
	}
	out[0].Normalize()
	return out[0], nil
}

// ListComments returns a drill's comments, newest first.
func (c *Client) ListComments(ctx context.Context, drillID string) ([]drill.Comment, error) {
	q := url.Values{}
	q.Set("select", "*")
	q.Set("drill_id", "eq."+drillID)
	q.Set("order", "created_at.desc")

	var out []drill.Comment
	if err := c.do(ctx, http.MethodGet, c.restURL(commentsTable, q), "", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListRatings returns a drill's ratings, newest first.
func (c *Client) ListRatings(ctx context.Context, drillID string) ([]drill.Rating, error) {
	q := url.Values{}
	q.Set("select", "*")
	q.Set("drill_id", "eq."+drillID)
	q.Set("order", "created_at.desc")

	var out []drill.Rating
	if err := c.do(ctx, http.MethodGet, c.restURL(ratingsTable, q), "", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateDrill inserts a drill. The id is generated client-side so the
// caller can reference the record before the response lands.
func (c *Client) CreateDrill(ctx context.Context, token string, d drill.Drill) (drill.Drill, error) {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	var out []drill.Drill
	if err := c.do(ctx, http.MethodPost, c.restURL(drillsTable, returnRepresentation()), token, d, &out); err != nil {
		return drill.Drill{}, err
	}
	return first(out, d), nil
}

// UpdateDrill updates the drill with the given id.
func (c *Client) UpdateDrill(ctx context.Context, token, id string, d drill.Drill) (drill.Drill, error) {
	q := returnRepresentation()
	q.Set("id", "eq."+id)
	var out []drill.Drill
	if err := c.do(ctx, http.MethodPatch, c.restURL(drillsTable, q), token, d, &out); err != nil {
		return drill.Drill{}, err
	}
	return first(out, d), nil
}

// DeleteDrill removes the drill with the given id.
func (c *Client) DeleteDrill(ctx context.Context, token, id string) error {
	q := url.Values{}
	q.Set("id", "eq."+id)
	return c.do(ctx, http.MethodDelete, c.restURL(drillsTable, q), token, nil, nil)
}

// AddComment appends a comment to a drill.
func (c *Client) AddComment(ctx context.Context, token string, cm drill.Comment) (drill.Comment, error) {
	if cm.ID == "" {
		cm.ID = uuid.NewString()
	}
	var out []drill.Comment
	if err := c.do(ctx, http.MethodPost, c.restURL(commentsTable, returnRepresentation()), token, cm, &out); err != nil {
		return drill.Comment{}, err
	}
	return first(out, cm), nil
}

// AddRating appends a rating to a drill.
func (c *Client) AddRating(ctx context.Context, token string, r drill.Rating) (drill.Rating, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	var out []drill.Rating
	if err := c.do(ctx, http.MethodPost, c.restURL(ratingsTable, returnRepresentation()), token, r, &out); err != nil {
		return drill.Rating{}, err
	}
	return first(out, r), nil
}

func (c *Client) restURL(entity string, q url.Values) string {
	return c.baseURL + "/rest/v1/" + entity + "?" + q.Encode()
}

func returnRepresentation() url.Values {
	q := url.Values{}
	q.Set("select", "*")
	return q
}

// first returns the representation echoed by the platform, falling
// back to the submitted record when the response is empty.
func first[T any](out []T, fallback T) T {
	if len(out) > 0 {
		return out[0]
	}
	return fallback
}

// do issues one request and decodes the JSON response into out when
// out is non-nil. token, when set, replaces the anonymous key as the
// bearer credential.
func (c *Client) do(ctx context.Context, method, rawURL, token string, body, out any) error {
	var rd io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrRemote, err)
		}
		rd = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, rd)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRemote, err)
	}
	req.Header.Set("apikey", c.apiKey)
	bearer := c.apiKey
	if token != "" {
		bearer = token
	}
	req.Header.Set("Authorization", "Bearer "+bearer)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Prefer", "return=representation")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrRemote, err.Error())
	}
	defer resp.Body.Close() //nolint:errcheck // read-side close

	c.log.Debug(ctx, "platform request",
		logger.String("method", method),
		logger.String("url", rawURL),
		logger.Int("status", resp.StatusCode),
		logger.Int("elapsed_ms", int(time.Since(start).Milliseconds())),
	)

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRemote, err)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("%w: %s", ErrRemote, remoteMessage(raw, resp.StatusCode))
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: %w", ErrRemote, err)
	}
	return nil
}

// remoteMessage extracts the platform's own error message so it can be
// surfaced verbatim. Falls back to the HTTP status text.
func remoteMessage(raw []byte, status int) string {
	var body struct {
		Message          string `json:"message"`
		Msg              string `json:"msg"`
		ErrorDescription string `json:"error_description"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		switch {
		case body.Message != "":
			return body.Message
		case body.Msg != "":
			return body.Msg
		case body.ErrorDescription != "":
			return body.ErrorDescription
		}
	}
	return http.StatusText(status)
}

// intList renders {1,2,3} for the platform's array overlap operator.
func intList(vals []int) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = strconv.Itoa(v)
	}
	return "{" + strings.Join(parts, ",") + "}"
}

// stringList renders {a,"b c"}; values with spaces or commas are quoted.
func stringList(vals []string) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		if strings.ContainsAny(v, " ,") {
			parts[i] = `"` + v + `"`
		} else {
			parts[i] = v
		}
	}
	return "{" + strings.Join(parts, ",") + "}"
}
