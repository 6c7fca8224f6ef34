package platform_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/volleykit/drillboard/internal/adapters/platform"
	"github.com/volleykit/drillboard/internal/domain/drill"
	"github.com/volleykit/drillboard/internal/domain/facet"
)

type capturedRequest struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
	Body   []byte
}

// stubPlatform records every request and replays canned JSON responses.
type stubPlatform struct {
	status   int
	body     string
	requests []capturedRequest
}

func (s *stubPlatform) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		s.requests = append(s.requests, capturedRequest{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.Query(),
			Header: r.Header.Clone(),
			Body:   body,
		})
		status := s.status
		if status == 0 {
			status = http.StatusOK
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(s.body))
	}
}

func TestListDrills(t *testing.T) {
	ctx := context.Background()

	Convey("Given a platform returning drills", t, func() {
		stub := &stubPlatform{body: `[{"id":"d1","url":"https://v/1","fundamentals":["reception"]}]`}
		srv := httptest.NewServer(stub.handler())
		defer srv.Close()
		c := platform.New(srv.URL, "anon-key")

		Convey("When listing with level and boolean facets", func() {
			out, err := c.ListDrills(ctx, facet.Params{
				Levels:       []int{1, 2},
				Fundamentals: []string{"ball control", "serve"},
				DrillTypes:   []string{"warmup"},
				Coach:        true,
			})

			Convey("Then the query uses the overlap and is operators", func() {
				So(err, ShouldBeNil)
				req := stub.requests[0]
				So(req.Path, ShouldEqual, "/rest/v1/drills_public")
				So(req.Query.Get("levels"), ShouldEqual, "ov.{1,2}")
				So(req.Query.Get("fundamentals"), ShouldEqual, `ov.{"ball control",serve}`)
				So(req.Query.Get("drill_types"), ShouldEqual, "ov.{warmup}")
				So(req.Query.Get("coach_participates"), ShouldEqual, "is.true")
				So(req.Query.Get("good_for_many_players"), ShouldBeEmpty)
			})

			Convey("Then the row cap is always applied", func() {
				So(stub.requests[0].Query.Get("limit"), ShouldEqual, "2000")
			})

			Convey("Then legacy fundamentals come back normalized", func() {
				So(out, ShouldHaveLength, 1)
				So(out[0].Fundamentals, ShouldResemble, []string{"receive"})
			})

			Convey("Then the anonymous key authenticates the read", func() {
				req := stub.requests[0]
				So(req.Header.Get("apikey"), ShouldEqual, "anon-key")
				So(req.Header.Get("Authorization"), ShouldEqual, "Bearer anon-key")
			})
		})

		Convey("When a custom row limit is configured", func() {
			small := platform.New(srv.URL, "anon-key", platform.WithRowLimit(25))
			_, err := small.ListDrills(ctx, facet.Params{Coach: true})

			So(err, ShouldBeNil)
			So(stub.requests[len(stub.requests)-1].Query.Get("limit"), ShouldEqual, "25")
		})
	})
}

func TestGetDrill(t *testing.T) {
	ctx := context.Background()

	Convey("Given the public drills view", t, func() {
		Convey("When the drill exists", func() {
			stub := &stubPlatform{body: `[{"id":"d1","url":"https://v/1"}]`}
			srv := httptest.NewServer(stub.handler())
			defer srv.Close()

			d, err := platform.New(srv.URL, "k").GetDrill(ctx, "d1")

			So(err, ShouldBeNil)
			So(d.ID, ShouldEqual, "d1")
			So(stub.requests[0].Query.Get("id"), ShouldEqual, "eq.d1")
		})

		Convey("When the view returns an empty set", func() {
			stub := &stubPlatform{body: `[]`}
			srv := httptest.NewServer(stub.handler())
			defer srv.Close()

			_, err := platform.New(srv.URL, "k").GetDrill(ctx, "missing")

			So(errors.Is(err, platform.ErrNotFound), ShouldBeTrue)
		})
	})
}

func TestWrites(t *testing.T) {
	ctx := context.Background()

	Convey("Given an authenticated write", t, func() {
		stub := &stubPlatform{body: `[]`}
		srv := httptest.NewServer(stub.handler())
		defer srv.Close()
		c := platform.New(srv.URL, "anon-key")

		Convey("When creating a drill", func() {
			created, err := c.CreateDrill(ctx, "user-token", drill.Drill{URL: "https://v/9"})

			Convey("Then the bearer token replaces the anonymous key", func() {
				So(err, ShouldBeNil)
				req := stub.requests[0]
				So(req.Method, ShouldEqual, http.MethodPost)
				So(req.Path, ShouldEqual, "/rest/v1/drills")
				So(req.Header.Get("Authorization"), ShouldEqual, "Bearer user-token")
				So(req.Header.Get("apikey"), ShouldEqual, "anon-key")
				So(req.Header.Get("Prefer"), ShouldEqual, "return=representation")
			})

			Convey("Then an id is generated client-side", func() {
				So(created.ID, ShouldNotBeEmpty)
			})
		})

		Convey("When adding a comment and a rating", func() {
			_, err := c.AddComment(ctx, "t", drill.Comment{DrillID: "d1", Comment: "x"})
			So(err, ShouldBeNil)
			_, err = c.AddRating(ctx, "t", drill.Rating{DrillID: "d1", Score: 8})
			So(err, ShouldBeNil)

			So(stub.requests[0].Path, ShouldEqual, "/rest/v1/drill_comments")
			So(stub.requests[1].Path, ShouldEqual, "/rest/v1/drill_ratings")
		})

		Convey("When updating and deleting", func() {
			_, err := c.UpdateDrill(ctx, "t", "d1", drill.Drill{URL: "https://v/1"})
			So(err, ShouldBeNil)
			So(c.DeleteDrill(ctx, "t", "d1"), ShouldBeNil)

			So(stub.requests[0].Method, ShouldEqual, http.MethodPatch)
			So(stub.requests[0].Query.Get("id"), ShouldEqual, "eq.d1")
			So(stub.requests[1].Method, ShouldEqual, http.MethodDelete)
		})
	})
}

func TestRemoteErrors(t *testing.T) {
	ctx := context.Background()

	Convey("Given a failing platform", t, func() {
		Convey("When the platform sends its own message", func() {
			stub := &stubPlatform{status: http.StatusBadRequest, body: `{"message":"duplicate key value"}`}
			srv := httptest.NewServer(stub.handler())
			defer srv.Close()

			_, err := platform.New(srv.URL, "k").ListDrills(ctx, facet.Params{Coach: true})

			Convey("Then the message surfaces verbatim", func() {
				So(errors.Is(err, platform.ErrRemote), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "duplicate key value")
			})
		})

		Convey("When the auth endpoint rejects credentials", func() {
			stub := &stubPlatform{status: http.StatusBadRequest, body: `{"error_description":"Invalid login credentials"}`}
			srv := httptest.NewServer(stub.handler())
			defer srv.Close()

			_, err := platform.New(srv.URL, "k").SignIn(ctx, "a@b.c", "nope")

			So(errors.Is(err, platform.ErrRemote), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "Invalid login credentials")
		})

		Convey("When the body carries no message at all", func() {
			stub := &stubPlatform{status: http.StatusBadGateway, body: `{}`}
			srv := httptest.NewServer(stub.handler())
			defer srv.Close()

			_, err := platform.New(srv.URL, "k").ListDrills(ctx, facet.Params{Coach: true})

			Convey("Then the status text stands in", func() {
				So(err.Error(), ShouldContainSubstring, "Bad Gateway")
			})
		})

		Convey("Then only a single attempt is made, never a retry", func() {
			stub := &stubPlatform{status: http.StatusInternalServerError, body: `{}`}
			srv := httptest.NewServer(stub.handler())
			defer srv.Close()

			_, err := platform.New(srv.URL, "k").ListDrills(ctx, facet.Params{Coach: true})

			So(err, ShouldNotBeNil)
			So(stub.requests, ShouldHaveLength, 1)
		})
	})
}

func TestSignIn(t *testing.T) {
	ctx := context.Background()

	Convey("Given the auth token endpoint", t, func() {
		stub := &stubPlatform{body: `{
			"access_token": "opaque-token",
			"expires_in": 3600,
			"user": {"id":"u1","email":"coach@example.com","user_metadata":{"name":"Kim"}}
		}`}
		srv := httptest.NewServer(stub.handler())
		defer srv.Close()

		sess, err := platform.New(srv.URL, "k").SignIn(ctx, "coach@example.com", "secret")

		Convey("Then the session carries the identity and token", func() {
			So(err, ShouldBeNil)
			So(sess.User.ID, ShouldEqual, "u1")
			So(sess.User.Name, ShouldEqual, "Kim")
			So(sess.AccessToken, ShouldEqual, "opaque-token")
		})

		Convey("Then expiry falls back to expires_in for opaque tokens", func() {
			So(sess.ExpiresAt.After(time.Now().Add(50*time.Minute)), ShouldBeTrue)
		})

		Convey("Then the request hits the password grant", func() {
			req := stub.requests[0]
			So(req.Path, ShouldEqual, "/auth/v1/token")
			So(req.Query.Get("grant_type"), ShouldEqual, "password")
		})
	})
}

func TestCurrentUser(t *testing.T) {
	ctx := context.Background()

	Convey("Given a restored access token", t, func() {
		stub := &stubPlatform{body: `{"id":"u1","email":"coach@example.com","user_metadata":{"name":"Kim"}}`}
		srv := httptest.NewServer(stub.handler())
		defer srv.Close()

		u, err := platform.New(srv.URL, "k").CurrentUser(ctx, "user-token")

		Convey("Then the identity behind the token is returned", func() {
			So(err, ShouldBeNil)
			So(u.ID, ShouldEqual, "u1")
			So(u.Name, ShouldEqual, "Kim")

			req := stub.requests[0]
			So(req.Path, ShouldEqual, "/auth/v1/user")
			So(req.Header.Get("Authorization"), ShouldEqual, "Bearer user-token")
		})
	})
}
