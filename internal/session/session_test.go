package session_test

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/volleykit/drillboard/internal/session"
)

// unsignedToken builds a JWT-shaped token with the given claims and an
// empty signature, enough for unverified claim parsing.
func unsignedToken(claims map[string]any) string {
	enc := func(v any) string {
		raw, _ := json.Marshal(v)
		return base64.RawURLEncoding.EncodeToString(raw)
	}
	header := map[string]any{"alg": "none", "typ": "JWT"}
	return fmt.Sprintf("%s.%s.", enc(header), enc(claims))
}

func TestRequire(t *testing.T) {
	Convey("Given a session context", t, func() {
		ctx := session.NewContext()

		Convey("When no one is signed in", func() {
			_, err := ctx.Require("add drills")

			Convey("Then the gate should block with the action-specific message", func() {
				So(errors.Is(err, session.ErrUnauthorized), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "Login required to add drills.")
			})
		})

		Convey("When a session is active", func() {
			ctx.Set(&session.Session{User: session.User{ID: "u1", Email: "coach@example.com"}})
			s, err := ctx.Require("add comments")

			Convey("Then the gate should pass through the session", func() {
				So(err, ShouldBeNil)
				So(s.User.ID, ShouldEqual, "u1")
			})
		})

		Convey("When the session token has expired", func() {
			ctx.Set(&session.Session{
				User:      session.User{ID: "u1"},
				ExpiresAt: time.Now().Add(-time.Minute),
			})

			Convey("Then the gate should block and Current should be nil", func() {
				So(ctx.Current(), ShouldBeNil)
				_, err := ctx.Require("edit drills")
				So(errors.Is(err, session.ErrUnauthorized), ShouldBeTrue)
			})
		})
	})
}

func TestSubscribe(t *testing.T) {
	Convey("Given a session context with a subscriber", t, func() {
		ctx := session.NewContext()
		var got []*session.Session
		unsubscribe := ctx.Subscribe(func(s *session.Session) {
			got = append(got, s)
		})

		Convey("When the session changes", func() {
			ctx.Set(&session.Session{User: session.User{ID: "u1"}})
			ctx.Clear()

			Convey("Then the subscriber sees every transition", func() {
				So(got, ShouldHaveLength, 2)
				So(got[0].User.ID, ShouldEqual, "u1")
				So(got[1], ShouldBeNil)
			})
		})

		Convey("When the subscriber unsubscribes", func() {
			unsubscribe()
			ctx.Set(&session.Session{User: session.User{ID: "u1"}})

			Convey("Then no further notifications arrive", func() {
				So(got, ShouldBeEmpty)
			})
		})
	})
}

func TestTokenExpiry(t *testing.T) {
	Convey("Given platform access tokens", t, func() {
		Convey("When the token carries an exp claim", func() {
			exp := time.Now().Add(time.Hour).Truncate(time.Second)
			tok := unsignedToken(map[string]any{"sub": "u1", "exp": exp.Unix()})

			Convey("Then the expiry is extracted without verification", func() {
				So(session.TokenExpiry(tok).Unix(), ShouldEqual, exp.Unix())
			})
		})

		Convey("When the token has no exp claim", func() {
			tok := unsignedToken(map[string]any{"sub": "u1"})
			So(session.TokenExpiry(tok).IsZero(), ShouldBeTrue)
		})

		Convey("When the token is not a JWT at all", func() {
			So(session.TokenExpiry("not-a-token").IsZero(), ShouldBeTrue)
		})
	})
}

func TestExpired(t *testing.T) {
	Convey("Given session expiry semantics", t, func() {
		now := time.Now()

		Convey("A zero expiry means the session never expires locally", func() {
			s := &session.Session{}
			So(s.Expired(now), ShouldBeFalse)
		})

		Convey("A future expiry is live, a past one is not", func() {
			live := &session.Session{ExpiresAt: now.Add(time.Minute)}
			dead := &session.Session{ExpiresAt: now.Add(-time.Minute)}
			So(live.Expired(now), ShouldBeFalse)
			So(dead.Expired(now), ShouldBeTrue)
		})
	})
}
