package platform

import (
	"context"
	"net/http"
	"time"

	"github.com/volleykit/drillboard/internal/session"
)

// Auth endpoint payloads. Field names follow the platform's token API.
type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authUser struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Metadata struct {
		Name string `json:"name"`
	} `json:"user_metadata"`
}

type signInResponse struct {
	AccessToken string   `json:"access_token"`
	ExpiresIn   int      `json:"expires_in"`
	User        authUser `json:"user"`
}

// SignIn exchanges credentials for a session at the platform's auth
// endpoint. Expiry comes from the token response, falling back to the
// access token's own exp claim.
func (c *Client) SignIn(ctx context.Context, email, password string) (*session.Session, error) {
	var resp signInResponse
	u := c.baseURL + "/auth/v1/token?grant_type=password"
	if err := c.do(ctx, http.MethodPost, u, "", signInRequest{Email: email, Password: password}, &resp); err != nil {
		return nil, err
	}

	expires := session.TokenExpiry(resp.AccessToken)
	if expires.IsZero() && resp.ExpiresIn > 0 {
		expires = time.Now().Add(time.Duration(resp.ExpiresIn) * time.Second)
	}
	return &session.Session{
		User: session.User{
			ID:    resp.User.ID,
			Email: resp.User.Email,
			Name:  resp.User.Metadata.Name,
		},
		AccessToken: resp.AccessToken,
		ExpiresAt:   expires,
	}, nil
}

// CurrentUser fetches the identity behind an access token, used to
// revalidate a restored session.
func (c *Client) CurrentUser(ctx context.Context, token string) (*session.User, error) {
	var u authUser
	if err := c.do(ctx, http.MethodGet, c.baseURL+"/auth/v1/user", token, nil, &u); err != nil {
		return nil, err
	}
	return &session.User{ID: u.ID, Email: u.Email, Name: u.Metadata.Name}, nil
}
