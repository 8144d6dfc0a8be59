// Package session holds the signed-in identity and persists it across
// process restarts, the local-storage analog of a browser client.
package session

import (
	"errors"
	"net/url"

	"github.com/kyraongithub/compliance-gateway/internal/auth"
	"github.com/kyraongithub/compliance-gateway/internal/models"
)

var ErrNotAuthenticated = errors.New("session: not authenticated")

type Session struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// FromCallback extracts the signed token carried by the OAuth callback
// redirect's query parameters. Returns nil when no usable token is present.
func FromCallback(params url.Values) *Session {
	token := params.Get("token")
	if token == "" {
		return nil
	}
	claims, err := auth.DecodeToken(token)
	if err != nil {
		return nil
	}
	return &Session{Token: token, User: claims.User()}
}
