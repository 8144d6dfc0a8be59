package handler

import (
	"net/http"
	"strings"
)

// AuthHandler starts the OAuth dance. The provider redirects back with a
// signed token in a query parameter; decoding and persisting that token is
// client-side concern (see internal/session).
type AuthHandler struct {
	backendURL string
}

func NewAuthHandler(backendURL string) *AuthHandler {
	return &AuthHandler{backendURL: strings.TrimRight(backendURL, "/")}
}

// GoogleLogin hands the browser off to the backend's Google OAuth endpoint.
func (h *AuthHandler) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, h.backendURL+"/auth/google", http.StatusFound)
}
