package auth

import (
	"github.com/golang-jwt/jwt/v5"

	"github.com/kyraongithub/compliance-gateway/internal/models"
)

// Claims is the payload of the bearer token issued by the backend after the
// OAuth dance. The token is decoded locally without signature verification,
// the same trust model a browser client has: the payload drives display and
// role gating, while every request still carries the raw token for the
// backend to verify.
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// DecodeToken extracts the claims from a compact JWT without verifying its
// signature.
func DecodeToken(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenStr, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

func (c *Claims) User() models.User {
	return models.User{
		ID:    c.Subject,
		Email: c.Email,
		Role:  c.Role,
	}
}
