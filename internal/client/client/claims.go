package client

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophnotes/internal/client/models"
	"github.com/dmitrijs2005/gophnotes/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the payload of access tokens issued by the notes service.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
}

// ParseClaims decodes token without verifying its signature. The client never
// holds the signing key, so the result is a hint about the session, not proof
// of identity. Expiry is checked against now.
func ParseClaims(token string, now time.Time) (*Claims, error) {
	var claims Claims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}
	if claims.ExpiresAt != nil && !now.Before(claims.ExpiresAt.Time) {
		return &claims, common.ErrTokenExpired
	}
	return &claims, nil
}

// User builds the user described by the claims. Missing role defaults to
// models.DefaultRole.
func (c *Claims) User() *models.User {
	u := &models.User{
		ID:    c.Subject,
		Email: c.Email,
		Role:  c.Role,
	}
	if u.Role == "" {
		u.Role = models.DefaultRole
	}
	if c.IssuedAt != nil {
		u.CreatedAt = c.IssuedAt.Time
		u.UpdatedAt = c.IssuedAt.Time
	}
	return u
}
