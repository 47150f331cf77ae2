package securelogin

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AuthClaims is the decoded identity a validated token carries
type AuthClaims interface {
	Subject() string
	UserID() int64
	Email() string
	SessionToken() string
	Roles() []string
	HasRole(role string) bool
	Expires() time.Time
	IssuedAt() time.Time
}

// JWTClaims is the concrete implementation of AuthClaims
type JWTClaims struct {
	jwt.RegisteredClaims
	UID       string   `json:"uid,omitempty"`
	UserEmail string   `json:"email,omitempty"`
	Session   string   `json:"token,omitempty"`
	UserRoles []string `json:"roles,omitempty"`
}

// Verify interface compliance
var _ AuthClaims = (*JWTClaims)(nil)

// Subject returns the subject claim
func (c *JWTClaims) Subject() string {
	return c.RegisteredClaims.Subject
}

// UserID returns the numeric user id, or 0 when the claim is absent or
// not numeric.
func (c *JWTClaims) UserID() int64 {
	raw := c.UID
	if raw == "" {
		raw = c.Subject()
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0
	}
	return id
}

// Email returns the email claim
func (c *JWTClaims) Email() string {
	return c.UserEmail
}

// SessionToken returns the per-login opaque session identifier
func (c *JWTClaims) SessionToken() string {
	return c.Session
}

// Roles returns the role names minted into the token
func (c *JWTClaims) Roles() []string {
	return c.UserRoles
}

// HasRole checks whether the token carries the given role name
func (c *JWTClaims) HasRole(role string) bool {
	for _, r := range c.UserRoles {
		if r == role {
			return true
		}
	}
	return false
}

// Expires returns the expiration time
func (c *JWTClaims) Expires() time.Time {
	if c.RegisteredClaims.ExpiresAt != nil {
		return c.RegisteredClaims.ExpiresAt.Time
	}
	return time.Time{}
}

// IssuedAt returns the issued-at time
func (c *JWTClaims) IssuedAt() time.Time {
	if c.RegisteredClaims.IssuedAt != nil {
		return c.RegisteredClaims.IssuedAt.Time
	}
	return time.Time{}
}

// FormatUserID renders a numeric user id the way token claims carry it.
func FormatUserID(id int64) string {
	return strconv.FormatInt(id, 10)
}
