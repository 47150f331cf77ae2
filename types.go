package securelogin

import (
	"context"
	"fmt"
	"time"

	glog "github.com/goliatone/go-logger/glog"
)

type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Error(format string, args ...any)
}

// Config holds the options the token and OTP services need
type Config interface {
	GetSigningKey() string
	GetTokenExpiration() int
	GetIssuer() string
	GetAudience() []string
	GetOtpLength() int
	GetOtpTTL() time.Duration
}

// TokenIssuer mints access and refresh tokens for a loaded user
type TokenIssuer interface {
	GenerateAccessToken(user *User, sessionToken string) (string, time.Time, error)
	GenerateRefreshToken() (string, error)
}

// TokenValidator parses and verifies a raw token string
type TokenValidator interface {
	Validate(raw string) (AuthClaims, error)
}

// Mailer delivers one-time verification codes. Implementations should be
// cheap to call inline; delivery failures are logged, never fatal.
type Mailer interface {
	SendOtp(ctx context.Context, email, code string) error
}

// PasswordHasher derives and verifies salted password hashes
type PasswordHasher interface {
	GenerateSalt() string
	Encrypt(password, salt string) (string, error)
	Verify(hash, password, salt string) bool
}

// ResolveLogger returns the given logger, or a named go-logger instance
// when none was configured.
func ResolveLogger(name string, logger Logger) Logger {
	if logger != nil {
		return logger
	}
	_, lgr := glog.Resolve(name, nil, nil)
	if lgr != nil {
		return lgr
	}
	return defLogger{}
}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] SECURELOGIN "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] SECURELOGIN "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] SECURELOGIN "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}
