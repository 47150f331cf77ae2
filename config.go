package securelogin

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// EnvConfig is the environment backed Config implementation
type EnvConfig struct {
	SigningKey      string        `env:"AUTH_SIGNING_KEY,notEmpty"`
	Issuer          string        `env:"AUTH_ISSUER" envDefault:"securelogin"`
	Audience        []string      `env:"AUTH_AUDIENCE" envSeparator:","`
	TokenExpiration int           `env:"AUTH_TOKEN_EXPIRATION" envDefault:"3600"`
	OtpLength       int           `env:"AUTH_OTP_LENGTH" envDefault:"6"`
	OtpTTL          time.Duration `env:"AUTH_OTP_TTL" envDefault:"5m"`
}

// Verify interface compliance
var _ Config = (*EnvConfig)(nil)

// LoadConfig reads configuration from the environment.
func LoadConfig() (*EnvConfig, error) {
	cfg := &EnvConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *EnvConfig) GetSigningKey() string {
	return c.SigningKey
}

func (c *EnvConfig) GetIssuer() string {
	return c.Issuer
}

func (c *EnvConfig) GetAudience() []string {
	return c.Audience
}

// GetTokenExpiration is the access token lifetime in seconds
func (c *EnvConfig) GetTokenExpiration() int {
	return c.TokenExpiration
}

func (c *EnvConfig) GetOtpLength() int {
	return c.OtpLength
}

func (c *EnvConfig) GetOtpTTL() time.Duration {
	return c.OtpTTL
}
