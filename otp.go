package securelogin

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/goliatone/go-errors"
)

const (
	defaultOtpLength = 6
	defaultOtpTTL    = 5 * time.Minute
)

// OtpService issues and checks one-time verification codes. Codes are
// append-only rows; issuing a new code supersedes every earlier one for
// that user, and validity is judged against the latest row only.
type OtpService struct {
	otps       Otps
	codeLength int
	ttl        time.Duration
	now        func() time.Time
	logger     Logger
}

// OtpOption configures an OtpService
type OtpOption func(*OtpService)

func WithOtpLength(length int) OtpOption {
	return func(s *OtpService) {
		if length > 0 {
			s.codeLength = length
		}
	}
}

func WithOtpTTL(ttl time.Duration) OtpOption {
	return func(s *OtpService) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

func WithOtpClock(now func() time.Time) OtpOption {
	return func(s *OtpService) {
		if now != nil {
			s.now = now
		}
	}
}

func WithOtpLogger(logger Logger) OtpOption {
	return func(s *OtpService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func NewOtpService(otps Otps, opts ...OtpOption) *OtpService {
	svc := &OtpService{
		otps:       otps,
		codeLength: defaultOtpLength,
		ttl:        defaultOtpTTL,
		now:        time.Now,
		logger:     defLogger{},
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// GenerateAndSaveOtp mints a fresh numeric code for the user, persists it,
// and returns the plain code for delivery.
func (s *OtpService) GenerateAndSaveOtp(ctx context.Context, userID int64) (string, error) {
	code, err := randomNumericCode(s.codeLength)
	if err != nil {
		return "", errors.Wrap(err, errors.CategoryInternal, "failed to generate otp")
	}

	record := &UserOtp{
		UserID:    userID,
		Code:      code,
		CreatedAt: s.now(),
	}

	if _, err := s.otps.Create(ctx, record); err != nil {
		return "", err
	}

	s.logger.Debug("otp issued", "user_id", userID)

	return code, nil
}

// GetLatestOtp returns the user's latest code row when the supplied code
// matches it, has not been consumed, and has not expired. Superseded,
// mismatched, used, and stale codes all fail with ErrOtpNotFound.
func (s *OtpService) GetLatestOtp(ctx context.Context, userID int64, code string) (*UserOtp, error) {
	record, err := s.otps.LatestByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if record.Code != code {
		return nil, ErrOtpNotFound.Clone().WithMetadata(map[string]any{"user_id": userID})
	}

	if record.Used {
		return nil, ErrOtpNotFound.Clone().WithMetadata(map[string]any{
			"user_id": userID,
			"reason":  "used",
		})
	}

	if s.now().Sub(record.CreatedAt) > s.ttl {
		return nil, ErrOtpNotFound.Clone().WithMetadata(map[string]any{
			"user_id": userID,
			"reason":  "expired",
		})
	}

	return record, nil
}

// randomNumericCode produces a zero-padded decimal string of the given
// length using crypto/rand.
func randomNumericCode(length int) (string, error) {
	max := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(length)), nil)
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", length, n), nil
}
