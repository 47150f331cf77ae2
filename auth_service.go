package securelogin

import (
	"context"

	"github.com/goliatone/go-errors"
)

// Principal is the resolved identity of a request: the stored user plus
// the flattened role and permission sets.
type Principal struct {
	UserID      int64    `json:"user_id"`
	FullName    string   `json:"fullname"`
	Email       string   `json:"email"`
	IsVerified  bool     `json:"is_verified"`
	Roles       []string `json:"roles"`
	Permissions []string `json:"permissions"`
}

// AuthService resolves the claims of a single request into a Principal.
// Resolution happens at most once per instance; every accessor reuses the
// memoized lookup.
type AuthService struct {
	claims    AuthClaims
	users     Users
	logger    Logger
	resolved  bool
	principal *Principal
}

// NewAuthService builds a resolver for one request. claims may be nil
// when no token was presented.
func NewAuthService(claims AuthClaims, users Users, logger ...Logger) *AuthService {
	var lgr Logger
	if len(logger) > 0 {
		lgr = logger[0]
	}
	return &AuthService{
		claims: claims,
		users:  users,
		logger: ResolveLogger("auth", lgr),
	}
}

// resolve performs the single user lookup backing every accessor. A
// missing or non-numeric claim and an unknown user both resolve to no
// principal without error; only infrastructure faults propagate.
func (s *AuthService) resolve(ctx context.Context) (*Principal, error) {
	if s.resolved {
		return s.principal, nil
	}
	s.resolved = true

	if s.claims == nil {
		return nil, nil
	}

	id := s.claims.UserID()
	if id == 0 {
		return nil, nil
	}

	user, err := s.users.GetWithAccess(ctx, id)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	s.principal = &Principal{
		UserID:      user.ID,
		FullName:    user.FullName,
		Email:       user.Email,
		IsVerified:  user.IsVerified,
		Roles:       user.RoleNames(),
		Permissions: user.PermissionNames(),
	}

	return s.principal, nil
}

// GetUserID returns the numeric id carried by the claims, or 0 when no
// identity was presented. It never consults storage.
func (s *AuthService) GetUserID() int64 {
	if s.claims == nil {
		return 0
	}
	return s.claims.UserID()
}

// IsAuthenticated reports whether the request carries an identity that
// maps to a stored, verified user.
func (s *AuthService) IsAuthenticated(ctx context.Context) (bool, error) {
	principal, err := s.resolve(ctx)
	if err != nil {
		return false, err
	}
	return principal != nil && principal.IsVerified, nil
}

// User returns the resolved principal, or nil when the request is not
// authenticated.
func (s *AuthService) User(ctx context.Context) (*Principal, error) {
	ok, err := s.IsAuthenticated(ctx)
	if err != nil || !ok {
		return nil, err
	}
	return s.principal, nil
}

// Permissions returns the distinct permission union across the user's
// roles, or an empty set when the request is not authenticated.
func (s *AuthService) Permissions(ctx context.Context) ([]string, error) {
	ok, err := s.IsAuthenticated(ctx)
	if err != nil || !ok {
		return []string{}, err
	}
	return s.principal.Permissions, nil
}

// HasPermission reports whether the granted permission set contains every
// one of the given codes. An empty code set is vacuously satisfied, even
// for unauthenticated requests; the gate checks authentication separately.
func (s *AuthService) HasPermission(ctx context.Context, codes ...PermissionCode) (bool, error) {
	if len(codes) == 0 {
		return true, nil
	}

	granted, err := s.Permissions(ctx)
	if err != nil {
		return false, err
	}

	set := make(map[string]bool, len(granted))
	for _, g := range granted {
		set[g] = true
	}

	for _, code := range codes {
		if !set[code] {
			return false, nil
		}
	}

	return true, nil
}
