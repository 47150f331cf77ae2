package securelogin

import (
	"strings"

	"github.com/goliatone/go-router"
)

// PrincipalLocalsKey is where the gate stores the resolved principal on
// the router context.
const PrincipalLocalsKey = "principal"

const authScheme = "Bearer"

// Requirement declares what a route demands before its handler runs.
// The zero value requires an authenticated principal and nothing else.
type Requirement struct {
	anonymous bool
	codes     []PermissionCode
}

// AllowAnonymous marks a route as open: the gate skips every check.
func AllowAnonymous() Requirement {
	return Requirement{anonymous: true}
}

// RequireAuthenticated demands a verified principal but no permissions.
func RequireAuthenticated() Requirement {
	return Requirement{}
}

// RequirePermissions demands a verified principal holding every given code.
func RequirePermissions(codes ...PermissionCode) Requirement {
	return Requirement{codes: codes}
}

// AuthorizationGate wraps routes with authentication and permission
// checks. The order is fixed: anonymous bypass, then authentication,
// then permissions.
type AuthorizationGate struct {
	validator TokenValidator
	users     Users
	logger    Logger
}

func NewAuthorizationGate(validator TokenValidator, users Users, logger ...Logger) *AuthorizationGate {
	var lgr Logger
	if len(logger) > 0 {
		lgr = logger[0]
	}
	return &AuthorizationGate{
		validator: validator,
		users:     users,
		logger:    ResolveLogger("gate", lgr),
	}
}

// Gate returns the middleware enforcing the given requirement. On success
// the resolved principal is stored both in router locals and the standard
// request context.
func (g *AuthorizationGate) Gate(req Requirement) router.MiddlewareFunc {
	return func(hf router.HandlerFunc) router.HandlerFunc {
		return func(c router.Context) error {
			if req.anonymous {
				return c.Next()
			}

			svc, err := g.Resolve(c)
			if err != nil {
				return c.JSON(router.StatusInternalServerError, Failure[any]("internal error"))
			}

			authenticated, err := svc.IsAuthenticated(c.Context())
			if err != nil {
				return c.JSON(router.StatusInternalServerError, Failure[any]("internal error"))
			}
			if !authenticated {
				return c.JSON(router.StatusUnauthorized, Failure[any](MsgUnauthorized))
			}

			if len(req.codes) > 0 {
				allowed, err := svc.HasPermission(c.Context(), req.codes...)
				if err != nil {
					return c.JSON(router.StatusInternalServerError, Failure[any]("internal error"))
				}
				if !allowed {
					return c.JSON(router.StatusForbidden, Failure[any](MsgForbidden))
				}
			}

			principal, err := svc.User(c.Context())
			if err != nil {
				return c.JSON(router.StatusInternalServerError, Failure[any]("internal error"))
			}

			c.Locals(PrincipalLocalsKey, principal)
			c.SetContext(WithPrincipal(c.Context(), principal))

			return c.Next()
		}
	}
}

// Resolve builds the per-request AuthService from whatever token the
// request carries. A missing or invalid token yields a resolver with no
// claims, which every check treats as unauthenticated.
func (g *AuthorizationGate) Resolve(c router.Context) (*AuthService, error) {
	raw := tokenFromHeader(c)
	if raw == "" {
		return NewAuthService(nil, g.users, g.logger), nil
	}

	claims, err := g.validator.Validate(raw)
	if err != nil {
		g.logger.Debug("gate rejected token", "error", err)
		return NewAuthService(nil, g.users, g.logger), nil
	}

	c.SetContext(WithClaimsContext(c.Context(), claims))

	return NewAuthService(claims, g.users, g.logger), nil
}

// tokenFromHeader extracts the bearer token from the Authorization header,
// or returns an empty string.
func tokenFromHeader(c router.Context) string {
	a := c.GetString(router.HeaderAuthorization, "")
	l := len(authScheme)
	if len(a) > l+1 && strings.EqualFold(a[:l], authScheme) {
		return strings.TrimSpace(a[l:])
	}
	return ""
}
