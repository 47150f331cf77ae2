package securelogin

import (
	"context"
	"testing"

	"github.com/goliatone/go-router"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runGate(t *testing.T, gate *AuthorizationGate, req Requirement, token string) *stubContext {
	t.Helper()

	c := newStubContext()
	if token != "" {
		c.headers[router.HeaderAuthorization] = "Bearer " + token
	}

	handler := gate.Gate(req)(func(ctx router.Context) error {
		return nil
	})
	require.NoError(t, handler(c))

	return c
}

func accessTokenFor(t *testing.T, env *testEnv, user *User) string {
	t.Helper()

	loaded, err := env.repo.Users().GetWithAccess(context.Background(), user.ID)
	require.NoError(t, err)

	raw, _, err := env.tokens.GenerateAccessToken(loaded, "session-token")
	require.NoError(t, err)

	return raw
}

func TestGateAnonymousBypassesEveryCheck(t *testing.T) {
	fx := newAccessFixture(t)
	gate := NewAuthorizationGate(fx.env.tokens, fx.env.repo.Users())

	// no token at all
	c := runGate(t, gate, AllowAnonymous(), "")
	assert.True(t, c.nextCalled)
	assert.Zero(t, c.statusCode)

	// even a garbage token is ignored on anonymous routes
	c = newStubContext()
	c.headers[router.HeaderAuthorization] = "Bearer not-a-token"
	handler := gate.Gate(AllowAnonymous())(func(ctx router.Context) error { return nil })
	require.NoError(t, handler(c))
	assert.True(t, c.nextCalled)
}

func TestGateRejectsMissingToken(t *testing.T) {
	fx := newAccessFixture(t)
	gate := NewAuthorizationGate(fx.env.tokens, fx.env.repo.Users())

	c := runGate(t, gate, RequireAuthenticated(), "")
	assert.False(t, c.nextCalled)
	assert.Equal(t, router.StatusUnauthorized, c.statusCode)
}

func TestGateRejectsInvalidToken(t *testing.T) {
	fx := newAccessFixture(t)
	gate := NewAuthorizationGate(fx.env.tokens, fx.env.repo.Users())

	c := runGate(t, gate, RequireAuthenticated(), "not-a-token")
	assert.False(t, c.nextCalled)
	assert.Equal(t, router.StatusUnauthorized, c.statusCode)
}

func TestGateRejectsUnverifiedUser(t *testing.T) {
	fx := newAccessFixture(t)
	gate := NewAuthorizationGate(fx.env.tokens, fx.env.repo.Users())

	token := accessTokenFor(t, fx.env, fx.member)

	c := runGate(t, gate, RequireAuthenticated(), token)
	assert.False(t, c.nextCalled)
	assert.Equal(t, router.StatusUnauthorized, c.statusCode)
}

func TestGateAllowsVerifiedUser(t *testing.T) {
	fx := newAccessFixture(t)
	gate := NewAuthorizationGate(fx.env.tokens, fx.env.repo.Users())

	token := accessTokenFor(t, fx.env, fx.admin)

	c := runGate(t, gate, RequireAuthenticated(), token)
	assert.True(t, c.nextCalled)

	// the handler downstream can read the principal both ways
	principal, ok := GetRouterPrincipal(c, "")
	require.True(t, ok)
	assert.Equal(t, fx.admin.ID, principal.UserID)

	fromCtx, ok := PrincipalFromContext(c.Context())
	require.True(t, ok)
	assert.Equal(t, principal, fromCtx)
}

func TestGateAuthenticationBeforePermissions(t *testing.T) {
	fx := newAccessFixture(t)
	gate := NewAuthorizationGate(fx.env.tokens, fx.env.repo.Users())

	// unauthenticated request on a permission route gets 401, not 403
	c := runGate(t, gate, RequirePermissions(PermissionDeleteUsers), "")
	assert.Equal(t, router.StatusUnauthorized, c.statusCode)
}

func TestGateRejectsMissingPermission(t *testing.T) {
	fx := newAccessFixture(t)
	gate := NewAuthorizationGate(fx.env.tokens, fx.env.repo.Users())

	viewer := createTestUser(t, fx.env, "Olim Karimov", "olim@example.com", "hunter42", RoleNameUser, true)
	token := accessTokenFor(t, fx.env, viewer)

	c := runGate(t, gate, RequirePermissions(PermissionDeleteUsers), token)
	assert.False(t, c.nextCalled)
	assert.Equal(t, router.StatusForbidden, c.statusCode)

	// holding one of several required codes is still forbidden
	c = runGate(t, gate, RequirePermissions(PermissionViewUsers, PermissionDeleteUsers), token)
	assert.Equal(t, router.StatusForbidden, c.statusCode)
}

func TestGateAllowsGrantedPermission(t *testing.T) {
	fx := newAccessFixture(t)
	gate := NewAuthorizationGate(fx.env.tokens, fx.env.repo.Users())

	token := accessTokenFor(t, fx.env, fx.admin)

	c := runGate(t, gate, RequirePermissions(PermissionViewUsers, PermissionDeleteUsers), token)
	assert.True(t, c.nextCalled)
	assert.Zero(t, c.statusCode)
}
