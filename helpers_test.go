package securelogin

import (
	"context"
	"database/sql"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	_ "github.com/mattn/go-sqlite3"
)

const testSigningKey = "test-signing-key"

func setupTestDB(t *testing.T) *bun.DB {
	t.Helper()

	sqldb, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	sqldb.SetMaxOpenConns(1)

	db := bun.NewDB(sqldb, sqlitedialect.New())

	_, err = db.Exec("PRAGMA foreign_keys = ON;")
	require.NoError(t, err)

	raw, err := migrationsFS.ReadFile("data/sql/migrations/20250115000000_identity_schema.up.sql")
	require.NoError(t, err)

	_, err = db.Exec(string(raw))
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = db.Close()
		_ = sqldb.Close()
	})

	return db
}

type captureMailer struct {
	mu    sync.Mutex
	sends []sentOtp
}

type sentOtp struct {
	email string
	code  string
}

func (m *captureMailer) SendOtp(ctx context.Context, email, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sends = append(m.sends, sentOtp{email: email, code: code})
	return nil
}

func (m *captureMailer) last() (sentOtp, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.sends) == 0 {
		return sentOtp{}, false
	}
	return m.sends[len(m.sends)-1], true
}

type testEnv struct {
	db     *bun.DB
	repo   RepositoryManager
	hasher PasswordHasher
	otp    *OtpService
	tokens TokenService
	perms  *PermissionService
	users  *UserService
	mailer *captureMailer
}

func newTestEnv(t *testing.T, otpOpts ...OtpOption) *testEnv {
	t.Helper()

	db := setupTestDB(t)
	repo := NewRepositoryManager(db)
	repo.MustValidate()

	hasher := NewPasswordHasher()
	otp := NewOtpService(repo.Otps(), otpOpts...)
	tokens := NewTokenService([]byte(testSigningKey), 3600, "securelogin-test", nil, nil)
	perms := NewPermissionService(repo, nil)
	mailer := &captureMailer{}
	users := NewUserService(repo, hasher, otp, tokens, WithMailer(mailer))

	return &testEnv{
		db:     db,
		repo:   repo,
		hasher: hasher,
		otp:    otp,
		tokens: tokens,
		perms:  perms,
		users:  users,
		mailer: mailer,
	}
}

// createTestUser inserts a user with a hashed password and assigns the
// given role by name.
func createTestUser(t *testing.T, env *testEnv, fullName, email, password, roleName string, verified bool) *User {
	t.Helper()

	ctx := context.Background()

	salt := env.hasher.GenerateSalt()
	hash, err := env.hasher.Encrypt(password, salt)
	require.NoError(t, err)

	user := &User{
		FullName:     fullName,
		Email:        email,
		PasswordHash: hash,
		Salt:         salt,
		IsVerified:   verified,
	}

	_, err = env.repo.Users().Create(ctx, user)
	require.NoError(t, err)
	require.NotZero(t, user.ID)

	role, err := env.repo.Roles().GetByName(ctx, roleName)
	require.NoError(t, err)

	require.NoError(t, env.repo.Users().AssignRole(ctx, user.ID, role.ID))

	return user
}

// seedAccess reconciles the catalog and default grants so role lookups
// have permissions behind them.
func seedAccess(t *testing.T, env *testEnv) {
	t.Helper()
	require.NoError(t, EnsureDefaultGrants(context.Background(), env.repo, env.perms))
}

// claimsForUser mints and re-validates a token so tests exercise the same
// claims path the gate sees.
func claimsForUser(t *testing.T, env *testEnv, user *User) AuthClaims {
	t.Helper()

	loaded, err := env.repo.Users().GetWithAccess(context.Background(), user.ID)
	require.NoError(t, err)

	raw, _, err := env.tokens.GenerateAccessToken(loaded, "session-token")
	require.NoError(t, err)

	claims, err := env.tokens.Validate(raw)
	require.NoError(t, err)

	return claims
}
