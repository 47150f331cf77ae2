package securelogin

import (
	"context"
	"time"

	"github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// RegisterUserModel carries a registration request
type RegisterUserModel struct {
	FullName    string `json:"fullname"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	IsAdminSite bool   `json:"is_admin_site"`
}

// LoginUserModel carries a login request
type LoginUserModel struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// OtpVerificationModel carries a code confirmation request
type OtpVerificationModel struct {
	Email string `json:"email"`
	Otp   string `json:"otp"`
}

// LoginResponse is the payload a successful login returns
type LoginResponse struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
	FullName     string    `json:"fullname"`
	Email        string    `json:"email"`
	Roles        []string  `json:"roles"`
}

// UserAuthResponse describes the authenticated principal for /me
type UserAuthResponse struct {
	ID          int64    `json:"id"`
	FullName    string   `json:"fullname"`
	Email       string   `json:"email"`
	Roles       []string `json:"roles"`
	Permissions []string `json:"permissions"`
}

// UserService implements the registration, verification, and login flows.
// Expected failures come back inside the Result; the error return is
// reserved for infrastructure faults.
type UserService struct {
	repo   RepositoryManager
	hasher PasswordHasher
	otp    *OtpService
	tokens TokenIssuer
	mailer Mailer
	logger Logger
}

// UserServiceOption configures a UserService
type UserServiceOption func(*UserService)

func WithUserServiceLogger(logger Logger) UserServiceOption {
	return func(s *UserService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithMailer(mailer Mailer) UserServiceOption {
	return func(s *UserService) {
		if mailer != nil {
			s.mailer = mailer
		}
	}
}

func NewUserService(repo RepositoryManager, hasher PasswordHasher, otp *OtpService, tokens TokenIssuer, opts ...UserServiceOption) *UserService {
	svc := &UserService{
		repo:   repo,
		hasher: hasher,
		otp:    otp,
		tokens: tokens,
		logger: ResolveLogger("users", nil),
	}
	for _, opt := range opts {
		opt(svc)
	}
	if svc.mailer == nil {
		svc.mailer = NewLogMailer(svc.logger)
	}
	return svc
}

// Register creates an unverified account with a default role, issues a
// verification code, and emails it. The user row, role link, and nothing
// else commit atomically; the code is issued after the commit so a failed
// registration never leaves codes behind.
func (s *UserService) Register(ctx context.Context, model RegisterUserModel) (Result[string], error) {
	roleName := RoleNameUser
	if model.IsAdminSite {
		roleName = RoleNameAdmin
	}

	var user *User

	err := s.repo.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		exists, err := s.repo.Users().EmailExistsTx(ctx, tx, model.Email)
		if err != nil {
			return err
		}
		if exists {
			return ErrEmailAlreadyExists
		}

		role, err := s.repo.Roles().GetByNameTx(ctx, tx, roleName)
		if err != nil {
			return err
		}

		salt := s.hasher.GenerateSalt()
		hash, err := s.hasher.Encrypt(model.Password, salt)
		if err != nil {
			return errors.Wrap(err, errors.CategoryInternal, "failed to hash password")
		}

		record := &User{
			FullName:     model.FullName,
			Email:        model.Email,
			PasswordHash: hash,
			Salt:         salt,
			IsVerified:   false,
		}

		if _, err := s.repo.Users().CreateTx(ctx, tx, record); err != nil {
			return err
		}

		if err := s.repo.Users().AssignRoleTx(ctx, tx, record.ID, role.ID); err != nil {
			return err
		}

		user = record
		return nil
	})

	if err != nil {
		switch errorTextCode(err) {
		case TextCodeEmailExists:
			return Failure[string](MsgEmailExists), nil
		case TextCodeRoleNotFound:
			return Failure[string](MsgRoleNotFound), nil
		}
		return Failure[string]("registration failed"), err
	}

	code, err := s.otp.GenerateAndSaveOtp(ctx, user.ID)
	if err != nil {
		return Failure[string]("registration failed"), err
	}

	if err := s.mailer.SendOtp(ctx, user.Email, code); err != nil {
		s.logger.Error("otp delivery failed", "email", user.Email, "error", err)
	}

	return Success(MsgOtpSent, MsgOtpSent), nil
}

// VerifyOtp confirms the latest code issued to the account behind the
// email and flips the account to verified. The code is consumed in the
// same transaction, so a code verifies exactly once: replaying it fails
// even inside its expiry window.
func (s *UserService) VerifyOtp(ctx context.Context, model OtpVerificationModel) (Result[string], error) {
	user, err := s.repo.Users().GetByEmail(ctx, model.Email)
	if err != nil {
		if errors.IsNotFound(err) {
			return Failure[string](MsgUserNotFound), nil
		}
		return Failure[string]("verification failed"), err
	}

	otpRecord, err := s.otp.GetLatestOtp(ctx, user.ID, model.Otp)
	if err != nil {
		if errors.IsNotFound(err) {
			return Failure[string](MsgOtpInvalid), nil
		}
		return Failure[string]("verification failed"), err
	}

	err = s.repo.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if err := s.repo.Otps().MarkUsedTx(ctx, tx, otpRecord.ID); err != nil {
			return err
		}
		return s.repo.Users().MarkVerifiedTx(ctx, tx, user.ID)
	})
	if err != nil {
		return Failure[string]("verification failed"), err
	}

	return Success(MsgOtpVerified, MsgOtpVerified), nil
}

// Login checks credentials and verification state, then mints an access
// token with the user's roles plus an opaque refresh token.
func (s *UserService) Login(ctx context.Context, model LoginUserModel) (Result[LoginResponse], error) {
	user, err := s.repo.Users().GetByEmail(ctx, model.Email)
	if err != nil {
		if errors.IsNotFound(err) {
			return Failure[LoginResponse](MsgUserNotFound), nil
		}
		return Failure[LoginResponse]("login failed"), err
	}

	if !s.hasher.Verify(user.PasswordHash, model.Password, user.Salt) {
		return Failure[LoginResponse](MsgWrongPassword), nil
	}

	if !user.IsVerified {
		return Failure[LoginResponse](MsgEmailNotVerified), nil
	}

	sessionToken := uuid.NewString()

	access, expiresAt, err := s.tokens.GenerateAccessToken(user, sessionToken)
	if err != nil {
		return Failure[LoginResponse]("login failed"), err
	}

	refresh, err := s.tokens.GenerateRefreshToken()
	if err != nil {
		return Failure[LoginResponse]("login failed"), err
	}

	return Success(LoginResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresAt:    expiresAt,
		FullName:     user.FullName,
		Email:        user.Email,
		Roles:        user.RoleNames(),
	}), nil
}

// GetUserAuth describes the principal the gate resolved for this request.
func (s *UserService) GetUserAuth(ctx context.Context) Result[UserAuthResponse] {
	principal, ok := PrincipalFromContext(ctx)
	if !ok || principal == nil {
		return Failure[UserAuthResponse](MsgUserNotFound)
	}

	return Success(UserAuthResponse{
		ID:          principal.UserID,
		FullName:    principal.FullName,
		Email:       principal.Email,
		Roles:       principal.Roles,
		Permissions: principal.Permissions,
	})
}

// errorTextCode extracts the text code of a rich error, if any.
func errorTextCode(err error) string {
	var rich *errors.Error
	if errors.As(err, &rich) {
		return rich.TextCode
	}
	return ""
}
