package securelogin

import "github.com/goliatone/go-errors"

const (
	TextCodeEmailExists      = "email_already_exists"
	TextCodeRoleNotFound     = "role_not_found"
	TextCodeUserNotFound     = "user_not_found"
	TextCodeOtpNotFound      = "otp_not_found"
	TextCodeWrongPassword    = "wrong_password"
	TextCodeEmailNotVerified = "email_not_verified"
	TextCodeTokenExpired     = "token_expired"
	TextCodeTokenMalformed   = "token_malformed"
	TextCodeUnauthorized     = "unauthorized"
	TextCodeForbidden        = "missing_permission"
)

// User facing flow messages. The service speaks Uzbek to its clients; the
// strings are part of the API contract and must not drift.
const (
	MsgEmailExists      = "Email allaqachon mavjud"
	MsgRoleNotFound     = "Rol topilmadi"
	MsgOtpSent          = "Tasdiqlash kodi emailga yuborildi"
	MsgUserNotFound     = "Foydalanuvchi topilmadi."
	MsgOtpInvalid       = "OTP noto'g'ri yoki muddati o'tgan"
	MsgOtpVerified      = "Tasdiqlandi"
	MsgWrongPassword    = "Parol noto'g'ri"
	MsgEmailNotVerified = "Email tasdiqlanmagan"
	MsgUnauthorized     = "Avtorizatsiyadan o'tilmagan"
	MsgForbidden        = "Ruxsat yetarli emas"
)

// ErrEmailAlreadyExists is returned when a registration email is taken.
var ErrEmailAlreadyExists = errors.New("email already exists", errors.CategoryValidation).
	WithTextCode(TextCodeEmailExists).
	WithCode(errors.CodeConflict)

// ErrRoleNotFound is returned when the default role is missing.
var ErrRoleNotFound = errors.New("role not found", errors.CategoryNotFound).
	WithTextCode(TextCodeRoleNotFound).
	WithCode(errors.CodeNotFound)

// ErrUserNotFound is returned when no user matches the given identifier.
var ErrUserNotFound = errors.New("user not found", errors.CategoryNotFound).
	WithTextCode(TextCodeUserNotFound).
	WithCode(errors.CodeNotFound)

// ErrOtpNotFound is returned when a code is stale, superseded, or wrong.
var ErrOtpNotFound = errors.New("otp invalid or expired", errors.CategoryNotFound).
	WithTextCode(TextCodeOtpNotFound).
	WithCode(errors.CodeNotFound)

// ErrWrongPassword is returned when the password check fails.
var ErrWrongPassword = errors.New("wrong password", errors.CategoryAuth).
	WithTextCode(TextCodeWrongPassword).
	WithCode(errors.CodeUnauthorized)

// ErrEmailNotVerified is returned when an unverified account tries to log in.
var ErrEmailNotVerified = errors.New("email not verified", errors.CategoryAuth).
	WithTextCode(TextCodeEmailNotVerified).
	WithCode(errors.CodeUnauthorized)

// ErrTokenExpired is returned for tokens past their expiry.
var ErrTokenExpired = errors.New("token expired", errors.CategoryAuth).
	WithTextCode(TextCodeTokenExpired).
	WithCode(errors.CodeUnauthorized)

// ErrTokenMalformed is returned for tokens that fail parsing or signature checks.
var ErrTokenMalformed = errors.New("token malformed", errors.CategoryAuth).
	WithTextCode(TextCodeTokenMalformed).
	WithCode(errors.CodeUnauthorized)

// ErrUnauthorized is returned by the gate when no verified principal resolves.
var ErrUnauthorized = errors.New("authentication required", errors.CategoryAuth).
	WithTextCode(TextCodeUnauthorized).
	WithCode(errors.CodeUnauthorized)

// ErrPermissionDenied is returned by the gate when a required code is missing.
var ErrPermissionDenied = errors.New("permission denied", errors.CategoryAuthz).
	WithTextCode(TextCodeForbidden).
	WithCode(errors.CodeForbidden)
