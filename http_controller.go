package securelogin

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/goliatone/go-router"
)

// UserControllerRoutes holds the route paths the controller mounts
type UserControllerRoutes struct {
	Register           string
	Login              string
	VerifyOtp          string
	Me                 string
	Permissions        string
	PermissionsGrouped string
}

// UserController exposes the identity flows over HTTP
type UserController struct {
	Logger      Logger
	Users       *UserService
	Permissions *PermissionService
	Gate        *AuthorizationGate
	Routes      *UserControllerRoutes
}

// UserControllerOption configures a UserController
type UserControllerOption func(*UserController) *UserController

func WithControllerLogger(logger Logger) UserControllerOption {
	return func(c *UserController) *UserController {
		if logger != nil {
			c.Logger = logger
		}
		return c
	}
}

func WithControllerRoutes(routes *UserControllerRoutes) UserControllerOption {
	return func(c *UserController) *UserController {
		if routes != nil {
			c.Routes = routes
		}
		return c
	}
}

func NewUserController(users *UserService, permissions *PermissionService, gate *AuthorizationGate, opts ...UserControllerOption) *UserController {
	c := &UserController{
		Logger:      ResolveLogger("http", nil),
		Users:       users,
		Permissions: permissions,
		Gate:        gate,
		Routes: &UserControllerRoutes{
			Register:           "/register",
			Login:              "/login",
			VerifyOtp:          "/verify-otp",
			Me:                 "/me",
			Permissions:        "/permissions",
			PermissionsGrouped: "/permissions/all-grouped",
		},
	}

	for _, opt := range opts {
		c = opt(c)
	}

	if c.Users == nil {
		panic("Missing UserService in user controller...")
	}

	if c.Gate == nil {
		panic("Missing AuthorizationGate in user controller...")
	}

	return c
}

// RegisterUserRoutes mounts every route on the given router. Open routes
// carry an anonymous requirement so the gate order stays explicit per
// route rather than implied by middleware absence.
func RegisterUserRoutes[T any](app router.Router[T], controller *UserController) {
	gate := controller.Gate

	app.
		Post(controller.Routes.Register,
			controller.RegisterPost,
			gate.Gate(AllowAnonymous()),
		).
		SetName("register.post")

	app.
		Post(controller.Routes.Login,
			controller.LoginPost,
			gate.Gate(AllowAnonymous()),
		).
		SetName("login.post")

	app.
		Post(controller.Routes.VerifyOtp,
			controller.VerifyOtpPost,
			gate.Gate(AllowAnonymous()),
		).
		SetName("verify-otp.post")

	app.
		Get(controller.Routes.Me,
			controller.MeGet,
			gate.Gate(RequireAuthenticated()),
		).
		SetName("me.get")

	app.
		Get(controller.Routes.Permissions,
			controller.PermissionsGet,
			gate.Gate(AllowAnonymous()),
		).
		SetName("permissions.get")

	app.
		Get(controller.Routes.PermissionsGrouped,
			controller.PermissionsGroupedGet,
			gate.Gate(RequirePermissions(PermissionViewPermissions)),
		).
		SetName("permissions-grouped.get")
}

// RegisterRequest is the registration payload
type RegisterRequest struct {
	FullName    string `json:"fullname" form:"fullname"`
	Email       string `json:"email" form:"email"`
	Password    string `json:"password" form:"password"`
	IsAdminSite bool   `json:"is_admin_site" form:"is_admin_site"`
}

// Validate will validate the payload
func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(
			&r.FullName,
			validation.Required,
			validation.Length(1, 255),
		),
		validation.Field(
			&r.Email,
			validation.Required,
			is.Email,
		),
		validation.Field(
			&r.Password,
			validation.Required,
			validation.Length(6, 72),
		),
	)
}

func (a *UserController) RegisterPost(ctx router.Context) error {
	payload := new(RegisterRequest)

	if err := ctx.Bind(payload); err != nil {
		a.Logger.Error("register parse payload", "error", err)
		return ctx.JSON(router.StatusBadRequest, Failure[any]("failed to parse payload", err.Error()))
	}

	if err := payload.Validate(); err != nil {
		return ctx.JSON(router.StatusBadRequest, Failure[any]("validation failed", err.Error()))
	}

	result, err := a.Users.Register(ctx.Context(), RegisterUserModel{
		FullName:    payload.FullName,
		Email:       payload.Email,
		Password:    payload.Password,
		IsAdminSite: payload.IsAdminSite,
	})
	if err != nil {
		a.Logger.Error("register flow fault", "error", err)
		return ctx.JSON(router.StatusInternalServerError, Failure[any]("internal error"))
	}

	if !result.Succeeded {
		return ctx.JSON(router.StatusBadRequest, result)
	}

	return ctx.JSON(router.StatusOK, result)
}

// LoginRequest is the login payload
type LoginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// Validate will validate the payload
func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(
			&r.Email,
			validation.Required,
			is.Email,
		),
		validation.Field(
			&r.Password,
			validation.Required,
		),
	)
}

func (a *UserController) LoginPost(ctx router.Context) error {
	payload := new(LoginRequest)

	if err := ctx.Bind(payload); err != nil {
		a.Logger.Error("login parse payload", "error", err)
		return ctx.JSON(router.StatusBadRequest, Failure[any]("failed to parse payload", err.Error()))
	}

	if err := payload.Validate(); err != nil {
		return ctx.JSON(router.StatusBadRequest, Failure[any]("validation failed", err.Error()))
	}

	result, err := a.Users.Login(ctx.Context(), LoginUserModel{
		Email:    payload.Email,
		Password: payload.Password,
	})
	if err != nil {
		a.Logger.Error("login flow fault", "error", err)
		return ctx.JSON(router.StatusInternalServerError, Failure[any]("internal error"))
	}

	if !result.Succeeded {
		return ctx.JSON(router.StatusBadRequest, result)
	}

	return ctx.JSON(router.StatusOK, result)
}

// VerifyOtpRequest is the code confirmation payload
type VerifyOtpRequest struct {
	Email string `json:"email" form:"email"`
	Otp   string `json:"otp" form:"otp"`
}

// Validate will validate the payload
func (r VerifyOtpRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(
			&r.Email,
			validation.Required,
			is.Email,
		),
		validation.Field(
			&r.Otp,
			validation.Required,
			is.Digit,
		),
	)
}

func (a *UserController) VerifyOtpPost(ctx router.Context) error {
	payload := new(VerifyOtpRequest)

	if err := ctx.Bind(payload); err != nil {
		a.Logger.Error("verify-otp parse payload", "error", err)
		return ctx.JSON(router.StatusBadRequest, Failure[any]("failed to parse payload", err.Error()))
	}

	if err := payload.Validate(); err != nil {
		return ctx.JSON(router.StatusBadRequest, Failure[any]("validation failed", err.Error()))
	}

	result, err := a.Users.VerifyOtp(ctx.Context(), OtpVerificationModel{
		Email: payload.Email,
		Otp:   payload.Otp,
	})
	if err != nil {
		a.Logger.Error("verify-otp flow fault", "error", err)
		return ctx.JSON(router.StatusInternalServerError, Failure[any]("internal error"))
	}

	if !result.Succeeded {
		return ctx.JSON(router.StatusBadRequest, result)
	}

	return ctx.JSON(router.StatusOK, result)
}

func (a *UserController) MeGet(ctx router.Context) error {
	result := a.Users.GetUserAuth(ctx.Context())
	if !result.Succeeded {
		return ctx.JSON(router.StatusBadRequest, result)
	}
	return ctx.JSON(router.StatusOK, result)
}

func (a *UserController) PermissionsGet(ctx router.Context) error {
	return ctx.JSON(router.StatusOK, a.Permissions.GetPermissions())
}

func (a *UserController) PermissionsGroupedGet(ctx router.Context) error {
	result, err := a.Permissions.GetPermissionsFromDb(ctx.Context())
	if err != nil {
		a.Logger.Error("permissions listing fault", "error", err)
		return ctx.JSON(router.StatusInternalServerError, Failure[any]("internal error"))
	}
	return ctx.JSON(router.StatusOK, result)
}
