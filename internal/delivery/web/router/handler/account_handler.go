package handler

import (
	"fmt"
	"log/slog"
	"net/http"

	"storefront/internal/delivery/web/middleware"
	"storefront/internal/delivery/web/view"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/validation"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	dashboardPath = "/dashboard/"
	homePath      = "/"

	msgRegistered        = "Registration successful."
	msgRegistrationError = "Unsuccessful registration. Invalid information."
	msgLoggedIn          = "You are now logged in as %s."
)

// AccountHandlerParams holds dependencies for AccountHandler, injected by Fx.
type AccountHandlerParams struct {
	fx.In

	UserUC    usecase.UserUsecase
	SessionUC usecase.SessionUsecase
	Pages     *PageComposer
	Logger    *slog.Logger
}

// AccountHandler serves registration, login, logout and the dashboard.
type AccountHandler struct {
	userUC    usecase.UserUsecase
	sessionUC usecase.SessionUsecase
	pages     *PageComposer
	logger    *slog.Logger
}

// NewAccountHandler is the constructor for AccountHandler
func NewAccountHandler(params AccountHandlerParams) *AccountHandler {
	return &AccountHandler{
		userUC:    params.UserUC,
		sessionUC: params.SessionUC,
		pages:     params.Pages,
		logger:    params.Logger,
	}
}

// RegisterForm renders the empty sign-up form.
func (h *AccountHandler) RegisterForm(c echo.Context) error {
	return h.pages.OK(c, view.PageRegister, "Register", view.RegisterData{Errors: validation.FormErrors{}})
}

// Register creates an account and logs it in.
func (h *AccountHandler) Register(c echo.Context) error {
	ctx := c.Request().Context()

	var form RegisterForm
	formErrors, err := bindForm(c, &form)
	if err != nil {
		return err
	}

	var user *entity.User
	if !formErrors.HasErrors() {
		user, err = h.userUC.Register(ctx, usecase.RegisterInput{
			Username:  form.Username,
			Email:     form.Email,
			Password1: form.Password1,
			Password2: form.Password2,
		})
		if err != nil && !errors.As(err, &formErrors) {
			return err
		}
	}

	if formErrors.HasErrors() {
		session := middleware.CurrentSession(c)
		session.AddFlash(entity.FlashError, msgRegistrationError)

		return h.pages.OK(c, view.PageRegister, "Register", view.RegisterData{
			Values: view.RegisterValues{Username: form.Username, Email: form.Email},
			Errors: formErrors,
		})
	}

	middleware.CurrentSession(c).AddFlash(entity.FlashSuccess, msgRegistered)
	if err := h.login(c, user); err != nil {
		return err
	}

	return c.Redirect(http.StatusFound, dashboardPath)
}

// LoginForm renders the credentials form.
func (h *AccountHandler) LoginForm(c echo.Context) error {
	return h.pages.OK(c, view.PageLogin, "Log in", view.LoginData{
		Next: middleware.SafeNext(c.QueryParam("next"), ""),
	})
}

// Login authenticates the visitor and cycles the session.
func (h *AccountHandler) Login(c echo.Context) error {
	var form LoginForm
	formErrors, err := bindForm(c, &form)
	if err != nil {
		return err
	}

	var user *entity.User
	if !formErrors.HasErrors() {
		user, err = h.userUC.Authenticate(c.Request().Context(), form.Username, form.Password)
		if err != nil && !errors.Is(err, domainerrors.ErrInvalidCredentials) {
			return err
		}
	}

	if user == nil {
		middleware.CurrentSession(c).AddFlash(entity.FlashError, domainerrors.ErrInvalidCredentials.Message())

		return h.pages.OK(c, view.PageLogin, "Log in", view.LoginData{
			Username: form.Username,
			Next:     middleware.SafeNext(form.Next, ""),
		})
	}

	middleware.CurrentSession(c).AddFlash(entity.FlashSuccess, fmt.Sprintf(msgLoggedIn, user.Username))
	if err := h.login(c, user); err != nil {
		return err
	}

	return c.Redirect(http.StatusFound, middleware.SafeNext(form.Next, dashboardPath))
}

// Logout ends the session and starts a new anonymous one.
func (h *AccountHandler) Logout(c echo.Context) error {
	next, err := h.sessionUC.Logout(c.Request().Context(), middleware.CurrentSession(c))
	if err != nil {
		return err
	}
	middleware.ReplaceSession(c, next, nil)

	return c.Redirect(http.StatusFound, homePath)
}

// Dashboard shows the account and its orders.
func (h *AccountHandler) Dashboard(c echo.Context) error {
	user := middleware.CurrentUser(c)

	orders, err := h.userUC.ListOrders(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}

	return h.pages.OK(c, view.PageDashboard, "Dashboard", view.DashboardData{Orders: orders})
}

func (h *AccountHandler) login(c echo.Context, user *entity.User) error {
	next, err := h.sessionUC.Login(c.Request().Context(), middleware.CurrentSession(c), user)
	if err != nil {
		return err
	}
	middleware.ReplaceSession(c, next, user)

	return nil
}
