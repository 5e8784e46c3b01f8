package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/jltacademy/backend/core"
	"github.com/jltacademy/backend/core/user"
)

type authApi struct {
	conf *core.Config
	svc  *user.Service
}

func registerAuthAPI(g *echo.Group, jwt, admin echo.MiddlewareFunc, conf *core.Config, svc *user.Service) {
	api := authApi{conf: conf, svc: svc}

	ag := g.Group("/auth")

	// un-authed endpoints
	ag.POST("/login", api.login)

	// authed endpoints
	ag.POST("/logout", api.logout, jwt)
	ag.GET("/profile", api.profile, jwt, admin)
	ag.POST("/change-password", api.changePassword, jwt, admin)
}

// Handlers

func (api *authApi) login(ctx echo.Context) error {
	var data user.Login
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Login")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	usr, err := api.svc.Authenticate(ctx.Request().Context(), data.Username, data.Password)
	if err != nil {
		return err
	}
	token, err := GenerateToken(api.conf, GetUserClaims(api.conf, usr))
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, echo.Map{
		"message": "login successful",
		"token":   token,
		"user":    usr,
	})
}

func (api *authApi) profile(ctx echo.Context) error {
	usr, err := getContextUser(ctx, api.svc)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, echo.Map{"user": usr})
}

func (api *authApi) changePassword(ctx echo.Context) error {
	var data user.ChangePassword
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to ChangePassword")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	usr, err := getContextUser(ctx, api.svc)
	if err != nil {
		return err
	}
	if err = api.svc.ChangePassword(ctx.Request().Context(), usr, data); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, echo.Map{"message": "password changed successfully"})
}

func (api *authApi) logout(ctx echo.Context) error {
	// tokens are stateless; the client discards its copy
	return ctx.JSON(http.StatusOK, echo.Map{"message": "logout successful"})
}
