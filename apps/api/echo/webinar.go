package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/jltacademy/backend/core/webinar"
)

type webinarApi struct {
	svc *webinar.Service
}

func registerWebinarAPI(g *echo.Group, jwt, admin echo.MiddlewareFunc, svc *webinar.Service) {
	api := webinarApi{svc: svc}

	wg := g.Group("/webinars")

	// public endpoints
	wg.GET("", api.list)
	wg.GET("/status/:status", api.listByStatus)
	wg.GET("/:id", api.retrieve)

	// admin endpoints
	wg.POST("", api.create, jwt, admin)
	wg.POST("/reorder", api.reorder, jwt, admin)
	wg.PUT("/:id", api.update, jwt, admin)
	wg.DELETE("/:id", api.destroy, jwt, admin)
}

// Handlers

func (api *webinarApi) list(ctx echo.Context) error {
	webinars, err := api.svc.List(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "listing webinars")
	}
	return ctx.JSON(http.StatusOK, echo.Map{"webinars": webinars})
}

func (api *webinarApi) listByStatus(ctx echo.Context) error {
	webinars, err := api.svc.ListByStatus(ctx.Request().Context(), ctx.Param("status"))
	if err != nil {
		return errors.Wrap(err, "listing webinars by status")
	}
	return ctx.JSON(http.StatusOK, echo.Map{"webinars": webinars})
}

func (api *webinarApi) retrieve(ctx echo.Context) error {
	id, err := pathID(ctx, webinar.ErrNotFound)
	if err != nil {
		return err
	}
	web, err := api.svc.Get(ctx.Request().Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, echo.Map{"webinar": web})
}

func (api *webinarApi) create(ctx echo.Context) error {
	var data webinar.NewWebinar
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewWebinar")
	}

	web, err := api.svc.Create(ctx.Request().Context(), data, formFile(ctx, "image"), formFile(ctx, "video"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, echo.Map{"message": "webinar created successfully", "webinar": web})
}

func (api *webinarApi) update(ctx echo.Context) error {
	id, err := pathID(ctx, webinar.ErrNotFound)
	if err != nil {
		return err
	}

	var data webinar.UpdateWebinar
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateWebinar")
	}

	web, err := api.svc.Update(ctx.Request().Context(), id, data, formFile(ctx, "image"), formFile(ctx, "video"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, echo.Map{"message": "webinar updated successfully", "webinar": web})
}

func (api *webinarApi) destroy(ctx echo.Context) error {
	id, err := pathID(ctx, webinar.ErrNotFound)
	if err != nil {
		return err
	}
	if err = api.svc.Delete(ctx.Request().Context(), id); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, echo.Map{"message": "webinar deleted successfully"})
}

func (api *webinarApi) reorder(ctx echo.Context) error {
	var data struct {
		WebinarOrders []webinar.SortUpdate `json:"webinarOrders"`
	}
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to webinarOrders")
	}

	if err := api.svc.Reorder(ctx.Request().Context(), data.WebinarOrders); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, echo.Map{"message": "webinars reordered successfully"})
}
