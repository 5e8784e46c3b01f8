package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/jltacademy/backend/core/slider"
)

type sliderApi struct {
	svc *slider.Service
}

func registerSliderAPI(g *echo.Group, jwt, admin echo.MiddlewareFunc, svc *slider.Service) {
	api := sliderApi{svc: svc}

	sg := g.Group("/slider")

	// public endpoints
	sg.GET("", api.list)
	sg.GET("/type/:content_type", api.listByContentType)
	sg.GET("/:id", api.retrieve)

	// admin endpoints
	sg.POST("", api.create, jwt, admin)
	sg.POST("/reorder", api.reorder, jwt, admin)
	sg.PUT("/:id", api.update, jwt, admin)
	sg.DELETE("/:id", api.destroy, jwt, admin)
}

// Handlers

func (api *sliderApi) list(ctx echo.Context) error {
	items, err := api.svc.List(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "listing slider items")
	}
	return ctx.JSON(http.StatusOK, echo.Map{"sliderItems": items})
}

func (api *sliderApi) listByContentType(ctx echo.Context) error {
	items, err := api.svc.ListByContentType(ctx.Request().Context(), ctx.Param("content_type"))
	if err != nil {
		return errors.Wrap(err, "listing slider items by content type")
	}
	return ctx.JSON(http.StatusOK, echo.Map{"sliderItems": items})
}

func (api *sliderApi) retrieve(ctx echo.Context) error {
	id, err := pathID(ctx, slider.ErrNotFound)
	if err != nil {
		return err
	}
	item, err := api.svc.Get(ctx.Request().Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, echo.Map{"sliderItem": item})
}

func (api *sliderApi) create(ctx echo.Context) error {
	var data slider.NewItem
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewItem")
	}

	item, err := api.svc.Create(ctx.Request().Context(), data, formFile(ctx, "file"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, echo.Map{"message": "slider item created successfully", "sliderItem": item})
}

func (api *sliderApi) update(ctx echo.Context) error {
	id, err := pathID(ctx, slider.ErrNotFound)
	if err != nil {
		return err
	}

	var data slider.UpdateItem
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateItem")
	}

	item, err := api.svc.Update(ctx.Request().Context(), id, data, formFile(ctx, "file"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, echo.Map{"message": "slider item updated successfully", "sliderItem": item})
}

func (api *sliderApi) destroy(ctx echo.Context) error {
	id, err := pathID(ctx, slider.ErrNotFound)
	if err != nil {
		return err
	}
	if err = api.svc.Delete(ctx.Request().Context(), id); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, echo.Map{"message": "slider item deleted successfully"})
}

func (api *sliderApi) reorder(ctx echo.Context) error {
	var data struct {
		SliderOrders []slider.SortUpdate `json:"sliderOrders"`
	}
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to sliderOrders")
	}

	if err := api.svc.Reorder(ctx.Request().Context(), data.SliderOrders); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, echo.Map{"message": "slider items reordered successfully"})
}
