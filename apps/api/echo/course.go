package echoapi

import (
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/jltacademy/backend/core/course"
)

type courseApi struct {
	svc *course.Service
}

func registerCourseAPI(g *echo.Group, jwt, admin echo.MiddlewareFunc, svc *course.Service) {
	api := courseApi{svc: svc}

	cg := g.Group("/courses")

	// public endpoints
	cg.GET("", api.list)
	cg.GET("/:id", api.retrieve)

	// admin endpoints
	cg.POST("", api.create, jwt, admin)
	cg.POST("/reorder", api.reorder, jwt, admin)
	cg.PUT("/:id", api.update, jwt, admin)
	cg.DELETE("/:id", api.destroy, jwt, admin)
}

// Handlers

func (api *courseApi) list(ctx echo.Context) error {
	courses, err := api.svc.List(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "listing courses")
	}
	return ctx.JSON(http.StatusOK, echo.Map{"courses": courses})
}

func (api *courseApi) retrieve(ctx echo.Context) error {
	id, err := pathID(ctx, course.ErrNotFound)
	if err != nil {
		return err
	}
	crs, err := api.svc.Get(ctx.Request().Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, echo.Map{"course": crs})
}

func (api *courseApi) create(ctx echo.Context) error {
	var data course.NewCourse
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewCourse")
	}

	crs, err := api.svc.Create(ctx.Request().Context(), data, formFile(ctx, "image"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, echo.Map{"message": "course created successfully", "course": crs})
}

func (api *courseApi) update(ctx echo.Context) error {
	id, err := pathID(ctx, course.ErrNotFound)
	if err != nil {
		return err
	}

	var data course.UpdateCourse
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateCourse")
	}

	crs, err := api.svc.Update(ctx.Request().Context(), id, data, formFile(ctx, "image"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, echo.Map{"message": "course updated successfully", "course": crs})
}

func (api *courseApi) destroy(ctx echo.Context) error {
	id, err := pathID(ctx, course.ErrNotFound)
	if err != nil {
		return err
	}
	if err = api.svc.Delete(ctx.Request().Context(), id); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, echo.Map{"message": "course deleted successfully"})
}

func (api *courseApi) reorder(ctx echo.Context) error {
	var data struct {
		CourseOrders []course.SortUpdate `json:"courseOrders"`
	}
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to courseOrders")
	}

	if err := api.svc.Reorder(ctx.Request().Context(), data.CourseOrders); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, echo.Map{"message": "courses reordered successfully"})
}

// Helpers

// pathID parses the :id path param; a non-numeric id behaves like an unknown one.
func pathID(ctx echo.Context, notFoundErr error) (int, error) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return 0, notFoundErr
	}
	return id, nil
}

// formFile returns the named upload, or nil when the request does not carry one.
func formFile(ctx echo.Context, name string) *multipart.FileHeader {
	fh, err := ctx.FormFile(name)
	if err != nil {
		return nil
	}
	return fh
}
