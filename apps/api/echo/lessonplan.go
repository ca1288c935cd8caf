package echoapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/sahyadri/classai/core/lessonplan"
)

type lessonPlanApi struct {
	deps ServerDeps
}

func registerLessonPlanAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := lessonPlanApi{deps: deps}

	lg := g.Group("/lessonplans", jwt, staffMiddleware())
	lg.POST("", api.save)
	lg.GET("", api.query)
	lg.GET("/latest", api.latest)
	lg.DELETE("", api.destroyMultiple)
}

// Handlers

func (api *lessonPlanApi) save(ctx echo.Context) error {
	var data lessonplan.LessonPlan
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to LessonPlan")
	}

	lp, err := api.deps.LessonPlanSvc.Save(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "saving lesson plan")
	}
	return ctx.JSON(http.StatusCreated, lp)
}

func (api *lessonPlanApi) query(ctx echo.Context) error {
	plans, err := api.deps.LessonPlanSvc.QueryAll(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying lesson plans")
	}
	if plans == nil {
		plans = []lessonplan.LessonPlan{}
	}
	return ctx.JSON(http.StatusOK, plans)
}

func (api *lessonPlanApi) latest(ctx echo.Context) error {
	subject := ctx.QueryParam("subject")
	grade, err := strconv.Atoi(ctx.QueryParam("grade"))
	if err != nil || subject == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "subject and grade are required")
	}

	lp, err := api.deps.LessonPlanSvc.Latest(ctx.Request().Context(), subject, grade)
	if err != nil {
		if errors.Cause(err) == lessonplan.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding latest lesson plan")
	}
	return ctx.JSON(http.StatusOK, lp)
}

func (api *lessonPlanApi) destroyMultiple(ctx echo.Context) error {
	var query DestroyMultipleRequest
	if err := ctx.Bind(&query); err != nil {
		return errors.Wrap(err, "binding to DestroyMultipleRequest")
	}
	if query.IDs == nil {
		return ctx.NoContent(http.StatusNoContent)
	}

	if err := api.deps.LessonPlanSvc.Delete(ctx.Request().Context(), query.IDs...); err != nil {
		return errors.Wrap(err, "deleting lesson plans")
	}
	return ctx.NoContent(http.StatusNoContent)
}
