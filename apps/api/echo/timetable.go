package echoapi

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/sahyadri/classai/core/timetable"
)

type timetableApi struct {
	deps ServerDeps
}

func registerTimetableAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := timetableApi{deps: deps}

	tg := g.Group("/timetable", jwt)
	tg.POST("", api.create, adminMiddleware())
	tg.GET("", api.query, staffMiddleware())
	tg.GET("/today", api.today, staffMiddleware())
	tg.GET("/live", api.live, staffMiddleware())
	tg.DELETE("", api.destroyMultiple, adminMiddleware())
	tg.DELETE("/:id", api.destroy, adminMiddleware())
}

// Handlers

func (api *timetableApi) create(ctx echo.Context) error {
	var data timetable.NewEntry
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewEntry")
	}
	if err := data.Validate(ctx.Request().Context(), api.deps.Validate); err != nil {
		return err
	}

	entry, err := api.deps.TimetableSvc.Add(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "scheduling entry")
	}
	return ctx.JSON(http.StatusCreated, entry)
}

func (api *timetableApi) query(ctx echo.Context) error {
	entries, err := api.deps.TimetableSvc.QueryAll(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying timetable")
	}
	if entries == nil {
		entries = []timetable.Entry{}
	}
	return ctx.JSON(http.StatusOK, entries)
}

func (api *timetableApi) today(ctx echo.Context) error {
	entries, err := api.deps.TimetableSvc.Today(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying today's timetable")
	}
	if entries == nil {
		entries = []timetable.Entry{}
	}
	return ctx.JSON(http.StatusOK, entries)
}

// live resolves the class currently in session; `live` is null when no
// class is on.
func (api *timetableApi) live(ctx echo.Context) error {
	entries, err := api.deps.TimetableSvc.Today(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying today's timetable")
	}
	return ctx.JSON(http.StatusOK, LiveClassResponse{Live: timetable.Live(entries, time.Now())})
}

func (api *timetableApi) destroy(ctx echo.Context) error {
	if err := api.deps.TimetableSvc.Delete(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting entry")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *timetableApi) destroyMultiple(ctx echo.Context) error {
	var query DestroyMultipleRequest
	if err := ctx.Bind(&query); err != nil {
		return errors.Wrap(err, "binding to DestroyMultipleRequest")
	}
	if query.IDs == nil {
		return ctx.NoContent(http.StatusNoContent)
	}

	if err := api.deps.TimetableSvc.Delete(ctx.Request().Context(), query.IDs...); err != nil {
		return errors.Wrap(err, "deleting entries")
	}
	return ctx.NoContent(http.StatusNoContent)
}

type LiveClassResponse struct {
	Live *timetable.Entry `json:"live"`
}
