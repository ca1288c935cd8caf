package echoapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/sahyadri/classai/core/textbook"
)

type textbookApi struct {
	deps ServerDeps
}

func registerTextbookAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := textbookApi{deps: deps}

	tg := g.Group("/textbooks", jwt)
	tg.POST("", api.create, adminMiddleware())
	tg.GET("", api.query, staffMiddleware())
	tg.GET("/subjects", api.querySubjects, staffMiddleware())
	tg.GET("/link", api.link, staffMiddleware())
	tg.DELETE("", api.destroyMultiple, adminMiddleware())
	tg.DELETE("/:id", api.destroy, adminMiddleware())
}

// Handlers

func (api *textbookApi) create(ctx echo.Context) error {
	var data textbook.NewTextbook
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewTextbook")
	}
	if err := data.Validate(ctx.Request().Context(), api.deps.Validate); err != nil {
		return err
	}

	tb, err := api.deps.TextbookSvc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "cataloging textbook")
	}
	return ctx.JSON(http.StatusCreated, tb)
}

func (api *textbookApi) query(ctx echo.Context) error {
	tbs, err := api.deps.TextbookSvc.QueryAll(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying textbooks")
	}
	if tbs == nil {
		tbs = []textbook.Textbook{}
	}
	return ctx.JSON(http.StatusOK, tbs)
}

func (api *textbookApi) querySubjects(ctx echo.Context) error {
	pairs, err := api.deps.TextbookSvc.UniqueSubjectGrades(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying textbook subjects")
	}
	if pairs == nil {
		pairs = []textbook.UniqueSubjectGrade{}
	}
	return ctx.JSON(http.StatusOK, pairs)
}

func (api *textbookApi) link(ctx echo.Context) error {
	subject := ctx.QueryParam("subject")
	grade, err := strconv.Atoi(ctx.QueryParam("grade"))
	if err != nil || subject == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "subject and grade are required")
	}

	link, err := api.deps.TextbookSvc.Link(ctx.Request().Context(), subject, grade, ctx.QueryParam("language"))
	if err != nil {
		if errors.Cause(err) == textbook.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "resolving textbook link")
	}
	return ctx.JSON(http.StatusOK, TextbookLinkResponse{Link: link})
}

func (api *textbookApi) destroy(ctx echo.Context) error {
	if err := api.deps.TextbookSvc.Delete(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting textbook")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *textbookApi) destroyMultiple(ctx echo.Context) error {
	var query DestroyMultipleRequest
	if err := ctx.Bind(&query); err != nil {
		return errors.Wrap(err, "binding to DestroyMultipleRequest")
	}
	if query.IDs == nil {
		return ctx.NoContent(http.StatusNoContent)
	}

	if err := api.deps.TextbookSvc.Delete(ctx.Request().Context(), query.IDs...); err != nil {
		return errors.Wrap(err, "deleting textbooks")
	}
	return ctx.NoContent(http.StatusNoContent)
}

type TextbookLinkResponse struct {
	Link string `json:"link"`
}
