package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/sahyadri/classai/core/assist"
)

type assistApi struct {
	deps ServerDeps
}

func registerAssistAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := assistApi{deps: deps}

	ag := g.Group("/assist", jwt, staffMiddleware())
	ag.POST("/engagement", api.analyzeEngagement)
	ag.POST("/performance-log", api.logPerformance)
	ag.POST("/lesson-plan", api.generateLessonPlan)
	ag.POST("/handout", api.generateHandout)
	ag.POST("/blackboard", api.generateBlackboard)
	ag.POST("/image", api.generateImage)
	ag.POST("/chat", api.chat)
}

// Handlers

func (api *assistApi) analyzeEngagement(ctx echo.Context) error {
	var data EngagementRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to EngagementRequest")
	}
	if err := data.Validate(api.deps.Validate); err != nil {
		return err
	}

	engagements, err := api.deps.AssistSvc.AnalyzeEngagement(ctx.Request().Context(), data.SnapshotDataURI)
	if err != nil {
		return errors.Wrap(err, "analyzing engagement")
	}
	return ctx.JSON(http.StatusOK, EngagementResponse{StudentEngagements: engagements})
}

func (api *assistApi) logPerformance(ctx echo.Context) error {
	var data PerformanceLogRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to PerformanceLogRequest")
	}

	result := api.deps.AssistSvc.LogPerformance(ctx.Request().Context(), data.Subject, data.Engagements)
	return ctx.JSON(http.StatusOK, result)
}

func (api *assistApi) generateLessonPlan(ctx echo.Context) error {
	var data assist.LessonPlanRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to LessonPlanRequest")
	}
	if err := data.Validate(ctx.Request().Context(), api.deps.Validate); err != nil {
		return err
	}

	lp, err := api.deps.AssistSvc.GenerateLessonPlan(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "generating lesson plan")
	}
	return ctx.JSON(http.StatusOK, lp)
}

func (api *assistApi) generateHandout(ctx echo.Context) error {
	var data assist.HandoutRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to HandoutRequest")
	}
	if err := data.Validate(ctx.Request().Context(), api.deps.Validate); err != nil {
		return err
	}

	handout, err := api.deps.AssistSvc.GeneratePracticeHandout(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "generating practice handout")
	}
	return ctx.JSON(http.StatusOK, handout)
}

func (api *assistApi) generateBlackboard(ctx echo.Context) error {
	var data assist.BlackboardRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to BlackboardRequest")
	}
	if err := data.Validate(ctx.Request().Context(), api.deps.Validate); err != nil {
		return err
	}

	uri, err := api.deps.AssistSvc.GenerateBlackboardLayout(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "generating blackboard layout")
	}
	return ctx.JSON(http.StatusOK, ImageResponse{ImageDataURI: uri})
}

func (api *assistApi) generateImage(ctx echo.Context) error {
	var data ImageRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to ImageRequest")
	}
	if err := data.Validate(api.deps.Validate); err != nil {
		return err
	}

	uri, err := api.deps.AssistSvc.GenerateImage(ctx.Request().Context(), data.Prompt)
	if err != nil {
		return errors.Wrap(err, "generating image")
	}
	return ctx.JSON(http.StatusOK, ImageResponse{ImageDataURI: uri})
}

func (api *assistApi) chat(ctx echo.Context) error {
	var data ChatRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to ChatRequest")
	}
	if err := data.Validate(api.deps.Validate); err != nil {
		return err
	}

	answer, err := api.deps.AssistSvc.Chat(ctx.Request().Context(), data.Question, data.History)
	if err != nil {
		return errors.Wrap(err, "answering question")
	}
	return ctx.JSON(http.StatusOK, ChatResponse{Answer: answer})
}

type (
	EngagementRequest struct {
		SnapshotDataURI string `json:"snapshot_data_uri" validate:"required"`
	}

	EngagementResponse struct {
		StudentEngagements []assist.Engagement `json:"student_engagements"`
	}

	PerformanceLogRequest struct {
		Subject     string              `json:"subject"`
		Engagements []assist.Engagement `json:"engagements"`
	}

	ImageRequest struct {
		Prompt string `json:"prompt" validate:"required"`
	}

	ImageResponse struct {
		ImageDataURI string `json:"image_data_uri"`
	}

	ChatRequest struct {
		Question string               `json:"question" validate:"required"`
		History  []assist.ChatMessage `json:"history" validate:"omitempty,dive"`
	}

	ChatResponse struct {
		Answer string `json:"answer"`
	}
)

func (r *EngagementRequest) Validate(validate *validator.Validate) error {
	return validate.Struct(r)
}

func (r *ImageRequest) Validate(validate *validator.Validate) error {
	return validate.Struct(r)
}

func (r *ChatRequest) Validate(validate *validator.Validate) error {
	return validate.Struct(r)
}
