package echoapi

import (
	"bytes"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/afthonios/catalog/core/course"
	"github.com/afthonios/catalog/core/plan"
)

type planApi struct {
	validate *validator.Validate
}

type sectionsRequest struct {
	PlanMD string `json:"plan_md"`
	Locale string `json:"locale" validate:"locale"`
}

func registerPlanAPI(g *echo.Group, validate *validator.Validate) {
	api := planApi{validate: validate}

	pg := g.Group("/plans")
	pg.POST("/render", api.render)
	pg.POST("/sections", api.sections)
}

// Handlers

func (api *planApi) render(ctx echo.Context) error {
	format, err := formatParam(ctx)
	if err != nil {
		return err
	}
	var data course.PlanRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to PlanRequest")
	}
	if err := api.validate.Struct(data); err != nil {
		return err
	}
	return respondPlan(ctx, plan.Render(data.Input(contextLocale(ctx))), format)
}

func (api *planApi) sections(ctx echo.Context) error {
	var data sectionsRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to sectionsRequest")
	}
	if err := api.validate.Struct(data); err != nil {
		return err
	}
	locale := data.Locale
	if locale == "" {
		locale = contextLocale(ctx)
	}
	l, _ := plan.ParseLocale(locale)
	return ctx.JSON(http.StatusOK, plan.Parse(data.PlanMD, l))
}

func respondPlan(ctx echo.Context, tree plan.Tree, format string) error {
	if format != "html" {
		return ctx.JSON(http.StatusOK, tree)
	}
	var buf bytes.Buffer
	if err := plan.RenderHTML(&buf, tree, nil); err != nil {
		return errors.Wrap(err, "rendering plan html")
	}
	return ctx.HTMLBlob(http.StatusOK, buf.Bytes())
}
