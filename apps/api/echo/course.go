package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/afthonios/catalog/core/course"
)

type courseApi struct {
	svc      *course.Service
	validate *validator.Validate
}

type coursePlanQuery struct {
	ID     string `param:"id"`
	Locale string `query:"locale" json:"locale" validate:"locale"`
}

func registerCourseAPI(g *echo.Group, svc *course.Service, validate *validator.Validate) {
	api := courseApi{
		svc:      svc,
		validate: validate,
	}

	cg := g.Group("/courses")
	cg.GET("", api.query)
	cg.GET("/:id/plan", api.plan)
}

// Handlers

func (api *courseApi) query(ctx echo.Context) error {
	var filter course.QueryFilter
	if err := (&echo.DefaultBinder{}).BindQueryParams(ctx, &filter); err != nil {
		return errors.Wrap(err, "binding to QueryFilter")
	}
	if err := api.validate.Struct(filter); err != nil {
		return err
	}
	var ord Ordering
	ord.Bind(ctx)
	filter.Orderings = ord.Orderings

	courses, err := api.svc.Query(ctx.Request().Context(), filter)
	if err != nil {
		return errors.Wrap(err, "querying courses")
	}
	summaries := make([]course.Summary, 0, len(courses))
	for _, c := range courses {
		summaries = append(summaries, c.Summary())
	}
	return ctx.JSON(http.StatusOK, summaries)
}

func (api *courseApi) plan(ctx echo.Context) error {
	format, err := formatParam(ctx)
	if err != nil {
		return err
	}
	var q coursePlanQuery
	if err := ctx.Bind(&q); err != nil {
		return errors.Wrap(err, "binding to coursePlanQuery")
	}
	if err := api.validate.Struct(q); err != nil {
		return err
	}

	tree, err := api.svc.Plan(ctx.Request().Context(), q.ID, q.Locale)
	if err != nil {
		return errors.Wrap(err, "getting course plan")
	}
	return respondPlan(ctx, tree, format)
}
