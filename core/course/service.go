package course

import (
	"context"
	"errors"

	"github.com/afthonios/catalog/core"
	"github.com/afthonios/catalog/core/plan"
)

var (
	// errors
	ErrNotFound = errors.New("course not found")

	errIDRequired = core.FieldError{Field: "id", Error: "id is required"}
)

type (
	Repository interface {
		GetCourse(ctx context.Context, id string) (Course, error)
		// ListCourses applies AND operation on available QueryFilter fields.
		// QueryFilter.Search does a case-insensitive match on one of Course.Title or Course.Slug.
		ListCourses(ctx context.Context, filter QueryFilter) ([]Course, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Get(ctx context.Context, id string) (Course, error) {
	id = core.CleanString(id)
	if id == "" {
		return Course{}, core.NewValidationError(nil, errIDRequired)
	}
	return svc.repo.GetCourse(ctx, id)
}

// Plan renders the plan of course id. An empty locale renders it in the course's own language.
func (svc *Service) Plan(ctx context.Context, id, locale string) (plan.Tree, error) {
	c, err := svc.Get(ctx, id)
	if err != nil {
		return plan.Tree{}, err
	}
	return plan.Render(c.PlanInput(locale)), nil
}

func (svc *Service) Query(ctx context.Context, filter QueryFilter) ([]Course, error) {
	filter.Clean()
	return svc.repo.ListCourses(ctx, filter)
}
