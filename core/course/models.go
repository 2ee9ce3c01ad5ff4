package course

import (
	"strings"

	"github.com/afthonios/catalog/core"
	"github.com/afthonios/catalog/core/plan"
)

// Orderable fields
const (
	FieldID      = "id"
	FieldSlug    = "slug"
	FieldTitle   = "title"
	FieldUpdated = "date_updated"
)

var OrderableFields = []string{FieldID, FieldSlug, FieldTitle, FieldUpdated}

// Course is a course as stored in the CMS. Field names follow the CMS collection.
type Course struct {
	ID                string `json:"id" yaml:"id"`
	Slug              string `json:"slug" yaml:"slug"`
	Title             string `json:"title" yaml:"title"`
	Locale            string `json:"locale" yaml:"locale"`
	Status            string `json:"status,omitempty" yaml:"status,omitempty"`
	PlanMD            string `json:"plan_md" yaml:"plan_md"`
	GradientLightFrom string `json:"gradient_light_from,omitempty" yaml:"gradient_light_from,omitempty"`
	GradientLightTo   string `json:"gradient_light_to,omitempty" yaml:"gradient_light_to,omitempty"`
	GradientDarkFrom  string `json:"gradient_dark_from,omitempty" yaml:"gradient_dark_from,omitempty"`
	GradientDarkTo    string `json:"gradient_dark_to,omitempty" yaml:"gradient_dark_to,omitempty"`
	ForegroundLight   string `json:"foreground_light,omitempty" yaml:"foreground_light,omitempty"`
	ForegroundDark    string `json:"foreground_dark,omitempty" yaml:"foreground_dark,omitempty"`
	DateUpdated       string `json:"date_updated,omitempty" yaml:"date_updated,omitempty"` // RFC 3339
}

func (c Course) Gradient() plan.Gradient {
	return plan.Gradient{
		LightFrom:       c.GradientLightFrom,
		LightTo:         c.GradientLightTo,
		DarkFrom:        c.GradientDarkFrom,
		DarkTo:          c.GradientDarkTo,
		ForegroundLight: c.ForegroundLight,
		ForegroundDark:  c.ForegroundDark,
	}
}

// PlanInput returns the render input of the course plan. An empty locale means the course's own.
func (c Course) PlanInput(locale string) plan.Input {
	if locale == "" {
		locale = c.Locale
	}
	l, _ := plan.ParseLocale(locale)
	return plan.Input{
		PlanMD:   c.PlanMD,
		Locale:   l,
		CourseID: c.ID,
		Gradient: c.Gradient(),
	}
}

// Summary is the listing view of a Course.
type Summary struct {
	ID     string `json:"id"`
	Slug   string `json:"slug"`
	Title  string `json:"title"`
	Locale string `json:"locale"`
}

func (c Course) Summary() Summary {
	return Summary{ID: c.ID, Slug: c.Slug, Title: c.Title, Locale: c.Locale}
}

type QueryFilter struct {
	Search    string          `query:"search" json:"search"`
	Locale    string          `query:"locale" json:"locale" validate:"locale"`
	Orderings []core.Ordering `query:"-" json:"-"`
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf.Search == "" && qf.Locale == "" && len(qf.Orderings) == 0
}

// Clean trims the filter and drops orderings on unknown fields.
func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
	qf.Locale = core.CleanString(qf.Locale, true /* lower */)

	ords := qf.Orderings[:0]
	for _, ord := range qf.Orderings {
		if isOrderable(ord.Field) {
			ords = append(ords, ord)
		}
	}
	qf.Orderings = ords
}

func isOrderable(field string) bool {
	for _, f := range OrderableFields {
		if strings.EqualFold(f, field) {
			return true
		}
	}
	return false
}

// PlanRequest is the body of a plan render request.
type PlanRequest struct {
	PlanMD   string        `json:"plan_md"`
	Locale   string        `json:"locale" validate:"locale"`
	CourseID string        `json:"course_id" validate:"max=128"`
	Gradient GradientInput `json:"gradient"`
}

// GradientInput holds optional colors. Invalid foregrounds are rejected here, while the
// renderer silently ignores incomplete gradients.
type GradientInput struct {
	LightFrom       string `json:"light_from" validate:"omitempty,iscolor"`
	LightTo         string `json:"light_to" validate:"omitempty,iscolor"`
	DarkFrom        string `json:"dark_from" validate:"omitempty,iscolor"`
	DarkTo          string `json:"dark_to" validate:"omitempty,iscolor"`
	ForegroundLight string `json:"foreground_light" validate:"omitempty,iscolor"`
	ForegroundDark  string `json:"foreground_dark" validate:"omitempty,iscolor"`
}

// Input converts the request, falling back to defaultLocale when none is given.
func (pr PlanRequest) Input(defaultLocale string) plan.Input {
	locale := core.CleanString(pr.Locale, true /* lower */)
	if locale == "" {
		locale = defaultLocale
	}
	l, _ := plan.ParseLocale(locale)
	return plan.Input{
		PlanMD:   pr.PlanMD,
		Locale:   l,
		CourseID: core.CleanString(pr.CourseID),
		Gradient: plan.Gradient(pr.Gradient),
	}
}
