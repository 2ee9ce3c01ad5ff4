package course

import (
	"github.com/go-playground/validator/v10"

	"github.com/afthonios/catalog/core"
	"github.com/afthonios/catalog/core/plan"
)

var (
	isColorTag   = "iscolor"
	isColorTexts = map[string]string{
		core.LocaleEN: "{0} must be a hex, rgb(a), hsl(a) or named color",
		core.LocaleFR: "{0} doit être une couleur hexadécimale, rgb(a), hsl(a) ou nommée",
	}
)

// RegisterValidators registers the course validations and their translations.
func RegisterValidators(validate *validator.Validate, translators *core.Translators) {
	_ = validate.RegisterValidation(isColorTag, isColorValidation)
	for _, locale := range core.Locales {
		core.RegisterCustomTranslation(validate, translators.Get(locale), isColorTag, isColorTexts[locale])
	}
}

func isColorValidation(fl validator.FieldLevel) bool {
	return plan.IsColor(fl.Field().String())
}
