package core

import (
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/fr"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	fr_translations "github.com/go-playground/validator/v10/translations/fr"
)

// Supported locales
const (
	LocaleFR = "fr"
	LocaleEN = "en"
)

var (
	Locales = []string{LocaleFR, LocaleEN}

	// custom validation tags & texts
	notBlankTag   = "notblank"
	notBlankTexts = map[string]string{
		LocaleEN: "this field cannot be blank",
		LocaleFR: "ce champ ne peut pas être vide",
	}

	localeTag   = "locale"
	localeTexts = map[string]string{
		LocaleEN: "locale must be one of: fr, en",
		LocaleFR: "la langue doit être l'une de : fr, en",
	}

	requiredTag   = "required"
	requiredTexts = map[string]string{
		LocaleEN: "this field is required",
		LocaleFR: "ce champ est obligatoire",
	}
)

// Translators holds one ut.Translator per supported locale.
type Translators struct {
	uni      *ut.UniversalTranslator
	fallback string
}

// NewTranslators returns translators for all supported locales. Unknown locales fall back to English.
func NewTranslators() *Translators {
	_en := en.New()
	return &Translators{
		uni:      ut.New(_en, _en, fr.New()),
		fallback: LocaleEN,
	}
}

// Get returns the translator for locale, or the fallback one.
func (t *Translators) Get(locale string) ut.Translator {
	if trans, found := t.uni.GetTranslator(CleanString(locale, true)); found {
		return trans
	}
	trans, _ := t.uni.GetTranslator(t.fallback)
	return trans
}

// IsLocale reports whether s is one of the supported locales.
func IsLocale(s string) bool {
	for _, l := range Locales {
		if s == l {
			return true
		}
	}
	return false
}

// InitValidators registers the default and custom validations and their translations.
func InitValidators(validate *validator.Validate, translators *Translators) {
	enTrans := translators.Get(LocaleEN)
	frTrans := translators.Get(LocaleFR)
	_ = en_translations.RegisterDefaultTranslations(validate, enTrans)
	_ = fr_translations.RegisterDefaultTranslations(validate, frTrans)

	// Use JSON tag names for errors instead of Go struct names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// register custom validators
	_ = validate.RegisterValidation(notBlankTag, notBlankValidation)
	_ = validate.RegisterValidation(localeTag, localeValidation)

	for _, locale := range Locales {
		trans := translators.Get(locale)
		RegisterCustomTranslation(validate, trans, notBlankTag, notBlankTexts[locale])
		RegisterCustomTranslation(validate, trans, localeTag, localeTexts[locale])
		RegisterCustomTranslation(validate, trans, requiredTag, requiredTexts[locale], true)
	}
}

// RegisterCustomTranslation registers a custom translation for the specified validation tag.
func RegisterCustomTranslation(validate *validator.Validate, translator ut.Translator, tag, text string, override ...bool) {
	var ovrd bool
	if len(override) > 0 {
		ovrd = override[0]
	}
	_ = validate.RegisterTranslation(
		tag, translator,
		func(t ut.Translator) error { return t.Add(tag, text, ovrd) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field())
			return s
		},
	)
}

// Custom Global Validators

func notBlankValidation(fl validator.FieldLevel) bool {
	if str, ok := fl.Field().Interface().(string); ok {
		return strings.TrimSpace(str) != ""
	}
	return false
}

// localeValidation accepts empty values; combine with `required` when needed.
func localeValidation(fl validator.FieldLevel) bool {
	s := CleanString(fl.Field().String(), true)
	return s == "" || IsLocale(s)
}
