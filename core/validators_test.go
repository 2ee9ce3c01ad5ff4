package core

import (
	"testing"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type validatedForm struct {
	Name   string `json:"name" validate:"required,notblank"`
	Locale string `json:"locale" validate:"locale"`
}

func TestInitValidators(t *testing.T) {
	translators := NewTranslators()
	validate := validator.New()
	InitValidators(validate, translators)

	tests := []struct {
		name   string
		form   validatedForm
		wantEN map[string]string
		wantFR map[string]string
	}{
		{name: "valid", form: validatedForm{Name: "x", Locale: " EN "}},
		{name: "valid without locale", form: validatedForm{Name: "x"}},
		{
			name:   "required",
			form:   validatedForm{Locale: "fr"},
			wantEN: map[string]string{"name": "this field is required"},
			wantFR: map[string]string{"name": "ce champ est obligatoire"},
		},
		{
			name:   "blank",
			form:   validatedForm{Name: "  "},
			wantEN: map[string]string{"name": "this field cannot be blank"},
			wantFR: map[string]string{"name": "ce champ ne peut pas être vide"},
		},
		{
			name:   "locale",
			form:   validatedForm{Name: "x", Locale: "es"},
			wantEN: map[string]string{"locale": "locale must be one of: fr, en"},
			wantFR: map[string]string{"locale": "la langue doit être l'une de : fr, en"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validate.Struct(tt.form)
			if tt.wantEN == nil {
				assert.NoError(t, err)
				return
			}
			var verrs validator.ValidationErrors
			require.ErrorAs(t, err, &verrs)
			assert.Equal(t, tt.wantEN, translateFields(verrs, translators.Get(LocaleEN)))
			assert.Equal(t, tt.wantFR, translateFields(verrs, translators.Get(LocaleFR)))
		})
	}
}

func translateFields(verrs validator.ValidationErrors, trans ut.Translator) map[string]string {
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = fe.Translate(trans)
	}
	return fields
}

func TestTranslators_Get(t *testing.T) {
	translators := NewTranslators()

	assert.Equal(t, LocaleFR, translators.Get(" FR ").Locale())
	assert.Equal(t, LocaleEN, translators.Get("en").Locale())
	assert.Equal(t, LocaleEN, translators.Get("de").Locale())
	assert.Equal(t, LocaleEN, translators.Get("").Locale())
}
