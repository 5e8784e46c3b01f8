package core

import (
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

var (
	Validate   *validator.Validate
	Translator ut.Translator

	// custom validation texts
	requiredTag   = "required"
	requiredText  = "this field is required"
	oneofTag      = "oneof"
	oneofText     = "must be one of: {0}"
	urlTag        = "url"
	urlText       = "must be a valid URL"
	minTag        = "min"
	minText       = "value is too short"
)

func init() {
	Validate = validator.New()
	Translator = newTranslator()
	initValidators(Validate, Translator)
}

func newTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}

// initValidators instantiates the validator for use.
func initValidators(validate *validator.Validate, translator ut.Translator) {
	_ = en_translations.RegisterDefaultTranslations(validate, translator)

	// Use JSON tag names for errors instead of Go struct names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	RegisterCustomTranslation(validate, translator, requiredTag, requiredText, true)
	RegisterCustomTranslation(validate, translator, urlTag, urlText, true)
	RegisterCustomTranslation(validate, translator, minTag, minText, true)
	registerOneofTranslation(validate, translator)
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

func registerOneofTranslation(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterTranslation(
		oneofTag, translator,
		func(t ut.Translator) error { return t.Add(oneofTag, oneofText, true) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(oneofTag, fe.Param())
			return s
		},
	)
}
