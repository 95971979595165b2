// Package validator validates caller models before they are written to the
// store, using go-playground/validator with English messages.
package validator

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// Validator wraps go-playground/validator with translated error messages.
type Validator struct {
	validate *validator.Validate
	trans    ut.Translator
}

var (
	defaultValidator *Validator
	once             sync.Once
)

// Default returns the shared validator instance.
func Default() *Validator {
	once.Do(func() {
		defaultValidator = New()
	})
	return defaultValidator
}

// New creates a new Validator.
func New() *Validator {
	v := &Validator{
		validate: validator.New(),
	}

	// Report document field names rather than Go field names.
	v.validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"bson", "json"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return fld.Name
	})

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	v.trans, _ = uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(v.validate, v.trans)

	return v
}

// Validate validates a struct. It returns nil or *ValidationErrors.
func (v *Validator) Validate(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return &ValidationErrors{
			Errors: []FieldError{{Field: "unknown", Tag: "unknown", Message: err.Error()}},
		}
	}

	out := &ValidationErrors{Errors: make([]FieldError, 0, len(fieldErrs))}
	for _, fe := range fieldErrs {
		out.Errors = append(out.Errors, FieldError{
			Field:   fe.Field(),
			Tag:     fe.Tag(),
			Param:   fe.Param(),
			Message: fe.Translate(v.trans),
		})
	}
	return out
}
