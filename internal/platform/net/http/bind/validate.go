// Package bind decodes request bodies and query strings into typed inputs
// and runs go-playground validation over them
package bind

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	perr "gymdesk/internal/platform/errors"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entrans "github.com/go-playground/validator/v10/translations/en"
)

type validation struct {
	v     *validator.Validate
	trans ut.Translator
}

// short overrides for the default english messages
var messages = map[string]string{
	"min":      "{0} must be at least {1}",
	"max":      "{0} must be at most {1}",
	"datetime": "{0} must be a date like {1}",
}

var validate = sync.OnceValue(func() validation {
	loc := en.New()
	trans, _ := ut.New(loc, loc).GetTranslator("en")

	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(fieldName)
	_ = entrans.RegisterDefaultTranslations(v, trans)

	for tag, text := range messages {
		_ = v.RegisterTranslation(tag, trans,
			func(t ut.Translator) error { return t.Add(tag, text, true) },
			func(t ut.Translator, fe validator.FieldError) string {
				msg, _ := t.T(fe.Tag(), fe.Field(), fe.Param())
				return msg
			},
		)
	}
	return validation{v: v, trans: trans}
})

// fieldName reports json (or query) names so messages match the wire
func fieldName(f reflect.StructField) string {
	for _, key := range []string{"json", QueryTag} {
		name, _, _ := strings.Cut(f.Tag.Get(key), ",")
		if name != "" && name != "-" {
			return name
		}
	}
	return f.Name
}

// Struct validates v and returns the first failure as a validation error
// carrying the offending field
func Struct(v any) error {
	err := validate().v.Struct(v)
	if err == nil {
		return nil
	}
	var invalid *validator.InvalidValidationError
	if errors.As(err, &invalid) {
		// not a struct; nothing to validate
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return perr.WithField(perr.Validationf("%s", fe.Translate(validate().trans)), fe.Field())
	}
	return perr.Validationf("%v", err)
}
