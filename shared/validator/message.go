package validator

import (
	"errors"
	"strings"

	val "github.com/go-playground/validator/v10"
)

var messages = map[string]string{
	"required":    "{field} is required",
	"notblank":    "{field} is required",
	"gt":          "{field} must be greater than {param}",
	"gte":         "{field} must be greater than or equal to {param}",
	"lte":         "{field} must be less than or equal to {param}",
	"oneof":       "{field} must be one of {param}",
	"max":         "{field} must be less than or equal to {param}",
	"min":         "{field} must be greater than or equal to {param}",
	"email":       "{field} must be a valid email address",
	"uuid":        "{field} must be a valid UUID",
	"url":         "{field} must be a valid URL",
	"alphanum":    "{field} must contain letters and digits only",
	"datetime":    "{field} must be formatted as {param}",
	"mimetypes":   "{field} must be one of {param}",
	"maxfilesize": "{field} must not be larger than {param} MB",
}

// message describes the first failed rule that has a template, falling back
// to the validator's own text.
func message(err error) string {
	var failed val.ValidationErrors
	if !errors.As(err, &failed) {
		return err.Error()
	}

	for _, fieldErr := range failed {
		template, ok := messages[fieldErr.Tag()]
		if !ok {
			continue
		}

		return strings.NewReplacer("{field}", fieldErr.Field(), "{param}", fieldErr.Param()).Replace(template)
	}

	return failed.Error()
}
