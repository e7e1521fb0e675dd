package validator

import (
	"errors"
	"strings"

	val "github.com/go-playground/validator/v10"
)

var (
	messages = map[string]string{
		"required":    "{field} is required",
		"gte":         "{field} must be greater than or equal to {param}",
		"lte":         "{field} must be less than or equal to {param}",
		"gtfield":     "{field} must be after {param}",
		"eqfield":     "{field} must match {param}",
		"oneof":       "{field} must be one of {param}",
		"max":         "{field} must be less than or equal to {param}",
		"min":         "{field} must be greater than or equal to {param}",
		"len":         "{field} must be exactly {param} characters long",
		"numeric":     "{field} must contain digits only",
		"email":       "{field} must be a valid email address",
		"uuid":        "{field} must be a valid UUID",
		"password":    "{field} must contain an upper case letter, a lower case letter and a digit",
		"adult":       "{field} must be at least 18 years ago",
		"mimetypes":   "{field} must be one of {param}",
		"maxfilesize": "{field} must not exceed {param} MB",
	}
)

func message(err error) string {
	var valErrors val.ValidationErrors

	if errors.As(err, &valErrors) {
		for _, valErr := range valErrors {
			field := valErr.Field()
			param := valErr.Param()

			errStr := messages[valErr.Tag()]
			if errStr != "" {
				errStr = strings.ReplaceAll(errStr, "{field}", field)
				errStr = strings.ReplaceAll(errStr, "{param}", param)

				return errStr
			}
		}

		return valErrors.Error()
	}

	return err.Error()
}
