package validator

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"slices"
	"strconv"
	"strings"
	"time"
	"unicode"

	"bms/shared/base64"
	"bms/shared/constant"
	"bms/shared/failure"
	"bms/shared/timezone"

	val "github.com/go-playground/validator/v10"
)

var validate *val.Validate

func registerMimetypeValidation(field val.FieldLevel) bool {
	var contentType string

	if file, ok := field.Field().Interface().(multipart.FileHeader); ok {
		contentType = file.Header.Get(constant.RequestHeaderContentType)
	} else if str, ok := field.Field().Interface().(string); ok {
		contentType = base64.GetContentType(str)

		if contentType == "" {
			return false
		}
	}

	allowedTypes := strings.Split(field.Param(), " ")

	return slices.Contains(allowedTypes, contentType)
}

func registerFileSizeValidation(field val.FieldLevel) bool {
	fileSize := 0
	if file, ok := field.Field().Interface().(multipart.FileHeader); ok {
		fileSize = int(file.Size)
	} else if str, ok := field.Field().Interface().(string); ok {
		fileSize = len(str)
	}

	maxSizeMB, err := strconv.ParseFloat(field.Param(), 64)
	if err != nil {
		return false
	}

	bytesConversion := 1024.0
	maxSizeBytes := int(maxSizeMB * bytesConversion * bytesConversion)

	return fileSize <= maxSizeBytes
}

// registerPasswordValidation requires at least one upper case letter, one lower case letter and one digit.
func registerPasswordValidation(field val.FieldLevel) bool {
	var upper, lower, digit bool

	for _, r := range field.Field().String() {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}

	return upper && lower && digit
}

func registerAdultValidation(field val.FieldLevel) bool {
	birthDate, ok := field.Field().Interface().(time.Time)
	if !ok || birthDate.IsZero() {
		return false
	}

	minAge := constant.AdultAge
	if param := field.Param(); param != "" {
		parsed, err := strconv.Atoi(param)
		if err != nil {
			return false
		}

		minAge = parsed
	}

	return timezone.YearsBetween(birthDate, timezone.Now()) >= minAge
}

func init() {
	validate = val.New(val.WithRequiredStructEnabled())

	rules := map[string]val.Func{
		"empty": func(fl val.FieldLevel) bool {
			return fl.Field().IsZero()
		},
		"mimetypes":   registerMimetypeValidation,
		"maxfilesize": registerFileSizeValidation,
		"password":    registerPasswordValidation,
		"adult":       registerAdultValidation,
	}

	for tag, fn := range rules {
		if err := validate.RegisterValidation(tag, fn); err != nil {
			panic(err)
		}
	}
}

// Validate reads from the given io.Reader into the given struct, and then performs validation
// on the struct using the validator package. If the struct is invalid according to the
// validation rules, an error is returned. Otherwise, nil is returned.
// https://github.com/go-playground/validator
func Validate[T any](r io.Reader, data *T) error {
	decoder := json.NewDecoder(r)
	err := decoder.Decode(data)

	if err != nil {
		return failure.BadRequest(fmt.Errorf("failed to decode request body: %w", err)) //nolint:wrapcheck
	}

	return ValidateStruct(data)
}

func ValidateStruct[T any](data *T) error {
	err := validate.Struct(data)

	if err != nil {
		msg := message(err)

		return failure.BadRequestFromString(msg) //nolint:wrapcheck
	}

	return nil
}

func ValidateVar(field any, tag string) error {
	err := validate.Var(field, tag)

	if err != nil {
		msg := message(err)

		return failure.BadRequestFromString(msg) //nolint:wrapcheck
	}

	return nil
}

// RegisterEnum adds a tag accepting only the given string values. An empty string passes so the
// tag composes with omitempty and required.
func RegisterEnum(tag string, values ...string) {
	err := validate.RegisterValidation(tag, func(fl val.FieldLevel) bool {
		value := fl.Field().String()

		return value == "" || slices.Contains(values, value)
	})
	if err != nil {
		panic(err)
	}

	messages[tag] = "{field} must be one of " + strings.Join(values, " ")
}
