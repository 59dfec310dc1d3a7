package validator

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"hotel/shared/base64"
	"hotel/shared/constant"
	"hotel/shared/failure"

	val "github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

const bytesPerMB = 1 << 20

var validate = newValidate()

func newValidate() *val.Validate {
	v := val.New(val.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonName)

	rules := map[string]val.Func{
		"notblank":    validators.NotBlank,
		"mimetypes":   mimeTypes,
		"maxfilesize": maxFileSize,
	}

	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(fmt.Sprintf("register %s: %v", tag, err))
		}
	}

	return v
}

// mimeTypes accepts an upload or a data URL whose content type is one of the
// space separated param values.
func mimeTypes(field val.FieldLevel) bool {
	var contentType string

	switch value := field.Field().Interface().(type) {
	case multipart.FileHeader:
		contentType = value.Header.Get(constant.RequestHeaderContentType)
	case string:
		contentType = base64.GetContentType(value)
	}

	if contentType == constant.Empty {
		return false
	}

	return slices.Contains(strings.Fields(field.Param()), contentType)
}

// maxFileSize bounds an upload or decoded data URL to param megabytes.
func maxFileSize(field val.FieldLevel) bool {
	limit, err := strconv.ParseFloat(field.Param(), 64)
	if err != nil {
		return false
	}

	var size int

	switch value := field.Field().Interface().(type) {
	case multipart.FileHeader:
		size = int(value.Size)
	case string:
		size = len(value)

		if url, err := base64.Parse(value); err == nil {
			size = url.Size()
		}
	}

	return float64(size) <= limit*bytesPerMB
}

// jsonName reports fields by their json name so messages match the payload.
func jsonName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")

	switch name {
	case "-":
		return constant.Empty
	case constant.Empty:
		return field.Name
	default:
		return name
	}
}

// Validate decodes a single JSON document from r into data and validates it.
// Every failure is a 400.
func Validate[T any](r io.Reader, data *T) error {
	decoder := json.NewDecoder(r)

	if err := decoder.Decode(data); err != nil {
		if errors.Is(err, io.EOF) {
			return failure.BadRequestFromString("request body is required") //nolint:wrapcheck
		}

		return failure.BadRequest(fmt.Errorf("failed to decode request body: %w", err)) //nolint:wrapcheck
	}

	if decoder.More() {
		return failure.BadRequestFromString("request body must contain a single JSON object") //nolint:wrapcheck
	}

	return ValidateStruct(data)
}

func ValidateStruct[T any](data *T) error {
	return asFailure(validate.Struct(data))
}

func ValidateVar(field any, tag string) error {
	return asFailure(validate.Var(field, tag))
}

func asFailure(err error) error {
	if err == nil {
		return nil
	}

	return failure.BadRequestFromString(message(err)) //nolint:wrapcheck
}
