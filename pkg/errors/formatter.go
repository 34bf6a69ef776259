package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

type ValidationErrorResponse struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

var tagMessages = map[string]string{
	"required": "This field is required",
	"email":    "Invalid email format",
	"min":      "Value is too short or too small",
	"max":      "Value is too long or too large",
	"numeric":  "Value must be numeric",
	"oneof":    "Value is not one of the accepted options",
	"phone10":  "Phone number must contain exactly 10 digits",
	"datetime": "Invalid date format",
}

// paramMessages are used when the failing tag carries a parameter.
var paramMessages = map[string]string{
	"min":      "Must be at least %s",
	"max":      "Must not exceed %s",
	"len":      "Must be exactly %s characters",
	"gte":      "Must be greater than or equal to %s",
	"lte":      "Must be less than or equal to %s",
	"datetime": "Must match the date layout %s",
}

func messageFor(fe validator.FieldError) string {
	param := fe.Param()
	if param != "" {
		if fe.Tag() == "oneof" {
			return "Must be one of: " + strings.ReplaceAll(param, " ", ", ")
		}
		if format, ok := paramMessages[fe.Tag()]; ok {
			return fmt.Sprintf(format, param)
		}
	}
	if msg, ok := tagMessages[fe.Tag()]; ok {
		return msg
	}
	return "Invalid value"
}

// wireName returns the json or form name of the struct field, which is what
// the client sent. Slice element suffixes such as "[2]" are kept.
func wireName(structType reflect.Type, fieldName string) string {
	base, index := fieldName, ""
	if i := strings.IndexByte(fieldName, '['); i > 0 {
		base, index = fieldName[:i], fieldName[i:]
	}
	if structType == nil {
		return fieldName
	}
	field, found := structType.FieldByName(base)
	if !found {
		return fieldName
	}

	for _, key := range []string{"json", "form"} {
		if tag := field.Tag.Get(key); tag != "" && tag != "-" {
			return strings.Split(tag, ",")[0] + index
		}
	}
	return fieldName
}

// FormatValidationErrors converts binding failures on model into per-field
// messages. Errors it does not recognize yield nil.
func FormatValidationErrors(err error, model any) []ValidationErrorResponse {
	if err == nil {
		return nil
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return []ValidationErrorResponse{{
			Field:   typeErr.Field,
			Message: fmt.Sprintf("Expected %s, got %s", typeErr.Type, typeErr.Value),
		}}
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil
	}

	var structType reflect.Type
	if model != nil {
		structType = reflect.TypeOf(model)
		if structType.Kind() == reflect.Pointer {
			structType = structType.Elem()
		}
	}

	out := make([]ValidationErrorResponse, 0, len(validationErrors))
	for _, fe := range validationErrors {
		out = append(out, ValidationErrorResponse{
			Field:   wireName(structType, fe.StructField()),
			Message: messageFor(fe),
		})
	}
	return out
}
