package utils

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/casebridge-io/casebridge/pkg/errs"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

func init() {
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})
}

func Validate(v interface{}) error {
	err := validate.Struct(v)
	if err != nil {
		fields := make(map[string]interface{})
		for _, e := range err.(validator.ValidationErrors) {
			fields[e.Field()] = formatError(e)
		}
		return errs.NewValidationFieldsError("validation failed", fields)
	}
	return nil
}

func formatError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "required field missing"
	case "oneof":
		return fmt.Sprintf("invalid value: %v", fe.Value())
	case "url":
		return fmt.Sprintf("invalid url: %v", fe.Value())
	case "gt":
		return fmt.Sprintf("value must be > %s", fe.Param())
	case "gte":
		return fmt.Sprintf("value must be >= %s", fe.Param())
	case "lte":
		return fmt.Sprintf("value must be <= %s", fe.Param())
	}
	return fe.Error()
}
