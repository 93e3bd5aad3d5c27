// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/danielhkuo/quickly-survey/apperr"
)

const (
	MsgFinishBeforeStart = "finish must occur after start"
	MsgInvalidRequest    = "Invalid request"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report JSON field names so errors line up with the request body
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Struct checks the `validate` tags of a request struct and converts
// failures into a validation error keyed by JSON field name.
func Struct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperr.Internal("Validation failed", err)
	}

	message := MsgInvalidRequest
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = fieldMessage(fe)
		if fe.Tag() == "gtfield" && fe.Field() == "finish_date" {
			message = MsgFinishBeforeStart
		}
	}
	return apperr.ValidationFields(message, fields)
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "max":
		return fmt.Sprintf("Ensure this field has no more than %s characters.", fe.Param())
	case "min":
		return fmt.Sprintf("Ensure this field has at least %s characters.", fe.Param())
	case "oneof":
		return fmt.Sprintf("Must be one of: %s.", fe.Param())
	case "gtfield":
		if fe.Field() == "finish_date" {
			return MsgFinishBeforeStart
		}
		return "Must be greater than " + fe.Param() + "."
	}
	return "Invalid value."
}

// CheckWindow enforces finish > start. Updates use it against the stored
// start_date since the update view does not carry one.
func CheckWindow(start, finish time.Time) error {
	if !finish.After(start) {
		return apperr.ValidationFields(MsgFinishBeforeStart, map[string]string{
			"finish_date": MsgFinishBeforeStart,
		})
	}
	return nil
}
