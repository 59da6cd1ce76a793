// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/danielhkuo/fitlog/calendar"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// datekey accepts canonical YYYY-MM-DD strings only
	_ = v.RegisterValidation("datekey", func(fl validator.FieldLevel) bool {
		return calendar.ValidKey(fl.Field().String())
	})
	_ = v.RegisterValidation("routinetype", func(fl validator.FieldLevel) bool {
		return RoutineType(fl.Field().String()).Valid()
	})

	return v
}

// Validate runs the struct tag rules of a request type.
func Validate(req interface{}) error {
	return validate.Struct(req)
}
