// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package apperror converts validation failures into field level messages.
package apperror

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	errRequired       = errors.New("is required")
	errInvalidDate    = errors.New("must be a date formatted as YYYY-MM-DD")
	errInvalidType    = errors.New("must be one of athletics, running, gym, steps, football_match, yoyo_test")
	errMustBeAfter    = errors.New("must be after the start")
	errOutOfRange     = errors.New("is out of range")
	errNotAllowed     = errors.New("is not an allowed value")
	errMustBePositive = errors.New("must be greater than zero")
	errSelectOne      = errors.New("needs at least one entry")
)

var tagErrors = map[string]error{
	"required":    errRequired,
	"datekey":     errInvalidDate,
	"routinetype": errInvalidType,
	"gtfield":     errMustBeAfter,
	"gte":         errOutOfRange,
	"lte":         errOutOfRange,
	"max":         errOutOfRange,
	"oneof":       errNotAllowed,
	"gt":          errMustBePositive,
}

// ValidationDetails maps each failing field, by its JSON path, to a short
// message. Errors that are not validator errors produce an empty map.
func ValidationDetails(err error) map[string]string {
	details := make(map[string]string)

	var validationErr validator.ValidationErrors
	if !errors.As(err, &validationErr) {
		return details
	}

	for _, e := range validationErr {
		field := jsonPath(e)
		msg := fmt.Sprintf("%s is invalid", e.Field())
		if e.Tag() == "min" && e.Kind() == reflect.Slice {
			msg = errSelectOne.Error()
		} else if v, ok := tagErrors[e.Tag()]; ok {
			msg = v.Error()
		}
		details[field] = msg
	}
	return details
}

// jsonPath drops the top level struct name from the namespace so that
// "CreateRoutineRequest.gym_data.exercises[0].name" becomes
// "gym_data.exercises[0].name".
func jsonPath(e validator.FieldError) string {
	_, path, found := strings.Cut(e.Namespace(), ".")
	if !found {
		return e.Namespace()
	}
	// embedded payload structs add their type name to the namespace
	return strings.TrimPrefix(path, "RoutineData.")
}
