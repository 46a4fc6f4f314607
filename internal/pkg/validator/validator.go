// Package validator wraps go-playground struct validation behind a
// single call returning field-to-tag failures, the shape handlers
// forward as error details.
package validator

import (
	"github.com/go-playground/validator/v10"
)

var v = validator.New()

// Validate checks the struct's validate tags. A nil result means the
// payload is acceptable.
func Validate(s interface{}) map[string]string {
	err := v.Struct(s)
	if err == nil {
		return nil
	}

	fields := make(map[string]string)
	for _, fe := range err.(validator.ValidationErrors) {
		fields[fe.Field()] = fe.Tag()
	}
	return fields
}
