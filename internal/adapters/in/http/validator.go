package http

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// StructValidator adapts validator/v10 to echo.Validator.
// Field names in errors are the JSON names.
type StructValidator struct {
	validate *validator.Validate
}

func NewStructValidator() *StructValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &StructValidator{validate: v}
}

func (v *StructValidator) Validate(i any) error {
	return v.validate.Struct(i)
}
