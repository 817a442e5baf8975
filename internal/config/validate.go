package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// specValidate checks the structural tags of MachineSpec. Field names in
// messages are the YAML keys.
var specValidate = newSpecValidator()

func newSpecValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateSpec reports the first tag violation in spec as a ParseError.
// Alphabet contents, slot counts and wirings are checked by Build.
func validateSpec(file string, spec *MachineSpec) error {
	err := specValidate.Struct(spec)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &ParseError{File: file, Message: err.Error()}
	}
	return &ParseError{File: file, Message: describeViolation(verrs[0])}
}

func describeViolation(fe validator.FieldError) string {
	// Namespace is "MachineSpec.rotors[1].kind"; drop the type name.
	_, field, _ := strings.Cut(fe.Namespace(), ".")
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "oneof":
		return fmt.Sprintf("%s: %q must be one of %s", field, fe.Value(), strings.ReplaceAll(fe.Param(), " ", ", "))
	case "excludesall":
		return fmt.Sprintf("%s: %q must not contain parentheses or %q", field, fe.Value(), SetupMarker)
	case "gte":
		return fmt.Sprintf("%s must be >= %s, got %v", field, fe.Param(), fe.Value())
	}
	return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
}
