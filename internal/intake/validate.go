package intake

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldErrors maps a field to the first constraint it violates.
type FieldErrors map[Field]string

// messages holds the user-facing text per field for a failed constraint.
var messages = map[Field]string{
	FieldActualState: "Current state is required",
	FieldEnvironment: "At least one environment is required",
	FieldIndustry:    "Industry is required",
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON name so errors line up with Field.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	return v
}

// Validate checks every constrained field. It returns nil when the values
// are valid.
func Validate(values FormValues) FieldErrors {
	err := validate.Struct(values)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		// Only reachable with a misconfigured validator.
		return FieldErrors{FieldActualState: err.Error()}
	}

	out := make(FieldErrors, len(verrs))
	for _, fe := range verrs {
		f := Field(fe.Field())
		if _, seen := out[f]; seen {
			continue
		}
		msg, ok := messages[f]
		if !ok {
			msg = fe.Error()
		}
		out[f] = msg
	}
	return out
}

// ValidateField returns the error for a single field, or "" if it is valid.
func ValidateField(values FormValues, f Field) string {
	return Validate(values)[f]
}
