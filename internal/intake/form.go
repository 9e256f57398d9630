package intake

import (
	"errors"
	"fmt"
)

// ErrUnknownField is returned for a field name the form does not have.
var ErrUnknownField = errors.New("unknown field")

// Form holds the current values with per-field touched and error state.
// Errors are only shown for touched fields so a fresh form is quiet.
type Form struct {
	values  FormValues
	touched map[Field]bool
	errors  FieldErrors
}

// NewForm creates a form holding the default values.
func NewForm() *Form {
	return &Form{
		values:  DefaultValues(),
		touched: make(map[Field]bool),
		errors:  make(FieldErrors),
	}
}

// Values returns a copy of the current values.
func (f *Form) Values() FormValues { return f.values }

// Value returns a single field's value.
func (f *Form) Value(name Field) string {
	v, _ := f.values.Get(name)
	return v
}

// SetField updates a value, marks it touched, and re-validates it.
func (f *Form) SetField(name Field, value string) error {
	values, ok := f.values.with(name, value)
	if !ok {
		return fmt.Errorf("set %q: %w", name, ErrUnknownField)
	}
	f.values = values
	f.touched[name] = true
	f.revalidate(name)
	return nil
}

// HandleBlur marks a field touched so its error, if any, becomes visible.
func (f *Form) HandleBlur(name Field) error {
	if _, ok := f.values.Get(name); !ok {
		return fmt.Errorf("blur %q: %w", name, ErrUnknownField)
	}
	f.touched[name] = true
	f.revalidate(name)
	return nil
}

func (f *Form) revalidate(name Field) {
	if msg := ValidateField(f.values, name); msg != "" {
		f.errors[name] = msg
	} else {
		delete(f.errors, name)
	}
}

// Validate runs the full validator, marks every field touched and records
// all errors. It returns nil when the form is valid.
func (f *Form) Validate() FieldErrors {
	errs := Validate(f.values)
	f.errors = make(FieldErrors, len(errs))
	for _, name := range Fields() {
		f.touched[name] = true
	}
	for name, msg := range errs {
		f.errors[name] = msg
	}
	return errs
}

// Touched reports whether the user has interacted with a field.
func (f *Form) Touched(name Field) bool { return f.touched[name] }

// Error returns the recorded error for a field regardless of touched state.
func (f *Form) Error(name Field) string { return f.errors[name] }

// VisibleError returns the field's error only once it has been touched.
func (f *Form) VisibleError(name Field) string {
	if !f.touched[name] {
		return ""
	}
	return f.errors[name]
}

// Errors returns a copy of all recorded errors.
func (f *Form) Errors() FieldErrors {
	out := make(FieldErrors, len(f.errors))
	for k, v := range f.errors {
		out[k] = v
	}
	return out
}
