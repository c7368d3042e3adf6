// Package form checks submitted HTML form fields against declarative rules.
//
// Rules live in `validate` struct tags and are evaluated in order, stopping at
// the first failing rule of a field; every field is always checked. Each form
// supplies a message table so violations surface as readable, per-field text.
package form

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// Errors maps a form field name to its violation message.
type Errors map[string]string

func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+e[f])
	}
	return "invalid form: " + strings.Join(parts, "; ")
}

// Messages is a field name → rule tag → message table.
type Messages map[string]map[string]string

// Form is a tagged struct that knows how to phrase its own violations.
type Form interface {
	Messages() Messages
}

type Validator struct {
	validate *validator.Validate
}

// New builds a Validator that reports fields by their `form` tag name.
func New() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	mustRegister(v, "notblank", validators.NotBlank)
	mustRegister(v, "maxbytes", maxBytes)
	return &Validator{validate: v}
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("form: register %q: %v", tag, err))
	}
}

// maxBytes limits the encoded length of a string field. max counts runes,
// which is not enough for inputs with a byte budget such as bcrypt's 72.
func maxBytes(fl validator.FieldLevel) bool {
	limit, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return len(fl.Field().String()) <= limit
}

// Validate returns nil when f satisfies every rule, otherwise one message per
// offending field.
func (v *Validator) Validate(f Form) Errors {
	err := v.validate.Struct(f)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		// only reachable with a non-struct Form, which is a programming error
		panic(fmt.Sprintf("form: validate %T: %v", f, err))
	}

	msgs := f.Messages()
	out := make(Errors, len(verrs))
	for _, fe := range verrs {
		field := fe.Field()
		if _, seen := out[field]; seen {
			continue
		}
		if m, ok := msgs[field][fe.Tag()]; ok {
			out[field] = m
			continue
		}
		out[field] = defaultMessage(fe)
	}
	return out
}

func defaultMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return "This field is required."
	case "min":
		return fmt.Sprintf("Field must be at least %s characters long.", fe.Param())
	case "max":
		return fmt.Sprintf("Field cannot be longer than %s characters.", fe.Param())
	case "maxbytes":
		return fmt.Sprintf("Field cannot be longer than %s bytes.", fe.Param())
	case "email":
		return "Invalid email address."
	case "eqfield":
		return fmt.Sprintf("Field must be equal to %s.", strings.ToLower(fe.Param()))
	default:
		return "Invalid value."
	}
}
