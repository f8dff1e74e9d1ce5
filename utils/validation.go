package utils

import (
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// PhoneNumberPattern accepts up to 15 digits with an optional leading '+'.
var PhoneNumberPattern = regexp.MustCompile(`^\+?1?\d{9,15}$`)

// DayCodes lists the accepted weekday codes in calendar order.
var DayCodes = []string{"mon", "tue", "wed", "thu", "fri", "sat", "sun"}

// FieldErrors maps a form field name to its error messages.
type FieldErrors map[string][]string

func (f FieldErrors) Add(field, message string) {
	f[field] = append(f[field], message)
}

// Merge copies every message of other into f.
func (f FieldErrors) Merge(other FieldErrors) {
	for field, msgs := range other {
		f[field] = append(f[field], msgs...)
	}
}

func (f FieldErrors) Empty() bool {
	return len(f) == 0
}

func (f FieldErrors) Error() string {
	fields := make([]string, 0, len(f))
	for name := range f {
		fields = append(fields, name)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, name := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", name, strings.Join(f[name], "; ")))
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// IsDayCode reports whether s is one of DayCodes.
func IsDayCode(s string) bool {
	for _, d := range DayCodes {
		if d == s {
			return true
		}
	}
	return false
}

func validatePhone(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	return s == "" || PhoneNumberPattern.MatchString(s)
}

func validateWeekday(fl validator.FieldLevel) bool {
	return IsDayCode(strings.ToLower(fl.Field().String()))
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// RegisterValidators installs the custom tags on a validator instance.
func RegisterValidators(v *validator.Validate) error {
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("phone", validatePhone); err != nil {
		return fmt.Errorf("register phone validator: %w", err)
	}
	if err := v.RegisterValidation("weekday", validateWeekday); err != nil {
		return fmt.Errorf("register weekday validator: %w", err)
	}
	return nil
}

// Validator returns the shared service-level validator.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		if err := RegisterValidators(validate); err != nil {
			panic(err)
		}
	})
	return validate
}

// RegisterGinValidators makes the custom tags usable in gin `binding` tags.
func RegisterGinValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected gin validator engine")
	}
	return RegisterValidators(v)
}

// ToFieldErrors converts validator errors into FieldErrors keyed by the
// json field name.
func ToFieldErrors(err error) FieldErrors {
	out := FieldErrors{}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		out.Add("__all__", err.Error())
		return out
	}
	for _, fe := range verrs {
		out.Add(jsonName(fe.Field()), validationMessage(fe))
	}
	return out
}

func jsonName(field string) string {
	if field == "" {
		return field
	}
	return strings.ToLower(field[:1]) + field[1:]
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "phone":
		return "Phone number must be entered in the format: '+999999999'. Up to 15 digits allowed."
	case "weekday":
		return fmt.Sprintf("%q is not a valid day.", fe.Value())
	case "min":
		return fmt.Sprintf("Ensure this value is at least %s.", fe.Param())
	case "max":
		return fmt.Sprintf("Ensure this value has at most %s characters.", fe.Param())
	case "email":
		return "Enter a valid email address."
	case "oneof":
		return fmt.Sprintf("Select one of: %s.", fe.Param())
	default:
		return fmt.Sprintf("Failed on the %q rule.", fe.Tag())
	}
}
