package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var ErrInvalid = errors.New("invalid request")

// Validator satisfies fiber.StructValidator so that c.Bind().Body validates
// request DTOs after decoding.
type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("agerange", validateAgeRange)
	return &Validator{v: v}
}

func (v *Validator) Validate(out any) error {
	err := v.v.Struct(out)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describe(fe))
	}
	return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(msgs, "; "))
}

// validateAgeRange accepts an empty range or a [min, max] pair with
// 0 <= min <= max.
func validateAgeRange(fl validator.FieldLevel) bool {
	f := fl.Field()
	if f.Kind() != reflect.Array && f.Kind() != reflect.Slice {
		return false
	}
	if f.Len() == 0 {
		return true
	}
	if f.Len() != 2 {
		return false
	}
	lo, hi := f.Index(0).Int(), f.Index(1).Int()
	if lo == 0 && hi == 0 {
		return true
	}
	return lo >= 0 && lo <= hi
}

func describe(fe validator.FieldError) string {
	field := fe.Namespace()
	if i := strings.Index(field, "."); i >= 0 {
		field = field[i+1:]
	}
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "url":
		return field + " must be a valid URL"
	case "min":
		return field + " must be at least " + fe.Param()
	case "max":
		return field + " must be at most " + fe.Param()
	case "agerange":
		return field + " must be [min, max] with min <= max"
	case "datetime":
		return field + " must be a date in " + fe.Param() + " format"
	default:
		return field + " is invalid"
	}
}
