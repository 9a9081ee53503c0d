package resource

import (
	"errors"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if label := f.Tag.Get("label"); label != "" {
			return label
		}
		if name := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]; name != "" && name != "-" {
			return name
		}
		return f.Name
	})
	return v
}

func validationFailure(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	ve := &ValidationError{}
	for _, fe := range fieldErrs {
		switch fe.Tag() {
		case "required":
			ve.Add(fe.Field(), "is required")
		case "oneof":
			ve.Add(fe.Field(), "must be one of "+fe.Param())
		default:
			ve.Add(fe.Field(), "is invalid")
		}
	}
	return ve
}

// Coercer converts form strings into typed payload values, collecting
// failures instead of passing NaN-like values to the backend.
type Coercer struct {
	errs ValidationError
}

// Float parses a decimal number.
func (c *Coercer) Float(field, raw string) float64 {
	raw = strings.TrimSpace(raw)
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		c.errs.Add(field, "must be a number")
		return 0
	}
	return v
}

// Int parses a whole number.
func (c *Coercer) Int(field, raw string) int {
	raw = strings.TrimSpace(raw)
	v, err := strconv.Atoi(raw)
	if err != nil {
		c.errs.Add(field, "must be a whole number")
		return 0
	}
	return v
}

// Err returns the collected failures, or nil.
func (c *Coercer) Err() error {
	if c.errs.Empty() {
		return nil
	}
	out := c.errs
	return &out
}
