// Package validation checks request data against declarative field schemas.
//
// A Schema maps field names to validator rule strings
// (github.com/go-playground/validator tags). Evaluating it yields every
// failing field at once instead of stopping at the first problem.
package validation

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/campusmart/marketplace/internal/core/domain"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type Schema map[string]string

type FieldError struct {
	Field   string
	Message string
}

// Errors is returned when one or more fields fail their rules. It matches
// domain.ErrInvalidInput with errors.Is.
type Errors []FieldError

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for _, f := range e {
		parts = append(parts, f.Field+" "+f.Message)
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

func (e Errors) Is(target error) bool {
	return target == domain.ErrInvalidInput
}

// Validate evaluates every rule of the schema against data. Fields missing
// from data are validated as nil. The result is sorted by field name and is
// nil when all fields pass.
func (s Schema) Validate(data map[string]any) error {
	rules := make(map[string]any, len(s))
	values := make(map[string]any, len(s))
	for field, rule := range s {
		rules[field] = rule
		values[field] = data[field]
	}

	failed := validate.ValidateMap(values, rules)
	if len(failed) == 0 {
		return nil
	}

	result := make(Errors, 0, len(failed))
	for field, err := range failed {
		result = append(result, FieldError{Field: field, Message: describe(err)})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Field < result[j].Field })

	return result
}

func describe(err any) string {
	e, ok := err.(error)
	if !ok {
		return "is invalid"
	}
	var verrs validator.ValidationErrors
	if !errors.As(e, &verrs) || len(verrs) == 0 {
		return "is invalid"
	}

	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "url":
		return "must be a valid URL"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "lt":
		return fmt.Sprintf("must be less than %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "eqfield", "eq":
		return "does not match"
	default:
		return "is invalid"
	}
}
