package collection

import (
	"errors"
	"fmt"
	"reflect"
	"sort"

	"github.com/go-playground/validator/v10"
)

// amountTag accepts JSON numbers only. gt on a string compares its length.
const amountTag = "amount"

func newValidate() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation(amountTag, isAmount); err != nil {
		panic(fmt.Sprintf("register %s validation: %v", amountTag, err))
	}
	return v
}

func isAmount(fl validator.FieldLevel) bool {
	switch fl.Field().Kind() {
	case reflect.Float32, reflect.Float64,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	default:
		return false
	}
}

// check applies the definition rules to fields. With partial set only the
// supplied fields are checked, as an update does.
func (s *Service) check(def Definition, fields map[string]any, partial bool) error {
	names := make([]string, 0, len(def.Rules))
	for field := range def.Rules {
		if _, ok := fields[field]; partial && !ok {
			continue
		}
		names = append(names, field)
	}
	sort.Strings(names)

	verr := &ValidationError{}
	for _, field := range names {
		rule := def.Rules[field]
		if fe := s.checkField(field, rule, fields[field]); fe != nil {
			verr.Fields = append(verr.Fields, *fe)
		}
	}
	if len(verr.Fields) > 0 {
		return verr
	}
	return nil
}

func (s *Service) checkField(field, rule string, value any) (fe *FieldError) {
	// validator panics when a tag does not apply to the value's type
	defer func() {
		if r := recover(); r != nil {
			fe = &FieldError{Field: field, Rule: rule, Message: "has an unexpected type"}
		}
	}()

	err := s.validate.Var(value, rule)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &FieldError{Field: field, Rule: rule, Message: err.Error()}
	}
	tag, param := verrs[0].Tag(), verrs[0].Param()
	return &FieldError{Field: field, Rule: tag, Message: describe(tag, param)}
}

func describe(tag, param string) string {
	switch tag {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case amountTag:
		return "must be a number"
	case "gt":
		return fmt.Sprintf("must be greater than %s", param)
	case "oneof":
		return fmt.Sprintf("must be one of: %s", param)
	case "datetime":
		return fmt.Sprintf("must be a date in the %s layout", param)
	case "min":
		return fmt.Sprintf("must be at least %s", param)
	case "max":
		return fmt.Sprintf("must be at most %s characters", param)
	default:
		return fmt.Sprintf("failed the %q rule", tag)
	}
}
