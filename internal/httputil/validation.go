package httputil

import (
	"fmt"
	"strings"

	"github.com/Tasheen2002/Expense-Tracker-Application-sub002/pkg/budget"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// RegisterValidations registers the custom binding rules with gin's validator.
//
//	iso4217      a currency the budget module supports
//	period_type  MONTHLY, QUARTERLY, YEARLY or CUSTOM, case-insensitive
//	alert_level  INFO, WARNING, CRITICAL or EXCEEDED, case-insensitive
func RegisterValidations() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}

	rules := map[string]validator.Func{
		"iso4217":     validateCurrency,
		"period_type": validatePeriodType,
		"alert_level": validateAlertLevel,
	}

	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("registering %s: %w", tag, err)
		}
	}

	return nil
}

func validateCurrency(fl validator.FieldLevel) bool {
	_, err := budget.NormalizeCurrency(fl.Field().String())
	return err == nil
}

func validatePeriodType(fl validator.FieldLevel) bool {
	_, err := budget.ParsePeriodType(fl.Field().String())
	return err == nil
}

func validateAlertLevel(fl validator.FieldLevel) bool {
	_, err := budget.ParseAlertLevel(fl.Field().String())
	return err == nil
}

// ValidationErrorToText returns a human readable message for a failed rule.
func ValidationErrorToText(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", e.Field())
	case "max":
		return fmt.Sprintf("%s cannot be longer than %s", e.Field(), e.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s", e.Field(), e.Param())
	case "iso4217":
		return fmt.Sprintf("%s must be a supported ISO 4217 currency code", e.Field())
	case "period_type":
		return fmt.Sprintf("%s must be one of MONTHLY, QUARTERLY, YEARLY or CUSTOM", e.Field())
	case "alert_level":
		return fmt.Sprintf("%s must be one of INFO, WARNING, CRITICAL or EXCEEDED", e.Field())
	}
	return fmt.Sprintf("%s is not valid", e.Field())
}

func newValidationError(errs validator.ValidationErrors) *ValidationError {
	fields := make(map[string]string, len(errs))
	for _, e := range errs {
		fields[e.Field()] = ValidationErrorToText(e)
	}

	return &ValidationError{Fields: fields}
}

// joinFields joins the messages sorted by field name.
func joinFields(fields map[string]string) string {
	keys := maps.Keys(fields)
	slices.Sort(keys)

	messages := make([]string, 0, len(keys))
	for _, k := range keys {
		messages = append(messages, fields[k])
	}

	return strings.Join(messages, "; ")
}
