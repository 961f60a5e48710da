package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator wraps the validator instance
type Validator struct {
	validate *validator.Validate
}

// Global validator instance
var validate *Validator

// InitValidator initializes the global validator
func InitValidator() {
	v := validator.New()

	_ = v.RegisterValidation("equipcategory", validateEquipmentCategory)

	validate = &Validator{validate: v}
}

// GetValidator returns the global validator instance
func GetValidator() *Validator {
	if validate == nil {
		InitValidator()
	}
	return validate
}

// ValidateStruct validates a struct using tags
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.validate.Struct(s)
}

// validateEquipmentCategory accepts the closed set of equipment slots.
func validateEquipmentCategory(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "rod", "accessory":
		return true
	}
	return false
}

// FormatValidationError formats validation errors into a field map so
// internal struct names do not leak into responses.
func FormatValidationError(err error) map[string]string {
	if err == nil {
		return nil
	}

	errs := make(map[string]string)
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		errs["request"] = ErrMsgInvalidRequestSummary
		return errs
	}

	for _, fieldErr := range validationErrs {
		field := strings.ToLower(fieldErr.Field())
		switch fieldErr.Tag() {
		case "required":
			errs[field] = "is required"
		case "min":
			errs[field] = fmt.Sprintf("must be at least %s", fieldErr.Param())
		case "max":
			errs[field] = fmt.Sprintf("must be at most %s", fieldErr.Param())
		case "uuid":
			errs[field] = "must be a valid UUID"
		case "equipcategory":
			errs[field] = "must be one of: rod, accessory"
		default:
			errs[field] = fmt.Sprintf("failed %s validation", fieldErr.Tag())
		}
	}
	return errs
}
