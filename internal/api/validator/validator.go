package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	playgroundvalidator "github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// ValidationErrors wraps the validator's ValidationErrors
type ValidationErrors []playgroundvalidator.FieldError

// CustomValidator wraps go-playground/validator
type CustomValidator struct {
	validator *playgroundvalidator.Validate
}

// NewValidator creates a new validator instance
func NewValidator() echo.Validator {
	v := playgroundvalidator.New()

	// Report field names from json tags
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// Register custom validations. A registration failure is a
	// programming error (empty or duplicate tag); failing at startup
	// beats a nil validator panicking on the first request.
	for tag, fn := range map[string]playgroundvalidator.Func{
		"property_type":   validatePropertyType,
		"property_status": validatePropertyStatus,
		"admin_role":      validateAdminRole,
	} {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(fmt.Sprintf("failed to register %s validation: %v", tag, err))
		}
	}

	return &CustomValidator{validator: v}
}

// Custom validation functions
func validatePropertyType(fl playgroundvalidator.FieldLevel) bool {
	t := fl.Field().String()
	return t == "apartment" || t == "house" || t == "farm"
}

func validatePropertyStatus(fl playgroundvalidator.FieldLevel) bool {
	status := fl.Field().String()
	return status == "available" || status == "sold"
}

func validateAdminRole(fl playgroundvalidator.FieldLevel) bool {
	role := fl.Field().String()
	return role == "admin" || role == "super_admin" || role == "editor" || role == "viewer"
}

// Validate implements echo.Validator interface
func (cv *CustomValidator) Validate(i interface{}) error {
	if err := cv.validator.Struct(i); err != nil {
		var validationErrors playgroundvalidator.ValidationErrors
		if errors.As(err, &validationErrors) {
			return ValidationErrors(validationErrors)
		}
		return err
	}
	return nil
}

// Error implements the error interface for ValidationErrors
func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return ""
	}
	var fields []string
	for _, err := range ve {
		fields = append(fields, err.Field())
	}
	return fmt.Sprintf("validation failed on fields: %s", strings.Join(fields, ", "))
}
