package serverutils

import (
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

var tagPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

func newValidator() *validator.Validate {
	v := validator.New()
	// Tags may only contain letters, numbers, hyphens, and underscores.
	_ = v.RegisterValidation("tagformat", func(fl validator.FieldLevel) bool {
		return tagPattern.MatchString(fl.Field().String())
	})
	return v
}

// ValidateRequest validates a request struct and returns an AppError carrying
// one message per failed field.
func ValidateRequest(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return NewValidationError(err.Error())
	}

	details := make([]string, 0, len(errs))
	for _, fe := range errs {
		details = append(details, fieldMessage(fe))
	}
	return NewValidationError(details...)
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return "Please provide a valid email address"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters long", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must not exceed %s", fe.Field(), maxUnit(fe))
	case "tagformat":
		return "Tags can only contain letters, numbers, hyphens, and underscores"
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}

func maxUnit(fe validator.FieldError) string {
	if fe.Kind().String() == "slice" {
		return fe.Param() + " items"
	}
	return fe.Param() + " characters"
}
