package api

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	pErrors "github.com/zhubert/codechat/internal/errors"
)

// MaxNameLength matches the backend's limit on conversation names.
const MaxNameLength = 100

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

type renameInput struct {
	ID   string `validate:"required"`
	Name string `validate:"required,max=100"`
}

type idInput struct {
	ID string `validate:"required"`
}

type createInput struct {
	Name string `validate:"max=100"`
}

// validateRequest checks payload against its struct tags and reports every
// failing field in one KindValidation error.
func validateRequest(op pErrors.Op, payload interface{}) error {
	err := getValidator().Struct(payload)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return pErrors.E(op, pErrors.KindValidation, err)
	}

	msgs := make([]string, 0, len(verrs))
	seen := make(map[string]bool)
	for _, fe := range verrs {
		msg := fieldMessage(fe)
		if !seen[msg] {
			seen[msg] = true
			msgs = append(msgs, msg)
		}
	}
	return pErrors.ValidationError(op, strings.Join(msgs, "; "))
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", strings.ToLower(fe.Field()))
	case "required_without":
		return "Please provide a prompt or attach a file."
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", strings.ToLower(fe.Field()), fe.Param())
	default:
		return fmt.Sprintf("Field '%s' failed on the '%s' tag", fe.Field(), fe.Tag())
	}
}
