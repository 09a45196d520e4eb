package api

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

func init() {
	// Report fields by their wire names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// MissingFieldError names the first empty field of a ProvisionRequest.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("Missing value for: %s", e.Field)
}

// ValidateProvisionRequest checks that every field of req is set.
// Fields are checked in declaration order and the first empty one is reported
// as *MissingFieldError.
func ValidateProvisionRequest(req *ProvisionRequest) error {
	if req == nil {
		return errors.New("nil provision request")
	}
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
		return &MissingFieldError{Field: validationErrs[0].Field()}
	}
	return fmt.Errorf("could not validate provision request: %w", err)
}
