// Package impl contains the store implementations backing the usecase
// interfaces.
package impl

import (
	domainerrors "canopus/internal/domain/errors"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// validateInput checks an input struct's validate tags. Failures become
// the validation error of the taxonomy before any request is issued.
func validateInput(input any) error {
	if err := validate.Struct(input); err != nil {
		return domainerrors.ErrValidation.WithDetails(err.Error())
	}

	return nil
}
