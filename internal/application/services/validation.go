package services

import (
	apperrors "github.com/zatekoja/smarthealthcare/pkg/errors"
)

// validate runs an entity check and converts its failure into a VALIDATION app error
func validate(check func() error) error {
	if err := check(); err != nil {
		return apperrors.NewValidationError(err.Error())
	}
	return nil
}
