package entities

import (
	apperrors "github.com/havenlink/communitymatch/pkg/errors"
)

func errInvalid(message string) error {
	return apperrors.NewValidationError(message)
}
