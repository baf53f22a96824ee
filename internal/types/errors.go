package types

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound      = errors.New("client not found")
	ErrInvalidAction = errors.New("invalid option")
	ErrMissingFields = errors.New("required fields missing")
	ErrInvalidID     = errors.New("invalid client id")
	ErrInvalidFilter = errors.New("invalid filter expression")

	ErrInvalidBackend  = errors.New("invalid backend")
	ErrDataStoreAccess = errors.New("data store read/write error")
)

func Err(typedError error, innerErr error, msgTemplate string, args ...any) error {
	if msgTemplate == "" {
		return errors.Join(typedError, innerErr)
	} else {
		return errors.Join(typedError, innerErr, fmt.Errorf(msgTemplate, args...))
	}
}
