package service

import (
	"errors"

	"storerating/internal/app/storerating/util"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailExists        = errors.New("email already exists")
	ErrIncorrectPassword  = errors.New("current password is incorrect")
	ErrInvalidOwner       = errors.New("invalid owner id or user is not a store owner")
	ErrInvalidRole        = errors.New("invalid role")
	ErrUserNotFound       = errors.New("user not found")
	ErrStoreNotFound      = errors.New("store not found")
	ErrNoStoreAssigned    = errors.New("no store found for this owner")
)

// IsValidationError сообщает, что ошибка вызвана нарушением ограничений полей
// и исправима пользователем (HTTP 400)
func IsValidationError(err error) bool {
	return errors.Is(err, util.ErrInvalidName) ||
		errors.Is(err, util.ErrInvalidAddress) ||
		errors.Is(err, util.ErrInvalidPassword) ||
		errors.Is(err, util.ErrInvalidEmail) ||
		errors.Is(err, util.ErrInvalidRating)
}
