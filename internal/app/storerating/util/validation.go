package util

import (
	"errors"
	"regexp"
	"unicode/utf8"
)

// Ошибки валидации полей, возвращаются пользователю как есть
var (
	ErrInvalidName     = errors.New("name must be between 5 and 20 characters")
	ErrInvalidAddress  = errors.New("address must not exceed 400 characters")
	ErrInvalidPassword = errors.New("password must be between 8 and 16 characters and include at least one uppercase letter and one special character")
	ErrInvalidEmail    = errors.New("please provide a valid email address")
	ErrInvalidRating   = errors.New("rating must be a number between 1 and 5")
)

var (
	emailRegex       = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	upperCaseRegex   = regexp.MustCompile(`[A-Z]`)
	specialCharRegex = regexp.MustCompile(`[!@#$%^&*()_+\-=\[\]{};':"\\|,.<>\/?]`)
)

// ValidateName проверяет длину имени (5-20 символов).
// Длины считаем в рунах, как и теги validator в DTO — иначе
// не-ASCII имена проходили бы одну проверку и падали на другой.
func ValidateName(name string) error {
	length := utf8.RuneCountInString(name)
	if length < 5 || length > 20 {
		return ErrInvalidName
	}
	return nil
}

// ValidateAddress проверяет длину адреса (не более 400 символов)
func ValidateAddress(address string) error {
	if address == "" || utf8.RuneCountInString(address) > 400 {
		return ErrInvalidAddress
	}
	return nil
}

// ValidatePassword проверяет политику пароля:
// 8-16 символов, минимум одна заглавная буква и один спецсимвол.
// Требования к составу не выражаются тегами validator, поэтому проверяем здесь.
func ValidatePassword(password string) error {
	length := utf8.RuneCountInString(password)
	if length < 8 || length > 16 {
		return ErrInvalidPassword
	}
	if !upperCaseRegex.MatchString(password) || !specialCharRegex.MatchString(password) {
		return ErrInvalidPassword
	}
	return nil
}

// ValidateEmail проверяет синтаксис email
func ValidateEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return ErrInvalidEmail
	}
	return nil
}

// ValidateRating проверяет, что оценка целая и в диапазоне [1,5]
func ValidateRating(rating int) error {
	if rating < 1 || rating > 5 {
		return ErrInvalidRating
	}
	return nil
}
