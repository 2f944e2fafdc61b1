// File: internal/domain/errors/errors.go
package errors

import (
	"errors"
	"fmt"
)

// Определение типов ошибок
var (
	// Общие ошибки
	ErrInternal       = errors.New("internal server error")
	ErrInvalidRequest = errors.New("invalid request")
	ErrNotFound       = errors.New("resource not found")

	// Ошибки аутентификации
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid token")
	ErrExpiredToken       = errors.New("token has expired")
	ErrTokenNotFound      = errors.New("token not found")

	// Ошибки пользователей
	ErrUserNotFound  = errors.New("user not found")
	ErrUserInactive  = errors.New("user account is inactive")
	ErrEmailExists   = errors.New("email is already taken")

	// Ошибки привилегированных операций
	ErrOperationNotAllowed = errors.New("operation not allowed")
)

// AppError несет сообщение для пользователя поверх доменной ошибки.
type AppError struct {
	Err     error
	Message string
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// WithMessage оборачивает доменную ошибку в AppError с заданным сообщением.
func WithMessage(err error, message string) *AppError {
	return &AppError{Err: err, Message: message}
}

// Message возвращает сообщение для пользователя, если оно задано, иначе текст
// самой ошибки.
func Message(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}

// IsUnauthorized проверяет, относится ли ошибка к классу 401.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrInvalidCredentials) ||
		errors.Is(err, ErrInvalidToken) ||
		errors.Is(err, ErrExpiredToken) ||
		errors.Is(err, ErrTokenNotFound) ||
		errors.Is(err, ErrUserInactive)
}

// IsNotFound проверяет, относится ли ошибка к классу 404.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, ErrUserNotFound)
}

// IsConflict проверяет, относится ли ошибка к классу 409.
func IsConflict(err error) bool {
	return errors.Is(err, ErrEmailExists)
}
