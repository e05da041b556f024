package auth

import (
	"errors"
	"fmt"
)

// ErrorType классификация ошибок входа
type ErrorType string

const (
	// CredentialsSignin неверный логин или пароль
	CredentialsSignin ErrorType = "CredentialsSignin"
	// CallbackRouteError провайдер не смог проверить учетные данные (например, недоступна база)
	CallbackRouteError ErrorType = "CallbackRouteError"
	// Configuration провайдер не настроен или запрошен неизвестный провайдер
	Configuration ErrorType = "Configuration"
	// AccessDenied пользователю запрещен вход
	AccessDenied ErrorType = "AccessDenied"
)

// ErrInvalidCredentials возвращается провайдером, когда учетные данные не подходят
var ErrInvalidCredentials = errors.New("invalid credentials")

// Error ошибка входа, классифицированная провайдером
type Error struct {
	Type ErrorType
	Err  error
}

// Error реализует интерфейс error
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("auth error [%s]: %v", e.Type, e.Err)
	}
	return fmt.Sprintf("auth error [%s]", e.Type)
}

// Unwrap возвращает оригинальную ошибку
func (e *Error) Unwrap() error {
	return e.Err
}

// NewError создает классифицированную ошибку входа
func NewError(t ErrorType, err error) *Error {
	return &Error{Type: t, Err: err}
}

// AsError извлекает классифицированную ошибку входа из цепочки
func AsError(err error) (*Error, bool) {
	var authErr *Error
	if errors.As(err, &authErr) {
		return authErr, true
	}
	return nil, false
}
