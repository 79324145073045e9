package util

import "errors"

var (
	ErrSurveyNotFound   = errors.New("Survey not found")
	ErrResponseNotFound = errors.New("Response not found")
	ErrEmailRegistered  = errors.New("email already registered")
	ErrInvalidLogin     = errors.New("invalid credentials")
)

// ValidationError 业务校验失败，映射为 400
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(message string) error {
	return &ValidationError{Message: message}
}

// IsValidation 判断错误是否为业务校验失败
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
