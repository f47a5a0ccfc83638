package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidInput возвращается при незаполненных обязательных полях.
var ErrInvalidInput = errors.New("заполнены не все обязательные поля")

// ErrPlanNotFound возвращается, если план не найден в хранилище.
var ErrPlanNotFound = errors.New("план не найден")

// ErrDayNotFound возвращается, если в плане нет дня с таким номером.
var ErrDayNotFound = errors.New("день с таким номером отсутствует в плане")

// NetworkError транспортный сбой при обращении к внешнему сервису.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("сетевая ошибка: %v", e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// AIServiceError ошибка AI-сервиса: не-2xx ответ, отсутствие ключа,
// нераспарсиваемый или структурно некорректный вывод модели.
type AIServiceError struct {
	Message string
}

func (e *AIServiceError) Error() string { return e.Message }

// NewAIServiceError создаёт ошибку AI-сервиса с форматированием.
func NewAIServiceError(format string, args ...any) *AIServiceError {
	return &AIServiceError{Message: fmt.Sprintf(format, args...)}
}

// StorageError ошибка персистентности.
type StorageError struct {
	Message string
	Err     error
}

func (e *StorageError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *StorageError) Unwrap() error { return e.Err }
