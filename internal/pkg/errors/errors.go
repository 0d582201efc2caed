package errors

import "errors"

// Общие ошибки приложения
var (
	// ErrNotFound используется, когда запись или ресурс не найдены.
	ErrNotFound = errors.New("record not found")

	// ErrForbidden используется, когда действие запрещено (например, выключенная фича).
	ErrForbidden = errors.New("forbidden")

	// ErrValidation используется для ошибок валидации входных данных.
	ErrValidation = errors.New("validation failed")

	// ErrConflict используется для конфликтов состояния (например, атака уже побеждённого босса).
	ErrConflict = errors.New("resource state conflict")

	// ErrUnavailable используется, когда хранилище недоступно и атомарный шаг невозможен.
	ErrUnavailable = errors.New("storage unavailable")
)
