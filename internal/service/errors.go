package service

import "errors"

// Определяем кастомные ошибки для сервисов
var (
	// ErrFeatureDisabled — боевая система выключена рубильником в настройках.
	ErrFeatureDisabled = errors.New("boss battles are disabled")
	// ErrResolverFailure — симулятор матча завершился ошибкой.
	// Попытка не перезапускается: повторная симуляция дала бы другой исход.
	ErrResolverFailure = errors.New("match simulation failed")
)
