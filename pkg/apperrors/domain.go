package apperrors

import (
	"net/http"
)

/*
Фабрики и предопределенные переменные для доменных ошибок движка матчинга.
Репозиторные ошибки (gorm.ErrRecordNotFound и sentinel-ошибки пакетов
repositories) заворачиваются здесь в AppError с правильным HTTP-кодом.
*/

// =========================================================================
// Фабричные ФУНКЦИИ (оборачивание ошибок нижних слоев)
// =========================================================================

// ErrNotFound - фабрика для ошибки "не найдено" (404)
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// ErrBrandNotFound - бренд не найден в profile repository
func ErrBrandNotFound(err error, brandID string) *AppError {
	return Wrap(err, CodeBrandNotFound, "matching", "Brand profile not found", http.StatusNotFound).
		WithDetails(map[string]string{"brand_id": brandID})
}

// ErrCreatorNotFound - креатор не найден в profile repository
func ErrCreatorNotFound(err error, creatorID string) *AppError {
	return Wrap(err, CodeCreatorNotFound, "matching", "Creator profile not found", http.StatusNotFound).
		WithDetails(map[string]string{"creator_id": creatorID})
}

// ErrDatabase - общая ошибка БД (500)
func ErrDatabase(err error, domain string) *AppError {
	return Wrap(err, CodeDatabaseError, domain, "Database operation failed", http.StatusInternalServerError)
}

// =========================================================================
// Фабричные ФУНКЦИИ (создание новых ошибок)
// =========================================================================

// ErrInvalidCriteria - критерии матчинга не прошли доменную проверку (400)
func ErrInvalidCriteria(message string) *AppError {
	return New(CodeInvalidCriteria, "matching", message, http.StatusBadRequest)
}

// ErrInvalidBudget - отрицательный или нулевой бюджет оптимизации (400)
func ErrInvalidBudget(message string) *AppError {
	return New(CodeInvalidBudget, "portfolio", message, http.StatusBadRequest)
}

// ErrInvalidWeights - веса скоринга не проходят проверку суммы (400)
func ErrInvalidWeights(message string) *AppError {
	return New(CodeInvalidWeights, "matching", message, http.StatusBadRequest)
}

// =========================================================================
// Предопределенные ПЕРЕМЕННЫЕ (частые, статичные ошибки)
// =========================================================================

// ErrNoMatch - getMatch с пустым пулом кандидатов: это явная ошибка,
// а не пустой результат (контракт движка)
var ErrNoMatch = New(
	CodeMatchNotFound,
	"matching",
	"No match found for the given brand and creator",
	http.StatusNotFound,
)

// ErrModelNotTrained - запрос рекомендаций до первичной тренировки CF-модели
var ErrModelNotTrained = New(
	CodeModelNotTrained,
	"matching",
	"Collaborative model is not trained yet",
	http.StatusServiceUnavailable,
)

// ErrInsufficientPermissions - не-админ пытается выполнить админ-действие
var ErrInsufficientPermissions = New(
	CodeForbidden,
	"auth",
	"Insufficient permissions",
	http.StatusForbidden,
)
