package apperrors

// ErrorCode - тип для кодов ошибок
type ErrorCode string

// Общие, не-доменные коды ошибок
const (
	// Системные и неизвестные ошибки
	CodeInternalError        ErrorCode = "INTERNAL_ERROR"
	CodeDatabaseError        ErrorCode = "DATABASE_ERROR"
	CodeExternalServiceError ErrorCode = "EXTERNAL_SERVICE_ERROR"
	CodeUnknownError         ErrorCode = "UNKNOWN_ERROR"

	// Общие ошибки бизнес-логики (используются фабриками)
	CodeNotFound         ErrorCode = "NOT_FOUND"
	CodeAlreadyExists    ErrorCode = "ALREADY_EXISTS"
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	CodeConflict         ErrorCode = "CONFLICT"
	CodeInvalidOperation ErrorCode = "INVALID_OPERATION"

	// Аутентификация и Авторизация (они сквозные)
	CodeUnauthorized ErrorCode = "UNAUTHORIZED"
	CodeForbidden    ErrorCode = "FORBIDDEN"
	CodeInvalidToken ErrorCode = "INVALID_TOKEN"
	CodeTokenExpired ErrorCode = "TOKEN_EXPIRED"
)

// Доменные коды движка матчинга
const (
	CodeBrandNotFound   ErrorCode = "BRAND_NOT_FOUND"
	CodeCreatorNotFound ErrorCode = "CREATOR_NOT_FOUND"
	CodeMatchNotFound   ErrorCode = "MATCH_NOT_FOUND"
	CodeInvalidCriteria ErrorCode = "INVALID_CRITERIA"
	CodeInvalidBudget   ErrorCode = "INVALID_BUDGET"
	CodeInvalidWeights  ErrorCode = "INVALID_WEIGHTS"
	CodeModelNotTrained ErrorCode = "MODEL_NOT_TRAINED"
)
