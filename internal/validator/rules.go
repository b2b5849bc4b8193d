package validator

import (
	"log"

	"influmatch_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules регистрирует все кастомные функции валидации в
// переданном экземпляре валидатора.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			// Если правило не удалось зарегистрировать, приложение
			// не должно запускаться, так как это критическая ошибка.
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	// Правила, основанные на 'statuses.go'
	mustRegister("is-goal-type", validateGoalType)
	mustRegister("is-feedback-type", validateFeedbackType)
}

// --- Функции валидации ---

func validateGoalType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // 'required' обрабатывает пустые
	}
	switch models.GoalType(value) {
	case models.GoalAwareness, models.GoalEngagement, models.GoalConversions:
		return true
	default:
		return false
	}
}

func validateFeedbackType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.FeedbackType(value) {
	case models.FeedbackPositive, models.FeedbackNegative, models.FeedbackNeutral:
		return true
	default:
		return false
	}
}
