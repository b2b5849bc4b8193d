package validator

import (
	"testing"

	"influmatch_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type goalPayload struct {
	Type models.GoalType `json:"type" validate:"required,is-goal-type"`
}

type feedbackPayload struct {
	Feedback models.FeedbackType `json:"feedback" validate:"required,is-feedback-type"`
}

func TestGoalTypeRule(t *testing.T) {
	v := New()

	require.NoError(t, v.Validate(&goalPayload{Type: models.GoalAwareness}))
	require.NoError(t, v.Validate(&goalPayload{Type: models.GoalConversions}))

	err := v.Validate(&goalPayload{Type: "branding"})
	require.Error(t, err)
	valErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Contains(t, valErr.Errors, "type")
}

func TestFeedbackTypeRule(t *testing.T) {
	v := New()

	require.NoError(t, v.Validate(&feedbackPayload{Feedback: models.FeedbackNegative}))

	err := v.Validate(&feedbackPayload{Feedback: "meh"})
	require.Error(t, err)
	valErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Contains(t, valErr.Errors, "feedback")
}
