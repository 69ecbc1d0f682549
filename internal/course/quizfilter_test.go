package course

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quizItem(question string, options []any, answerIndex any, explanation string) map[string]any {
	item := map[string]any{
		"question":     question,
		"options":      options,
		"answer_index": answerIndex,
	}
	if explanation != "" {
		item["explanation"] = explanation
	}
	return item
}

func fourOptions() []any {
	return []any{"A", "B", "C", "D"}
}

func TestFilterQuizKeepsWellFormedQuestion(t *testing.T) {
	out := FilterQuiz([]any{
		quizItem("What does a pointer hold?", fourOptions(), float64(2), "It holds an address."),
	}, 10)

	require.Len(t, out, 1)
	assert.Equal(t, "What does a pointer hold?", out[0].Question)
	assert.Equal(t, []string{"A", "B", "C", "D"}, out[0].Options)
	assert.Equal(t, 2, out[0].AnswerIndex)
	assert.Equal(t, "It holds an address.", out[0].Explanation)
}

func TestFilterQuizDropsMalformedItems(t *testing.T) {
	tests := []struct {
		name string
		item any
	}{
		{"not an object", "just a string"},
		{"empty question", quizItem("   ", fourOptions(), float64(0), "e")},
		{"three options", quizItem("Q?", []any{"A", "B", "C"}, float64(0), "e")},
		{"five options", quizItem("Q?", []any{"A", "B", "C", "D", "E"}, float64(0), "e")},
		{"options not a list", map[string]any{"question": "Q?", "options": "A,B,C,D", "answer_index": float64(0)}},
		{"index negative", quizItem("Q?", fourOptions(), float64(-1), "e")},
		{"index too large", quizItem("Q?", fourOptions(), float64(4), "e")},
		{"index fractional", quizItem("Q?", fourOptions(), float64(1.5), "e")},
		{"index not numeric", quizItem("Q?", fourOptions(), "second", "e")},
		{"index missing", map[string]any{"question": "Q?", "options": fourOptions()}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Empty(t, FilterQuiz([]any{tt.item}, 10))
		})
	}
}

func TestFilterQuizCoercesIndexAndOptions(t *testing.T) {
	out := FilterQuiz([]any{
		quizItem("Pick the port.", []any{float64(80), float64(443), "8080", true}, "1", ""),
	}, 10)

	require.Len(t, out, 1)
	assert.Equal(t, 1, out[0].AnswerIndex)
	assert.Equal(t, []string{"80", "443", "8080", "true"}, out[0].Options)
}

func TestFilterQuizDropsMetaQuestions(t *testing.T) {
	out := FilterQuiz([]any{
		quizItem("What is the PRIMARY GOAL OF STUDYING Module 3?", fourOptions(), float64(0), "e"),
		quizItem("What should you understand after completing this lesson?", fourOptions(), float64(0), "e"),
		quizItem("Which keyword declares a constant?", fourOptions(), float64(1), "e"),
	}, 10)

	require.Len(t, out, 1)
	assert.Equal(t, "Which keyword declares a constant?", out[0].Question)
}

func TestFilterQuizDefaultsExplanation(t *testing.T) {
	out := FilterQuiz([]any{
		quizItem("Q?", fourOptions(), float64(0), ""),
		quizItem("Q2?", fourOptions(), float64(0), "   "),
	}, 10)

	require.Len(t, out, 2)
	assert.Equal(t, "Review module content.", out[0].Explanation)
	assert.Equal(t, "Review module content.", out[1].Explanation)
}

func TestFilterQuizEnforcesLimit(t *testing.T) {
	items := make([]any, 10)
	for i := range items {
		items[i] = quizItem("Q?", fourOptions(), float64(0), "e")
	}
	assert.Len(t, FilterQuiz(items, 6), 6)
}

func TestFilterQuizSurvivingQuestionsKeepOrder(t *testing.T) {
	out := FilterQuiz([]any{
		quizItem("first", fourOptions(), float64(0), "e"),
		quizItem("", fourOptions(), float64(0), "e"),
		quizItem("second", fourOptions(), float64(3), "e"),
	}, 10)

	require.Len(t, out, 2)
	assert.Equal(t, "first", out[0].Question)
	assert.Equal(t, "second", out[1].Question)
}
