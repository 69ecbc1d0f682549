package course

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

const defaultExplanation = "Review module content."

// metaPhrases flag questions that quiz the learner about the lesson
// itself instead of the subject. Matched case-insensitively as
// substrings of the question text.
var metaPhrases = []string{
	"primary goal of studying",
	"key concept covered in",
	"should you understand after completing",
	"most relevant to",
	"what should you do",
	"how should you approach",
	"what is the goal",
	"studying module",
	"learning module",
	"completing module",
}

// FilterQuiz validates raw quiz items from the model and keeps at most
// limit well-formed questions. Each item must be an object with a
// non-empty question, exactly 4 options, and an integer answer index in
// [0, 3]; meta-questions about the course structure are dropped. Items
// fail individually, never the whole batch.
func FilterQuiz(items []any, limit int) []QuizQuestion {
	cleaned := make([]QuizQuestion, 0, len(items))
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}

		question := strings.TrimSpace(asString(obj["question"]))
		if question == "" {
			continue
		}
		if isMetaQuestion(question) {
			log.Debug().Str("question", question).Msg("dropped meta-question")
			continue
		}

		rawOpts, ok := obj["options"].([]any)
		if !ok || len(rawOpts) != 4 {
			continue
		}
		options := make([]string, 4)
		for i, o := range rawOpts {
			options[i] = asString(o)
		}

		idx, ok := asIndex(obj["answer_index"])
		if !ok || idx < 0 || idx > 3 {
			continue
		}

		explanation := strings.TrimSpace(asString(obj["explanation"]))
		if explanation == "" {
			explanation = defaultExplanation
		}

		cleaned = append(cleaned, QuizQuestion{
			Question:    question,
			Options:     options,
			AnswerIndex: idx,
			Explanation: explanation,
		})
		if limit > 0 && len(cleaned) == limit {
			break
		}
	}
	return cleaned
}

func isMetaQuestion(question string) bool {
	lower := strings.ToLower(question)
	for _, phrase := range metaPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}

// asString renders a JSON value as text. Non-string scalars are kept
// rather than dropped so an option like the number 42 survives.
func asString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprint(t)
	}
}

// asIndex coerces the answer index, which models emit as a number or a
// numeric string.
func asIndex(v any) (int, bool) {
	switch t := v.(type) {
	case float64:
		if t != float64(int(t)) {
			return 0, false
		}
		return int(t), true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(t))
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}
