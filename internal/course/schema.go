package course

import "github.com/anand-106/coursegen/internal/llm"

// JSON Schemas for the structured pipeline calls. Quiz items are kept
// loose here on purpose: per-item validation happens in FilterQuiz so one
// malformed question drops that question, not the whole package.

var validationSchema = &llm.Schema{
	Name:        "prompt-validation",
	Description: "Verdict on whether a prompt describes a learnable subject",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"valid":  map[string]any{"type": "boolean"},
			"reason": map[string]any{"type": "string"},
		},
		"required":             []any{"valid"},
		"additionalProperties": false,
	},
}

var topicListSchema = &llm.Schema{
	Name:        "topic-list",
	Description: "Ordered list of course module topics",
	Definition: map[string]any{
		"type":     "array",
		"items":    map[string]any{"type": "string"},
		"minItems": 1,
	},
}

var subtopicListSchema = &llm.Schema{
	Name:        "subtopic-list",
	Description: "Ordered list of subtopics within one module",
	Definition: map[string]any{
		"type":     "array",
		"items":    map[string]any{"type": "string"},
		"minItems": 1,
	},
}

var modulePackageSchema = &llm.Schema{
	Name:        "module-package",
	Description: "Complete content package for one course module",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"explanations": map[string]any{
				"type":                 "object",
				"additionalProperties": map[string]any{"type": "string"},
			},
			"flashcards": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"front": map[string]any{"type": "string"},
						"back":  map[string]any{"type": "string"},
					},
					"required": []any{"front", "back"},
				},
			},
			"quiz": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "object"},
			},
			"mermaid": map[string]any{"type": "string"},
		},
		"required": []any{"explanations"},
	},
}
