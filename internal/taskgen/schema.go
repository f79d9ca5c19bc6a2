package taskgen

import "focusbot/internal/llm"

// TaskSchema constrains generation responses to a single exercise.
var TaskSchema = &llm.Schema{
	Name:        "attention-task",
	Description: "A single attention-training exercise with its answer and point value",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"category": map[string]any{
				"type": "string",
				"enum": []any{
					"error-correction",
					"symbol-search",
					"odd-one-out",
					"sequence-recognition",
					"memory-test",
				},
				"description": "The category this exercise belongs to",
			},
			"task_text": map[string]any{
				"type":        "string",
				"description": "The exercise prompt shown to the user, plain text without markup",
			},
			"correct_answer": map[string]any{
				"type":        "string",
				"description": "The exact expected solution, short and unambiguous",
			},
			"points": map[string]any{
				"type":        "integer",
				"minimum":     1,
				"maximum":     50,
				"description": "Reward for solving this exercise, scaled with its difficulty",
			},
		},
		"required":             []any{"category", "task_text", "correct_answer", "points"},
		"additionalProperties": false,
	},
}
