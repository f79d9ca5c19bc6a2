package taskgen

import (
	"fmt"
	"strings"
)

// ValidationError reports an exercise that passed the schema but is still
// unusable (blank fields, category drift, absurd points).
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("generated task invalid: %s %s", e.Field, e.Reason)
}

// validateTask re-checks the decoded exercise. The schema constrains types
// and ranges; this guards the semantic rules the schema cannot express.
func validateTask(task *Task, input GenerateInput) error {
	if strings.TrimSpace(task.Text) == "" {
		return &ValidationError{Field: "task_text", Reason: "is blank"}
	}
	if strings.TrimSpace(task.Answer) == "" {
		return &ValidationError{Field: "correct_answer", Reason: "is blank"}
	}
	if !task.Category.Valid() {
		return &ValidationError{Field: "category", Reason: fmt.Sprintf("unknown: %q", task.Category)}
	}
	if input.Category != "" && task.Category != input.Category {
		return &ValidationError{
			Field:  "category",
			Reason: fmt.Sprintf("requested %q, got %q", input.Category, task.Category),
		}
	}
	if task.Points < 1 || task.Points > 50 {
		return &ValidationError{Field: "points", Reason: fmt.Sprintf("out of range: %d", task.Points)}
	}
	return nil
}
