package taskgen

import "context"

// Category is one of the five fixed attention-training categories.
type Category string

const (
	CategoryErrorCorrection Category = "error-correction"
	CategorySymbolSearch    Category = "symbol-search"
	CategoryOddOneOut       Category = "odd-one-out"
	CategorySequence        Category = "sequence-recognition"
	CategoryMemory          Category = "memory-test"
)

// Categories lists all known categories in menu order.
func Categories() []Category {
	return []Category{
		CategoryErrorCorrection,
		CategorySymbolSearch,
		CategoryOddOneOut,
		CategorySequence,
		CategoryMemory,
	}
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}

// Title is the human-readable label shown in chat.
func (c Category) Title() string {
	switch c {
	case CategoryErrorCorrection:
		return "Error correction"
	case CategorySymbolSearch:
		return "Symbol search"
	case CategoryOddOneOut:
		return "Odd one out"
	case CategorySequence:
		return "Sequence recognition"
	case CategoryMemory:
		return "Memory test"
	default:
		return string(c)
	}
}

// Task is one generated exercise ready to present.
type Task struct {
	// Category is the category the model actually generated for. It can
	// differ from the request only when the request left it open.
	Category Category

	// Text is the exercise prompt shown to the user.
	Text string

	// Answer is the canonical correct answer, kept in the session and
	// never shown until the user has answered.
	Answer string

	// Points is the reward added to the rating on a correct answer.
	Points int
}

// GenerateInput carries everything a generation call needs.
type GenerateInput struct {
	// Level is the user's current difficulty level, always ≥ 1.
	Level int

	// Category pins the exercise category. Empty means the model picks
	// one of the five at its discretion.
	Category Category

	// PriorTasks holds the text of exercises already served in this
	// session, listed in the prompt to discourage repetition.
	PriorTasks []string
}

// Generator produces exercises. Implemented by LLMGenerator and by test
// fakes in the trainer tests.
type Generator interface {
	Generate(ctx context.Context, input GenerateInput) (*Task, error)
}
