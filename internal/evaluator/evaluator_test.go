package evaluator

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"focusbot/internal/llm"
)

func TestEvaluate_Correct(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage("correct\nWell done! Each number doubles, so 32 follows 16."),
	})
	ev := New(mock)

	verdict, err := ev.Evaluate(context.Background(),
		"Continue the sequence: 2, 4, 8, 16, ...", "32", "32")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !verdict.Correct {
		t.Error("expected correct verdict")
	}
	if !strings.Contains(verdict.Feedback, "Well done") {
		t.Errorf("feedback = %q", verdict.Feedback)
	}
}

func TestEvaluate_Incorrect(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage("Incorrect\nNot quite. The answer is 32: each number doubles."),
	})
	ev := New(mock)

	verdict, err := ev.Evaluate(context.Background(),
		"Continue the sequence: 2, 4, 8, 16, ...", "32", "30")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if verdict.Correct {
		t.Error("expected incorrect verdict")
	}
}

func TestEvaluate_PromptCarriesAllThreeParts(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage("correct\nNice."),
	})
	ev := New(mock)

	_, err := ev.Evaluate(context.Background(), "Find the odd one: cat, dog, chair", "chair", "the chair")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	prompt := mock.Calls[0].Messages[0].Content
	for _, want := range []string{"Find the odd one", "the chair", "Expected solution: chair"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}
}

func TestEvaluate_ProviderErrorPropagates(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Err: &llm.ErrProviderUnavailable{Err: errors.New("down")},
	})
	ev := New(mock)

	_, err := ev.Evaluate(context.Background(), "task", "a", "b")
	var unavailable *llm.ErrProviderUnavailable
	if !errors.As(err, &unavailable) {
		t.Fatalf("expected ErrProviderUnavailable, got %v", err)
	}
}

func TestParseVerdict(t *testing.T) {
	cases := []struct {
		name    string
		raw     string
		correct bool
		ok      bool
	}{
		{"correct flag", "correct\nGood job.", true, true},
		{"incorrect flag", "incorrect\nThe answer is 5.", false, true},
		{"mixed case flag", "CORRECT\nGood.", true, true},
		{"padded flag", "  correct  \nGood.", true, true},
		{"multiline feedback", "incorrect\nLine one.\nLine two.", false, true},
		{"unknown flag", "maybe\nWho knows.", false, false},
		{"flag only", "correct", false, false},
		{"blank feedback", "correct\n   ", false, false},
		{"empty response", "", false, false},
		{"prose instead of flag", "The user's answer looks right to me.", false, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			verdict, err := parseVerdict(tc.raw)
			if !tc.ok {
				var unparsable *ErrUnparsableVerdict
				if !errors.As(err, &unparsable) {
					t.Fatalf("expected ErrUnparsableVerdict, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if verdict.Correct != tc.correct {
				t.Errorf("correct = %v, want %v", verdict.Correct, tc.correct)
			}
		})
	}
}
