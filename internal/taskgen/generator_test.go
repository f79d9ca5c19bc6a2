package taskgen

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"focusbot/internal/llm"
)

func validTaskJSON() json.RawMessage {
	return json.RawMessage(`{
		"category": "sequence-recognition",
		"task_text": "Continue the sequence: 2, 4, 8, 16, ...",
		"correct_answer": "32",
		"points": 3
	}`)
}

func newGen(responses ...llm.MockResponse) (*LLMGenerator, *llm.MockProvider) {
	mock := llm.NewMockProvider(responses...)
	return New(mock, DefaultConfig()), mock
}

func TestGenerate_Success(t *testing.T) {
	gen, mock := newGen(llm.MockResponse{Content: validTaskJSON()})

	task, err := gen.Generate(context.Background(), GenerateInput{Level: 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task.Category != CategorySequence {
		t.Errorf("category = %q", task.Category)
	}
	if task.Answer != "32" {
		t.Errorf("answer = %q", task.Answer)
	}
	if task.Points != 3 {
		t.Errorf("points = %d", task.Points)
	}
	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call, got %d", mock.CallCount())
	}
}

func TestGenerate_PromptCarriesLevelAndCategory(t *testing.T) {
	gen, mock := newGen(llm.MockResponse{Content: json.RawMessage(`{
		"category": "memory-test",
		"task_text": "Memorize: K Q 7 R 2. Which symbol came third?",
		"correct_answer": "7",
		"points": 5
	}`)})

	_, err := gen.Generate(context.Background(), GenerateInput{
		Level:      5,
		Category:   CategoryMemory,
		PriorTasks: []string{"Memorize: A B C"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	prompt := mock.Calls[0].Messages[0].Content
	if !strings.Contains(prompt, "Difficulty level: 5") {
		t.Errorf("prompt missing level: %q", prompt)
	}
	if !strings.Contains(prompt, "Category: memory-test") {
		t.Errorf("prompt missing category: %q", prompt)
	}
	if !strings.Contains(prompt, "Memorize: A B C") {
		t.Errorf("prompt missing prior task: %q", prompt)
	}
}

func TestGenerate_EmptyResponsesFailAfterThreeAttempts(t *testing.T) {
	// Retry-wrapped provider that keeps returning empty content: every
	// attempt fails schema validation, the third exhausts the bound.
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage("")},
		llm.MockResponse{Content: json.RawMessage("")},
		llm.MockResponse{Content: json.RawMessage("")},
	)
	retried := llm.WithRetry(mock, llm.RetryConfig{
		MaxAttempts: 3,
		InitialWait: time.Millisecond,
		MaxWait:     time.Millisecond,
		Multiplier:  1.0,
	})
	gen := New(retried, DefaultConfig())

	_, err := gen.Generate(context.Background(), GenerateInput{Level: 1})
	if err == nil {
		t.Fatal("expected terminal generation failure")
	}
	var inv *llm.ErrInvalidResponse
	if !errors.As(err, &inv) {
		t.Fatalf("expected ErrInvalidResponse, got %T", err)
	}
	if mock.CallCount() != 3 {
		t.Fatalf("expected 3 attempts, got %d", mock.CallCount())
	}
}

func TestGenerate_CategoryDriftRejected(t *testing.T) {
	gen, _ := newGen(llm.MockResponse{Content: validTaskJSON()})

	_, err := gen.Generate(context.Background(), GenerateInput{
		Level:    2,
		Category: CategoryOddOneOut,
	})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestValidateTask(t *testing.T) {
	base := func() *Task {
		return &Task{
			Category: CategoryOddOneOut,
			Text:     "Which is the odd one: cat, dog, chair, horse?",
			Answer:   "chair",
			Points:   2,
		}
	}

	cases := []struct {
		name   string
		mutate func(*Task)
		ok     bool
	}{
		{"valid", func(*Task) {}, true},
		{"blank text", func(task *Task) { task.Text = "  " }, false},
		{"blank answer", func(task *Task) { task.Answer = "" }, false},
		{"unknown category", func(task *Task) { task.Category = "riddles" }, false},
		{"zero points", func(task *Task) { task.Points = 0 }, false},
		{"excessive points", func(task *Task) { task.Points = 500 }, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			task := base()
			tc.mutate(task)
			err := validateTask(task, GenerateInput{Level: 1})
			if tc.ok && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tc.ok && err == nil {
				t.Fatal("expected error")
			}
		})
	}
}
