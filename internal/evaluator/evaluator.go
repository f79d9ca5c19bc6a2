// Package evaluator scores a user's answer against the stored exercise by
// asking the model for a verdict. The response contract is deliberately
// minimal: first line is the verdict flag, the rest is feedback for the
// user. A response that breaks the contract is reported as unusable and
// must never be trusted as a verdict.
package evaluator

import (
	"context"
	"fmt"
	"strings"

	"focusbot/internal/llm"
)

const (
	flagCorrect   = "correct"
	flagIncorrect = "incorrect"
)

const systemPrompt = "You check users' answers to attention-training exercises."

const promptTemplate = `Check the user's answer against the expected solution.

Respond in exactly this format:
1. The first line is the verdict flag:
   - "correct" when the user solved the exercise.
   - "incorrect" when the user did not.
2. The remaining text is the message for the user:
   - If correct: congratulate them and briefly restate the solution.
   - If incorrect: point out the mistake politely, explain the correct
     answer and encourage them to keep going.

Example:
correct
Well done! Each number doubles, so 64 follows 32.

Or:
incorrect
Not quite. The answer is 64: each number in the sequence doubles.

Exercise: %s
User's answer: %s
Expected solution: %s`

// Verdict is the evaluator's scored result.
type Verdict struct {
	Correct  bool
	Feedback string
}

// ErrUnparsableVerdict reports a model response that does not follow the
// two-part contract. The caller must not mutate level or rating on it.
type ErrUnparsableVerdict struct {
	Raw string
}

func (e *ErrUnparsableVerdict) Error() string {
	return fmt.Sprintf("unparsable verdict: %q", e.Raw)
}

// Evaluator scores answers. Implemented by LLMEvaluator and by fakes in
// the trainer tests.
type Evaluator interface {
	Evaluate(ctx context.Context, task, answer, userAnswer string) (*Verdict, error)
}

// LLMEvaluator implements Evaluator on an llm.Provider. Unlike generation
// there is no retry: a bad verdict is reported and the user re-submits.
type LLMEvaluator struct {
	provider  llm.Provider
	maxTokens int
}

// New creates an LLMEvaluator.
func New(provider llm.Provider) *LLMEvaluator {
	return &LLMEvaluator{provider: provider, maxTokens: 512}
}

// Evaluate asks the model for a verdict on the user's answer.
func (e *LLMEvaluator) Evaluate(ctx context.Context, task, answer, userAnswer string) (*Verdict, error) {
	ctx = llm.WithPurpose(ctx, "answer-check")

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: fmt.Sprintf(promptTemplate, task, userAnswer, answer)},
		},
		MaxTokens: e.maxTokens,
	}

	resp, err := e.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("answer evaluation failed: %w", err)
	}

	return parseVerdict(string(resp.Content))
}

// parseVerdict splits the response into flag and feedback and checks the
// flag against the two known literals.
func parseVerdict(raw string) (*Verdict, error) {
	trimmed := strings.TrimSpace(raw)

	flag, feedback, found := strings.Cut(trimmed, "\n")
	if !found {
		return nil, &ErrUnparsableVerdict{Raw: raw}
	}

	feedback = strings.TrimSpace(feedback)
	if feedback == "" {
		return nil, &ErrUnparsableVerdict{Raw: raw}
	}

	switch strings.ToLower(strings.TrimSpace(flag)) {
	case flagCorrect:
		return &Verdict{Correct: true, Feedback: feedback}, nil
	case flagIncorrect:
		return &Verdict{Correct: false, Feedback: feedback}, nil
	default:
		return nil, &ErrUnparsableVerdict{Raw: raw}
	}
}
