package taskgen

import (
	"context"
	"encoding/json"
	"fmt"

	"focusbot/internal/llm"
)

// Config controls the LLMGenerator.
type Config struct {
	// MaxTokens is the token budget for one generated exercise.
	MaxTokens int

	// Temperature keeps generation varied; the same level and category
	// should not reproduce the same exercise.
	Temperature float64

	// MaxPriorTasks caps how many earlier exercises the prompt lists
	// for repetition avoidance.
	MaxPriorTasks int
}

// DefaultConfig returns the recommended generator settings.
func DefaultConfig() Config {
	return Config{
		MaxTokens:     768,
		Temperature:   0.8,
		MaxPriorTasks: 8,
	}
}

// LLMGenerator implements Generator on an llm.Provider. The provider passed
// in should already be wrapped with retry; exhausted retries surface here as
// a terminal generation failure.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
}

// New creates an LLMGenerator.
func New(provider llm.Provider, cfg Config) *LLMGenerator {
	return &LLMGenerator{provider: provider, config: cfg}
}

// taskOutput mirrors TaskSchema.
type taskOutput struct {
	Category      string `json:"category"`
	TaskText      string `json:"task_text"`
	CorrectAnswer string `json:"correct_answer"`
	Points        int    `json:"points"`
}

// Generate produces one exercise for the given level and category.
func (g *LLMGenerator) Generate(ctx context.Context, input GenerateInput) (*Task, error) {
	ctx = llm.WithPurpose(ctx, "task-gen")

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(input, g.config)},
		},
		Schema:      TaskSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("task generation failed: %w", err)
	}

	var raw taskOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, fmt.Errorf("decode generated task: %w", err)
	}

	task := &Task{
		Category: Category(raw.Category),
		Text:     raw.TaskText,
		Answer:   raw.CorrectAnswer,
		Points:   raw.Points,
	}

	if err := validateTask(task, input); err != nil {
		return nil, err
	}

	return task, nil
}
