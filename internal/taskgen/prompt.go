package taskgen

import (
	"fmt"
	"strings"
)

const systemPrompt = `You create exercises for a bot that trains its users' attention.

Rules:
- Generate exactly one exercise for the given difficulty level.
- Categories:
  1. error-correction: a text with 3-5 spelling, grammar or punctuation mistakes the user must find and fix.
  2. symbol-search: a table or text where the user must locate a given symbol or symbol sequence.
  3. odd-one-out: a list of words, numbers or symbols where one item breaks the pattern.
  4. sequence-recognition: a numeric or logical sequence where the user must name the next element.
  5. memory-test: a short text or symbol table to memorize, followed by a question about its content.
- When a category is pinned, generate for that category only; otherwise pick one yourself.
- Higher levels mean longer texts, subtler mistakes and harder patterns.
- The exercise text must be self-contained plain text. No Markdown, no HTML.
- The correct answer must be short, exact and verifiable against a user's reply.
- Points reflect difficulty: roughly the level, capped at 50.
- Do not repeat any exercise from the "already served" list.`

// buildUserMessage renders the generation request for one exercise.
func buildUserMessage(input GenerateInput, cfg Config) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Difficulty level: %d\n", input.Level)
	if input.Category != "" {
		fmt.Fprintf(&b, "Category: %s\n", input.Category)
	} else {
		b.WriteString("Category: your choice\n")
	}

	b.WriteString("\nAlready served in this session:\n")
	b.WriteString(buildPriorList(input.PriorTasks, cfg.MaxPriorTasks))

	return b.String()
}

func buildPriorList(prior []string, max int) string {
	if len(prior) == 0 {
		return "None"
	}
	if max > 0 && len(prior) > max {
		prior = prior[len(prior)-max:]
	}

	var b strings.Builder
	for i, p := range prior {
		fmt.Fprintf(&b, "%d. %s\n", i+1, p)
	}
	return strings.TrimRight(b.String(), "\n")
}
