// Package tags provides tag suggestion for memos.
package tags

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/hrygo/memoflow/ai/llm"
	"github.com/hrygo/memoflow/internal/metrics"
)

// MaxTags bounds how many tags a suggestion may contain.
const MaxTags = 5

const systemPrompt = "You are an assistant that labels personal notes with short topical tags."

// Suggester provides tag suggestions for memo content.
type Suggester interface {
	Suggest(ctx context.Context, req *SuggestRequest) (*SuggestResponse, error)
}

// SuggestRequest contains parameters for tag suggestion.
type SuggestRequest struct {
	MemoID  string
	Title   string
	Content string
}

// SuggestResponse contains the suggested tags.
type SuggestResponse struct {
	Tags []string `json:"tags"`
}

type llmSuggester struct {
	llm llm.Service
}

// NewSuggester creates a Suggester backed by the given LLM service.
func NewSuggester(service llm.Service) Suggester {
	return &llmSuggester{llm: service}
}

func (s *llmSuggester) Suggest(ctx context.Context, req *SuggestRequest) (*SuggestResponse, error) {
	prompt := fmt.Sprintf(
		"Produce 3-5 short tags for the following memo. Return them as a JSON array of strings.\n\nTitle: %s\n\n%s",
		req.Title, req.Content,
	)

	start := time.Now()
	text, err := s.llm.Complete(ctx, []llm.Message{
		llm.SystemPrompt(systemPrompt),
		llm.UserMessage(prompt),
	})
	metrics.CountLLMRequest("tags", err)
	metrics.ObserveLLMDuration("tags", time.Since(start))
	if err != nil {
		return nil, err
	}

	return &SuggestResponse{Tags: ParseTags(text)}, nil
}

// ParseTags extracts a tag list from a loosely structured LLM response.
// It first looks for a JSON-array substring; when that is absent or
// unparsable it falls back to splitting on commas and newlines,
// trimming whitespace and surrounding quote characters, and truncating
// to at most MaxTags entries. A response that yields nothing produces
// an empty list.
func ParseTags(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []string{}
	}

	if start := strings.Index(raw, "["); start >= 0 {
		if end := strings.LastIndex(raw, "]"); end > start {
			var parsed []string
			if err := json.Unmarshal([]byte(raw[start:end+1]), &parsed); err == nil {
				if len(parsed) == 0 {
					return []string{}
				}
				return parsed
			}
		}
	}

	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == '\n'
	})
	parsed := []string{}
	for _, field := range fields {
		tag := strings.TrimSpace(field)
		tag = strings.Trim(tag, `"'`+"`")
		if tag != "" {
			parsed = append(parsed, tag)
		}
	}
	if len(parsed) > MaxTags {
		parsed = parsed[:MaxTags]
	}
	return parsed
}
