// Package summary generates short summaries for memo content.
package summary

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hrygo/memoflow/ai/llm"
	"github.com/hrygo/memoflow/internal/metrics"
)

// FallbackSummary is returned when the API produced empty text.
const FallbackSummary = "Summary unavailable."

const systemPrompt = "You are an assistant that condenses personal notes. Reply with the summary only, no preamble."

// Summarizer generates a summary for memo content.
type Summarizer interface {
	Summarize(ctx context.Context, req *SummarizeRequest) (*SummarizeResponse, error)
}

// SummarizeRequest contains parameters for summary generation.
type SummarizeRequest struct {
	MemoID  string
	Title   string
	Content string
}

// SummarizeResponse contains the generated summary.
type SummarizeResponse struct {
	Summary string `json:"summary"`
}

type llmSummarizer struct {
	llm llm.Service
}

// NewSummarizer creates a Summarizer backed by the given LLM service.
func NewSummarizer(service llm.Service) Summarizer {
	return &llmSummarizer{llm: service}
}

func (s *llmSummarizer) Summarize(ctx context.Context, req *SummarizeRequest) (*SummarizeResponse, error) {
	prompt := fmt.Sprintf(
		"Condense the following memo into 2-3 sentences.\n\nTitle: %s\n\n%s",
		req.Title, req.Content,
	)

	start := time.Now()
	text, err := s.llm.Complete(ctx, []llm.Message{
		llm.SystemPrompt(systemPrompt),
		llm.UserMessage(prompt),
	})
	metrics.CountLLMRequest("summary", err)
	metrics.ObserveLLMDuration("summary", time.Since(start))
	if err != nil {
		return nil, err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		text = FallbackSummary
	}
	return &SummarizeResponse{Summary: text}, nil
}
