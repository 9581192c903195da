package summary

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hrygo/memoflow/ai/llm"
)

type stubLLM struct {
	resp     string
	err      error
	messages []llm.Message
}

func (s *stubLLM) Complete(_ context.Context, messages []llm.Message) (string, error) {
	s.messages = messages
	return s.resp, s.err
}

func TestSummarize(t *testing.T) {
	stub := &stubLLM{resp: "  A short summary.  "}
	summarizer := NewSummarizer(stub)

	resp, err := summarizer.Summarize(context.Background(), &SummarizeRequest{
		MemoID:  "m1",
		Title:   "Groceries",
		Content: "milk, eggs, bread",
	})
	require.NoError(t, err)
	require.Equal(t, "A short summary.", resp.Summary)

	require.Len(t, stub.messages, 2)
	require.Equal(t, "system", stub.messages[0].Role)
	require.True(t, strings.Contains(stub.messages[1].Content, "Groceries"))
	require.True(t, strings.Contains(stub.messages[1].Content, "milk, eggs, bread"))
}

func TestSummarizeEmptyResponseFallsBack(t *testing.T) {
	summarizer := NewSummarizer(&stubLLM{resp: "   \n"})

	resp, err := summarizer.Summarize(context.Background(), &SummarizeRequest{
		MemoID:  "m1",
		Title:   "T",
		Content: "C",
	})
	require.NoError(t, err)
	require.Equal(t, FallbackSummary, resp.Summary)
}

func TestSummarizeError(t *testing.T) {
	summarizer := NewSummarizer(&stubLLM{err: errors.New("boom")})

	_, err := summarizer.Summarize(context.Background(), &SummarizeRequest{
		MemoID:  "m1",
		Title:   "T",
		Content: "C",
	})
	require.Error(t, err)
}
