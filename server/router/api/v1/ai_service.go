package v1

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hrygo/memoflow/ai/summary"
	"github.com/hrygo/memoflow/ai/tags"
)

// generateRequest is the shared input of both AI generation endpoints.
type generateRequest struct {
	MemoID  string `json:"memoId"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

func (r *generateRequest) validate() string {
	if r.MemoID == "" || r.Title == "" || r.Content == "" {
		return "memoId, title and content are required"
	}
	return ""
}

type summaryResponse struct {
	Summary string `json:"summary"`
}

type tagsResponse struct {
	Tags []string `json:"tags"`
}

// GenerateSummary builds a fixed prompt from title and content, calls
// the completion API once, and returns the summary. The write-back of
// the summary is best-effort: a persistence failure is logged only and
// the generated value is still returned.
func (s *APIV1Service) GenerateSummary(c echo.Context) error {
	req := &generateRequest{}
	if err := c.Bind(req); err != nil {
		return errJSON(c, http.StatusBadRequest, "malformed request body")
	}
	if msg := req.validate(); msg != "" {
		return errJSON(c, http.StatusBadRequest, msg)
	}
	if s.Summarizer == nil {
		return errJSON(c, http.StatusInternalServerError, "LLM API key is not configured")
	}

	ctx := c.Request().Context()
	resp, err := s.Summarizer.Summarize(ctx, &summary.SummarizeRequest{
		MemoID:  req.MemoID,
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		slog.Error("summary generation failed", "memo", req.MemoID, "error", err)
		return errJSON(c, http.StatusInternalServerError, "failed to generate summary")
	}

	if _, err := s.Controller.UpdateSummary(ctx, req.MemoID, resp.Summary); err != nil {
		slog.Error("failed to persist generated summary", "memo", req.MemoID, "error", err)
	}

	return c.JSON(http.StatusOK, &summaryResponse{Summary: resp.Summary})
}

// GenerateTags mirrors GenerateSummary for the tag list.
func (s *APIV1Service) GenerateTags(c echo.Context) error {
	req := &generateRequest{}
	if err := c.Bind(req); err != nil {
		return errJSON(c, http.StatusBadRequest, "malformed request body")
	}
	if msg := req.validate(); msg != "" {
		return errJSON(c, http.StatusBadRequest, msg)
	}
	if s.Suggester == nil {
		return errJSON(c, http.StatusInternalServerError, "LLM API key is not configured")
	}

	ctx := c.Request().Context()
	resp, err := s.Suggester.Suggest(ctx, &tags.SuggestRequest{
		MemoID:  req.MemoID,
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		slog.Error("tag generation failed", "memo", req.MemoID, "error", err)
		return errJSON(c, http.StatusInternalServerError, "failed to generate tags")
	}

	if _, err := s.Controller.UpdateTags(ctx, req.MemoID, resp.Tags); err != nil {
		slog.Error("failed to persist generated tags", "memo", req.MemoID, "error", err)
	}

	return c.JSON(http.StatusOK, &tagsResponse{Tags: resp.Tags})
}
