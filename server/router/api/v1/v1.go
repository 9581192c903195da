// Package v1 implements the JSON HTTP API.
package v1

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hrygo/memoflow/ai/llm"
	"github.com/hrygo/memoflow/ai/summary"
	"github.com/hrygo/memoflow/ai/tags"
	"github.com/hrygo/memoflow/internal/memoview"
	"github.com/hrygo/memoflow/internal/metrics"
	"github.com/hrygo/memoflow/internal/profile"
	"github.com/hrygo/memoflow/internal/version"
	"github.com/hrygo/memoflow/plugin/markdown"
	"github.com/hrygo/memoflow/store"
)

type APIV1Service struct {
	Profile    *profile.Profile
	Store      *store.Store
	Controller *memoview.Controller

	// Summarizer and Suggester stay nil when the LLM credential is
	// not configured; the AI endpoints then answer with a server error.
	Summarizer summary.Summarizer
	Suggester  tags.Suggester

	MarkdownService markdown.Service
}

func NewAPIV1Service(profile *profile.Profile, st *store.Store) *APIV1Service {
	service := &APIV1Service{
		Profile:         profile,
		Store:           st,
		Controller:      memoview.New(st),
		MarkdownService: markdown.NewService(),
	}

	if profile.IsAIEnabled() {
		llmService, err := llm.NewService(llm.ConfigFromProfile(profile))
		if err != nil {
			slog.Warn("failed to initialize LLM service, AI endpoints disabled", "error", err)
		} else {
			slog.Info("LLM service initialized",
				"provider", profile.LLMProvider,
				"model", profile.LLMModel,
			)
			service.Summarizer = summary.NewSummarizer(llmService)
			service.Suggester = tags.NewSuggester(llmService)
		}
	} else {
		slog.Info("AI features disabled: LLM API key is not configured")
	}

	return service
}

// RegisterRoutes mounts all API routes on the echo instance.
func (s *APIV1Service) RegisterRoutes(e *echo.Echo) {
	// AI generation endpoints keep their original top-level paths.
	e.POST("/summary", s.GenerateSummary)
	e.POST("/tags", s.GenerateTags)

	g := e.Group("/api/v1")
	g.GET("/memos", s.ListMemos)
	g.POST("/memos", s.CreateMemo)
	g.DELETE("/memos", s.ClearMemos)
	g.GET("/memos/stats", s.GetMemoStats)
	g.GET("/memos/:id", s.GetMemo)
	g.PATCH("/memos/:id", s.UpdateMemo)
	g.DELETE("/memos/:id", s.DeleteMemo)
	g.GET("/memos/:id/render", s.RenderMemo)

	e.GET("/feed", s.GetMemoFeed)
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))
	e.GET("/healthz", s.GetHealthz)
}

// GetHealthz reports liveness, verifying database reachability with a
// ping on the underlying driver connection.
func (s *APIV1Service) GetHealthz(c echo.Context) error {
	if err := s.Store.GetDriver().GetDB().PingContext(c.Request().Context()); err != nil {
		return errJSON(c, http.StatusServiceUnavailable, "database unreachable")
	}
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "ok",
		"version": version.String(),
	})
}
