package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/hrygo/memoflow/internal/memoview"
	"github.com/hrygo/memoflow/store"
)

type errorResponse struct {
	Error string `json:"error"`
}

func errJSON(c echo.Context, code int, message string) error {
	return c.JSON(code, &errorResponse{Error: message})
}

// ListMemos returns the filtered memo view. Optional query params:
// `category` (exact match, "all" disables) and `q` (case-insensitive
// substring against title, content, or any tag). Both params are
// applied atomically so concurrent requests cannot observe each
// other's filters.
func (s *APIV1Service) ListMemos(c echo.Context) error {
	category := c.QueryParam("category")
	if category == "" {
		category = string(store.CategoryAll)
	}
	list := s.Controller.ApplyFilters(store.Category(category), c.QueryParam("q"))
	return c.JSON(http.StatusOK, list)
}

func (s *APIV1Service) CreateMemo(c echo.Context) error {
	form := &memoview.MemoFormData{}
	if err := c.Bind(form); err != nil {
		return errJSON(c, http.StatusBadRequest, "malformed request body")
	}
	memo, err := s.Controller.CreateMemo(c.Request().Context(), form)
	if err != nil {
		if errors.Is(err, memoview.ErrInvalidForm) {
			return errJSON(c, http.StatusBadRequest, err.Error())
		}
		return errJSON(c, http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, memo)
}

func (s *APIV1Service) GetMemo(c echo.Context) error {
	memo := s.Store.GetMemo(c.Request().Context(), c.Param("id"))
	if memo == nil {
		return errJSON(c, http.StatusNotFound, "memo not found")
	}
	return c.JSON(http.StatusOK, memo)
}

type updateMemoRequest struct {
	Title    string         `json:"title"`
	Content  string         `json:"content"`
	Category store.Category `json:"category"`
	Tags     []string       `json:"tags"`
	Summary  *string        `json:"summary"`
}

func (s *APIV1Service) UpdateMemo(c echo.Context) error {
	id := c.Param("id")
	existing := s.Store.GetMemo(c.Request().Context(), id)
	if existing == nil {
		return errJSON(c, http.StatusNotFound, "memo not found")
	}

	req := &updateMemoRequest{}
	if err := c.Bind(req); err != nil {
		return errJSON(c, http.StatusBadRequest, "malformed request body")
	}
	if req.Title == "" {
		return errJSON(c, http.StatusBadRequest, "title is required")
	}
	if !req.Category.IsStorable() {
		return errJSON(c, http.StatusBadRequest, "invalid category")
	}
	tags := req.Tags
	if tags == nil {
		tags = []string{}
	}
	summary := req.Summary
	if summary == nil {
		summary = existing.Summary
	}

	memo := &store.Memo{
		ID:       id,
		Title:    req.Title,
		Content:  req.Content,
		Category: req.Category,
		Tags:     tags,
		Summary:  summary,
	}
	updated, err := s.Controller.UpdateMemo(c.Request().Context(), memo)
	if err != nil {
		return errJSON(c, http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, updated)
}

func (s *APIV1Service) DeleteMemo(c echo.Context) error {
	if err := s.Controller.DeleteMemo(c.Request().Context(), c.Param("id")); err != nil {
		return errJSON(c, http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, true)
}

// ClearMemos deletes every memo. One delete request per memo runs
// concurrently; any single failure fails the aggregate with no
// rollback of memos already deleted.
func (s *APIV1Service) ClearMemos(c echo.Context) error {
	if err := s.Controller.ClearAll(c.Request().Context()); err != nil {
		return errJSON(c, http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, true)
}

func (s *APIV1Service) GetMemoStats(c echo.Context) error {
	return c.JSON(http.StatusOK, s.Controller.Stats())
}

type renderMemoResponse struct {
	HTML string `json:"html"`
}

// RenderMemo returns the memo content rendered from markdown to HTML.
func (s *APIV1Service) RenderMemo(c echo.Context) error {
	memo := s.Store.GetMemo(c.Request().Context(), c.Param("id"))
	if memo == nil {
		return errJSON(c, http.StatusNotFound, "memo not found")
	}
	html, err := s.MarkdownService.Render(memo.Content)
	if err != nil {
		return errJSON(c, http.StatusInternalServerError, "failed to render memo")
	}
	return c.JSON(http.StatusOK, &renderMemoResponse{HTML: html})
}
