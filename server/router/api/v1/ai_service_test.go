package v1

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/hrygo/memoflow/ai/summary"
	"github.com/hrygo/memoflow/ai/tags"
	"github.com/hrygo/memoflow/internal/memoview"
	"github.com/hrygo/memoflow/internal/profile"
	"github.com/hrygo/memoflow/plugin/markdown"
	"github.com/hrygo/memoflow/store"
	"github.com/hrygo/memoflow/store/db/sqlite"
)

type stubSummarizer struct {
	calls int
	resp  string
	err   error
}

func (s *stubSummarizer) Summarize(_ context.Context, _ *summary.SummarizeRequest) (*summary.SummarizeResponse, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return &summary.SummarizeResponse{Summary: s.resp}, nil
}

type stubSuggester struct {
	calls int
	resp  []string
	err   error
}

func (s *stubSuggester) Suggest(_ context.Context, _ *tags.SuggestRequest) (*tags.SuggestResponse, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return &tags.SuggestResponse{Tags: s.resp}, nil
}

func newTestService(t *testing.T) (*APIV1Service, *echo.Echo) {
	t.Helper()
	prof := &profile.Profile{
		Mode:   "dev",
		Driver: "sqlite",
		DSN:    filepath.Join(t.TempDir(), "memoflow_test.db"),
	}
	driver, err := sqlite.NewDB(prof)
	require.NoError(t, err)
	st := store.New(driver, prof)
	require.NoError(t, st.Migrate(context.Background()))
	t.Cleanup(func() {
		_ = st.Close()
	})

	service := &APIV1Service{
		Profile:         prof,
		Store:           st,
		Controller:      memoview.New(st),
		MarkdownService: markdown.NewService(),
	}
	service.Controller.Load(context.Background())

	e := echo.New()
	service.RegisterRoutes(e)
	return service, e
}

func doJSON(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func createTestMemo(t *testing.T, service *APIV1Service, title string) *store.Memo {
	t.Helper()
	memo, err := service.Controller.CreateMemo(context.Background(), &memoview.MemoFormData{
		Title:    title,
		Content:  "some content",
		Category: store.CategoryIdea,
	})
	require.NoError(t, err)
	return memo
}

func TestGenerateSummaryMissingField(t *testing.T) {
	service, e := newTestService(t)
	stub := &stubSummarizer{resp: "s"}
	service.Summarizer = stub

	rec := doJSON(e, http.MethodPost, "/summary", `{"memoId":"m1","title":"T"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotEmpty(t, body["error"])

	// No LLM call is attempted when validation fails.
	require.Zero(t, stub.calls)
}

func TestGenerateSummaryNoCredential(t *testing.T) {
	_, e := newTestService(t)

	rec := doJSON(e, http.MethodPost, "/summary", `{"memoId":"m1","title":"T","content":"C"}`)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestGenerateSummaryPersistsAndReturns(t *testing.T) {
	service, e := newTestService(t)
	service.Summarizer = &stubSummarizer{resp: "condensed"}
	memo := createTestMemo(t, service, "T")

	rec := doJSON(e, http.MethodPost, "/summary",
		`{"memoId":"`+memo.ID+`","title":"T","content":"C"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "condensed", body["summary"])

	stored := service.Store.GetMemo(context.Background(), memo.ID)
	require.NotNil(t, stored.Summary)
	require.Equal(t, "condensed", *stored.Summary)
	require.True(t, stored.UpdatedAt.After(memo.UpdatedAt))
}

func TestGenerateSummaryWriteBackFailureStillReturns(t *testing.T) {
	service, e := newTestService(t)
	service.Summarizer = &stubSummarizer{resp: "condensed"}

	// Unknown memo id: persistence fails, the generated value is
	// still returned to the caller.
	rec := doJSON(e, http.MethodPost, "/summary", `{"memoId":"missing","title":"T","content":"C"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "condensed", body["summary"])
}

func TestGenerateSummaryLLMFailure(t *testing.T) {
	service, e := newTestService(t)
	service.Summarizer = &stubSummarizer{err: context.DeadlineExceeded}

	rec := doJSON(e, http.MethodPost, "/summary", `{"memoId":"m1","title":"T","content":"C"}`)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestGenerateTagsMissingField(t *testing.T) {
	service, e := newTestService(t)
	stub := &stubSuggester{resp: []string{"a"}}
	service.Suggester = stub

	rec := doJSON(e, http.MethodPost, "/tags", `{"title":"T","content":"C"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Zero(t, stub.calls)
}

func TestGenerateTagsPersistsAndReturns(t *testing.T) {
	service, e := newTestService(t)
	service.Suggester = &stubSuggester{resp: []string{"x", "y"}}
	memo := createTestMemo(t, service, "T")

	rec := doJSON(e, http.MethodPost, "/tags",
		`{"memoId":"`+memo.ID+`","title":"T","content":"C"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string][]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, []string{"x", "y"}, body["tags"])

	stored := service.Store.GetMemo(context.Background(), memo.ID)
	require.Equal(t, []string{"x", "y"}, stored.Tags)
}
