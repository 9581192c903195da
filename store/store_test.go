package store_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/hrygo/memoflow/internal/profile"
	"github.com/hrygo/memoflow/store"
	"github.com/hrygo/memoflow/store/db/sqlite"
)

func newTestStore(t *testing.T) *store.Store {
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
	return st
}

func newMemo(title string, category store.Category, tags []string) *store.Memo {
	now := time.Now().UTC()
	if tags == nil {
		tags = []string{}
	}
	return &store.Memo{
		ID:        uuid.NewString(),
		Title:     title,
		Content:   "content of " + title,
		Category:  category,
		Tags:      tags,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestCreateAndGetMemo(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	memo := newMemo("T", store.CategoryIdea, nil)
	created, err := st.CreateMemo(ctx, memo)
	require.NoError(t, err)
	require.Equal(t, memo.ID, created.ID)
	require.True(t, created.CreatedAt.Equal(created.UpdatedAt))
	require.Equal(t, []string{}, created.Tags)
	require.Nil(t, created.Summary)

	fetched := st.GetMemo(ctx, memo.ID)
	require.NotNil(t, fetched)
	require.Equal(t, "T", fetched.Title)
	require.True(t, fetched.CreatedAt.Equal(created.CreatedAt))
}

func TestGetMemoNotFound(t *testing.T) {
	st := newTestStore(t)
	require.Nil(t, st.GetMemo(context.Background(), uuid.NewString()))
}

func TestListMemosOrder(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	first := newMemo("first", store.CategoryIdea, nil)
	_, err := st.CreateMemo(ctx, first)
	require.NoError(t, err)

	second := newMemo("second", store.CategoryWork, nil)
	second.CreatedAt = first.CreatedAt.Add(time.Second)
	second.UpdatedAt = second.CreatedAt
	_, err = st.CreateMemo(ctx, second)
	require.NoError(t, err)

	list := st.ListMemos(ctx)
	require.Len(t, list, 2)
	require.Equal(t, "second", list[0].Title)
	require.Equal(t, "first", list[1].Title)
}

func TestDeleteMemo(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	memo := newMemo("T", store.CategoryIdea, nil)
	_, err := st.CreateMemo(ctx, memo)
	require.NoError(t, err)

	require.NoError(t, st.DeleteMemo(ctx, memo.ID))
	require.Nil(t, st.GetMemo(ctx, memo.ID))

	// Deleting a nonexistent id succeeds silently.
	require.NoError(t, st.DeleteMemo(ctx, memo.ID))
}

func TestSearchMemos(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	_, err := st.CreateMemo(ctx, newMemo("Grocery List", store.CategoryPersonal, nil))
	require.NoError(t, err)
	_, err = st.CreateMemo(ctx, newMemo("Sprint", store.CategoryWork, []string{"Planning"}))
	require.NoError(t, err)

	require.Len(t, st.SearchMemos(ctx, "grocery"), 1)
	require.Len(t, st.SearchMemos(ctx, "PLAN"), 1)   // tag match, case-insensitive
	require.Len(t, st.SearchMemos(ctx, "content"), 2) // content match
	require.Len(t, st.SearchMemos(ctx, ""), 2)
	require.Empty(t, st.SearchMemos(ctx, "nothing-here"))
}

func TestListMemosByCategory(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	_, err := st.CreateMemo(ctx, newMemo("A", store.CategoryIdea, nil))
	require.NoError(t, err)
	_, err = st.CreateMemo(ctx, newMemo("B", store.CategoryWork, nil))
	require.NoError(t, err)

	all, err := st.ListMemosByCategory(ctx, store.CategoryAll)
	require.NoError(t, err)
	require.Len(t, all, 2)

	ideas, err := st.ListMemosByCategory(ctx, store.CategoryIdea)
	require.NoError(t, err)
	require.Len(t, ideas, 1)
	require.Equal(t, "A", ideas[0].Title)
}

func TestUpdateMemoTags(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	memo := newMemo("T", store.CategoryIdea, nil)
	created, err := st.CreateMemo(ctx, memo)
	require.NoError(t, err)

	updated, err := st.UpdateMemoTags(ctx, memo.ID, []string{"x", "y"})
	require.NoError(t, err)
	require.Equal(t, []string{"x", "y"}, updated.Tags)
	require.True(t, updated.UpdatedAt.After(created.UpdatedAt))
	require.True(t, updated.CreatedAt.Equal(created.CreatedAt))
}

func TestUpdateMemoSummary(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	memo := newMemo("T", store.CategoryIdea, nil)
	_, err := st.CreateMemo(ctx, memo)
	require.NoError(t, err)

	updated, err := st.UpdateMemoSummary(ctx, memo.ID, "a short summary")
	require.NoError(t, err)
	require.NotNil(t, updated.Summary)
	require.Equal(t, "a short summary", *updated.Summary)
}

func TestUpdateMemoFull(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	memo := newMemo("T", store.CategoryIdea, nil)
	_, err := st.CreateMemo(ctx, memo)
	require.NoError(t, err)

	memo.Title = "T2"
	memo.Category = store.CategoryWork
	memo.Tags = []string{"z"}
	updated, err := st.UpdateMemo(ctx, memo)
	require.NoError(t, err)
	require.Equal(t, "T2", updated.Title)
	require.Equal(t, store.CategoryWork, updated.Category)
	require.Equal(t, []string{"z"}, updated.Tags)
}

func TestUpdateMissingMemoPropagates(t *testing.T) {
	st := newTestStore(t)
	_, err := st.UpdateMemoSummary(context.Background(), uuid.NewString(), "s")
	require.Error(t, err)
}

// failingDriver simulates a backend outage for every operation.
type failingDriver struct{}

func (failingDriver) GetDB() *sql.DB                   { return nil }
func (failingDriver) Close() error                     { return nil }
func (failingDriver) Migrate(context.Context) error    { return errors.New("backend down") }
func (failingDriver) CreateMemo(context.Context, *store.Memo) (*store.Memo, error) {
	return nil, errors.New("backend down")
}
func (failingDriver) ListMemos(context.Context, *store.FindMemo) ([]*store.Memo, error) {
	return nil, errors.New("backend down")
}
func (failingDriver) GetMemo(context.Context, string) (*store.Memo, error) {
	return nil, errors.New("backend down")
}
func (failingDriver) UpdateMemo(context.Context, *store.UpdateMemo) (*store.Memo, error) {
	return nil, errors.New("backend down")
}
func (failingDriver) DeleteMemo(context.Context, string) error {
	return errors.New("backend down")
}

// Listing operations degrade to empty results, single-item reads
// degrade to nil, and mutations propagate. Callers depend on this
// per-operation split.
func TestErrorPolicy(t *testing.T) {
	ctx := context.Background()
	st := store.New(failingDriver{}, &profile.Profile{Driver: "sqlite"})

	require.Empty(t, st.ListMemos(ctx))
	require.Empty(t, st.SearchMemos(ctx, "anything"))
	require.Nil(t, st.GetMemo(ctx, "some-id"))

	_, err := st.CreateMemo(ctx, newMemo("T", store.CategoryIdea, nil))
	require.Error(t, err)
	_, err = st.UpdateMemo(ctx, newMemo("T", store.CategoryIdea, nil))
	require.Error(t, err)
	require.Error(t, st.DeleteMemo(ctx, "some-id"))
	_, err = st.UpdateMemoSummary(ctx, "some-id", "s")
	require.Error(t, err)
	_, err = st.UpdateMemoTags(ctx, "some-id", []string{"x"})
	require.Error(t, err)
	_, err = st.ListMemosByCategory(ctx, store.CategoryIdea)
	require.Error(t, err)
}
