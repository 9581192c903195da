// Package memoview holds the client-facing memo state: a cached copy
// of all memos plus derived filtered views and aggregate counts.
package memoview

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/hrygo/memoflow/store"
)

// ErrInvalidForm marks memo input rejected before reaching storage.
var ErrInvalidForm = errors.New("invalid memo form")

// Repository is the slice of the store the controller depends on.
type Repository interface {
	ListMemos(ctx context.Context) []*store.Memo
	CreateMemo(ctx context.Context, create *store.Memo) (*store.Memo, error)
	UpdateMemo(ctx context.Context, memo *store.Memo) (*store.Memo, error)
	DeleteMemo(ctx context.Context, id string) error
	UpdateMemoSummary(ctx context.Context, id string, summary string) (*store.Memo, error)
	UpdateMemoTags(ctx context.Context, id string, tags []string) (*store.Memo, error)
}

// MemoFormData is the user-supplied part of a new memo.
type MemoFormData struct {
	Title    string         `json:"title"`
	Content  string         `json:"content"`
	Category store.Category `json:"category"`
	Tags     []string       `json:"tags"`
}

// Stats are aggregate counts derived from the cache and filters.
type Stats struct {
	Total      int                    `json:"total"`
	ByCategory map[store.Category]int `json:"byCategory"`
	Filtered   int                    `json:"filtered"`
}

// Controller caches all memos and two independent filter parameters.
// The cache is only mutated after the repository confirms a change,
// never optimistically before.
type Controller struct {
	repo Repository

	mu       sync.Mutex
	memos    []*store.Memo
	query    string
	category store.Category
	loaded   bool
}

// New creates a Controller with an empty cache and no filters.
func New(repo Repository) *Controller {
	return &Controller{
		repo:     repo,
		memos:    []*store.Memo{},
		category: store.CategoryAll,
	}
}

// Load fetches the full memo set once. Subsequent calls are no-ops;
// the cache is maintained incrementally by the mutating operations.
func (c *Controller) Load(ctx context.Context) {
	c.mu.Lock()
	if c.loaded {
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()

	memos := c.repo.ListMemos(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.memos = memos
	c.loaded = true
}

// CreateMemo mints an id locally, persists the memo, and inserts it at
// the front of the cache once the repository confirms.
func (c *Controller) CreateMemo(ctx context.Context, form *MemoFormData) (*store.Memo, error) {
	if form.Title == "" {
		return nil, errors.Wrap(ErrInvalidForm, "title is required")
	}
	if !form.Category.IsStorable() {
		return nil, errors.Wrapf(ErrInvalidForm, "invalid category %q", form.Category)
	}

	tags := form.Tags
	if tags == nil {
		tags = []string{}
	}
	now := time.Now().UTC()
	memo := &store.Memo{
		ID:        uuid.NewString(),
		Title:     form.Title,
		Content:   form.Content,
		Category:  form.Category,
		Tags:      tags,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := c.repo.CreateMemo(ctx, memo)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.memos = append([]*store.Memo{created}, c.memos...)
	return created, nil
}

// UpdateMemo persists the full edit, then replaces the cached entry.
func (c *Controller) UpdateMemo(ctx context.Context, memo *store.Memo) (*store.Memo, error) {
	updated, err := c.repo.UpdateMemo(ctx, memo)
	if err != nil {
		return nil, err
	}
	c.replace(updated)
	return updated, nil
}

// DeleteMemo removes the memo from storage, then from the cache.
func (c *Controller) DeleteMemo(ctx context.Context, id string) error {
	if err := c.repo.DeleteMemo(ctx, id); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.memos = removeByID(c.memos, id)
	return nil
}

// UpdateSummary persists a new summary, then refreshes the cached row.
func (c *Controller) UpdateSummary(ctx context.Context, id string, summary string) (*store.Memo, error) {
	updated, err := c.repo.UpdateMemoSummary(ctx, id, summary)
	if err != nil {
		return nil, err
	}
	c.replace(updated)
	return updated, nil
}

// UpdateTags persists a new tag list, then refreshes the cached row.
func (c *Controller) UpdateTags(ctx context.Context, id string, tags []string) (*store.Memo, error) {
	updated, err := c.repo.UpdateMemoTags(ctx, id, tags)
	if err != nil {
		return nil, err
	}
	c.replace(updated)
	return updated, nil
}

// SetQuery sets the free-text filter.
func (c *Controller) SetQuery(query string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.query = query
}

// SetCategory sets the category filter. The reserved "all" value
// disables category filtering.
func (c *Controller) SetCategory(category store.Category) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.category = category
}

// GetMemo returns the cached memo with the given id, or nil.
func (c *Controller) GetMemo(id string) *store.Memo {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, memo := range c.memos {
		if memo.ID == id {
			return memo
		}
	}
	return nil
}

// Filtered derives the visible memo list: the category filter applies
// before the substring query filter.
func (c *Controller) Filtered() []*store.Memo {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filteredLocked()
}

// ApplyFilters sets both filters and derives the filtered view under a
// single lock acquisition, so concurrent callers each get a view
// consistent with their own parameters.
func (c *Controller) ApplyFilters(category store.Category, query string) []*store.Memo {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.category = category
	c.query = query
	return c.filteredLocked()
}

func (c *Controller) filteredLocked() []*store.Memo {
	filtered := []*store.Memo{}
	for _, memo := range c.memos {
		if c.category != store.CategoryAll && memo.Category != c.category {
			continue
		}
		if !memo.MatchesQuery(c.query) {
			continue
		}
		filtered = append(filtered, memo)
	}
	return filtered
}

// Stats recomputes aggregate counts from the cache and current filters.
func (c *Controller) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	byCategory := map[store.Category]int{}
	for _, memo := range c.memos {
		byCategory[memo.Category]++
	}
	return Stats{
		Total:      len(c.memos),
		ByCategory: byCategory,
		Filtered:   len(c.filteredLocked()),
	}
}

// ClearAll deletes every cached memo with one concurrent delete call
// per memo. Any single failure fails the whole operation; memos already
// deleted stay deleted (no rollback). On success the cache and both
// filters are reset.
func (c *Controller) ClearAll(ctx context.Context) error {
	c.mu.Lock()
	ids := make([]string, 0, len(c.memos))
	for _, memo := range c.memos {
		ids = append(ids, memo.ID)
	}
	c.mu.Unlock()

	g, gctx := errgroup.WithContext(ctx)
	for _, id := range ids {
		g.Go(func() error {
			return c.repo.DeleteMemo(gctx, id)
		})
	}
	if err := g.Wait(); err != nil {
		return errors.Wrap(err, "failed to clear memos")
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.memos = []*store.Memo{}
	c.query = ""
	c.category = store.CategoryAll
	return nil
}

func (c *Controller) replace(updated *store.Memo) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, memo := range c.memos {
		if memo.ID == updated.ID {
			c.memos[i] = updated
			return
		}
	}
}

func removeByID(memos []*store.Memo, id string) []*store.Memo {
	remaining := make([]*store.Memo, 0, len(memos))
	for _, memo := range memos {
		if memo.ID != id {
			remaining = append(remaining, memo)
		}
	}
	return remaining
}
