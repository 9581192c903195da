// Package store provides database access to memos through a
// backend-specific Driver.
package store

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/pkg/errors"

	"github.com/hrygo/memoflow/internal/metrics"
	"github.com/hrygo/memoflow/internal/profile"
)

// Store translates between domain memos and backend storage rows.
//
// Error behavior is deliberately asymmetric per operation: listing
// operations degrade to empty results, single-item reads degrade to
// nil, and mutations propagate errors to the caller. Callers rely on
// each method's specific degrade behavior, so do not unify it.
type Store struct {
	profile *profile.Profile
	driver  Driver
}

// New creates a new instance of Store.
func New(driver Driver, profile *profile.Profile) *Store {
	return &Store{
		driver:  driver,
		profile: profile,
	}
}

func (s *Store) GetDriver() Driver {
	return s.driver
}

func (s *Store) Migrate(ctx context.Context) error {
	return s.driver.Migrate(ctx)
}

func (s *Store) Close() error {
	return s.driver.Close()
}

// ListMemos returns all memos ordered by creation time descending.
// On storage error it logs and returns an empty slice; the UI treats
// a failed listing identically to "no memos".
func (s *Store) ListMemos(ctx context.Context) []*Memo {
	list, err := s.driver.ListMemos(ctx, &FindMemo{})
	metrics.CountStoreOp("list", err)
	if err != nil {
		slog.Error("failed to list memos", "error", err)
		return []*Memo{}
	}
	return list
}

// CreateMemo inserts a fully-formed memo (caller-supplied id and
// timestamps) and returns the stored row as re-read from the backend.
func (s *Store) CreateMemo(ctx context.Context, create *Memo) (*Memo, error) {
	if create.Tags == nil {
		create.Tags = []string{}
	}
	memo, err := s.driver.CreateMemo(ctx, create)
	metrics.CountStoreOp("create", err)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create memo")
	}
	return memo, nil
}

// UpdateMemo updates title, content, category, tags and summary of the
// row matching the id, stamping updated_at.
func (s *Store) UpdateMemo(ctx context.Context, memo *Memo) (*Memo, error) {
	updated, err := s.driver.UpdateMemo(ctx, &UpdateMemo{
		ID:        memo.ID,
		Title:     &memo.Title,
		Content:   &memo.Content,
		Category:  &memo.Category,
		Tags:      &memo.Tags,
		Summary:   memo.Summary,
		UpdatedAt: time.Now().UTC(),
	})
	metrics.CountStoreOp("update", err)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to update memo %s", memo.ID)
	}
	return updated, nil
}

// DeleteMemo deletes by id. Deleting a nonexistent id is not an error.
func (s *Store) DeleteMemo(ctx context.Context, id string) error {
	err := s.driver.DeleteMemo(ctx, id)
	metrics.CountStoreOp("delete", err)
	if err != nil {
		return errors.Wrapf(err, "failed to delete memo %s", id)
	}
	return nil
}

// SearchMemos fetches all memos and filters client-side with a
// case-insensitive substring match against title, content, or any tag.
// Returns an empty slice on storage error instead of propagating.
func (s *Store) SearchMemos(ctx context.Context, query string) []*Memo {
	list, err := s.driver.ListMemos(ctx, &FindMemo{})
	metrics.CountStoreOp("search", err)
	if err != nil {
		slog.Error("failed to search memos", "query", query, "error", err)
		return []*Memo{}
	}
	matched := []*Memo{}
	for _, memo := range list {
		if memo.MatchesQuery(query) {
			matched = append(matched, memo)
		}
	}
	return matched
}

// ListMemosByCategory applies a backend-side equality filter unless the
// category is the reserved "all" pseudo-category.
func (s *Store) ListMemosByCategory(ctx context.Context, category Category) ([]*Memo, error) {
	find := &FindMemo{}
	if category != CategoryAll {
		find.Category = &category
	}
	list, err := s.driver.ListMemos(ctx, find)
	metrics.CountStoreOp("list_by_category", err)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list memos by category %s", category)
	}
	return list, nil
}

// GetMemo returns nil both when the memo does not exist and when the
// backend fails; only the no-rows signal is distinguished internally.
func (s *Store) GetMemo(ctx context.Context, id string) *Memo {
	memo, err := s.driver.GetMemo(ctx, id)
	metrics.CountStoreOp("get", err)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			slog.Error("failed to get memo", "id", id, "error", err)
		}
		return nil
	}
	return memo
}

// UpdateMemoSummary updates the stored summary plus updated_at and
// returns the updated row.
func (s *Store) UpdateMemoSummary(ctx context.Context, id string, summary string) (*Memo, error) {
	updated, err := s.driver.UpdateMemo(ctx, &UpdateMemo{
		ID:        id,
		Summary:   &summary,
		UpdatedAt: time.Now().UTC(),
	})
	metrics.CountStoreOp("update_summary", err)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to update summary of memo %s", id)
	}
	return updated, nil
}

// UpdateMemoTags replaces the stored tag list plus updated_at and
// returns the updated row.
func (s *Store) UpdateMemoTags(ctx context.Context, id string, tags []string) (*Memo, error) {
	if tags == nil {
		tags = []string{}
	}
	updated, err := s.driver.UpdateMemo(ctx, &UpdateMemo{
		ID:        id,
		Tags:      &tags,
		UpdatedAt: time.Now().UTC(),
	})
	metrics.CountStoreOp("update_tags", err)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to update tags of memo %s", id)
	}
	return updated, nil
}
