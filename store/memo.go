package store

import (
	"strings"
	"time"
)

// Category classifies a memo.
type Category string

const (
	CategoryPersonal Category = "personal"
	CategoryWork     Category = "work"
	CategoryStudy    Category = "study"
	CategoryIdea     Category = "idea"
	CategoryOther    Category = "other"

	// CategoryAll is a reserved pseudo-category used only for filtering.
	// It is never stored on a memo.
	CategoryAll Category = "all"
)

// IsStorable reports whether the category may be persisted on a memo.
func (c Category) IsStorable() bool {
	switch c {
	case CategoryPersonal, CategoryWork, CategoryStudy, CategoryIdea, CategoryOther:
		return true
	}
	return false
}

// Memo is the core note entity.
type Memo struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Category Category `json:"category"`
	Tags     []string `json:"tags"`
	Summary  *string  `json:"summary,omitempty"`

	// CreatedAt is set once at creation and never changed.
	// UpdatedAt is set on every mutation, including summary/tag updates.
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FindMemo is the find condition for memos.
type FindMemo struct {
	ID       *string
	Category *Category
}

// UpdateMemo is the update condition for a memo. Nil fields are left
// untouched; UpdatedAt is always written.
type UpdateMemo struct {
	ID        string
	Title     *string
	Content   *string
	Category  *Category
	Tags      *[]string
	Summary   *string
	UpdatedAt time.Time
}

// MatchesQuery reports whether the memo matches a free-text query:
// case-insensitive substring match against title, content, or any tag.
// An empty or whitespace-only query matches everything.
func (m *Memo) MatchesQuery(query string) bool {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return true
	}
	if strings.Contains(strings.ToLower(m.Title), query) {
		return true
	}
	if strings.Contains(strings.ToLower(m.Content), query) {
		return true
	}
	for _, tag := range m.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}
