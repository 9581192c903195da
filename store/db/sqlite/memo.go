package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/hrygo/memoflow/store"
)

// Timestamps are stored as ISO-8601 text. The fixed-width fractional
// part keeps the column lexicographically sortable and updated_at
// strictly increasing across rapid consecutive mutations.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func (d *DB) CreateMemo(ctx context.Context, create *store.Memo) (*store.Memo, error) {
	tagsJSON, err := json.Marshal(create.Tags)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode tags")
	}

	stmt := `
		INSERT INTO memos (id, title, content, category, tags, summary, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id, title, content, category, tags, summary, created_at, updated_at
	`
	row := d.db.QueryRowContext(ctx, stmt,
		create.ID,
		create.Title,
		create.Content,
		create.Category,
		string(tagsJSON),
		create.Summary,
		create.CreatedAt.UTC().Format(timeLayout),
		create.UpdatedAt.UTC().Format(timeLayout),
	)
	memo, err := scanMemo(row)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create memo")
	}
	return memo, nil
}

func (d *DB) ListMemos(ctx context.Context, find *store.FindMemo) ([]*store.Memo, error) {
	where, args := []string{"1 = 1"}, []any{}

	if find.ID != nil {
		where, args = append(where, "id = ?"), append(args, *find.ID)
	}
	if find.Category != nil {
		where, args = append(where, "category = ?"), append(args, *find.Category)
	}

	query := `
		SELECT id, title, content, category, tags, summary, created_at, updated_at
		FROM memos
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY created_at DESC
	`
	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list memos")
	}
	defer rows.Close()

	list := []*store.Memo{}
	for rows.Next() {
		memo, err := scanMemo(rows)
		if err != nil {
			return nil, errors.Wrap(err, "failed to scan memo")
		}
		list = append(list, memo)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return list, nil
}

func (d *DB) GetMemo(ctx context.Context, id string) (*store.Memo, error) {
	stmt := `
		SELECT id, title, content, category, tags, summary, created_at, updated_at
		FROM memos
		WHERE id = ?
	`
	memo, err := scanMemo(d.db.QueryRowContext(ctx, stmt, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Not-found is a distinguished signal, not a storage failure.
			return nil, sql.ErrNoRows
		}
		return nil, errors.Wrapf(err, "failed to get memo %s", id)
	}
	return memo, nil
}

func (d *DB) UpdateMemo(ctx context.Context, update *store.UpdateMemo) (*store.Memo, error) {
	set, args := []string{"updated_at = ?"}, []any{update.UpdatedAt.UTC().Format(timeLayout)}
	if v := update.Title; v != nil {
		set, args = append(set, "title = ?"), append(args, *v)
	}
	if v := update.Content; v != nil {
		set, args = append(set, "content = ?"), append(args, *v)
	}
	if v := update.Category; v != nil {
		set, args = append(set, "category = ?"), append(args, *v)
	}
	if v := update.Tags; v != nil {
		tagsJSON, err := json.Marshal(*v)
		if err != nil {
			return nil, errors.Wrap(err, "failed to encode tags")
		}
		set, args = append(set, "tags = ?"), append(args, string(tagsJSON))
	}
	if v := update.Summary; v != nil {
		set, args = append(set, "summary = ?"), append(args, *v)
	}
	args = append(args, update.ID)

	stmt := `
		UPDATE memos
		SET ` + strings.Join(set, ", ") + `
		WHERE id = ?
		RETURNING id, title, content, category, tags, summary, created_at, updated_at
	`
	memo, err := scanMemo(d.db.QueryRowContext(ctx, stmt, args...))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to update memo %s", update.ID)
	}
	return memo, nil
}

func (d *DB) DeleteMemo(ctx context.Context, id string) error {
	stmt := `DELETE FROM memos WHERE id = ?`
	if _, err := d.db.ExecContext(ctx, stmt, id); err != nil {
		return errors.Wrapf(err, "failed to delete memo %s", id)
	}
	// No affected-rows check: deleting a nonexistent id succeeds silently.
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMemo(row rowScanner) (*store.Memo, error) {
	var memo store.Memo
	var tagsJSON, summary sql.NullString
	var createdAt, updatedAt string
	if err := row.Scan(
		&memo.ID,
		&memo.Title,
		&memo.Content,
		&memo.Category,
		&tagsJSON,
		&summary,
		&createdAt,
		&updatedAt,
	); err != nil {
		return nil, err
	}

	memo.Tags = []string{}
	if tagsJSON.Valid && tagsJSON.String != "" {
		if err := json.Unmarshal([]byte(tagsJSON.String), &memo.Tags); err != nil {
			return nil, errors.Wrap(err, "failed to decode tags")
		}
		if memo.Tags == nil {
			memo.Tags = []string{}
		}
	}
	if summary.Valid {
		memo.Summary = &summary.String
	}

	var err error
	if memo.CreatedAt, err = time.Parse(timeLayout, createdAt); err != nil {
		return nil, errors.Wrap(err, "failed to parse created_at")
	}
	if memo.UpdatedAt, err = time.Parse(timeLayout, updatedAt); err != nil {
		return nil, errors.Wrap(err, "failed to parse updated_at")
	}
	return &memo, nil
}
