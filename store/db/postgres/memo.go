package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/hrygo/memoflow/store"
)

func (d *DB) CreateMemo(ctx context.Context, create *store.Memo) (*store.Memo, error) {
	stmt := `
		INSERT INTO memos (id, title, content, category, tags, summary, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, title, content, category, tags, summary, created_at, updated_at
	`
	row := d.db.QueryRowContext(ctx, stmt,
		create.ID,
		create.Title,
		create.Content,
		create.Category,
		pq.Array(create.Tags),
		create.Summary,
		create.CreatedAt.UTC(),
		create.UpdatedAt.UTC(),
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
		args = append(args, *find.ID)
		where = append(where, fmt.Sprintf("id = $%d", len(args)))
	}
	if find.Category != nil {
		args = append(args, *find.Category)
		where = append(where, fmt.Sprintf("category = $%d", len(args)))
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
		WHERE id = $1
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
	set, args := []string{}, []any{}
	args = append(args, update.UpdatedAt.UTC())
	set = append(set, fmt.Sprintf("updated_at = $%d", len(args)))
	if v := update.Title; v != nil {
		args = append(args, *v)
		set = append(set, fmt.Sprintf("title = $%d", len(args)))
	}
	if v := update.Content; v != nil {
		args = append(args, *v)
		set = append(set, fmt.Sprintf("content = $%d", len(args)))
	}
	if v := update.Category; v != nil {
		args = append(args, *v)
		set = append(set, fmt.Sprintf("category = $%d", len(args)))
	}
	if v := update.Tags; v != nil {
		args = append(args, pq.Array(*v))
		set = append(set, fmt.Sprintf("tags = $%d", len(args)))
	}
	if v := update.Summary; v != nil {
		args = append(args, *v)
		set = append(set, fmt.Sprintf("summary = $%d", len(args)))
	}
	args = append(args, update.ID)

	stmt := `
		UPDATE memos
		SET ` + strings.Join(set, ", ") + `
		WHERE id = $` + fmt.Sprint(len(args)) + `
		RETURNING id, title, content, category, tags, summary, created_at, updated_at
	`
	memo, err := scanMemo(d.db.QueryRowContext(ctx, stmt, args...))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to update memo %s", update.ID)
	}
	return memo, nil
}

func (d *DB) DeleteMemo(ctx context.Context, id string) error {
	stmt := `DELETE FROM memos WHERE id = $1`
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
	var summary sql.NullString
	if err := row.Scan(
		&memo.ID,
		&memo.Title,
		&memo.Content,
		&memo.Category,
		pq.Array(&memo.Tags),
		&summary,
		&memo.CreatedAt,
		&memo.UpdatedAt,
	); err != nil {
		return nil, err
	}
	// NULL tags column normalizes to an empty slice.
	if memo.Tags == nil {
		memo.Tags = []string{}
	}
	if summary.Valid {
		memo.Summary = &summary.String
	}
	return &memo, nil
}
