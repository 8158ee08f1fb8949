package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// documentRepo implements DocumentRepo on the documents table.
type documentRepo struct {
	db *sql.DB
}

func (r *documentRepo) Load(ctx context.Context, profile string) ([]byte, error) {
	b := entsql.Dialect(dialect.SQLite)
	query, args := b.Select("data").
		From(b.Table(documentsTable)).
		Where(entsql.EQ("profile", profile)).
		Query()

	var data string
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load document %q: %w", profile, err)
	}
	return []byte(data), nil
}

func (r *documentRepo) Save(ctx context.Context, profile string, data []byte) error {
	query, args := entsql.Dialect(dialect.SQLite).
		Insert(documentsTable).
		Columns("profile", "data", "updated_at").
		Values(profile, string(data), time.Now().UnixMilli()).
		OnConflict(
			entsql.ConflictColumns("profile"),
			entsql.ResolveWithNewValues(),
		).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save document %q: %w", profile, err)
	}
	return nil
}

func (r *documentRepo) Clear(ctx context.Context, profile string) error {
	query, args := entsql.Dialect(dialect.SQLite).
		Delete(documentsTable).
		Where(entsql.EQ("profile", profile)).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("clear document %q: %w", profile, err)
	}
	return nil
}
