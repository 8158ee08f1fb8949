package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// sequenceCounter manages the global monotonic sequence number shared by
// incentive events and snapshots. Per-table auto-increment IDs can't order
// rows across tables, so every row takes its sequence from here.
//
// Uses raw SQL because the builders have no atomic counter. The mutex
// serializes within the process; the RETURNING clause makes the increment
// atomic at the database level.
type sequenceCounter struct {
	mu sync.Mutex
	db *sql.DB
}

// newSequenceCounter creates a counter and ensures the tracking table exists.
func newSequenceCounter(db *sql.DB) (*sequenceCounter, error) {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS global_sequence (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		next_val INTEGER NOT NULL DEFAULT 1
	)`)
	if err != nil {
		return nil, fmt.Errorf("create sequence table: %w", err)
	}

	_, err = db.Exec(`INSERT OR IGNORE INTO global_sequence (id, next_val) VALUES (1, 1)`)
	if err != nil {
		return nil, fmt.Errorf("seed sequence: %w", err)
	}

	return &sequenceCounter{db: db}, nil
}

// Next atomically returns the next sequence number and increments the counter.
func (sc *sequenceCounter) Next(ctx context.Context) (int64, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	var seq int64
	err := sc.db.QueryRowContext(ctx,
		`UPDATE global_sequence SET next_val = next_val + 1 WHERE id = 1 RETURNING next_val - 1`,
	).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return seq, nil
}

// eventRepo implements EventRepo on the incentive_events table.
type eventRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func (r *eventRepo) AppendIncentiveEvent(ctx context.Context, data IncentiveEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	ts := data.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(incentiveEventsTable).
		Columns("sequence", "timestamp", "profile", "session_id", "kind", "value", "detail").
		Values(seqNum, ts.UnixMilli(), data.Profile, data.SessionID, data.Kind, data.Value, data.Detail).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save incentive event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryIncentiveEvents(ctx context.Context, opts QueryOpts) ([]IncentiveEventRecord, error) {
	b := entsql.Dialect(dialect.SQLite)
	sel := b.Select("sequence", "timestamp", "profile", "session_id", "kind", "value", "detail").
		From(b.Table(incentiveEventsTable)).
		OrderBy(entsql.Desc("sequence"))

	var preds []*entsql.Predicate
	if opts.Profile != "" {
		preds = append(preds, entsql.EQ("profile", opts.Profile))
	}
	if opts.After > 0 {
		preds = append(preds, entsql.GT("sequence", opts.After))
	}
	if opts.Before > 0 {
		preds = append(preds, entsql.LT("sequence", opts.Before))
	}
	if !opts.From.IsZero() {
		preds = append(preds, entsql.GTE("timestamp", opts.From.UnixMilli()))
	}
	if !opts.To.IsZero() {
		preds = append(preds, entsql.LTE("timestamp", opts.To.UnixMilli()))
	}
	if len(preds) > 0 {
		sel = sel.Where(entsql.And(preds...))
	}
	if opts.Limit > 0 {
		sel = sel.Limit(opts.Limit)
	}

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query incentive events: %w", err)
	}
	defer rows.Close()

	var records []IncentiveEventRecord
	for rows.Next() {
		var (
			rec IncentiveEventRecord
			ts  int64
		)
		if err := rows.Scan(&rec.Sequence, &ts, &rec.Profile, &rec.SessionID, &rec.Kind, &rec.Value, &rec.Detail); err != nil {
			return nil, fmt.Errorf("scan incentive event: %w", err)
		}
		rec.Timestamp = time.UnixMilli(ts)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate incentive events: %w", err)
	}
	return records, nil
}

func (r *eventRepo) IncentiveCounts(ctx context.Context, profile string) (map[string]int, error) {
	b := entsql.Dialect(dialect.SQLite)
	query, args := b.Select("kind", entsql.Count("*")).
		From(b.Table(incentiveEventsTable)).
		Where(entsql.EQ("profile", profile)).
		GroupBy("kind").
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query incentive counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var (
			kind string
			n    int
		)
		if err := rows.Scan(&kind, &n); err != nil {
			return nil, fmt.Errorf("scan incentive count: %w", err)
		}
		counts[kind] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate incentive counts: %w", err)
	}
	return counts, nil
}
