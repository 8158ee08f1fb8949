package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Profile string    // exact profile match ("" = all)
	Limit   int       // max results (0 = unlimited)
	After   int64     // sequence > After
	Before  int64     // sequence < Before
	From    time.Time // timestamp >= From
	To      time.Time // timestamp <= To
}

// DocumentRepo stores one opaque document per profile.
type DocumentRepo interface {
	// Load returns the stored document, or nil with no error when the
	// profile has none.
	Load(ctx context.Context, profile string) ([]byte, error)

	// Save replaces the stored document.
	Save(ctx context.Context, profile string, data []byte) error

	// Clear removes the stored document. Clearing a missing profile is not
	// an error.
	Clear(ctx context.Context, profile string) error
}

// IncentiveEventData captures a single incentive award.
type IncentiveEventData struct {
	Profile   string
	SessionID string
	Kind      string
	Value     int
	Detail    string
	Timestamp time.Time
}

// IncentiveEventRecord is a stored incentive event.
type IncentiveEventRecord struct {
	IncentiveEventData
	Sequence int64
}

// EventRepo provides append and query access to incentive events.
type EventRepo interface {
	// AppendIncentiveEvent records one award with the next global sequence.
	AppendIncentiveEvent(ctx context.Context, data IncentiveEventData) error

	// QueryIncentiveEvents returns matching events, newest first.
	QueryIncentiveEvents(ctx context.Context, opts QueryOpts) ([]IncentiveEventRecord, error)

	// IncentiveCounts returns the number of events per kind for a profile.
	IncentiveCounts(ctx context.Context, profile string) (map[string]int, error)
}

// Snapshot is a backup copy of a profile document.
type Snapshot struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	Profile   string
	Reason    string
	Data      []byte
}

// SnapshotRepo keeps backups of documents that are about to be discarded.
type SnapshotRepo interface {
	// Save stores a new snapshot. A zero Sequence is assigned from the
	// global counter.
	Save(ctx context.Context, snap *Snapshot) error

	// Latest returns the most recent snapshot of profile, or nil if none exist.
	Latest(ctx context.Context, profile string) (*Snapshot, error)

	// Prune deletes all but the N most recent snapshots of profile.
	Prune(ctx context.Context, profile string, keep int) error
}
