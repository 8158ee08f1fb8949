package store

import (
	"context"
	"fmt"

	"entgo.io/ent/dialect"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Table and column names.
const (
	documentsTable       = "documents"
	incentiveEventsTable = "incentive_events"
	snapshotsTable       = "snapshots"
)

var (
	// documentsColumns holds one JSON document per profile.
	documentsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "profile", Type: field.TypeString, Unique: true},
		{Name: "data", Type: field.TypeString, Size: 2147483647},
		{Name: "updated_at", Type: field.TypeInt64},
	}
	documentsSchema = &schema.Table{
		Name:       documentsTable,
		Columns:    documentsColumns,
		PrimaryKey: []*schema.Column{documentsColumns[0]},
	}

	incentiveEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeInt64},
		{Name: "profile", Type: field.TypeString},
		{Name: "session_id", Type: field.TypeString},
		{Name: "kind", Type: field.TypeString},
		{Name: "value", Type: field.TypeInt},
		{Name: "detail", Type: field.TypeString, Default: ""},
	}
	incentiveEventsSchema = &schema.Table{
		Name:       incentiveEventsTable,
		Columns:    incentiveEventsColumns,
		PrimaryKey: []*schema.Column{incentiveEventsColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "incentiveevent_profile_timestamp",
				Columns: []*schema.Column{incentiveEventsColumns[3], incentiveEventsColumns[2]},
			},
		},
	}

	snapshotsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64},
		{Name: "timestamp", Type: field.TypeInt64},
		{Name: "profile", Type: field.TypeString},
		{Name: "reason", Type: field.TypeString},
		{Name: "data", Type: field.TypeString, Size: 2147483647},
	}
	snapshotsSchema = &schema.Table{
		Name:       snapshotsTable,
		Columns:    snapshotsColumns,
		PrimaryKey: []*schema.Column{snapshotsColumns[0]},
	}

	tables = []*schema.Table{
		documentsSchema,
		incentiveEventsSchema,
		snapshotsSchema,
	}
)

// migrate creates missing tables and columns. It never drops anything.
func migrate(ctx context.Context, drv dialect.Driver) error {
	m, err := schema.NewMigrate(drv)
	if err != nil {
		return fmt.Errorf("new migrate: %w", err)
	}
	if err := m.Create(ctx, tables...); err != nil {
		return fmt.Errorf("create tables: %w", err)
	}
	return nil
}
