package store

import (
	"context"

	"entgo.io/ent/dialect"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

var (
	// PerformanceReportsColumns holds the columns for the "performance_reports" table.
	PerformanceReportsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "session_id", Type: field.TypeString},
		{Name: "lesson_id", Type: field.TypeString},
		{Name: "timestamp", Type: field.TypeString},
		{Name: "room2d_found", Type: field.TypeInt, Default: 0},
		{Name: "room2d_targets", Type: field.TypeInt, Default: 0},
		{Name: "room2d_mis_taps", Type: field.TypeInt, Default: 0},
		{Name: "bubble_popped", Type: field.TypeInt, Default: 0},
		{Name: "bubble_total", Type: field.TypeInt, Default: 0},
		{Name: "pic_correct", Type: field.TypeInt, Default: 0},
		{Name: "pic_total", Type: field.TypeInt, Default: 0},
		{Name: "sentence_correct", Type: field.TypeInt, Default: 0},
		{Name: "attempts", Type: field.TypeInt, Default: 0},
		{Name: "payload", Type: field.TypeBytes},
	}
	// PerformanceReportsTable holds the schema information for the "performance_reports" table.
	PerformanceReportsTable = &schema.Table{
		Name:       "performance_reports",
		Columns:    PerformanceReportsColumns,
		PrimaryKey: []*schema.Column{PerformanceReportsColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "performancereport_lesson_id",
				Unique:  false,
				Columns: []*schema.Column{PerformanceReportsColumns[2]},
			},
			{
				Name:    "performancereport_session_id",
				Unique:  false,
				Columns: []*schema.Column{PerformanceReportsColumns[1]},
			},
		},
	}
	// Tables holds all the tables in the schema.
	Tables = []*schema.Table{
		PerformanceReportsTable,
	}
)

// migrate creates or upgrades every table.
func migrate(ctx context.Context, drv dialect.Driver) error {
	m, err := schema.NewMigrate(drv)
	if err != nil {
		return err
	}
	return m.Create(ctx, Tables...)
}
