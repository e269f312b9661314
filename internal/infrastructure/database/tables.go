package database

import (
	"entgo.io/ent/dialect"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Schema descriptors consumed by the ent migration engine and the backup
// service. The repositories write every column explicitly, so no column
// carries a database-side default.
var (
	// WordRootsColumns holds the columns for the "standard_word_roots" table.
	WordRootsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt64, Increment: true},
		{Name: "cn_name", Type: field.TypeString, SchemaType: map[string]string{dialect.Postgres: "text"}},
		{Name: "en_abbr", Type: field.TypeString, SchemaType: map[string]string{dialect.Postgres: "text"}},
		{Name: "en_full_name", Type: field.TypeString, SchemaType: map[string]string{dialect.Postgres: "text"}},
		// associated_terms stores the synonym set as one comma-joined text
		// value so trigram indexes can cover it.
		{Name: "associated_terms", Type: field.TypeString, SchemaType: map[string]string{dialect.Postgres: "text"}},
		{Name: "data_type", Type: field.TypeString, SchemaType: map[string]string{dialect.Postgres: "text"}},
		{Name: "remark", Type: field.TypeString, SchemaType: map[string]string{dialect.Postgres: "text"}},
		{Name: "created_at", Type: field.TypeTime},
		{Name: "updated_at", Type: field.TypeTime},
	}
	// WordRootsTable holds the schema information for the "standard_word_roots" table.
	WordRootsTable = &schema.Table{
		Name:       "standard_word_roots",
		Columns:    WordRootsColumns,
		PrimaryKey: []*schema.Column{WordRootsColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "wordroot_en_abbr",
				Unique:  true,
				Columns: []*schema.Column{WordRootsColumns[2]},
			},
			{
				Name:    "wordroot_cn_name",
				Columns: []*schema.Column{WordRootsColumns[1]},
			},
		},
	}

	// StandardFieldsColumns holds the columns for the "standard_fields" table.
	StandardFieldsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt64, Increment: true},
		{Name: "field_cn_name", Type: field.TypeString, SchemaType: map[string]string{dialect.Postgres: "text"}},
		{Name: "field_en_name", Type: field.TypeString, SchemaType: map[string]string{dialect.Postgres: "text"}},
		// composition_ids keeps the ordered root chain behind the composed
		// name. Postgres stores it natively; sqlite backups fall back to text.
		{Name: "composition_ids", Type: field.TypeOther, SchemaType: map[string]string{dialect.Postgres: "bigint[]", dialect.SQLite: "text"}},
		{Name: "data_type", Type: field.TypeString, SchemaType: map[string]string{dialect.Postgres: "text"}},
		{Name: "is_standard", Type: field.TypeBool},
		{Name: "associated_terms", Type: field.TypeString, SchemaType: map[string]string{dialect.Postgres: "text"}},
		{Name: "remark", Type: field.TypeString, SchemaType: map[string]string{dialect.Postgres: "text"}},
		{Name: "created_at", Type: field.TypeTime},
		{Name: "updated_at", Type: field.TypeTime},
	}
	// StandardFieldsTable holds the schema information for the "standard_fields" table.
	StandardFieldsTable = &schema.Table{
		Name:       "standard_fields",
		Columns:    StandardFieldsColumns,
		PrimaryKey: []*schema.Column{StandardFieldsColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "standardfield_field_en_name",
				Unique:  true,
				Columns: []*schema.Column{StandardFieldsColumns[2]},
			},
			{
				Name:    "standardfield_is_standard",
				Columns: []*schema.Column{StandardFieldsColumns[5]},
			},
		},
	}

	// NotificationTasksColumns holds the columns for the "notification_tasks" table.
	NotificationTasksColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt64, Increment: true},
		{Name: "task_type", Type: field.TypeString, SchemaType: map[string]string{dialect.Postgres: "text"}},
		{Name: "payload", Type: field.TypeJSON},
		{Name: "is_read", Type: field.TypeBool},
		{Name: "resolved_at", Type: field.TypeTime, Nullable: true},
		{Name: "created_at", Type: field.TypeTime},
	}
	// NotificationTasksTable holds the schema information for the "notification_tasks" table.
	NotificationTasksTable = &schema.Table{
		Name:       "notification_tasks",
		Columns:    NotificationTasksColumns,
		PrimaryKey: []*schema.Column{NotificationTasksColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "notificationtask_is_read",
				Columns: []*schema.Column{NotificationTasksColumns[3]},
			},
			{
				Name:    "notificationtask_created_at",
				Columns: []*schema.Column{NotificationTasksColumns[5]},
			},
		},
	}

	// Tables holds all the tables in the schema.
	Tables = []*schema.Table{
		WordRootsTable,
		StandardFieldsTable,
		NotificationTasksTable,
	}
)
