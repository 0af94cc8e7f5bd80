package sqlite

import (
	"fmt"
	"strings"

	"github.com/gushi-cookie/chan-parser/shared/domain"
)

// Declarative schema tables. Each entry maps a domain field name to its
// storage column, with nullability and excludability resolved statically
// instead of through runtime introspection.

type column struct {
	field      string // domain attribute name
	name       string // storage column name
	nullable   bool
	excludable bool // may be dropped from projections (large payloads)
}

type table struct {
	name    string
	columns []column
}

// UnknownFieldError indicates a programming mistake: an update or mapping was
// requested for a field the domain type does not declare. It is raised
// synchronously, before any query is issued.
type UnknownFieldError struct {
	Table string
	Field string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("table %s has no field with the name %q", e.Table, e.Field)
}

// projection lists the table's columns in declared order, comma-joined,
// minus the excluded ones. Exclusion names not present in the table are
// silently ignored.
func (t *table) projection(excludedColumns []string) string {
	excluded := make(map[string]struct{}, len(excludedColumns))
	for _, name := range excludedColumns {
		excluded[name] = struct{}{}
	}

	names := make([]string, 0, len(t.columns))
	for _, c := range t.columns {
		if _, ok := excluded[c.name]; ok {
			continue
		}
		names = append(names, c.name)
	}
	return strings.Join(names, ", ")
}

// columnFor resolves a domain field name to its storage column name.
func (t *table) columnFor(field string) (string, error) {
	for _, c := range t.columns {
		if c.field == field {
			return c.name, nil
		}
	}
	return "", &UnknownFieldError{Table: t.name, Field: field}
}

var filesTable = table{
	name: "files",
	columns: []column{
		{field: "id", name: "id"},
		{field: "postId", name: "post_id"},
		{field: "listIndex", name: "list_index"},
		{field: "url", name: "url"},
		{field: "thumbnailUrl", name: "thumbnail_url"},
		{field: "uploadName", name: "upload_name"},
		{field: "cdnName", name: "cdn_name"},
		{field: "checkSum", name: "check_sum"},
		{field: "isDeleted", name: "is_deleted"},
		{field: "extension", name: "extension", nullable: true},
		{field: "data", name: "data", nullable: true, excludable: true},
		{field: "thumbnailData", name: "thumbnail_data", nullable: true, excludable: true},
	},
}

var postsTable = table{
	name: "posts",
	columns: []column{
		{field: "id", name: "id"},
		{field: "threadId", name: "thread_id"},
		{field: "number", name: "number"},
		{field: "listIndex", name: "list_index"},
		{field: "createTimestamp", name: "create_timestamp"},
		{field: "name", name: "name"},
		{field: "comment", name: "comment"},
		{field: "isBanned", name: "is_banned"},
		{field: "isDeleted", name: "is_deleted"},
		{field: "isOp", name: "is_op"},
	},
}

var threadsTable = table{
	name: "threads",
	columns: []column{
		{field: "id", name: "id"},
		{field: "imageBoard", name: "image_board"},
		{field: "board", name: "board"},
		{field: "number", name: "number"},
		{field: "title", name: "title"},
		{field: "postersCount", name: "posters_count"},
		{field: "createTimestamp", name: "create_timestamp"},
		{field: "viewsCount", name: "views_count"},
		{field: "lastActivity", name: "last_activity"},
		{field: "isDeleted", name: "is_deleted"},
	},
}

// setClause renders "col_a = ?, col_b = ?" for a partial update over the
// named domain fields. Unknown or empty field lists fail before any SQL is
// built.
func (t *table) setClause(fields []string) (string, error) {
	if len(fields) == 0 {
		return "", fmt.Errorf("no fields given for %s update", t.name)
	}

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		name, err := t.columnFor(field)
		if err != nil {
			return "", err
		}
		parts = append(parts, name+" = ?")
	}
	return strings.Join(parts, ", "), nil
}

// optStringAt maps a projected nullable TEXT column into its three states:
// absent from the row (not loaded), NULL, or a value.
func (r row) optStringAt(column string) domain.Opt[string] {
	v, ok := r[column]
	if !ok {
		return domain.Opt[string]{}
	}
	switch value := v.(type) {
	case string:
		return domain.Some(value)
	case []byte:
		return domain.Some(string(value))
	default:
		return domain.Null[string]()
	}
}

// optBytesAt is optStringAt for BLOB columns.
func (r row) optBytesAt(column string) domain.Opt[[]byte] {
	v, ok := r[column]
	if !ok {
		return domain.Opt[[]byte]{}
	}
	switch value := v.(type) {
	case []byte:
		return domain.Some(value)
	case string:
		return domain.Some([]byte(value))
	default:
		return domain.Null[[]byte]()
	}
}

// placeholders renders "?, ?, ..." for n bind parameters.
func placeholders(n int) string {
	if n == 0 {
		return ""
	}
	return "?" + strings.Repeat(", ?", n-1)
}

// idArg binds an unset (zero) id as NULL so the engine assigns one.
func idArg(id int64) any {
	if id == 0 {
		return nil
	}
	return id
}

// boolArg converts a logical boolean to its integer-encoded storage form.
func boolArg(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
