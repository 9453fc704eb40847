package dialects

import "github.com/coregx/sqldialect/internal/typename"

// SQLitePriority probes the embedded engine before any server engine.
const SQLitePriority = 10

// SQLiteDialect implements SQLite-specific SQL dialect.
type SQLiteDialect struct {
	*Base
}

var _ Dialect = (*SQLiteDialect)(nil)

// NewSQLite creates the SQLite dialect.
// SQLite has type affinity rather than sized types, so lengths never change
// the resolved name.
func NewSQLite() *SQLiteDialect {
	d := &SQLiteDialect{Base: NewBase(BaseConfig{
		Name:            "sqlite",
		Aliases:         []string{"sqlite3"},
		Priority:        SQLitePriority,
		VersionQuery:    "SELECT sqlite_version()",
		TableNamesQuery: "SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name",
	})}

	d.RegisterColumnType(typename.AnsiString, "TEXT")
	d.RegisterColumnType(typename.AnsiStringFixedLength, "TEXT")
	d.RegisterColumnType(typename.String, "TEXT")
	d.RegisterColumnType(typename.StringFixedLength, "TEXT")
	d.RegisterColumnType(typename.Binary, "BLOB")
	d.RegisterColumnType(typename.Boolean, "BOOLEAN")
	d.RegisterColumnType(typename.Byte, "TINYINT")
	d.RegisterColumnType(typename.Int16, "SMALLINT")
	d.RegisterColumnType(typename.Int32, "INT")
	d.RegisterColumnType(typename.Int64, "BIGINT")
	d.RegisterColumnType(typename.Single, "REAL")
	d.RegisterColumnType(typename.Double, "DOUBLE")
	d.RegisterColumnType(typename.Decimal, "NUMERIC")
	d.RegisterColumnType(typename.Date, "DATE")
	d.RegisterColumnType(typename.Time, "TIME")
	d.RegisterColumnType(typename.DateTime, "DATETIME")
	d.RegisterColumnType(typename.DateTimeOffset, "DATETIME")
	d.RegisterColumnType(typename.Guid, "UNIQUEIDENTIFIER")
	d.Bind(d)
	return d
}
