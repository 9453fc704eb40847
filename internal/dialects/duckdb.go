package dialects

import "github.com/coregx/sqldialect/internal/typename"

// DuckDBPriority probes DuckDB right after SQLite; both run in-process.
const DuckDBPriority = 20

// DuckDBDialect implements DuckDB-specific SQL dialect.
type DuckDBDialect struct {
	*Base
}

var _ Dialect = (*DuckDBDialect)(nil)

// NewDuckDB creates the DuckDB dialect.
func NewDuckDB() *DuckDBDialect {
	d := &DuckDBDialect{Base: NewBase(BaseConfig{
		Name:             "duckdb",
		Priority:         DuckDBPriority,
		ParameterPrefix:  "$",
		PositionalPrefix: "$",
		VersionQuery:     "SELECT library_version FROM pragma_version()",
		TableNamesQuery: `SELECT table_name FROM information_schema.tables ` +
			`WHERE table_schema = current_schema() AND table_type = 'BASE TABLE' ORDER BY table_name`,
	})}

	// VARCHAR is unbounded; a declared length is not enforced
	d.RegisterColumnType(typename.AnsiString, "VARCHAR")
	d.RegisterColumnType(typename.AnsiStringFixedLength, "VARCHAR")
	d.RegisterColumnType(typename.String, "VARCHAR")
	d.RegisterColumnType(typename.StringFixedLength, "VARCHAR")
	d.RegisterColumnType(typename.Binary, "BLOB")
	d.RegisterColumnType(typename.Boolean, "BOOLEAN")
	d.RegisterColumnType(typename.Byte, "UTINYINT")
	d.RegisterColumnType(typename.Int16, "SMALLINT")
	d.RegisterColumnType(typename.Int32, "INTEGER")
	d.RegisterColumnType(typename.Int64, "BIGINT")
	d.RegisterColumnType(typename.Single, "REAL")
	d.RegisterColumnType(typename.Double, "DOUBLE")
	d.RegisterColumnType(typename.Decimal, "DECIMAL(18,3)")
	d.RegisterColumnTypeCapacity(typename.Decimal, 38, "DECIMAL($p, $s)")
	d.RegisterColumnType(typename.Date, "DATE")
	d.RegisterColumnType(typename.Time, "TIME")
	d.RegisterColumnType(typename.DateTime, "TIMESTAMP")
	d.RegisterColumnType(typename.DateTimeOffset, "TIMESTAMPTZ")
	d.RegisterColumnType(typename.Guid, "UUID")
	d.Bind(d)
	return d
}
