package dialects

import "github.com/coregx/sqldialect/internal/typename"

// PostgresDialect implements PostgreSQL-specific SQL dialect.
type PostgresDialect struct {
	*Base
}

var _ Dialect = (*PostgresDialect)(nil)

// NewPostgres creates the PostgreSQL dialect.
func NewPostgres() *PostgresDialect {
	d := &PostgresDialect{Base: NewBase(BaseConfig{
		Name:             "postgres",
		Aliases:          []string{"postgresql", "pgx", "pq"},
		PositionalPrefix: "$",
		VersionQuery:     "SELECT current_setting('server_version')",
		TableNamesQuery: `SELECT table_name FROM information_schema.tables ` +
			`WHERE table_schema = current_schema() AND table_type = 'BASE TABLE' ORDER BY table_name`,
	})}

	// varchar and char accept at most 10485760 characters
	for _, code := range []typename.Code{typename.AnsiString, typename.String} {
		d.RegisterColumnType(code, "TEXT")
		d.RegisterColumnTypeCapacity(code, 10485760, "VARCHAR($l)")
	}
	for _, code := range []typename.Code{typename.AnsiStringFixedLength, typename.StringFixedLength} {
		d.RegisterColumnType(code, "CHAR(255)")
		d.RegisterColumnTypeCapacity(code, 10485760, "CHAR($l)")
	}

	d.RegisterColumnType(typename.Binary, "BYTEA")
	d.RegisterColumnType(typename.Boolean, "BOOLEAN")
	d.RegisterColumnType(typename.Byte, "SMALLINT")
	d.RegisterColumnType(typename.Int16, "SMALLINT")
	d.RegisterColumnType(typename.Int32, "INT")
	d.RegisterColumnType(typename.Int64, "BIGINT")
	d.RegisterColumnType(typename.Single, "REAL")
	d.RegisterColumnType(typename.Double, "DOUBLE PRECISION")
	d.RegisterColumnType(typename.Decimal, "NUMERIC(19,5)")
	d.RegisterColumnTypeCapacity(typename.Decimal, 1000, "NUMERIC($p, $s)")
	d.RegisterColumnType(typename.Date, "DATE")
	d.RegisterColumnType(typename.Time, "TIME")
	d.RegisterColumnType(typename.DateTime, "TIMESTAMP")
	d.RegisterColumnType(typename.DateTimeOffset, "TIMESTAMP WITH TIME ZONE")
	d.RegisterColumnType(typename.Guid, "UUID")
	d.Bind(d)
	return d
}
