package dialects

import "github.com/coregx/sqldialect/internal/typename"

// SQLServerDialect implements Microsoft SQL Server-specific SQL dialect.
type SQLServerDialect struct {
	*Base
}

var _ Dialect = (*SQLServerDialect)(nil)

// NewSQLServer creates the SQL Server dialect.
// Identifiers are bracket-quoted and bind parameters use @name / @pN.
func NewSQLServer() *SQLServerDialect {
	d := &SQLServerDialect{Base: NewBase(BaseConfig{
		Name:             "sqlserver",
		Aliases:          []string{"mssql", "azuresql"},
		OpenQuote:        "[",
		CloseQuote:       "]",
		ParameterPrefix:  "@",
		PositionalPrefix: "@p",
		VersionQuery:     "SELECT CAST(SERVERPROPERTY('ProductVersion') AS NVARCHAR(128))",
	})}

	d.RegisterColumnType(typename.Binary, "VARBINARY(MAX)")
	d.RegisterColumnTypeCapacity(typename.Binary, 8000, "VARBINARY($l)")

	d.RegisterColumnType(typename.AnsiString, "VARCHAR(255)")
	d.RegisterColumnTypeCapacity(typename.AnsiString, 8000, "VARCHAR($l)")
	d.RegisterColumnTypeCapacity(typename.AnsiString, 2147483647, "VARCHAR(MAX)")
	d.RegisterColumnType(typename.AnsiStringFixedLength, "CHAR(255)")
	d.RegisterColumnTypeCapacity(typename.AnsiStringFixedLength, 8000, "CHAR($l)")

	d.RegisterColumnType(typename.String, "NVARCHAR(255)")
	d.RegisterColumnTypeCapacity(typename.String, 4000, "NVARCHAR($l)")
	d.RegisterColumnTypeCapacity(typename.String, 1073741823, "NVARCHAR(MAX)")
	d.RegisterColumnType(typename.StringFixedLength, "NCHAR(255)")
	d.RegisterColumnTypeCapacity(typename.StringFixedLength, 4000, "NCHAR($l)")

	d.RegisterColumnType(typename.Boolean, "BIT")
	d.RegisterColumnType(typename.Byte, "TINYINT")
	d.RegisterColumnType(typename.Int16, "SMALLINT")
	d.RegisterColumnType(typename.Int32, "INT")
	d.RegisterColumnType(typename.Int64, "BIGINT")
	d.RegisterColumnType(typename.Single, "REAL")
	d.RegisterColumnType(typename.Double, "FLOAT(53)")
	d.RegisterColumnType(typename.Decimal, "DECIMAL(19,5)")
	d.RegisterColumnTypeCapacity(typename.Decimal, 38, "DECIMAL($p, $s)")
	d.RegisterColumnType(typename.Date, "DATE")
	d.RegisterColumnType(typename.Time, "TIME")
	d.RegisterColumnType(typename.DateTime, "DATETIME2")
	d.RegisterColumnType(typename.DateTimeOffset, "DATETIMEOFFSET")
	d.RegisterColumnType(typename.Guid, "UNIQUEIDENTIFIER")
	d.Bind(d)
	return d
}
