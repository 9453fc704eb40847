package dialects

import "github.com/coregx/sqldialect/internal/typename"

// MySQLDialect implements MySQL-specific SQL dialect.
type MySQLDialect struct {
	*Base
}

var _ Dialect = (*MySQLDialect)(nil)

// NewMySQL creates the MySQL dialect. It also serves MariaDB.
func NewMySQL() *MySQLDialect {
	d := &MySQLDialect{Base: NewBase(BaseConfig{
		Name:         "mysql",
		Aliases:      []string{"mariadb"},
		OpenQuote:    "`",
		CloseQuote:   "`",
		VersionQuery: "SELECT @@GLOBAL.version",
		TableNamesQuery: `SELECT table_name FROM information_schema.tables ` +
			`WHERE table_schema = DATABASE() AND table_type = 'BASE TABLE' ORDER BY table_name`,
	})}

	d.RegisterColumnType(typename.Binary, "LONGBLOB")
	d.RegisterColumnTypeCapacity(typename.Binary, 255, "TINYBLOB")
	d.RegisterColumnTypeCapacity(typename.Binary, 65535, "BLOB")
	d.RegisterColumnTypeCapacity(typename.Binary, 16777215, "MEDIUMBLOB")

	for _, code := range []typename.Code{typename.AnsiString, typename.String} {
		d.RegisterColumnType(code, "VARCHAR(255)")
		d.RegisterColumnTypeCapacity(code, 65535, "VARCHAR($l)")
		d.RegisterColumnTypeCapacity(code, 16777215, "MEDIUMTEXT")
		d.RegisterColumnTypeCapacity(code, 2147483647, "LONGTEXT")
	}
	for _, code := range []typename.Code{typename.AnsiStringFixedLength, typename.StringFixedLength} {
		d.RegisterColumnType(code, "CHAR(255)")
		d.RegisterColumnTypeCapacity(code, 255, "CHAR($l)")
	}

	d.RegisterColumnType(typename.Boolean, "TINYINT(1)")
	d.RegisterColumnType(typename.Byte, "TINYINT UNSIGNED")
	d.RegisterColumnType(typename.Int16, "SMALLINT")
	d.RegisterColumnType(typename.Int32, "INTEGER")
	d.RegisterColumnType(typename.Int64, "BIGINT")
	d.RegisterColumnType(typename.Single, "FLOAT")
	d.RegisterColumnType(typename.Double, "DOUBLE")
	d.RegisterColumnType(typename.Decimal, "DECIMAL(19,5)")
	d.RegisterColumnTypeCapacity(typename.Decimal, 65, "DECIMAL($p, $s)")
	d.RegisterColumnType(typename.Date, "DATE")
	d.RegisterColumnType(typename.Time, "TIME")
	d.RegisterColumnType(typename.DateTime, "DATETIME")
	// no zone-aware type; TIMESTAMP converts to UTC but narrows the range
	d.RegisterColumnType(typename.DateTimeOffset, "DATETIME")
	d.RegisterColumnType(typename.Guid, "CHAR(36)")
	d.Bind(d)
	return d
}
