package cli

// database/sql drivers available to --driver.
import (
	_ "github.com/go-sql-driver/mysql"  // mysql
	_ "github.com/jackc/pgx/v5/stdlib"  // pgx
	_ "github.com/lib/pq"               // postgres
	_ "github.com/microsoft/go-mssqldb" // sqlserver, mssql
	_ "modernc.org/sqlite"              // sqlite
)
