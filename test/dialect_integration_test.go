//go:build integration
// +build integration

package test

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coregx/sqldialect"
)

func setups() map[string]func(t *testing.T) *DatabaseSetup {
	return map[string]func(t *testing.T) *DatabaseSetup{
		"sqlite": SetupSQLiteTestDB,
		"pq":     func(t *testing.T) *DatabaseSetup { return SetupPostgreSQLTestDB(t, "postgres") },
		"pgx":    func(t *testing.T) *DatabaseSetup { return SetupPostgreSQLTestDB(t, "pgx") },
		"mysql":  SetupMySQLTestDB,
		"mssql":  SetupSQLServerTestDB,
	}
}

// allTypesTable uses every type code so each dialect's type table is exercised
// against a real engine.
func allTypesTable(name string) *sqldialect.Table {
	return sqldialect.NewTable(name,
		sqldialect.NotNull("id", sqldialect.Int64),
		sqldialect.Null("code", sqldialect.AnsiString).WithLength(20),
		sqldialect.Null("code_fixed", sqldialect.AnsiStringFixedLength).WithLength(3),
		sqldialect.NotNull("title", sqldialect.String).WithLength(200),
		sqldialect.Null("body", sqldialect.String),
		sqldialect.Null("country", sqldialect.StringFixedLength).WithLength(2),
		sqldialect.Null("thumbnail", sqldialect.Binary).WithLength(1000),
		sqldialect.Null("active", sqldialect.Boolean),
		sqldialect.Null("level", sqldialect.Byte),
		sqldialect.Null("rank", sqldialect.Int16),
		sqldialect.Null("views", sqldialect.Int32),
		sqldialect.Null("ratio", sqldialect.Single),
		sqldialect.Null("score", sqldialect.Double),
		sqldialect.Null("price", sqldialect.Decimal).WithPrecision(12, 2),
		sqldialect.Null("released_on", sqldialect.Date),
		sqldialect.Null("starts_at", sqldialect.Time),
		sqldialect.Null("created_at", sqldialect.DateTime),
		sqldialect.Null("synced_at", sqldialect.DateTimeOffset),
		sqldialect.Null("external_id", sqldialect.Guid),
	).WithPrimaryKey("id").WithIndex(name+"_title_idx", "title")
}

func TestIntegrationDetectAndCreate(t *testing.T) {
	for name, setup := range setups() {
		t.Run(name, func(t *testing.T) {
			ds := setup(t)
			defer ds.Close()

			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()

			d, err := sqldialect.GetDialectFor(ctx, ds.DB)
			require.NoError(t, err)
			require.Equal(t, ds.Dialect, d.Name())

			version, err := d.GetDatabaseVersion(ctx, ds.DB)
			require.NoError(t, err)
			assert.NotEmpty(t, version)

			table := allTypesTable(fmt.Sprintf("sqldialect_it_%s_%d", name, time.Now().UnixNano()%1_000_000))
			ddl, err := d.FormatCreateTable(table)
			require.NoError(t, err)

			for _, stmt := range strings.Split(ddl, "\n") {
				_, err := ds.DB.ExecContext(ctx, stmt)
				require.NoError(t, err, stmt)
			}
			drop, err := d.FormatDropTable(table)
			require.NoError(t, err)
			defer ds.DB.ExecContext(context.Background(), drop) //nolint:errcheck

			tables, err := d.GetTableNames(ctx, ds.DB)
			require.NoError(t, err)
			assert.Contains(t, tables, table.Name)
		})
	}
}

func TestIntegrationQuotedIdentifiers(t *testing.T) {
	for name, setup := range setups() {
		t.Run(name, func(t *testing.T) {
			ds := setup(t)
			defer ds.Close()
			ctx := context.Background()

			d, err := sqldialect.GetDialectFor(ctx, ds.DB)
			require.NoError(t, err)

			// reserved words and embedded quote characters must survive quoting
			table := sqldialect.NewTable("order "+d.CloseQuote()+"x",
				sqldialect.NotNull("select", sqldialect.Int32),
				sqldialect.Null("from"+d.CloseQuote(), sqldialect.String).WithLength(10),
			)
			ddl, err := d.FormatCreateTable(table)
			require.NoError(t, err)
			_, err = ds.DB.ExecContext(ctx, ddl)
			require.NoError(t, err, ddl)

			drop, err := d.FormatDropTable(table)
			require.NoError(t, err)
			_, err = ds.DB.ExecContext(ctx, drop)
			require.NoError(t, err, drop)
		})
	}
}
