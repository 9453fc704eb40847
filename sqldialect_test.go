package sqldialect_test

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/coregx/sqldialect"
)

type invoice struct {
	ID       int64   `db:"id,pk"`
	Customer string  `db:"customer,size=80,index"`
	Total    float64 `db:"total,type=decimal,precision=12,scale=2"`
	Note     *string `db:"note"`
}

func (invoice) TableName() string { return "invoices" }

func TestFacadeDetectAndCreate(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	defer db.Close()

	ctx := context.Background()
	catalog := sqldialect.NewCatalog(
		sqldialect.WithBuiltins(),
		sqldialect.WithLogger(sqldialect.NewSlogAdapter(nil)),
	)

	d, err := catalog.GetDialectFor(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, "sqlite", d.Name())

	table, err := sqldialect.FromStruct("", invoice{})
	require.NoError(t, err)

	ddl, err := d.FormatCreateTable(table)
	require.NoError(t, err)
	assert.Equal(t,
		`CREATE TABLE "invoices" ( "id" BIGINT NOT NULL, "customer" TEXT NOT NULL, "total" NUMERIC NOT NULL, "note" TEXT , PRIMARY KEY("id")) ;`+"\n"+
			`CREATE INDEX "ix_invoices_customer" ON "invoices" ("customer");`,
		ddl)

	for _, stmt := range strings.Split(ddl, "\n") {
		_, err = db.ExecContext(ctx, stmt)
		require.NoError(t, err, stmt)
	}

	names, err := d.GetTableNames(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, []string{"invoices"}, names)
}

func TestFacadeErrors(t *testing.T) {
	_, err := sqldialect.Lookup("db2")
	require.ErrorIs(t, err, sqldialect.ErrUnknownDialect)

	var unknown *sqldialect.UnknownDialectError
	require.ErrorAs(t, err, &unknown)
	assert.Contains(t, unknown.Available, "postgres")

	_, err = sqldialect.NewPostgres().FormatCreateTable(sqldialect.NewTable("empty"))
	assert.ErrorIs(t, err, sqldialect.ErrNoColumns)

	code, err := sqldialect.ParseTypeCode("uuid")
	require.NoError(t, err)
	assert.Equal(t, sqldialect.Guid, code)
}

func ExampleDialect_FormatCreateTable() {
	users := sqldialect.NewTable("Users",
		sqldialect.NotNull("Id", sqldialect.Int32),
		sqldialect.Null("Name", sqldialect.String).WithLength(100),
	).WithPrimaryKey("Id").WithIndex("IX_Name", "Name")

	ddl, err := sqldialect.NewSQLServer().FormatCreateTable(users)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(ddl)
	// Output:
	// CREATE TABLE [Users] ( [Id] INT NOT NULL, [Name] NVARCHAR(100) , PRIMARY KEY([Id])) ;
	// CREATE INDEX [IX_Name] ON [Users] ([Name]);
}

func ExampleDialect_GetTypeName() {
	mysql := sqldialect.NewMySQL()
	for _, length := range []int{200, 60000, 100000} {
		name, _ := mysql.GetTypeName(sqldialect.Binary, length, 0, 0)
		fmt.Println(length, name)
	}
	// Output:
	// 200 TINYBLOB
	// 60000 BLOB
	// 100000 MEDIUMBLOB
}

func ExampleCatalog_GetDialectFor() {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		fmt.Println(err)
		return
	}
	defer db.Close()

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})
	catalog := sqldialect.NewCatalog(
		sqldialect.WithBuiltins(),
		sqldialect.WithLogger(sqldialect.NewSlogAdapter(slog.New(handler))),
	)

	d, err := catalog.GetDialectFor(context.Background(), db)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(d.Name(), d.Quote("order"))
	// Output: sqlite "order"
}
