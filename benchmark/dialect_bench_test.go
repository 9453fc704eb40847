package benchmark

import (
	"context"
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/coregx/sqldialect"
)

func benchTable() *sqldialect.Table {
	return sqldialect.NewTable("orders",
		sqldialect.NotNull("id", sqldialect.Int64),
		sqldialect.NotNull("customer", sqldialect.String).WithLength(120),
		sqldialect.Null("total", sqldialect.Decimal).WithPrecision(12, 2),
		sqldialect.Null("placed_at", sqldialect.DateTimeOffset),
		sqldialect.Null("payload", sqldialect.Binary).WithLength(4096),
	).WithPrimaryKey("id").WithIndex("ix_orders_customer", "customer")
}

func BenchmarkGetTypeName(b *testing.B) {
	d := sqldialect.NewSQLServer()

	b.Run("Default", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_, _ = d.GetTypeName(sqldialect.Int32, 0, 0, 0)
		}
	})

	b.Run("Capacity", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_, _ = d.GetTypeName(sqldialect.String, 300, 0, 0)
		}
	})

	b.Run("PrecisionScale", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_, _ = d.GetTypeName(sqldialect.Decimal, 0, 18, 4)
		}
	})
}

func BenchmarkQuote(b *testing.B) {
	b.Run("Plain", func(b *testing.B) {
		d := sqldialect.NewPostgres()
		for i := 0; i < b.N; i++ {
			_ = d.QuoteForColumnName("customer_name")
		}
	})

	b.Run("Embedded", func(b *testing.B) {
		d := sqldialect.NewSQLServer()
		for i := 0; i < b.N; i++ {
			_ = d.UnQuote(d.Quote("weird]name"))
		}
	})
}

func BenchmarkFormatCreateTable(b *testing.B) {
	table := benchTable()

	for _, f := range sqldialect.Builtins() {
		d := f()
		b.Run(d.Name(), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_, _ = d.FormatCreateTable(table)
			}
		})
	}
}

func BenchmarkGetDialectFor(b *testing.B) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		b.Fatal(err)
	}
	defer db.Close()

	catalog := sqldialect.NewCatalog(sqldialect.WithBuiltins())
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := catalog.GetDialectFor(ctx, db); err != nil {
			b.Fatal(err)
		}
	}
}
