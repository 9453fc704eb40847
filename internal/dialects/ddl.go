package dialects

import (
	"fmt"
	"strings"

	"github.com/coregx/sqldialect/internal/schema"
)

// FormatCreateTable renders a CREATE TABLE statement for table followed by one
// CREATE INDEX statement per index, separated by newlines.
//
//	CREATE TABLE "Users" ( "Id" INT NOT NULL, "Name" VARCHAR(100) , PRIMARY KEY("Id")) ;
//	CREATE INDEX "IX_Name" ON "Users" ("Name");
//
// Indexes without columns are skipped.
func (b *Base) FormatCreateTable(table *schema.Table) (string, error) {
	if table == nil || table.Name == "" {
		return "", ErrNoTableName
	}
	if len(table.Columns) == 0 {
		return "", fmt.Errorf("%w: %s", ErrNoColumns, table.Name)
	}

	d := b.dialect()
	tableName := qualifiedTableName(d, table)

	var sb strings.Builder
	sb.WriteString("CREATE TABLE ")
	sb.WriteString(tableName)
	sb.WriteString(" (")

	for i, col := range table.Columns {
		typeName, err := d.GetTypeName(col.Type, col.Length, col.Precision, col.Scale)
		if err != nil {
			return "", fmt.Errorf("table %s column %s: %w", table.Name, col.Name, err)
		}
		if i > 0 {
			sb.WriteString(",")
		}
		sb.WriteString(" ")
		sb.WriteString(d.QuoteForColumnName(col.Name))
		sb.WriteString(" ")
		sb.WriteString(typeName)
		sb.WriteString(" ")
		if !col.Nullable {
			sb.WriteString("NOT NULL")
		}
	}

	if len(table.PrimaryKey) > 0 {
		sb.WriteString(", PRIMARY KEY(")
		sb.WriteString(quoteColumnList(d, table.PrimaryKey))
		sb.WriteString(")")
	}
	sb.WriteString(") ;")

	for _, idx := range table.Indexes {
		if len(idx.Columns) == 0 {
			continue
		}
		sb.WriteString("\nCREATE INDEX ")
		if idx.Name != "" {
			sb.WriteString(d.QuoteForIndexName(idx.Name))
			sb.WriteString(" ")
		}
		sb.WriteString("ON ")
		sb.WriteString(tableName)
		sb.WriteString(" (")
		sb.WriteString(quoteColumnList(d, idx.Columns))
		sb.WriteString(");")
	}

	return sb.String(), nil
}

// FormatDropTable renders a DROP TABLE statement for table.
func (b *Base) FormatDropTable(table *schema.Table) (string, error) {
	if table == nil || table.Name == "" {
		return "", ErrNoTableName
	}
	return "DROP TABLE " + qualifiedTableName(b.dialect(), table) + ";", nil
}

func qualifiedTableName(d Dialect, table *schema.Table) string {
	var catalog, schemaName string
	if table.Catalog != "" {
		catalog = d.QuoteForTableName(table.Catalog)
	}
	if table.Schema != "" {
		schemaName = d.QuoteForTableName(table.Schema)
	}
	return d.Qualify(catalog, schemaName, d.QuoteForTableName(table.Name))
}

func quoteColumnList(d Dialect, columns []string) string {
	quoted := make([]string, len(columns))
	for i, c := range columns {
		quoted[i] = d.QuoteForColumnName(c)
	}
	return strings.Join(quoted, ", ")
}
