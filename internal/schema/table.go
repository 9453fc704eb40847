// Package schema provides the engine-agnostic table model consumed by DDL
// synthesis, together with loaders that build it from YAML documents or from
// tagged Go structs.
package schema

import "github.com/coregx/sqldialect/internal/typename"

// Table describes a table to be created.
type Table struct {
	Catalog    string   `yaml:"catalog,omitempty"`
	Schema     string   `yaml:"schema,omitempty"`
	Name       string   `yaml:"name"`
	Columns    []Column `yaml:"columns"`
	PrimaryKey []string `yaml:"primary_key,omitempty"`
	Indexes    []Index  `yaml:"indexes,omitempty"`
}

// Column describes one column of a table.
// Length, Precision and Scale are zero when unspecified.
type Column struct {
	Name      string        `yaml:"name"`
	Type      typename.Code `yaml:"type"`
	Length    int           `yaml:"length,omitempty"`
	Precision int           `yaml:"precision,omitempty"`
	Scale     int           `yaml:"scale,omitempty"`
	Nullable  bool          `yaml:"nullable,omitempty"`
}

// Index describes a secondary index over one or more columns.
type Index struct {
	Name    string   `yaml:"name,omitempty"`
	Columns []string `yaml:"columns"`
}

// NewTable creates a table with the given name and columns.
func NewTable(name string, columns ...Column) *Table {
	return &Table{Name: name, Columns: columns}
}

// WithPrimaryKey sets the primary key columns and returns the table.
func (t *Table) WithPrimaryKey(columns ...string) *Table {
	t.PrimaryKey = columns
	return t
}

// WithIndex appends an index and returns the table.
func (t *Table) WithIndex(name string, columns ...string) *Table {
	t.Indexes = append(t.Indexes, Index{Name: name, Columns: columns})
	return t
}

// Column returns the column with the given name.
func (t *Table) Column(name string) (Column, bool) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// ColumnNames returns the column names in declaration order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// NotNull returns a non-nullable column of the given type.
func NotNull(name string, code typename.Code) Column {
	return Column{Name: name, Type: code}
}

// Null returns a nullable column of the given type.
func Null(name string, code typename.Code) Column {
	return Column{Name: name, Type: code, Nullable: true}
}

// WithLength returns a copy of the column with Length set.
func (c Column) WithLength(length int) Column {
	c.Length = length
	return c
}

// WithPrecision returns a copy of the column with Precision and Scale set.
func (c Column) WithPrecision(precision, scale int) Column {
	c.Precision = precision
	c.Scale = scale
	return c
}
