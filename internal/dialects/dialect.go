// Package dialects provides database-specific SQL dialects for SQLite, DuckDB,
// PostgreSQL, MySQL and SQL Server: column type resolution, identifier quoting,
// DDL synthesis and engine detection against a live connection.
package dialects

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"strconv"
	"sync/atomic"

	"github.com/coregx/sqldialect/internal/schema"
	"github.com/coregx/sqldialect/internal/typename"
)

// DefaultPriority is the detection priority of dialects that do not ask to be
// probed earlier. Lower priorities are probed first.
const DefaultPriority = math.MaxInt

// defaultTableNamesQuery lists base tables through the SQL standard metadata views.
const defaultTableNamesQuery = `SELECT table_name FROM information_schema.tables WHERE table_type = 'BASE TABLE' ORDER BY table_name`

// Conn is an open database connection. *sql.DB and *sql.Conn satisfy it.
//
// A *sql.Tx satisfies it too but is unsuitable for detection: on PostgreSQL
// the first failing probe aborts the transaction (SQLSTATE 25P02) and every
// later probe in it fails, the postgres one included. Detect on the *sql.DB
// or a *sql.Conn before beginning the transaction.
type Conn interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Dialect defines database-specific behaviors.
type Dialect interface {
	// Name returns the canonical dialect name.
	Name() string
	// Aliases returns additional names, usually database/sql driver names.
	Aliases() []string
	// Priority orders detection; lower values are probed first.
	Priority() int

	// GetDatabaseVersion runs the engine's version probe.
	GetDatabaseVersion(ctx context.Context, conn Conn) (string, error)
	// SupportsThisDialect reports whether the version probe succeeds on conn.
	SupportsThisDialect(ctx context.Context, conn Conn) bool
	// GetTableNames lists the tables visible through conn.
	GetTableNames(ctx context.Context, conn Conn) ([]string, error)

	// GetTypeName resolves an abstract column type to the engine's type name.
	GetTypeName(code typename.Code, length, precision, scale int) (string, error)
	// GetLongestTypeName returns the widest type name registered for code.
	GetLongestTypeName(code typename.Code) (string, error)

	OpenQuote() string
	CloseQuote() string
	IsQuoted(name string) bool
	Quote(name string) string
	UnQuote(name string) string
	QuoteForTableName(name string) string
	QuoteForColumnName(name string) string
	QuoteForAliasName(name string) string
	QuoteForIndexName(name string) string
	Qualify(catalog, schema, table string) string

	// ParameterPlaceholder returns the named bind parameter prefix.
	ParameterPlaceholder() string
	// EscapeParameter returns name as a named bind parameter.
	EscapeParameter(name string) string
	// Placeholder returns the positional bind marker for the 1-based index.
	Placeholder(index int) string

	// FormatCreateTable renders CREATE TABLE and CREATE INDEX statements.
	FormatCreateTable(table *schema.Table) (string, error)
	// FormatDropTable renders a DROP TABLE statement.
	FormatDropTable(table *schema.Table) (string, error)
}

// BaseConfig configures a Base. Zero values select the defaults.
type BaseConfig struct {
	// Name is the canonical dialect name.
	Name string
	// Aliases are alternative names, typically database/sql driver names.
	Aliases []string
	// Priority orders detection; zero selects DefaultPriority.
	Priority int
	// OpenQuote and CloseQuote wrap quoted identifiers; both default to `"`.
	OpenQuote  string
	CloseQuote string
	// ParameterPrefix prefixes named bind parameters; defaults to ":".
	ParameterPrefix string
	// PositionalPrefix is followed by the 1-based index in positional bind
	// markers ("$" gives $1, $2). Empty renders "?" for every position.
	PositionalPrefix string
	// VersionQuery is a scalar query returning the server version.
	VersionQuery string
	// TableNamesQuery returns one table name per row; defaults to
	// information_schema.tables.
	TableNamesQuery string
}

// Base implements the default behavior of every Dialect. Concrete dialects
// embed it and describe their engine through BaseConfig plus registered column
// types.
//
// Composite operations (SupportsThisDialect, FormatCreateTable, the QuoteFor
// methods, UnQuote) call the primitives they build on through the dialect
// passed to Bind, so an embedding type may override GetDatabaseVersion,
// GetTypeName, IsQuoted, Quote or Qualify. The built-in constructors bind
// themselves and Catalog.Register binds every dialect it receives.
type Base struct {
	name             string
	aliases          []string
	priority         int
	openQuote        string
	closeQuote       string
	parameterPrefix  string
	positionalPrefix string
	versionQuery     string
	tableNamesQuery  string
	types            *typename.Registry

	self atomic.Pointer[boundDialect]
}

type boundDialect struct{ Dialect }

// NewBase creates a Base from cfg with an empty type registry.
func NewBase(cfg BaseConfig) *Base {
	b := &Base{
		name:             cfg.Name,
		aliases:          append([]string(nil), cfg.Aliases...),
		priority:         cfg.Priority,
		openQuote:        cfg.OpenQuote,
		closeQuote:       cfg.CloseQuote,
		parameterPrefix:  cfg.ParameterPrefix,
		positionalPrefix: cfg.PositionalPrefix,
		versionQuery:     cfg.VersionQuery,
		tableNamesQuery:  cfg.TableNamesQuery,
		types:            typename.NewRegistry(),
	}
	if b.priority == 0 {
		b.priority = DefaultPriority
	}
	if b.openQuote == "" {
		b.openQuote = `"`
	}
	if b.closeQuote == "" {
		b.closeQuote = `"`
	}
	if b.parameterPrefix == "" {
		b.parameterPrefix = ":"
	}
	if b.tableNamesQuery == "" {
		b.tableNamesQuery = defaultTableNamesQuery
	}
	return b
}

// Bind sets the dialect that embeds b. Composite operations of b dispatch
// through d from then on. Binding nil restores dispatch to b itself.
func (b *Base) Bind(d Dialect) {
	if d == nil {
		b.self.Store(nil)
		return
	}
	b.self.Store(&boundDialect{d})
}

// dialect returns the bound dialect, or b when nothing is bound.
func (b *Base) dialect() Dialect {
	if bound := b.self.Load(); bound != nil {
		return bound.Dialect
	}
	return b
}

// Name returns the canonical dialect name.
func (b *Base) Name() string { return b.name }

// Aliases returns a copy of the dialect's alternative names.
func (b *Base) Aliases() []string { return append([]string(nil), b.aliases...) }

// Priority returns the detection priority.
func (b *Base) Priority() int { return b.priority }

// String implements fmt.Stringer.
func (b *Base) String() string { return b.name }

// RegisterColumnType sets the default type name for code.
// It is meant to be called while constructing a dialect.
func (b *Base) RegisterColumnType(code typename.Code, name string) {
	b.types.Put(code, name)
}

// RegisterColumnTypeCapacity sets the type name used for lengths up to capacity.
// The name may contain $l, $p and $s placeholders.
func (b *Base) RegisterColumnTypeCapacity(code typename.Code, capacity int, name string) {
	b.types.PutCapacity(code, capacity, name)
}

// ColumnTypes returns the codes this dialect can resolve.
func (b *Base) ColumnTypes() []typename.Code {
	return b.types.Codes()
}

// GetTypeName resolves code to a type name. Without a size the default mapping
// is preferred; otherwise the smallest capacity that fits wins. Precision only
// counts as a size for codes whose templates take a precision.
func (b *Base) GetTypeName(code typename.Code, length, precision, scale int) (string, error) {
	if precision > 0 && !b.types.UsesPrecision(code) {
		precision, scale = 0, 0
	}
	if length <= 0 && precision <= 0 {
		if name, ok := b.types.Default(code); ok {
			return name, nil
		}
	}
	name, ok := b.types.Get(code, length, precision, scale)
	if !ok {
		return "", &UnmappedTypeError{Dialect: b.name, Code: code, Length: length, Precision: precision}
	}
	return name, nil
}

// GetLongestTypeName returns the widest type name registered for code.
func (b *Base) GetLongestTypeName(code typename.Code) (string, error) {
	name, ok := b.types.GetLongest(code)
	if !ok {
		return "", &UnmappedTypeError{Dialect: b.name, Code: code}
	}
	return name, nil
}

// GetDatabaseVersion runs the version probe and returns the reported version.
func (b *Base) GetDatabaseVersion(ctx context.Context, conn Conn) (string, error) {
	if b.versionQuery == "" {
		return "", fmt.Errorf("%s: %w", b.name, ErrNoVersionProbe)
	}

	var version sql.NullString
	if err := conn.QueryRowContext(ctx, b.versionQuery).Scan(&version); err != nil {
		return "", fmt.Errorf("%s version probe failed: %w", b.name, err)
	}
	if !version.Valid {
		return "", fmt.Errorf("%s version probe returned NULL", b.name)
	}
	return version.String, nil
}

// SupportsThisDialect reports whether conn answers this dialect's version probe.
// Probe errors mean "not this engine" and are not returned.
func (b *Base) SupportsThisDialect(ctx context.Context, conn Conn) bool {
	_, err := b.dialect().GetDatabaseVersion(ctx, conn)
	return err == nil
}

// GetTableNames lists table names using the dialect's metadata query.
func (b *Base) GetTableNames(ctx context.Context, conn Conn) (names []string, err error) {
	rows, err := conn.QueryContext(ctx, b.tableNamesQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s tables: %w", b.name, err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close rows: %w", closeErr)
		}
	}()

	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan table name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error reading table names: %w", err)
	}
	return names, nil
}

// ParameterPlaceholder returns the named bind parameter prefix.
func (b *Base) ParameterPlaceholder() string { return b.parameterPrefix }

// EscapeParameter returns name prefixed with the parameter placeholder.
func (b *Base) EscapeParameter(name string) string {
	return b.parameterPrefix + name
}

// Placeholder returns the positional bind marker for the 1-based index.
func (b *Base) Placeholder(index int) string {
	if b.positionalPrefix == "" {
		return "?"
	}
	return b.positionalPrefix + strconv.Itoa(index)
}
