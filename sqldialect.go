// Package sqldialect provides pluggable SQL dialects for SQLite, DuckDB,
// PostgreSQL, MySQL and SQL Server. A dialect resolves engine-neutral column
// types to engine type names, quotes identifiers, renders CREATE TABLE
// statements and recognizes its engine behind a live database connection.
package sqldialect

import (
	"github.com/coregx/sqldialect/internal/dialects"
	"github.com/coregx/sqldialect/internal/logger"
	"github.com/coregx/sqldialect/internal/schema"
	"github.com/coregx/sqldialect/internal/tracer"
	"github.com/coregx/sqldialect/internal/typename"
)

type (
	// Dialect defines database-specific behaviors.
	Dialect = dialects.Dialect
	// Base implements the default behavior embedded by every dialect.
	Base = dialects.Base
	// BaseConfig configures a Base.
	BaseConfig = dialects.BaseConfig
	// Conn is an open database connection such as *sql.DB.
	Conn = dialects.Conn
	// Catalog holds the dialects available for lookup and detection.
	Catalog = dialects.Catalog
	// Option is a functional option for configuring a Catalog.
	Option = dialects.Option
	// Factory creates a dialect.
	Factory = dialects.Factory

	// TypeCode classifies a column's data type independently of any engine.
	TypeCode = typename.Code
	// TypeRegistry maps type codes to engine type names by capacity.
	TypeRegistry = typename.Registry

	// Table describes a table to be created.
	Table = schema.Table
	// Column describes one column of a table.
	Column = schema.Column
	// Index describes a secondary index.
	Index = schema.Index

	// Logger is the logging interface used during detection.
	Logger = logger.Logger
	// Tracer creates spans for detection probes.
	Tracer = tracer.Tracer

	// UnmappedTypeError reports a column type a dialect cannot resolve.
	UnmappedTypeError = dialects.UnmappedTypeError
	// UnknownDialectError reports a lookup for an unregistered name.
	UnknownDialectError = dialects.UnknownDialectError
)

// Column type codes.
const (
	AnsiString            = typename.AnsiString
	AnsiStringFixedLength = typename.AnsiStringFixedLength
	String                = typename.String
	StringFixedLength     = typename.StringFixedLength
	Binary                = typename.Binary
	Boolean               = typename.Boolean
	Byte                  = typename.Byte
	Int16                 = typename.Int16
	Int32                 = typename.Int32
	Int64                 = typename.Int64
	Single                = typename.Single
	Double                = typename.Double
	Decimal               = typename.Decimal
	Date                  = typename.Date
	Time                  = typename.Time
	DateTime              = typename.DateTime
	DateTimeOffset        = typename.DateTimeOffset
	Guid                  = typename.Guid
)

// DefaultPriority is the detection priority of dialects that set none.
const DefaultPriority = dialects.DefaultPriority

// Errors.
var (
	ErrUnmappedType   = dialects.ErrUnmappedType
	ErrNoDialectFound = dialects.ErrNoDialectFound
	ErrNoVersionProbe = dialects.ErrNoVersionProbe
	ErrUnknownDialect = dialects.ErrUnknownDialect
	ErrNoTableName    = dialects.ErrNoTableName
	ErrNoColumns      = dialects.ErrNoColumns
)

// Re-export dialect and catalog functions.
var (
	NewBase      = dialects.NewBase
	NewSQLite    = dialects.NewSQLite
	NewDuckDB    = dialects.NewDuckDB
	NewPostgres  = dialects.NewPostgres
	NewMySQL     = dialects.NewMySQL
	NewSQLServer = dialects.NewSQLServer
	Builtins     = dialects.Builtins

	NewCatalog   = dialects.NewCatalog
	WithLogger   = dialects.WithLogger
	WithTracer   = dialects.WithTracer
	WithDialects = dialects.WithDialects
	WithBuiltins = dialects.WithBuiltins

	Default        = dialects.Default
	Register       = dialects.Register
	GetAllDialects = dialects.GetAllDialects
	GetDialectFor  = dialects.GetDialectFor
	Lookup         = dialects.Lookup

	// Type codes and registries
	ParseTypeCode   = typename.ParseCode
	NewTypeRegistry = typename.NewRegistry

	// Table model
	NewTable   = schema.NewTable
	NotNull    = schema.NotNull
	Null       = schema.Null
	LoadYAML   = schema.LoadYAML
	LoadFile   = schema.LoadFile
	FromStruct = schema.FromStruct

	// Logging and tracing
	NewSlogAdapter = logger.NewSlogAdapter
	NewOtelTracer  = tracer.NewOtelTracer
	RedactDSN      = logger.RedactDSN
)
