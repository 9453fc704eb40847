package dialects

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/coregx/sqldialect/internal/logger"
	"github.com/coregx/sqldialect/internal/tracer"
)

// binder is implemented by dialects embedding *Base.
type binder interface {
	Bind(d Dialect)
}

// Factory creates a ready-to-use dialect.
type Factory func() Dialect

// Builtins returns the constructors of the dialects shipped with this package,
// in registration order.
func Builtins() []Factory {
	return []Factory{
		func() Dialect { return NewSQLite() },
		func() Dialect { return NewDuckDB() },
		func() Dialect { return NewPostgres() },
		func() Dialect { return NewMySQL() },
		func() Dialect { return NewSQLServer() },
	}
}

// Catalog holds the dialects available for lookup and detection.
// A single mutex serializes registration and enumeration.
type Catalog struct {
	mu       sync.Mutex
	dialects []Dialect
	logger   logger.Logger
	tracer   tracer.Tracer
}

// Option is a functional option for configuring a Catalog.
type Option func(*Catalog)

// WithLogger sets the logger used for detection events.
func WithLogger(l logger.Logger) Option {
	return func(c *Catalog) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithTracer sets the tracer used for detection spans.
func WithTracer(t tracer.Tracer) Option {
	return func(c *Catalog) {
		if t != nil {
			c.tracer = t
		}
	}
}

// WithDialects registers ds when the catalog is created.
func WithDialects(ds ...Dialect) Option {
	return func(c *Catalog) {
		for _, d := range ds {
			c.register(d)
		}
	}
}

// WithBuiltins registers every built-in dialect.
func WithBuiltins() Option {
	return func(c *Catalog) {
		for _, f := range Builtins() {
			c.register(f())
		}
	}
}

// NewCatalog creates a catalog. Without WithDialects or WithBuiltins it is empty.
func NewCatalog(opts ...Option) *Catalog {
	c := &Catalog{
		logger: &logger.NoopLogger{},
		tracer: &tracer.NoopTracer{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Register adds d to the catalog and binds it to its embedded Base, if any.
// It panics if d is nil.
func (c *Catalog) Register(d Dialect) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.register(d)
}

func (c *Catalog) register(d Dialect) {
	if d == nil {
		panic("dialects: Register dialect is nil")
	}
	if b, ok := d.(binder); ok {
		b.Bind(d)
	}
	c.dialects = append(c.dialects, d)
}

// GetAllDialects returns a snapshot of the registered dialects ordered by
// ascending priority. Dialects with equal priority keep registration order.
func (c *Catalog) GetAllDialects() []Dialect {
	c.mu.Lock()
	snapshot := make([]Dialect, len(c.dialects))
	copy(snapshot, c.dialects)
	c.mu.Unlock()

	sort.SliceStable(snapshot, func(i, j int) bool {
		return snapshot[i].Priority() < snapshot[j].Priority()
	})
	return snapshot
}

// GetDialectFor probes conn with each dialect in priority order and returns
// the first one that recognizes it. Probing stops at the first match.
func (c *Catalog) GetDialectFor(ctx context.Context, conn Conn) (Dialect, error) {
	ctx, span := c.tracer.StartSpan(ctx, "sqldialect.detect")
	defer span.End()

	start := time.Now()
	probes := 0

	for _, d := range c.GetAllDialects() {
		probes++
		supported := c.probe(ctx, d, conn)
		if supported {
			tracer.AddDetectionAttributes(span, &tracer.DetectionMetadata{
				Selected: d.Name(),
				Probes:   probes,
				Duration: time.Since(start),
			})
			c.logger.Info("dialect detected",
				"dialect", d.Name(),
				"probes", probes,
				"duration_ms", time.Since(start).Milliseconds(),
			)
			return d, nil
		}
	}

	tracer.AddDetectionAttributes(span, &tracer.DetectionMetadata{
		Probes:   probes,
		Duration: time.Since(start),
		Error:    ErrNoDialectFound,
	})
	c.logger.Warn("no dialect matched connection", "probes", probes)
	return nil, ErrNoDialectFound
}

func (c *Catalog) probe(ctx context.Context, d Dialect, conn Conn) bool {
	ctx, span := c.tracer.StartSpan(ctx, "sqldialect.probe")
	defer span.End()

	start := time.Now()
	supported := d.SupportsThisDialect(ctx, conn)
	elapsed := time.Since(start)

	tracer.AddProbeAttributes(span, &tracer.ProbeMetadata{
		Dialect:   d.Name(),
		Priority:  d.Priority(),
		Supported: supported,
		Duration:  elapsed,
	})
	c.logger.Debug("dialect probe",
		"dialect", d.Name(),
		"priority", d.Priority(),
		"supported", supported,
		"duration", elapsed,
	)
	return supported
}

// Lookup returns the dialect whose name or alias matches name, ignoring case.
// When several match, the one with the lowest priority wins.
func (c *Catalog) Lookup(name string) (Dialect, error) {
	all := c.GetAllDialects()
	for _, d := range all {
		if strings.EqualFold(d.Name(), name) {
			return d, nil
		}
		for _, alias := range d.Aliases() {
			if strings.EqualFold(alias, name) {
				return d, nil
			}
		}
	}

	available := make([]string, 0, len(all))
	for _, d := range all {
		available = append(available, d.Name())
	}
	sort.Strings(available)
	return nil, &UnknownDialectError{Name: name, Available: available}
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the process-wide catalog holding the built-in dialects.
func Default() *Catalog {
	defaultOnce.Do(func() {
		defaultCatalog = NewCatalog(WithBuiltins())
	})
	return defaultCatalog
}

// Register adds d to the default catalog.
func Register(d Dialect) {
	Default().Register(d)
}

// GetAllDialects returns the default catalog's dialects in priority order.
func GetAllDialects() []Dialect {
	return Default().GetAllDialects()
}

// GetDialectFor detects the dialect of conn using the default catalog.
func GetDialectFor(ctx context.Context, conn Conn) (Dialect, error) {
	return Default().GetDialectFor(ctx, conn)
}

// Lookup finds a dialect by name or alias in the default catalog.
func Lookup(name string) (Dialect, error) {
	return Default().Lookup(name)
}
