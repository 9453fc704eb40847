package typename

import (
	"sort"
	"strconv"
	"strings"
)

// Template placeholders substituted at lookup time.
const (
	LengthPlaceholder    = "$l"
	PrecisionPlaceholder = "$p"
	ScalePlaceholder     = "$s"
)

// entry is a capacity-bounded type name.
type entry struct {
	capacity int
	name     string
}

// mapping holds every registered name for one code.
type mapping struct {
	bounded    []entry // sorted ascending by capacity
	def        string
	hasDefault bool
}

// Registry maps type codes to type name templates. A code may own several
// capacity-bounded entries plus one capacity-less default.
//
// A Registry is not safe for concurrent mutation; dialects fill it during
// construction and only read it afterwards.
type Registry struct {
	codes map[Code]*mapping
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{codes: make(map[Code]*mapping)}
}

func (r *Registry) mappingFor(code Code) *mapping {
	m, ok := r.codes[code]
	if !ok {
		m = &mapping{}
		r.codes[code] = m
	}
	return m
}

// Put registers or overwrites the capacity-less default name for code.
func (r *Registry) Put(code Code, name string) {
	m := r.mappingFor(code)
	m.def = name
	m.hasDefault = true
}

// PutCapacity registers or overwrites the name used for lengths up to capacity.
func (r *Registry) PutCapacity(code Code, capacity int, name string) {
	m := r.mappingFor(code)
	i := sort.Search(len(m.bounded), func(i int) bool {
		return m.bounded[i].capacity >= capacity
	})
	if i < len(m.bounded) && m.bounded[i].capacity == capacity {
		m.bounded[i].name = name
		return
	}
	m.bounded = append(m.bounded, entry{})
	copy(m.bounded[i+1:], m.bounded[i:])
	m.bounded[i] = entry{capacity: capacity, name: name}
}

// Get resolves code for the given length and precision. The smallest bounded
// entry whose capacity fits wins; otherwise the default is used. The bool
// result is false when nothing is mapped.
//
// Entries whose template uses $p are sized by precision and skipped when
// precision is zero or less; a precision beyond every such entry resolves to
// nothing rather than to a narrower default. Other entries are sized by
// length, and a length of zero or less substitutes the entry's capacity for $l.
// The default is only used when its template can be filled: $l needs a
// positive length and $p a positive precision.
func (r *Registry) Get(code Code, length, precision, scale int) (string, bool) {
	m, ok := r.codes[code]
	if !ok {
		return "", false
	}
	for _, e := range m.bounded {
		size := length
		if usesPrecision(e.name) {
			if precision <= 0 {
				continue
			}
			size = precision
		}
		if e.capacity >= size {
			l := length
			if l <= 0 {
				l = e.capacity
			}
			return substitute(e.name, l, precision, scale), true
		}
	}
	if precision > 0 && m.usesPrecision() {
		return "", false
	}
	if m.hasDefault && fillable(m.def, length, precision) {
		return substitute(m.def, length, precision, scale), true
	}
	return "", false
}

// Default returns the capacity-less name registered for code. A default whose
// template needs a length or precision is not returned.
func (r *Registry) Default(code Code) (string, bool) {
	m, ok := r.codes[code]
	if !ok || !m.hasDefault || !fillable(m.def, 0, 0) {
		return "", false
	}
	return m.def, true
}

// UsesPrecision reports whether any bounded entry of code is sized by $p.
func (r *Registry) UsesPrecision(code Code) bool {
	m, ok := r.codes[code]
	return ok && m.usesPrecision()
}

func (m *mapping) usesPrecision() bool {
	for _, e := range m.bounded {
		if usesPrecision(e.name) {
			return true
		}
	}
	return false
}

func usesPrecision(template string) bool {
	return strings.Contains(template, PrecisionPlaceholder)
}

// fillable reports whether template has a value for each size placeholder.
func fillable(template string, length, precision int) bool {
	if length <= 0 && strings.Contains(template, LengthPlaceholder) {
		return false
	}
	return precision > 0 || !usesPrecision(template)
}

// GetLongest returns the name of the largest-capacity entry for code, with $l
// and $p set to that capacity and $s to zero. Codes with only a default return
// the default.
func (r *Registry) GetLongest(code Code) (string, bool) {
	m, ok := r.codes[code]
	if !ok {
		return "", false
	}
	if n := len(m.bounded); n > 0 {
		e := m.bounded[n-1]
		return substitute(e.name, e.capacity, e.capacity, 0), true
	}
	if m.hasDefault {
		return m.def, true
	}
	return "", false
}

// Codes returns every code with at least one mapping, in ascending order.
func (r *Registry) Codes() []Code {
	out := make([]Code, 0, len(r.codes))
	for c, m := range r.codes {
		if m.hasDefault || len(m.bounded) > 0 {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func substitute(template string, length, precision, scale int) string {
	if !strings.Contains(template, "$") {
		return template
	}
	return strings.NewReplacer(
		LengthPlaceholder, strconv.Itoa(length),
		PrecisionPlaceholder, strconv.Itoa(precision),
		ScalePlaceholder, strconv.Itoa(scale),
	).Replace(template)
}
