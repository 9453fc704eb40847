// Package security screens generated DDL before it reaches a live connection
// and keeps an audit trail of the statements that were applied.
package security

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrUnsafeStatement is returned when a statement fails validation.
var ErrUnsafeStatement = errors.New("unsafe statement")

// Validator checks statements against an allow-list of leading keywords and a
// set of dangerous patterns.
type Validator struct {
	allowed  []string
	patterns []*regexp.Regexp
	strict   bool
}

// ValidatorOption configures the Validator.
type ValidatorOption func(*Validator)

// WithStrict also rejects DROP statements.
func WithStrict(strict bool) ValidatorOption {
	return func(v *Validator) {
		v.strict = strict
	}
}

// WithAllowed replaces the accepted leading keywords.
func WithAllowed(prefixes ...string) ValidatorOption {
	return func(v *Validator) {
		v.allowed = prefixes
	}
}

// NewValidator creates a validator accepting CREATE TABLE, CREATE INDEX and
// DROP TABLE statements.
func NewValidator(opts ...ValidatorOption) *Validator {
	v := &Validator{
		allowed:  []string{"CREATE TABLE", "CREATE INDEX", "DROP TABLE"},
		patterns: compilePatterns(dangerousPatterns),
	}

	for _, opt := range opts {
		opt(v)
	}

	if v.strict {
		v.patterns = append(v.patterns, compilePatterns(strictPatterns)...)
	}

	return v
}

// dangerousPatterns never occur in DDL rendered by a dialect.
var dangerousPatterns = []string{
	// Comments
	`--`,
	`/\*`,
	`#\s`,

	// Stacked statements: a terminator followed by anything
	`;\s*\S`,

	// Engine specific execution and timing functions
	`XP_CMDSHELL`,
	`SP_EXECUTESQL`,
	`\bEXEC(UTE)?\s*\(`,
	`PG_SLEEP\s*\(`,
	`BENCHMARK\s*\(`,
	`WAITFOR\s+DELAY`,
	`\bATTACH\s+DATABASE\b`,
	`\bLOAD_FILE\s*\(`,
	`\bCOPY\b.*\bPROGRAM\b`,
}

var strictPatterns = []string{
	`^\s*DROP\b`,
}

// ValidateStatement returns an error wrapping ErrUnsafeStatement when stmt does
// not start with an allowed keyword or contains a dangerous pattern.
func (v *Validator) ValidateStatement(stmt string) error {
	normalized := strings.ToUpper(strings.Join(strings.Fields(stmt), " "))
	if normalized == "" {
		return fmt.Errorf("%w: empty statement", ErrUnsafeStatement)
	}

	allowed := false
	for _, prefix := range v.allowed {
		if strings.HasPrefix(normalized, strings.ToUpper(prefix)) {
			allowed = true
			break
		}
	}
	if !allowed {
		return fmt.Errorf("%w: statement kind not allowed: %.40q", ErrUnsafeStatement, stmt)
	}

	for _, pattern := range v.patterns {
		if pattern.MatchString(normalized) {
			return fmt.Errorf("%w: matches %s", ErrUnsafeStatement, pattern)
		}
	}

	return nil
}

// ValidateScript splits script on newlines and validates every non-empty
// statement. It returns the statements in order.
func (v *Validator) ValidateScript(script string) ([]string, error) {
	var stmts []string
	for _, line := range strings.Split(script, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if err := v.ValidateStatement(line); err != nil {
			return nil, err
		}
		stmts = append(stmts, line)
	}
	return stmts, nil
}

// compilePatterns compiles string patterns to regexp.Regexp.
func compilePatterns(patterns []string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, pattern := range patterns {
		compiled = append(compiled, regexp.MustCompile(pattern))
	}
	return compiled
}
