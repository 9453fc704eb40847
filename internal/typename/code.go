// Package typename maps abstract column type codes to engine-specific SQL type
// names, choosing the narrowest registered type that can hold a requested length.
package typename

import (
	"fmt"
	"strings"
)

// Code classifies a column's data type independently of any database engine.
type Code int

// Abstract column type codes. Unknown is the zero value and is never mapped.
const (
	Unknown Code = iota
	AnsiString
	AnsiStringFixedLength
	String
	StringFixedLength
	Binary
	Boolean
	Byte
	Int16
	Int32
	Int64
	Single
	Double
	Decimal
	Date
	Time
	DateTime
	DateTimeOffset
	Guid
)

var codeNames = [...]string{
	Unknown:               "unknown",
	AnsiString:            "ansistring",
	AnsiStringFixedLength: "ansistringfixedlength",
	String:                "string",
	StringFixedLength:     "stringfixedlength",
	Binary:                "binary",
	Boolean:               "boolean",
	Byte:                  "byte",
	Int16:                 "int16",
	Int32:                 "int32",
	Int64:                 "int64",
	Single:                "single",
	Double:                "double",
	Decimal:               "decimal",
	Date:                  "date",
	Time:                  "time",
	DateTime:              "datetime",
	DateTimeOffset:        "datetimeoffset",
	Guid:                  "guid",
}

// Common spellings accepted by ParseCode in addition to the canonical names.
var codeAliases = map[string]Code{
	"int":       Int32,
	"integer":   Int32,
	"bigint":    Int64,
	"smallint":  Int16,
	"bool":      Boolean,
	"uuid":      Guid,
	"text":      String,
	"float":     Double,
	"timestamp": DateTime,
	"bytes":     Binary,
}

// String returns the canonical lowercase name of the code.
func (c Code) String() string {
	if c < 0 || int(c) >= len(codeNames) {
		return fmt.Sprintf("code(%d)", int(c))
	}
	return codeNames[c]
}

// Valid reports whether c is one of the declared codes other than Unknown.
func (c Code) Valid() bool {
	return c > Unknown && int(c) < len(codeNames)
}

// ParseCode parses a type code name case-insensitively.
func ParseCode(s string) (Code, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range codeNames {
		if n == name && Code(i) != Unknown {
			return Code(i), nil
		}
	}
	if c, ok := codeAliases[name]; ok {
		return c, nil
	}
	return Unknown, fmt.Errorf("typename: unknown type code %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (c Code) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("typename: cannot marshal %s", c)
	}
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Code) UnmarshalText(text []byte) error {
	parsed, err := ParseCode(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
