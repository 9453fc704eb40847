package dialects

import "strings"

// OpenQuote returns the opening identifier quote.
func (b *Base) OpenQuote() string { return b.openQuote }

// CloseQuote returns the closing identifier quote.
func (b *Base) CloseQuote() string { return b.closeQuote }

// IsQuoted reports whether name starts with the open quote and ends with the
// close quote. A lone quote character is not a quoted name.
func (b *Base) IsQuoted(name string) bool {
	return len(name) >= len(b.openQuote)+len(b.closeQuote) &&
		strings.HasPrefix(name, b.openQuote) &&
		strings.HasSuffix(name, b.closeQuote)
}

// Quote doubles every close quote inside name and wraps it in quotes.
// With [ and ] this yields [a]]b] for a]b; the open quote needs no escaping.
func (b *Base) Quote(name string) string {
	return b.openQuote + strings.ReplaceAll(name, b.closeQuote, b.closeQuote+b.closeQuote) + b.closeQuote
}

// UnQuote strips the wrapping quotes, if present, and collapses doubled close
// quotes. UnQuote(Quote(s)) == s for every s.
func (b *Base) UnQuote(name string) string {
	if b.dialect().IsQuoted(name) {
		name = name[len(b.openQuote) : len(name)-len(b.closeQuote)]
	}
	return strings.ReplaceAll(name, b.closeQuote+b.closeQuote, b.closeQuote)
}

func (b *Base) quoteOnce(name string) string {
	d := b.dialect()
	if d.IsQuoted(name) {
		return name
	}
	return d.Quote(name)
}

// QuoteForTableName quotes a table name unless it is already quoted.
func (b *Base) QuoteForTableName(name string) string { return b.quoteOnce(name) }

// QuoteForColumnName quotes a column name unless it is already quoted.
func (b *Base) QuoteForColumnName(name string) string { return b.quoteOnce(name) }

// QuoteForAliasName quotes an alias unless it is already quoted.
func (b *Base) QuoteForAliasName(name string) string { return b.quoteOnce(name) }

// QuoteForIndexName quotes an index name unless it is already quoted.
func (b *Base) QuoteForIndexName(name string) string { return b.quoteOnce(name) }

// Qualify joins catalog, schema and table with dots, skipping empty parts.
func (b *Base) Qualify(catalog, schema, table string) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{catalog, schema, table} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ".")
}
