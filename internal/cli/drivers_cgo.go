//go:build cgo

package cli

// Drivers that need cgo.
import (
	_ "github.com/marcboeker/go-duckdb" // duckdb
	_ "github.com/mattn/go-sqlite3"     // sqlite3
)
