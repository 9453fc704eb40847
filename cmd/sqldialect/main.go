// Command sqldialect lists SQL dialects, detects the engine behind a
// connection and renders CREATE TABLE statements from YAML table definitions.
package main

import (
	"os"

	"github.com/coregx/sqldialect/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
