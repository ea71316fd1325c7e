// catalogctl inspects a template pool and resolves queries offline,
// without starting the HTTP server.
package main

import (
	"os"

	"github.com/annai/backend/cmd/catalogctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
