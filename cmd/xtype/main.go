// Command xtype renders, validates and inspects declarative xtype documents.
package main

import (
	"fmt"
	"os"

	"github.com/go-drift/xtype/cmd/xtype/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
