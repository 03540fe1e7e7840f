// Command textproc tags dictionary entities in text documents.
package main

import (
	"fmt"
	"os"

	"github.com/cognicore/textproc/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
