// Command docstore runs the demo scenarios against a document store or
// serves the HTTP API.
package main

import (
	"os"
)

func main() {
	if err := Execute(); err != nil {
		os.Exit(1)
	}
}
