// The main package for the feedrank executable.
package main

import (
	"github.com/feedrank/feedrank/cmd"
)

// main defers all execution to the Cobra CLI library.
func main() {
	cmd.Execute()
}
