// The main package for the jobscout executable.
package main

import (
	"github.com/jobscout/jobscout/cmd"
)

// main is the entry point of the application.
// It defers all execution to the Cobra CLI library.
func main() {
	cmd.Execute()
}
