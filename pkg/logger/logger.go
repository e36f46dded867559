// Package logger provides a plain stdout logger for CLI-facing output,
// separate from the structured application log.
package logger

import (
	"fmt"
	"log"
	"os"
)

// New returns a stdlib-backed logger with a component prefix and timestamps.
func New(component string) *log.Logger {
	prefix := fmt.Sprintf("[%s] ", component)
	return log.New(os.Stdout, prefix, log.LstdFlags)
}
