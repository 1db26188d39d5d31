// Where: internal/ui/console.go
// What: Console output helpers for consistent CLI UX.
// Why: Standardize status markers, indentation, and structure across commands.
package ui

import (
	"fmt"
	"io"
)

// Console provides helper methods for formatted output.
type Console struct {
	Out io.Writer
}

// New creates a new Console writing to the provided writer.
func New(out io.Writer) *Console {
	return &Console{Out: out}
}

// Header prints a section header.
// Example: --- Credentials ---
func (c *Console) Header(title string) {
	fmt.Fprintf(c.Out, "\n--- %s ---\n\n", title)
}

// Item prints a key-value item with indentation.
// Example:    Key: Value
func (c *Console) Item(key string, value any) {
	fmt.Fprintf(c.Out, "   %-18s %v\n", key+":", value)
}

// ItemPlain prints a generic indented line.
func (c *Console) ItemPlain(msg string) {
	fmt.Fprintf(c.Out, "   %s\n", msg)
}

// OK prints a success line.
func (c *Console) OK(msg string) {
	fmt.Fprintf(c.Out, "[OK] %s\n", msg)
}

// Warn prints a warning line.
func (c *Console) Warn(msg string) {
	fmt.Fprintf(c.Out, "[WARN] %s\n", msg)
}

// Missing prints a missing-credential line.
func (c *Console) Missing(msg string) {
	fmt.Fprintf(c.Out, "[MISSING] %s\n", msg)
}

// Fail prints a failure line.
func (c *Console) Fail(msg string) {
	fmt.Fprintf(c.Out, "[FAIL] %s\n", msg)
}

// Info prints an info line.
func (c *Console) Info(msg string) {
	fmt.Fprintf(c.Out, "%s\n", msg)
}
