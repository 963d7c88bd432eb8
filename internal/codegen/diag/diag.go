// Package diag carries non-fatal generator diagnostics to a caller-supplied sink.
package diag

import "fmt"

// Kind classifies a diagnostic.
type Kind uint8

const (
	// KindGenerated reports an artifact that was written (or would be, in check mode).
	KindGenerated Kind = iota

	// KindNoExports reports a schema file without any export markers. It never
	// affects the batch result.
	KindNoExports

	// KindSkip reports an export marker that was dropped leniently, such as a
	// constant statement with no terminating semicolon.
	KindSkip

	// KindStale reports a generated artifact that differs from what is on disk.
	KindStale
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindGenerated:
		return "Generated"
	case KindNoExports:
		return "NoExports"
	case KindSkip:
		return "Skip"
	case KindStale:
		return "Stale"
	default:
		return "Unknown"
	}
}

// Diagnostic is a single report about one file.
type Diagnostic struct {
	Kind    Kind
	File    string
	Line    int
	Message string
}

func (d Diagnostic) String() string {
	if d.Line > 0 {
		return fmt.Sprintf("%s: %s:%d: %s", d.Kind, d.File, d.Line, d.Message)
	}
	return fmt.Sprintf("%s: %s: %s", d.Kind, d.File, d.Message)
}

// Sink receives diagnostics as they are produced.
type Sink interface {
	Report(d Diagnostic)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(d Diagnostic)

func (f SinkFunc) Report(d Diagnostic) { f(d) }

// Discard drops every diagnostic.
var Discard Sink = SinkFunc(func(Diagnostic) {})

// Collector records diagnostics in arrival order.
type Collector struct {
	Diagnostics []Diagnostic
}

func (c *Collector) Report(d Diagnostic) {
	c.Diagnostics = append(c.Diagnostics, d)
}

// OfKind returns the collected diagnostics of the given kind.
func (c *Collector) OfKind(k Kind) []Diagnostic {
	var out []Diagnostic
	for _, d := range c.Diagnostics {
		if d.Kind == k {
			out = append(out, d)
		}
	}
	return out
}
