package log

import (
	"context"
	"log/slog"
	"sync"

	"github.com/april-engine/schemagen/internal/codegen/diag"
)

// DiagnosticSink forwards generator diagnostics to a slog.Logger and counts
// them per kind.
type DiagnosticSink struct {
	logger *slog.Logger
	mu     sync.Mutex
	counts map[diag.Kind]int
}

// NewDiagnosticSink creates a sink logging to logger. A nil logger only counts.
func NewDiagnosticSink(logger *slog.Logger) *DiagnosticSink {
	return &DiagnosticSink{logger: logger, counts: make(map[diag.Kind]int)}
}

// Report logs d at the level of its kind.
func (s *DiagnosticSink) Report(d diag.Diagnostic) {
	s.mu.Lock()
	s.counts[d.Kind]++
	s.mu.Unlock()

	if s.logger == nil {
		return
	}
	attrs := []any{"file", d.File}
	if d.Line > 0 {
		attrs = append(attrs, "line", d.Line)
	}
	if d.Message != "" {
		attrs = append(attrs, "detail", d.Message)
	}
	s.logger.Log(context.Background(), levelFor(d.Kind), messageFor(d.Kind), attrs...)
}

// Count returns how many diagnostics of kind k were reported.
func (s *DiagnosticSink) Count(k diag.Kind) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counts[k]
}

func levelFor(k diag.Kind) slog.Level {
	switch k {
	case diag.KindSkip:
		return slog.LevelDebug
	case diag.KindStale:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}

func messageFor(k diag.Kind) string {
	switch k {
	case diag.KindGenerated:
		return "Generated"
	case diag.KindNoExports:
		return "No export annotations found"
	case diag.KindSkip:
		return "Skipped export marker"
	case diag.KindStale:
		return "Generated file is stale"
	default:
		return k.String()
	}
}
