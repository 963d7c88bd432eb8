package log

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/april-engine/schemagen/internal/codegen/diag"
)

func TestDiagnosticSink(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
	sink := NewDiagnosticSink(logger)

	sink.Report(diag.Diagnostic{Kind: diag.KindGenerated, File: "out/a.generated.hpp", Message: "generated from a.shared.slang"})
	sink.Report(diag.Diagnostic{Kind: diag.KindNoExports, File: "in/b.shared.slang"})
	sink.Report(diag.Diagnostic{Kind: diag.KindSkip, File: "in/c.shared.slang", Line: 3})
	sink.Report(diag.Diagnostic{Kind: diag.KindStale, File: "out/a.generated.slang"})

	out := buf.String()
	assert.Contains(t, out, `level=INFO msg=Generated file=out/a.generated.hpp detail="generated from a.shared.slang"`)
	assert.Contains(t, out, `msg="No export annotations found" file=in/b.shared.slang`)
	assert.NotContains(t, out, "c.shared.slang")
	assert.Contains(t, out, `level=WARN msg="Generated file is stale"`)

	assert.Equal(t, 1, sink.Count(diag.KindSkip))
	assert.Equal(t, 1, sink.Count(diag.KindStale))
}

func TestDiagnosticSink_NilLoggerCounts(t *testing.T) {
	sink := NewDiagnosticSink(nil)
	sink.Report(diag.Diagnostic{Kind: diag.KindNoExports})
	sink.Report(diag.Diagnostic{Kind: diag.KindNoExports})
	assert.Equal(t, 2, sink.Count(diag.KindNoExports))
	assert.Zero(t, sink.Count(diag.KindGenerated))
}
