package diagnostic

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnostics_AddAndMerge(t *testing.T) {
	var d Diagnostics

	d.AddWarning(CodeUnsupportedType, "no parse directive for ghash", "demo_table_lookup")
	d.AddInfo(CodeSkippedInfo, "callback not wrapped", "Demo.Callback")

	assert.True(t, d.IsValid())
	assert.False(t, d.HasErrors())
	assert.NoError(t, d.Error())

	var other Diagnostics
	other.AddError(CodeParentOrder, "parent cycle", "Demo.A")

	d.Merge(other)
	assert.Equal(t, 3, d.Count())
	require.Error(t, d.Error())
	assert.Equal(t, "[Demo.A]: [PARENT_ORDER] parent cycle", d.Error().Error())
}

func TestDiagnostic_String(t *testing.T) {
	assert.Equal(t, "[X] msg", Diagnostic{Code: "X", Message: "msg"}.String())
	assert.Equal(t, "msg", Diagnostic{Message: "msg"}.String())
}

func TestDiagnostics_Log(t *testing.T) {
	var buf bytes.Buffer

	l := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn}))

	var d Diagnostics
	d.AddWarning(CodeUnsupportedType, "stubbed", "demo_fn")
	d.AddInfo(CodeSkippedInfo, "quiet", "")

	d.Log(context.Background(), l)

	out := buf.String()
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "code=UNSUPPORTED_TYPE")
	assert.Contains(t, out, "entry=demo_fn")
	assert.NotContains(t, out, "quiet")
}
