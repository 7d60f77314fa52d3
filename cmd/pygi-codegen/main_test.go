package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tinyDoc = `
namespace: Tiny
version: "0.1"
infos:
  - kind: function
    name: answer
    returns: gint
  - kind: function
    name: hash
    args:
      - {name: table, type: ghash}
`

func writeTiny(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Tiny.yaml"), []byte(tinyDoc), 0o600))

	return dir
}

func TestRun_Generates(t *testing.T) {
	meta := writeTiny(t)
	out := filepath.Join(t.TempDir(), "pytiny.c")

	var stderr bytes.Buffer

	code := run(context.Background(), []string{"pygi-codegen", "-metadata", meta, "Tiny", "-o", out, "-dump"}, &stderr)
	require.Equal(t, exitOK, code, stderr.String())

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "res = tiny_answer ();")
	assert.Contains(t, string(data), " * pygi-codegen -metadata "+meta+" Tiny -o "+out+" -dump\n")
	assert.Contains(t, stderr.String(), "1 warning(s)")
	assert.Contains(t, stderr.String(), "UNSUPPORTED_TYPE")

	_, err = os.Stat(out + ".dump.txt")
	assert.NoError(t, err)
}

func TestRun_MetadataFromEnvironment(t *testing.T) {
	meta := writeTiny(t)
	out := filepath.Join(t.TempDir(), "tiny.c")
	t.Setenv(metadataPathEnv, filepath.Join(t.TempDir(), "empty")+string(os.PathListSeparator)+meta)

	var stderr bytes.Buffer

	code := run(context.Background(), []string{"pygi-codegen", "-prefix", "x", "-output", out, "Tiny"}, &stderr)
	require.Equal(t, exitOK, code, stderr.String())

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "xtiny_answer (PyObject *self, PyObject *Py_UNUSED(ignored))")
	assert.Contains(t, string(data), "PyInit_tiny (void)")
}

func TestRun_Failures(t *testing.T) {
	meta := writeTiny(t)

	tests := []struct {
		name string
		args []string
		want int
	}{
		{"no namespace", []string{"pygi-codegen"}, exitUsage},
		{"two namespaces", []string{"pygi-codegen", "A", "B"}, exitUsage},
		{"unknown flag", []string{"pygi-codegen", "-bogus", "Tiny"}, exitUsage},
		{"bad log level", []string{"pygi-codegen", "-log-level", "loud", "Tiny"}, exitUsage},
		{"bad log format", []string{"pygi-codegen", "-log-format", "xml", "Tiny"}, exitUsage},
		{"missing namespace", []string{"pygi-codegen", "-metadata", meta, "Absent"}, exitError},
		{"missing template", []string{"pygi-codegen", "-metadata", meta, "-t", filepath.Join(meta, "none.tmpl"), "Tiny"}, exitError},
		{"help", []string{"pygi-codegen", "-h"}, exitOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(metadataPathEnv, "")

			var stderr bytes.Buffer

			assert.Equal(t, tt.want, run(context.Background(), tt.args, &stderr), stderr.String())
		})
	}
}

func TestRun_ParentCycle(t *testing.T) {
	meta := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(meta, "Loop.yaml"), []byte(`
namespace: Loop
infos:
  - {kind: object, name: Egg, parent: Hen}
  - {kind: object, name: Hen, parent: Egg}
`), 0o600))

	out := filepath.Join(t.TempDir(), "pyloop.c")

	var stderr bytes.Buffer

	code := run(context.Background(), []string{"pygi-codegen", "-metadata", meta, "-o", out, "Loop"}, &stderr)
	assert.Equal(t, exitError, code)
	assert.Contains(t, stderr.String(), "PARENT_ORDER")
	assert.Contains(t, stderr.String(), out+": not written, 1 error(s)")

	_, err := os.Stat(out)
	assert.True(t, os.IsNotExist(err))
}

func TestSearchPath(t *testing.T) {
	sep := string(os.PathListSeparator)

	assert.Equal(t, []string{"."}, searchPath("", ""))
	assert.Equal(t, []string{"a", "b", "c"}, searchPath("a"+sep+"b", "c"))
	assert.Equal(t, []string{"c"}, searchPath("", sep+"c"+sep))
}
