package tmpl

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpand_PlainTextUnchanged(t *testing.T) {
	text := "static int x = 1;\n/* { not a slot } $ */\n"

	out, err := ExpandString(text, NewScope(nil))
	require.NoError(t, err)
	assert.Equal(t, text, out)
}

func TestExpand_Slots(t *testing.T) {
	parent := NewScope(nil).Set("prefix", "_demo")
	scope := NewScope(parent).Set("namespace", "Demo").Set("self.name", "Canvas")

	out, err := ExpandString("PyInit_${prefix}${namespace} ${ self.name }", scope)
	require.NoError(t, err)
	assert.Equal(t, "PyInit__demoDemo Canvas", out)
}

func TestExpand_UnknownSlot(t *testing.T) {
	_, err := ExpandString("a\nb ${missing}\n", NewScope(nil))
	require.Error(t, err)

	var se *SubstitutionError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, 2, se.Line)
	assert.True(t, errors.Is(err, ErrUnknownSlot))
}

func TestExpand_RejectsCode(t *testing.T) {
	_, err := ExpandString("${1 + 2}", NewScope(nil))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrBadExpression))
}

func TestExpand_BlockIndentation(t *testing.T) {
	scope := NewScope(nil).SetHook("body", func(p *Printer, _ string) error {
		return p.WriteString("a;\n\nb;\n")
	})

	text := "void f(void) {\n    $render{\n        body\n    }end\n}\n"

	out, err := ExpandString(text, scope)
	require.NoError(t, err)
	assert.Equal(t, "void f(void) {\n    a;\n\n    b;\n}\n", out)
}

func TestExpand_BlockOutputNotRescanned(t *testing.T) {
	scope := NewScope(nil).
		Set("name", "expanded").
		SetHook("raw", func(p *Printer, _ string) error {
			return p.WriteString("${name}\n")
		})

	out, err := ExpandString("$render{\n    raw\n}end\n${name}", scope)
	require.NoError(t, err)
	assert.Equal(t, "${name}\nexpanded", out)
}

func TestExpand_HookArgument(t *testing.T) {
	scope := NewScope(nil).SetHook("greet", func(p *Printer, arg string) error {
		return p.WriteString("hi " + arg + "\n")
	})

	out, err := ExpandString("$render{\n greet bob\n # ignored\n}end\n", scope)
	require.NoError(t, err)
	assert.Equal(t, "hi bob\n", out)
}

func TestExpand_EmptyBlockDropsLine(t *testing.T) {
	scope := NewScope(nil).SetHook("nothing", func(*Printer, string) error { return nil })

	out, err := ExpandString("a\n  $render{\n    nothing\n  }end\nb\n", scope)
	require.NoError(t, err)
	assert.Equal(t, "a\nb\n", out)
}

func TestExpand_UnknownHook(t *testing.T) {
	_, err := ExpandString("x\n$render{\n    nope\n}end\n", NewScope(nil))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownHook))

	var se *SubstitutionError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, 2, se.Line)
}

func TestExpand_Unterminated(t *testing.T) {
	scope := NewScope(nil).Set("v", "1")
	scope.SetHook("h", func(p *Printer, _ string) error { return p.WriteString("ok") })

	tests := []struct {
		name string
		text string
		line int
	}{
		{"misspelled block end", "a\n    $render{\n        h\n    }ned\nb\n", 2},
		{"block never closed", "${v}\n$render{\n    h\n", 2},
		{"expression never closed", "x = ${v};\ny = ${open\n", 2},
		{"opener after a good block", "$render{\n    h\n}end\n$render{\n", 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ExpandString(tt.text, scope)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrUnterminatedBlock))

			var se *SubstitutionError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, tt.line, se.Line)
		})
	}

	out, err := ExpandString("plain $ text { }\n", scope)
	require.NoError(t, err)
	assert.Equal(t, "plain $ text { }\n", out)
}

func TestExpand_NestedPrint(t *testing.T) {
	var buf bytes.Buffer

	p := NewPrinter(&buf)
	scope := NewScope(nil).Set("v", "42")
	scope.SetHook("assign", func(p *Printer, _ string) error {
		return Print(p, `
			x = ${v};`, scope)
	})

	require.NoError(t, Print(p, `
		{
		    $render{
		        assign
		    }end
		}`, scope))

	assert.Equal(t, "\n{\n\n    x = 42;\n}\n", buf.String())
	assert.Equal(t, 0, p.Depth())
}

func TestCapture_RestoresOnError(t *testing.T) {
	var buf bytes.Buffer

	p := NewPrinter(&buf)
	boom := errors.New("boom")
	scope := NewScope(nil).SetHook("fail", func(p *Printer, _ string) error {
		_ = p.WriteString("partial\n")

		return boom
	})

	_, err := Expand(p, "$render{\n    fail\n}end\n", scope)
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 0, p.Depth())

	require.NoError(t, p.WriteString("after"))
	assert.Equal(t, "after", buf.String())
}

func TestCapture_RestoresOnPanic(t *testing.T) {
	p := NewPrinter(nil)

	assert.Panics(t, func() {
		_, _ = p.Capture(func() error {
			_, _ = p.Capture(func() error {
				panic("inner")
			})

			return nil
		})
	})
	assert.Equal(t, 0, p.Depth())
}

func TestDedent(t *testing.T) {
	assert.Equal(t, "\na\n  b\n\nc", Dedent("\n    a\n      b\n  \n    c"))
	assert.Equal(t, "a\nb", Dedent("a\nb"))
	assert.Equal(t, "x\ny", Dedent("\tx\n\ty"))
}

func TestIndent(t *testing.T) {
	assert.Equal(t, "  a\n\n  b\n", Indent("a\n\nb\n", "  "))
	assert.Equal(t, "", Indent("", "  "))
}
