package gen

import (
	"io"
	"os"

	"github.com/davecgh/go-spew/spew"
)

var dumpConfig = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
	MaxDepth:                4,
}

// dumpView is the part of a run worth looking at when a generated file is
// not what was expected.
type dumpView struct {
	Namespace string
	Prefix    string
	Types     []TypeBuilder
	Functions []*FunctionBuilder
	Registry  []string
}

// Dump writes the classified builders of the run to w.
func (m *ModuleBuilder) Dump(w io.Writer) {
	dumpConfig.Fdump(w, dumpView{
		Namespace: m.config.Namespace,
		Prefix:    m.config.Prefix,
		Types:     m.types,
		Functions: m.functions,
		Registry:  m.ctx.Structs.Names(),
	})
}

// writeDebugDump writes the builder dump to a sidecar file next to the
// output. This is best-effort and should never make generation fail.
func (m *ModuleBuilder) writeDebugDump(path string) error {
	if path == "" {
		return nil
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	m.Dump(f)

	return f.Close()
}
