package gen

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/iancoleman/strcase"

	"pygi-codegen/internal/diagnostic"
	"pygi-codegen/internal/gir"
	"pygi-codegen/internal/logger"
	"pygi-codegen/internal/tmpl"
)

//go:embed templates/module.c.tmpl
var defaultTemplate string

// DefaultTemplate returns the module template used when no template path is
// configured.
func DefaultTemplate() string {
	return defaultTemplate
}

// ErrNoNamespace is returned when the configuration names no namespace.
var ErrNoNamespace = errors.New("no namespace given")

// ErrInvalidModule is returned by Generate when setup recorded error
// diagnostics. Nothing is written.
var ErrInvalidModule = errors.New("module has error diagnostics")

// ModuleBuilder generates the extension module source for one namespace.
// It is the generation context of its run: builders and template hooks get
// it (or its Context) explicitly.
type ModuleBuilder struct {
	config Config
	ns     *gir.Namespace
	ctx    *Context
	log    *slog.Logger

	types     []TypeBuilder
	functions []*FunctionBuilder

	// setup holds what classification reported; every run starts from it.
	setup diagnostic.Diagnostics
}

// NewModuleBuilder loads the namespace, classifies every descriptor once and
// registers each class-like type before anything is rendered. A namespace
// that cannot be loaded fails here, before any output exists.
func NewModuleBuilder(repo gir.Repository, cfg Config) (*ModuleBuilder, error) {
	if cfg.Namespace == "" {
		return nil, ErrNoNamespace
	}

	if cfg.Prefix == "" {
		cfg.Prefix = DefaultConfig().Prefix
	}

	log := cfg.Logger
	if log == nil {
		log = logger.Discard()
	}

	ns, err := repo.Require(cfg.Namespace)
	if err != nil {
		return nil, err
	}

	infos, err := repo.Infos(cfg.Namespace)
	if err != nil {
		return nil, err
	}

	m := &ModuleBuilder{
		config: cfg,
		ns:     ns,
		ctx:    NewContext(cfg.Namespace),
		log:    log.With("namespace", cfg.Namespace),
	}

	for _, info := range infos {
		b, ok := Classify(info, cfg.Prefix)
		if !ok {
			m.setup.AddInfo(diagnostic.CodeSkippedInfo,
				fmt.Sprintf("%s descriptors are not wrapped", info.Type), info.FullName())

			continue
		}

		m.log.Debug("classified descriptor", "entry", info.FullName(), "kind", info.Type.String())

		switch b := b.(type) {
		case *EnumBuilder:
			m.types = append(m.types, b)
		case *ClassBuilder:
			if err := m.ctx.Structs.Register(b); err != nil {
				return nil, err
			}

			m.types = append(m.types, b)
		case *FunctionBuilder:
			m.functions = append(m.functions, b)
		}
	}

	sorted, err := orderTypes(m.types)
	if err != nil {
		m.setup.AddError(diagnostic.CodeParentOrder,
			fmt.Sprintf("class parents cannot be registered first: %v", err), cfg.Namespace)
	}

	m.types = sorted

	return m, nil
}

// Config returns the configuration the builder was created with, with
// defaults applied.
func (m *ModuleBuilder) Config() Config {
	return m.config
}

// Types returns the class and enum builders in registration order.
func (m *ModuleBuilder) Types() []TypeBuilder {
	return m.types
}

// Functions returns the free function builders in declaration order.
func (m *ModuleBuilder) Functions() []*FunctionBuilder {
	return m.functions
}

// Context returns the run-scoped context.
func (m *ModuleBuilder) Context() *Context {
	return m.ctx
}

// Generate expands the configured template and publishes the result to the
// output path. Nothing is written unless the whole file expanded. Entries
// with unsupported types are stubbed and reported in the returned
// diagnostics.
func (m *ModuleBuilder) Generate(ctx context.Context) (diagnostic.Diagnostics, error) {
	start := time.Now()
	output := m.config.OutputPath()

	m.log.Info("generating module", "output", output)

	text, source, err := m.loadTemplate()
	if err != nil {
		return diagnostic.Diagnostics{}, err
	}

	m.begin()

	if m.ctx.Diags.HasErrors() {
		m.ctx.Diags.Log(ctx, m.log)

		return *m.ctx.Diags, fmt.Errorf("%w: %w", ErrInvalidModule, m.ctx.Diags.Error())
	}

	if err := ctx.Err(); err != nil {
		return *m.ctx.Diags, err
	}

	content, err := m.Render(text)
	if err != nil {
		return *m.ctx.Diags, fmt.Errorf("expanding template %s: %w", source, err)
	}

	if err := ctx.Err(); err != nil {
		return *m.ctx.Diags, err
	}

	if err := WriteFileAtomic(output, []byte(content)); err != nil {
		return *m.ctx.Diags, err
	}

	if err := m.writeDebugDump(m.config.DumpPath); err != nil {
		m.log.Warn("writing debug dump", "path", m.config.DumpPath, "error", err)
	}

	m.ctx.Diags.Log(ctx, m.log)
	m.log.Info("generated module",
		"output", output,
		"types", len(m.types),
		"functions", len(m.functions),
		"stubbed", m.stubbed(),
		"duration", time.Since(start))

	return *m.ctx.Diags, nil
}

// Render expands text against the module scope and returns the result.
func (m *ModuleBuilder) Render(text string) (string, error) {
	m.prepare()

	return tmpl.Expand(tmpl.NewPrinter(nil), text, m.Scope())
}

// Scope returns the slots and hooks a module template can use.
func (m *ModuleBuilder) Scope() *tmpl.Scope {
	namespaceLower := strings.ToLower(m.config.Prefix + m.config.Namespace)
	tpMethods := namespaceLower + "_functions"
	customEntries := strcase.ToScreamingSnake(tpMethods) + "_CUSTOM_ENTRIES"

	scope := tmpl.NewScope(nil).SetAll(map[string]string{
		"namespace":         m.config.Namespace,
		"namespace_lower":   namespaceLower,
		"namespace_version": m.ns.Version,
		"shared_library":    m.ns.SharedLibrary,
		"prefix":            m.config.Prefix,
		"command_line":      m.config.CommandLine,
		"output_basename":   m.config.OutputBasename(),
		"tp_methods":        tpMethods,
		"generator_version": Version,
	})
	scope.Set("method_table_custom_entries_macro_name", customEntries)

	eachType := func(render func(TypeBuilder, *tmpl.Printer) error) tmpl.Hook {
		return func(p *tmpl.Printer, _ string) error {
			for _, t := range m.types {
				if err := render(t, p); err != nil {
					return err
				}
			}

			return nil
		}
	}

	scope.
		SetHook("struct_defs", eachType(func(t TypeBuilder, p *tmpl.Printer) error {
			return t.PrintStructDef(p, m.ctx)
		})).
		SetHook("converters", eachType(func(t TypeBuilder, p *tmpl.Printer) error {
			return t.PrintConverters(p, m.ctx)
		})).
		SetHook("class_methods", eachType(func(t TypeBuilder, p *tmpl.Printer) error {
			return t.PrintMethods(p, m.ctx)
		})).
		SetHook("type_registrations", eachType(func(t TypeBuilder, p *tmpl.Printer) error {
			return t.PrintTypeRegistration(p, m.ctx)
		})).
		SetHook("functions", func(p *tmpl.Printer, _ string) error {
			for _, f := range m.functions {
				if err := f.PrintWrapperDef(p, m.ctx); err != nil {
					return err
				}
			}

			return nil
		}).
		SetHook("function_table", func(p *tmpl.Printer, _ string) error {
			return printMethodTable(p, tpMethods, customEntries, m.functions)
		})

	return scope
}

// begin starts a run: builders forget earlier plans and diagnostics start
// from what classification reported.
func (m *ModuleBuilder) begin() {
	m.ctx.Diags = &diagnostic.Diagnostics{}
	m.ctx.Diags.Merge(m.setup)

	for _, t := range m.types {
		classBuilderOf(t).reset()
	}

	for _, f := range m.functions {
		f.reset()
	}
}

// prepare resolves every wrapper plan in declaration order so diagnostics do
// not depend on the order a template happens to use the hooks in.
func (m *ModuleBuilder) prepare() {
	for _, t := range m.types {
		classBuilderOf(t).prepare(m.ctx)
	}

	for _, f := range m.functions {
		f.prepare(m.ctx)
	}
}

func (m *ModuleBuilder) stubbed() int {
	n := 0

	for _, t := range m.types {
		for _, f := range classBuilderOf(t).Methods {
			if f.Stubbed() {
				n++
			}
		}
	}

	for _, f := range m.functions {
		if f.Stubbed() {
			n++
		}
	}

	return n
}

func (m *ModuleBuilder) loadTemplate() (text, source string, err error) {
	if m.config.TemplatePath == "" {
		return defaultTemplate, "(default)", nil
	}

	data, err := os.ReadFile(m.config.TemplatePath)
	if err != nil {
		return "", "", fmt.Errorf("reading template: %w", err)
	}

	return string(data), m.config.TemplatePath, nil
}
