package gen

import (
	"errors"
	"fmt"
	"strings"

	"pygi-codegen/internal/catalog"
	"pygi-codegen/internal/diagnostic"
	"pygi-codegen/internal/gir"
	"pygi-codegen/internal/tmpl"
)

const functionWrapperTemplate = `
static PyObject *
${wrapper_name} (${self_struct} *self, PyObject *args, PyObject *kwargs)
{
    $render{
        wrapper_body
    }end
}
`

const functionWrapperTemplateNoArgs = `
static PyObject *
${wrapper_name} (${self_struct} *self, PyObject *Py_UNUSED(ignored))
{
    $render{
        wrapper_body
    }end
}
`

const parseArgsTemplate = `
if (!PyArg_ParseTupleAndKeywords (args, kwargs,
                                  "${parse_format}:${name}", kwlist,
                                  ${parse_args}))
    return NULL;
`

const errorCheckTemplate = `
if (error != NULL) {
    PyErr_SetString (PyExc_ValueError, error->message);
    g_error_free (error);
    return NULL;
}`

const notImplementedBody = `
PyErr_SetString (PyExc_NotImplementedError, "Don't know how to marshal ${what}");
return NULL;`

const wrapperEntryTemplate = `{ "${name}", (PyCFunction) ${wrapper_name}, ${py_flags}, NULL },`

// FunctionBuilder renders the C entry point for one callable: a free
// function of the namespace or a method of a generated type.
type FunctionBuilder struct {
	info *gir.Info

	Symbol      string
	WrapperName string
	SelfStruct  string
	Name        string
	PyFlags     string

	inputs []*gir.ArgInfo

	plan    *callPlan
	planErr error
}

// callPlan is everything the wrapper body prints, resolved up front so an
// unsupported type turns the whole body into a stub before anything is
// written.
type callPlan struct {
	decls       []string
	parseFormat string
	parseArgs   []string
	call        string
	throws      bool
	buildFormat string
	buildArgs   []string
	buildCount  int
}

// NewFunctionBuilder creates the builder for a free function. The wrapper
// is named prefix + C symbol.
func NewFunctionBuilder(info *gir.Info, prefix string) *FunctionBuilder {
	b := &FunctionBuilder{
		info:        info,
		Symbol:      info.Symbol,
		WrapperName: prefix + info.Symbol,
		SelfStruct:  "PyObject",
		Name:        pyName(info.Name),
	}

	for _, arg := range info.Args {
		if arg.Direction.IsInput() {
			b.inputs = append(b.inputs, arg)
		}
	}

	if len(b.inputs) > 0 {
		b.PyFlags = "METH_VARARGS | METH_KEYWORDS"
	} else {
		b.PyFlags = "METH_NOARGS"
	}

	return b
}

// NewMethodBuilder creates the builder for a method of the type whose
// instance struct is objectStruct. Constructors and static methods get no
// implicit instance.
func NewMethodBuilder(info *gir.Info, prefix, objectStruct string) *FunctionBuilder {
	b := NewFunctionBuilder(info, prefix)
	b.SelfStruct = objectStruct

	if info.IsConstructor() || !info.IsMethod() {
		b.PyFlags += " | METH_STATIC"
	}

	return b
}

// Info returns the descriptor the builder was created from.
func (b *FunctionBuilder) Info() *gir.Info { return b.info }

func (*FunctionBuilder) isBuilder() {}

// Stubbed reports whether the last prepared body is a NotImplementedError
// stub.
func (b *FunctionBuilder) Stubbed() bool {
	return b.planErr != nil
}

// prepare resolves the marshaling plan once per run. A type without a
// directive records a warning and leaves the builder stubbed.
func (b *FunctionBuilder) prepare(c *Context) {
	if b.plan != nil || b.planErr != nil {
		return
	}

	b.plan, b.planErr = b.buildPlan(c.Structs)
	if b.planErr != nil {
		c.Diags.AddWarning(diagnostic.CodeUnsupportedType,
			fmt.Sprintf("wrapper stubbed: %v", b.planErr), b.Symbol)
	}
}

func (b *FunctionBuilder) reset() {
	b.plan, b.planErr = nil, nil
}

func (b *FunctionBuilder) buildPlan(reg catalog.Registry) (*callPlan, error) {
	info := b.info
	plan := &callPlan{throws: info.Throws()}

	var (
		kwlist   []string
		outDecls []string
		callArgs []string
	)

	ret := info.ReturnType
	if !ret.IsVoid() {
		ctype, err := catalog.StorageTypeFor(ret, reg)
		if err != nil {
			return nil, fmt.Errorf("return value: %w", err)
		}

		d, err := catalog.DirectiveFor(ret, catalog.Build, reg)
		if err != nil {
			return nil, fmt.Errorf("return value: %w", err)
		}

		if info.IsConstructor() {
			d = ownedResult(d, ret, reg)
		}

		plan.decls = append(plan.decls, ctype+" res;", "PyObject *py_res = NULL;")
		plan.addBuild(d, "res")
	}

	if plan.throws {
		plan.decls = append(plan.decls, "GError *error = NULL;")
	}

	if info.IsMethod() {
		callArgs = append(callArgs, "self->obj")
	}

	for _, arg := range info.Args {
		name := argName(arg.Name)

		ctype, err := catalog.StorageTypeFor(arg.Type, reg)
		if err != nil {
			return nil, fmt.Errorf("argument %s: %w", arg.Name, err)
		}

		if arg.Direction == gir.DirectionOut {
			d, err := catalog.DirectiveFor(arg.Type, catalog.Build, reg)
			if err != nil {
				return nil, fmt.Errorf("argument %s: %w", arg.Name, err)
			}

			outDecls = append(outDecls, ctype+" "+name+";")
			callArgs = append(callArgs, "&"+name)
			plan.addBuild(d, name)

			continue
		}

		d, err := catalog.DirectiveForArg(arg, reg)
		if err != nil {
			return nil, fmt.Errorf("argument %s: %w", arg.Name, err)
		}

		kwlist = append(kwlist, `"`+name+`"`)
		plan.decls = append(plan.decls, ctype+" "+name+";")
		plan.parseFormat += d.Format

		if d.HasConverter() {
			plan.parseArgs = append(plan.parseArgs, d.Converter)
		}

		plan.parseArgs = append(plan.parseArgs, "&"+name)

		// In-out values are parsed in and handed over by address; the callee's
		// update is not marshaled back.
		if arg.Direction == gir.DirectionInOut {
			callArgs = append(callArgs, "&"+name)
		} else {
			callArgs = append(callArgs, name)
		}
	}

	if len(kwlist) > 0 {
		kw := "static char *kwlist[] = { " + strings.Join(kwlist, ", ") + ", NULL };"
		plan.decls = append([]string{kw}, plan.decls...)
	}

	plan.decls = append(plan.decls, outDecls...)

	if plan.throws {
		callArgs = append(callArgs, "&error")
	}

	plan.call = fmt.Sprintf("%s (%s);", info.Symbol, strings.Join(callArgs, ", "))
	if !ret.IsVoid() {
		plan.call = "res = " + plan.call
	}

	return plan, nil
}

// ownedResult switches a constructor's result to the converter that takes
// over the returned reference instead of adding one.
func ownedResult(d catalog.Directive, t *gir.TypeInfo, reg catalog.Registry) catalog.Directive {
	iface := t.Interface()
	if iface == nil || reg == nil {
		return d
	}

	c, ok := reg.Lookup(iface.FullName())
	if !ok {
		return d
	}

	if owned, ok := c.(interface{ ToPyFullConverter() string }); ok && owned.ToPyFullConverter() != "" {
		d.Converter = owned.ToPyFullConverter()
	}

	return d
}

func (p *callPlan) addBuild(d catalog.Directive, name string) {
	p.buildFormat += d.Format
	p.buildCount++

	if d.HasConverter() {
		p.buildArgs = append(p.buildArgs, d.Converter, "&"+name)
	} else {
		p.buildArgs = append(p.buildArgs, name)
	}
}

func (b *FunctionBuilder) scope() *tmpl.Scope {
	return tmpl.NewScope(nil).
		Set("wrapper_name", b.WrapperName).
		Set("self_struct", b.SelfStruct).
		Set("name", b.Name).
		Set("py_flags", b.PyFlags).
		SetHook("wrapper_body", func(p *tmpl.Printer, _ string) error {
			return b.printWrapperBody(p)
		})
}

// PrintWrapperDef writes the wrapper function definition.
func (b *FunctionBuilder) PrintWrapperDef(p *tmpl.Printer, c *Context) error {
	b.prepare(c)

	text := functionWrapperTemplate
	if len(b.inputs) == 0 {
		text = functionWrapperTemplateNoArgs
	}

	if err := tmpl.Print(p, text, b.scope()); err != nil {
		return fmt.Errorf("wrapper %s: %w", b.Symbol, err)
	}

	return nil
}

// PrintWrapperEntry writes the method-table line for the wrapper.
func (b *FunctionBuilder) PrintWrapperEntry(p *tmpl.Printer) error {
	return tmpl.Print(p, wrapperEntryTemplate, b.scope())
}

func (b *FunctionBuilder) printWrapperBody(p *tmpl.Printer) error {
	if b.planErr != nil {
		scope := tmpl.NewScope(nil).Set("what", unsupportedWhat(b.planErr))

		return tmpl.Print(p, notImplementedBody, scope)
	}

	plan := b.plan

	for _, decl := range plan.decls {
		if err := writeLine(p, decl); err != nil {
			return err
		}
	}

	if len(b.inputs) > 0 {
		scope := tmpl.NewScope(nil).
			Set("parse_format", plan.parseFormat).
			Set("name", b.Name).
			Set("parse_args", strings.Join(plan.parseArgs, ", "))

		if err := tmpl.Print(p, parseArgsTemplate, scope); err != nil {
			return err
		}
	}

	if err := writeLine(p, plan.call); err != nil {
		return err
	}

	if plan.throws {
		if err := tmpl.Print(p, errorCheckTemplate, tmpl.NewScope(nil)); err != nil {
			return err
		}
	}

	if plan.buildCount == 0 {
		return writeLine(p, "Py_RETURN_NONE;")
	}

	format := plan.buildFormat
	if plan.buildCount > 1 {
		format = "(" + format + ")"
	}

	if err := writeLine(p, fmt.Sprintf("py_res = Py_BuildValue (\"%s\", %s);",
		format, strings.Join(plan.buildArgs, ", "))); err != nil {
		return err
	}

	return writeLine(p, "return py_res;")
}

// unsupportedWhat names the type a stub could not marshal.
func unsupportedWhat(err error) string {
	var ute *catalog.UnsupportedTypeError
	if !errors.As(err, &ute) {
		return "this entry"
	}

	if ute.Reference != "" {
		return ute.Tag.String() + " " + ute.Reference
	}

	return ute.Tag.String()
}

func writeLine(p *tmpl.Printer, line string) error {
	return p.WriteString(line + "\n")
}
