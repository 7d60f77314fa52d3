package gen

import (
	"fmt"

	"github.com/iancoleman/strcase"

	"pygi-codegen/internal/gir"
	"pygi-codegen/internal/tmpl"
)

const pyObjectStructTemplate = `
typedef struct {
    PyObject_HEAD
    $render{
        struct_fields
    }end
} ${struct_name};
$render{
    wrapped_accessor
}end
extern PyTypeObject ${type_object};
`

const pyConvertersTemplate = `
static int
${from_py} (PyObject *obj, ${ctype} *value)
{
    *value = ${get_wrapped} (obj);
    return 1;
}

static PyObject *
${to_py} (${ctype} *value)
{
    ${struct_name} *obj;

    obj = PyObject_New (${struct_name}, &${type_object});
    if (obj == NULL)
        return NULL;
    $render{
        to_py_fill
    }end
    return (PyObject *) obj;
}
`

const pyToPyFullTemplate = `
static PyObject *
${to_py_full} (${ctype} *value)
{
    ${struct_name} *obj;

    obj = PyObject_New (${struct_name}, &${type_object});
    if (obj == NULL) {
        ${unref_func} (*value);
        return NULL;
    }
    obj->obj = *value;
    $render{
        gtype_fill
    }end
    return (PyObject *) obj;
}
`

const pyDeallocTemplate = `
static void
${dealloc} (${struct_name} *self)
{
    if (self->obj != NULL)
        ${unref_func} (self->obj);
    Py_TYPE (self)->tp_free ((PyObject *) self);
}
`

const pyTypeRegisterTemplate = `
Py_SET_TYPE (&${type_object}, &PyType_Type);
${type_object}.tp_repr = (reprfunc) ${tp_repr};
${type_object}.tp_flags = (Py_TPFLAGS_DEFAULT | Py_TPFLAGS_BASETYPE);
${type_object}.tp_methods = ${tp_methods};
${type_object}.tp_base = ${tp_base};
$render{
    dealloc_slot
}end
#ifdef ${custom_setup_macro}
    ${custom_setup_macro} (${type_object})
#endif
if (PyType_Ready (&${type_object}))
    return -1;
Py_INCREF (&${type_object});
if (PyModule_AddObject (module, "${name}", (PyObject *) &${type_object}))
    return -1;
`

const methodTableTemplate = `
static PyMethodDef ${table}[] = {
    $render{
        entries
    }end
#ifdef ${custom_entries_macro}
    ${custom_entries_macro}
#endif
    { NULL, NULL, 0, NULL }
};
`

const pyTypeObjectTemplate = `
PyTypeObject ${type_object} = {
    PyVarObject_HEAD_INIT (NULL, 0)
    /* .tp_name = */ ${tp_name},
    /* .tp_basicsize = */ ${tp_size},
};
`

// ClassBuilder renders a class-like type (object, interface, struct, boxed,
// union): its instance struct, converters, methods and registration.
type ClassBuilder struct {
	info *gir.Info

	Namespace string
	Name      string
	FullName  string

	// WrappedType is the C type of the wrapped native value; empty when the
	// type stores no value (enumerations).
	WrappedType string
	ctype       string

	StructName         string
	TypeObjectName     string
	CustomSetupMacro   string
	TPMethods          string
	CustomEntriesMacro string
	TPName             string
	TPSize             string
	TPRepr             string
	GetWrappedFunc     string
	FromPy             string
	ToPy               string
	// ToPyFull wraps a value whose reference the caller already owns; set
	// only for reference counted types.
	ToPyFull    string
	RefFunc     string
	UnrefFunc   string
	DeallocFunc string

	Methods []*FunctionBuilder

	// fixedBase overrides parent lookup for tp_base.
	fixedBase string
}

// NewClassBuilder creates the builder for a class-like descriptor. Method
// wrappers are named prefix + C symbol like free functions.
func NewClassBuilder(info *gir.Info, prefix string) *ClassBuilder {
	wrapped := info.CTypeName
	if wrapped == "" {
		wrapped = "void"
	}

	structName := "Py" + info.Namespace + info.Name
	typeObject := structName + "_Type"
	tpMethods := structName + "_methods"
	converterBase := strcase.ToSnake(info.Name)

	b := &ClassBuilder{
		info:               info,
		Namespace:          info.Namespace,
		Name:               info.Name,
		FullName:           info.FullName(),
		WrappedType:        wrapped,
		ctype:              wrapped + "*",
		StructName:         structName,
		TypeObjectName:     typeObject,
		CustomSetupMacro:   strcase.ToScreamingSnake(typeObject) + "_CUSTOM_SETUP",
		TPMethods:          tpMethods,
		CustomEntriesMacro: strcase.ToScreamingSnake(tpMethods) + "_CUSTOM_ENTRIES",
		TPName:             `"` + info.FullName() + `"`,
		TPSize:             "sizeof(" + structName + ")",
		TPRepr:             "NULL",
		GetWrappedFunc:     structName + "_get",
		FromPy:             converterBase + "_from_py",
		ToPy:               converterBase + "_to_py",
	}

	if info.Type == gir.InfoObject {
		b.RefFunc = info.RefFunc
		b.UnrefFunc = info.UnrefFunc
	}

	if b.UnrefFunc != "" {
		b.DeallocFunc = structName + "_dealloc"
	}

	if b.RefFunc != "" && b.UnrefFunc != "" {
		b.ToPyFull = converterBase + "_to_py_full"
	}

	for _, m := range info.Methods {
		b.Methods = append(b.Methods, NewMethodBuilder(m, prefix, structName))
	}

	return b
}

// Info returns the descriptor the builder was created from.
func (b *ClassBuilder) Info() *gir.Info { return b.info }

func (*ClassBuilder) isBuilder() {}

// FromPyConverter implements catalog.Composite.
func (b *ClassBuilder) FromPyConverter() string { return b.FromPy }

// ToPyConverter implements catalog.Composite.
func (b *ClassBuilder) ToPyConverter() string { return b.ToPy }

// ToPyFullConverter returns the converter for values handed over with
// their reference, or "" when the type is not reference counted.
func (b *ClassBuilder) ToPyFullConverter() string { return b.ToPyFull }

// CType implements catalog.Composite.
func (b *ClassBuilder) CType() string { return b.ctype }

// TPBase returns the tp_base initializer: the parent's type object when the
// parent is generated in the same run, the generic object base otherwise.
func (b *ClassBuilder) TPBase(c *Context) string {
	if b.fixedBase != "" {
		return b.fixedBase
	}

	if parent, ok := c.Structs.parentOf(b.info); ok {
		return "&" + parent.TypeObjectName
	}

	return "&PyBaseObject_Type"
}

func (b *ClassBuilder) scope(c *Context) *tmpl.Scope {
	return tmpl.NewScope(nil).SetAll(map[string]string{
		"name":                 b.Name,
		"full_name":            b.FullName,
		"ctype":                b.ctype,
		"struct_name":          b.StructName,
		"type_object":          b.TypeObjectName,
		"custom_setup_macro":   b.CustomSetupMacro,
		"tp_methods":           b.TPMethods,
		"custom_entries_macro": b.CustomEntriesMacro,
		"tp_name":              b.TPName,
		"tp_size":              b.TPSize,
		"tp_repr":              b.TPRepr,
		"tp_base":              b.TPBase(c),
		"get_wrapped":          b.GetWrappedFunc,
		"from_py":              b.FromPy,
		"to_py":                b.ToPy,
		"to_py_full":           b.ToPyFull,
		"dealloc":              b.DeallocFunc,
		"unref_func":           b.UnrefFunc,
	})
}

// PrintStructDef writes the instance struct, the accessor macro and a
// forward declaration of the type object.
func (b *ClassBuilder) PrintStructDef(p *tmpl.Printer, c *Context) error {
	scope := b.scope(c).
		SetHook("struct_fields", func(p *tmpl.Printer, _ string) error {
			if b.WrappedType != "" {
				if err := writeLine(p, b.ctype+" obj;"); err != nil {
					return err
				}
			}

			if b.info.HasGType() {
				return writeLine(p, "GType gtype;")
			}

			return nil
		}).
		SetHook("wrapped_accessor", func(p *tmpl.Printer, _ string) error {
			if b.WrappedType == "" {
				return nil
			}

			return writeLine(p, fmt.Sprintf("#define %s(obj) (((%s *) (obj))->obj)", b.GetWrappedFunc, b.StructName))
		})

	return b.wrap("struct", tmpl.Print(p, pyObjectStructTemplate, scope))
}

// PrintConverters writes the from-Python and to-Python converters other
// wrappers use for values of this type. Reference counted types also get
// the converter for owned values and the deallocator.
func (b *ClassBuilder) PrintConverters(p *tmpl.Printer, c *Context) error {
	gtypeFill := func(p *tmpl.Printer, _ string) error {
		if b.info.HasGType() {
			return writeLine(p, "obj->gtype = "+b.info.GTypeInit+" ();")
		}

		return nil
	}

	scope := b.scope(c).
		SetHook("gtype_fill", gtypeFill).
		SetHook("to_py_fill", func(p *tmpl.Printer, arg string) error {
			value := "*value"
			if b.RefFunc != "" {
				value = b.RefFunc + " (*value)"
			}

			if err := writeLine(p, "obj->obj = "+value+";"); err != nil {
				return err
			}

			return gtypeFill(p, arg)
		})

	if err := tmpl.Print(p, pyConvertersTemplate, scope); err != nil {
		return b.wrap("converters", err)
	}

	if b.ToPyFull != "" {
		if err := tmpl.Print(p, pyToPyFullTemplate, scope); err != nil {
			return b.wrap("converters", err)
		}
	}

	if b.DeallocFunc != "" {
		return b.wrap("dealloc", tmpl.Print(p, pyDeallocTemplate, scope))
	}

	return nil
}

// PrintMethods writes every method wrapper, the method table and the type
// object definition.
func (b *ClassBuilder) PrintMethods(p *tmpl.Printer, c *Context) error {
	for _, m := range b.Methods {
		if err := m.PrintWrapperDef(p, c); err != nil {
			return b.wrap("methods", err)
		}
	}

	if err := printMethodTable(p, b.TPMethods, b.CustomEntriesMacro, b.Methods); err != nil {
		return b.wrap("method table", err)
	}

	return b.wrap("type object", tmpl.Print(p, pyTypeObjectTemplate, b.scope(c)))
}

// PrintTypeRegistration writes the statements that ready the type and add
// it to the module.
func (b *ClassBuilder) PrintTypeRegistration(p *tmpl.Printer, c *Context) error {
	scope := b.scope(c).SetHook("dealloc_slot", func(p *tmpl.Printer, _ string) error {
		if b.DeallocFunc == "" {
			return nil
		}

		return writeLine(p, fmt.Sprintf("%s.tp_dealloc = (destructor) %s;", b.TypeObjectName, b.DeallocFunc))
	})

	return b.wrap("registration", tmpl.Print(p, pyTypeRegisterTemplate, scope))
}

func (b *ClassBuilder) prepare(c *Context) {
	for _, m := range b.Methods {
		m.prepare(c)
	}
}

func (b *ClassBuilder) reset() {
	for _, m := range b.Methods {
		m.reset()
	}
}

func (b *ClassBuilder) wrap(what string, err error) error {
	if err == nil {
		return nil
	}

	return fmt.Errorf("%s %s: %w", b.FullName, what, err)
}

// printMethodTable writes a PyMethodDef table with one entry per builder.
func printMethodTable(p *tmpl.Printer, table, customEntriesMacro string, entries []*FunctionBuilder) error {
	scope := tmpl.NewScope(nil).
		Set("table", table).
		Set("custom_entries_macro", customEntriesMacro).
		SetHook("entries", func(p *tmpl.Printer, _ string) error {
			for _, e := range entries {
				if err := e.PrintWrapperEntry(p); err != nil {
					return err
				}
			}

			return nil
		})

	return tmpl.Print(p, methodTableTemplate, scope)
}
