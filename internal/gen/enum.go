package gen

import (
	"fmt"
	"strings"

	"pygi-codegen/internal/gir"
	"pygi-codegen/internal/tmpl"
)

const enumValuesTemplate = `
{
    PyObject *_enum_value_names = PyDict_New ();
    $render{
        enum_values
    }end
    PyDict_SetItemString (${type_object}.tp_dict,
                          PYGI_CODEGEN_ENUM_VALUE_NAMES, _enum_value_names);
    Py_DECREF (_enum_value_names);
}
`

// EnumBuilder renders an enumeration or flags type. Values are plain
// integers, so the type derives from int, stores nothing of its own and has
// no converters; its members are attached after the type is readied.
type EnumBuilder struct {
	*ClassBuilder

	Values []*gir.ValueInfo
}

// NewEnumBuilder creates the builder for an enum or flags descriptor.
func NewEnumBuilder(info *gir.Info, prefix string) *EnumBuilder {
	b := NewClassBuilder(info, prefix)
	b.WrappedType = ""
	b.ctype = "long"
	b.TPSize = "0"
	b.TPRepr = "pygi_codegen_enum_repr"
	b.fixedBase = "&PyLong_Type"

	return &EnumBuilder{ClassBuilder: b, Values: info.Values}
}

// PrintStructDef writes a bare PyObject_HEAD struct for the method
// wrappers' self parameter and the type object declaration. Instances are
// laid out like int; the struct carries no value of its own.
func (b *EnumBuilder) PrintStructDef(p *tmpl.Printer, c *Context) error {
	none := func(*tmpl.Printer, string) error { return nil }
	scope := b.scope(c).
		SetHook("struct_fields", none).
		SetHook("wrapped_accessor", none)

	return b.wrap("struct", tmpl.Print(p, pyObjectStructTemplate, scope))
}

// PrintConverters writes nothing; enum values marshal as integers.
func (b *EnumBuilder) PrintConverters(*tmpl.Printer, *Context) error {
	return nil
}

// PrintTypeRegistration readies the type, then fills its dictionary with
// one uppercased constant per value in declaration order. The dictionary
// only exists once PyType_Ready has run.
func (b *EnumBuilder) PrintTypeRegistration(p *tmpl.Printer, c *Context) error {
	if err := b.ClassBuilder.PrintTypeRegistration(p, c); err != nil {
		return err
	}

	scope := b.scope(c).SetHook("enum_values", func(p *tmpl.Printer, _ string) error {
		for _, v := range b.Values {
			line := fmt.Sprintf("pygi_codegen_enum_add_value (&%s, _enum_value_names, \"%s\", %d);",
				b.TypeObjectName, strings.ToUpper(v.Name), v.Value)
			if err := writeLine(p, line); err != nil {
				return err
			}
		}

		return nil
	})

	return b.wrap("values", tmpl.Print(p, enumValuesTemplate, scope))
}
