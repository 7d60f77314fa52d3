package catalog

import (
	"pygi-codegen/internal/gir"
)

// Dir selects which side of the language boundary a directive serves.
type Dir int

const (
	// Parse converts an incoming Python object into native storage.
	Parse Dir = iota
	// Build constructs an outgoing Python object from native storage.
	Build
)

// String returns a human-readable direction name.
func (d Dir) String() string {
	switch d {
	case Parse:
		return "parse"
	case Build:
		return "build"
	default:
		return "unknown"
	}
}

// Directive is a PyArg_Parse / Py_BuildValue format unit plus the optional
// converter function the "O&" unit needs.
type Directive struct {
	Format    string
	Converter string
}

// HasConverter reports whether the directive passes through a converter.
func (d Directive) HasConverter() bool {
	return d.Converter != ""
}

// Composite is what the catalog needs to know about a generated class-like
// type in order to marshal values of that type.
type Composite interface {
	FromPyConverter() string
	ToPyConverter() string
	CType() string
}

// Registry resolves descriptor full names ("Namespace.Name") to the
// composite types generated in the current run.
type Registry interface {
	Lookup(fullName string) (Composite, bool)
}

// Container tags (array, ghash, error, glist, gslist, GType) are deliberately
// absent from the parse and build tables until converters exist for them.
var parseTable = map[gir.TypeTag]Directive{
	gir.TagVoid:      {"O&", "pygi_codegen_interface_from_py"},
	gir.TagBoolean:   {"O&", "pygi_codegen_boolean_from_py"},
	gir.TagDouble:    {"d", ""},
	gir.TagFloat:     {"f", ""},
	gir.TagInt8:      {"b", ""},
	gir.TagUint8:     {"B", ""},
	gir.TagInt16:     {"h", ""},
	gir.TagUint16:    {"H", ""},
	gir.TagUnichar:   {"H", ""},
	gir.TagInt32:     {"i", ""},
	gir.TagUint32:    {"I", ""},
	gir.TagInt64:     {"L", ""},
	gir.TagUint64:    {"K", ""},
	gir.TagUTF8:      {"s", ""},
	gir.TagFilename:  {"s", ""},
	gir.TagInterface: {"O&", "pygi_codegen_interface_converter"},
}

// Interface has no build default: only registered composites know how to
// wrap their storage.
var buildTable = map[gir.TypeTag]Directive{
	gir.TagVoid:     {"O&", "pygi_codegen_interface_to_py"},
	gir.TagBoolean:  {"O&", "pygi_codegen_boolean_to_py"},
	gir.TagDouble:   {"d", ""},
	gir.TagFloat:    {"f", ""},
	gir.TagInt8:     {"b", ""},
	gir.TagUint8:    {"B", ""},
	gir.TagInt16:    {"h", ""},
	gir.TagUint16:   {"H", ""},
	gir.TagUnichar:  {"H", ""},
	gir.TagInt32:    {"i", ""},
	gir.TagUint32:   {"I", ""},
	gir.TagInt64:    {"L", ""},
	gir.TagUint64:   {"K", ""},
	gir.TagUTF8:     {"z", ""},
	gir.TagFilename: {"z", ""},
}

var storageTable = map[gir.TypeTag]string{
	gir.TagBoolean:   "int",
	gir.TagDouble:    "double",
	gir.TagFloat:     "float",
	gir.TagInt8:      "signed char",
	gir.TagUint8:     "unsigned char",
	gir.TagInt16:     "signed short",
	gir.TagUint16:    "unsigned short",
	gir.TagUnichar:   "unsigned short",
	gir.TagInt32:     "signed int",
	gir.TagUint32:    "unsigned int",
	gir.TagInt64:     "PY_LONG_LONG",
	gir.TagUint64:    "unsigned PY_LONG_LONG",
	gir.TagUTF8:      "const char*",
	gir.TagFilename:  "const char*",
	gir.TagInterface: "void*",
}

var glibTypeNames = map[gir.TypeTag]string{
	gir.TagVoid:      "gpointer",
	gir.TagBoolean:   "gboolean",
	gir.TagDouble:    "gdouble",
	gir.TagFloat:     "gfloat",
	gir.TagInt8:      "gint8",
	gir.TagUint8:     "guint8",
	gir.TagInt16:     "gint16",
	gir.TagUint16:    "guint16",
	gir.TagInt32:     "gint32",
	gir.TagUint32:    "guint32",
	gir.TagInt64:     "gint64",
	gir.TagUint64:    "guint64",
	gir.TagUTF8:      "gchar*",
	gir.TagFilename:  "gchar*",
	gir.TagInterface: "gpointer",
	gir.TagGType:     "GType",
}

// DirectiveForTag returns the tag-level directive for one direction.
func DirectiveForTag(tag gir.TypeTag, dir Dir) (Directive, error) {
	table := parseTable
	if dir == Build {
		table = buildTable
	}

	d, ok := table[tag]
	if !ok {
		return Directive{}, &UnsupportedTypeError{Tag: tag, Dir: dir}
	}

	return d, nil
}

// StorageTypeForTag returns the C type that holds a value of the tag.
func StorageTypeForTag(tag gir.TypeTag) (string, error) {
	name, ok := storageTable[tag]
	if !ok {
		return "", &UnsupportedTypeError{Tag: tag, Dir: -1}
	}

	return name, nil
}

// GLibTypeName returns the GLib spelling of a tag ("gint32", "gchar*"),
// or an empty string when GLib has no single name for it.
func GLibTypeName(tag gir.TypeTag) string {
	return glibTypeNames[tag]
}

// DirectiveFor resolves the directive for a full type. Enumerations and
// flags use their storage tag; interfaces registered in reg use that
// composite's own converter; everything else falls back to the tag table.
func DirectiveFor(t *gir.TypeInfo, dir Dir, reg Registry) (Directive, error) {
	if t == nil {
		return DirectiveForTag(gir.TagVoid, dir)
	}

	if t.Tag != gir.TagInterface {
		return DirectiveForTag(t.Tag, dir)
	}

	iface := t.Interface()
	if iface == nil {
		d, err := DirectiveForTag(t.Tag, dir)
		if err != nil {
			return Directive{}, withReference(err, t.Reference)
		}

		return d, nil
	}

	if iface.Type.IsEnumLike() {
		return DirectiveForTag(iface.StorageType, dir)
	}

	if reg != nil {
		if c, ok := reg.Lookup(iface.FullName()); ok {
			if dir == Build {
				return Directive{Format: "O&", Converter: c.ToPyConverter()}, nil
			}

			return Directive{Format: "O&", Converter: c.FromPyConverter()}, nil
		}
	}

	d, err := DirectiveForTag(t.Tag, dir)
	if err != nil {
		return Directive{}, withReference(err, iface.FullName())
	}

	return d, nil
}

// DirectiveForArg is DirectiveFor for an incoming argument. Nullable
// strings parse with "z" so None is accepted.
func DirectiveForArg(arg *gir.ArgInfo, reg Registry) (Directive, error) {
	d, err := DirectiveFor(arg.Type, Parse, reg)
	if err != nil {
		return Directive{}, err
	}

	if arg.Nullable && d.Format == "s" {
		d.Format = "z"
	}

	return d, nil
}

// StorageTypeFor resolves the C storage type for a full type, following the
// same rules as DirectiveFor.
func StorageTypeFor(t *gir.TypeInfo, reg Registry) (string, error) {
	if t == nil || t.Tag != gir.TagInterface {
		tag := gir.TagVoid
		if t != nil {
			tag = t.Tag
		}

		return StorageTypeForTag(tag)
	}

	iface := t.Interface()
	if iface != nil {
		if iface.Type.IsEnumLike() {
			return StorageTypeForTag(iface.StorageType)
		}

		if reg != nil {
			if c, ok := reg.Lookup(iface.FullName()); ok {
				return c.CType(), nil
			}
		}
	}

	return StorageTypeForTag(t.Tag)
}

func withReference(err error, ref string) error {
	if ute, ok := err.(*UnsupportedTypeError); ok && ref != "" {
		ute.Reference = ref
	}

	return err
}
