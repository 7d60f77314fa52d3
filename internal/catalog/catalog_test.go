package catalog

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pygi-codegen/internal/gir"
)

var primitiveTags = []gir.TypeTag{
	gir.TagBoolean,
	gir.TagInt8, gir.TagUint8,
	gir.TagInt16, gir.TagUint16,
	gir.TagInt32, gir.TagUint32,
	gir.TagInt64, gir.TagUint64,
	gir.TagFloat, gir.TagDouble,
	gir.TagUnichar,
	gir.TagUTF8, gir.TagFilename,
}

var containerTags = []gir.TypeTag{
	gir.TagArray, gir.TagGHash, gir.TagError, gir.TagGList, gir.TagGSList, gir.TagGType,
}

// formatStorage lists, per format unit, the C storage types the unit reads
// into or builds from.
var formatStorage = map[string][]string{
	"b":  {"signed char"},
	"B":  {"unsigned char"},
	"h":  {"signed short"},
	"H":  {"unsigned short"},
	"i":  {"signed int"},
	"I":  {"unsigned int"},
	"L":  {"PY_LONG_LONG"},
	"K":  {"unsigned PY_LONG_LONG"},
	"f":  {"float"},
	"d":  {"double"},
	"s":  {"const char*"},
	"z":  {"const char*"},
	"O&": {"int", "void*"},
}

type fakeComposite struct {
	from, to, ctype string
}

func (f fakeComposite) FromPyConverter() string { return f.from }
func (f fakeComposite) ToPyConverter() string   { return f.to }
func (f fakeComposite) CType() string           { return f.ctype }

type fakeRegistry map[string]Composite

func (r fakeRegistry) Lookup(name string) (Composite, bool) {
	c, ok := r[name]

	return c, ok
}

func TestDirectiveForTag_Primitives(t *testing.T) {
	for _, tag := range primitiveTags {
		t.Run(tag.String(), func(t *testing.T) {
			in, err := DirectiveForTag(tag, Parse)
			require.NoError(t, err)
			assert.NotEmpty(t, in.Format)

			out, err := DirectiveForTag(tag, Build)
			require.NoError(t, err)
			assert.NotEmpty(t, out.Format)

			storage, err := StorageTypeForTag(tag)
			require.NoError(t, err)
			assert.NotEmpty(t, storage)
		})
	}
}

func TestDirectiveForTag_Containers(t *testing.T) {
	for _, tag := range containerTags {
		t.Run(tag.String(), func(t *testing.T) {
			_, err := DirectiveForTag(tag, Parse)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrUnsupportedType))

			_, err = DirectiveForTag(tag, Build)
			require.Error(t, err)

			var ute *UnsupportedTypeError
			require.ErrorAs(t, err, &ute)
			assert.Equal(t, tag, ute.Tag)
			assert.Equal(t, Build, ute.Dir)
		})
	}
}

func TestDirectiveForTag_RoundTripStorage(t *testing.T) {
	for _, tag := range primitiveTags {
		t.Run(tag.String(), func(t *testing.T) {
			in, err := DirectiveForTag(tag, Parse)
			require.NoError(t, err)
			out, err := DirectiveForTag(tag, Build)
			require.NoError(t, err)
			storage, err := StorageTypeForTag(tag)
			require.NoError(t, err)

			assert.Contains(t, formatStorage[in.Format], storage, "parse unit %q", in.Format)
			assert.Contains(t, formatStorage[out.Format], storage, "build unit %q", out.Format)
			assert.Equal(t, in.HasConverter(), out.HasConverter(),
				"a converter on one side needs one on the other")
		})
	}
}

func TestStorageTypeForTag_Unsupported(t *testing.T) {
	_, err := StorageTypeForTag(gir.TagGHash)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no storage type for ghash")
}

func TestDirectiveFor_Enum(t *testing.T) {
	enum := &gir.Info{Type: gir.InfoFlags, Name: "Mode", StorageType: gir.TagUint32}
	ns := &gir.Namespace{Name: "Demo", Infos: []*gir.Info{enum}}
	ti := linkedType(t, ns, "Mode")

	d, err := DirectiveFor(ti, Parse, nil)
	require.NoError(t, err)
	assert.Equal(t, Directive{Format: "I"}, d)

	storage, err := StorageTypeFor(ti, nil)
	require.NoError(t, err)
	assert.Equal(t, "unsigned int", storage)
}

func TestDirectiveFor_RegisteredComposite(t *testing.T) {
	obj := &gir.Info{Type: gir.InfoObject, Name: "Canvas"}
	ns := &gir.Namespace{Name: "Demo", Infos: []*gir.Info{obj}}
	ti := linkedType(t, ns, "Canvas")

	reg := fakeRegistry{"Demo.Canvas": fakeComposite{"canvas_from_py", "canvas_to_py", "DemoCanvas*"}}

	in, err := DirectiveFor(ti, Parse, reg)
	require.NoError(t, err)
	assert.Equal(t, Directive{Format: "O&", Converter: "canvas_from_py"}, in)

	out, err := DirectiveFor(ti, Build, reg)
	require.NoError(t, err)
	assert.Equal(t, Directive{Format: "O&", Converter: "canvas_to_py"}, out)

	storage, err := StorageTypeFor(ti, reg)
	require.NoError(t, err)
	assert.Equal(t, "DemoCanvas*", storage)
}

func TestDirectiveFor_UnregisteredInterface(t *testing.T) {
	obj := &gir.Info{Type: gir.InfoObject, Name: "Canvas"}
	ns := &gir.Namespace{Name: "Demo", Infos: []*gir.Info{obj}}
	ti := linkedType(t, ns, "Canvas")

	in, err := DirectiveFor(ti, Parse, fakeRegistry{})
	require.NoError(t, err)
	assert.Equal(t, "pygi_codegen_interface_converter", in.Converter)

	_, err = DirectiveFor(ti, Build, fakeRegistry{})
	require.Error(t, err)

	var ute *UnsupportedTypeError
	require.ErrorAs(t, err, &ute)
	assert.Equal(t, "Demo.Canvas", ute.Reference)
	assert.Contains(t, ute.Error(), "no build directive for interface (Demo.Canvas)")
}

func TestDirectiveForArg_NullableString(t *testing.T) {
	arg := &gir.ArgInfo{Name: "label", Nullable: true, Type: &gir.TypeInfo{Tag: gir.TagUTF8}}

	d, err := DirectiveForArg(arg, nil)
	require.NoError(t, err)
	assert.Equal(t, "z", d.Format)

	arg.Nullable = false
	d, err = DirectiveForArg(arg, nil)
	require.NoError(t, err)
	assert.Equal(t, "s", d.Format)
}

// linkedType builds an interface TypeInfo pointing at name, resolved the way
// the repository resolves references.
func linkedType(t *testing.T, ns *gir.Namespace, name string) *gir.TypeInfo {
	t.Helper()

	ti := &gir.TypeInfo{Tag: gir.TagInterface, Reference: name}
	fn := &gir.Info{Type: gir.InfoFunction, Name: "resolve_ref", ReturnType: ti}
	ns.Infos = append(ns.Infos, fn)

	repo := gir.NewFileRepository()
	require.NoError(t, repo.Add(ns))
	require.NotNil(t, ti.Interface())

	return ti
}
