package gir

import "strings"

//go:generate go tool stringer -type=TypeTag -linecomment -output=typetag_string.go
//go:generate go tool stringer -type=InfoType -linecomment -output=infotype_string.go

// TypeTag classifies how a value is represented. Values follow the numeric
// order of GITypeTag so dumps line up with g-ir-inspect output.
type TypeTag int

const (
	TagVoid      TypeTag = iota // void
	TagBoolean                  // gboolean
	TagInt8                     // gint8
	TagUint8                    // guint8
	TagInt16                    // gint16
	TagUint16                   // guint16
	TagInt32                    // gint32
	TagUint32                   // guint32
	TagInt64                    // gint64
	TagUint64                   // guint64
	TagFloat                    // gfloat
	TagDouble                   // gdouble
	TagGType                    // GType
	TagUTF8                     // utf8
	TagFilename                 // filename
	TagArray                    // array
	TagInterface                // interface
	TagGList                    // glist
	TagGSList                   // gslist
	TagGHash                    // ghash
	TagError                    // error
	TagUnichar                  // gunichar

	// TagTotal is the number of defined tags.
	TagTotal = int(iota)
)

// IsBasic reports whether the tag denotes a fixed-width scalar or a string.
func (t TypeTag) IsBasic() bool {
	switch t {
	default:
		return false
	case TagBoolean, TagInt8, TagUint8, TagInt16, TagUint16, TagInt32, TagUint32,
		TagInt64, TagUint64, TagFloat, TagDouble, TagUnichar, TagUTF8, TagFilename:
		return true
	}
}

// IsComposite reports whether the tag refers to a container or another
// descriptor rather than a plain value.
func (t TypeTag) IsComposite() bool {
	switch t {
	default:
		return false
	case TagInterface, TagArray, TagGHash, TagError, TagGList, TagGSList, TagGType:
		return true
	}
}

// ParseTypeTag maps a GIR spelling ("gint32", "utf8", ...) to its tag.
// A few common aliases are accepted as well.
func ParseTypeTag(s string) (TypeTag, bool) {
	if alias, ok := tagAliases[s]; ok {
		return alias, true
	}

	for t := TypeTag(0); int(t) < TagTotal; t++ {
		if t.String() == s {
			return t, true
		}
	}

	return 0, false
}

var tagAliases = map[string]TypeTag{
	"none":     TagVoid,
	"gpointer": TagVoid,
	"gint":     TagInt32,
	"guint":    TagUint32,
	"gchar*":   TagUTF8,
	"gtype":    TagGType,
	"gsize":    TagUint64,
	"gssize":   TagInt64,
	"glong":    TagInt64,
	"gulong":   TagUint64,
	"gshort":   TagInt16,
	"gushort":  TagUint16,
	"gchar":    TagInt8,
	"guchar":   TagUint8,
	"double":   TagDouble,
	"float":    TagFloat,
}

// InfoType is the kind of a metadata descriptor.
type InfoType int

const (
	InfoInvalid    InfoType = iota // invalid
	InfoFunction                   // function
	InfoCallback                   // callback
	InfoStruct                     // struct
	InfoBoxed                      // boxed
	InfoEnum                       // enum
	InfoFlags                      // flags
	InfoObject                     // object
	InfoInterface                  // interface
	InfoConstant                   // constant
	InfoInvalid0                   // invalid_0
	InfoUnion                      // union
	InfoValue                      // value
	InfoSignal                     // signal
	InfoVFunc                      // vfunc
	InfoProperty                   // property
	InfoField                      // field
	InfoArg                        // arg
	InfoTypeRef                    // type
	InfoUnresolved                 // unresolved

	infoTotal = int(iota)
)

// ParseInfoType maps a lower-case kind name to its InfoType.
func ParseInfoType(s string) (InfoType, bool) {
	s = strings.ToLower(s)
	for t := InfoType(0); int(t) < infoTotal; t++ {
		if t.String() == s {
			return t, true
		}
	}

	return InfoInvalid, false
}

// IsCallable reports whether descriptors of this kind describe something
// that can be invoked.
func (t InfoType) IsCallable() bool {
	return t == InfoFunction || t == InfoSignal || t == InfoVFunc
}

// IsEnumLike reports whether descriptors of this kind carry a value table.
func (t InfoType) IsEnumLike() bool {
	return t == InfoEnum || t == InfoFlags
}

// IsRegistered reports whether descriptors of this kind are class- or
// record-like types with their own storage.
func (t InfoType) IsRegistered() bool {
	switch t {
	default:
		return false
	case InfoObject, InfoInterface, InfoBoxed, InfoStruct, InfoUnion, InfoTypeRef:
		return true
	}
}

// Direction is the data flow of an argument.
type Direction int

const (
	DirectionIn Direction = iota
	DirectionOut
	DirectionInOut
)

// String returns the GIR spelling of the direction.
func (d Direction) String() string {
	switch d {
	case DirectionIn:
		return "in"
	case DirectionOut:
		return "out"
	case DirectionInOut:
		return "inout"
	default:
		return "unknown"
	}
}

// IsInput reports whether the caller supplies a value for the argument.
func (d Direction) IsInput() bool {
	return d == DirectionIn || d == DirectionInOut
}

// FunctionFlags mirrors GIFunctionInfoFlags.
type FunctionFlags uint

const (
	FlagIsMethod FunctionFlags = 1 << iota
	FlagIsConstructor
	FlagIsGetter
	FlagIsSetter
	FlagWrapsVFunc
	FlagThrows
)

var functionFlagNames = map[string]FunctionFlags{
	"method":      FlagIsMethod,
	"constructor": FlagIsConstructor,
	"getter":      FlagIsGetter,
	"setter":      FlagIsSetter,
	"wraps_vfunc": FlagWrapsVFunc,
	"throws":      FlagThrows,
}

// Has reports whether all bits of f2 are set.
func (f FunctionFlags) Has(f2 FunctionFlags) bool {
	return f&f2 == f2
}
