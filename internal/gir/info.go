package gir

// Namespace is one loaded metadata namespace.
type Namespace struct {
	Name          string   `yaml:"namespace"`
	Version       string   `yaml:"version,omitempty"`
	SharedLibrary string   `yaml:"shared_library,omitempty"`
	CPrefix       string   `yaml:"c_prefix,omitempty"`
	Includes      []string `yaml:"includes,omitempty"`
	Infos         []*Info  `yaml:"infos"`

	byName map[string]*Info
}

// Info describes one entry of a namespace: a callable, a class-like type or
// an enumeration. Fields that do not apply to the entry's kind are zero.
type Info struct {
	Type      InfoType `yaml:"kind"`
	Name      string   `yaml:"name"`
	Namespace string   `yaml:"-"`

	// Callables.
	Symbol     string        `yaml:"symbol,omitempty"`
	Flags      FunctionFlags `yaml:"flags,omitempty"`
	Args       []*ArgInfo    `yaml:"args,omitempty"`
	ReturnType *TypeInfo     `yaml:"returns,omitempty"`

	// Registered types.
	CTypeName string  `yaml:"c_type,omitempty"`
	GTypeInit string  `yaml:"get_type,omitempty"`
	RefFunc   string  `yaml:"ref_func,omitempty"`
	UnrefFunc string  `yaml:"unref_func,omitempty"`
	Parent    string  `yaml:"parent,omitempty"`
	Methods   []*Info `yaml:"methods,omitempty"`
	Static    bool    `yaml:"static,omitempty"`

	// Enumerations and flags.
	StorageType TypeTag      `yaml:"storage,omitempty"`
	Values      []*ValueInfo `yaml:"values,omitempty"`

	container *Info
}

// ArgInfo is one formal argument of a callable.
type ArgInfo struct {
	Name      string    `yaml:"name"`
	Direction Direction `yaml:"direction,omitempty"`
	Nullable  bool      `yaml:"nullable,omitempty"`
	Optional  bool      `yaml:"optional,omitempty"`
	Type      *TypeInfo `yaml:"type"`
}

// TypeInfo is the type of an argument or return value.
type TypeInfo struct {
	Tag       TypeTag
	Pointer   bool
	Reference string // name of the referenced descriptor for TagInterface

	iface *Info
}

// ValueInfo is a single member of an enumeration or flags type.
type ValueInfo struct {
	Name  string `yaml:"name"`
	Value int64  `yaml:"value"`
}

// Interface returns the descriptor referenced by an interface type, or nil
// when the type is not an interface or the reference is unresolved.
func (t *TypeInfo) Interface() *Info {
	if t == nil {
		return nil
	}

	return t.iface
}

// IsVoid reports whether the type marshals no value. An untyped pointer
// (gpointer) counts as void: there is nothing to convert it to.
func (t *TypeInfo) IsVoid() bool {
	return t == nil || t.Tag == TagVoid
}

// FullName returns "Namespace.Name".
func (i *Info) FullName() string {
	if i.Namespace == "" {
		return i.Name
	}

	return i.Namespace + "." + i.Name
}

// Container returns the type owning a method, or nil for free functions.
func (i *Info) Container() *Info {
	return i.container
}

// IsMethod reports whether the callable takes an implicit instance argument.
func (i *Info) IsMethod() bool {
	return i.Flags.Has(FlagIsMethod)
}

// IsConstructor reports whether the callable creates an instance.
func (i *Info) IsConstructor() bool {
	return i.Flags.Has(FlagIsConstructor)
}

// Throws reports whether the callable reports failures through a GError.
func (i *Info) Throws() bool {
	return i.Flags.Has(FlagThrows)
}

// HasGType reports whether the type has a runtime type identity.
func (i *Info) HasGType() bool {
	return i.GTypeInit != "" && i.GTypeInit != "intern"
}

// Find returns the descriptor with the given name.
func (ns *Namespace) Find(name string) (*Info, bool) {
	info, ok := ns.byName[name]

	return info, ok
}
