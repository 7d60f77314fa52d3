package gir

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// --- TypeTag YAML methods ---

// UnmarshalYAML accepts the GIR spelling of a tag ("gint32", "utf8").
func (t *TypeTag) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}

	tag, ok := ParseTypeTag(s)
	if !ok {
		return fmt.Errorf("line %d: unknown type tag %q", node.Line, s)
	}

	*t = tag

	return nil
}

// MarshalYAML writes the GIR spelling of the tag.
func (t TypeTag) MarshalYAML() (any, error) {
	return t.String(), nil
}

// --- InfoType YAML methods ---

// UnmarshalYAML accepts kind names such as "function" or "enum".
func (t *InfoType) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}

	kind, ok := ParseInfoType(s)
	if !ok {
		return fmt.Errorf("line %d: unknown info kind %q", node.Line, s)
	}

	*t = kind

	return nil
}

// MarshalYAML writes the kind name.
func (t InfoType) MarshalYAML() (any, error) {
	return t.String(), nil
}

// --- Direction YAML methods ---

// UnmarshalYAML accepts "in", "out" or "inout".
func (d *Direction) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}

	switch strings.ToLower(s) {
	case "", "in":
		*d = DirectionIn
	case "out":
		*d = DirectionOut
	case "inout", "in-out", "in_out":
		*d = DirectionInOut
	default:
		return fmt.Errorf("line %d: unknown direction %q", node.Line, s)
	}

	return nil
}

// MarshalYAML writes the direction name.
func (d Direction) MarshalYAML() (any, error) {
	return d.String(), nil
}

// --- FunctionFlags YAML methods ---

// UnmarshalYAML accepts a single flag name or a list of them:
//
//	flags: throws
//	flags: [method, throws]
func (f *FunctionFlags) UnmarshalYAML(node *yaml.Node) error {
	var names []string

	switch node.Kind {
	case yaml.ScalarNode:
		var s string
		if err := node.Decode(&s); err != nil {
			return err
		}

		if s != "" {
			names = []string{s}
		}

	case yaml.SequenceNode:
		if err := node.Decode(&names); err != nil {
			return err
		}

	default:
		return fmt.Errorf("line %d: expected flag name or list of flag names", node.Line)
	}

	var flags FunctionFlags

	for _, name := range names {
		flag, ok := functionFlagNames[strings.ToLower(name)]
		if !ok {
			return fmt.Errorf("line %d: unknown function flag %q", node.Line, name)
		}

		flags |= flag
	}

	*f = flags

	return nil
}

// MarshalYAML writes the set flags as a list of names.
func (f FunctionFlags) MarshalYAML() (any, error) {
	var names []string

	for _, name := range []string{"method", "constructor", "getter", "setter", "wraps_vfunc", "throws"} {
		if f.Has(functionFlagNames[name]) {
			names = append(names, name)
		}
	}

	return names, nil
}

// --- TypeInfo YAML methods ---

// typeInfoDoc is the long form of a type reference.
type typeInfoDoc struct {
	Tag       string `yaml:"tag"`
	Interface string `yaml:"interface,omitempty"`
	Pointer   bool   `yaml:"pointer,omitempty"`
}

// UnmarshalYAML accepts either a scalar or a mapping:
//   - "gdouble", "utf8": a basic tag
//   - "Color", "Gio.File": a reference to another descriptor
//   - "Color*": trailing star marks a pointer
//   - {tag: interface, interface: Color, pointer: true}
func (t *TypeInfo) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var s string
		if err := node.Decode(&s); err != nil {
			return err
		}

		*t = parseTypeShorthand(s)

		return nil

	case yaml.MappingNode:
		var doc typeInfoDoc
		if err := node.Decode(&doc); err != nil {
			return err
		}

		if doc.Tag == "" && doc.Interface != "" {
			doc.Tag = TagInterface.String()
		}

		tag, ok := ParseTypeTag(doc.Tag)
		if !ok {
			return fmt.Errorf("line %d: unknown type tag %q", node.Line, doc.Tag)
		}

		*t = TypeInfo{Tag: tag, Pointer: doc.Pointer, Reference: doc.Interface}

		return nil

	default:
		return fmt.Errorf("line %d: expected type name or type mapping", node.Line)
	}
}

// MarshalYAML writes the shortest form that round-trips.
func (t TypeInfo) MarshalYAML() (any, error) {
	if t.Tag == TagInterface && t.Reference != "" {
		if t.Pointer {
			return t.Reference + "*", nil
		}

		return t.Reference, nil
	}

	if t.Pointer {
		return typeInfoDoc{Tag: t.Tag.String(), Pointer: true}, nil
	}

	return t.Tag.String(), nil
}

func parseTypeShorthand(s string) TypeInfo {
	s = strings.TrimSpace(s)

	// gchar* is a string, not a pointer to a char.
	if tag, ok := ParseTypeTag(s); ok {
		return TypeInfo{Tag: tag, Pointer: tag == TagUTF8 || tag == TagFilename || s == "gpointer"}
	}

	pointer := strings.HasSuffix(s, "*")
	name := strings.TrimRight(s, "*")

	if tag, ok := ParseTypeTag(name); ok {
		return TypeInfo{Tag: tag, Pointer: pointer}
	}

	return TypeInfo{Tag: TagInterface, Pointer: pointer, Reference: name}
}
