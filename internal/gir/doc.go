// Package gir provides the introspection metadata model the generator reads
// and a file-backed repository for it.
//
// Descriptors mirror the GObject-Introspection info hierarchy closely enough
// for binding generation:
//   - Namespace: ordered descriptors plus the includes needed to link them
//   - Info: a function, signal, vfunc, class-like type, or enumeration
//   - TypeInfo: a type tag, optionally referencing another Info
//   - ArgInfo: argument name, direction, nullability and type
//
// Namespace documents are YAML:
//
//	namespace: Demo
//	version: "1.0"
//	includes: [GLib]
//	infos:
//	  - kind: enum
//	    name: Color
//	    values:
//	      - {name: red, value: 0}
//	  - kind: object
//	    name: Canvas
//	    get_type: demo_canvas_get_type
//	    methods:
//	      - name: new
//	        flags: constructor
//	        returns: Canvas
//	  - kind: function
//	    name: parse_color
//	    flags: throws
//	    args:
//	      - {name: spec, type: utf8}
//	    returns: Color
//
// Several documents can be shipped together as a txtar bundle whose members
// are named <Namespace>.yaml.
package gir
