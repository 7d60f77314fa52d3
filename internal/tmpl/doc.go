// Package tmpl is the small template engine behind the generated C module.
//
// A template is plain text with two kinds of substitution:
//
//	${namespace}          replaced by the value bound to the slot
//	$render{
//	    functions
//	}end                  replaced by whatever the named hook prints
//
// Slots and hooks come from an explicit Scope. A block must start its own
// line; the text its hooks print is re-indented to the block's indentation
// and is never expanded a second time. Templates cannot evaluate code:
// anything that is not a slot name or a hook name is an error.
package tmpl
