// Package catalog maps introspection type tags onto the CPython calling
// convention.
//
// For every tag it knows three things:
//   - the PyArg_ParseTupleAndKeywords unit that reads an incoming value
//   - the Py_BuildValue unit that constructs an outgoing value
//   - the C type that stores the value in between
//
// Interfaces resolve through a Registry of the composite types generated in
// the current run, so a function returning a generated class wraps its result
// with that class's own converter.
package catalog
