// Package gen generates the C source of a CPython extension module for one
// introspection namespace.
//
// Every descriptor is classified once into a builder:
//   - FunctionBuilder for free functions and methods
//   - ClassBuilder for objects, interfaces, structs, boxed types and unions
//   - EnumBuilder for enumerations and flags
//
// Class-like builders are registered in the run's StructTable before any
// output is produced, so wrappers can marshal values of every generated type
// through its converters regardless of declaration order. ModuleBuilder
// expands the module template (see package tmpl) against hooks that call
// into the builders and publishes the file atomically.
//
// Arguments or returns the catalog cannot marshal do not fail the run: the
// wrapper raises NotImplementedError and an UNSUPPORTED_TYPE warning is
// reported.
package gen
