package gen

import (
	"pygi-codegen/internal/gir"
	"pygi-codegen/internal/tmpl"
)

// Builder is the closed set of things a descriptor can become:
// *FunctionBuilder, *ClassBuilder or *EnumBuilder.
type Builder interface {
	Info() *gir.Info
	isBuilder()
}

// TypeBuilder is the rendering surface shared by class and enum builders.
type TypeBuilder interface {
	Builder
	PrintStructDef(p *tmpl.Printer, c *Context) error
	PrintConverters(p *tmpl.Printer, c *Context) error
	PrintMethods(p *tmpl.Printer, c *Context) error
	PrintTypeRegistration(p *tmpl.Printer, c *Context) error
}

var (
	_ TypeBuilder = (*ClassBuilder)(nil)
	_ TypeBuilder = (*EnumBuilder)(nil)
	_ Builder     = (*FunctionBuilder)(nil)
)

// Classify picks the builder for a descriptor. It reports false for kinds
// that are not wrapped (callbacks, constants, properties and the like).
func Classify(info *gir.Info, prefix string) (Builder, bool) {
	switch {
	case info.Type.IsEnumLike():
		return NewEnumBuilder(info, prefix), true
	case info.Type.IsRegistered():
		return NewClassBuilder(info, prefix), true
	case info.Type.IsCallable():
		return NewFunctionBuilder(info, prefix), true
	default:
		return nil, false
	}
}

// classBuilderOf returns the class builder underneath a type builder.
func classBuilderOf(b TypeBuilder) *ClassBuilder {
	switch b := b.(type) {
	case *ClassBuilder:
		return b
	case *EnumBuilder:
		return b.ClassBuilder
	default:
		return nil
	}
}
