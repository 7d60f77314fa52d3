package tmpl

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// substituteRe matches either a render block
//
//	<indent>$render{
//	    hook_name [arg]
//	}end
//
// which must start its line, or an inline ${slot.name} expression.
var substituteRe = regexp.MustCompile(
	`(?ms)^(?P<indent>[ \t]*)\$render\{[ \t]*\n(?P<block>.*?)\s*\}end[ \t]*(?:\n|\z)` +
		`|\$\{(?P<expr>.*?)\}`)

var slotNameRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(?:\.[A-Za-z_][A-Za-z0-9_]*)*$`)

var (
	// ErrUnknownSlot is reported for an expression naming no slot in scope.
	ErrUnknownSlot = errors.New("unknown slot")
	// ErrUnknownHook is reported for a block statement naming no hook.
	ErrUnknownHook = errors.New("unknown render hook")
	// ErrBadExpression is reported for an expression that is not a slot name.
	ErrBadExpression = errors.New("expression is not a slot name")
	// ErrUnterminatedBlock is reported for a block or expression opener that
	// is never closed.
	ErrUnterminatedBlock = errors.New("unterminated block or expression")
)

var openers = []string{"$render{", "${"}

// SubstitutionError reports a failed expression or block. Line is 1-based
// within the text being expanded.
type SubstitutionError struct {
	Expr string
	Line int
	Err  error
}

func (e *SubstitutionError) Error() string {
	return fmt.Sprintf("line %d: %s: %v", e.Line, e.Expr, e.Err)
}

func (e *SubstitutionError) Unwrap() error {
	return e.Err
}

// Expand substitutes every expression and block of text against scope in a
// single left-to-right pass. Hooks run with p as their printer; their output
// is captured, indented like the block, and spliced in place. Text produced
// by a block is not scanned again.
func Expand(p *Printer, text string, scope *Scope) (string, error) {
	matches := substituteRe.FindAllStringSubmatchIndex(text, -1)

	indentIdx := substituteRe.SubexpIndex("indent")
	blockIdx := substituteRe.SubexpIndex("block")
	exprIdx := substituteRe.SubexpIndex("expr")

	var sb strings.Builder

	last := 0

	for _, m := range matches {
		if err := checkLiteral(text, last, m[0]); err != nil {
			return "", err
		}

		sb.WriteString(text[last:m[0]])
		last = m[1]

		line := strings.Count(text[:m[0]], "\n") + 1

		if m[2*exprIdx] >= 0 {
			expr := strings.TrimSpace(text[m[2*exprIdx]:m[2*exprIdx+1]])

			value, err := evalExpr(expr, scope)
			if err != nil {
				return "", &SubstitutionError{Expr: "${" + expr + "}", Line: line, Err: err}
			}

			sb.WriteString(value)

			continue
		}

		indent := text[m[2*indentIdx]:m[2*indentIdx+1]]
		block := text[m[2*blockIdx]:m[2*blockIdx+1]]

		out, err := p.Capture(func() error {
			return runBlock(p, block, scope)
		})
		if err != nil {
			return "", &SubstitutionError{Expr: "$render{...}end", Line: line, Err: err}
		}

		sb.WriteString(Indent(out, indent))
	}

	if err := checkLiteral(text, last, len(text)); err != nil {
		return "", err
	}

	sb.WriteString(text[last:])

	return sb.String(), nil
}

// checkLiteral rejects an opener left in text[start:end], the span between
// two matches.
func checkLiteral(text string, start, end int) error {
	for _, opener := range openers {
		if i := strings.Index(text[start:end], opener); i >= 0 {
			return &SubstitutionError{
				Expr: opener,
				Line: strings.Count(text[:start+i], "\n") + 1,
				Err:  ErrUnterminatedBlock,
			}
		}
	}

	return nil
}

// ExpandString is Expand with a throwaway printer, for templates whose hooks
// only write to the printer they are given.
func ExpandString(text string, scope *Scope) (string, error) {
	return Expand(NewPrinter(nil), text, scope)
}

// Print dedents text, expands it and writes the result plus a newline to
// the printer's current target.
func Print(p *Printer, text string, scope *Scope) error {
	out, err := Expand(p, Dedent(text), scope)
	if err != nil {
		return err
	}

	return p.WriteString(out + "\n")
}

// Printf formats a line, expands it and writes it like Print.
func Printf(p *Printer, scope *Scope, format string, args ...any) error {
	return Print(p, fmt.Sprintf(format, args...), scope)
}

func evalExpr(expr string, scope *Scope) (string, error) {
	if !slotNameRe.MatchString(expr) {
		return "", ErrBadExpression
	}

	value, ok := scope.Lookup(expr)
	if !ok {
		return "", fmt.Errorf("%w %q", ErrUnknownSlot, expr)
	}

	return value, nil
}

func runBlock(p *Printer, block string, scope *Scope) error {
	for i, stmt := range strings.Split(Dedent(block), "\n") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" || strings.HasPrefix(stmt, "#") {
			continue
		}

		name, arg, _ := strings.Cut(stmt, " ")
		arg = strings.TrimSpace(arg)

		hook, ok := scope.Hook(name)
		if !ok {
			return &SubstitutionError{Expr: stmt, Line: i + 1, Err: fmt.Errorf("%w %q", ErrUnknownHook, name)}
		}

		if err := hook(p, arg); err != nil {
			return &SubstitutionError{Expr: stmt, Line: i + 1, Err: err}
		}
	}

	return nil
}
