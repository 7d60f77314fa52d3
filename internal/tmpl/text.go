package tmpl

import (
	"strings"
)

// Dedent removes the leading whitespace common to every non-blank line of s.
// Lines holding only whitespace are emptied and do not count toward the
// common prefix.
func Dedent(s string) string {
	lines := strings.Split(s, "\n")

	var (
		margin string
		found  bool
	)

	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			lines[i] = ""

			continue
		}

		indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]

		switch {
		case !found:
			margin, found = indent, true
		case strings.HasPrefix(indent, margin):
		case strings.HasPrefix(margin, indent):
			margin = indent
		default:
			margin = commonPrefix(margin, indent)
		}
	}

	if margin == "" {
		return strings.Join(lines, "\n")
	}

	for i, line := range lines {
		lines[i] = strings.TrimPrefix(line, margin)
	}

	return strings.Join(lines, "\n")
}

// Indent prefixes every line of s that has non-whitespace content.
func Indent(s, prefix string) string {
	if prefix == "" || s == "" {
		return s
	}

	lines := strings.SplitAfter(s, "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) != "" {
			lines[i] = prefix + line
		}
	}

	return strings.Join(lines, "")
}

func commonPrefix(a, b string) string {
	n := min(len(a), len(b))

	for i := range n {
		if a[i] != b[i] {
			return a[:i]
		}
	}

	return a[:n]
}
