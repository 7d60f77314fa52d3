package gen

// pythonKeywords are the reserved words of the target language.
var pythonKeywords = setOf(
	"False", "None", "True", "and", "as", "assert", "async", "await",
	"break", "class", "continue", "def", "del", "elif", "else", "except",
	"finally", "for", "from", "global", "if", "import", "in", "is",
	"lambda", "nonlocal", "not", "or", "pass", "raise", "return", "try",
	"while", "with", "yield",
)

// cKeywords are the reserved words of the generated C source.
var cKeywords = setOf(
	"auto", "break", "case", "char", "const", "continue", "default", "do",
	"double", "else", "enum", "extern", "float", "for", "goto", "if",
	"inline", "int", "long", "register", "restrict", "return", "short",
	"signed", "sizeof", "static", "struct", "switch", "typedef", "union",
	"unsigned", "void", "volatile", "while", "_Bool", "_Complex", "_Imaginary",
)

// wrapperLocals are names every wrapper body declares itself.
var wrapperLocals = setOf("self", "args", "kwargs", "kwlist", "res", "py_res", "error")

func setOf(words ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}

	return m
}

func reserved(set map[string]struct{}, name string) bool {
	_, ok := set[name]

	return ok
}

// pyName returns the Python-visible name of a callable.
func pyName(name string) string {
	if reserved(pythonKeywords, name) {
		return name + "_"
	}

	return name
}

// argName returns the name used for an argument both as a C local and as a
// Python keyword.
func argName(name string) string {
	if reserved(pythonKeywords, name) || reserved(cKeywords, name) || reserved(wrapperLocals, name) {
		return name + "_"
	}

	return name
}
