package gen

import (
	"log/slog"
	"path/filepath"
	"strings"
)

// Version is stamped into generated files.
const Version = "0.1.0"

// Config holds configuration for one generation run.
type Config struct {
	// Namespace is the introspection namespace to bind.
	Namespace string
	// Prefix starts every wrapper and module-level identifier.
	Prefix string
	// Output is the generated file path; empty derives it from Prefix and
	// Namespace.
	Output string
	// TemplatePath replaces the embedded module template when set.
	TemplatePath string
	// CommandLine records how the run was invoked, for the file header.
	CommandLine string
	// DumpPath receives a debug dump of the classified builders when set.
	DumpPath string
	// Logger receives run progress; nil discards it.
	Logger *slog.Logger
}

// DefaultConfig returns the default generator configuration.
func DefaultConfig() Config {
	return Config{
		Prefix: "py",
	}
}

// OutputPath returns Output, or lowercase(prefix + namespace) + ".c".
func (c Config) OutputPath() string {
	if c.Output != "" {
		return c.Output
	}

	return strings.ToLower(c.Prefix+c.Namespace) + ".c"
}

// OutputBasename returns the output file name without directory and
// extension. It names the Python module.
func (c Config) OutputBasename() string {
	base := filepath.Base(c.OutputPath())

	return strings.TrimSuffix(base, filepath.Ext(base))
}
