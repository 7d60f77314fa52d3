// Command pygi-codegen generates a CPython extension module that binds one
// introspection namespace.
//
//	pygi-codegen [flags] <namespace>
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"pygi-codegen/internal/gen"
	"pygi-codegen/internal/gir"
	"pygi-codegen/internal/logger"
)

// metadataPathEnv lists extra metadata directories, separated like PATH.
const metadataPathEnv = "PYGI_CODEGEN_METADATA_PATH"

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

type options struct {
	cfg       gen.Config
	metadata  string
	logLevel  string
	logFormat string
	dump      bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, argv []string, stderr io.Writer) int {
	opts, err := parseArgs(argv, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return exitOK
	}

	if err != nil {
		fmt.Fprintln(stderr, err)

		return exitUsage
	}

	level, err := logger.ParseLevel(opts.logLevel)
	if err != nil {
		fmt.Fprintln(stderr, err)

		return exitUsage
	}

	logCfg := logger.DefaultConfig()
	logCfg.Level = level
	logCfg.Format = opts.logFormat
	logCfg.Output = stderr

	log, err := logger.Init(logCfg)
	if err != nil {
		fmt.Fprintln(stderr, err)

		return exitUsage
	}

	opts.cfg.Logger = log
	if opts.dump {
		opts.cfg.DumpPath = opts.cfg.OutputPath() + ".dump.txt"
	}

	repo := gir.NewFileRepository(searchPath(opts.metadata, os.Getenv(metadataPathEnv))...)

	m, err := gen.NewModuleBuilder(repo, opts.cfg)
	if err != nil {
		log.Error("cannot load namespace", "namespace", opts.cfg.Namespace, "error", err)

		return exitError
	}

	diags, err := m.Generate(ctx)
	if err != nil {
		log.Error("generation failed", "namespace", opts.cfg.Namespace, "error", err)

		if diags.HasErrors() {
			fmt.Fprintf(stderr, "%s: not written, %d error(s)\n", opts.cfg.OutputPath(), len(diags.Errors))
		}

		return exitError
	}

	if n := diags.Count(); n > 0 {
		fmt.Fprintf(stderr, "%s: %d diagnostic(s), %d warning(s)\n",
			opts.cfg.OutputPath(), n, len(diags.Warnings))
	}

	return exitOK
}

// parseArgs accepts flags before and after the namespace.
func parseArgs(argv []string, stderr io.Writer) (*options, error) {
	opts := &options{cfg: gen.DefaultConfig()}

	name := "pygi-codegen"
	if len(argv) > 0 {
		name = filepath.Base(argv[0])
		opts.cfg.CommandLine = strings.Join(argv, " ")
		argv = argv[1:]
	}

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&opts.cfg.Prefix, "p", opts.cfg.Prefix, "prefix for wrapper and module identifiers")
	fs.StringVar(&opts.cfg.Prefix, "prefix", opts.cfg.Prefix, "same as -p")
	fs.StringVar(&opts.cfg.Output, "o", "", "output file (default lowercase <prefix><namespace>.c)")
	fs.StringVar(&opts.cfg.Output, "output", "", "same as -o")
	fs.StringVar(&opts.cfg.TemplatePath, "t", "", "module template (default: built in)")
	fs.StringVar(&opts.cfg.TemplatePath, "template", "", "same as -t")
	fs.StringVar(&opts.metadata, "metadata", "", "metadata search path, searched before $"+metadataPathEnv)
	fs.StringVar(&opts.logLevel, "log-level", "warn", "log level: debug, info, warn or error")
	fs.StringVar(&opts.logFormat, "log-format", "text", "log format: text or json")
	fs.BoolVar(&opts.dump, "dump", false, "write a debug dump of the builders next to the output")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: %s [flags] <namespace>\n\n", name)
		fmt.Fprintln(stderr, "Generates a CPython extension module for an introspection namespace.")
		fmt.Fprintln(stderr)
		fs.PrintDefaults()
	}

	var positional []string

	for {
		if err := fs.Parse(argv); err != nil {
			return nil, err
		}

		if fs.NArg() == 0 {
			break
		}

		positional = append(positional, fs.Arg(0))
		argv = fs.Args()[1:]
	}

	if len(positional) != 1 {
		fs.Usage()

		return nil, fmt.Errorf("expected exactly one namespace, got %d", len(positional))
	}

	opts.cfg.Namespace = positional[0]

	return opts, nil
}

// searchPath joins the -metadata value and the environment list. Each may
// hold several directories separated by the OS list separator. An empty
// result searches the working directory.
func searchPath(flagValue, envValue string) []string {
	var dirs []string

	for _, list := range []string{flagValue, envValue} {
		for _, dir := range filepath.SplitList(list) {
			if dir != "" {
				dirs = append(dirs, dir)
			}
		}
	}

	if len(dirs) == 0 {
		return []string{"."}
	}

	return dirs
}
