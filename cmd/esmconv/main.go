package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"

	"go.uber.org/zap"

	"github.com/wippyai/esmconv/convert"
	"github.com/wippyai/esmconv/eval"
)

func main() {
	var (
		outPath     = flag.String("o", "", "Output file, or directory when converting several files")
		configFile  = flag.String("config", "", "TOML file with helper names and options")
		showDiff    = flag.Bool("diff", false, "Print a unified diff instead of the converted source")
		verify      = flag.Bool("verify", false, "Run both programs and compare their exports")
		showReport  = flag.Bool("report", false, "Print the conversion report as TOML")
		dumpAST     = flag.Bool("ast", false, "Dump the converted syntax tree")
		jobs        = flag.Int("j", runtime.NumCPU(), "Files converted in parallel")
		verbose     = flag.Bool("v", false, "Verbose logging")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Usage: esmconv [-o out] [-config file.toml] [-diff] [-verify] [-report] <file.js|dir>...")
		fmt.Fprintln(os.Stderr, "       esmconv -i <file.js|dir>...  (interactive mode)")
		fmt.Fprintln(os.Stderr, "       esmconv -  (read standard input)")
		os.Exit(1)
	}

	log, err := newLogger(*verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()
	convert.SetLogger(log.Named("convert"))
	eval.SetLogger(log.Named("eval"))

	cfg, err := convert.LoadConfig(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	files, err := collectInputs(flag.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *interactive {
		if err := runInteractive(files, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	opts := options{
		config: cfg,
		out:    *outPath,
		diff:   *showDiff,
		verify: *verify,
		report: *showReport,
		ast:    *dumpAST,
		jobs:   *jobs,
	}
	if err := run(files, opts, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	return cfg.Build()
}
