package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/pelletier/go-toml/v2"
	"github.com/pmezard/go-difflib/difflib"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/wippyai/esmconv"
	"github.com/wippyai/esmconv/convert"
)

const stdinName = "-"

// verifyTimeout bounds the VM run of each program during -verify.
const verifyTimeout = 10 * time.Second

type options struct {
	config convert.Config
	out    string
	jobs   int
	diff   bool
	verify bool
	report bool
	ast    bool
}

type fileResult struct {
	result *esmconv.Result
	name   string
	source string
	// out is the file the converted source is written to, if any.
	out string
}

// collectInputs expands directories into the .js files they directly contain.
func collectInputs(args []string) ([]string, error) {
	var files []string
	for _, arg := range args {
		if arg == stdinName {
			files = append(files, arg)
			continue
		}
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("stat input: %w", err)
		}
		if !info.IsDir() {
			files = append(files, arg)
			continue
		}
		entries, err := os.ReadDir(arg)
		if err != nil {
			return nil, fmt.Errorf("read dir: %w", err)
		}
		var found []string
		for _, e := range entries {
			if !e.IsDir() && strings.HasSuffix(e.Name(), ".js") {
				found = append(found, filepath.Join(arg, e.Name()))
			}
		}
		sort.Strings(found)
		files = append(files, found...)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no .js files found")
	}
	return files, nil
}

func readSource(name string) (string, error) {
	var (
		data []byte
		err  error
	)
	if name == stdinName {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(name)
	}
	if err != nil {
		return "", fmt.Errorf("read file: %w", err)
	}
	return string(data), nil
}

func convertFile(ctx context.Context, name string, opts options) (*fileResult, error) {
	src, err := readSource(name)
	if err != nil {
		return nil, err
	}
	var res *esmconv.Result
	if opts.verify {
		vctx, cancel := context.WithTimeout(ctx, verifyTimeout)
		res, err = esmconv.ConvertVerified(vctx, src, opts.config)
		cancel()
	} else {
		res, err = esmconv.ConvertSource(src, opts.config)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	convert.Logger().Info("converted file",
		zap.String("file", name),
		zap.Int("converted", len(res.Report.Converted)),
		zap.Int("skipped", len(res.Report.Skipped)))
	return &fileResult{name: name, source: src, result: res}, nil
}

// run converts every file with at most opts.jobs in flight and then writes
// the results in input order.
func run(files []string, opts options, w io.Writer) error {
	results := make([]*fileResult, len(files))
	g, ctx := errgroup.WithContext(context.Background())
	if opts.jobs > 0 {
		g.SetLimit(opts.jobs)
	}
	for i, name := range files {
		i, name := i, name
		g.Go(func() error {
			r, err := convertFile(ctx, name, opts)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	multi := len(results) > 1
	if opts.out != "" && multi {
		if err := assignOutputs(results, opts.out); err != nil {
			return err
		}
		if err := os.MkdirAll(opts.out, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	} else if opts.out != "" {
		results[0].out = opts.out
	}
	for _, r := range results {
		if err := emit(r, opts, multi, w); err != nil {
			return err
		}
	}
	return nil
}

// assignOutputs names each result's file in dir after its input. Inputs
// that would land on the same file, and standard input, are rejected
// before anything is written.
func assignOutputs(results []*fileResult, dir string) error {
	seen := make(map[string]string, len(results))
	for _, r := range results {
		if r.name == stdinName {
			return fmt.Errorf("standard input cannot be combined with other inputs when -o names a directory")
		}
		base := filepath.Base(r.name)
		if prev, ok := seen[base]; ok {
			return fmt.Errorf("inputs %s and %s would both be written to %s", prev, r.name, filepath.Join(dir, base))
		}
		seen[base] = r.name
		r.out = filepath.Join(dir, base)
	}
	return nil
}

func emit(r *fileResult, opts options, multi bool, w io.Writer) error {
	if multi && opts.out == "" {
		fmt.Fprintf(w, "// %s\n", r.name)
	}

	switch {
	case opts.diff:
		d, err := unifiedDiff(r.name, r.source, r.result.Output)
		if err != nil {
			return err
		}
		fmt.Fprint(w, d)
	case r.out != "":
		if err := os.WriteFile(r.out, []byte(r.result.Output), 0o644); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	default:
		fmt.Fprint(w, r.result.Output)
	}

	if opts.ast {
		dumper().Fdump(w, r.result.Program)
	}
	if opts.report {
		data, err := toml.Marshal(reportFile{File: r.name, Report: r.result.Report})
		if err != nil {
			return fmt.Errorf("encode report: %w", err)
		}
		fmt.Fprintf(w, "\n%s", data)
	}
	return nil
}

type reportFile struct {
	Report *convert.Report `toml:"report"`
	File   string          `toml:"file"`
}

func unifiedDiff(name, before, after string) (string, error) {
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(before),
		B:        difflib.SplitLines(after),
		FromFile: name,
		ToFile:   name + " (esm)",
		Context:  3,
	})
}

func dumper() *spew.ConfigState {
	return &spew.ConfigState{
		Indent:                  "  ",
		DisablePointerAddresses: true,
		DisableCapacities:       true,
		SortKeys:                true,
	}
}
