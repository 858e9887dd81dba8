package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/pterm/pterm"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/rubiojr/insights/compiler"
	"github.com/rubiojr/insights/errors"
	"github.com/rubiojr/insights/logger"
)

// dumpExts are the tree dump formats batch picks up.
var dumpExts = map[string]bool{".yaml": true, ".yml": true, ".json": true}

// batchResult is the outcome of one translation.
type batchResult struct {
	input  string
	output string
	err    error
	local  bool // used the local-static expansion
}

func batchAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() < 1 {
		return errors.New("usage: insights batch [-o dir] [-j N] <dir>")
	}
	dir := cmd.Args().First()
	files, err := collectDumps(dir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return errors.WithHint(errors.Newf("no tree dumps found in %s", dir), "dumps end in .yaml, .yml or .json")
	}

	outDir := cmd.String("output")
	if outDir == "" {
		outDir = dir
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return errors.Wrapf(err, "creating %s", outDir)
	}

	jobs := settings.Batch.Jobs
	if cmd.IsSet("jobs") {
		jobs = int(cmd.Int("jobs"))
	}
	if jobs < 1 {
		jobs = runtime.NumCPU()
	}

	start := time.Now()
	results := runBatch(ctx, files, outDir, options(cmd), jobs)
	printSummary(results, time.Since(start))

	for _, r := range results {
		if r.err != nil {
			return errors.Newf("%d of %d translations failed", countFailed(results), len(results))
		}
	}
	return nil
}

func collectDumps(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "reading directory %s", dir)
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && dumpExts[strings.ToLower(filepath.Ext(e.Name()))] {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	return files, nil
}

// runBatch translates files with at most jobs translations in flight.
// Every translation gets its own pass, so they share nothing. A failed
// file does not stop the others.
func runBatch(ctx context.Context, files []string, outDir string, opts compiler.Options, jobs int) []batchResult {
	results := make([]batchResult, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)

	for i, file := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i] = batchResult{input: file, err: err}
				return nil
			}
			results[i] = translateFile(file, outDir, opts)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func translateFile(file, outDir string, opts compiler.Options) batchResult {
	r := batchResult{input: file}
	comp := &compiler.Compiler{Options: opts}
	res, err := comp.Compile(file)
	if err != nil {
		r.err = err
		logger.Logger.Warnw("translation failed", "file", file, "error", err)
		return r
	}
	base := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
	r.output = filepath.Join(outDir, base+".cpp")
	r.local = res.NeedsNewHeader
	if err := os.WriteFile(r.output, []byte(res.String()), 0644); err != nil {
		r.err = errors.Wrapf(err, "writing %s", r.output)
		return r
	}
	logger.Logger.Infow("translated", "file", file, "output", r.output, "localStatic", r.local)
	return r
}

func countFailed(results []batchResult) int {
	n := 0
	for _, r := range results {
		if r.err != nil {
			n++
		}
	}
	return n
}

func printSummary(results []batchResult, elapsed time.Duration) {
	if !term.IsTerminal(int(os.Stderr.Fd())) || os.Getenv("NO_COLOR") != "" {
		pterm.DisableColor()
	}
	for _, r := range results {
		if r.err != nil {
			fmt.Fprintf(os.Stderr, "  %s %s: %v\n", pterm.Red("✗"), r.input, r.err)
			continue
		}
		note := ""
		if r.local {
			note = " " + pterm.Gray("(local static)")
		}
		fmt.Fprintf(os.Stderr, "  %s %s %s %s%s\n", pterm.LightGreen("✓"), r.input, pterm.Gray("→"), r.output, note)
	}
	failed := countFailed(results)
	summary := fmt.Sprintf("%d files, %d translated, %d failed in %s",
		len(results), len(results)-failed, failed, elapsed.Round(time.Millisecond))
	if failed > 0 {
		fmt.Fprintf(os.Stderr, "\n%s\n", pterm.Red(summary))
	} else {
		fmt.Fprintf(os.Stderr, "\n%s\n", pterm.LightGreen(summary))
	}
}
