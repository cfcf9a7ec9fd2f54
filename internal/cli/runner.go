// Package cli is the orchestration layer cmd/quasigen drives: given a
// resolved language adapter, a set of template file paths, and an Env, it
// fans rendering out across a worker pool and writes each result through
// a writer.Writer.
package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/oxhq/quasigen/internal/eval"
	"github.com/oxhq/quasigen/internal/format"
	"github.com/oxhq/quasigen/internal/history"
	"github.com/oxhq/quasigen/internal/parser"
	"github.com/oxhq/quasigen/internal/writer"
	"github.com/oxhq/quasigen/lang"
)

// Config controls one CLI invocation's rendering behavior.
type Config struct {
	Language   string
	Indent     string
	LineEnding string
	// Workers caps concurrent file renders. Zero or negative means
	// runtime.NumCPU().
	Workers int
	// OutDir is where rendered files are written when non-empty. Empty
	// writes each rendered file alongside its template, swapping the
	// template's extension for the adapter's conventional one.
	OutDir string
	// Diff, when true and a history store is attached, compares each
	// fresh render against that template's last recorded output and
	// populates Result.Diff with a unified diff.
	Diff        bool
	DiffContext int
}

// Result is one template's render outcome.
type Result struct {
	TemplatePath string
	OutputPath   string
	ImportCount  int
	Duration     time.Duration
	// Diff is a unified diff against the template's last recorded
	// render, set only when Config.Diff is true and a prior render
	// exists. Empty when the output is unchanged or there is no history.
	Diff  string
	Error error
}

// extensions maps an adapter name to the file extension its rendered
// output conventionally uses, for deriving an output path from a
// template's own path.
var extensions = map[string]string{
	"go":         ".go",
	"rust":       ".rs",
	"java":       ".java",
	"kotlin":     ".kt",
	"csharp":     ".cs",
	"dart":       ".dart",
	"javascript": ".js",
	"c":          ".c",
	"python":     ".py",
}

// Runner renders a batch of template files through one language adapter,
// fanning the work out across a worker pool, matching the teacher's
// channel-fed file-processing loop.
type Runner struct {
	cfg     Config
	writer  writer.Writer
	history *history.Store
	env     eval.Env
}

// NewRunner builds a Runner. hist may be nil to disable history recording.
func NewRunner(cfg Config, w writer.Writer, hist *history.Store, env eval.Env) *Runner {
	return &Runner{cfg: cfg, writer: w, history: hist, env: env}
}

// RenderFiles renders every path in paths through the Runner's adapter,
// writing each result via the Runner's writer.
func (r *Runner) RenderFiles(paths []string) ([]Result, error) {
	adapter, err := lang.Get(r.cfg.Language)
	if err != nil {
		return nil, fmt.Errorf("cli: %w", err)
	}

	numW := r.cfg.Workers
	if numW < 1 {
		numW = runtime.NumCPU()
	}

	jobs := make(chan string)
	resultsCh := make(chan Result)

	var wg sync.WaitGroup
	for i := 0; i < numW; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				resultsCh <- r.renderOne(adapter, path)
			}
		}()
	}

	go func() {
		for _, p := range paths {
			jobs <- p
		}
		close(jobs)
	}()

	go func() {
		wg.Wait()
		close(resultsCh)
	}()

	var results []Result
	var hadError bool
	for res := range resultsCh {
		if res.Error != nil {
			hadError = true
		}
		results = append(results, res)
	}

	if hadError {
		return results, fmt.Errorf("cli: errors occurred while rendering %d file(s)", len(paths))
	}
	return results, nil
}

func (r *Runner) renderOne(adapter lang.Adapter, path string) Result {
	start := time.Now()

	source, err := os.ReadFile(path)
	if err != nil {
		return Result{TemplatePath: path, Error: fmt.Errorf("reading %s: %w", path, err)}
	}

	tmpl, err := parser.Parse(string(source))
	if err != nil {
		return Result{TemplatePath: path, Error: fmt.Errorf("parsing %s: %w", path, err)}
	}

	stream, set, err := eval.Eval(tmpl, r.env, adapter)
	if err != nil {
		return Result{TemplatePath: path, Error: fmt.Errorf("evaluating %s: %w", path, err)}
	}

	cfg := adapter.DefaultConfig()
	if r.cfg.Indent != "" {
		cfg.Indent = r.cfg.Indent
	}
	if r.cfg.LineEnding != "" {
		cfg.LineEnding = r.cfg.LineEnding
	}

	var buf strings.Builder
	if err := format.Render(stream, set, adapter, &cfg, &buf); err != nil {
		return Result{TemplatePath: path, Error: fmt.Errorf("formatting %s: %w", path, err)}
	}
	out := buf.String()

	var diffText string
	if r.cfg.Diff && r.history != nil {
		if prev, err := r.history.LastForTemplate(path); err == nil && prev != nil {
			diffText = unifiedDiff(prev.Output, out, path, r.cfg.DiffContext)
		}
	}

	outPath := outputPath(path, r.cfg.OutDir, adapter.Name())
	if err := r.writer.WriteFile(outPath, []byte(out), 0o644); err != nil {
		return Result{TemplatePath: path, Error: fmt.Errorf("writing %s: %w", outPath, err)}
	}

	duration := time.Since(start)
	if r.history != nil {
		_ = r.history.Record(history.RecordInput{
			TemplatePath: path,
			Language:     adapter.Name(),
			Output:       out,
			OutputDigest: history.Digest(out),
			ImportCount:  set.Len(),
			Duration:     duration,
			Config:       history.RenderConfig{Indent: cfg.Indent, LineEnding: cfg.LineEnding},
		})
	}

	return Result{TemplatePath: path, OutputPath: outPath, ImportCount: set.Len(), Duration: duration, Diff: diffText}
}

// unifiedDiff renders a unified diff between a template's previously
// recorded output and its fresh render. Equal inputs return "".
func unifiedDiff(previous, current, path string, context int) string {
	if previous == current {
		return ""
	}
	if context <= 0 {
		context = 3
	}

	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(previous),
		B:        difflib.SplitLines(current),
		FromFile: path + " (previous)",
		ToFile:   path + " (current)",
		Context:  context,
	}

	text, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		return fmt.Sprintf("--- %s (previous)\n+++ %s (current)\n@@ changes @@\n%d bytes -> %d bytes\n",
			path, path, len(previous), len(current))
	}
	return text
}

func outputPath(templatePath, outDir, adapterName string) string {
	base := strings.TrimSuffix(filepath.Base(templatePath), filepath.Ext(templatePath))
	name := base + extensions[adapterName]

	if outDir == "" {
		return filepath.Join(filepath.Dir(templatePath), name)
	}
	return filepath.Join(outDir, name)
}

// Summary returns the writer's summary of what it did.
func (r *Runner) Summary() string {
	return r.writer.Summary()
}
