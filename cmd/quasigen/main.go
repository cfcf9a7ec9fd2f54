// Command quasigen renders $-sigil quasiquote templates to a target
// language, either as a one-shot batch over a scanned template tree or
// as a JSON-RPC stdio server for editor/agent integrations.
package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"github.com/oxhq/quasigen/internal/cli"
	"github.com/oxhq/quasigen/internal/config"
	"github.com/oxhq/quasigen/internal/eval"
	"github.com/oxhq/quasigen/internal/history"
	"github.com/oxhq/quasigen/internal/scanner"
	"github.com/oxhq/quasigen/internal/writer"
	"github.com/oxhq/quasigen/mcp"

	_ "github.com/oxhq/quasigen/lang/c"
	_ "github.com/oxhq/quasigen/lang/csharp"
	_ "github.com/oxhq/quasigen/lang/dart"
	_ "github.com/oxhq/quasigen/lang/golang"
	_ "github.com/oxhq/quasigen/lang/java"
	_ "github.com/oxhq/quasigen/lang/javascript"
	_ "github.com/oxhq/quasigen/lang/kotlin"
	_ "github.com/oxhq/quasigen/lang/python"
	_ "github.com/oxhq/quasigen/lang/rust"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "mcp" {
		runMCP(os.Args[2:])
		return
	}

	out := runRender(os.Args[1:])
	if out.Error != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", out.Error)
	}
	if out.Summary != "" {
		fmt.Fprint(os.Stderr, out.Summary)
	}
	os.Exit(out.ExitCode)
}

func runRender(args []string) cli.Output {
	fs := pflag.NewFlagSet("quasigen", pflag.ContinueOnError)
	fs.Usage = func() { printUsage(fs) }

	envFile := fs.String("env-file", "", "Load configuration from a .env file.")
	language := fs.StringP("lang", "l", "", "Target language (go, rust, java, kotlin, csharp, dart, javascript, c, python).")
	root := fs.StringP("root", "r", "", "Root directory to scan for template files.")
	patterns := fs.StringSlice("include", nil, "Doublestar glob pattern(s) for template discovery (default \"**/*.tmpl\").")
	outDir := fs.String("out-dir", "", "Directory to write rendered files into (default: alongside each template).")
	indent := fs.String("indent", "", "Override the target language's default indent unit.")
	lineEnding := fs.String("line-ending", "", "Override the target language's default line ending.")
	workers := fs.IntP("workers", "w", 0, "Number of concurrent workers, 0 means use all available CPUs.")
	dryRun := fs.BoolP("dry-run", "d", false, "Perform a trial run without writing any files.")
	stdout := fs.Bool("stdout", false, "Stream rendered output to stdout instead of writing files.")
	vars := fs.StringSlice("var", nil, "A template variable as name=value. Repeatable.")
	historyDSN := fs.String("history-dsn", "", "sqlite DSN to record renders to (default: disabled).")
	showDiff := fs.BoolP("diff", "D", false, "Print a unified diff against each template's last recorded render (requires --history-dsn).")
	diffContext := fs.IntP("diff-context", "C", 3, "Lines of context for --diff.")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return cli.Output{ExitCode: 0}
		}
		return cli.Output{ExitCode: 1, Error: err}
	}

	cfg := config.Load(*envFile)
	if *language != "" {
		cfg.Language = *language
	}
	if *historyDSN != "" {
		cfg.HistoryDSN = *historyDSN
	}

	env, err := parseVars(*vars)
	if err != nil {
		return cli.Output{ExitCode: 1, Error: err}
	}

	templates := fs.Args()
	if *root != "" {
		globs := *patterns
		if len(globs) == 0 {
			globs = []string{"**/*.tmpl"}
		}
		s, err := scanner.New(scanner.Config{Root: *root, Patterns: globs})
		if err != nil {
			return cli.Output{ExitCode: 1, Error: err}
		}
		found, err := s.Scan()
		if err != nil {
			return cli.Output{ExitCode: 1, Error: fmt.Errorf("scanning %s: %w", *root, err)}
		}
		templates = found
	}

	if len(templates) == 0 {
		return cli.Output{ExitCode: 1, Error: errors.New("no template files given; pass paths, or --root to scan a directory")}
	}

	var hist *history.Store
	if cfg.HistoryDSN != "" {
		hist, err = history.Open(cfg.HistoryDSN, cfg.Debug)
		if err != nil {
			return cli.Output{ExitCode: 1, Error: fmt.Errorf("opening history store: %w", err)}
		}
		defer hist.Close()
	}

	w := resolveWriter(*dryRun, *stdout)

	runCfg := cli.Config{
		Language:    cfg.Language,
		Indent:      firstNonEmpty(*indent, cfg.Indent),
		LineEnding:  firstNonEmpty(*lineEnding, cfg.LineEnding),
		Workers:     *workers,
		OutDir:      *outDir,
		Diff:        *showDiff,
		DiffContext: *diffContext,
	}

	result := cli.Dispatch(templates, runCfg, w, hist, env)
	for _, r := range result.Results {
		if r.Diff != "" {
			fmt.Print(r.Diff)
		}
	}
	return result
}

func resolveWriter(dryRun, stdout bool) writer.Writer {
	switch {
	case dryRun:
		return writer.NewDryRunWriter()
	case stdout:
		return writer.NewStdoutWriter(os.Stdout)
	default:
		return writer.NewDiskWriter()
	}
}

func parseVars(pairs []string) (eval.MapEnv, error) {
	env := make(eval.MapEnv, len(pairs))
	for _, p := range pairs {
		name, value, ok := strings.Cut(p, "=")
		if !ok {
			return nil, fmt.Errorf("invalid --var %q, want name=value", p)
		}
		env[name] = value
	}
	return env, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func runMCP(args []string) {
	fs := pflag.NewFlagSet("quasigen mcp", pflag.ContinueOnError)
	envFile := fs.String("env-file", "", "Load configuration from a .env file.")
	historyDSN := fs.String("history-dsn", "", "sqlite DSN to record renders to (default: disabled).")
	debug := fs.Bool("debug", false, "Log each request/response to stderr.")

	if err := fs.Parse(args); err != nil {
		if !errors.Is(err, pflag.ErrHelp) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}

	cfg := config.Load(*envFile)
	if *historyDSN != "" {
		cfg.HistoryDSN = *historyDSN
	}

	server, err := mcp.NewStdioServer(mcp.Config{HistoryDSN: cfg.HistoryDSN, Debug: *debug || cfg.Debug})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer server.Close()

	if err := server.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage(fs *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, "\nUsage: quasigen [flags] <template1> <template2> ...\n")
	fmt.Fprintf(os.Stderr, "       quasigen --root ./templates --lang rust\n")
	fmt.Fprintf(os.Stderr, "       quasigen mcp   // run a JSON-RPC stdio server\n")
	fmt.Fprintf(os.Stderr, "\nFlags:\n")
	fs.PrintDefaults()
}
