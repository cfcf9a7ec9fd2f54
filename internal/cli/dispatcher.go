package cli

import (
	"fmt"

	"github.com/oxhq/quasigen/internal/eval"
	"github.com/oxhq/quasigen/internal/history"
	"github.com/oxhq/quasigen/internal/writer"
)

// Output is the aggregate outcome of one Dispatch call, shaped for a
// CLI's exit code and summary printing.
type Output struct {
	Results        []Result
	ExitCode       int
	FileErrorCount int
	Summary        string
	Error          error
}

// Dispatch renders paths under cfg and w, recording each render to hist
// when non-nil, and folds the per-file results into a process exit code.
func Dispatch(paths []string, cfg Config, w writer.Writer, hist *history.Store, env eval.Env) Output {
	runner := NewRunner(cfg, w, hist, env)

	results, err := runner.RenderFiles(paths)

	errCount := 0
	for _, r := range results {
		if r.Error != nil {
			errCount++
		}
	}

	out := Output{
		Results:        results,
		FileErrorCount: errCount,
		Summary:        runner.Summary(),
	}

	if errCount > 0 {
		out.ExitCode = 2
		out.Error = fmt.Errorf("encountered %d error(s) while rendering %d file(s)", errCount, len(paths))
		return out
	}
	if err != nil {
		out.ExitCode = 1
		out.Error = err
		return out
	}

	out.ExitCode = 0
	return out
}
