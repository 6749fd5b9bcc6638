package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/bml-lang/bml/internal/check"
	"github.com/bml-lang/bml/internal/logger"
	"github.com/bml-lang/bml/internal/watch"
)

var (
	checkJobs  int
	checkWatch bool
)

var checkCmd = &cobra.Command{
	Use:   "check [PATH...]",
	Short: "Parse files and report errors",
	Long: `Parses every file named and every source file found below the
directories named, and reports lexical and syntax errors. Without PATH the
working directory is checked. Source files are recognized by the
extensions in the configuration (default .bml).

Examples:
  bmlc check
  bmlc check scripts/ extra.bml
  bmlc check --jobs 8 --watch .`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().IntVarP(&checkJobs, "jobs", "j", 0, "files parsed in parallel (default from config)")
	checkCmd.Flags().BoolVar(&checkWatch, "watch", false, "re-check when files change")
}

func runCheck(cmd *cobra.Command, args []string) error {
	paths := args
	if len(paths) == 0 {
		paths = []string{"."}
	}

	cfg := *appCfg
	if checkJobs > 0 {
		cfg.Jobs = checkJobs
	}
	checker := check.New(&cfg, logger.L())

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if checkWatch {
		ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
		defer stop()
		w := watch.New(checker, paths, func(rep *check.Report) {
			printReport(cmd.OutOrStdout(), cmd.ErrOrStderr(), rep)
		}, logger.L())
		return w.Run(ctx)
	}

	rep, err := checker.Run(ctx, paths)
	if err != nil {
		return err
	}
	if !printReport(cmd.OutOrStdout(), cmd.ErrOrStderr(), rep) {
		return ErrDiagnostics
	}
	return nil
}

// printReport writes the diagnostics of rep to stderr and a summary line
// to stdout. It reports whether every file parsed.
func printReport(stdout, stderr io.Writer, rep *check.Report) bool {
	r := newRenderer()
	for _, res := range rep.Results {
		if res.Err != nil {
			r.RenderError(stderr, res.Err, res.Src)
		}
	}

	failed := rep.Failed()
	fmt.Fprintf(stdout, "%d %s checked, %d with errors\n", len(rep.Results), plural(len(rep.Results), "file"), failed)
	return failed == 0
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
