package cmd

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bml-lang/bml/internal/logger"
	"github.com/bml-lang/bml/internal/syntax"
)

var (
	fmtWrite bool
	fmtList  bool
)

var fmtCmd = &cobra.Command{
	Use:   "fmt FILE...",
	Short: "Reformat BML source",
	Long: `Prints FILE in canonical layout: one statement per line, tab indentation
and single spaces around binary operators. Use - to read standard input.

Examples:
  bmlc fmt main.bml
  bmlc fmt -w *.bml
  bmlc fmt -l scripts/*.bml`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFmt,
}

func init() {
	rootCmd.AddCommand(fmtCmd)
	fmtCmd.Flags().BoolVarP(&fmtWrite, "write", "w", false, "write result to the source file instead of stdout")
	fmtCmd.Flags().BoolVarP(&fmtList, "list", "l", false, "list files whose formatting differs")
}

func runFmt(cmd *cobra.Command, args []string) error {
	failed := false
	for _, filename := range args {
		if filename == "-" && fmtWrite {
			return fmt.Errorf("cannot use -w with standard input")
		}
		ok, err := formatFile(cmd, filename)
		if err != nil {
			return err
		}
		if !ok {
			failed = true
		}
	}
	if failed {
		return ErrDiagnostics
	}
	return nil
}

// formatFile formats one file. It reports false if the file did not
// parse; the diagnostic has been written by then.
func formatFile(cmd *cobra.Command, filename string) (bool, error) {
	src, err := readSource(cmd, filename)
	if err != nil {
		return false, err
	}

	prog, err := syntax.NewParser(sourceName(filename), src, nil).Parse()
	if err != nil {
		newRenderer().RenderError(cmd.ErrOrStderr(), err, src)
		return false, nil
	}

	var buf bytes.Buffer
	if err := syntax.Format(&buf, prog); err != nil {
		return false, err
	}
	changed := !bytes.Equal(src, buf.Bytes())

	if fmtList {
		if changed {
			fmt.Fprintln(cmd.OutOrStdout(), sourceName(filename))
		}
		return true, nil
	}

	if fmtWrite {
		if !changed {
			return true, nil
		}
		info, err := os.Stat(filename)
		if err != nil {
			return false, err
		}
		if err := os.WriteFile(filename, buf.Bytes(), info.Mode().Perm()); err != nil {
			return false, fmt.Errorf("writing %s: %w", filename, err)
		}
		logger.L().Info("formatted file", "file", filename)
		return true, nil
	}

	_, err = cmd.OutOrStdout().Write(buf.Bytes())
	return true, err
}
