package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bml-lang/bml/internal/syntax"
)

var astFormat string

var astCmd = &cobra.Command{
	Use:   "ast FILE",
	Short: "Print the syntax tree of a file",
	Long: `Parses FILE and prints its syntax tree as an indented dump or as JSON.
Use - to read standard input.

Examples:
  bmlc ast main.bml
  bmlc ast --format json main.bml`,
	Args: cobra.ExactArgs(1),
	RunE: runAST,
}

func init() {
	rootCmd.AddCommand(astCmd)
	astCmd.Flags().StringVarP(&astFormat, "format", "f", "", "output format: text or json (default from config)")
}

func runAST(cmd *cobra.Command, args []string) error {
	format := appCfg.Output.ASTFormat
	if astFormat != "" {
		format = astFormat
	}
	if format != "text" && format != "json" {
		return fmt.Errorf("unknown AST format %q", format)
	}

	src, err := readSource(cmd, args[0])
	if err != nil {
		return err
	}

	prog, err := syntax.NewParser(sourceName(args[0]), src, nil).Parse()
	if err != nil {
		newRenderer().RenderError(cmd.ErrOrStderr(), err, src)
		return ErrDiagnostics
	}

	if format == "json" {
		return syntax.FprintJSON(cmd.OutOrStdout(), prog)
	}
	syntax.Fprint(cmd.OutOrStdout(), prog)
	return nil
}
