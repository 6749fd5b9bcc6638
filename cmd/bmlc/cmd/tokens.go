package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bml-lang/bml/internal/syntax"
)

var tokensCmd = &cobra.Command{
	Use:   "tokens FILE",
	Short: "Print the token stream of a file",
	Long: `Scans FILE and prints one token per line with its position.
Use - to read standard input.

Examples:
  bmlc tokens main.bml
  echo 'x = 1;' | bmlc tokens -`,
	Args: cobra.ExactArgs(1),
	RunE: runTokens,
}

func init() {
	rootCmd.AddCommand(tokensCmd)
}

func runTokens(cmd *cobra.Command, args []string) error {
	src, err := readSource(cmd, args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	s := syntax.NewScanner(sourceName(args[0]), src, nil)

	fmt.Fprintf(out, "%-20s %-12s %s\n", "POSITION", "TOKEN", "LITERAL")
	fmt.Fprintf(out, "%-20s %-12s %s\n", strings.Repeat("-", 20), strings.Repeat("-", 12), strings.Repeat("-", 20))

	for {
		s.Next()
		tok := s.Token()
		if s.Err() != nil {
			break
		}
		fmt.Fprintf(out, "%-20s %-12s %s\n", s.Pos(), tokenLabel(s), formatLiteral(s.Literal()))
		if tok.IsEOF() {
			break
		}
	}

	if err := s.Err(); err != nil {
		newRenderer().RenderError(cmd.ErrOrStderr(), err, src)
		return ErrDiagnostics
	}
	return nil
}

// tokenLabel names the current token, with the kind for literals.
func tokenLabel(s *syntax.Scanner) string {
	if s.Token().IsLiteral() {
		return s.LitKind().String()
	}
	return s.Token().String()
}

// formatLiteral quotes a literal with control characters made visible.
func formatLiteral(lit string) string {
	if lit == "" {
		return "\"\""
	}

	var b strings.Builder
	b.WriteRune('"')
	for _, r := range lit {
		switch r {
		case '\n':
			b.WriteString("\\n")
		case '\t':
			b.WriteString("\\t")
		case '\r':
			b.WriteString("\\r")
		case '\\':
			b.WriteString("\\\\")
		case '"':
			b.WriteString("\\\"")
		case 0:
			b.WriteString("\\0")
		default:
			b.WriteRune(r)
		}
	}
	b.WriteRune('"')
	return b.String()
}
