// Package diag renders BML lexical and syntax errors for terminals.
package diag

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bml-lang/bml/internal/syntax"
)

// Color palette
var (
	ColorError = lipgloss.Color("#EF4444") // Red
	ColorNote  = lipgloss.Color("#06B6D4") // Cyan
	ColorMuted = lipgloss.Color("#6B7280") // Gray
	ColorCaret = lipgloss.Color("#10B981") // Emerald
)

// Diagnostic is a located error message.
type Diagnostic struct {
	Pos  syntax.Pos
	Kind syntax.ErrorKind
	Msg  string

	// Opening is the opener of an unclosed bracket; invalid otherwise.
	Opening syntax.Pos
}

// FromError extracts a Diagnostic from a lexical or syntax error,
// looking through wrapped errors.
func FromError(err error) (Diagnostic, bool) {
	var lerr *syntax.LexError
	if errors.As(err, &lerr) {
		return Diagnostic{Pos: lerr.Pos, Kind: lerr.Kind, Msg: lerr.Msg}, true
	}
	var perr *syntax.ParseError
	if errors.As(err, &perr) {
		return Diagnostic{Pos: perr.Pos, Kind: perr.Kind, Msg: perr.Msg, Opening: perr.Opening}, true
	}
	return Diagnostic{}, false
}

// Renderer writes diagnostics with an excerpt of the offending line.
type Renderer struct {
	color bool

	location lipgloss.Style
	kind     lipgloss.Style
	note     lipgloss.Style
	gutter   lipgloss.Style
	caret    lipgloss.Style
}

// NewRenderer returns a Renderer. With color off the output is plain text.
func NewRenderer(color bool) *Renderer {
	return &Renderer{
		color:    color,
		location: lipgloss.NewStyle().Bold(true),
		kind:     lipgloss.NewStyle().Foreground(ColorError).Bold(true),
		note:     lipgloss.NewStyle().Foreground(ColorNote).Bold(true),
		gutter:   lipgloss.NewStyle().Foreground(ColorMuted),
		caret:    lipgloss.NewStyle().Foreground(ColorCaret).Bold(true),
	}
}

func (r *Renderer) style(s lipgloss.Style, text string) string {
	if !r.color {
		return text
	}
	return s.Render(text)
}

// Render writes d followed by the source line it points into and a caret
// under the offending column. src may be nil, in which case only the
// message line is written.
func (r *Renderer) Render(w io.Writer, d Diagnostic, src []byte) error {
	var b strings.Builder

	fmt.Fprintf(&b, "%s %s %s\n",
		r.style(r.location, d.Pos.String()+":"),
		r.style(r.kind, d.Kind.String()+":"),
		d.Msg)
	r.excerpt(&b, d.Pos, src)

	if d.Kind == syntax.UnclosedBracket && d.Opening.IsValid() {
		fmt.Fprintf(&b, "%s %s\n",
			r.style(r.location, d.Opening.String()+":"),
			r.style(r.note, "note:")+" bracket opened here")
		r.excerpt(&b, d.Opening, src)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// RenderError renders err if it is a lexical or syntax error, and writes
// its plain text otherwise.
func (r *Renderer) RenderError(w io.Writer, err error, src []byte) error {
	if d, ok := FromError(err); ok {
		return r.Render(w, d, src)
	}
	_, werr := fmt.Fprintf(w, "%s %v\n", r.style(r.kind, "error:"), err)
	return werr
}

// excerpt writes the line containing pos and a caret under its column.
func (r *Renderer) excerpt(b *strings.Builder, pos syntax.Pos, src []byte) {
	off := pos.Offset()
	if src == nil || off < 0 || off > len(src) {
		return
	}

	start := bytes.LastIndexByte(src[:off], '\n') + 1
	end := bytes.IndexByte(src[off:], '\n')
	if end < 0 {
		end = len(src)
	} else {
		end += off
	}
	line := strings.TrimRight(string(src[start:end]), "\r")

	// Keep tabs so the caret lines up with the source as displayed.
	var pad strings.Builder
	for _, c := range string(src[start:off]) {
		if c == '\t' {
			pad.WriteByte('\t')
		} else {
			pad.WriteByte(' ')
		}
	}

	gutter := fmt.Sprintf("%4d | ", pos.Line())
	blank := strings.Repeat(" ", len(gutter)-2) + "| "
	fmt.Fprintf(b, "%s%s\n", r.style(r.gutter, gutter), line)
	fmt.Fprintf(b, "%s%s%s\n", r.style(r.gutter, blank), pad.String(), r.style(r.caret, "^"))
}
