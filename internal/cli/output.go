package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
)

// Status markers.
const (
	markSuccess = "√"
	markError   = "✗"
	markWarning = "!"
	markInfo    = "i"
)

// Printer writes user-facing lines. Success, warning and info lines go to
// out; error lines go to errOut. Only the leading marker is styled, and
// only when the destination is a terminal.
type Printer struct {
	out    io.Writer
	errOut io.Writer

	success lipgloss.Style
	failure lipgloss.Style
	warning lipgloss.Style
	info    lipgloss.Style
}

// NewPrinter creates a Printer for the given streams.
func NewPrinter(out, errOut io.Writer) *Printer {
	outRenderer := lipgloss.NewRenderer(out)
	errRenderer := lipgloss.NewRenderer(errOut)

	return &Printer{
		out:     out,
		errOut:  errOut,
		success: outRenderer.NewStyle().Foreground(lipgloss.Color("2")).Bold(true),
		failure: errRenderer.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		warning: outRenderer.NewStyle().Foreground(lipgloss.Color("3")).Bold(true),
		info:    outRenderer.NewStyle().Foreground(lipgloss.Color("4")),
	}
}

// Out returns the success stream, for JSON output.
func (p *Printer) Out() io.Writer { return p.out }

// Success prints "√ message".
func (p *Printer) Success(format string, args ...any) {
	fmt.Fprintf(p.out, "%s %s\n", p.success.Render(markSuccess), fmt.Sprintf(format, args...))
}

// Error prints "✗ message" to the error stream.
func (p *Printer) Error(format string, args ...any) {
	fmt.Fprintf(p.errOut, "%s %s\n", p.failure.Render(markError), fmt.Sprintf(format, args...))
}

// Warning prints "! message".
func (p *Printer) Warning(format string, args ...any) {
	fmt.Fprintf(p.out, "%s %s\n", p.warning.Render(markWarning), fmt.Sprintf(format, args...))
}

// Info prints "i message".
func (p *Printer) Info(format string, args ...any) {
	fmt.Fprintf(p.out, "%s %s\n", p.info.Render(markInfo), fmt.Sprintf(format, args...))
}

// Blank prints an empty line.
func (p *Printer) Blank() {
	fmt.Fprintln(p.out)
}

// Table prints rows under a header, columns aligned with spaces.
func (p *Printer) Table(columns []string, rows [][]string) {
	tw := tabwriter.NewWriter(p.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(tw, strings.Join(columns, "\t"))
	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	tw.Flush()
}

// CheckMark renders a boolean as "✓" or "✗".
func CheckMark(ok bool) string {
	if ok {
		return "✓"
	}
	return markError
}

// Truncate shortens s to max runes, replacing the tail with "...".
func Truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}

// TruncateLeft shortens s to max runes, keeping the tail behind "...".
func TruncateLeft(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return "..." + string(r[len(r)-(max-3):])
}
