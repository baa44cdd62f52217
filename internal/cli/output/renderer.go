// Package output renders command results for terminals, documents and scripts.
//
// The auto mode picks styled text when stdout is a terminal and markdown
// otherwise, so piping a command into a file gives readable plain output.
package output

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// OutputMode selects how results are rendered.
type OutputMode string

// Mode is shorthand for OutputMode.
type Mode = OutputMode

// Output modes.
const (
	ModeAuto     OutputMode = "auto"
	ModeText     OutputMode = "text"
	ModeMarkdown OutputMode = "markdown"
	ModeJSON     OutputMode = "json"
	ModeYAML     OutputMode = "yaml"
	ModeTSV      OutputMode = "tsv"
)

// Renderer writes results to an output and diagnostics to an error output.
type Renderer struct {
	w       io.Writer
	errW    io.Writer
	mode    OutputMode
	isTTY   bool
	maxRows int
	style   string
	styles  *Styles

	errMu sync.Mutex // diagnostics may come from concurrent loads
}

// NewRenderer creates a renderer, detecting whether w is a terminal.
func NewRenderer(w, errW io.Writer, mode OutputMode) *Renderer {
	return NewRendererWithTTY(w, errW, isTerminal(w), mode)
}

// NewRendererWithTTY creates a renderer with an explicit terminal state.
func NewRendererWithTTY(w, errW io.Writer, isTTY bool, mode OutputMode) *Renderer {
	if mode == "" {
		mode = ModeAuto
	}
	lg := lipgloss.NewRenderer(w)
	if !isTTY {
		lg.SetColorProfile(termenv.Ascii)
	}
	return &Renderer{
		w:      w,
		errW:   errW,
		mode:   mode,
		isTTY:  isTTY,
		style:  "light",
		styles: NewStyles(lg),
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// WithMaxRows limits the rows shown by the text and markdown modes. Zero
// shows every row.
func (r *Renderer) WithMaxRows(n int) *Renderer {
	r.maxRows = max(n, 0)
	return r
}

// WithStyle sets the box style of text tables: light, rounded, double or ascii.
func (r *Renderer) WithStyle(name string) *Renderer {
	r.style = name
	return r
}

// EffectiveMode resolves ModeAuto against the terminal state.
func (r *Renderer) EffectiveMode() OutputMode {
	if r.mode != ModeAuto {
		return r.mode
	}
	if r.isTTY {
		return ModeText
	}
	return ModeMarkdown
}

// IsTTY reports whether the output is a terminal.
func (r *Renderer) IsTTY() bool { return r.isTTY }

// Writer returns the result output.
func (r *Renderer) Writer() io.Writer { return r.w }

// ErrWriter returns the diagnostic output.
func (r *Renderer) ErrWriter() io.Writer { return r.errW }

// Styles returns the lipgloss styles bound to this renderer's output.
func (r *Renderer) Styles() *Styles { return r.styles }

// Println writes a line to the output.
func (r *Renderer) Println(a ...any) {
	_, _ = fmt.Fprintln(r.w, a...)
}

// Printf writes formatted text to the output.
func (r *Renderer) Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(r.w, format, a...)
}

// Error writes an error line to the error output.
func (r *Renderer) Error(err error) {
	r.diag(r.styles.Error.Render("Error: " + err.Error()))
}

// Warn writes a warning line to the error output.
func (r *Renderer) Warn(msg string) {
	r.diag(r.styles.Warning.Render("Warning: " + msg))
}

// Success writes a confirmation line to the error output, keeping the
// result output clean for pipes.
func (r *Renderer) Success(msg string) {
	r.diag(r.styles.Success.Render(msg))
}

func (r *Renderer) diag(line string) {
	r.errMu.Lock()
	defer r.errMu.Unlock()
	_, _ = fmt.Fprintln(r.errW, line)
}
