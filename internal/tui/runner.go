package tui

import (
	"context"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"github.com/smileynet/regform/internal/form"
)

// Runner drives a form until the user is done with it.
type Runner interface {
	Run(ctx context.Context) error
}

// RunnerOptions configures runner creation.
type RunnerOptions struct {
	Form       *form.Form // Form state to drive. Required.
	Reader     io.Reader  // Input source (default: os.Stdin).
	Writer     io.Writer  // Output destination (default: os.Stdout).
	ForcePlain bool       // Force line prompts even if TTY.
	Width      int        // Form width for the TUI.
}

// NewRunner returns a TUI runner when the writer is a TTY, or a line
// prompter otherwise. ForcePlain overrides TTY detection.
func NewRunner(opts RunnerOptions) Runner {
	if opts.Reader == nil {
		opts.Reader = os.Stdin
	}
	if opts.Writer == nil {
		opts.Writer = os.Stdout
	}

	if opts.ForcePlain || !isTTY(opts.Writer) {
		return NewPrompter(opts.Form, opts.Reader, opts.Writer)
	}

	return &TUIRunner{form: opts.Form, r: opts.Reader, w: opts.Writer, width: opts.Width}
}

// IsTerminal reports whether f is a terminal, including Cygwin/MSYS ptys.
func IsTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// isTTY reports whether w is connected to a terminal.
func isTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return IsTerminal(f)
}

// TUIRunner runs the form as a Bubble Tea program.
// Falls back to a Prompter if the program fails to start.
type TUIRunner struct {
	form  *form.Form
	r     io.Reader
	w     io.Writer
	width int
}

// Run starts the Bubble Tea program and blocks until the user quits.
func (t *TUIRunner) Run(ctx context.Context) error {
	model := NewModel(t.form, WithWidth(t.width), WithContext(ctx))
	p := tea.NewProgram(model,
		tea.WithInput(t.r),
		tea.WithOutput(t.w),
		tea.WithContext(ctx),
	)

	if _, err := p.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		// Fall back to line prompts over the same streams.
		return NewPrompter(t.form, t.r, t.w).Run(ctx)
	}
	return nil
}
