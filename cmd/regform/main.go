package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/smileynet/regform/internal/config"
	"github.com/smileynet/regform/internal/form"
	"github.com/smileynet/regform/internal/sink"
	"github.com/smileynet/regform/internal/tui"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// CLI is the top-level command structure for regform.
type CLI struct {
	Version kong.VersionFlag `help:"Show version." short:"V"`
	Fill    FillCmd          `cmd:"" default:"1" help:"Fill in the registration form."`
	Check   CheckCmd         `cmd:"" help:"Validate and submit registration data from a YAML file."`
}

// SinkFlags are the overrides shared by every command that submits.
type SinkFlags struct {
	Sink     []string `help:"Submission sinks (log, yaml). Overrides config." sep:","`
	LogLevel string   `help:"Log level (debug, info, warn, error). Overrides config."`
}

// apply copies set flags over cfg.
func (s SinkFlags) apply(cfg *config.Config) {
	if len(s.Sink) > 0 {
		cfg.Submit.Sinks = s.Sink
	}
	if s.LogLevel != "" {
		cfg.Log.Level = s.LogLevel
	}
}

// loadConfig loads layered config from user and project paths with env overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadLayered(
		os.ExpandEnv("$HOME/.config/regform/config.yaml"),
		".regform/config.yaml",
	)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger builds the process logger at the configured level.
func newLogger(w io.Writer, level string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	return log.NewWithOptions(w, log.Options{
		Prefix: "regform",
		Level:  lvl,
	}), nil
}

// FillCmd runs the form interactively.
type FillCmd struct {
	SinkFlags
	Plain bool `help:"Use line prompts even if stdout is a TTY." default:"false"`
}

// Run executes the fill command.
func (c *FillCmd) Run() error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("fill: %w", err)
	}
	c.apply(cfg)
	if c.Plain {
		cfg.UI.Plain = true
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("fill: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	interactive := !cfg.UI.Plain && tui.IsTerminal(os.Stdout)
	return c.run(ctx, cfg, os.Stdin, os.Stdout, os.Stderr, interactive)
}

// run wires the form to its sinks and runner, enabling testable wiring.
// While a full-screen form owns the terminal, sink and log output is held
// back and written out once the form exits.
func (c *FillCmd) run(ctx context.Context, cfg *config.Config, in io.Reader, out, errOut io.Writer, interactive bool) error {
	sinkOut, logOut := out, errOut
	if interactive {
		var heldOut, heldLog bytes.Buffer
		sinkOut, logOut = &heldOut, &heldLog
		defer func() {
			_, _ = heldOut.WriteTo(out)
			_, _ = heldLog.WriteTo(errOut)
		}()
	}

	logger, err := newLogger(logOut, cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("fill: %w", err)
	}
	d, err := sink.New(cfg.Submit.Sinks, logger, sinkOut)
	if err != nil {
		return fmt.Errorf("fill: %w", err)
	}

	f := form.New(d)
	runner := tui.NewRunner(tui.RunnerOptions{
		Form:       f,
		Reader:     in,
		Writer:     out,
		ForcePlain: !interactive,
		Width:      cfg.UI.Width,
	})
	logger.Debug("form opened", "interactive", interactive, "sinks", cfg.Submit.Sinks)

	if err := runner.Run(ctx); err != nil {
		return fmt.Errorf("fill: %w", err)
	}
	return nil
}

// CheckCmd validates registration data from a file and submits it when valid.
type CheckCmd struct {
	SinkFlags
	File string `arg:"" help:"YAML file with registration data." type:"existingfile"`
}

// Run executes the check command.
func (c *CheckCmd) Run() error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("check: %w", err)
	}
	c.apply(cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("check: %w", err)
	}

	data, err := os.ReadFile(c.File)
	if err != nil {
		return fmt.Errorf("check: %w", err)
	}
	return c.run(context.Background(), cfg, data, os.Stdout, os.Stderr)
}

// run checks raw YAML data, enabling testable wiring.
func (c *CheckCmd) run(ctx context.Context, cfg *config.Config, raw []byte, out, errOut io.Writer) error {
	input, err := decodeFormData(raw)
	if err != nil {
		return fmt.Errorf("check: %s: %w", c.File, err)
	}

	logger, err := newLogger(errOut, cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("check: %w", err)
	}
	d, err := sink.New(cfg.Submit.Sinks, logger, out)
	if err != nil {
		return fmt.Errorf("check: %w", err)
	}

	f := form.New(d)
	if err := f.Load(input); err != nil {
		return fmt.Errorf("check: %w", err)
	}
	ok, err := f.Submit(ctx)
	if err != nil {
		return fmt.Errorf("check: %w", err)
	}
	if !ok {
		errs := f.Errors()
		for _, id := range errs.Failed() {
			_, _ = fmt.Fprintf(out, "%s: %s\n", id, errs.Get(id))
		}
		return &form.ValidationError{Errors: errs}
	}
	logger.Debug("check passed", "file", c.File)
	return nil
}

// decodeFormData parses YAML registration data, rejecting unknown keys and
// option values no control offers.
func decodeFormData(raw []byte) (form.FormData, error) {
	var d form.FormData
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&d); err != nil && !errors.Is(err, io.EOF) {
		return form.FormData{}, fmt.Errorf("parsing: %w", err)
	}

	pt, err := form.ParsePhoneType(string(d.PhoneType))
	if err != nil {
		return form.FormData{}, err
	}
	staff, err := form.ParseStaff(string(d.Staff))
	if err != nil {
		return form.FormData{}, err
	}
	d.PhoneType = pt
	d.Staff = staff
	return d, nil
}

const (
	exitSuccess = 0
	exitInvalid = 1
	exitSetup   = 2
)

// exitCode maps an error to the appropriate exit code.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var ve *form.ValidationError
	if errors.As(err, &ve) {
		return exitInvalid
	}
	return exitSetup
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("regform"),
		kong.Description("Fill in and validate registration forms."),
		kong.Vars{"version": version + " " + commit + " " + date},
	)
	err := ctx.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(exitCode(err))
	}
}
