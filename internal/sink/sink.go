// Package sink delivers accepted form submissions to their destinations.
package sink

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/smileynet/regform/internal/form"
)

// Submission is one accepted form, stamped for correlation.
type Submission struct {
	ID          string        `yaml:"id"`
	SubmittedAt time.Time     `yaml:"submitted_at"`
	Data        form.FormData `yaml:"data"`
}

// Writer emits a submission to one destination.
type Writer interface {
	Name() string
	Write(ctx context.Context, s Submission) error
}

// Names of the built-in writers, as used in config.
const (
	NameLog  = "log"
	NameYAML = "yaml"
)

// ErrUnknownSink is returned by New for a writer name it does not know.
var ErrUnknownSink = errors.New("sink: unknown sink")

// Dispatcher implements form.Sink by stamping each submission and passing
// it to every writer in order. The first failing writer stops delivery.
type Dispatcher struct {
	writers []Writer
	now     func() time.Time
	newID   func() string
}

var _ form.Sink = (*Dispatcher)(nil)

// NewDispatcher creates a Dispatcher over the given writers.
func NewDispatcher(writers ...Writer) *Dispatcher {
	return &Dispatcher{
		writers: writers,
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

// Accept stamps data with a fresh submission ID and delivers it.
func (d *Dispatcher) Accept(ctx context.Context, data form.FormData) error {
	s := Submission{
		ID:          d.newID(),
		SubmittedAt: d.now().UTC(),
		Data:        data,
	}
	for _, w := range d.writers {
		if err := w.Write(ctx, s); err != nil {
			return fmt.Errorf("sink: %s: %w", w.Name(), err)
		}
	}
	return nil
}

// New builds a Dispatcher from writer names. logger backs the log writer;
// out receives the yaml writer's documents.
func New(names []string, logger *log.Logger, out io.Writer) (*Dispatcher, error) {
	writers := make([]Writer, 0, len(names))
	for _, name := range names {
		switch name {
		case NameLog:
			writers = append(writers, NewLog(logger))
		case NameYAML:
			writers = append(writers, NewYAML(out))
		default:
			return nil, fmt.Errorf("%w: %q", ErrUnknownSink, name)
		}
	}
	return NewDispatcher(writers...), nil
}

// Log writes each submission as a structured log entry.
type Log struct {
	logger *log.Logger
}

// NewLog creates a Log writer.
func NewLog(logger *log.Logger) *Log {
	return &Log{logger: logger}
}

func (l *Log) Name() string { return NameLog }

func (l *Log) Write(_ context.Context, s Submission) error {
	d := s.Data
	l.logger.Info("Form data submitted",
		"submission_id", s.ID,
		"name", d.Name,
		"email", d.Email,
		"phone_number", d.PhoneNumber,
		"phone_type", string(d.PhoneType),
		"staff", string(d.Staff),
		"bio", d.Bio,
		"sign_up_for_emails", d.SignUpForEmails,
	)
	return nil
}

// YAML writes each submission as a YAML document.
type YAML struct {
	w io.Writer
}

// NewYAML creates a YAML writer over w.
func NewYAML(w io.Writer) *YAML {
	return &YAML{w: w}
}

func (y *YAML) Name() string { return NameYAML }

func (y *YAML) Write(_ context.Context, s Submission) error {
	enc := yaml.NewEncoder(y.w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encoding: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encoding: %w", err)
	}
	return nil
}
