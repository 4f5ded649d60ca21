package tui

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/smileynet/regform/internal/form"
)

// labels holds the prompt text for each field.
var labels = map[form.FieldID]string{
	form.FieldName:            "Name",
	form.FieldEmail:           "Email",
	form.FieldPhoneNumber:     "Phone Number",
	form.FieldPhoneType:       "Phone Type",
	form.FieldStaff:           "Staff",
	form.FieldBio:             "Bio",
	form.FieldSignUpForEmails: "Sign up for email notifications",
}

// Prompter fills the form with one line of input per field. After a
// rejected submission it asks again for the failing fields only.
type Prompter struct {
	form *form.Form
	in   *bufio.Reader
	w    io.Writer
}

// NewPrompter creates a Prompter reading answers from r and writing prompts to w.
func NewPrompter(f *form.Form, r io.Reader, w io.Writer) *Prompter {
	return &Prompter{form: f, in: bufio.NewReader(r), w: w}
}

// Run asks for every field and submits until a submission is accepted.
// Input ending first is an error wrapping io.ErrUnexpectedEOF.
func (p *Prompter) Run(ctx context.Context) error {
	fields := form.Fields
	for {
		for _, id := range fields {
			if err := p.ask(ctx, id); err != nil {
				return err
			}
		}

		ok, err := p.form.Submit(ctx)
		if err != nil {
			return err
		}
		if ok {
			_, _ = fmt.Fprintln(p.w, "Form submitted.")
			return nil
		}

		_, _ = fmt.Fprintln(p.w, "Please correct the following:")
		errs := p.form.Errors()
		fields = errs.Failed()
		for _, id := range fields {
			_, _ = fmt.Fprintf(p.w, "  %s: %s\n", labels[id], p.form.VisibleError(id))
		}
	}
}

// ask prompts for one field until it gets an answer the control would
// accept, then records it as a change.
func (p *Prompter) ask(ctx context.Context, id form.FieldID) error {
	if id == form.FieldPhoneType && !p.form.PhoneTypeEnabled() {
		return nil
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		_, _ = fmt.Fprintf(p.w, "%s%s: ", labels[id], hint(id))
		line, err := p.readLine()
		if err != nil {
			return err
		}

		ev, err := answer(id, line)
		if err != nil {
			_, _ = fmt.Fprintf(p.w, "  %v\n", err)
			continue
		}
		return p.form.Change(ev)
	}
}

// readLine returns the next input line without its line ending. Lines have
// no length limit; overlong answers are left for validation to reject.
func (p *Prompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("tui: reading input: %w", err)
		}
		if line == "" {
			return "", fmt.Errorf("tui: input ended before the form was submitted: %w", io.ErrUnexpectedEOF)
		}
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// hint returns the option list shown after a field's label.
func hint(id form.FieldID) string {
	switch id {
	case form.FieldPhoneNumber:
		return " (123-456-7890)"
	case form.FieldPhoneType:
		return " (home/work/mobile)"
	case form.FieldStaff:
		return " (instructor/student, blank for none)"
	case form.FieldSignUpForEmails:
		return " [y/N]"
	}
	return ""
}

// answer turns a typed line into the change event the field's control
// would emit. Select, radio and checkbox answers must name a real option.
func answer(id form.FieldID, line string) (form.ChangeEvent, error) {
	ev := form.ChangeEvent{Name: id, Type: form.InputTypeOf(id), Value: line}
	switch id {
	case form.FieldPhoneType:
		pt, err := form.ParsePhoneType(line)
		if err != nil {
			return ev, err
		}
		ev.Value = string(pt)
	case form.FieldStaff:
		s, err := form.ParseStaff(line)
		if err != nil {
			return ev, err
		}
		ev.Value = string(s)
	case form.FieldSignUpForEmails:
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes", "true":
			ev.Checked = true
		case "", "n", "no", "false":
			ev.Checked = false
		default:
			return ev, fmt.Errorf("answer y or n, got %q", line)
		}
		ev.Value = "on"
	}
	return ev, nil
}
