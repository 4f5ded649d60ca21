// Package tui renders the registration form in the terminal, either as a
// Bubble Tea program or as plain line prompts when no TTY is available.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/smileynet/regform/internal/form"
)

// control identifies a focusable element of the form, in tab order.
type control int

const (
	controlName control = iota
	controlEmail
	controlPhone
	controlPhoneType
	controlStaff
	controlBio
	controlSignUp
	controlSubmit
	controlCount
)

// defaultWidth is used when no width option is given.
const defaultWidth = 60

// Model is the Bubble Tea model for the registration form. It renders the
// state held by a form.Form and turns key presses into change and submit
// calls on it.
type Model struct {
	form *form.Form
	ctx  context.Context

	name  textinput.Model
	email textinput.Model
	phone textinput.Model
	bio   textarea.Model

	focus       control
	staffCursor int
	keys        keyMap
	help        help.Model
	width       int

	status   string
	err      error
	accepted int
	quitting bool
}

// ModelOption configures a Model.
type ModelOption func(*Model)

// WithWidth sets the form width in columns.
func WithWidth(w int) ModelOption {
	return func(m *Model) {
		if w > 0 {
			m.width = w
		}
	}
}

// WithContext sets the context passed to form submissions.
func WithContext(ctx context.Context) ModelOption {
	return func(m *Model) {
		m.ctx = ctx
	}
}

// NewModel creates a Model over f with focus on the first field.
func NewModel(f *form.Form, opts ...ModelOption) Model {
	m := Model{
		form:  f,
		ctx:   context.Background(),
		name:  textinput.New(),
		email: textinput.New(),
		phone: textinput.New(),
		bio:   textarea.New(),
		keys:  defaultKeyMap(),
		help:  help.New(),
		width: defaultWidth,
	}
	for _, opt := range opts {
		opt(&m)
	}

	m.name.Prompt = ""
	m.email.Prompt = ""
	m.phone.Prompt = ""
	m.phone.Placeholder = "123-456-7890"

	m.bio.CharLimit = form.MaxBioLength
	m.bio.ShowLineNumbers = false
	m.bio.SetHeight(4)
	m.bio.SetWidth(m.width - 4)

	m.help.Width = m.width
	m.syncInputs()
	m.setFocus(controlName)
	return m
}

// Init starts the cursor blink.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Accepted returns the number of submissions accepted so far.
func (m Model) Accepted() int {
	return m.accepted
}

// Err returns the error from the last failed delivery, if any.
func (m Model) Err() error {
	return m.err
}

// Update handles incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		w := msg.Width
		if w > m.width || w <= 0 {
			w = m.width
		}
		m.help.Width = w
		m.bio.SetWidth(w - 4)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.updateFocused(msg)
}

// handleKey routes global bindings first, then control-specific keys.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Submit):
		return m.submit()
	case key.Matches(msg, m.keys.Next):
		cmd := m.setFocus(m.step(1))
		return m, cmd
	case key.Matches(msg, m.keys.Prev):
		cmd := m.setFocus(m.step(-1))
		return m, cmd
	}

	switch m.focus {
	case controlName, controlEmail, controlPhone:
		if key.Matches(msg, m.keys.Enter) {
			cmd := m.setFocus(m.step(1))
			return m, cmd
		}
	case controlPhoneType:
		switch {
		case key.Matches(msg, m.keys.Left):
			return m.cyclePhoneType(-1)
		case key.Matches(msg, m.keys.Right):
			return m.cyclePhoneType(1)
		case key.Matches(msg, m.keys.Enter):
			cmd := m.setFocus(m.step(1))
			return m, cmd
		}
		return m, nil
	case controlStaff:
		switch {
		case key.Matches(msg, m.keys.Left):
			return m.pickStaff(m.staffCursor - 1)
		case key.Matches(msg, m.keys.Right):
			return m.pickStaff(m.staffCursor + 1)
		case key.Matches(msg, m.keys.Toggle):
			return m.pickStaff(m.staffCursor)
		case key.Matches(msg, m.keys.Enter):
			cmd := m.setFocus(m.step(1))
			return m, cmd
		}
		return m, nil
	case controlSignUp:
		switch {
		case key.Matches(msg, m.keys.Toggle):
			return m.change(form.ChangeEvent{
				Name:    form.FieldSignUpForEmails,
				Type:    form.InputCheckbox,
				Value:   "on",
				Checked: !m.form.Data().SignUpForEmails,
			}), nil
		case key.Matches(msg, m.keys.Enter):
			cmd := m.setFocus(m.step(1))
			return m, cmd
		}
		return m, nil
	case controlSubmit:
		if key.Matches(msg, m.keys.Enter) || key.Matches(msg, m.keys.Toggle) {
			return m.submit()
		}
		return m, nil
	}

	return m.updateFocused(msg)
}

// updateFocused passes msg to the focused text control and reports any
// resulting edit to the form.
func (m Model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case controlName:
		before := m.name.Value()
		m.name, cmd = m.name.Update(msg)
		m = m.textChanged(form.FieldName, before, m.name.Value())
	case controlEmail:
		before := m.email.Value()
		m.email, cmd = m.email.Update(msg)
		m = m.textChanged(form.FieldEmail, before, m.email.Value())
	case controlPhone:
		before := m.phone.Value()
		m.phone, cmd = m.phone.Update(msg)
		m = m.textChanged(form.FieldPhoneNumber, before, m.phone.Value())
	case controlBio:
		before := m.bio.Value()
		m.bio, cmd = m.bio.Update(msg)
		m = m.textChanged(form.FieldBio, before, m.bio.Value())
	}
	return m, cmd
}

func (m Model) textChanged(id form.FieldID, before, after string) Model {
	if before == after {
		return m
	}
	return m.change(form.ChangeEvent{Name: id, Value: after, Type: form.InputTypeOf(id)})
}

// change forwards an edit to the form. The controls only produce events
// for known fields, so an error here is a programming mistake surfaced in
// the status line.
func (m Model) change(ev form.ChangeEvent) Model {
	if err := m.form.Change(ev); err != nil {
		m.err = err
	}
	return m
}

func (m Model) cyclePhoneType(delta int) (tea.Model, tea.Cmd) {
	if !m.form.PhoneTypeEnabled() {
		return m, nil
	}
	cur := 0
	for i, p := range form.PhoneTypes {
		if p == m.form.Data().PhoneType {
			cur = i
		}
	}
	n := len(form.PhoneTypes)
	next := form.PhoneTypes[((cur+delta)%n+n)%n]
	return m.change(form.ChangeEvent{
		Name:  form.FieldPhoneType,
		Value: string(next),
		Type:  form.InputSelect,
	}), nil
}

func (m Model) pickStaff(idx int) (tea.Model, tea.Cmd) {
	if idx < 0 {
		idx = 0
	}
	if idx >= len(form.StaffRoles) {
		idx = len(form.StaffRoles) - 1
	}
	m.staffCursor = idx
	return m.change(form.ChangeEvent{
		Name:  form.FieldStaff,
		Value: string(form.StaffRoles[idx]),
		Type:  form.InputRadio,
	}), nil
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	m.status = ""
	m.err = nil

	ok, err := m.form.Submit(m.ctx)
	if err != nil {
		m.err = err
		return m, nil
	}
	if !ok {
		return m, nil
	}

	m.accepted++
	m.status = fmt.Sprintf("Submitted (%d).", m.accepted)
	m.syncInputs()
	cmd := m.setFocus(controlName)
	return m, cmd
}

// syncInputs copies the form's values into the text controls.
func (m *Model) syncInputs() {
	d := m.form.Data()
	m.name.SetValue(d.Name)
	m.email.SetValue(d.Email)
	m.phone.SetValue(d.PhoneNumber)
	m.bio.SetValue(d.Bio)
	m.staffCursor = 0
	for i, r := range form.StaffRoles {
		if r == d.Staff {
			m.staffCursor = i
		}
	}
}

// step returns the next focusable control in direction dir, skipping the
// phone type selector while it is disabled.
func (m Model) step(dir int) control {
	c := m.focus
	for i := 0; i < int(controlCount); i++ {
		c = control(((int(c)+dir)%int(controlCount) + int(controlCount)) % int(controlCount))
		if c == controlPhoneType && !m.form.PhoneTypeEnabled() {
			continue
		}
		return c
	}
	return m.focus
}

// setFocus moves focus to c and returns the focused control's command.
func (m *Model) setFocus(c control) tea.Cmd {
	m.focus = c
	m.name.Blur()
	m.email.Blur()
	m.phone.Blur()
	m.bio.Blur()

	switch c {
	case controlName:
		return m.name.Focus()
	case controlEmail:
		return m.email.Focus()
	case controlPhone:
		return m.phone.Focus()
	case controlBio:
		return m.bio.Focus()
	}
	return nil
}

// View renders the form.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Registration"))
	b.WriteString("\n")

	m.writeField(&b, "Name:", controlName, m.name.View(), form.FieldName)
	m.writeField(&b, "Email:", controlEmail, m.email.View(), form.FieldEmail)
	m.writeField(&b, "Phone Number:", controlPhone, m.phone.View(), form.FieldPhoneNumber)
	m.writeField(&b, "Phone Type:", controlPhoneType, m.viewPhoneType(), form.FieldPhoneType)
	m.writeField(&b, "Staff:", controlStaff, m.viewStaff(), form.FieldStaff)
	m.writeField(&b, "Bio:", controlBio, m.bio.View(), form.FieldBio)
	m.writeField(&b, "Sign up for email notifications:", controlSignUp, m.viewSignUp(), form.FieldSignUpForEmails)

	b.WriteString(buttonStyle(m.focus == controlSubmit).Render("Submit"))
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(errorStyle.Render("Error: " + m.err.Error()))
		b.WriteString("\n")
	} else if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}

	b.WriteString(m.help.View(m.keys))
	return lipgloss.NewStyle().Width(m.width).Render(b.String())
}

// writeField renders a label, its control, and the field's visible error.
func (m Model) writeField(b *strings.Builder, text string, c control, body string, id form.FieldID) {
	b.WriteString(label(text, m.focus == c))
	b.WriteString("\n  ")
	b.WriteString(body)
	b.WriteString("\n")
	if msg := m.form.VisibleError(id); msg != "" {
		b.WriteString(errorStyle.Render(msg))
		b.WriteString("\n")
	}
}

func (m Model) viewPhoneType() string {
	text := "< " + m.form.Data().PhoneType.Label() + " >"
	if !m.form.PhoneTypeEnabled() {
		return disabledStyle.Render(text)
	}
	return text
}

func (m Model) viewStaff() string {
	picked := m.form.Data().Staff
	opts := make([]string, len(form.StaffRoles))
	for i, r := range form.StaffRoles {
		mark := "( )"
		if r == picked {
			mark = "(•)"
		}
		opt := mark + " " + r.Label()
		if m.focus == controlStaff && i == m.staffCursor {
			opt = focusedStyle.Render(opt)
		}
		opts[i] = opt
	}
	return strings.Join(opts, "  ")
}

func (m Model) viewSignUp() string {
	if m.form.Data().SignUpForEmails {
		return "[x]"
	}
	return "[ ]"
}
