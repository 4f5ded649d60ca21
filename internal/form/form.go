package form

import (
	"context"
	"fmt"
)

// InputType is the kind of control a change event came from.
type InputType string

const (
	InputText     InputType = "text"
	InputEmail    InputType = "email"
	InputTel      InputType = "tel"
	InputSelect   InputType = "select"
	InputRadio    InputType = "radio"
	InputTextarea InputType = "textarea"
	InputCheckbox InputType = "checkbox"
)

// InputTypeOf returns the control kind used to edit field id.
func InputTypeOf(id FieldID) InputType {
	switch id {
	case FieldEmail:
		return InputEmail
	case FieldPhoneNumber:
		return InputTel
	case FieldPhoneType:
		return InputSelect
	case FieldStaff:
		return InputRadio
	case FieldBio:
		return InputTextarea
	case FieldSignUpForEmails:
		return InputCheckbox
	default:
		return InputText
	}
}

// ChangeEvent describes one edit of one field.
type ChangeEvent struct {
	Name    FieldID
	Value   string
	Type    InputType
	Checked bool // Only read for checkboxes.
}

// Sink receives the data of an accepted submission.
type Sink interface {
	Accept(ctx context.Context, data FormData) error
}

// Form owns the field values and validation messages of one registration
// form. All mutation goes through Change and Submit. A Form is driven by a
// single event loop and is not safe for concurrent use.
type Form struct {
	data      FormData
	errors    ErrorState
	submitted bool
	sink      Sink
}

// New creates a Form with default values that hands accepted submissions to sink.
func New(sink Sink) *Form {
	return &Form{
		errors: DefaultErrors(),
		sink:   sink,
	}
}

// Data returns a copy of the current field values.
func (f *Form) Data() FormData {
	return f.data
}

// Errors returns a copy of the current validation messages.
func (f *Form) Errors() ErrorState {
	return f.errors.Clone()
}

// Submitted reports whether a submission has been attempted. Once set it
// stays set, including after a successful submission resets the fields.
func (f *Form) Submitted() bool {
	return f.submitted
}

// VisibleError returns the message to display under field id: its current
// message once a submission has been attempted, otherwise "".
func (f *Form) VisibleError(id FieldID) string {
	if !f.submitted {
		return ""
	}
	return f.errors[id]
}

// PhoneTypeEnabled reports whether the phone type selector accepts input.
func (f *Form) PhoneTypeEnabled() bool {
	return f.data.PhoneNumber != ""
}

// Change records an edit. Checkbox events store Checked; every other event
// stores Value as is. While the error record holds any entries the edited
// field is re-validated and only its slot is rewritten.
func (f *Form) Change(ev ChangeEvent) error {
	if err := f.set(ev); err != nil {
		return err
	}

	if f.errors.HasEntries() {
		f.errors[ev.Name] = ValidateField(f.data, ev.Name, ev.Value)
	}
	return nil
}

func (f *Form) set(ev ChangeEvent) error {
	if ev.Name == FieldSignUpForEmails {
		if ev.Type != InputCheckbox {
			return fmt.Errorf("%w: %s is a checkbox, got %s", ErrFieldType, ev.Name, ev.Type)
		}
		f.data.SignUpForEmails = ev.Checked
		return nil
	}
	if ev.Type == InputCheckbox {
		return fmt.Errorf("%w: %s is not a checkbox", ErrFieldType, ev.Name)
	}

	switch ev.Name {
	case FieldName:
		f.data.Name = ev.Value
	case FieldEmail:
		f.data.Email = ev.Value
	case FieldPhoneNumber:
		f.data.PhoneNumber = ev.Value
	case FieldPhoneType:
		f.data.PhoneType = PhoneType(ev.Value)
	case FieldStaff:
		f.data.Staff = Staff(ev.Value)
	case FieldBio:
		f.data.Bio = ev.Value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, ev.Name)
	}
	return nil
}

// Load replays data into the form as one change event per field, in
// display order, the way a user filling the form top to bottom would.
func (f *Form) Load(data FormData) error {
	for _, id := range Fields {
		ev := ChangeEvent{Name: id, Type: InputTypeOf(id)}
		if id == FieldSignUpForEmails {
			ev.Checked = data.SignUpForEmails
		} else {
			v, err := data.Value(id)
			if err != nil {
				return err
			}
			ev.Value = v
		}
		if err := f.Change(ev); err != nil {
			return err
		}
	}
	return nil
}

// Submit validates every field and stores the full result. When nothing
// fails the data goes to the sink and the form resets to defaults; Submit
// then reports true. A sink error leaves the form untouched and is returned.
func (f *Form) Submit(ctx context.Context) (bool, error) {
	f.submitted = true

	errs := ValidateAll(f.data)
	f.errors = errs
	if errs.HasErrors() {
		return false, nil
	}

	if f.sink != nil {
		if err := f.sink.Accept(ctx, f.data); err != nil {
			return false, fmt.Errorf("form: submitting: %w", err)
		}
	}

	f.data = FormData{}
	f.errors = DefaultErrors()
	return true, nil
}
