// Package form holds the registration form state: the field values, the
// per-field validation messages, and the change and submit operations that
// are the only way either of them is mutated.
package form

import (
	"errors"
	"fmt"
	"strings"
)

// FieldID identifies a form field by its input name.
type FieldID string

const (
	FieldName            FieldID = "name"
	FieldEmail           FieldID = "email"
	FieldPhoneNumber     FieldID = "phoneNumber"
	FieldPhoneType       FieldID = "phoneType"
	FieldStaff           FieldID = "staff"
	FieldBio             FieldID = "bio"
	FieldSignUpForEmails FieldID = "signUpForEmails"
)

// Fields lists every field in display order.
var Fields = []FieldID{
	FieldName,
	FieldEmail,
	FieldPhoneNumber,
	FieldPhoneType,
	FieldStaff,
	FieldBio,
	FieldSignUpForEmails,
}

// ValidatedFields lists the fields that carry a validator, in display order.
var ValidatedFields = []FieldID{
	FieldName,
	FieldEmail,
	FieldPhoneNumber,
	FieldPhoneType,
	FieldBio,
}

// ErrUnknownField is returned when a change event names a field the form does not have.
var ErrUnknownField = errors.New("form: unknown field")

// ErrFieldType is returned when a change event's input type does not fit the field.
var ErrFieldType = errors.New("form: input type does not match field")

// PhoneType is the selected kind of phone number. The zero value means unset.
type PhoneType string

const (
	PhoneTypeNone   PhoneType = ""
	PhoneTypeHome   PhoneType = "home"
	PhoneTypeWork   PhoneType = "work"
	PhoneTypeMobile PhoneType = "mobile"
)

// PhoneTypes lists the selectable phone types, unset first.
var PhoneTypes = []PhoneType{PhoneTypeNone, PhoneTypeHome, PhoneTypeWork, PhoneTypeMobile}

// Label returns the option text shown for the phone type.
func (p PhoneType) Label() string {
	switch p {
	case PhoneTypeHome:
		return "Home"
	case PhoneTypeWork:
		return "Work"
	case PhoneTypeMobile:
		return "Mobile"
	case PhoneTypeNone:
		return "--Please choose an option--"
	default:
		return string(p)
	}
}

// ParsePhoneType maps an option value to a PhoneType.
func ParsePhoneType(s string) (PhoneType, error) {
	v := PhoneType(strings.ToLower(strings.TrimSpace(s)))
	for _, p := range PhoneTypes {
		if v == p {
			return p, nil
		}
	}
	return PhoneTypeNone, fmt.Errorf("form: invalid phone type %q (want home, work or mobile)", s)
}

// Staff is the registrant's role. The zero value means no role picked.
type Staff string

const (
	StaffNone       Staff = ""
	StaffInstructor Staff = "instructor"
	StaffStudent    Staff = "student"
)

// StaffRoles lists the radio options in display order.
var StaffRoles = []Staff{StaffInstructor, StaffStudent}

// Label returns the option text shown for the role.
func (s Staff) Label() string {
	switch s {
	case StaffInstructor:
		return "Instructor"
	case StaffStudent:
		return "Student"
	default:
		return string(s)
	}
}

// ParseStaff maps an option value to a Staff role.
func ParseStaff(s string) (Staff, error) {
	v := Staff(strings.ToLower(strings.TrimSpace(s)))
	if v == StaffNone {
		return StaffNone, nil
	}
	for _, r := range StaffRoles {
		if v == r {
			return r, nil
		}
	}
	return StaffNone, fmt.Errorf("form: invalid staff role %q (want instructor or student)", s)
}

// FormData holds the current value of every field.
type FormData struct {
	Name            string    `json:"name" yaml:"name"`
	Email           string    `json:"email" yaml:"email"`
	PhoneNumber     string    `json:"phoneNumber" yaml:"phone_number"`
	PhoneType       PhoneType `json:"phoneType" yaml:"phone_type"`
	Staff           Staff     `json:"staff" yaml:"staff"`
	Bio             string    `json:"bio" yaml:"bio"`
	SignUpForEmails bool      `json:"signUpForEmails" yaml:"sign_up_for_emails"`
}

// Value returns the string form of a field's value. Booleans render as
// "true" or "false".
func (d FormData) Value(id FieldID) (string, error) {
	switch id {
	case FieldName:
		return d.Name, nil
	case FieldEmail:
		return d.Email, nil
	case FieldPhoneNumber:
		return d.PhoneNumber, nil
	case FieldPhoneType:
		return string(d.PhoneType), nil
	case FieldStaff:
		return string(d.Staff), nil
	case FieldBio:
		return d.Bio, nil
	case FieldSignUpForEmails:
		if d.SignUpForEmails {
			return "true", nil
		}
		return "false", nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownField, id)
}

// ErrorState maps a field to its latest validation message. An empty
// message means the field passed. Presence of a key only records that the
// field has been validated at least once.
type ErrorState map[FieldID]string

// DefaultErrors returns the initial error record: every validated field
// present with an empty message.
func DefaultErrors() ErrorState {
	errs := make(ErrorState, len(ValidatedFields))
	for _, id := range ValidatedFields {
		errs[id] = ""
	}
	return errs
}

// Get returns the message for id, or "" when there is none.
func (e ErrorState) Get(id FieldID) string {
	return e[id]
}

// HasEntries reports whether any field has a slot in the record, whatever
// its message.
func (e ErrorState) HasEntries() bool {
	return len(e) > 0
}

// HasErrors reports whether any field holds a non-empty message.
func (e ErrorState) HasErrors() bool {
	for _, msg := range e {
		if msg != "" {
			return true
		}
	}
	return false
}

// Failed returns the fields with non-empty messages in display order.
func (e ErrorState) Failed() []FieldID {
	var ids []FieldID
	for _, id := range Fields {
		if e[id] != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

// Clone returns an independent copy.
func (e ErrorState) Clone() ErrorState {
	c := make(ErrorState, len(e))
	for k, v := range e {
		c[k] = v
	}
	return c
}

// ValidationError reports a submission rejected by one or more validators.
type ValidationError struct {
	Errors ErrorState
}

func (e *ValidationError) Error() string {
	failed := e.Errors.Failed()
	names := make([]string, len(failed))
	for i, id := range failed {
		names[i] = string(id)
	}
	return fmt.Sprintf("form: %d invalid field(s): %s", len(failed), strings.Join(names, ", "))
}
