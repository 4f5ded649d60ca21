package form

import (
	"strings"
	"testing"
)

func TestValidateName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", MsgNameRequired},
		{"spaces", "   ", MsgNameRequired},
		{"tabs and newlines", "\t\n ", MsgNameRequired},
		{"plain", "Jo", ""},
		{"padded", "  Jo  ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidateName(tt.input); got != tt.want {
				t.Errorf("ValidateName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", MsgEmailRequired},
		{"a@b.co", ""},
		{"jo@x.com", ""},
		{"first.last@sub.example.org", ""},
		{"plain", MsgEmailInvalid},
		{"a@b", MsgEmailInvalid},
		{"@b.co", MsgEmailInvalid},
		{"a@.co", MsgEmailInvalid},
		{"a@b.", MsgEmailInvalid},
		{"a b@c.co", MsgEmailInvalid},
		{"a@@b.co", MsgEmailInvalid},
		{" a@b.co", MsgEmailInvalid},
		{"a\vb@c.co", MsgEmailInvalid},
		{"a\u00a0b@c.co", MsgEmailInvalid},
		{"a@b\u2003c.co", MsgEmailInvalid},
		{"a@b.co\u2028", MsgEmailInvalid},
		{"\ufeffa@b.co", MsgEmailInvalid},
		{"josé@x.com", ""},
	}
	for _, tt := range tests {
		if got := ValidateEmail(tt.input); got != tt.want {
			t.Errorf("ValidateEmail(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestValidatePhoneNumber(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"123-456-7890", ""},
		{"555-123-4567", ""},
		{"1234567890", MsgPhoneNumberFormat},
		{"123-4567-890", MsgPhoneNumberFormat},
		{"123-456-78901", MsgPhoneNumberFormat},
		{"(123) 456-7890", MsgPhoneNumberFormat},
		{"abc-def-ghij", MsgPhoneNumberFormat},
		{" 123-456-7890", MsgPhoneNumberFormat},
		{"-", MsgPhoneNumberFormat},
	}
	for _, tt := range tests {
		if got := ValidatePhoneNumber(tt.input); got != tt.want {
			t.Errorf("ValidatePhoneNumber(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestValidatePhoneType(t *testing.T) {
	tests := []struct {
		phone string
		pt    PhoneType
		want  string
	}{
		{"", PhoneTypeNone, ""},
		{"", PhoneTypeHome, ""},
		{"", PhoneType("anything"), ""},
		{"123-456-7890", PhoneTypeNone, MsgPhoneTypeRequired},
		{"123-456-7890", PhoneTypeHome, ""},
		{"123-456-7890", PhoneTypeMobile, ""},
		// The type rule only looks at presence of a number, not its format.
		{"bogus", PhoneTypeNone, MsgPhoneTypeRequired},
	}
	for _, tt := range tests {
		if got := ValidatePhoneType(tt.phone, tt.pt); got != tt.want {
			t.Errorf("ValidatePhoneType(%q, %q) = %q, want %q", tt.phone, tt.pt, got, tt.want)
		}
	}
}

func TestValidateBio(t *testing.T) {
	tests := []struct {
		name string
		bio  string
		want string
	}{
		{"empty", "", ""},
		{"short", "hi", ""},
		{"at limit", strings.Repeat("x", MaxBioLength), ""},
		{"one over", strings.Repeat("x", MaxBioLength+1), MsgBioTooLong},
		{"multibyte at limit", strings.Repeat("é", MaxBioLength), ""},
		{"multibyte over", strings.Repeat("é", MaxBioLength+1), MsgBioTooLong},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidateBio(tt.bio); got != tt.want {
				t.Errorf("ValidateBio(len %d) = %q, want %q", len(tt.bio), got, tt.want)
			}
		})
	}
}

func TestValidators_CoverValidatedFields(t *testing.T) {
	for _, id := range ValidatedFields {
		if _, ok := validators[id]; !ok {
			t.Errorf("no validator for %q", id)
		}
	}
	if len(validators) != len(ValidatedFields) {
		t.Errorf("validators has %d entries, want %d", len(validators), len(ValidatedFields))
	}
}

func TestValidateField_Dispatch(t *testing.T) {
	data := FormData{PhoneNumber: "123-456-7890"}

	tests := []struct {
		id    FieldID
		value string
		want  string
	}{
		{FieldName, "", MsgNameRequired},
		{FieldEmail, "nope", MsgEmailInvalid},
		{FieldPhoneNumber, "12", MsgPhoneNumberFormat},
		{FieldPhoneType, "", MsgPhoneTypeRequired},
		{FieldPhoneType, "work", ""},
		{FieldBio, strings.Repeat("b", MaxBioLength+1), MsgBioTooLong},
		{FieldStaff, "", ""},
		{FieldSignUpForEmails, "on", ""},
		{FieldID("unknown"), "", ""},
	}
	for _, tt := range tests {
		if got := ValidateField(data, tt.id, tt.value); got != tt.want {
			t.Errorf("ValidateField(%q, %q) = %q, want %q", tt.id, tt.value, got, tt.want)
		}
	}
}

func TestValidateField_PhoneTypeReadsPhoneFromState(t *testing.T) {
	// Given: no phone number in the form state
	data := FormData{}

	// Then: an unset phone type passes regardless of the value passed in
	if got := ValidateField(data, FieldPhoneType, ""); got != "" {
		t.Errorf("ValidateField(phoneType) with empty phone = %q, want empty", got)
	}
}

func TestValidateAll_EmptyForm(t *testing.T) {
	errs := ValidateAll(FormData{})

	want := ErrorState{
		FieldName:        MsgNameRequired,
		FieldEmail:       MsgEmailRequired,
		FieldPhoneNumber: "",
		FieldPhoneType:   "",
		FieldBio:         "",
	}
	if len(errs) != len(want) {
		t.Fatalf("ValidateAll() has %d entries, want %d", len(errs), len(want))
	}
	for id, msg := range want {
		if errs[id] != msg {
			t.Errorf("errs[%s] = %q, want %q", id, errs[id], msg)
		}
	}
}

func TestValidateAll_Idempotent(t *testing.T) {
	data := FormData{Email: "bad", PhoneNumber: "555-123-4567", Bio: strings.Repeat("z", 300)}

	first := ValidateAll(data)
	second := ValidateAll(data)
	for _, id := range ValidatedFields {
		if first[id] != second[id] {
			t.Errorf("%s: first = %q, second = %q", id, first[id], second[id])
		}
	}
}

func TestParsePhoneType(t *testing.T) {
	tests := []struct {
		input   string
		want    PhoneType
		wantErr bool
	}{
		{"", PhoneTypeNone, false},
		{"home", PhoneTypeHome, false},
		{"Work", PhoneTypeWork, false},
		{" mobile ", PhoneTypeMobile, false},
		{"cell", PhoneTypeNone, true},
	}
	for _, tt := range tests {
		got, err := ParsePhoneType(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParsePhoneType(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParsePhoneType(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestParseStaff(t *testing.T) {
	tests := []struct {
		input   string
		want    Staff
		wantErr bool
	}{
		{"", StaffNone, false},
		{"instructor", StaffInstructor, false},
		{"STUDENT", StaffStudent, false},
		{"admin", StaffNone, true},
	}
	for _, tt := range tests {
		got, err := ParseStaff(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseStaff(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseStaff(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
