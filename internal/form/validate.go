package form

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// MaxBioLength is the longest bio, in characters, that passes validation.
const MaxBioLength = 280

// Validation messages.
const (
	MsgNameRequired      = "Name is required."
	MsgEmailRequired     = "Email is required"
	MsgEmailInvalid      = "Invalid email address."
	MsgPhoneNumberFormat = "Invalid phone number. Format: 123-456-7890"
	MsgPhoneTypeRequired = "Please select a phone type."
	MsgBioTooLong        = "Bio must be 280 characters or less."
)

var (
	// Whitespace includes \v, Unicode separators and the BOM, not only RE2's \s.
	emailPattern = regexp.MustCompile(`^[^\s\v\p{Z}\x{FEFF}@]+@[^\s\v\p{Z}\x{FEFF}@]+\.[^\s\v\p{Z}\x{FEFF}@]+$`)
	phonePattern = regexp.MustCompile(`^\d{3}-\d{3}-\d{4}$`)
)

// ValidateName requires a name with at least one non-space character.
func ValidateName(name string) string {
	if strings.TrimSpace(name) == "" {
		return MsgNameRequired
	}
	return ""
}

// ValidateEmail requires an address shaped like local@domain.tld.
func ValidateEmail(email string) string {
	if email == "" {
		return MsgEmailRequired
	}
	if !emailPattern.MatchString(email) {
		return MsgEmailInvalid
	}
	return ""
}

// ValidatePhoneNumber checks the NNN-NNN-NNNN format. The phone number is
// optional, so an empty value passes.
func ValidatePhoneNumber(phoneNumber string) string {
	if phoneNumber != "" && !phonePattern.MatchString(phoneNumber) {
		return MsgPhoneNumberFormat
	}
	return ""
}

// ValidatePhoneType requires a phone type iff a phone number was given.
func ValidatePhoneType(phoneNumber string, phoneType PhoneType) string {
	if phoneNumber != "" && phoneType == PhoneTypeNone {
		return MsgPhoneTypeRequired
	}
	return ""
}

// ValidateBio limits the bio to MaxBioLength characters.
func ValidateBio(bio string) string {
	if utf8.RuneCountInString(bio) > MaxBioLength {
		return MsgBioTooLong
	}
	return ""
}

// fieldValidator checks a candidate value for one field. data is the form
// state at the time of the check, for rules that depend on a sibling field.
type fieldValidator func(data FormData, value string) string

// validators is the fixed dispatch table used by ValidateField. Fields
// without an entry always pass.
var validators = map[FieldID]fieldValidator{
	FieldName: func(_ FormData, v string) string {
		return ValidateName(v)
	},
	FieldEmail: func(_ FormData, v string) string {
		return ValidateEmail(v)
	},
	FieldPhoneNumber: func(_ FormData, v string) string {
		return ValidatePhoneNumber(v)
	},
	FieldPhoneType: func(d FormData, v string) string {
		return ValidatePhoneType(d.PhoneNumber, PhoneType(v))
	},
	FieldBio: func(_ FormData, v string) string {
		return ValidateBio(v)
	},
}

func init() {
	for _, id := range ValidatedFields {
		if _, ok := validators[id]; !ok {
			panic("form: no validator registered for " + string(id))
		}
	}
}

// ValidateField validates value as the new content of field id. The phone
// type check reads the phone number from data rather than from value.
func ValidateField(data FormData, id FieldID, value string) string {
	v, ok := validators[id]
	if !ok {
		return ""
	}
	return v(data, value)
}

// ValidateAll runs every validator against data and returns a complete record.
func ValidateAll(data FormData) ErrorState {
	return ErrorState{
		FieldName:        ValidateName(data.Name),
		FieldEmail:       ValidateEmail(data.Email),
		FieldPhoneNumber: ValidatePhoneNumber(data.PhoneNumber),
		FieldPhoneType:   ValidatePhoneType(data.PhoneNumber, data.PhoneType),
		FieldBio:         ValidateBio(data.Bio),
	}
}
