package usecase

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// ValidateLeadInput checks the submission against the form contract: every
// field non-empty after trimming and an explicit agreement. The same rules
// run client-side before submit; this pass is the authoritative one.
//
// Deliberately no format validation beyond presence: the original form
// accepted any non-empty email/phone and the sinks tolerate free-form values.
func ValidateLeadInput(input SubmitLeadInput) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(input.FirstName) == "" {
		errors = append(errors, ValidationError{"firstName", "is required"})
	}
	if strings.TrimSpace(input.LastName) == "" {
		errors = append(errors, ValidationError{"lastName", "is required"})
	}
	if strings.TrimSpace(input.Email) == "" {
		errors = append(errors, ValidationError{"email", "is required"})
	}
	if strings.TrimSpace(input.Phone) == "" {
		errors = append(errors, ValidationError{"phone", "is required"})
	}
	if strings.TrimSpace(input.Comment) == "" {
		errors = append(errors, ValidationError{"comment", "is required"})
	}
	if !input.Agree {
		errors = append(errors, ValidationError{"agree", "must be accepted"})
	}

	return errors
}

// defaultPhoneRegion covers the site's audience; numbers already in
// international form parse regardless of it.
const defaultPhoneRegion = "KZ"

// normalizePhone formats the phone in E.164 for the CRM record. Best-effort:
// an unparseable number is forwarded raw rather than rejected.
func normalizePhone(raw string) string {
	num, err := phonenumbers.Parse(strings.TrimSpace(raw), defaultPhoneRegion)
	if err != nil || !phonenumbers.IsValidNumber(num) {
		return strings.TrimSpace(raw)
	}
	return phonenumbers.Format(num, phonenumbers.E164)
}
