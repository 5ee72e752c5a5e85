package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateLeadInputAllValid(t *testing.T) {
	errs := ValidateLeadInput(validInput())
	assert.Empty(t, errs)
}

func TestValidateLeadInputReportsField(t *testing.T) {
	input := validInput()
	input.Phone = "  "

	errs := ValidateLeadInput(input)

	assert.Len(t, errs, 1)
	assert.Equal(t, "phone", errs[0].Field)
}

func TestValidateLeadInputAgreeRequired(t *testing.T) {
	input := validInput()
	input.Agree = false

	errs := ValidateLeadInput(input)

	assert.Len(t, errs, 1)
	assert.Equal(t, "agree", errs[0].Field)
}

func TestValidateLeadInputCollectsAll(t *testing.T) {
	errs := ValidateLeadInput(SubmitLeadInput{})
	assert.Len(t, errs, 6)
}

func TestNormalizePhone(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"+77012345678", "+77012345678"},
		{"8 (701) 234-56-78", "+77012345678"},
		{" +7 701 234 56 78 ", "+77012345678"},
		// Unparseable numbers pass through untouched.
		{"not a phone", "not a phone"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, normalizePhone(tc.in), "input %q", tc.in)
	}
}
