package mail

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderBodies(t *testing.T) {
	n := LeadNotification{
		SubmissionID: "sub-1",
		FirstName:    "Ivan",
		LastName:     "Petrov",
		Email:        "ivan@example.com",
		Phone:        "+77270000000",
		Comment:      "Нужна страховка на авто",
		SourceTag:    "dionis-site",
	}

	text, html, err := renderBodies(n)

	assert.NoError(t, err)
	assert.Contains(t, text, "Ivan Petrov")
	assert.Contains(t, text, "ivan@example.com")
	assert.Contains(t, text, "Нужна страховка на авто")
	assert.Contains(t, text, "dionis-site")
	assert.Contains(t, html, "<b>Email:</b> ivan@example.com")
	assert.Contains(t, html, "sub-1")
}

func TestRenderBodiesEscapesHTML(t *testing.T) {
	n := LeadNotification{
		FirstName: "Ivan",
		LastName:  "Petrov",
		Comment:   `<script>alert("x")</script>`,
	}

	text, html, err := renderBodies(n)

	assert.NoError(t, err)
	assert.Contains(t, text, `<script>`)
	assert.NotContains(t, html, `<script>alert`)
}
