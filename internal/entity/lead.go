package entity

import "time"

// Lead is a validated contact-form submission. It is transient: built per
// request, fanned out to the sinks and discarded. There is no persistence and
// no deduplication; a retried client request produces a second lead.
type Lead struct {
	ID          string    `json:"id"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	Comment     string    `json:"comment"`
	SubmittedAt time.Time `json:"submitted_at"`
}

func (l Lead) FullName() string {
	return l.FirstName + " " + l.LastName
}
