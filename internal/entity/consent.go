package entity

// ConsentDecision is the user's choice about non-essential (analytics and
// advertising) data collection. It is persisted in a single browser cookie;
// everything in memory is a cached read of that cookie.
type ConsentDecision string

const (
	ConsentAccepted  ConsentDecision = "accepted"
	ConsentRejected  ConsentDecision = "rejected"
	ConsentUndecided ConsentDecision = "undecided"
)

// ParseConsentDecision maps a stored value to a decision. Anything absent or
// malformed degrades to Undecided so the prompt is shown again, never to
// Accepted.
func ParseConsentDecision(raw string) ConsentDecision {
	switch raw {
	case string(ConsentAccepted):
		return ConsentAccepted
	case string(ConsentRejected):
		return ConsentRejected
	default:
		return ConsentUndecided
	}
}

func (d ConsentDecision) Decided() bool {
	return d == ConsentAccepted || d == ConsentRejected
}

// Enabled reports whether third-party scripts may load under this decision.
func (d ConsentDecision) Enabled() bool {
	return d == ConsentAccepted
}
