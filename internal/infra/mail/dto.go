package mail

// LeadNotification is the data rendered into the notification email sent to
// the office inbox for each accepted submission.
type LeadNotification struct {
	SubmissionID string
	FirstName    string
	LastName     string
	Email        string
	Phone        string
	Comment      string
	SourceTag    string
}

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	To       string
}
