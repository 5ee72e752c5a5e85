package usecase

import (
	"context"

	"github.com/sinedis-soft/dionis-next-level-sub001/internal/infra/integration/bitrix"
	"github.com/sinedis-soft/dionis-next-level-sub001/internal/infra/integration/recaptcha"
	"github.com/sinedis-soft/dionis-next-level-sub001/internal/infra/mail"
)

// SubmitLeadInput is the contact-form wire payload. Website is the honeypot:
// hidden on the page, always empty for a human.
type SubmitLeadInput struct {
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Comment        string `json:"comment"`
	Agree          bool   `json:"agree"`
	Website        string `json:"website,omitempty"`
	RecaptchaToken string `json:"recaptchaToken,omitempty"`
}

// SubmitLeadOutput is the single client-visible verdict. OK means "your
// message was accepted", not "it was delivered to CRM and email".
type SubmitLeadOutput struct {
	OK      bool   `json:"ok"`
	Message string `json:"message,omitempty"`
}

// RequestMeta carries best-effort caller context appended to the comment for
// downstream triage. Never shown to the end user.
type RequestMeta struct {
	ClientIP  string
	UserAgent string
}

type CRMGateway interface {
	CreateLead(ctx context.Context, fields bitrix.LeadFields) (int, error)
}

type MailSender interface {
	SendLeadNotification(n mail.LeadNotification) error
}

type CaptchaVerifier interface {
	Verify(ctx context.Context, token, remoteIP string) (recaptcha.Result, error)
}
