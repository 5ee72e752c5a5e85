package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/sinedis-soft/dionis-next-level-sub001/internal/entity"
	"github.com/sinedis-soft/dionis-next-level-sub001/internal/i18n"
	"github.com/sinedis-soft/dionis-next-level-sub001/internal/infra/http/middleware"
	"github.com/sinedis-soft/dionis-next-level-sub001/internal/infra/integration/bitrix"
	"github.com/sinedis-soft/dionis-next-level-sub001/internal/infra/mail"
	"github.com/sinedis-soft/dionis-next-level-sub001/internal/logger"
)

// minCaptchaScore is the confidence threshold below which a verified token
// blocks the request.
const minCaptchaScore = 0.3

const crmSourceID = "WEB"

// SubmitLeadUseCase runs the server-side pipeline: honeypot absorption,
// authoritative validation, optional token verification, then best-effort
// fan-out to the CRM and email sinks. A nil sink means that channel is not
// configured and is skipped.
type SubmitLeadUseCase struct {
	CRM        CRMGateway
	Mail       MailSender
	Verifier   CaptchaVerifier
	Production bool
	SourceTag  string
	Log        *logger.Logger
}

func NewSubmitLeadUseCase(
	crm CRMGateway,
	mailSender MailSender,
	verifier CaptchaVerifier,
	production bool,
	sourceTag string,
	log *logger.Logger,
) *SubmitLeadUseCase {
	return &SubmitLeadUseCase{
		CRM:        crm,
		Mail:       mailSender,
		Verifier:   verifier,
		Production: production,
		SourceTag:  sourceTag,
		Log:        log,
	}
}

// Execute processes one submission. The returned error is a *DomainError for
// user-correctable rejections; sink failures never produce an error. Each
// call is independent: duplicates are not detected and a sink failure is a
// permanent loss for that submission.
func (uc *SubmitLeadUseCase) Execute(ctx context.Context, input SubmitLeadInput, meta RequestMeta) (SubmitLeadOutput, error) {
	// Honeypot before anything else: suspected bot traffic is absorbed with
	// a normal success response so detection is never revealed, regardless
	// of what the other fields contain.
	if strings.TrimSpace(input.Website) != "" {
		uc.Log.BotAbsorbed(meta.ClientIP)
		middleware.RecordLead(middleware.LeadOutcomeAbsorbed)
		return SubmitLeadOutput{OK: true}, nil
	}

	if errs := ValidateLeadInput(input); len(errs) > 0 {
		middleware.RecordLead(middleware.LeadOutcomeValidation)
		return SubmitLeadOutput{}, &DomainError{
			Code:       "VALIDATION_ERROR",
			MessageKey: validationMessageKey(errs),
		}
	}

	if err := uc.verifyToken(ctx, input, meta); err != nil {
		middleware.RecordLead(middleware.LeadOutcomeRobot)
		return SubmitLeadOutput{}, err
	}

	lead := entity.Lead{
		ID:          uuid.NewString(),
		FirstName:   strings.TrimSpace(input.FirstName),
		LastName:    strings.TrimSpace(input.LastName),
		Email:       strings.TrimSpace(input.Email),
		Phone:       strings.TrimSpace(input.Phone),
		Comment:     strings.TrimSpace(input.Comment),
		SubmittedAt: time.Now(),
	}

	uc.Log.LeadAccepted(lead.ID, lead.Email)
	middleware.RecordLead(middleware.LeadOutcomeAccepted)

	uc.dispatch(ctx, lead, meta)

	return SubmitLeadOutput{OK: true}, nil
}

// verifyToken applies the bot-score gate. Verification runs only in
// production with both a secret (a configured Verifier) and a token present.
// A verifier outage is treated as inconclusive and the request proceeds;
// only an affirmative low score blocks.
func (uc *SubmitLeadUseCase) verifyToken(ctx context.Context, input SubmitLeadInput, meta RequestMeta) error {
	if !uc.Production || uc.Verifier == nil || input.RecaptchaToken == "" {
		return nil
	}

	result, err := uc.Verifier.Verify(ctx, input.RecaptchaToken, meta.ClientIP)
	if err != nil {
		uc.Log.VerifierError(meta.ClientIP, err)
		middleware.RecordIntegrationError("recaptcha")
		return nil
	}

	if result.Success && result.Score != nil && *result.Score < minCaptchaScore {
		return &DomainError{
			Code:       "ROBOT_CHECK_FAILED",
			MessageKey: i18n.KeyRobotCheck,
		}
	}

	return nil
}

// dispatch fans the lead out to both sinks concurrently. The sinks are
// independent side channels: any failure is logged and counted, and the
// overall verdict stays positive. No retries, no durable queue.
func (uc *SubmitLeadUseCase) dispatch(ctx context.Context, lead entity.Lead, meta RequestMeta) {
	comment := lead.Comment + uc.triageFooter(lead, meta)

	var g errgroup.Group

	g.Go(func() error {
		if uc.CRM == nil {
			uc.Log.Debug("crm sink not configured, skipping", "submission_id", lead.ID)
			return nil
		}
		_, err := uc.CRM.CreateLead(ctx, bitrix.LeadFields{
			Title:    fmt.Sprintf("Заявка с сайта: %s", lead.FullName()),
			Name:     lead.FirstName,
			LastName: lead.LastName,
			Phone:    normalizePhone(lead.Phone),
			Email:    lead.Email,
			Comments: comment,
			SourceID: crmSourceID,
		})
		if err != nil {
			uc.Log.SinkError("crm", lead.ID, err)
			middleware.RecordSinkError("crm")
		}
		return nil
	})

	g.Go(func() error {
		if uc.Mail == nil {
			uc.Log.Debug("email sink not configured, skipping", "submission_id", lead.ID)
			return nil
		}
		err := uc.Mail.SendLeadNotification(mail.LeadNotification{
			SubmissionID: lead.ID,
			FirstName:    lead.FirstName,
			LastName:     lead.LastName,
			Email:        lead.Email,
			Phone:        lead.Phone,
			Comment:      comment,
			SourceTag:    uc.SourceTag,
		})
		if err != nil {
			uc.Log.SinkError("email", lead.ID, err)
			middleware.RecordSinkError("email")
		}
		return nil
	})

	g.Wait()
}

// triageFooter composes the metadata appended to the comment for the sinks.
func (uc *SubmitLeadUseCase) triageFooter(lead entity.Lead, meta RequestMeta) string {
	return fmt.Sprintf("\n\n---\nSource: %s\nSubmission: %s\nIP: %s\nUser-Agent: %s",
		uc.SourceTag, lead.ID, meta.ClientIP, meta.UserAgent)
}

// validationMessageKey picks the message: the agreement checkbox gets its own
// wording when it is the only thing missing.
func validationMessageKey(errs []ValidationError) i18n.Key {
	for _, e := range errs {
		if e.Field != "agree" {
			return i18n.KeyRequiredFields
		}
	}
	return i18n.KeyAgreeRequired
}
