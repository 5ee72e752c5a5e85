package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"golang.org/x/text/language"

	"github.com/sinedis-soft/dionis-next-level-sub001/internal/i18n"
	"github.com/sinedis-soft/dionis-next-level-sub001/internal/infra/http/middleware"
	"github.com/sinedis-soft/dionis-next-level-sub001/internal/usecase"
)

type LeadHandler struct {
	submitLead *usecase.SubmitLeadUseCase
}

func NewLeadHandler(submitLead *usecase.SubmitLeadUseCase) *LeadHandler {
	return &LeadHandler{submitLead: submitLead}
}

// Handle processes POST /api/contact. Everything below the validation
// boundary (verifier outages, sink failures) is contained server-side; the
// client only ever sees ok, a localized 400 message, or a generic 500.
func (h *LeadHandler) Handle(w http.ResponseWriter, r *http.Request) {
	locale := i18n.Resolve(r.Header.Get("Accept-Language"))

	var input usecase.SubmitLeadInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, usecase.SubmitLeadOutput{
			OK:      false,
			Message: i18n.T(locale, i18n.KeyInvalidRequest),
		})
		return
	}

	meta := usecase.RequestMeta{
		ClientIP:  middleware.ClientIP(r),
		UserAgent: r.UserAgent(),
	}

	output, err := h.submitLead.Execute(r.Context(), input, meta)
	if err != nil {
		writeDomainError(w, locale, err)
		return
	}

	writeJSON(w, http.StatusOK, output)
}

func writeDomainError(w http.ResponseWriter, locale language.Tag, err error) {
	var domainErr *usecase.DomainError
	if errors.As(err, &domainErr) {
		writeJSON(w, http.StatusBadRequest, usecase.SubmitLeadOutput{
			OK:      false,
			Message: i18n.T(locale, domainErr.MessageKey),
		})
		return
	}

	writeJSON(w, http.StatusInternalServerError, usecase.SubmitLeadOutput{
		OK:      false,
		Message: i18n.T(locale, i18n.KeyServerError),
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
