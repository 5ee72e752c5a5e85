package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/sinedis-soft/dionis-next-level-sub001/internal/consent"
	"github.com/sinedis-soft/dionis-next-level-sub001/internal/entity"
	"github.com/sinedis-soft/dionis-next-level-sub001/internal/i18n"
	"github.com/sinedis-soft/dionis-next-level-sub001/internal/infra/http/middleware"
)

type ConsentHandler struct {
	store *consent.Store
	bus   *consent.Bus
}

func NewConsentHandler(store *consent.Store, bus *consent.Bus) *ConsentHandler {
	return &ConsentHandler{store: store, bus: bus}
}

type consentResponse struct {
	OK       bool   `json:"ok"`
	Decision string `json:"decision"`
	Message  string `json:"message,omitempty"`
}

type writeConsentRequest struct {
	Decision string `json:"decision"`
}

// HandleRead returns the persisted decision; undecided means the banner
// should be shown.
func (h *ConsentHandler) HandleRead(w http.ResponseWriter, r *http.Request) {
	d := h.store.Read(r)
	writeJSON(w, http.StatusOK, consentResponse{OK: true, Decision: string(d)})
}

// HandleWrite persists an explicit accept/reject and broadcasts it so every
// mounted observer resynchronizes without a reload.
func (h *ConsentHandler) HandleWrite(w http.ResponseWriter, r *http.Request) {
	locale := i18n.Resolve(r.Header.Get("Accept-Language"))

	var req writeConsentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, consentResponse{
			OK:      false,
			Message: i18n.T(locale, i18n.KeyInvalidRequest),
		})
		return
	}

	decision := entity.ParseConsentDecision(req.Decision)
	if !decision.Decided() {
		writeJSON(w, http.StatusBadRequest, consentResponse{
			OK:      false,
			Message: i18n.T(locale, i18n.KeyInvalidRequest),
		})
		return
	}

	h.store.Write(w, decision)
	h.bus.Publish(decision)
	middleware.RecordConsent(string(decision))

	writeJSON(w, http.StatusOK, consentResponse{OK: true, Decision: string(decision)})
}
