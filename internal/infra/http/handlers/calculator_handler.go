package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/sinedis-soft/dionis-next-level-sub001/internal/i18n"
	"github.com/sinedis-soft/dionis-next-level-sub001/internal/usecase"
)

type CalculatorHandler struct {
	calculate *usecase.CalculatePremiumUseCase
}

func NewCalculatorHandler(calculate *usecase.CalculatePremiumUseCase) *CalculatorHandler {
	return &CalculatorHandler{calculate: calculate}
}

// Handle processes POST /api/calculator for the quote widget.
func (h *CalculatorHandler) Handle(w http.ResponseWriter, r *http.Request) {
	locale := i18n.Resolve(r.Header.Get("Accept-Language"))

	var input usecase.CalculatePremiumInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, usecase.SubmitLeadOutput{
			OK:      false,
			Message: i18n.T(locale, i18n.KeyInvalidRequest),
		})
		return
	}

	output, err := h.calculate.Execute(input, locale)
	if err != nil {
		writeDomainError(w, locale, err)
		return
	}

	writeJSON(w, http.StatusOK, output)
}
