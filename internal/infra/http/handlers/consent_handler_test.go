package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sinedis-soft/dionis-next-level-sub001/internal/consent"
	"github.com/sinedis-soft/dionis-next-level-sub001/internal/entity"
)

func newConsentHandler() (*ConsentHandler, *consent.Store, *consent.Bus) {
	store := consent.NewStore("cookie_consent")
	bus := consent.NewBus()
	return NewConsentHandler(store, bus), store, bus
}

func TestConsentReadUndecidedOnFirstVisit(t *testing.T) {
	h, _, _ := newConsentHandler()

	req := httptest.NewRequest("GET", "/api/consent", nil)
	w := httptest.NewRecorder()
	h.HandleRead(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var res consentResponse
	json.NewDecoder(w.Body).Decode(&res)
	assert.Equal(t, "undecided", res.Decision)
}

// Accept-all flow: decision persists, observers converge via broadcast.
func TestConsentWriteAcceptBroadcasts(t *testing.T) {
	h, store, bus := newConsentHandler()

	decisions, cancel := bus.Subscribe()
	defer cancel()

	body, _ := json.Marshal(writeConsentRequest{Decision: "accepted"})
	req := httptest.NewRequest("POST", "/api/consent", bytes.NewReader(body))
	w := httptest.NewRecorder()
	h.HandleWrite(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	cookies := w.Result().Cookies()
	assert.Len(t, cookies, 1)
	assert.Equal(t, "accepted", cookies[0].Value)

	assert.Equal(t, entity.ConsentAccepted, <-decisions)

	// Subsequent reads return the written value.
	readReq := httptest.NewRequest("GET", "/api/consent", nil)
	readReq.AddCookie(cookies[0])
	assert.Equal(t, entity.ConsentAccepted, store.Read(readReq))
}

func TestConsentWriteRejectsOtherValues(t *testing.T) {
	h, _, bus := newConsentHandler()

	decisions, cancel := bus.Subscribe()
	defer cancel()

	for _, v := range []string{"undecided", "maybe", ""} {
		body, _ := json.Marshal(writeConsentRequest{Decision: v})
		req := httptest.NewRequest("POST", "/api/consent", bytes.NewReader(body))
		w := httptest.NewRecorder()
		h.HandleWrite(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code, "decision %q", v)
		assert.Empty(t, w.Result().Cookies())
	}

	select {
	case d := <-decisions:
		t.Fatalf("unexpected broadcast: %v", d)
	default:
	}
}
