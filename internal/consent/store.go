// Package consent is the single source of truth for the user's analytics
// consent: a cookie-backed store plus an in-process broadcast bus so that
// independent observers resynchronize on change without a reload.
package consent

import (
	"net/http"
	"time"

	"github.com/sinedis-soft/dionis-next-level-sub001/internal/entity"
)

// DefaultCookieName matches the key the frontend banner historically used.
const DefaultCookieName = "cookie_consent"

// cookieLifetime is roughly one year; the decision never auto-expires within
// a session.
const cookieLifetime = 365 * 24 * time.Hour

// Store reads and writes the consent cookie. The cookie exclusively owns the
// stored value; in-memory state elsewhere is a cached read of it.
type Store struct {
	CookieName string
}

func NewStore(cookieName string) *Store {
	if cookieName == "" {
		cookieName = DefaultCookieName
	}
	return &Store{CookieName: cookieName}
}

// Read returns the persisted decision. An absent or malformed cookie, or a
// disabled cookie jar, degrades to Undecided so the prompt is shown again.
func (s *Store) Read(r *http.Request) entity.ConsentDecision {
	c, err := r.Cookie(s.CookieName)
	if err != nil {
		return entity.ConsentUndecided
	}
	return entity.ParseConsentDecision(c.Value)
}

// Write persists an explicit accept/reject decision with a one-year lifetime,
// path-scoped to the whole site. Undecided is never written.
func (s *Store) Write(w http.ResponseWriter, decision entity.ConsentDecision) bool {
	if !decision.Decided() {
		return false
	}
	http.SetCookie(w, &http.Cookie{
		Name:     s.CookieName,
		Value:    string(decision),
		Path:     "/",
		MaxAge:   int(cookieLifetime.Seconds()),
		SameSite: http.SameSiteLaxMode,
	})
	return true
}
