package handlers

import (
	"net/http"
	"time"

	"github.com/sinedis-soft/dionis-next-level-sub001/internal/config"
)

type HealthHandler struct {
	cfg       *config.Config
	startTime time.Time
}

type HealthResponse struct {
	Status       string            `json:"status"`
	Version      string            `json:"version"`
	Uptime       string            `json:"uptime"`
	Dependencies map[string]string `json:"dependencies"`
}

func NewHealthHandler(cfg *config.Config) *HealthHandler {
	return &HealthHandler{cfg: cfg, startTime: time.Now()}
}

// Handle reports which outbound channels are configured. The sinks are
// fire-and-forget HTTP/SMTP calls with no persistent connection, so there is
// nothing to ping; "configured" is the strongest claim this endpoint makes.
func (h *HealthHandler) Handle(w http.ResponseWriter, r *http.Request) {
	deps := make(map[string]string)

	if h.cfg.CRMConfigured() {
		deps["crm"] = "configured"
	} else {
		deps["crm"] = "not configured"
	}

	if h.cfg.SMTPConfigured() {
		deps["smtp"] = "configured"
	} else {
		deps["smtp"] = "not configured"
	}

	if h.cfg.RecaptchaConfigured() {
		deps["recaptcha"] = "configured"
	} else {
		deps["recaptcha"] = "not configured"
	}

	uptime := time.Since(h.startTime).Round(time.Second).String()

	writeJSON(w, http.StatusOK, HealthResponse{
		Status:       "healthy",
		Version:      "1.0.0",
		Uptime:       uptime,
		Dependencies: deps,
	})
}
