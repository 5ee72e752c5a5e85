// Package logger provides structured logging for the application.
package logger

import (
	"log/slog"
	"os"
	"strings"
)

// Logger wraps slog.Logger with event helpers used across the service.
type Logger struct {
	*slog.Logger
}

// New creates a logger based on environment: readable text output in
// development, JSON everywhere else.
func New(env string) *Logger {
	var handler slog.Handler

	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if strings.EqualFold(env, "development") {
		opts.Level = slog.LevelDebug
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return &Logger{Logger: slog.New(handler)}
}

// SinkError records a failed best-effort sink delivery. Sink failures never
// reach the caller, so this log line is the only trace of the loss.
func (l *Logger) SinkError(sink, submissionID string, err error) {
	l.Error("sink_delivery_failed",
		slog.String("sink", sink),
		slog.String("submission_id", submissionID),
		slog.String("error", err.Error()),
	)
}

// VerifierError records a token verification call that failed. Verification
// is fail-open, so the request proceeds after this.
func (l *Logger) VerifierError(clientIP string, err error) {
	l.Warn("captcha_verify_failed",
		slog.String("client_ip", clientIP),
		slog.String("error", err.Error()),
	)
}

// LeadAccepted records a submission that passed the gates.
func (l *Logger) LeadAccepted(submissionID, email string) {
	l.Info("lead_accepted",
		slog.String("submission_id", submissionID),
		slog.String("email", email),
	)
}

// BotAbsorbed records a honeypot hit. The caller sees a normal success
// response; this line is for operators only.
func (l *Logger) BotAbsorbed(clientIP string) {
	l.Info("honeypot_absorbed", slog.String("client_ip", clientIP))
}
