package main

import (
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sinedis-soft/dionis-next-level-sub001/internal/config"
	"github.com/sinedis-soft/dionis-next-level-sub001/internal/consent"
	"github.com/sinedis-soft/dionis-next-level-sub001/internal/infra/http/handlers"
	"github.com/sinedis-soft/dionis-next-level-sub001/internal/infra/http/middleware"
	"github.com/sinedis-soft/dionis-next-level-sub001/internal/infra/integration/bitrix"
	"github.com/sinedis-soft/dionis-next-level-sub001/internal/infra/integration/recaptcha"
	"github.com/sinedis-soft/dionis-next-level-sub001/internal/infra/mail"
	"github.com/sinedis-soft/dionis-next-level-sub001/internal/logger"
	"github.com/sinedis-soft/dionis-next-level-sub001/internal/usecase"
)

const leadSourceTag = "dionis-site"

func main() {
	godotenv.Load()

	cfg := config.Load()
	log := logger.New(cfg.Env)

	// 1. Consent store + broadcast bus
	consentStore := consent.NewStore(cfg.ConsentCookieName)
	consentBus := consent.NewBus()

	// 2. Sinks and verifier. A nil sink means "not configured, skip".
	var crm usecase.CRMGateway
	if cfg.CRMConfigured() {
		crm = bitrix.NewClient(cfg.CRMWebhookURL)
	} else {
		log.Warn("CRM webhook not configured, crm sink disabled")
	}

	var mailSender usecase.MailSender
	if cfg.SMTPConfigured() {
		mailSender = mail.NewEmailSender(
			cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass,
			cfg.MailFrom, cfg.MailTo,
		)
	} else {
		log.Warn("SMTP not fully configured, email sink disabled")
	}

	var verifier usecase.CaptchaVerifier
	if cfg.RecaptchaConfigured() {
		verifier = recaptcha.NewClient(cfg.RecaptchaSecret)
	}

	// 3. UseCases
	submitLeadUC := usecase.NewSubmitLeadUseCase(
		crm, mailSender, verifier,
		cfg.IsProduction(), leadSourceTag, log,
	)
	calculateUC := usecase.NewCalculatePremiumUseCase()

	// 4. Handlers
	leadHandler := handlers.NewLeadHandler(submitLeadUC)
	consentHandler := handlers.NewConsentHandler(consentStore, consentBus)
	calculatorHandler := handlers.NewCalculatorHandler(calculateUC)
	healthHandler := handlers.NewHealthHandler(cfg)

	contactLimiter := middleware.NewRateLimiter(10, time.Minute)

	// 5. Router
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Accept-Language", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Route("/api", func(r chi.Router) {
		r.With(contactLimiter.Middleware).Post("/contact", leadHandler.Handle)
		r.Get("/consent", consentHandler.HandleRead)
		r.Post("/consent", consentHandler.HandleWrite)
		r.Post("/calculator", calculatorHandler.Handle)
	})
	r.Get("/healthz", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	log.Info("server listening", "addr", cfg.HTTPAddr, "env", cfg.Env)
	if err := http.ListenAndServe(cfg.HTTPAddr, r); err != nil {
		log.Error("server stopped", "error", err.Error())
		os.Exit(1)
	}
}
