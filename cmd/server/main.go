package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	httpadapter "cybershield/internal/adapters/http"
	pg "cybershield/internal/adapters/postgres"
	"cybershield/internal/config"
	"cybershield/internal/domain"
	"cybershield/internal/logging"
	"cybershield/internal/notify"
	"cybershield/internal/ports"
	"cybershield/internal/providers/abuseipdb"
	"cybershield/internal/providers/breach"
	"cybershield/internal/providers/emailrep"
	"cybershield/internal/providers/shodan"
	"cybershield/internal/providers/urlsec"
	"cybershield/internal/ratelimit"
	"cybershield/internal/services/assessor"
	"cybershield/internal/services/community"
	"cybershield/internal/services/reports"
	"cybershield/internal/services/resources"
)

func main() {
	cfg, err := config.Load()
	log := logging.Setup(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Warn("config", "err", err)
	}
	if cfg.DatabaseURL == "" {
		log.Error("DATABASE_URL is required for Postgres adapters")
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := pg.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	// Wire repositories to services (ports)
	var _ ports.AssessmentRepository = db
	var _ ports.ThreatRepository = db
	var _ ports.ResourceRepository = db

	var notifier ports.Notifier = notify.Noop{}
	if cfg.SMTPHost != "" {
		notifier = notify.NewSMTP(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass)
	}
	limiter := ratelimit.NewWindowed(cfg.RateLimitPerMinute, time.Minute)

	svc := assessor.New(buildProviders(cfg), breach.NewStatic(nil), db, notifier, limiter, log)
	reps := reports.New(db)
	comm := community.New(db)
	res := resources.New(db)

	srv := httpadapter.New(svc, reps, comm, res, log)
	r := chi.NewRouter()
	r.Mount("/", srv.Routes())

	errCh := make(chan error, 1)
	go func() { errCh <- http.ListenAndServe(cfg.ListenAddr, r) }()
	log.Info("listening", "addr", cfg.ListenAddr, "env", cfg.Env)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		log.Info("shutting down", "signal", sig.String())
		cancel()
		time.Sleep(300 * time.Millisecond)
	case err := <-errCh:
		log.Error("server", "err", fmt.Errorf("server error: %w", err))
		os.Exit(1)
	}
}

// buildProviders selects the HTTP-backed client when an API key is
// configured and the static stand-in otherwise. The shodan exposure
// provider is listed last for every type so its keys win a merge
// collision over the reputation providers.
func buildProviders(cfg config.Config) map[domain.TargetType][]ports.SignalProvider {
	// A missing shodan key just makes every lookup fail, which the
	// orchestrator already degrades to safe defaults.
	exposure := shodan.New(cfg.ShodanAPIKey, nil)

	var email ports.SignalProvider = emailrep.Static{}
	if cfg.EmailRepAPIKey != "" {
		email = emailrep.New(cfg.EmailRepAPIKey, nil)
	}
	var urlProv ports.SignalProvider = urlsec.Static{}
	if cfg.VirusTotalKey != "" {
		urlProv = urlsec.New(cfg.VirusTotalKey, nil)
	}
	var ipProv ports.SignalProvider = abuseipdb.Static{}
	if cfg.AbuseIPDBAPIKey != "" {
		ipProv = abuseipdb.New(cfg.AbuseIPDBAPIKey, nil)
	}

	return map[domain.TargetType][]ports.SignalProvider{
		domain.TargetEmail: {email, exposure},
		domain.TargetURL:   {urlProv, exposure},
		domain.TargetIP:    {ipProv, exposure},
	}
}
