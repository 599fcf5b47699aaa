// Package assessor orchestrates the assessment pipeline: validate the
// target, collect provider signals, score, synthesize the report, and
// hand off to persistence and notification.
package assessor

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"cybershield/internal/domain"
	"cybershield/internal/ports"
	"cybershield/internal/report"
	"cybershield/internal/scoring"
	"cybershield/internal/validate"
)

// DefaultProviderTimeout bounds each provider call. Exceeding it counts
// as that provider's failure and triggers its safe defaults.
const DefaultProviderTimeout = 10 * time.Second

type Service struct {
	providers map[domain.TargetType][]ports.SignalProvider
	breaches  ports.BreachDirectory
	repo      ports.AssessmentRepository
	notifier  ports.Notifier
	limiter   ports.RateLimiter
	log       *slog.Logger
	timeout   time.Duration
}

// New wires the orchestrator. breaches, notifier and limiter may be nil;
// a nil limiter allows everything (fail open) and a nil notifier skips
// delivery.
func New(providers map[domain.TargetType][]ports.SignalProvider, breaches ports.BreachDirectory, repo ports.AssessmentRepository, notifier ports.Notifier, limiter ports.RateLimiter, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		providers: providers,
		breaches:  breaches,
		repo:      repo,
		notifier:  notifier,
		limiter:   limiter,
		log:       log,
		timeout:   DefaultProviderTimeout,
	}
}

// SetProviderTimeout overrides the per-provider call bound.
func (s *Service) SetProviderTimeout(d time.Duration) {
	if d > 0 {
		s.timeout = d
	}
}

// Assess runs one assessment end to end. Malformed targets fail fast
// with a ValidationError before any provider call; provider failures
// degrade to safe defaults and never abort the assessment.
func (s *Service) Assess(ctx context.Context, t domain.TargetType, target, userID string) (domain.Assessment, domain.Report, error) {
	if err := s.allow(ctx, userID, t); err != nil {
		return domain.Assessment{}, domain.Report{}, err
	}
	if err := validate.Target(t, target); err != nil {
		return domain.Assessment{}, domain.Report{}, err
	}

	signals := s.collect(ctx, t, target)

	if t == domain.TargetEmail {
		signals["breaches"] = s.breachList(ctx, target)
	}

	calc := scoring.ForType(t)
	if calc == nil {
		return domain.Assessment{}, domain.Report{}, fmt.Errorf("assessor: no calculator for target type %q", t)
	}
	score := calc(signals)

	a := domain.Assessment{
		Target:    target,
		Type:      t,
		Score:     score,
		Status:    domain.StatusForScore(score),
		Threats:   assembleThreats(t, signals),
		Details:   signals,
		CreatedAt: time.Now().UTC(),
	}
	rep := report.Synthesize(a)

	if err := s.repo.Save(ctx, rep.ReportID, userID, a); err != nil {
		return domain.Assessment{}, domain.Report{}, fmt.Errorf("assessor: save assessment: %w", err)
	}

	if s.notifier != nil {
		if err := s.notifier.Notify(ctx, userID, a); err != nil {
			s.log.Error("notification failed", "target", target, "err", err)
		}
	}
	return a, rep, nil
}

// collect invokes every provider for the target type concurrently and
// merges their outputs in provider registration order, so last-writer-
// wins collisions are deterministic regardless of completion order.
func (s *Service) collect(ctx context.Context, t domain.TargetType, target string) domain.SignalSet {
	provs := s.providers[t]
	results := make([]domain.SignalSet, len(provs))

	var wg sync.WaitGroup
	for i, p := range provs {
		wg.Add(1)
		go func(i int, p ports.SignalProvider) {
			defer wg.Done()
			callCtx, cancel := context.WithTimeout(ctx, s.timeout)
			defer cancel()
			set, err := p.Fetch(callCtx, target)
			if err != nil {
				s.log.Warn("provider failed, using safe defaults", "provider", p.Name(), "err", err)
				set = p.Defaults()
			}
			results[i] = set
		}(i, p)
	}
	wg.Wait()

	merged := domain.SignalSet{}
	for _, set := range results {
		merged.Merge(set)
	}
	return merged
}

func (s *Service) breachList(ctx context.Context, email string) []string {
	if s.breaches == nil {
		return []string{}
	}
	list, err := s.breaches.Breaches(ctx, email)
	if err != nil {
		s.log.Warn("breach lookup failed, assuming none", "err", err)
		return []string{}
	}
	if list == nil {
		list = []string{}
	}
	return list
}

func (s *Service) allow(ctx context.Context, userID string, t domain.TargetType) error {
	if s.limiter == nil {
		return nil
	}
	ok, err := s.limiter.Allow(ctx, fmt.Sprintf("%s:assess_%s", userID, t))
	if err != nil {
		s.log.Warn("rate limiter unavailable, allowing request", "err", err)
		return nil
	}
	if !ok {
		return domain.ErrRateLimited
	}
	return nil
}

// assembleThreats concatenates, in fixed order: type-specific
// indicators, breach-derived strings, then generic provider threats.
// The list is never reordered or deduplicated.
func assembleThreats(t domain.TargetType, signals domain.SignalSet) []string {
	threats := []string{}
	if t == domain.TargetEmail {
		threats = append(threats, signals.Strings("phishing_indicators")...)
		for _, b := range signals.Strings("breaches") {
			threats = append(threats, "Breach: "+b)
		}
	}
	threats = append(threats, signals.Strings("threats")...)
	return threats
}
