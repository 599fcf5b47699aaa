package assessor

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cybershield/internal/domain"
	"cybershield/internal/ports"
)

type fakeProvider struct {
	mu       sync.Mutex
	name     string
	signals  domain.SignalSet
	defaults domain.SignalSet
	err      error
	calls    int
}

func (f *fakeProvider) Name() string { return f.name }

func (f *fakeProvider) Fetch(ctx context.Context, target string) (domain.SignalSet, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return f.signals, nil
}

func (f *fakeProvider) Defaults() domain.SignalSet {
	if f.defaults != nil {
		return f.defaults
	}
	return domain.SignalSet{}
}

type fakeRepo struct {
	mu    sync.Mutex
	saved map[string]domain.Assessment
}

func newFakeRepo() *fakeRepo { return &fakeRepo{saved: map[string]domain.Assessment{}} }

func (r *fakeRepo) Save(ctx context.Context, reportID, userID string, a domain.Assessment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saved[reportID] = a
	return nil
}

func (r *fakeRepo) GetByReportID(ctx context.Context, reportID, userID string) (domain.Assessment, error) {
	a, ok := r.saved[reportID]
	if !ok {
		return domain.Assessment{}, domain.ErrNotFound
	}
	return a, nil
}

func (r *fakeRepo) ListByUser(ctx context.Context, userID string, page, limit int, typeFilter string) ([]ports.HistoryItem, int, error) {
	return nil, 0, nil
}

type fakeBreaches struct {
	entries map[string][]string
	err     error
}

func (f fakeBreaches) Breaches(ctx context.Context, email string) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.entries[email], nil
}

type fakeNotifier struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (f *fakeNotifier) Notify(ctx context.Context, recipient string, a domain.Assessment) error {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	return f.err
}

type denyLimiter struct{}

func (denyLimiter) Allow(ctx context.Context, key string) (bool, error) { return false, nil }

type brokenLimiter struct{}

func (brokenLimiter) Allow(ctx context.Context, key string) (bool, error) {
	return false, errors.New("limiter store unavailable")
}

func emailService(provs []ports.SignalProvider, breaches ports.BreachDirectory, repo ports.AssessmentRepository, notifier ports.Notifier, limiter ports.RateLimiter) *Service {
	return New(map[domain.TargetType][]ports.SignalProvider{domain.TargetEmail: provs}, breaches, repo, notifier, limiter, nil)
}

func TestAssessMalformedTargetSkipsProviders(t *testing.T) {
	prov := &fakeProvider{name: "rep"}
	repo := newFakeRepo()
	notifier := &fakeNotifier{}
	svc := emailService([]ports.SignalProvider{prov}, nil, repo, notifier, nil)

	_, _, err := svc.Assess(context.Background(), domain.TargetEmail, "not-an-email", "user-1")

	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
	assert.Equal(t, 0, prov.calls, "no provider may be invoked for malformed input")
	assert.Empty(t, repo.saved, "no persistence side effect for malformed input")
	assert.Equal(t, 0, notifier.calls)
}

func TestAssessEmailFullPipeline(t *testing.T) {
	rep := &fakeProvider{name: "emailrep", signals: domain.SignalSet{
		"spf_record":          false,
		"dmarc_record":        false,
		"dkim_record":         false,
		"blacklisted":         true,
		"reputation":          "poor",
		"phishing_indicators": []string{"Recent domain", "Suspicious pattern"},
	}}
	exposure := &fakeProvider{name: "shodan", signals: domain.SignalSet{
		"is_exposed": false,
		"threats":    []string{"Vulnerability: CVE-2024-1"},
	}}
	breaches := fakeBreaches{entries: map[string][]string{
		"suspicious@example.com": {"DataBreach2023"},
	}}
	repo := newFakeRepo()
	notifier := &fakeNotifier{}
	svc := emailService([]ports.SignalProvider{rep, exposure}, breaches, repo, notifier, nil)

	a, r, err := svc.Assess(context.Background(), domain.TargetEmail, "suspicious@example.com", "user-1")
	require.NoError(t, err)

	// 100 -20 -20 -10 -30 -20 -20 (indicators) -10 (breach) = -30 -> 0
	assert.Equal(t, 0, a.Score)
	assert.Equal(t, domain.StatusHighRisk, a.Status)

	// Fixed threat order: indicators, then breach strings, then generic threats.
	assert.Equal(t, []string{
		"Recent domain",
		"Suspicious pattern",
		"Breach: DataBreach2023",
		"Vulnerability: CVE-2024-1",
	}, a.Threats)

	assert.Equal(t, a.Threats, r.Summary.PrimaryThreats)
	assert.Contains(t, repo.saved, r.ReportID)
	assert.Equal(t, 1, notifier.calls)
}

func TestAssessProviderFailureFailsOpen(t *testing.T) {
	failing := &fakeProvider{
		name:     "emailrep",
		err:      errors.New("connection refused"),
		defaults: domain.SignalSet{"blacklisted": false, "phishing_indicators": []string{}},
	}
	exposure := &fakeProvider{name: "shodan", signals: domain.SignalSet{
		"spf_record": true, "dmarc_record": true, "dkim_record": true,
	}}
	repo := newFakeRepo()
	svc := emailService([]ports.SignalProvider{failing, exposure}, nil, repo, nil, nil)

	a, r, err := svc.Assess(context.Background(), domain.TargetEmail, "user@example.com", "user-1")

	require.NoError(t, err, "a failing provider must not abort the assessment")
	assert.Equal(t, 1, failing.calls, "exactly one attempt, no retries")
	assert.Equal(t, false, a.Details["blacklisted"], "failed provider contributes its safe defaults")
	assert.Equal(t, 100, a.Score)
	assert.Contains(t, repo.saved, r.ReportID)
}

func TestAssessMergeOrderIsDeterministic(t *testing.T) {
	first := &fakeProvider{name: "first", signals: domain.SignalSet{"blacklisted": true, "spf_record": true, "dmarc_record": true, "dkim_record": true}}
	second := &fakeProvider{name: "second", signals: domain.SignalSet{"blacklisted": false}}
	svc := emailService([]ports.SignalProvider{first, second}, nil, newFakeRepo(), nil, nil)

	// Run repeatedly: goroutine completion order must not affect the merge.
	for i := 0; i < 20; i++ {
		a, _, err := svc.Assess(context.Background(), domain.TargetEmail, "user@example.com", "u")
		require.NoError(t, err)
		assert.Equal(t, false, a.Details["blacklisted"], "later provider wins key collisions")
	}
}

func TestAssessIPScoring(t *testing.T) {
	ipProv := &fakeProvider{name: "abuseipdb", signals: domain.SignalSet{
		"abuse_score": 85,
		"threats":     []string{"DDoS source"},
	}}
	repo := newFakeRepo()
	svc := New(map[domain.TargetType][]ports.SignalProvider{domain.TargetIP: {ipProv}}, nil, repo, nil, nil, nil)

	a, _, err := svc.Assess(context.Background(), domain.TargetIP, "192.0.2.1", "u")
	require.NoError(t, err)
	assert.Equal(t, 38, a.Score)
	assert.Equal(t, domain.StatusHighRisk, a.Status)
	assert.Equal(t, []string{"DDoS source"}, a.Threats)
}

func TestAssessNotificationFailureDoesNotFail(t *testing.T) {
	prov := &fakeProvider{name: "rep", signals: domain.SignalSet{"spf_record": true, "dmarc_record": true, "dkim_record": true}}
	notifier := &fakeNotifier{err: errors.New("smtp down")}
	svc := emailService([]ports.SignalProvider{prov}, nil, newFakeRepo(), notifier, nil)

	_, _, err := svc.Assess(context.Background(), domain.TargetEmail, "user@example.com", "u")
	require.NoError(t, err)
	assert.Equal(t, 1, notifier.calls)
}

func TestAssessRateLimited(t *testing.T) {
	prov := &fakeProvider{name: "rep"}
	svc := emailService([]ports.SignalProvider{prov}, nil, newFakeRepo(), nil, denyLimiter{})

	_, _, err := svc.Assess(context.Background(), domain.TargetEmail, "user@example.com", "u")
	assert.ErrorIs(t, err, domain.ErrRateLimited)
	assert.Equal(t, 0, prov.calls)
}

func TestAssessLimiterFailureFailsOpen(t *testing.T) {
	prov := &fakeProvider{name: "rep", signals: domain.SignalSet{"spf_record": true, "dmarc_record": true, "dkim_record": true}}
	svc := emailService([]ports.SignalProvider{prov}, nil, newFakeRepo(), nil, brokenLimiter{})

	_, _, err := svc.Assess(context.Background(), domain.TargetEmail, "user@example.com", "u")
	assert.NoError(t, err, "a broken limiter must never block assessments")
}

func TestAssessBreachLookupFailureFailsOpen(t *testing.T) {
	prov := &fakeProvider{name: "rep", signals: domain.SignalSet{"spf_record": true, "dmarc_record": true, "dkim_record": true}}
	svc := emailService([]ports.SignalProvider{prov}, fakeBreaches{err: errors.New("directory offline")}, newFakeRepo(), nil, nil)

	a, _, err := svc.Assess(context.Background(), domain.TargetEmail, "user@example.com", "u")
	require.NoError(t, err)
	assert.Equal(t, []string{}, a.Details["breaches"])
	assert.Equal(t, 100, a.Score)
}

func TestAssessUnknownTypeRejected(t *testing.T) {
	svc := New(map[domain.TargetType][]ports.SignalProvider{}, nil, newFakeRepo(), nil, nil, nil)
	_, _, err := svc.Assess(context.Background(), domain.TargetType("dns"), "example.com", "u")
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}
