// Package emailrep provides email reputation evidence: sender
// authentication records, blacklist status, and phishing indicators.
package emailrep

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"cybershield/internal/domain"
)

const maxBodyBytes = 1 << 20

// Client queries an EmailRep-style reputation API.
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func New(apiKey string, client *http.Client) *Client {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{apiKey: apiKey, baseURL: "https://emailrep.io", client: client}
}

func NewWithBaseURL(apiKey, baseURL string, client *http.Client) *Client {
	c := New(apiKey, client)
	c.baseURL = baseURL
	return c
}

func (c *Client) Name() string { return "emailrep" }

// Defaults is the empty-evidence mapping: no records confirmed, not
// blacklisted, no indicators. Missing keys stay missing rather than
// being coerced to penalties.
func (c *Client) Defaults() domain.SignalSet {
	return domain.SignalSet{
		"phishing_indicators": []string{},
		"blacklisted":         false,
	}
}

type repResponse struct {
	Reputation string `json:"reputation"`
	Details    struct {
		SPF            bool     `json:"spf_strict"`
		DMARC          bool     `json:"dmarc_enforced"`
		DKIM           bool     `json:"dkim_valid"`
		Blacklisted    bool     `json:"blacklisted"`
		DomainAgeDays  int      `json:"days_since_domain_creation"`
		ProfilesAbused []string `json:"suspicious_activity"`
	} `json:"details"`
}

func (c *Client) Fetch(ctx context.Context, target string) (domain.SignalSet, error) {
	endpoint := fmt.Sprintf("%s/%s", c.baseURL, url.PathEscape(target))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	if c.apiKey != "" {
		req.Header.Set("Key", c.apiKey)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("emailrep: unexpected status %d", resp.StatusCode)
	}

	var body repResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&body); err != nil {
		return nil, err
	}

	indicators := append([]string(nil), body.Details.ProfilesAbused...)
	if body.Details.DomainAgeDays > 0 && body.Details.DomainAgeDays < 90 {
		indicators = append(indicators, "Recent domain")
	}
	return domain.SignalSet{
		"domain_age":          body.Details.DomainAgeDays,
		"spf_record":          body.Details.SPF,
		"dmarc_record":        body.Details.DMARC,
		"dkim_record":         body.Details.DKIM,
		"blacklisted":         body.Details.Blacklisted,
		"reputation":          body.Reputation,
		"phishing_indicators": indicators,
	}, nil
}

// Static is the stand-in used when no API key is configured. It reports
// a deliberately poor reputation so local runs exercise every deduction.
type Static struct{}

func (Static) Name() string { return "emailrep-static" }

func (Static) Defaults() domain.SignalSet {
	return domain.SignalSet{
		"phishing_indicators": []string{},
		"blacklisted":         false,
	}
}

func (s Static) Fetch(ctx context.Context, target string) (domain.SignalSet, error) {
	return s.mock(), nil
}

func (Static) mock() domain.SignalSet {
	return domain.SignalSet{
		"domain_age":          5,
		"spf_record":          false,
		"dmarc_record":        false,
		"dkim_record":         false,
		"blacklisted":         true,
		"reputation":          "poor",
		"phishing_indicators": []string{"Recent domain", "Suspicious pattern"},
	}
}
