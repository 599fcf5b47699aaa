// Package abuseipdb provides IP reputation evidence: an abuse confidence
// score and the threat categories recently reported for the address.
package abuseipdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"cybershield/internal/domain"
)

const maxBodyBytes = 1 << 20

// Client queries the AbuseIPDB check endpoint.
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func New(apiKey string, client *http.Client) *Client {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{apiKey: apiKey, baseURL: "https://api.abuseipdb.com/api/v2", client: client}
}

func NewWithBaseURL(apiKey, baseURL string, client *http.Client) *Client {
	c := New(apiKey, client)
	c.baseURL = baseURL
	return c
}

func (c *Client) Name() string { return "abuseipdb" }

// Defaults is the empty-evidence mapping: zero abuse score, no threats.
func (c *Client) Defaults() domain.SignalSet {
	return domain.SignalSet{
		"abuse_score": 0,
		"threats":     []string{},
	}
}

type checkResponse struct {
	Data struct {
		AbuseConfidenceScore int      `json:"abuseConfidenceScore"`
		TotalReports         int      `json:"totalReports"`
		UsageType            string   `json:"usageType"`
		Reports              []report `json:"reports"`
	} `json:"data"`
}

type report struct {
	Comment string `json:"comment"`
}

func (c *Client) Fetch(ctx context.Context, target string) (domain.SignalSet, error) {
	endpoint := fmt.Sprintf("%s/check?ipAddress=%s&maxAgeInDays=90&verbose", c.baseURL, url.QueryEscape(target))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Key", c.apiKey)
	req.Header.Set("Accept", "application/json")
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("abuseipdb: unexpected status %d", resp.StatusCode)
	}

	var body checkResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&body); err != nil {
		return nil, err
	}

	threats := []string{}
	for _, r := range body.Data.Reports {
		comment := strings.TrimSpace(r.Comment)
		if comment != "" {
			threats = append(threats, comment)
		}
		if len(threats) >= 5 {
			break
		}
	}
	return domain.SignalSet{
		"abuse_score":   body.Data.AbuseConfidenceScore,
		"total_reports": body.Data.TotalReports,
		"usage_type":    body.Data.UsageType,
		"threats":       threats,
	}, nil
}

// Static is the keyless stand-in: addresses in 192.0.0.0/8 read as
// abusive, everything else as clean.
type Static struct{}

func (Static) Name() string { return "abuseipdb-static" }

func (Static) Defaults() domain.SignalSet {
	return domain.SignalSet{
		"abuse_score": 0,
		"threats":     []string{},
	}
}

func (Static) Fetch(ctx context.Context, target string) (domain.SignalSet, error) {
	if strings.HasPrefix(target, "192") {
		return domain.SignalSet{
			"abuse_score": 85,
			"threats":     []string{"DDoS source"},
		}, nil
	}
	return domain.SignalSet{
		"abuse_score": 10,
		"threats":     []string{},
	}, nil
}
