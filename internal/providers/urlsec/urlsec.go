// Package urlsec provides URL security evidence: SSL validity, malware
// and phishing detections, and blacklist status.
package urlsec

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

// Client queries a VirusTotal-style URL analysis API.
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func New(apiKey string, client *http.Client) *Client {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{apiKey: apiKey, baseURL: "https://www.virustotal.com/api/v3", client: client}
}

func NewWithBaseURL(apiKey, baseURL string, client *http.Client) *Client {
	c := New(apiKey, client)
	c.baseURL = baseURL
	return c
}

func (c *Client) Name() string { return "urlsec" }

// Defaults is the empty-evidence mapping. ssl_valid is deliberately
// absent: an unknown certificate state must not read as valid.
func (c *Client) Defaults() domain.SignalSet {
	return domain.SignalSet{
		"malware_detected":  false,
		"phishing_detected": false,
		"blacklisted":       false,
	}
}

type analysisResponse struct {
	Data struct {
		Attributes struct {
			LastAnalysisStats struct {
				Malicious  int `json:"malicious"`
				Suspicious int `json:"suspicious"`
				Harmless   int `json:"harmless"`
			} `json:"last_analysis_stats"`
			Categories map[string]string `json:"categories"`
			HTTPSValid bool              `json:"last_https_certificate_valid"`
		} `json:"attributes"`
	} `json:"data"`
}

func (c *Client) Fetch(ctx context.Context, target string) (domain.SignalSet, error) {
	id := url.PathEscape(target)
	endpoint := fmt.Sprintf("%s/urls/%s", c.baseURL, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("x-apikey", c.apiKey)
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("urlsec: unexpected status %d", resp.StatusCode)
	}

	var body analysisResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&body); err != nil {
		return nil, err
	}

	stats := body.Data.Attributes.LastAnalysisStats
	phishing := false
	for _, cat := range body.Data.Attributes.Categories {
		if cat == "phishing" {
			phishing = true
			break
		}
	}
	return domain.SignalSet{
		"ssl_valid":         body.Data.Attributes.HTTPSValid,
		"malware_detected":  stats.Malicious > 0,
		"phishing_detected": phishing,
		"blacklisted":       stats.Malicious+stats.Suspicious >= 5,
		"scan_results": map[string]any{
			"virustotal": map[string]any{
				"malicious":  stats.Malicious,
				"suspicious": stats.Suspicious,
			},
		},
	}, nil
}

// Static is the keyless stand-in reporting a compromised URL so local
// runs exercise the full deduction table.
type Static struct{}

func (Static) Name() string { return "urlsec-static" }

func (Static) Defaults() domain.SignalSet {
	return domain.SignalSet{
		"malware_detected":  false,
		"phishing_detected": false,
		"blacklisted":       false,
	}
}

func (Static) Fetch(ctx context.Context, target string) (domain.SignalSet, error) {
	return domain.SignalSet{
		"ssl_valid":         false,
		"malware_detected":  true,
		"phishing_detected": true,
		"blacklisted":       true,
		"scan_results": map[string]any{
			"virustotal": map[string]any{"malicious": 15, "suspicious": 8},
		},
	}, nil
}
