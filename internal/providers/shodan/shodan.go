// Package shodan exposes host exposure evidence (open ports and known
// vulnerabilities) for a domain or IP.
package shodan

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/publicsuffix"

	"cybershield/internal/domain"
)

const maxBodyBytes = 1 << 20

// Client queries the Shodan host endpoint.
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// New builds a client with an optional custom HTTP client.
func New(apiKey string, client *http.Client) *Client {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{apiKey: apiKey, baseURL: "https://api.shodan.io", client: client}
}

// NewWithBaseURL is used by tests to point the client at a stub server.
func NewWithBaseURL(apiKey, baseURL string, client *http.Client) *Client {
	c := New(apiKey, client)
	c.baseURL = baseURL
	return c
}

func (c *Client) Name() string { return "shodan" }

// Defaults is the safe empty-evidence mapping substituted when the
// lookup fails: no ports, no vulnerabilities, not exposed.
func (c *Client) Defaults() domain.SignalSet {
	return domain.SignalSet{
		"open_ports":      []string{},
		"vulnerabilities": []string{},
		"os":              "Unknown",
		"threats":         []string{},
		"is_exposed":      false,
	}
}

type hostResponse struct {
	Ports []int    `json:"ports"`
	Vulns []string `json:"vulns"`
	OS    string   `json:"os"`
}

// Fetch resolves the target to a host and queries Shodan for it.
func (c *Client) Fetch(ctx context.Context, target string) (domain.SignalSet, error) {
	host := HostFor(target)
	endpoint := fmt.Sprintf("%s/shodan/host/%s?key=%s", c.baseURL, url.PathEscape(host), url.QueryEscape(c.apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("shodan: unexpected status %d", resp.StatusCode)
	}

	var body hostResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&body); err != nil {
		return nil, err
	}

	ports := make([]string, 0, len(body.Ports))
	for _, p := range body.Ports {
		ports = append(ports, fmt.Sprintf("%d", p))
	}
	threats := make([]string, 0, len(body.Vulns))
	for _, v := range body.Vulns {
		threats = append(threats, "Vulnerability: "+v)
	}
	osName := body.OS
	if osName == "" {
		osName = "Unknown"
	}
	return domain.SignalSet{
		"open_ports":      ports,
		"vulnerabilities": body.Vulns,
		"os":              osName,
		"threats":         threats,
		"is_exposed":      len(body.Ports) > 0,
	}, nil
}

// HostFor extracts the host to query for a target: the hostname of a
// URL, the registrable domain of an email address, or the value itself
// for a bare IP or domain.
func HostFor(target string) string {
	if at := strings.LastIndex(target, "@"); at >= 0 {
		dom := target[at+1:]
		if registrable, err := publicsuffix.EffectiveTLDPlusOne(dom); err == nil {
			return registrable
		}
		return dom
	}
	if strings.HasPrefix(target, "http://") || strings.HasPrefix(target, "https://") {
		if u, err := url.Parse(target); err == nil && u.Hostname() != "" {
			return u.Hostname()
		}
	}
	return target
}
