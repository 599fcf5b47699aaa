package shodan

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchMapsHostData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/shodan/host/example.com", r.URL.Path)
		assert.Equal(t, "k", r.URL.Query().Get("key"))
		w.Write([]byte(`{"ports":[22,443],"vulns":["CVE-2024-0001"],"os":"Linux"}`))
	}))
	defer srv.Close()

	c := NewWithBaseURL("k", srv.URL, srv.Client())
	set, err := c.Fetch(context.Background(), "example.com")
	require.NoError(t, err)

	assert.Equal(t, []string{"22", "443"}, set.Strings("open_ports"))
	assert.Equal(t, []string{"CVE-2024-0001"}, set.Strings("vulnerabilities"))
	assert.Equal(t, "Linux", set.String("os"))
	assert.Equal(t, []string{"Vulnerability: CVE-2024-0001"}, set.Strings("threats"))
	assert.True(t, set.Bool("is_exposed"))
}

func TestFetchNoPortsNotExposed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ports":[],"vulns":[]}`))
	}))
	defer srv.Close()

	c := NewWithBaseURL("k", srv.URL, srv.Client())
	set, err := c.Fetch(context.Background(), "quiet.example")
	require.NoError(t, err)
	assert.False(t, set.Bool("is_exposed"))
	assert.Equal(t, "Unknown", set.String("os"))
}

func TestFetchNon200IsFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewWithBaseURL("k", srv.URL, srv.Client())
	_, err := c.Fetch(context.Background(), "example.com")
	assert.Error(t, err)
}

func TestDefaults(t *testing.T) {
	set := New("k", nil).Defaults()
	assert.False(t, set.Bool("is_exposed"))
	assert.Empty(t, set.Strings("open_ports"))
	assert.Empty(t, set.Strings("threats"))
	assert.Equal(t, "Unknown", set.String("os"))
}

func TestHostFor(t *testing.T) {
	tests := []struct {
		target string
		want   string
	}{
		{"user@mail.example.co.uk", "example.co.uk"},
		{"user@example.com", "example.com"},
		{"https://sub.example.com/path?q=1", "sub.example.com"},
		{"http://example.com:8080", "example.com"},
		{"192.0.2.1", "192.0.2.1"},
		{"example.com", "example.com"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, HostFor(tt.target), "target %q", tt.target)
	}
}
