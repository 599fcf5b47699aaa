package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"cybershield/internal/domain"
)

func TestTarget(t *testing.T) {
	tests := []struct {
		typ   domain.TargetType
		value string
		ok    bool
	}{
		{domain.TargetEmail, "user@example.com", true},
		{domain.TargetEmail, "first.last+tag@sub.example.co.uk", true},
		{domain.TargetEmail, "not-an-email", false},
		{domain.TargetEmail, "missing@tld", false},
		{domain.TargetEmail, "@example.com", false},

		{domain.TargetURL, "https://example.com/path", true},
		{domain.TargetURL, "http://example.com", true},
		{domain.TargetURL, "ftp://example.com", false},
		{domain.TargetURL, "example.com", false},
		{domain.TargetURL, "https://bad domain.com", false},

		{domain.TargetIP, "192.168.1.1", true},
		{domain.TargetIP, "8.8.8.8", true},
		{domain.TargetIP, "999.999.999.999", true}, // digit-count rule only, no octet range check
		{domain.TargetIP, "1.2.3", false},
		{domain.TargetIP, "1.2.3.4567", false},
		{domain.TargetIP, "example.com", false},
	}
	for _, tt := range tests {
		err := Target(tt.typ, tt.value)
		if tt.ok {
			assert.NoError(t, err, "%s %q", tt.typ, tt.value)
		} else {
			assert.Error(t, err, "%s %q", tt.typ, tt.value)
			assert.True(t, domain.IsValidation(err), "%s %q should be a validation error", tt.typ, tt.value)
		}
	}
}

func TestTargetUnknownType(t *testing.T) {
	err := Target(domain.TargetType("dns"), "example.com")
	assert.True(t, domain.IsValidation(err))
}
