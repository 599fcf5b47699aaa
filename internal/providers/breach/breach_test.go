package breach

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticDirectoryLookup(t *testing.T) {
	d := NewStatic(map[string][]string{
		"pwned@example.com": {"DataBreach2023", "Phishing2022"},
	})

	list, err := d.Breaches(context.Background(), "pwned@example.com")
	require.NoError(t, err)
	assert.Equal(t, []string{"DataBreach2023", "Phishing2022"}, list)

	list, err = d.Breaches(context.Background(), "clean@example.com")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestStaticDirectoryBuiltinSample(t *testing.T) {
	d := NewStatic(nil)
	list, err := d.Breaches(context.Background(), "suspicious@example.com")
	require.NoError(t, err)
	assert.Len(t, list, 2)
}
