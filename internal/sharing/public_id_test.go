package sharing

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPublicID_Format(t *testing.T) {
	re := regexp.MustCompile(`^list-\d{5}-\d{4}$`)
	for i := 0; i < 50; i++ {
		id, err := NewPublicID("list")
		require.NoError(t, err)
		assert.Regexp(t, re, id)
	}
}

func TestNewPublicID_DistinctFromInternalID(t *testing.T) {
	// Share ids carry the prefix so they can never be mistaken for the
	// internal uuid primary key.
	id, err := NewPublicID("list")
	require.NoError(t, err)
	assert.Equal(t, "list-", id[:5])
}
