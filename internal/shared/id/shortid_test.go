package id

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	got, err := Generate(0)
	require.NoError(t, err)
	assert.Len(t, got, DefaultLength)

	got, err = Generate(20)
	require.NoError(t, err)
	assert.Len(t, got, 20)
	for _, r := range got {
		assert.True(t, strings.ContainsRune(alphabet, r))
	}
}

func TestNewSubscriptionID(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		sid, err := NewSubscriptionID()
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(sid, PrefixSubscription+"_"))
		assert.Len(t, sid, len(PrefixSubscription)+1+DefaultLength)
		assert.NoError(t, ValidateSubscriptionID(sid))

		_, dup := seen[sid]
		assert.False(t, dup)
		seen[sid] = struct{}{}
	}
}

func TestParsePrefixedID(t *testing.T) {
	tests := []struct {
		input     string
		prefix    string
		shortID   string
		expectErr bool
	}{
		{input: "msub_abc123", prefix: "msub", shortID: "abc123"},
		{input: "msub_a_b", prefix: "msub", shortID: "a_b"},
		{input: "nounderscore", expectErr: true},
		{input: "_leading", expectErr: true},
		{input: "trailing_", expectErr: true},
		{input: "", expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			prefix, shortID, err := ParsePrefixedID(tt.input)
			if tt.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.prefix, prefix)
			assert.Equal(t, tt.shortID, shortID)
		})
	}
}

func TestValidateSubscriptionID(t *testing.T) {
	assert.NoError(t, ValidateSubscriptionID("msub_AbC123xyz789"))
	assert.Error(t, ValidateSubscriptionID("fa_AbC123xyz789"))
	assert.Error(t, ValidateSubscriptionID("msub_bad-char!"))
	assert.Error(t, ValidateSubscriptionID("msub"))
}
