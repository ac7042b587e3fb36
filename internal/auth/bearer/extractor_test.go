package bearer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"idsync/internal/auth/bearer"
	"idsync/internal/domain"
)

func TestExtract_ValidHeader(t *testing.T) {
	token, err := bearer.Extract("Bearer token")

	require.NoError(t, err)
	assert.Equal(t, "token", token)
}

func TestExtract_OpaqueTokenCharacters(t *testing.T) {
	token, err := bearer.Extract("Bearer ya29.a0AfH6SM-b_c/d+e==")

	require.NoError(t, err)
	assert.Equal(t, "ya29.a0AfH6SM-b_c/d+e==", token)
}

func TestExtract_Failures(t *testing.T) {
	tests := []struct {
		name   string
		header string
		kind   domain.FailureKind
	}{
		{"absent", "", domain.FailureMissingHeader},
		{"scheme only", "Bearer", domain.FailureInvalidFormat},
		{"wrong scheme", "Token abc", domain.FailureInvalidFormat},
		{"invalid token word", "Invalid Token", domain.FailureInvalidFormat},
		{"lowercase scheme", "bearer abc", domain.FailureInvalidFormat},
		{"uppercase scheme", "BEARER abc", domain.FailureInvalidFormat},
		{"three segments", "Bearer a b", domain.FailureInvalidFormat},
		{"double space", "Bearer  abc", domain.FailureInvalidFormat},
		{"leading space", " Bearer abc", domain.FailureInvalidFormat},
		{"trailing space", "Bearer abc ", domain.FailureInvalidFormat},
		{"whitespace only", "   ", domain.FailureInvalidFormat},
		{"scheme prefix glued", "Bearerabc", domain.FailureInvalidFormat},
		{"empty token", "Bearer ", domain.FailureEmptyToken},
		{"tab separated empty token", "Bearer\t", domain.FailureEmptyToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := bearer.Extract(tt.header)

			assert.Empty(t, token)
			require.Error(t, err)
			assert.True(t, domain.IsKind(err, tt.kind), "got %v", err)
		})
	}
}

func TestExtract_TabSeparator(t *testing.T) {
	token, err := bearer.Extract("Bearer\tabc")

	require.NoError(t, err)
	assert.Equal(t, "abc", token)
}
