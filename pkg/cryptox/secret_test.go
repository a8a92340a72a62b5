package cryptox

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateSecret(t *testing.T) {
	s1, err := GenerateSecret(32)
	require.NoError(t, err)
	s2, err := GenerateSecret(32)
	require.NoError(t, err)
	require.NotEqual(t, s1, s2)

	raw, err := base64.RawURLEncoding.DecodeString(s1)
	require.NoError(t, err)
	require.Len(t, raw, 32)

	_, err = GenerateSecret(0)
	require.Error(t, err)
}

func TestSecretsEqual(t *testing.T) {
	require.True(t, SecretsEqual("bootstrap", "bootstrap"))
	require.False(t, SecretsEqual("bootstrap", "Bootstrap"))
	require.False(t, SecretsEqual("boot", "bootstrap"))
	require.False(t, SecretsEqual("", "bootstrap"))
}
