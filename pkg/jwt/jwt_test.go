package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMintVerifyRoundTrip(t *testing.T) {
	svc := NewService("test-secret", time.Minute)

	token, err := svc.Mint("ops")
	require.NoError(t, err)

	subject, err := svc.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "ops", subject)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	token, err := NewService("secret-a", time.Minute).Mint("ops")
	require.NoError(t, err)

	_, err = NewService("secret-b", time.Minute).Verify(token)
	require.Error(t, err)
}

func TestVerifyRejectsExpired(t *testing.T) {
	token, err := NewService("test-secret", -time.Minute).Mint("ops")
	require.NoError(t, err)

	_, err = NewService("test-secret", -time.Minute).Verify(token)
	require.Error(t, err)
}
