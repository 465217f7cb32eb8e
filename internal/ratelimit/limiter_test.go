package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWindowKeyStableWithinWindow(t *testing.T) {
	base := time.Unix(1_700_000_000, 0)

	k1 := WindowKey(42, base, 10*time.Second)
	k2 := WindowKey(42, base.Add(9*time.Second), 10*time.Second)

	require.Equal(t, k1, k2)
}

func TestWindowKeyRollsOver(t *testing.T) {
	base := time.Unix(1_700_000_000, 0)

	k1 := WindowKey(42, base, 10*time.Second)
	k2 := WindowKey(42, base.Add(10*time.Second), 10*time.Second)

	require.NotEqual(t, k1, k2)
}

func TestWindowKeySeparatesSenders(t *testing.T) {
	base := time.Unix(1_700_000_000, 0)

	require.NotEqual(t,
		WindowKey(1, base, 10*time.Second),
		WindowKey(2, base, 10*time.Second),
	)
}
