package security_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/siitecch/learn-api/internal/security"
)

func TestPasswordHashAndCheck(t *testing.T) {
	hash, err := security.HashPassword("p1")
	require.NoError(t, err)
	require.NotEqual(t, "p1", hash)

	require.True(t, security.CheckPassword(hash, "p1"))
	require.False(t, security.CheckPassword(hash, "p2"))
}
