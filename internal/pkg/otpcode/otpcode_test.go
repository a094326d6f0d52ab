package otpcode

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNext_AlwaysSixDigits(t *testing.T) {
	gen := New()
	for i := 0; i < 1000; i++ {
		n, err := gen.Next()
		require.NoError(t, err)
		require.GreaterOrEqual(t, n, 100000)
		require.LessOrEqual(t, n, 999999)
	}
}
