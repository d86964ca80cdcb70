package crypto

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPairBilinearity(t *testing.T) {
	scheme := NewBLS12381()

	a := scheme.G1.Scalar().SetInt64(7)
	b := scheme.G2.Scalar().SetInt64(11)

	lhs := scheme.Pair(scheme.G1.Point().Mul(a, scheme.G), scheme.G2.Point().Mul(b, scheme.H))
	rhs := scheme.Pair(scheme.G, scheme.H)
	rhs = scheme.GT.Point().Mul(scheme.G1.Scalar().Mul(a, b), rhs)

	require.True(t, lhs.Equal(rhs))
}

func TestHashToG2Deterministic(t *testing.T) {
	scheme := NewBLS12381()

	p1, err := scheme.HashToG2([]byte("pvdkg-test-message"))
	require.NoError(t, err)
	p2, err := scheme.HashToG2([]byte("pvdkg-test-message"))
	require.NoError(t, err)
	require.True(t, p1.Equal(p2))

	p3, err := scheme.HashToG2([]byte("a different message"))
	require.NoError(t, err)
	require.False(t, p1.Equal(p3))
}

func TestSessionTagFixedWidth(t *testing.T) {
	tag := SessionTag("session-one")
	require.Len(t, tag, 32)
	require.NotEqual(t, tag, SessionTag("session-two"))
}
