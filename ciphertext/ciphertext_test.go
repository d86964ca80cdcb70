package ciphertext

import (
	"testing"

	"github.com/drand/kyber/util/random"
	"github.com/stretchr/testify/require"

	"github.com/pvdkg/pvdkg/crypto"
)

func TestEncryptCheckValidity(t *testing.T) {
	scheme := crypto.NewBLS12381()
	y := scheme.G1.Scalar().Pick(random.New())
	jointKey := scheme.G1.Point().Mul(y, scheme.G)

	aad := []byte("aad-context")
	ct, err := Encrypt(scheme, jointKey, []byte("hello, pvdkg"), aad, random.New())
	require.NoError(t, err)

	require.NoError(t, CheckValidity(scheme, ct, aad))
}

func TestCheckValidityRejectsTamperedCiphertext(t *testing.T) {
	scheme := crypto.NewBLS12381()
	y := scheme.G1.Scalar().Pick(random.New())
	jointKey := scheme.G1.Point().Mul(y, scheme.G)

	aad := []byte("aad-context")
	ct, err := Encrypt(scheme, jointKey, []byte("hello, pvdkg"), aad, random.New())
	require.NoError(t, err)

	ct.C[0] ^= 0xFF
	require.ErrorIs(t, CheckValidity(scheme, ct, aad), ErrCiphertextVerificationFailed)
}

func TestCheckValidityRejectsMismatchedAAD(t *testing.T) {
	scheme := crypto.NewBLS12381()
	y := scheme.G1.Scalar().Pick(random.New())
	jointKey := scheme.G1.Point().Mul(y, scheme.G)

	ct, err := Encrypt(scheme, jointKey, []byte("hello, pvdkg"), []byte("aad-one"), random.New())
	require.NoError(t, err)

	require.ErrorIs(t, CheckValidity(scheme, ct, []byte("aad-two")), ErrCiphertextVerificationFailed)
}

func TestOpenRoundTrip(t *testing.T) {
	scheme := crypto.NewBLS12381()
	y := scheme.G1.Scalar().Pick(random.New())
	jointKey := scheme.G1.Point().Mul(y, scheme.G)

	aad := []byte("aad-context")
	msg := []byte("threshold decryption payload")
	ct, err := Encrypt(scheme, jointKey, msg, aad, random.New())
	require.NoError(t, err)

	sharedSecret := scheme.GT.Point().Mul(y, scheme.Pair(ct.U, scheme.H))
	plaintext, err := Open(scheme, ct, aad, sharedSecret)
	require.NoError(t, err)
	require.Equal(t, msg, plaintext)
}

func TestOpenRejectsWrongSharedSecret(t *testing.T) {
	scheme := crypto.NewBLS12381()
	y := scheme.G1.Scalar().Pick(random.New())
	jointKey := scheme.G1.Point().Mul(y, scheme.G)

	aad := []byte("aad-context")
	ct, err := Encrypt(scheme, jointKey, []byte("threshold decryption payload"), aad, random.New())
	require.NoError(t, err)

	wrong := scheme.GT.Point().Mul(scheme.G1.Scalar().SetInt64(42), scheme.Pair(scheme.G, scheme.H))
	_, err = Open(scheme, ct, aad, wrong)
	require.ErrorIs(t, err, ErrPlaintextVerificationFailed)
}
