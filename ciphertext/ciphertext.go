// Package ciphertext implements the CCA-secure KEM+DEM construction of spec
// §4.4. The KEM half follows the teacher's ecies package (ephemeral DH
// point, HKDF-derived symmetric key, AEAD payload); the DEM swaps the
// teacher's AES-GCM for ChaCha20-Poly1305, and the KEM point is tied to a
// pairing rather than a plain DH exchange, following spec §3's Ciphertext
// data model.
package ciphertext

import (
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"

	"github.com/drand/kyber"
	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"

	"github.com/pvdkg/pvdkg/crypto"
)

// Ciphertext is the wire-model triple of spec §6.3.
type Ciphertext struct {
	U kyber.Point // G1 commitment point, U = g·r
	W kyber.Point // G2 authenticator, W = H₂(U‖C‖AAD)·r
	C []byte      // DEM output
}

// Encrypt seals msg under the joint public key Y, binding aad into the
// ciphertext (spec §4.4).
func Encrypt(scheme *crypto.Scheme, jointKey kyber.Point, msg, aad []byte, rng cipher.Stream) (*Ciphertext, error) {
	r := scheme.G1.Scalar().Pick(rng)
	u := scheme.G1.Point().Mul(r, scheme.G)

	// S = e(Y, h)^r = e(g, h)^{r·y}: the same GT element the combiner
	// reconstructs from t decryption shares (see combine package).
	sharedSecret := scheme.GT.Point().Mul(r, scheme.Pair(jointKey, scheme.H))

	key, err := deriveKey(sharedSecret)
	if err != nil {
		return nil, err
	}

	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, err
	}
	sealed := aead.Seal(nil, nonce, msg, aad)
	c := append(nonce, sealed...)

	uBytes, err := u.MarshalBinary()
	if err != nil {
		return nil, err
	}
	h2, err := scheme.HashToG2(crypto.BindCiphertextInputs(uBytes, c, aad))
	if err != nil {
		return nil, err
	}
	w := scheme.G2.Point().Mul(r, h2)

	return &Ciphertext{U: u, W: w, C: c}, nil
}

// CheckValidity performs the public well-formedness check of spec §4.4:
// e(U, H₂(U‖C‖AAD)) = e(g, W). It requires no decryption shares.
func CheckValidity(scheme *crypto.Scheme, ct *Ciphertext, aad []byte) error {
	uBytes, err := ct.U.MarshalBinary()
	if err != nil {
		return err
	}
	h2, err := scheme.HashToG2(crypto.BindCiphertextInputs(uBytes, ct.C, aad))
	if err != nil {
		return err
	}

	lhs := scheme.Pair(ct.U, h2)
	rhs := scheme.Pair(scheme.G, ct.W)
	if !lhs.Equal(rhs) {
		return ErrCiphertextVerificationFailed
	}
	return nil
}

// Open reverses Encrypt given the reconstructed shared secret S (spec
// §4.6's combine step hands this in): it derives the same DEM key and opens
// the AEAD payload, returning ErrPlaintextVerificationFailed on an
// authentication failure (spec §7) rather than the AEAD's own opaque error.
func Open(scheme *crypto.Scheme, ct *Ciphertext, aad []byte, sharedSecret kyber.Point) ([]byte, error) {
	key, err := deriveKey(sharedSecret)
	if err != nil {
		return nil, err
	}

	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, err
	}
	if len(ct.C) < aead.NonceSize() {
		return nil, ErrPlaintextVerificationFailed
	}
	nonce, sealed := ct.C[:aead.NonceSize()], ct.C[aead.NonceSize():]

	plaintext, err := aead.Open(nil, nonce, sealed, aad)
	if err != nil {
		return nil, ErrPlaintextVerificationFailed
	}
	return plaintext, nil
}

// deriveKey runs HKDF-SHA256 over a GT element's canonical encoding to
// produce a 32-byte DEM key, exactly as the teacher's ecies.Encrypt derives
// its AES key from a DH point.
func deriveKey(gtElement kyber.Point) ([]byte, error) {
	secretBytes, err := gtElement.MarshalBinary()
	if err != nil {
		return nil, err
	}
	reader := hkdf.New(sha256.New, secretBytes, nil, []byte("pvdkg-dem-key"))
	key := make([]byte, chacha20poly1305.KeySize)
	if _, err := reader.Read(key); err != nil {
		return nil, err
	}
	return key, nil
}
