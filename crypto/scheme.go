// Package crypto bundles the pairing-curve capability set the PVDKG core is
// generic over: the scalar field, the two source groups and the target
// group, fixed generators, the pairing, and hash-to-curve. A concrete
// BLS12-381 realization is the only one provided, following the single
// scheme drand wires up by default.
package crypto

import (
	"github.com/drand/kyber"
	bls "github.com/drand/kyber-bls12381"
	"golang.org/x/crypto/blake2b"
)

// Scheme is the capability bundle every PVDKG component is built against.
// It is immutable after construction; no operation mutates it.
type Scheme struct {
	Name string

	Pairing *bls.Suite

	// G1, G2 are the source groups; GT is the pairing target group.
	G1, G2, GT kyber.Group

	// G, H are the fixed generators of G1 and G2 respectively.
	G, H kyber.Point
}

// NewBLS12381 builds the default scheme: commitments and the joint public
// key live in G1, private shares live in G2, matching spec §3.
func NewBLS12381() *Scheme {
	pairing := bls.NewBLS12381SuiteWithDST(
		[]byte("PVDKG_BLS12381G1_XMD:SHA-256_SSWU_RO_NUL_"),
		[]byte("PVDKG_BLS12381G2_XMD:SHA-256_SSWU_RO_NUL_"),
	)

	return &Scheme{
		Name:    "bls12381-pvdkg",
		Pairing: pairing,
		G1:      pairing.G1(),
		G2:      pairing.G2(),
		GT:      pairing.GT(),
		G:       pairing.G1().Point().Base(),
		H:       pairing.G2().Point().Base(),
	}
}

// Pair computes e(p1, p2) with p1 in G1 and p2 in G2.
func (s *Scheme) Pair(p1, p2 kyber.Point) kyber.Point {
	return s.Pairing.Pair(p1, p2)
}

// HashToG2 implements H₂: bytes -> G2 from spec §3/§4.4, used both for the
// ciphertext authenticator and for the ciphertext well-formedness check
// that decryption-share creation runs first. It relies
// on kyber-bls12381's hash-to-curve implementation of kyber.HashablePoint,
// the same mechanism drand's sign/bls scheme uses to hash messages onto the
// curve.
func (s *Scheme) HashToG2(msg []byte) (kyber.Point, error) {
	base := s.G2.Point()
	hashable, ok := base.(kyber.HashablePoint)
	if !ok {
		return nil, ErrHashToCurveError
	}
	return hashable.Hash(msg), nil
}

// SessionTag derives a fixed-width 32-byte digest of a session tag τ,
// mirroring the per-scheme DST convention in the teacher's
// crypto/schemes.go. pvss.Fingerprint uses it as its hash key; the
// hash-to-curve inputs (HashToG2, BindCiphertextInputs) do not include it.
func SessionTag(tau string) []byte {
	h, _ := blake2b.New256(nil)
	_, _ = h.Write([]byte(tau))
	return h.Sum(nil)
}

// BindCiphertextInputs produces the bytes hashed to G2 for the ciphertext
// authenticator: U ‖ C ‖ AAD, as specified in §4.4.
func BindCiphertextInputs(u []byte, c, aad []byte) []byte {
	buf := make([]byte, 0, len(u)+len(c)+len(aad)+8)
	buf = append(buf, u...)
	buf = append(buf, c...)
	buf = append(buf, aad...)
	return buf
}

