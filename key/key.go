// Package key holds validator identities and long-term keypairs, following
// the teacher's key package (Identity/Private split in key/keys.go).
package key

import (
	"crypto/cipher"

	"github.com/drand/kyber"

	"github.com/pvdkg/pvdkg/crypto"
)

// Validator is a cohort member's public identity: an opaque address and a
// public key in G2 (spec §3). Equality is by address.
type Validator struct {
	Address   string
	PublicKey kyber.Point
}

// Equal compares validators by address, as spec §3 specifies.
func (v Validator) Equal(other Validator) bool {
	return v.Address == other.Address
}

// Validators is the ordered cohort list; position i is assigned domain
// point ωⁱ.
type Validators []Validator

// IndexOf returns the position of addr in the list, or -1 if absent.
func (vs Validators) IndexOf(addr string) int {
	for i, v := range vs {
		if v.Address == addr {
			return i
		}
	}
	return -1
}

// Contains reports whether a validator matching v (by address) is present.
func (vs Validators) Contains(v Validator) bool {
	return vs.IndexOf(v.Address) >= 0
}

// Keypair is a validator-local long-term keypair: a secret scalar and its
// public counterpart in G2 (spec §3).
type Keypair struct {
	Secret kyber.Scalar
	Public kyber.Point
}

// NewKeypair samples a fresh keypair using scheme's G2 group. rng must be
// cryptographically secure (spec §5).
func NewKeypair(scheme *crypto.Scheme, rng cipher.Stream) Keypair {
	secret := scheme.G2.Scalar().Pick(rng)
	public := scheme.G2.Point().Mul(secret, nil)
	return Keypair{Secret: secret, Public: public}
}

// Validator returns the public Validator identity for this keypair.
func (k Keypair) Validator(address string) Validator {
	return Validator{Address: address, PublicKey: k.Public}
}
