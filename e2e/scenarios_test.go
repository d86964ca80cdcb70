// Package e2e runs the seed scenarios of this module's testable-properties
// section against the assembled stack (dkg, pvss, ciphertext, decryption,
// combine, refresh), grounded on the teacher's test/e2e package: a
// standalone Ginkgo suite outside any single package's unit tests.
package e2e

import (
	"strconv"

	"github.com/drand/kyber"
	"github.com/drand/kyber/util/random"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/pvdkg/pvdkg/ciphertext"
	"github.com/pvdkg/pvdkg/combine"
	"github.com/pvdkg/pvdkg/crypto"
	"github.com/pvdkg/pvdkg/decryption"
	"github.com/pvdkg/pvdkg/dkg"
	"github.com/pvdkg/pvdkg/key"
	"github.com/pvdkg/pvdkg/pvss"
	"github.com/pvdkg/pvdkg/refresh"
)

type cohort struct {
	scheme     *crypto.Scheme
	domain     *crypto.EvaluationDomain
	validators key.Validators
	keypairs   []key.Keypair
	params     dkg.Params
}

func buildCohort(n, threshold int) cohort {
	scheme := crypto.NewBLS12381()
	domain, err := crypto.NewEvaluationDomain(scheme, n)
	Expect(err).NotTo(HaveOccurred())

	validators := make(key.Validators, n)
	keypairs := make([]key.Keypair, n)
	for i := 0; i < n; i++ {
		kp := key.NewKeypair(scheme, random.New())
		keypairs[i] = kp
		validators[i] = kp.Validator(validatorAddress(i))
	}

	return cohort{
		scheme:     scheme,
		domain:     domain,
		validators: validators,
		keypairs:   keypairs,
		params:     dkg.Params{Tau: "e2e-session", SharesNum: n, Threshold: threshold},
	}
}

func validatorAddress(i int) string {
	return "validator_" + strconv.Itoa(i)
}

func newSessions(c cohort) []*dkg.Session {
	sessions := make([]*dkg.Session, len(c.validators))
	for i := range c.validators {
		s, err := dkg.New(c.scheme, c.validators, c.params, c.validators[i], c.keypairs[i])
		Expect(err).NotTo(HaveOccurred())
		sessions[i] = s
	}
	return sessions
}

var _ = Describe("PVDKG", func() {

	Describe("S1: happy path, N=4 t=2", func() {
		It("derives a shared final key and unseals a client ciphertext from two decryption shares", func() {
			c := buildCohort(4, 2)
			sessions := newSessions(c)

			deals := make([]*dkg.Deal, len(sessions))
			for i, s := range sessions {
				d, err := s.Share(random.New())
				Expect(err).NotTo(HaveOccurred())
				deals[i] = d
			}

			// Every validator applies only the first two deals.
			for _, s := range sessions {
				for i := 0; i < 2; i++ {
					Expect(s.VerifyMessage(c.validators[i], *deals[i])).To(Succeed())
					Expect(s.ApplyMessage(c.validators[i], *deals[i])).To(Succeed())
				}
				Expect(s.State().Status).To(Equal(dkg.Dealt))
			}

			agg, err := sessions[0].Aggregate()
			Expect(err).NotTo(HaveOccurred())

			for _, s := range sessions {
				Expect(s.VerifyMessage(c.validators[0], *agg)).To(Succeed())
				Expect(s.ApplyMessage(c.validators[0], *agg)).To(Succeed())
				Expect(s.State().Status).To(Equal(dkg.Success))
				Expect(s.FinalKey().Equal(agg.FinalKey)).To(BeTrue())
			}

			aad := []byte("my-aad")
			ct, err := ciphertext.Encrypt(c.scheme, sessions[0].FinalKey(), []byte("abc"), aad, random.New())
			Expect(err).NotTo(HaveOccurred())

			privateContexts := make([]*decryption.PrivateDecryptionContext, 0, 2)
			for i := 0; i < 2; i++ {
				ctx, err := decryption.NewPrivateDecryptionContext(c.scheme, c.domain, i, c.keypairs[i], agg.VSS.Shares[i], random.New())
				Expect(err).NotTo(HaveOccurred())
				privateContexts = append(privateContexts, ctx)
			}

			shares := make([]*decryption.DecryptionShare, 0, 2)
			for _, ctx := range privateContexts {
				share, err := decryption.CreateShareSimple(c.scheme, ctx, ct, aad)
				Expect(err).NotTo(HaveOccurred())
				shares = append(shares, share)
			}

			secret, err := combine.Combine(c.scheme, 2, shares)
			Expect(err).NotTo(HaveOccurred())

			plaintext, err := ciphertext.Open(c.scheme, ct, aad, secret)
			Expect(err).NotTo(HaveOccurred())
			Expect(plaintext).To(Equal([]byte("abc")))
		})
	})

	Describe("S2: unknown dealer rejection", func() {
		It("rejects a Deal from a validator outside the cohort without changing state", func() {
			c := buildCohort(4, 2)
			s, err := dkg.New(c.scheme, c.validators, c.params, c.validators[0], c.keypairs[0])
			Expect(err).NotTo(HaveOccurred())

			before := s.State()

			intruderKeys := key.NewKeypair(c.scheme, random.New())
			intruder := intruderKeys.Validator("fake-address")
			// Build a dummy Deal; its content is irrelevant since the
			// sender lookup fails before any transcript is inspected.
			otherCohort := buildCohort(4, 2)
			otherSession, err := dkg.New(otherCohort.scheme, otherCohort.validators, otherCohort.params, otherCohort.validators[0], otherCohort.keypairs[0])
			Expect(err).NotTo(HaveOccurred())
			deal, err := otherSession.Share(random.New())
			Expect(err).NotTo(HaveOccurred())

			err = s.VerifyMessage(intruder, *deal)
			Expect(err).To(MatchError(dkg.ErrUnknownSender))
			Expect(s.State()).To(Equal(before))
		})
	})

	Describe("S3: duplicate dealer", func() {
		It("rejects a second Deal from a validator that already dealt", func() {
			c := buildCohort(4, 2)
			s, err := dkg.New(c.scheme, c.validators, c.params, c.validators[3], c.keypairs[3])
			Expect(err).NotTo(HaveOccurred())

			deal, err := s.Share(random.New())
			Expect(err).NotTo(HaveOccurred())
			Expect(s.VerifyMessage(c.validators[3], *deal)).To(Succeed())
			Expect(s.ApplyMessage(c.validators[3], *deal)).To(Succeed())
			accumulatedAfterFirst := s.State().Accumulated

			deal2, err := s.Share(random.New())
			Expect(err).NotTo(HaveOccurred())
			err = s.VerifyMessage(c.validators[3], *deal2)
			Expect(err).To(MatchError(dkg.ErrDuplicateDealer))
			Expect(s.State().Accumulated).To(Equal(accumulatedAfterFirst))
		})
	})

	Describe("S4: wrong final key", func() {
		It("rejects an Aggregate whose claimed final_key does not match the locally derived one", func() {
			c := buildCohort(4, 2)
			sessions := newSessions(c)

			for i := 0; i < 2; i++ {
				d, err := sessions[i].Share(random.New())
				Expect(err).NotTo(HaveOccurred())
				for _, s := range sessions {
					Expect(s.VerifyMessage(c.validators[i], *d)).To(Succeed())
					Expect(s.ApplyMessage(c.validators[i], *d)).To(Succeed())
				}
			}

			agg, err := sessions[0].Aggregate()
			Expect(err).NotTo(HaveOccurred())

			tampered := *agg
			tampered.FinalKey = c.scheme.G1.Point().Null()

			err = sessions[1].VerifyMessage(c.validators[0], tampered)
			Expect(err).To(MatchError(dkg.ErrWrongFinalKey))
		})
	})

	Describe("S5: ciphertext tamper detection", func() {
		It("fails well-formedness checking when a DEM byte is flipped", func() {
			scheme := crypto.NewBLS12381()
			y := scheme.G1.Scalar().Pick(random.New())
			jointKey := scheme.G1.Point().Mul(y, scheme.G)

			aad := []byte("my-aad")
			ct, err := ciphertext.Encrypt(scheme, jointKey, []byte("abc"), aad, random.New())
			Expect(err).NotTo(HaveOccurred())

			ct.C[0]++
			err = ciphertext.CheckValidity(scheme, ct, aad)
			Expect(err).To(MatchError(ciphertext.ErrCiphertextVerificationFailed))
		})
	})

	Describe("S6: share recovery at a removed validator's domain point, N=16 t=10", func() {
		It("recovers a removed validator's share such that the combined secret is unchanged", func() {
			const n, threshold = 16, 10
			c := buildCohort(n, threshold)

			transcript, err := pvss.Deal(c.scheme, c.domain, c.validators, threshold, random.New())
			Expect(err).NotTo(HaveOccurred())

			finalKey, err := pvss.FinalKey(c.scheme, c.domain, transcript)
			Expect(err).NotTo(HaveOccurred())

			aad := []byte("recovery-aad")
			ct, err := ciphertext.Encrypt(c.scheme, finalKey, []byte("recoverable secret"), aad, random.New())
			Expect(err).NotTo(HaveOccurred())

			// Every validator's unwrapped, unrefreshed private key share.
			originalShares := make([]kyber.Point, n)
			for i := 0; i < n; i++ {
				ctx, err := decryption.NewPrivateDecryptionContext(c.scheme, c.domain, i, c.keypairs[i], transcript.Shares[i], random.New())
				Expect(err).NotTo(HaveOccurred())
				originalShares[i] = ctx.PrivateKeyShare
			}

			secretBefore, err := combineAtIndices(c, ct, aad, indexRange(0, threshold), originalShares)
			Expect(err).NotTo(HaveOccurred())

			// Validator 15 is removed; the remaining 15 proactively refresh
			// targeting x_r = ω¹⁵, validator 15's own domain point, so the
			// recovered share reconstructs the removed validator's actual
			// original share rather than merely rotating everyone else's
			// (spec §8.9).
			xr := c.domain.Points[n-1]
			updates, err := refresh.PrepareShareUpdates(c.scheme, c.domain, threshold, xr, random.New())
			Expect(err).NotTo(HaveOccurred())

			refreshed := make([]kyber.Point, n-1)
			for i := 0; i < n-1; i++ {
				refreshed[i] = refresh.UpdateShareForRecovery(c.scheme, originalShares[i], updates.Updates[i])
			}

			points := make([]kyber.Scalar, threshold)
			fragments := make([]kyber.Point, threshold)
			contributingCommitments := make([]kyber.Point, threshold)
			for i := 0; i < threshold; i++ {
				points[i] = c.domain.Points[i]
				fragments[i] = refreshed[i]
				contributingCommitments[i] = transcript.Commitments[i]
			}
			recovered, err := refresh.RecoverShareFromUpdatedPrivateShares(c.scheme, threshold, points, fragments, xr)
			Expect(err).NotTo(HaveOccurred())

			// Property #9: the reconstructed share equals the original
			// share at the removed validator's own position.
			Expect(recovered.Equal(originalShares[n-1])).To(BeTrue())
			Expect(refresh.VerifyRecoveredShare(c.scheme, points, contributingCommitments, xr, recovered)).To(Succeed())

			// The update polynomial vanishes at x_r but not at 0, so the
			// remaining validators contribute their original shares, which
			// lie on the same polynomial as the recovered one.
			postRecoveryIndices := append(indexRange(0, threshold-1), n-1)
			postRecoveryShares := append(append([]kyber.Point{}, originalShares[:threshold-1]...), recovered)
			secretAfter, err := combineAtIndices(c, ct, aad, postRecoveryIndices, postRecoveryShares)
			Expect(err).NotTo(HaveOccurred())

			Expect(secretAfter.Equal(secretBefore)).To(BeTrue())
		})
	})
})
