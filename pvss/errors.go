package pvss

import "errors"

// ErrInvalidTranscript is returned when a PVSS transcript fails either the
// degree check or the per-index share/commitment pairing check (spec §4.2,
// §7).
var ErrInvalidTranscript = errors.New("pvss: transcript failed verification")

// ErrLengthMismatch is returned when a transcript's commitment/share vectors
// don't match the cohort size.
var ErrLengthMismatch = errors.New("pvss: commitments/shares length mismatch with validator count")

// ErrInsufficientAggregation is returned by Aggregate when it is given no
// transcripts (spec §7). Aggregate does not compare the number of
// transcripts against the threshold.
var ErrInsufficientAggregation = errors.New("pvss: fewer than threshold transcripts in aggregate")
