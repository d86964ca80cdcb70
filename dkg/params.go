package dkg

// Params are the session-wide DKG parameters (spec §3).
type Params struct {
	Tau       string // session tag τ
	SharesNum int    // N, must be a power of two
	Threshold int    // t, 1 <= t <= N
}
