package oracle

import "errors"

// ErrExhausted is the sentinel a Source implementation returns from Next
// once it has delivered every envelope it currently has for this session.
// Drive treats it as a clean stopping point, not a failure.
var ErrExhausted = errors.New("oracle: no more envelopes available")
