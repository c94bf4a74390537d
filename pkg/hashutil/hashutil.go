package hashutil

import (
	"encoding/hex"

	"lukechampine.com/blake3"
)

// fingerprintLen is the number of hex characters kept from the full digest.
// 12 characters is plenty to correlate log lines for the same page content.
const fingerprintLen = 12

// Fingerprint returns a short BLAKE3 hex digest of data.
//
// Fingerprints are observational only: they appear in logs and diagnostics
// so that two fetches of identical upstream content can be recognized, and
// MUST NOT be used to derive control-flow decisions.
func Fingerprint(data []byte) string {
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])[:fingerprintLen]
}
