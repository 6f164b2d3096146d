// Package credential hashes switch passwords into the form the login
// endpoint expects.
package credential

import (
	"crypto/md5" //nolint:gosec // the switch login protocol mandates MD5
	"encoding/hex"
)

// Hash returns the lowercase hex MD5 digest of plaintext. The switch
// compares this value, so the algorithm cannot change.
func Hash(plaintext string) string {
	sum := md5.Sum([]byte(plaintext)) //nolint:gosec // see import
	return hex.EncodeToString(sum[:])
}
