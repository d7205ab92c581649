// Package cryptox implements the credential hashing scheme used for stored
// user passwords: a per-user random salt appended to the password and a
// single SHA-512 pass, hex-encoded.
//
// Stored rows hold only the digest and salt, so any change to the scheme
// makes existing users unable to log in. It is not a slow KDF.
package cryptox

import (
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"

	"github.com/dmitrijs2005/simplefilehost/internal/common"
)

// SaltSize is the number of random bytes in a salt before hex encoding.
const SaltSize = 16

// GenerateSalt returns SaltSize random bytes, hex-encoded.
func GenerateSalt() (string, error) {
	return common.MakeRandHexString(SaltSize)
}

// HashPassword returns hex(SHA-512(password || salt)).
func HashPassword(password, salt string) string {
	sum := sha512.Sum512([]byte(password + salt))
	return hex.EncodeToString(sum[:])
}

// VerifyPassword recomputes the hash of candidate and compares it with
// storedHash in constant time.
func VerifyPassword(candidate, storedHash, storedSalt string) bool {
	computed := HashPassword(candidate, storedSalt)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(storedHash)) == 1
}
