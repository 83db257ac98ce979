// Package cryptox holds the credential primitives: per-account salts, secret
// hashing and one-time access codes.
package cryptox

import (
	"crypto/md5"
	"crypto/subtle"
	"encoding/hex"

	"github.com/dmitrijs2005/userholder/internal/common"
	"golang.org/x/crypto/argon2"
)

const saltSize = 16

// Hasher turns a secret and an account salt into a 32-character lowercase
// hex digest.
type Hasher interface {
	Hash(secret, salt string) string
}

// DeriveSalt returns 16 random bytes rendered as a hex string.
func DeriveSalt() string {
	return common.MakeRandHexString(saltSize)
}

// MD5Hasher computes hex(md5(salt || secret)).
//
// This is the legacy scheme and the one imported records were hashed with.
// It is a fast digest with no work factor and must not be used to protect
// new credentials; prefer Argon2Hasher.
type MD5Hasher struct{}

func (MD5Hasher) Hash(secret, salt string) string {
	sum := md5.Sum([]byte(salt + secret))
	return hex.EncodeToString(sum[:])
}

// Argon2Hasher derives a 16-byte argon2id key from the secret and salt, so
// the digest keeps the legacy 32 hex character shape.
type Argon2Hasher struct {
	Time    uint32
	Memory  uint32
	Threads uint8
}

// NewArgon2Hasher returns an Argon2Hasher with interactive-login parameters.
func NewArgon2Hasher() *Argon2Hasher {
	return &Argon2Hasher{Time: 1, Memory: 64 * 1024, Threads: 4}
}

func (h *Argon2Hasher) Hash(secret, salt string) string {
	key := argon2.IDKey([]byte(secret), []byte(salt), h.Time, h.Memory, h.Threads, 16)
	return hex.EncodeToString(key)
}

// Equal compares two digests in constant time.
func Equal(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
