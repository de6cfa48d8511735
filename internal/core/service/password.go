package service

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/argon2"
)

const saltLength = 16

// Argon2id parameters. Deliberately slow and memory-hard; tuned for
// interactive logins.
const (
	argonTime    uint32 = 2
	argonMemory  uint32 = 64 * 1024
	argonThreads uint8  = 2
	argonKeyLen  uint32 = 32
)

// PasswordHasher derives and verifies salted password digests. Hashing is
// deterministic for a fixed (password, salt) pair and one-way; the salt is
// stored alongside the digest and never reused across accounts.
type PasswordHasher struct{}

func NewPasswordHasher() *PasswordHasher {
	return &PasswordHasher{}
}

// GenerateSalt returns a fresh random salt, base64-encoded.
func (h *PasswordHasher) GenerateSalt() (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	return base64.StdEncoding.EncodeToString(salt), nil
}

// Hash derives the digest for a password under the given salt.
func (h *PasswordHasher) Hash(password, salt string) string {
	digest := argon2.IDKey([]byte(password), []byte(salt), argonTime, argonMemory, argonThreads, argonKeyLen)
	return base64.StdEncoding.EncodeToString(digest)
}

// Verify reports whether the password produces the expected digest under
// the stored salt. The comparison is constant-time.
func (h *PasswordHasher) Verify(password, salt, expected string) bool {
	digest := h.Hash(password, salt)
	return subtle.ConstantTimeCompare([]byte(digest), []byte(expected)) == 1
}
