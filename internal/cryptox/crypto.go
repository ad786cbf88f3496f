// Package cryptox hashes account passwords for the pass directory.
package cryptox

import (
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gateguard/internal/common"
	"golang.org/x/crypto/argon2"
)

const (
	saltLen = 16
	keyLen  = 32

	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
)

var ErrMalformedHash = errors.New("malformed password hash")

// DeriveKey stretches password with argon2id.
func DeriveKey(password []byte, salt []byte) []byte {
	return argon2.IDKey(password, salt, argonTime, argonMemory, argonThreads, keyLen)
}

// HashPassword returns an encoded "argon2id$<salt>$<key>" string suitable for storage.
func HashPassword(password []byte) string {
	salt := common.GenerateRandByteArray(saltLen)
	key := DeriveKey(password, salt)
	enc := base64.RawStdEncoding
	return fmt.Sprintf("argon2id$%s$%s", enc.EncodeToString(salt), enc.EncodeToString(key))
}

// VerifyPassword reports whether password matches an encoded hash produced by HashPassword.
func VerifyPassword(password []byte, encoded string) (bool, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 3 || parts[0] != "argon2id" {
		return false, ErrMalformedHash
	}

	enc := base64.RawStdEncoding
	salt, err := enc.DecodeString(parts[1])
	if err != nil {
		return false, ErrMalformedHash
	}
	want, err := enc.DecodeString(parts[2])
	if err != nil {
		return false, ErrMalformedHash
	}

	got := DeriveKey(password, salt)
	return subtle.ConstantTimeCompare(got, want) == 1, nil
}
