// Package cryptox implements one-way password hashing with argon2id.
// Hashes are stored in the standard self-describing encoded form, so
// parameters can be tuned later without invalidating existing records.
package cryptox

import (
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/skilltrackhq/backend/internal/common"
	"golang.org/x/crypto/argon2"
)

// Argon2id parameters. Memory is in KiB.
const (
	timeCost    = 1
	memoryCost  = 64 * 1024
	parallelism = 4
	saltLength  = 16
	keyLength   = 32
)

var ErrMalformedHash = errors.New("malformed password hash")

// HashPassword derives an argon2id hash of the plaintext with a fresh random
// salt and returns it encoded as
// $argon2id$v=19$m=<mem>,t=<time>,p=<par>$<salt>$<hash>.
// The plaintext is never logged or stored.
func HashPassword(plaintext string) (string, error) {
	salt := common.GenerateRandByteArray(saltLength)

	key := argon2.IDKey([]byte(plaintext), salt, timeCost, memoryCost, parallelism, keyLength)

	encoded := fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, memoryCost, timeCost, parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	)

	return encoded, nil
}

// VerifyPassword re-derives the key from the candidate plaintext using the
// parameters embedded in the encoded hash and compares in constant time.
// A mismatch returns (false, nil); a hash that cannot be parsed returns
// ErrMalformedHash.
func VerifyPassword(encoded, plaintext string) (bool, error) {
	salt, key, mem, time, par, err := decodeHash(encoded)
	if err != nil {
		return false, err
	}

	candidate := argon2.IDKey([]byte(plaintext), salt, time, mem, par, uint32(len(key)))

	return subtle.ConstantTimeCompare(key, candidate) == 1, nil
}

func decodeHash(encoded string) (salt, key []byte, mem uint32, time uint32, par uint8, err error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return nil, nil, 0, 0, 0, ErrMalformedHash
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return nil, nil, 0, 0, 0, ErrMalformedHash
	}
	if version != argon2.Version {
		return nil, nil, 0, 0, 0, ErrMalformedHash
	}

	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &mem, &time, &par); err != nil {
		return nil, nil, 0, 0, 0, ErrMalformedHash
	}

	salt, err = base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return nil, nil, 0, 0, 0, ErrMalformedHash
	}

	key, err = base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return nil, nil, 0, 0, 0, ErrMalformedHash
	}

	return salt, key, mem, time, par, nil
}
