// Package cryptox implements the salted one-way password digest stored in the
// user directory.
package cryptox

import (
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/storefront/internal/common"
	"golang.org/x/crypto/argon2"
)

// ErrMalformedDigest is returned when an encoded digest cannot be parsed.
var ErrMalformedDigest = errors.New("malformed password digest")

// Params holds the argon2id cost parameters. Memory is in KiB.
type Params struct {
	Time    uint32
	Memory  uint32
	Threads uint8
	KeyLen  uint32
	SaltLen int
}

// DefaultParams is used for every digest created in production.
var DefaultParams = Params{Time: 1, Memory: 64 * 1024, Threads: 4, KeyLen: 32, SaltLen: 16}

// Upper bounds accepted for any digest, created or decoded.
const (
	MaxMemory  = 1 << 20
	MaxTime    = 16
	MaxThreads = 64
	MaxKeyLen  = 64
	MaxSaltLen = 64
)

// check rejects parameters argon2 cannot run with and costs above the limits.
func (p Params) check() error {
	switch {
	case p.Time < 1 || p.Time > MaxTime:
		return fmt.Errorf("t=%d out of range", p.Time)
	case p.Threads < 1 || p.Threads > MaxThreads:
		return fmt.Errorf("p=%d out of range", p.Threads)
	case p.Memory > MaxMemory:
		return fmt.Errorf("m=%d above %d", p.Memory, MaxMemory)
	case p.KeyLen < 1 || p.KeyLen > MaxKeyLen:
		return fmt.Errorf("key length %d out of range", p.KeyLen)
	case p.SaltLen < 1 || p.SaltLen > MaxSaltLen:
		return fmt.Errorf("salt length %d out of range", p.SaltLen)
	}
	return nil
}

// DeriveKey runs argon2id over password and salt.
func DeriveKey(password, salt []byte, p Params) []byte {
	return argon2.IDKey(password, salt, p.Time, p.Memory, p.Threads, p.KeyLen)
}

// HashPassword derives a digest from password under a fresh random salt and
// returns it in the PHC string format:
//
//	$argon2id$v=19$m=65536,t=1,p=4$<salt>$<key>
//
// Salt and key are unpadded standard base64. The parameters travel with the
// digest, so raising DefaultParams later does not invalidate stored users.
func HashPassword(password []byte, p Params) (string, error) {
	if err := p.check(); err != nil {
		return "", fmt.Errorf("invalid argon2 params: %w", err)
	}
	salt := common.GenerateRandByteArray(p.SaltLen)
	key := DeriveKey(password, salt, p)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, p.Memory, p.Time, p.Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// VerifyPassword reports whether password matches the encoded digest.
// The comparison is constant time.
func VerifyPassword(password []byte, encoded string) (bool, error) {
	p, salt, key, err := decode(encoded)
	if err != nil {
		return false, err
	}
	candidate := DeriveKey(password, salt, p)
	return subtle.ConstantTimeCompare(key, candidate) == 1, nil
}

// CheckDigest reports whether encoded is a digest VerifyPassword would accept.
func CheckDigest(encoded string) error {
	_, _, _, err := decode(encoded)
	return err
}

func decode(encoded string) (Params, []byte, []byte, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" {
		return Params{}, nil, nil, ErrMalformedDigest
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return Params{}, nil, nil, fmt.Errorf("%w: %v", ErrMalformedDigest, err)
	}
	if version != argon2.Version {
		return Params{}, nil, nil, fmt.Errorf("%w: unsupported version %d", ErrMalformedDigest, version)
	}

	var p Params
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.Memory, &p.Time, &p.Threads); err != nil {
		return Params{}, nil, nil, fmt.Errorf("%w: %v", ErrMalformedDigest, err)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return Params{}, nil, nil, fmt.Errorf("%w: salt: %v", ErrMalformedDigest, err)
	}
	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return Params{}, nil, nil, fmt.Errorf("%w: key", ErrMalformedDigest)
	}
	p.SaltLen = len(salt)
	p.KeyLen = uint32(len(key))
	// argon2 panics on zero rounds or zero parallelism and allocates m KiB.
	if err := p.check(); err != nil {
		return Params{}, nil, nil, fmt.Errorf("%w: %v", ErrMalformedDigest, err)
	}

	return p, salt, key, nil
}
