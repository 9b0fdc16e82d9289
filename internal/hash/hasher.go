// Package hash derives and verifies peppered password hashes.
//
// Each hash gets a fresh random 8 character alphanumeric salt. The salt and
// the server-side pepper are folded into a single 16 byte buffer that feeds
// scrypt together with the plaintext; the cost factor sets N = 1 << cost.
// Only the public salt ends up in the encoded string, never the pepper, so a
// stolen hash cannot be attacked without the server secret.
package hash

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/crypto/scrypt"
)

const (
	saltLength = 8
	saltBuffer = 16
	minCost    = 4
	maxCost    = 31
	keyLength  = 32

	saltAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
)

// ErrMalformedHash reports an encoded hash that cannot be decoded. A plain
// password mismatch is not an error; Verify returns false for that.
var ErrMalformedHash = errors.New("malformed password hash")

// Hasher is safe for concurrent use; it holds no mutable state.
type Hasher struct {
	pepper string
	cost   int
	random io.Reader
}

// New builds a Hasher. The pepper must be at least 8 characters and the cost
// must sit in [4, 31]; both are hard preconditions, not runtime conditions.
// Pass nil for random to use crypto/rand.
func New(pepper string, cost int, random io.Reader) (*Hasher, error) {
	if len(pepper) < saltLength {
		return nil, errors.New("pepper must have at least 8 characters")
	}
	if cost < minCost || cost > maxCost {
		return nil, fmt.Errorf("cost must be between %d and %d", minCost, maxCost)
	}
	if random == nil {
		random = rand.Reader
	}
	return &Hasher{pepper: pepper, cost: cost, random: random}, nil
}

// Hash derives an encoded hash for the plaintext. Two calls with the same
// plaintext produce different outputs because the salt is random per call.
func (h *Hasher) Hash(plain string) (string, error) {
	salt, err := h.newSalt()
	if err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	digest, err := h.derive(plain, salt)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("$scrypt$ln=%d$%s$%s",
		h.cost, salt, base64.RawStdEncoding.EncodeToString(digest)), nil
}

// Verify re-derives the digest from the parameters embedded in encoded plus
// the configured pepper and compares in constant time. A mismatch returns
// (false, nil); only an undecodable encoding is an error.
func (h *Hasher) Verify(plain, encoded string) (bool, error) {
	cost, salt, digest, err := decode(encoded)
	if err != nil {
		return false, err
	}

	derived, err := deriveWithCost(plain, salt, h.pepper, cost)
	if err != nil {
		return false, err
	}

	return subtle.ConstantTimeCompare(derived, digest) == 1, nil
}

func (h *Hasher) derive(plain, salt string) ([]byte, error) {
	return deriveWithCost(plain, salt, h.pepper, h.cost)
}

func deriveWithCost(plain, salt, pepper string, cost int) ([]byte, error) {
	digest, err := scrypt.Key([]byte(plain), saltWithPepper(salt, pepper), 1<<cost, 8, 1, keyLength)
	if err != nil {
		return nil, fmt.Errorf("derive key: %w", err)
	}
	return digest, nil
}

// saltWithPepper concatenates salt and pepper, then truncates or zero-pads
// the result into the fixed 16 byte salt buffer.
func saltWithPepper(salt, pepper string) []byte {
	buf := make([]byte, saltBuffer)
	copy(buf, salt+pepper)
	return buf
}

func (h *Hasher) newSalt() (string, error) {
	raw := make([]byte, saltLength)
	if _, err := io.ReadFull(h.random, raw); err != nil {
		return "", err
	}
	for i, b := range raw {
		raw[i] = saltAlphabet[int(b)%len(saltAlphabet)]
	}
	return string(raw), nil
}

func decode(encoded string) (cost int, salt string, digest []byte, err error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 5 || parts[0] != "" || parts[1] != "scrypt" {
		return 0, "", nil, ErrMalformedHash
	}

	costStr, ok := strings.CutPrefix(parts[2], "ln=")
	if !ok {
		return 0, "", nil, ErrMalformedHash
	}
	cost, err = strconv.Atoi(costStr)
	if err != nil || cost < minCost || cost > maxCost {
		return 0, "", nil, ErrMalformedHash
	}

	salt = parts[3]
	if len(salt) != saltLength {
		return 0, "", nil, ErrMalformedHash
	}

	digest, err = base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil || len(digest) != keyLength {
		return 0, "", nil, ErrMalformedHash
	}

	return cost, salt, digest, nil
}
