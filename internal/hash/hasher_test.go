package hash

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Low cost keeps the tests fast; the derivation path is identical.
const testCost = 4

func newTestHasher(t *testing.T) *Hasher {
	t.Helper()
	h, err := New("_pepper_", testCost, nil)
	require.NoError(t, err)
	return h
}

func TestNewPreconditions(t *testing.T) {
	_, err := New("short", testCost, nil)
	assert.Error(t, err)

	_, err = New("_pepper_", 3, nil)
	assert.Error(t, err)

	_, err = New("_pepper_", 32, nil)
	assert.Error(t, err)

	_, err = New("_pepper_", 31, nil)
	assert.NoError(t, err)
}

func TestHashIsSaltedPerCall(t *testing.T) {
	h := newTestHasher(t)

	first, err := h.Hash("password")
	require.NoError(t, err)
	second, err := h.Hash("password")
	require.NoError(t, err)
	third, err := h.Hash("password")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.NotEqual(t, first, third)
	assert.NotEqual(t, second, third)

	// Both outputs still verify.
	for _, encoded := range []string{first, second, third} {
		ok, err := h.Verify("password", encoded)
		require.NoError(t, err)
		assert.True(t, ok)
	}
}

func TestVerifyMismatchIsFalseNotError(t *testing.T) {
	h := newTestHasher(t)

	encoded, err := h.Hash("password")
	require.NoError(t, err)

	ok, err := h.Verify("another", encoded)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyMalformedEncoding(t *testing.T) {
	h := newTestHasher(t)

	for _, encoded := range []string{
		"",
		"plainly wrong",
		"$bcrypt$ln=4$AAAAAAAA$AAAA",
		"$scrypt$ln=99$AAAAAAAA$AAAA",
		"$scrypt$ln=4$tooshort$AAAA",
		"$scrypt$ln=4$AAAAAAAA$!!!not-base64!!!",
	} {
		_, err := h.Verify("password", encoded)
		assert.ErrorIs(t, err, ErrMalformedHash, encoded)
	}
}

func TestVerifyWithDifferentPepperFails(t *testing.T) {
	h := newTestHasher(t)
	other, err := New("another-pepper", testCost, nil)
	require.NoError(t, err)

	encoded, err := h.Hash("password")
	require.NoError(t, err)

	ok, err := other.Verify("password", encoded)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestEncodingShape(t *testing.T) {
	h := newTestHasher(t)

	encoded, err := h.Hash("password")
	require.NoError(t, err)

	parts := strings.Split(encoded, "$")
	require.Len(t, parts, 5)
	assert.Equal(t, "scrypt", parts[1])
	assert.Equal(t, "ln=4", parts[2])
	assert.Len(t, parts[3], saltLength)
	for _, c := range parts[3] {
		assert.Contains(t, saltAlphabet, string(c))
	}
}

func TestSaltWithPepperBuffer(t *testing.T) {
	// 8 byte salt + long pepper truncates at 16 bytes.
	buf := saltWithPepper("AAAAAAAA", "peppers-galore-way-too-long")
	assert.Equal(t, []byte("AAAAAAAApeppers-"), buf)

	// Short combination zero-pads.
	buf = saltWithPepper("AAAA", "pep")
	assert.Len(t, buf, saltBuffer)
	assert.Equal(t, []byte("AAAApep"), buf[:7])
	assert.Equal(t, make([]byte, 9), buf[7:])
}
