package domain

import (
	"errors"
	"strings"
)

// ErrMalformedDocument reports a structurally invalid document string.
// Checksum validity is a separate concern, see Document.IsValid.
var ErrMalformedDocument = errors.New("document must be exactly 11 digits")

const documentLength = 11

// Document is an 11 digit national identifier with two trailing check
// digits. Immutable; build one through ParseDocument.
type Document struct {
	digits [documentLength]int
}

// ParseDocument validates shape only: exactly 11 ASCII digits. It never
// rejects on checksum, so callers can distinguish "not a document" from
// "a document that fails verification".
func ParseDocument(raw string) (Document, error) {
	if len(raw) != documentLength {
		return Document{}, ErrMalformedDocument
	}

	var doc Document
	for i := 0; i < documentLength; i++ {
		c := raw[i]
		if c < '0' || c > '9' {
			return Document{}, ErrMalformedDocument
		}
		doc.digits[i] = int(c - '0')
	}
	return doc, nil
}

// IsValid reports whether the two check digits match the checksum. Sequences
// of a single repeated digit are invalid regardless of checksum.
func (d Document) IsValid() bool {
	return !d.allDigitsEqual() && d.checkDigitsValid()
}

func (d Document) allDigitsEqual() bool {
	for i := 1; i < documentLength; i++ {
		if d.digits[i] != d.digits[0] {
			return false
		}
	}
	return true
}

func (d Document) checkDigitsValid() bool {
	first := 0
	for i := 0; i < 9; i++ {
		first += d.digits[i] * (10 - i)
	}
	first = (first * 10) % 11
	if first >= 10 {
		first = 0
	}

	second := 0
	for i := 0; i < 10; i++ {
		second += d.digits[i] * (11 - i)
	}
	second = (second * 10) % 11
	if second >= 10 {
		second = 0
	}

	return first == d.digits[9] && second == d.digits[10]
}

// String renders the canonical 11 digit form used for display and for
// repository lookups.
func (d Document) String() string {
	var b strings.Builder
	b.Grow(documentLength)
	for _, digit := range d.digits {
		b.WriteByte(byte('0' + digit))
	}
	return b.String()
}
