// Package idgen produces opaque identifiers for new entities.
package idgen

import "github.com/google/uuid"

// Generator yields a globally unique identifier string. Collision handling
// is the persistence layer's job via its primary key constraint.
type Generator interface {
	Generate() string
}

// UUID generates random version 4 UUIDs.
type UUID struct{}

func NewUUID() UUID {
	return UUID{}
}

func (UUID) Generate() string {
	return uuid.NewString()
}
