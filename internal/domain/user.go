package domain

import "time"

// Status is the lifecycle state of a user record.
type Status int

const (
	StatusUnknown Status = iota
	StatusActive
	StatusBlocked
	StatusDeleted
)

func (s Status) String() string {
	switch s {
	case StatusActive:
		return "ACTIVE"
	case StatusBlocked:
		return "BLOCKED"
	case StatusDeleted:
		return "DELETED"
	default:
		return "UNKNOWN"
	}
}

// ParseStatus maps a stored status string back to its Status value.
func ParseStatus(raw string) Status {
	switch raw {
	case "ACTIVE":
		return StatusActive
	case "BLOCKED":
		return StatusBlocked
	case "DELETED":
		return StatusDeleted
	default:
		return StatusUnknown
	}
}

// User is the registered identity tracked by the service. ID stays empty
// until the lifecycle layer assigns one, PasswordHash until it hashes the
// plaintext; the persistence layer only ever reads the record.
type User struct {
	ID           string
	Name         string
	Document     Document
	Status       Status
	PasswordHash string
	BirthDate    BirthDate
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewUser builds an active record with both timestamps taken from now.
func NewUser(name string, document Document, birthDate BirthDate, now time.Time) User {
	now = now.UTC()
	return User{
		Name:      name,
		Document:  document,
		Status:    StatusActive,
		BirthDate: birthDate,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Equal compares identity-defining fields only. The password hash and the
// timestamps are deliberately excluded: the hash is security material and
// the timestamps are derived bookkeeping, neither defines who the user is.
func (u User) Equal(other User) bool {
	return u.ID == other.ID &&
		u.Document == other.Document &&
		u.BirthDate.Equal(other.BirthDate) &&
		u.Name == other.Name &&
		u.Status == other.Status
}
