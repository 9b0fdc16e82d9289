package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleUser(t *testing.T) User {
	t.Helper()
	doc, err := ParseDocument("40735626065")
	require.NoError(t, err)

	user := NewUser("Claudion du fret", doc, NewBirthDate(date(1999, time.September, 5)), date(2024, time.January, 2))
	user.ID = "some-uuid"
	user.PasswordHash = "hash"
	return user
}

func TestNewUserDefaults(t *testing.T) {
	user := sampleUser(t)
	assert.Equal(t, StatusActive, user.Status)
	assert.Equal(t, user.CreatedAt, user.UpdatedAt)
	assert.Equal(t, time.UTC, user.CreatedAt.Location())
}

func TestUserEqualIgnoresHashAndTimestamps(t *testing.T) {
	a := sampleUser(t)
	b := a
	b.PasswordHash = "a completely different hash"
	b.CreatedAt = b.CreatedAt.Add(time.Hour)
	b.UpdatedAt = b.UpdatedAt.Add(2 * time.Hour)

	assert.True(t, a.Equal(b))
}

func TestUserEqualComparesIdentityFields(t *testing.T) {
	base := sampleUser(t)

	otherDoc, err := ParseDocument("52976776024")
	require.NoError(t, err)

	mutations := map[string]func(*User){
		"id":        func(u *User) { u.ID = "other" },
		"name":      func(u *User) { u.Name = "other" },
		"document":  func(u *User) { u.Document = otherDoc },
		"status":    func(u *User) { u.Status = StatusBlocked },
		"birthdate": func(u *User) { u.BirthDate = NewBirthDate(date(2000, time.January, 1)) },
	}

	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			changed := base
			mutate(&changed)
			assert.False(t, base.Equal(changed))
		})
	}
}

func TestStatusRoundTrip(t *testing.T) {
	for _, s := range []Status{StatusActive, StatusBlocked, StatusDeleted} {
		assert.Equal(t, s, ParseStatus(s.String()))
	}
	assert.Equal(t, StatusUnknown, ParseStatus("whatever"))
	assert.Equal(t, "UNKNOWN", StatusUnknown.String())
}
