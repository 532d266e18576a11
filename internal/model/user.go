package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// User is the profile document stored for every registered identity.
// ID is the storage key assigned by the document store; UID is the
// immutable identifier issued by the auth layer at registration.
// The two are distinct on purpose: lookups go through UID, updates
// through ID.
type User struct {
	ID        int64     `json:"id"`
	UID       uuid.UUID `json:"uid"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	AvatarURL *string   `json:"avatar_url"`
	CreatedAt time.Time `json:"created_at"`
}

func (u *User) DisplayName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// Credential is the auth-side record, committed independently from the
// profile document. Password state lives here and only here.
type Credential struct {
	UID          uuid.UUID
	Email        string
	PasswordHash string
}
