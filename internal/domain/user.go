package domain

import (
	"time"
)

// UserStatus is the account state of a user.
type UserStatus string

// User status values, as they appear on the wire and in storage.
const (
	UserStatusActive   UserStatus = "Ativo"
	UserStatusInactive UserStatus = "Inativo"
	UserStatusBanned   UserStatus = "Banido"
)

var userStatuses = []UserStatus{UserStatusActive, UserStatusInactive, UserStatusBanned}

// UserStatuses returns every valid user status in declaration order.
func UserStatuses() []UserStatus {
	out := make([]UserStatus, len(userStatuses))
	copy(out, userStatuses)
	return out
}

// Valid reports whether s is one of the known user statuses.
func (s UserStatus) Valid() bool {
	for _, v := range userStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// User is a registered account that owns tasks.
// The handle and the email are unique across users.
type User struct {
	ID                 string     `json:"_id"`
	Name               string     `json:"nome"`
	Handle             string     `json:"apelido"`
	Email              string     `json:"email"`
	SecretHash         string     `json:"-"` // bcrypt, never exposed
	SecurityAnswerHash string     `json:"-"` // argon2id, never exposed
	Status             UserStatus `json:"status"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}

// UserPatch carries the fields of a partial user update. Secrets are already
// hashed by the time they reach a patch.
type UserPatch struct {
	Name               *string
	Handle             *string
	Email              *string
	SecretHash         *string
	SecurityAnswerHash *string
	Status             *UserStatus
}

// IsEmpty reports whether the patch changes nothing.
func (p UserPatch) IsEmpty() bool {
	return p.Name == nil && p.Handle == nil && p.Email == nil &&
		p.SecretHash == nil && p.SecurityAnswerHash == nil && p.Status == nil
}

// Apply writes the patch onto u and stamps UpdatedAt with now.
func (p UserPatch) Apply(u *User, now time.Time) {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Handle != nil {
		u.Handle = *p.Handle
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.SecretHash != nil {
		u.SecretHash = *p.SecretHash
	}
	if p.SecurityAnswerHash != nil {
		u.SecurityAnswerHash = *p.SecurityAnswerHash
	}
	if p.Status != nil {
		u.Status = *p.Status
	}
	u.UpdatedAt = now
}
