package domain

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestUserStatusValid(t *testing.T) {
	for _, s := range UserStatuses() {
		if !s.Valid() {
			t.Errorf("Expected status %q to be valid", s)
		}
	}

	for _, s := range []UserStatus{"", "ativo", "bloqueado", "Active"} {
		if s.Valid() {
			t.Errorf("Expected status %q to be invalid", s)
		}
	}
}

func TestUserJSONHidesHashes(t *testing.T) {
	u := User{
		ID:                 NewID(),
		Name:               "Maria",
		Handle:             "maria",
		Email:              "maria@example.com",
		SecretHash:         "$2a$10$secrethash",
		SecurityAnswerHash: "$argon2id$answerhash",
		Status:             UserStatusActive,
	}

	raw, err := json.Marshal(u)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	body := string(raw)

	for _, leaked := range []string{"secrethash", "answerhash", "senha", "respostaSeguranca"} {
		if strings.Contains(body, leaked) {
			t.Errorf("Expected %q to be absent from %s", leaked, body)
		}
	}
	for _, key := range []string{`"_id"`, `"nome"`, `"apelido"`, `"email"`, `"status"`, `"createdAt"`, `"updatedAt"`} {
		if !strings.Contains(body, key) {
			t.Errorf("Expected key %s in %s", key, body)
		}
	}
}

func TestUserPatchApply(t *testing.T) {
	now := time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)
	u := User{Name: "Old", Handle: "old", Email: "old@example.com", Status: UserStatusActive}

	if !(UserPatch{}).IsEmpty() {
		t.Error("Expected zero patch to be empty")
	}

	name := "New"
	status := UserStatusBanned
	p := UserPatch{Name: &name, Status: &status}
	if p.IsEmpty() {
		t.Error("Expected patch to be non-empty")
	}
	p.Apply(&u, now)

	if u.Name != "New" || u.Status != UserStatusBanned {
		t.Errorf("Expected patched fields, got %+v", u)
	}
	if u.Handle != "old" || u.Email != "old@example.com" {
		t.Errorf("Expected untouched fields to stay, got %+v", u)
	}
	if !u.UpdatedAt.Equal(now) {
		t.Errorf("Expected UpdatedAt %v, got %v", now, u.UpdatedAt)
	}
}
