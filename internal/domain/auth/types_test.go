package auth

import (
	"testing"
	"time"
)

func TestRoleFor(t *testing.T) {
	if RoleFor(true) != RoleAdmin {
		t.Fatalf("expected admin role")
	}
	if RoleFor(false) != RoleUser {
		t.Fatalf("expected user role")
	}
}

func TestSession_CanActAs(t *testing.T) {
	admin := Session{Username: "a", Role: RoleAdmin}
	user := Session{Username: "u1", Role: RoleUser}

	if !admin.CanActAs("u1") {
		t.Errorf("admin should act for any user")
	}
	if !user.CanActAs("u1") {
		t.Errorf("user should act for themselves")
	}
	if user.CanActAs("u2") {
		t.Errorf("user must not act for another user")
	}
	if (Session{Role: RoleUser}).CanActAs("") {
		t.Errorf("anonymous session must not match empty username")
	}
}

func TestSession_Expired(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	s := Session{ExpiresAt: now.Add(time.Minute)}
	if s.Expired(now) {
		t.Errorf("session should still be valid")
	}
	if !s.Expired(now.Add(time.Minute)) {
		t.Errorf("session should expire at ExpiresAt")
	}
}
