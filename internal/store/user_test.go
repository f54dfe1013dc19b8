package store

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"craftfolio/internal/models"
)

func TestUserStoreCreateAndFind(t *testing.T) {
	db := testDB(t)
	us := NewUserStore(db)

	email := "create-find@test.local"
	t.Cleanup(func() { cleanUsers(t, db, email) })

	user, err := us.Create("Test User", email, "password123")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if user.ID == uuid.Nil {
		t.Error("Create() returned zero id")
	}
	if user.PasswordHash == "password123" {
		t.Error("password stored in plaintext")
	}
	if user.IsAdmin {
		t.Error("new user should not be admin")
	}

	byEmail, err := us.FindByEmail(email)
	if err != nil {
		t.Fatalf("FindByEmail() error = %v", err)
	}
	if byEmail == nil || byEmail.ID != user.ID {
		t.Errorf("FindByEmail() = %v, want id %v", byEmail, user.ID)
	}

	byID, err := us.FindByID(user.ID)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if byID == nil || byID.Email != email {
		t.Errorf("FindByID() = %v, want email %q", byID, email)
	}
}

func TestUserStoreDuplicateEmail(t *testing.T) {
	db := testDB(t)
	us := NewUserStore(db)

	email := "duplicate@test.local"
	t.Cleanup(func() { cleanUsers(t, db, email) })

	if _, err := us.Create("First", email, "password123"); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	_, err := us.Create("Second", email, "password456")
	if err != models.ErrEmailTaken {
		t.Errorf("Create() duplicate error = %v, want ErrEmailTaken", err)
	}
}

func TestUserStoreFindMissing(t *testing.T) {
	db := testDB(t)
	us := NewUserStore(db)

	byEmail, err := us.FindByEmail("nobody@test.local")
	if err != nil {
		t.Fatalf("FindByEmail() error = %v", err)
	}
	if byEmail != nil {
		t.Errorf("FindByEmail(missing) = %v, want nil", byEmail)
	}

	byID, err := us.FindByID(uuid.New())
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if byID != nil {
		t.Errorf("FindByID(missing) = %v, want nil", byID)
	}
}

func TestUserStoreCheckPassword(t *testing.T) {
	db := testDB(t)
	us := NewUserStore(db)

	email := "checkpass@test.local"
	t.Cleanup(func() { cleanUsers(t, db, email) })

	user, err := us.Create("Check", email, "correct-horse")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if !us.CheckPassword(user, "correct-horse") {
		t.Error("CheckPassword() rejected the right password")
	}
	if us.CheckPassword(user, "wrong-horse") {
		t.Error("CheckPassword() accepted a wrong password")
	}
}

func TestUserStoreResetTokenFlow(t *testing.T) {
	db := testDB(t)
	us := NewUserStore(db)

	email := "reset-flow@test.local"
	t.Cleanup(func() { cleanUsers(t, db, email) })

	user, err := us.Create("Reset", email, "old-password")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	token := "aabbccddeeff00112233aabbccddeeff00112233"
	if err := us.SetResetToken(user.ID, token, time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("SetResetToken() error = %v", err)
	}

	found, err := us.FindByResetToken(token)
	if err != nil {
		t.Fatalf("FindByResetToken() error = %v", err)
	}
	if found == nil || found.ID != user.ID {
		t.Fatalf("FindByResetToken() = %v, want id %v", found, user.ID)
	}

	if err := us.UpdatePassword(user.ID, "new-password"); err != nil {
		t.Fatalf("UpdatePassword() error = %v", err)
	}

	// Token is single-use: UpdatePassword clears it.
	cleared, err := us.FindByResetToken(token)
	if err != nil {
		t.Fatalf("FindByResetToken() error = %v", err)
	}
	if cleared != nil {
		t.Error("reset token survived the password change")
	}

	updated, err := us.FindByID(user.ID)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if !us.CheckPassword(updated, "new-password") {
		t.Error("new password not accepted")
	}
	if us.CheckPassword(updated, "old-password") {
		t.Error("old password still accepted")
	}
}

func TestUserStoreExpiredResetToken(t *testing.T) {
	db := testDB(t)
	us := NewUserStore(db)

	email := "expired-token@test.local"
	t.Cleanup(func() { cleanUsers(t, db, email) })

	user, err := us.Create("Expired", email, "password123")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	token := "00112233445566778899aabbccddeeff00112233"
	if err := us.SetResetToken(user.ID, token, time.Now().Add(-time.Minute)); err != nil {
		t.Fatalf("SetResetToken() error = %v", err)
	}

	found, err := us.FindByResetToken(token)
	if err != nil {
		t.Fatalf("FindByResetToken() error = %v", err)
	}
	if found != nil {
		t.Error("expired token still resolves to a user")
	}
}
