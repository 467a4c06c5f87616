package service

import (
	"errors"
	"testing"

	"github.com/daftarhq/daftar/database/model"
)

func TestCreateUserDuplicateEmail(t *testing.T) {
	initTestDB(t)
	userService := UserService{}

	if _, _, err := userService.CreateUser("Lina", "lina@test.local", "secret123", model.RoleAccountant); err != nil {
		t.Fatalf("create user: %v", err)
	}
	if _, _, err := userService.CreateUser("Other", "lina@test.local", "secret456", model.RoleEmployee); !errors.Is(err, ErrEmailTaken) {
		t.Errorf("expected ErrEmailTaken, got %v", err)
	}
}

func TestCreateUserGeneratesTempPassword(t *testing.T) {
	initTestDB(t)
	userService := UserService{}

	user, tempPassword, err := userService.CreateUser("Karim", "karim@test.local", "", model.RoleDrafter)
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if tempPassword == "" {
		t.Fatal("expected a generated temporary password")
	}
	if checked := userService.CheckUser("karim@test.local", tempPassword, ""); checked == nil || checked.Id != user.Id {
		t.Error("temporary password does not authenticate the user")
	}
}

func TestCreateUserRejectsUnknownRole(t *testing.T) {
	initTestDB(t)
	userService := UserService{}

	if _, _, err := userService.CreateUser("X", "x@test.local", "secret123", model.Role("superuser")); err == nil {
		t.Error("expected error for unknown role")
	}
}

func TestCheckUser(t *testing.T) {
	initTestDB(t)
	userService := UserService{}

	if _, _, err := userService.CreateUser("Sara", "sara@test.local", "hunter22", model.RoleManager); err != nil {
		t.Fatalf("create user: %v", err)
	}

	tests := []struct {
		name     string
		email    string
		password string
		wantHit  bool
	}{
		{"valid credentials", "sara@test.local", "hunter22", true},
		{"wrong password", "sara@test.local", "hunter23", false},
		{"unknown email", "nobody@test.local", "hunter22", false},
		{"empty password", "sara@test.local", "", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			user := userService.CheckUser(tc.email, tc.password, "")
			if tc.wantHit && user == nil {
				t.Error("expected a user, got nil")
			}
			if !tc.wantHit && user != nil {
				t.Errorf("expected nil, got user %d", user.Id)
			}
		})
	}
}

func TestUpdateProfileKeepsEmptyFields(t *testing.T) {
	initTestDB(t)
	userService := UserService{}

	user, _, err := userService.CreateUser("Omar", "omar@test.local", "secret123", model.RoleEngineer)
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	updated, err := userService.UpdateProfile(user.Id, "Omar K.", "", "")
	if err != nil {
		t.Fatalf("update profile: %v", err)
	}
	if updated.Name != "Omar K." {
		t.Errorf("name not updated: %s", updated.Name)
	}
	if updated.Email != "omar@test.local" {
		t.Errorf("email should be unchanged, got %s", updated.Email)
	}
	if userService.CheckUser("omar@test.local", "secret123", "") == nil {
		t.Error("password should be unchanged")
	}
}
