package service

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/daftarhq/daftar/database/model"
	"github.com/daftarhq/daftar/web/session"
)

func TestIssueAndVerifyToken(t *testing.T) {
	initTestDB(t)
	authService := AuthService{}

	user := &model.User{Id: 7, Name: "Sara", Role: model.RoleManager}
	token, err := authService.IssueToken(user)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	claims, err := authService.VerifyToken(token)
	if err != nil {
		t.Fatalf("verify token: %v", err)
	}
	if claims.UserId != 7 {
		t.Errorf("expected user id 7, got %d", claims.UserId)
	}
	if claims.Role != model.RoleManager {
		t.Errorf("expected role manager, got %s", claims.Role)
	}
	if claims.Name != "Sara" {
		t.Errorf("expected name Sara, got %s", claims.Name)
	}
}

func TestVerifyTokenRejectsGarbage(t *testing.T) {
	initTestDB(t)
	authService := AuthService{}

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"not a jwt", "hello world"},
		{"truncated", "eyJhbGciOiJIUzI1NiJ9.e30"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := authService.VerifyToken(tc.token); err != ErrInvalidToken {
				t.Errorf("expected ErrInvalidToken, got %v", err)
			}
		})
	}
}

func TestVerifyTokenRejectsTampered(t *testing.T) {
	initTestDB(t)
	authService := AuthService{}

	token, err := authService.IssueToken(&model.User{Id: 1, Name: "A", Role: model.RoleEmployee})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	// flip a character inside the signature
	last := token[len(token)-1]
	replacement := byte('A')
	if last == replacement {
		replacement = 'B'
	}
	tampered := token[:len(token)-1] + string(replacement)

	if _, err := authService.VerifyToken(tampered); err != ErrInvalidToken {
		t.Errorf("expected ErrInvalidToken for tampered token, got %v", err)
	}
}

func TestVerifyTokenRejectsWrongKey(t *testing.T) {
	initTestDB(t)
	authService := AuthService{}

	claims := &session.Claims{
		UserId: 1,
		Role:   model.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("some-other-key"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := authService.VerifyToken(token); err != ErrInvalidToken {
		t.Errorf("expected ErrInvalidToken for foreign signature, got %v", err)
	}
}

func TestVerifyTokenRejectsExpired(t *testing.T) {
	initTestDB(t)
	authService := AuthService{}

	claims := &session.Claims{
		UserId: 1,
		Role:   model.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(authService.secret())
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := authService.VerifyToken(token); err != ErrInvalidToken {
		t.Errorf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestVerifyTokenRejectsNoneAlgorithm(t *testing.T) {
	initTestDB(t)
	authService := AuthService{}

	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, &session.Claims{UserId: 1}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if !strings.Contains(token, ".") {
		t.Fatal("unexpected token shape")
	}

	if _, err := authService.VerifyToken(token); err != ErrInvalidToken {
		t.Errorf("expected ErrInvalidToken for alg=none token, got %v", err)
	}
}
