package util

import (
	"testing"
	"time"

	"quizbank_backend/internal/model"
)

func TestJWTRoundTrip(t *testing.T) {
	user := &model.User{Username: "alice", Role: model.Admin}
	user.ID = 42

	token, err := GenerateJWT(user, "test-secret", time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	claims, err := ParseJWT(token, "test-secret")
	if err != nil {
		t.Fatalf("ParseJWT: %v", err)
	}
	if claims.UserID != 42 || claims.Username != "alice" || claims.Role != model.Admin {
		t.Fatalf("unexpected claims %+v", claims)
	}
}

func TestJWTWrongSecretRejected(t *testing.T) {
	user := &model.User{Username: "alice", Role: model.Student}
	user.ID = 1

	token, err := GenerateJWT(user, "test-secret", time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}
	if _, err := ParseJWT(token, "other-secret"); err == nil {
		t.Fatal("expected parse failure with wrong secret")
	}
}

func TestJWTExpiredRejected(t *testing.T) {
	user := &model.User{Username: "alice", Role: model.Student}
	user.ID = 1

	token, err := GenerateJWT(user, "test-secret", -time.Minute)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}
	if _, err := ParseJWT(token, "test-secret"); err == nil {
		t.Fatal("expected parse failure for expired token")
	}
}
