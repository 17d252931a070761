package utils

import "testing"

func TestGenerateAndValidateToken(t *testing.T) {
	token, err := GenerateToken("64f1c0a2b3d4e5f6a7b8c9d0", "admin")
	if err != nil {
		t.Fatalf("GenerateToken returned error: %v", err)
	}
	if token == "" {
		t.Fatal("GenerateToken returned empty token")
	}

	claims, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken returned error: %v", err)
	}
	if claims.ID != "64f1c0a2b3d4e5f6a7b8c9d0" {
		t.Errorf("claims.ID = %q, want 64f1c0a2b3d4e5f6a7b8c9d0", claims.ID)
	}
	if claims.Role != "admin" {
		t.Errorf("claims.Role = %q, want admin", claims.Role)
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	if _, err := ValidateToken("not.a.token"); err == nil {
		t.Error("expected error for malformed token, got nil")
	}
	if _, err := ValidateToken(""); err == nil {
		t.Error("expected error for empty token, got nil")
	}
}

func TestValidateTokenRejectsTampered(t *testing.T) {
	token, err := GenerateToken("64f1c0a2b3d4e5f6a7b8c9d0", "client")
	if err != nil {
		t.Fatalf("GenerateToken returned error: %v", err)
	}

	tampered := token[:len(token)-2] + "xx"
	if _, err := ValidateToken(tampered); err == nil {
		t.Error("expected error for tampered token, got nil")
	}
}
