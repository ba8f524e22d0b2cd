package utils

import "testing"

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("Secret123")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if hash == "Secret123" {
		t.Fatal("hash must differ from the plain password")
	}
	if !CheckPassword(hash, "Secret123") {
		t.Error("expected password to match its hash")
	}
}

func TestHashPassword_Salted(t *testing.T) {
	first, _ := HashPassword("Secret123")
	second, _ := HashPassword("Secret123")

	if first == second {
		t.Error("expected different hashes for the same password")
	}
}

func TestCheckPassword_Mismatch(t *testing.T) {
	hash, _ := HashPassword("Secret123")

	if CheckPassword(hash, "secret123") {
		t.Error("expected mismatch for a different password")
	}
}

func TestCheckPassword_MalformedHash(t *testing.T) {
	if CheckPassword("not-a-bcrypt-hash", "Secret123") {
		t.Error("expected mismatch for a malformed hash")
	}
}
