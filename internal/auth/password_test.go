package auth

import "testing"

func TestHashAndVerifyPassword(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("hunter2!")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if hash == "hunter2!" {
		t.Fatal("hash equals plaintext")
	}

	if !VerifyPassword(hash, "hunter2!") {
		t.Fatal("correct password rejected")
	}
	if VerifyPassword(hash, "hunter3!") {
		t.Fatal("wrong password accepted")
	}
}

func TestVerifyPassword_BadHash(t *testing.T) {
	t.Parallel()

	if VerifyPassword("not-a-bcrypt-hash", "anything") {
		t.Fatal("malformed hash accepted")
	}
}
