package utils

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("hunter22", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "hunter22" {
		t.Fatal("hash equals plaintext")
	}
	if !VerifyPassword(hash, "hunter22") {
		t.Error("VerifyPassword rejected the right password")
	}
	if VerifyPassword(hash, "hunter23") {
		t.Error("VerifyPassword accepted the wrong password")
	}
}
