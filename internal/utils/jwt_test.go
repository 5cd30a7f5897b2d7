package utils

import "testing"

func TestAuthTokenRoundTrip(t *testing.T) {
	tok, err := NewAuthToken("s3cret", 42, true)
	if err != nil {
		t.Fatalf("NewAuthToken: %v", err)
	}
	ident, err := ParseAuthToken("s3cret", tok)
	if err != nil {
		t.Fatalf("ParseAuthToken: %v", err)
	}
	if ident.UserID != 42 {
		t.Errorf("UserID = %d, want 42", ident.UserID)
	}
	if !ident.IsAdmin {
		t.Errorf("IsAdmin = false, want true")
	}
}

func TestAuthTokenNonAdmin(t *testing.T) {
	tok, err := NewAuthToken("s3cret", 7, false)
	if err != nil {
		t.Fatalf("NewAuthToken: %v", err)
	}
	ident, err := ParseAuthToken("s3cret", tok)
	if err != nil {
		t.Fatalf("ParseAuthToken: %v", err)
	}
	if ident.IsAdmin {
		t.Errorf("IsAdmin = true, want false")
	}
}

func TestParseAuthTokenWrongSecret(t *testing.T) {
	tok, err := NewAuthToken("s3cret", 42, false)
	if err != nil {
		t.Fatalf("NewAuthToken: %v", err)
	}
	if _, err := ParseAuthToken("other", tok); err != ErrInvalidToken {
		t.Errorf("err = %v, want ErrInvalidToken", err)
	}
}

func TestParseAuthTokenGarbage(t *testing.T) {
	if _, err := ParseAuthToken("s3cret", "not.a.token"); err != ErrInvalidToken {
		t.Errorf("err = %v, want ErrInvalidToken", err)
	}
}
