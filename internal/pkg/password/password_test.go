package password

import "testing"

func TestHashAndVerify(t *testing.T) {
	hash, err := Hash("password123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if hash == "password123" {
		t.Fatal("hash must not equal the plaintext password")
	}
	if !Verify("password123", hash) {
		t.Error("correct password should verify")
	}
	if Verify("wrong-password", hash) {
		t.Error("wrong password should not verify")
	}
}

func TestHashesAreSalted(t *testing.T) {
	h1, err := Hash("password123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	h2, err := Hash("password123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h1 == h2 {
		t.Error("two hashes of the same password should differ")
	}
}

func TestValidatePassword(t *testing.T) {
	cases := []struct {
		password string
		want     bool
	}{
		{"password123", true},
		{"12345678", true},
		{"short", false},
		{"", false},
	}

	for _, tc := range cases {
		if got := ValidatePassword(tc.password); got != tc.want {
			t.Errorf("ValidatePassword(%q) = %v, want %v", tc.password, got, tc.want)
		}
	}
}
