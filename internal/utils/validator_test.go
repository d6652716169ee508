package utils

import "testing"

func TestValidateEmail(t *testing.T) {
	valid := []string{
		"alice@example.com",
		"alice.smith@example.co.uk",
		"alice+tag@example.com",
	}
	for _, email := range valid {
		if !ValidateEmail(email) {
			t.Errorf("Expected '%s' to be valid", email)
		}
	}

	invalid := []string{
		"",
		"not-an-email",
		"@example.com",
		"alice@",
		"alice@@example.com",
	}
	for _, email := range invalid {
		if ValidateEmail(email) {
			t.Errorf("Expected '%s' to be invalid", email)
		}
	}
}

func TestValidatePassword(t *testing.T) {
	valid := []string{"Password1", "Sup3rSecret", "Aa345678"}
	for _, password := range valid {
		if !ValidatePassword(password) {
			t.Errorf("Expected '%s' to be valid", password)
		}
	}

	invalid := []string{
		"",
		"Sh0rt",
		"alllowercase1",
		"ALLUPPERCASE1",
		"NoDigitsHere",
	}
	for _, password := range invalid {
		if ValidatePassword(password) {
			t.Errorf("Expected '%s' to be invalid", password)
		}
	}
}

func TestSanitizeEmail(t *testing.T) {
	if got := SanitizeEmail("  Alice@Example.COM "); got != "alice@example.com" {
		t.Errorf("Expected 'alice@example.com', got '%s'", got)
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("Sup3rSecret", 4)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}

	if !CheckPasswordHash("Sup3rSecret", hash) {
		t.Error("Expected the password to match its hash")
	}
	if CheckPasswordHash("WrongPassw0rd", hash) {
		t.Error("Expected a wrong password to be rejected")
	}
	if CheckPasswordHash("Sup3rSecret", "") {
		t.Error("An empty hash must never match, OAuth-only accounts have none")
	}
}
