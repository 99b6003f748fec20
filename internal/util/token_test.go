package util

import "testing"

func TestAccessTokenDeterministic(t *testing.T) {
	a := AccessToken("survey-1", "user@example.com")
	b := AccessToken("survey-1", "user@example.com")
	if a != b {
		t.Fatalf("token not deterministic: %s vs %s", a, b)
	}
	if len(a) != 64 {
		t.Fatalf("unexpected token length: %d", len(a))
	}
}

func TestAccessTokenNormalizesEmail(t *testing.T) {
	a := AccessToken("survey-1", "User@Example.com")
	b := AccessToken("survey-1", "  user@example.com ")
	if a != b {
		t.Fatalf("email normalization broken: %s vs %s", a, b)
	}
}

func TestAccessTokenVariesByInput(t *testing.T) {
	base := AccessToken("survey-1", "user@example.com")
	if AccessToken("survey-2", "user@example.com") == base {
		t.Fatal("same token for different surveys")
	}
	if AccessToken("survey-1", "other@example.com") == base {
		t.Fatal("same token for different emails")
	}
}
