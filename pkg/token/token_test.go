package token

import (
	"strings"
	"testing"
)

func TestNewSessionID(t *testing.T) {
	id, err := NewSessionID()
	if err != nil {
		t.Fatalf("NewSessionID: %v", err)
	}
	if !strings.HasPrefix(id, SessionPrefix) {
		t.Errorf("expected %q prefix, got %q", SessionPrefix, id)
	}
	if !IsSessionID(id) {
		t.Errorf("IsSessionID must recognize %q", id)
	}

	other, err := NewSessionID()
	if err != nil {
		t.Fatalf("NewSessionID: %v", err)
	}
	if id == other {
		t.Error("two generated identifiers must differ")
	}
}

func TestNewAPIToken(t *testing.T) {
	tok, err := NewAPIToken()
	if err != nil {
		t.Fatalf("NewAPIToken: %v", err)
	}
	if !strings.HasPrefix(tok, APIPrefix) {
		t.Errorf("expected %q prefix, got %q", APIPrefix, tok)
	}
	if IsSessionID(tok) {
		t.Error("API token must not read as a session identifier")
	}
}

func TestHashAndVerify(t *testing.T) {
	tok := "uha_example_token"
	hash := Hash(tok)

	if len(hash) != 64 {
		t.Errorf("expected hex SHA-256, got %d chars", len(hash))
	}
	if !Verify(tok, hash) {
		t.Error("Verify must accept the matching token")
	}
	if Verify("uha_other", hash) {
		t.Error("Verify must reject a different token")
	}
	if Verify("", hash) {
		t.Error("Verify must reject the empty token")
	}
}
