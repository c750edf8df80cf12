package core

import (
	"testing"
)

func TestNewID(t *testing.T) {
	a := NewID()
	b := NewID()

	if a.IsEmpty() || b.IsEmpty() {
		t.Error("generated IDs should not be empty")
	}
	if a == b {
		t.Error("generated IDs should be unique")
	}
	if len(a.String()) != 36 {
		t.Errorf("expected UUID string length 36, got %d", len(a.String()))
	}
}

func TestParseFieldKey(t *testing.T) {
	if _, err := ParseFieldKey("  "); err == nil {
		t.Error("blank field key should be rejected")
	}

	key, err := ParseFieldKey("t2m_north")
	if err != nil {
		t.Fatalf("ParseFieldKey failed: %v", err)
	}
	if key.String() != "t2m_north" {
		t.Errorf("unexpected key %q", key)
	}
}
