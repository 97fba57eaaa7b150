package utils

import (
	"testing"
)

func TestGetUsername(t *testing.T) {
	name, err := GetUsername()
	if err != nil {
		t.Skipf("no current user: %v", err)
	}
	if name == "" {
		t.Error("Expected non-empty username")
	}
}

func TestGetHostname(t *testing.T) {
	name, err := GetHostname()
	if err != nil {
		t.Skipf("no hostname: %v", err)
	}
	if name == "" {
		t.Error("Expected non-empty hostname")
	}
}
