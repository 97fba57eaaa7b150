package workflows

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/PolarWolf314/envcipher/internal/audit"
	"github.com/PolarWolf314/envcipher/internal/configs"
	kerrors "github.com/PolarWolf314/envcipher/internal/errors"
	"github.com/PolarWolf314/envcipher/internal/project"
)

func TestInit_CreatesEnvAndMarker(t *testing.T) {
	p := newTestProject(t)

	result, err := Init(context.Background(), InitOptions{Common: p.common})
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	if !result.CreatedEnv {
		t.Error("Expected a new .env to be created")
	}
	if result.EnvPath != p.envPath() {
		t.Errorf("Expected env path %s, got %s", p.envPath(), result.EnvPath)
	}
	if got := p.readEnv(t); got != DefaultEnvContent {
		t.Errorf("Expected default content %q, got %q", DefaultEnvContent, got)
	}
	if result.KeyID != p.identity().KeyID() {
		t.Errorf("Expected key ID %s, got %s", p.identity().KeyID(), result.KeyID)
	}
	if result.ReusedKey {
		t.Error("Expected a fresh key")
	}

	marker, err := configs.LoadMarker(p.dir)
	if err != nil {
		t.Fatalf("Failed to load marker: %v", err)
	}
	if marker.KeyID != result.KeyID {
		t.Errorf("Expected marker key ID %s, got %s", result.KeyID, marker.KeyID)
	}
	if marker.CreatedAt.IsZero() {
		t.Error("Expected marker creation time to be set")
	}

	ok, err := p.store.Exists(p.identity())
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if !ok {
		t.Error("Expected key to be stored")
	}

	last, err := audit.LastEntry(result.KeyID)
	if err != nil {
		t.Fatalf("LastEntry failed: %v", err)
	}
	if last == nil || last.Operation != "init" {
		t.Errorf("Expected init audit entry, got %+v", last)
	}
}

func TestInit_BindsToParentEnv(t *testing.T) {
	p := newTestProject(t)
	p.writeEnv(t, "FOO=bar\n")

	sub := filepath.Join(p.dir, "services", "api")
	if err := os.MkdirAll(sub, 0755); err != nil {
		t.Fatalf("Failed to create subdir: %v", err)
	}

	opts := InitOptions{Common: p.common}
	opts.WorkDir = sub

	result, err := Init(context.Background(), opts)
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	if result.CreatedEnv {
		t.Error("Expected existing .env to be used")
	}
	if result.ProjectDir != p.dir {
		t.Errorf("Expected project dir %s, got %s", p.dir, result.ProjectDir)
	}
	if result.KeyID != project.DeriveIdentity(p.dir).KeyID() {
		t.Errorf("Expected key bound to the .env directory, got %s", result.KeyID)
	}
	if !configs.MarkerExists(sub) {
		t.Error("Expected marker in the working directory")
	}
	if got := p.readEnv(t); got != "FOO=bar\n" {
		t.Errorf("Expected .env untouched, got %q", got)
	}
}

func TestInit_AlreadyInitialized(t *testing.T) {
	p := newTestProject(t)

	if _, err := Init(context.Background(), InitOptions{Common: p.common}); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	_, err := Init(context.Background(), InitOptions{Common: p.common})
	if !errors.Is(err, kerrors.ErrAlreadyInitialized) {
		t.Errorf("Expected ErrAlreadyInitialized, got %v", err)
	}
}

func TestInit_LegacyMarkerCountsAsInitialized(t *testing.T) {
	p := newTestProject(t)
	// #nosec G306 -- test fixture
	if err := os.WriteFile(filepath.Join(p.dir, configs.LegacyMarkerFileName), []byte(`{"version":"1","key_id":"abcd1234"}`), 0644); err != nil {
		t.Fatalf("Failed to write legacy marker: %v", err)
	}

	_, err := Init(context.Background(), InitOptions{Common: p.common})
	if !errors.Is(err, kerrors.ErrAlreadyInitialized) {
		t.Errorf("Expected ErrAlreadyInitialized, got %v", err)
	}
}

func TestInit_ReusesExistingKey(t *testing.T) {
	p := newTestProject(t)
	p.writeEnv(t, "FOO=bar\n")
	key := p.storeKey(t)

	result, err := Init(context.Background(), InitOptions{Common: p.common})
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if !result.ReusedKey {
		t.Error("Expected the stored key to be reused")
	}

	stored, err := p.store.Retrieve(p.identity())
	if err != nil {
		t.Fatalf("Retrieve failed: %v", err)
	}
	defer stored.Destroy()

	if !bytes.Equal(key.Bytes(), stored.Bytes()) {
		t.Error("Expected the stored key to be left unchanged")
	}
}
