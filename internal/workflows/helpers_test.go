package workflows

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/99designs/keyring"

	"github.com/PolarWolf314/envcipher/internal/configs"
	"github.com/PolarWolf314/envcipher/internal/envelope"
	"github.com/PolarWolf314/envcipher/internal/keystore"
	"github.com/PolarWolf314/envcipher/internal/project"
	"github.com/PolarWolf314/envcipher/internal/secrets"
)

// testProject is a project directory bounded by a .git marker, an in-memory
// key store and isolated user config and audit paths.
type testProject struct {
	root   string
	dir    string
	store  *keystore.Store
	common Common
}

func newTestProject(t *testing.T) *testProject {
	t.Helper()

	root, err := os.MkdirTemp("", "envcipher-workflow-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(root) })

	dir := filepath.Join(root, "proj")
	if err := os.MkdirAll(filepath.Join(dir, ".git"), 0755); err != nil {
		t.Fatalf("Failed to create project dir: %v", err)
	}

	t.Cleanup(configs.UseDirectories(filepath.Join(root, "config"), filepath.Join(root, "data")))

	store := newMemoryStore()
	return &testProject{
		root:  root,
		dir:   dir,
		store: store,
		common: Common{
			WorkDir: dir,
			Store:   store,
			Resolver: &project.Resolver{
				FileName:       project.EnvFileName,
				BoundaryMarker: project.BoundaryMarker,
				HomeDir:        root,
			},
		},
	}
}

func newMemoryStore() *keystore.Store {
	return keystore.New(keystore.NewKeyringBackend(keyring.NewArrayKeyring(nil)))
}

func (p *testProject) envPath() string {
	return filepath.Join(p.dir, project.EnvFileName)
}

func (p *testProject) identity() project.Identity {
	return project.DeriveIdentity(p.dir)
}

func (p *testProject) writeEnv(t *testing.T, content string) {
	t.Helper()
	if err := os.WriteFile(p.envPath(), []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write .env: %v", err)
	}
}

func (p *testProject) readEnv(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile(p.envPath())
	if err != nil {
		t.Fatalf("Failed to read .env: %v", err)
	}
	return string(data)
}

// storeKey puts a fresh key for the project and returns a copy the test
// owns.
func (p *testProject) storeKey(t *testing.T) *secrets.SecretKey {
	t.Helper()
	key := secrets.GenerateKey()
	t.Cleanup(key.Destroy)
	if err := p.store.Put(p.identity(), key); err != nil {
		t.Fatalf("Failed to store key: %v", err)
	}
	return key
}

func (p *testProject) state(t *testing.T) envelope.State {
	t.Helper()
	return envelope.Classify(p.readEnv(t))
}

func seal(t *testing.T, key *secrets.SecretKey, content string) string {
	t.Helper()
	line, err := secrets.Seal(key, []byte(content))
	if err != nil {
		t.Fatalf("Seal failed: %v", err)
	}
	return line
}
