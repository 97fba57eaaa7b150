package project

import (
	"fmt"
	"os"
	"path/filepath"

	kerrors "github.com/PolarWolf314/envcipher/internal/errors"
)

const (
	// EnvFileName is the secrets file envcipher protects.
	EnvFileName = ".env"

	// BoundaryMarker marks the top of a project; the search never goes above it.
	BoundaryMarker = ".git"
)

// Resolver finds the secrets file for a starting directory.
type Resolver struct {
	FileName       string
	BoundaryMarker string

	// HomeDir stops the search. Empty disables the home check.
	HomeDir string
}

// Project is a located secrets file and the identity its key is stored under.
type Project struct {
	EnvPath  string
	Dir      string
	Identity Identity
}

// NewResolver returns a Resolver for .env files bounded by .git and the
// current user's home directory.
func NewResolver() *Resolver {
	home, err := os.UserHomeDir()
	if err != nil {
		home = ""
	}
	return &Resolver{
		FileName:       EnvFileName,
		BoundaryMarker: BoundaryMarker,
		HomeDir:        home,
	}
}

// Locate walks up from startDir and returns the path of the first secrets
// file found. It returns an error wrapping ErrEnvNotFound when the walk hits
// the project boundary, the home directory, or the filesystem root first.
func (r *Resolver) Locate(startDir string) (string, error) {
	currentDir := startDir
	home := ""
	if r.HomeDir != "" {
		home = filepath.Clean(r.HomeDir)
	}

	for {
		envPath := filepath.Join(currentDir, r.FileName)
		found, err := exists(envPath)
		if err != nil {
			return "", fmt.Errorf("checking for %s in %s: %w", r.FileName, currentDir, err)
		}
		if found {
			return envPath, nil
		}

		if r.BoundaryMarker != "" {
			atBoundary, err := exists(filepath.Join(currentDir, r.BoundaryMarker))
			if err != nil {
				return "", fmt.Errorf("checking for %s in %s: %w", r.BoundaryMarker, currentDir, err)
			}
			if atBoundary {
				return "", notFound(startDir)
			}
		}

		if home != "" && filepath.Clean(currentDir) == home {
			return "", notFound(startDir)
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return "", notFound(startDir)
		}
		currentDir = parentDir
	}
}

// Resolve locates the secrets file and derives the identity of its directory.
func (r *Resolver) Resolve(startDir string) (*Project, error) {
	envPath, err := r.Locate(startDir)
	if err != nil {
		return nil, err
	}
	dir := filepath.Dir(envPath)
	return &Project{
		EnvPath:  envPath,
		Dir:      dir,
		Identity: DeriveIdentity(dir),
	}, nil
}

func exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

func notFound(startDir string) error {
	return fmt.Errorf("%w in %s or any parent directory", kerrors.ErrEnvNotFound, startDir)
}
