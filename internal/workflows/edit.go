package workflows

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"github.com/PolarWolf314/envcipher/internal/audit"
	"github.com/PolarWolf314/envcipher/internal/configs"
	kerrors "github.com/PolarWolf314/envcipher/internal/errors"
	"github.com/PolarWolf314/envcipher/internal/recovery"
	"github.com/PolarWolf314/envcipher/internal/secrets"
	"github.com/PolarWolf314/envcipher/internal/utils"
)

// EditorFunc opens path for interactive editing and returns once the user
// is done.
type EditorFunc func(ctx context.Context, path string) error

// EditOptions configures the edit workflow.
type EditOptions struct {
	Common

	// Editor edits the plaintext file. If nil, the editor is resolved from
	// $EDITOR, $VISUAL and the user config.
	Editor EditorFunc

	// TempDir holds the plaintext while it is edited. Empty uses the
	// system temp directory.
	TempDir string
}

// EditResult contains the outcome of an edit operation.
type EditResult struct {
	// EnvPath is the edited file.
	EnvPath string

	// KeyID is the short identity of the key used.
	KeyID string

	// Changed is false when the editor left the content untouched. The file
	// on disk is not rewritten in that case.
	Changed bool

	// Layers is the number of encryption layers removed before editing.
	Layers int
}

// CommandEditor returns an EditorFunc running args with the file path
// appended, attached to the current terminal.
func CommandEditor(args []string) EditorFunc {
	return func(ctx context.Context, path string) error {
		if len(args) == 0 {
			return fmt.Errorf("%w: no editor command", kerrors.ErrEditorFailed)
		}

		// #nosec G204 -- the editor command comes from the user's own environment
		cmd := exec.CommandContext(ctx, args[0], append(args[1:], path)...)
		cmd.Stdin = os.Stdin
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr

		if err := cmd.Run(); err != nil {
			return fmt.Errorf("%w: %s: %v", kerrors.ErrEditorFailed, args[0], err)
		}
		return nil
	}
}

// Edit deciphers the project's .env into a private temp file, runs the
// editor on it and enciphers the result back into place. The temp file is
// removed on every path.
//
// Returns ErrNotInitialized if the credential store has no key for the project.
// Returns ErrEditorFailed if the editor cannot start or exits non-zero.
func Edit(ctx context.Context, opts EditOptions) (*EditResult, error) {
	proj, err := opts.resolve()
	if err != nil {
		return nil, err
	}

	store, err := opts.store()
	if err != nil {
		return nil, err
	}

	key, err := retrieveKey(store, proj.Identity)
	if err != nil {
		return nil, err
	}
	defer key.Destroy()

	contents, err := secrets.ReadEnvFile(proj.EnvPath)
	if err != nil {
		return nil, err
	}

	res, err := recovery.Unwind(key, contents)
	if err != nil {
		return nil, err
	}
	if err := requireFullyRecovered(res); err != nil {
		return nil, err
	}

	editor := opts.Editor
	if editor == nil {
		editor, err = defaultEditor()
		if err != nil {
			return nil, err
		}
	}

	edited, err := editInTempFile(ctx, opts.TempDir, res.Content, editor)
	if err != nil {
		return nil, err
	}

	result := &EditResult{
		EnvPath: proj.EnvPath,
		KeyID:   proj.Identity.KeyID(),
		Layers:  res.Layers,
	}

	if edited == res.Content {
		return result, nil
	}

	line, err := secrets.Seal(key, []byte(edited))
	if err != nil {
		return nil, err
	}
	if err := secrets.WriteEnvFile(proj.EnvPath, line); err != nil {
		return nil, err
	}
	result.Changed = true

	auditEntry := audit.NewEntry("edit")
	auditEntry.KeyID = result.KeyID
	auditEntry.File = result.EnvPath
	auditEntry.Layers = result.Layers
	audit.Log(auditEntry)

	return result, nil
}

func defaultEditor() (EditorFunc, error) {
	userConfig, err := configs.LoadUserConfig()
	if err != nil {
		return nil, fmt.Errorf("loading user config: %w", err)
	}
	args, err := utils.ResolveEditor(userConfig.Editor.Command)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrEditorFailed, err)
	}
	return CommandEditor(args), nil
}

// editInTempFile writes content to a 0600 temp file, runs editor on it and
// returns what the user saved.
func editInTempFile(ctx context.Context, dir, content string, editor EditorFunc) (string, error) {
	tmp, err := os.CreateTemp(dir, "envcipher-*.env")
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.WriteString(content); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("closing temp file: %w", err)
	}

	if err := editor(ctx, tmpPath); err != nil {
		return "", err
	}

	edited, err := os.ReadFile(tmpPath)
	if err != nil {
		return "", fmt.Errorf("reading edited file: %w", err)
	}
	return string(edited), nil
}

// requireFullyRecovered rejects content that still carries envelope lines
// after unwinding. Editing or exporting it would mix ciphertext into
// plaintext values.
func requireFullyRecovered(res *recovery.Result) error {
	if res.Exhausted {
		return fmt.Errorf("%w: more than %d encryption layers, run unlock first",
			kerrors.ErrInvalidEnvelope, recovery.MaxIterations)
	}
	if res.Preserved > 0 {
		return fmt.Errorf("%w: %d line(s) could not be deciphered, run unlock to inspect them",
			kerrors.ErrAuthenticationFailed, res.Preserved)
	}
	return nil
}
