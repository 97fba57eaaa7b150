package workflows

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/joho/godotenv"

	"github.com/PolarWolf314/envcipher/internal/envelope"
	kerrors "github.com/PolarWolf314/envcipher/internal/errors"
	"github.com/PolarWolf314/envcipher/internal/recovery"
	"github.com/PolarWolf314/envcipher/internal/secrets"
)

// LoadEnvOptions configures the load-env workflow.
type LoadEnvOptions struct {
	Common
}

// LoadEnvResult contains the variables parsed from the project's .env.
type LoadEnvResult struct {
	// EnvPath is the file the variables came from.
	EnvPath string

	// Vars maps variable names to values.
	Vars map[string]string

	// Layers is the number of encryption layers removed in memory. The
	// file on disk is not modified.
	Layers int
}

// LoadEnv reads the project's .env, deciphering it in memory when it is
// enciphered, and parses it as dotenv content.
//
// A plaintext file is parsed without touching the credential store.
// Returns ErrNotInitialized if the file is enciphered and no key is stored.
func LoadEnv(ctx context.Context, opts LoadEnvOptions) (*LoadEnvResult, error) {
	proj, err := opts.resolve()
	if err != nil {
		return nil, err
	}

	contents, err := secrets.ReadEnvFile(proj.EnvPath)
	if err != nil {
		return nil, err
	}

	result := &LoadEnvResult{EnvPath: proj.EnvPath}

	if envelope.Classify(contents) != envelope.Plaintext {
		store, err := opts.store()
		if err != nil {
			return nil, err
		}

		key, err := retrieveKey(store, proj.Identity)
		if err != nil {
			return nil, err
		}
		defer key.Destroy()

		res, err := recovery.Unwind(key, contents)
		if err != nil {
			return nil, err
		}
		if err := requireFullyRecovered(res); err != nil {
			return nil, err
		}
		contents = res.Content
		result.Layers = res.Layers
	}

	vars, err := godotenv.Unmarshal(contents)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", proj.EnvPath, err)
	}
	result.Vars = vars

	return result, nil
}

// RunOptions configures the run workflow.
type RunOptions struct {
	Common

	// Args is the command and its arguments.
	Args []string

	// Stdin, Stdout and Stderr default to the current process streams.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// RunResult contains the outcome of a run operation.
type RunResult struct {
	// ExitCode is the child's exit status. It is 1 when the child was
	// killed by a signal.
	ExitCode int

	// Injected is the number of variables added to the child environment.
	Injected int
}

// RunCommand starts Args with the project's variables added to the current
// environment and waits for it to exit. A non-zero exit status is reported
// in the result, not as an error.
//
// Returns ErrNoCommand if Args is empty.
func RunCommand(ctx context.Context, opts RunOptions) (*RunResult, error) {
	if len(opts.Args) == 0 {
		return nil, kerrors.ErrNoCommand
	}

	loaded, err := LoadEnv(ctx, LoadEnvOptions{Common: opts.Common})
	if err != nil {
		return nil, err
	}

	// #nosec G204 -- running the user's command is the point of "envcipher run"
	cmd := exec.CommandContext(ctx, opts.Args[0], opts.Args[1:]...)
	cmd.Env = mergeEnv(os.Environ(), loaded.Vars)
	cmd.Stdin = orDefault(opts.Stdin, os.Stdin)
	cmd.Stdout = orDefaultWriter(opts.Stdout, os.Stdout)
	cmd.Stderr = orDefaultWriter(opts.Stderr, os.Stderr)

	result := &RunResult{Injected: len(loaded.Vars)}

	err = cmd.Run()
	var exitErr *exec.ExitError
	switch {
	case err == nil:
		result.ExitCode = 0
	case errors.As(err, &exitErr):
		result.ExitCode = exitErr.ExitCode()
		if result.ExitCode < 0 {
			result.ExitCode = 1
		}
	default:
		return nil, fmt.Errorf("running %s: %w", opts.Args[0], err)
	}

	return result, nil
}

// mergeEnv appends vars to base. Later entries win in exec, so values from
// .env override inherited ones.
func mergeEnv(base []string, vars map[string]string) []string {
	env := make([]string, 0, len(base)+len(vars))
	env = append(env, base...)
	for k, v := range vars {
		env = append(env, k+"="+v)
	}
	return env
}

func orDefault(r io.Reader, def io.Reader) io.Reader {
	if r != nil {
		return r
	}
	return def
}

func orDefaultWriter(w io.Writer, def io.Writer) io.Writer {
	if w != nil {
		return w
	}
	return def
}
