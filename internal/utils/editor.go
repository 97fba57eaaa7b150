package utils

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/mattn/go-shellwords"
)

// fallbackEditors are tried in order when nothing is configured.
var fallbackEditors = []string{"vim", "nano"}

// lookPath is replaced in tests.
var lookPath = exec.LookPath

// ResolveEditor returns the editor command split into program and
// arguments. Precedence: $EDITOR, $VISUAL, configured, then the first
// installed of vim and nano, then vi.
func ResolveEditor(configured string) ([]string, error) {
	command := editorCommand(configured)

	args, err := shellwords.Parse(command)
	if err != nil {
		return nil, fmt.Errorf("failed to parse editor command %q: %w", command, err)
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("editor command is empty")
	}
	return args, nil
}

func editorCommand(configured string) string {
	for _, name := range []string{"EDITOR", "VISUAL"} {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	if configured != "" {
		return configured
	}
	for _, candidate := range fallbackEditors {
		if _, err := lookPath(candidate); err == nil {
			return candidate
		}
	}
	return "vi"
}
