package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/PolarWolf314/envcipher/internal/envelope"
	"github.com/PolarWolf314/envcipher/internal/ui"
	"github.com/PolarWolf314/envcipher/internal/workflows"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// outputFormat is the --format flag of the status command.
type outputFormat string

const (
	formatText outputFormat = "text"
	formatJSON outputFormat = "json"
	formatYAML outputFormat = "yaml"
)

var _ pflag.Value = (*outputFormat)(nil)

func (f *outputFormat) String() string { return string(*f) }

func (f *outputFormat) Set(value string) error {
	switch v := outputFormat(strings.ToLower(value)); v {
	case formatText, formatJSON, formatYAML:
		*f = v
		return nil
	default:
		return fmt.Errorf("must be one of text, json, yaml")
	}
}

func (f *outputFormat) Type() string { return "format" }

var statusFormat = formatText

func init() {
	statusCmd.Flags().VarP(&statusFormat, "format", "f", "output format: text, json or yaml")
}

func resetStatusCommandState() {
	statusFormat = formatText
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Shows whether this project is initialized and its .env encrypted",
	Long: `Shows the state of the project as seen from the current directory:
whether it is initialized, where its .env lives, whether that file is
plaintext, encrypted or a mix of both, and whether the key is in the OS
credential store.

Use --format json or --format yaml for machine-readable output.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting status command")

		result, err := workflows.Status(cmd.Context(), workflows.StatusOptions{Common: workflowCommon()})
		if err != nil {
			return Logger.ErrorfAndReturn("failed to read status: %v", err)
		}

		switch statusFormat {
		case formatJSON:
			return outputStatusJSON(os.Stdout, result)
		case formatYAML:
			return outputStatusYAML(os.Stdout, result)
		default:
			printStatusText(os.Stdout, result)
			return nil
		}
	},
}

func outputStatusJSON(w io.Writer, result *workflows.StatusResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(result); err != nil {
		return fmt.Errorf("failed to encode status: %w", err)
	}
	return nil
}

func outputStatusYAML(w io.Writer, result *workflows.StatusResult) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(result); err != nil {
		return fmt.Errorf("failed to encode status: %w", err)
	}
	return encoder.Close()
}

func printStatusText(w io.Writer, result *workflows.StatusResult) {
	fmt.Fprintln(w, ui.Heading.Sprint("Project:")+" "+ui.Path.Sprint(result.Directory))

	if result.Initialized {
		marker := "initialized"
		if result.LegacyMarker {
			marker += " " + ui.Muted.Sprint("legacy .envcipher.json marker")
		}
		fmt.Fprintln(w, "  "+ui.Done(marker))
	} else {
		fmt.Fprintln(w, "  "+ui.Fail("not initialized in this directory"))
	}

	switch {
	case result.EnvError != "":
		fmt.Fprintln(w, "  "+ui.Fail(".env unreadable: "+result.EnvError))
	case !result.EnvFound:
		fmt.Fprintln(w, "  "+ui.Fail("no .env found"))
	default:
		fmt.Fprintln(w, "  "+ui.Done(ui.Path.Sprint(result.EnvPath)+" "+stateLabel(result.State)))
		if !result.Modified.IsZero() {
			fmt.Fprintln(w, "    modified "+result.Modified.Local().Format("2006-01-02 15:04:05"))
		}
	}

	if result.KeyID != "" {
		line := "key " + ui.Highlight.Sprint(result.KeyID)
		switch {
		case result.KeyError != "":
			fmt.Fprintln(w, "  "+ui.Fail(line+": "+result.KeyError))
		case result.KeyPresent:
			fmt.Fprintln(w, "  "+ui.Done(line+" found in credential store"))
		default:
			fmt.Fprintln(w, "  "+ui.Fail(line+" not in credential store"))
		}
	}

	if result.KeyIDMismatch {
		fmt.Fprintln(w, "  "+ui.Caution("marker was created for key "+ui.Highlight.Sprint(result.MarkerKeyID)+"; the project may have moved"))
	}

	if result.LastActivity != nil {
		entry := result.LastActivity
		fmt.Fprintln(w, "  "+ui.Muted.Sprint("last "+entry.Operation+" by "+entry.User+" at "+entry.Timestamp))
	}

	for _, hint := range statusHints(result) {
		fmt.Fprintln(w, ui.Hint(hint))
	}
}

func stateLabel(state envelope.State) string {
	switch state {
	case envelope.Enciphered:
		return ui.Success.Sprint("encrypted")
	case envelope.CorruptedMixed:
		return ui.Warning.Sprint("partially encrypted")
	default:
		return ui.Warning.Sprint("plaintext")
	}
}

func statusHints(result *workflows.StatusResult) []string {
	var hints []string
	switch {
	case !result.EnvFound && result.EnvError == "":
		hints = append(hints, "Run "+ui.Code.Sprint("envcipher init")+" to get started")
	case result.EnvFound && !result.KeyPresent && result.KeyError == "":
		hints = append(hints, "Run "+ui.Code.Sprint("envcipher import-key")+" with the key exported on another machine")
	case result.EnvFound && result.State == envelope.Plaintext:
		hints = append(hints, "Run "+ui.Code.Sprint("envcipher lock")+" before committing")
	case result.State == envelope.CorruptedMixed:
		hints = append(hints, "Run "+ui.Code.Sprint("envcipher unlock")+" to recover the mixed content")
	}
	if result.LegacyMarker {
		hints = append(hints, "Run "+ui.Code.Sprint("envcipher migrate")+" to convert the marker")
	}
	return hints
}
