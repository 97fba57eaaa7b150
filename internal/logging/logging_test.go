package logger

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestLoggerVerbosity(t *testing.T) {
	color.NoColor = true

	tests := []struct {
		name      string
		logger    Logger
		wantInfo  bool
		wantDebug bool
	}{
		{"Quiet", Logger{}, false, false},
		{"Verbose", Logger{Verbose: true}, true, false},
		{"Debug", Logger{Debug: true}, true, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var out, errOut bytes.Buffer
			l := tc.logger
			l.Out = &out
			l.Err = &errOut

			l.Infof("info %d", 1)
			l.Debugf("debug %d", 2)
			l.Warnf("warn %d", 3)

			if got := strings.Contains(out.String(), "[info] info 1"); got != tc.wantInfo {
				t.Errorf("info shown = %v, expected %v (output %q)", got, tc.wantInfo, out.String())
			}
			if got := strings.Contains(out.String(), "[debug] debug 2"); got != tc.wantDebug {
				t.Errorf("debug shown = %v, expected %v (output %q)", got, tc.wantDebug, out.String())
			}
			if !strings.Contains(errOut.String(), "[warn] warn 3") {
				t.Errorf("Expected warning on stderr, got %q", errOut.String())
			}
		})
	}
}

func TestErrorfAndReturnWraps(t *testing.T) {
	sentinel := errors.New("boom")
	var errOut bytes.Buffer
	l := Logger{Err: &errOut}

	err := l.ErrorfAndReturn("doing thing: %w", sentinel)
	if !errors.Is(err, sentinel) {
		t.Fatalf("Expected wrapped sentinel, got %v", err)
	}
	if errOut.Len() != 0 {
		t.Errorf("Expected no output outside debug mode, got %q", errOut.String())
	}
}
