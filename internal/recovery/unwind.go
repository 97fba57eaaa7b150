package recovery

import (
	"fmt"
	"strings"
	"unicode/utf8"

	kerrors "github.com/PolarWolf314/envcipher/internal/errors"
	"github.com/PolarWolf314/envcipher/internal/envelope"
	"github.com/PolarWolf314/envcipher/internal/secrets"
)

// MaxIterations caps the number of passes Unwind makes over the content.
const MaxIterations = 10

// Result describes the outcome of Unwind.
type Result struct {
	// Content is the recovered text. When Exhausted is set it is the best
	// effort reached before giving up.
	Content string

	// Layers counts the passes that made progress.
	Layers int

	// Exhausted is set when MaxIterations passes still left envelope
	// content behind.
	Exhausted bool

	// Preserved counts envelope lines in mixed content that could not be
	// deciphered and were kept verbatim on the last pass.
	Preserved int
}

// Unwind removes encryption layers from content using key.
//
// A single well-formed envelope that fails to decode or authenticate is an
// error. Mixed content never fails: lines that cannot be deciphered are
// carried through unchanged and counted in Result.Preserved.
func Unwind(key *secrets.SecretKey, content string) (*Result, error) {
	res := &Result{Content: content}

	for i := 0; i < MaxIterations; i++ {
		switch envelope.Classify(res.Content) {
		case envelope.Plaintext:
			res.Preserved = 0
			return res, nil

		case envelope.Enciphered:
			plaintext, err := secrets.Open(key, res.Content)
			if err != nil {
				return nil, fmt.Errorf("layer %d: %w", res.Layers+1, err)
			}
			if !utf8.Valid(plaintext) {
				return nil, fmt.Errorf("layer %d: %w", res.Layers+1, kerrors.ErrNonUTF8Plaintext)
			}
			res.Content = string(plaintext)
			res.Layers++

		case envelope.CorruptedMixed:
			salvaged, progressed, preserved := salvage(key, res.Content)
			res.Preserved = preserved
			if !progressed {
				return res, nil
			}
			res.Content = salvaged
			res.Layers++
		}
	}

	if envelope.Classify(res.Content) != envelope.Plaintext {
		res.Exhausted = true
	}
	return res, nil
}

// salvage deciphers each envelope line of mixed content on its own. Every
// line keeps its original terminator, so CRLF files stay CRLF.
func salvage(key *secrets.SecretKey, content string) (string, bool, int) {
	var out strings.Builder
	progressed := false
	preserved := 0

	for _, segment := range strings.SplitAfter(content, "\n") {
		if segment == "" {
			continue
		}
		line := trimLineEnding(segment)
		ending := segment[len(line):]
		if ending == "" {
			ending = "\n"
		}

		if !envelope.HasTag(line) {
			out.WriteString(line + ending)
			continue
		}

		plaintext, err := secrets.Open(key, line)
		if err != nil || !utf8.Valid(plaintext) {
			out.WriteString(line + ending)
			preserved++
			continue
		}

		out.WriteString(trimLineEnding(string(plaintext)) + ending)
		progressed = true
	}

	return out.String(), progressed, preserved
}

func trimLineEnding(s string) string {
	s = strings.TrimSuffix(s, "\n")
	return strings.TrimSuffix(s, "\r")
}
