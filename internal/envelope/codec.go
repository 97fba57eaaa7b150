package envelope

import (
	"encoding/base64"
	"fmt"
	"strings"

	kerrors "github.com/PolarWolf314/envcipher/internal/errors"
)

const (
	// Prefix names the format.
	Prefix = "ENVCIPHER"

	// Version is the only format version understood.
	Version = "v1"

	// Tag starts every envelope line.
	Tag = Prefix + ":" + Version + ":"

	// NonceSize is the GCM nonce length carried in an envelope.
	NonceSize = 12
)

// Envelope is a decoded envelope line.
type Envelope struct {
	Nonce      [NonceSize]byte
	Ciphertext []byte
}

// Encode serializes nonce and ciphertext as one envelope line with a
// trailing newline.
func Encode(nonce [NonceSize]byte, ciphertext []byte) string {
	var b strings.Builder
	b.WriteString(Tag)
	b.WriteString(base64.StdEncoding.EncodeToString(nonce[:]))
	b.WriteByte(':')
	b.WriteString(base64.StdEncoding.EncodeToString(ciphertext))
	b.WriteByte('\n')
	return b.String()
}

// Decode parses a single envelope line. Surrounding whitespace is ignored;
// any other deviation from the grammar is ErrInvalidEnvelope.
func Decode(text string) (Envelope, error) {
	var env Envelope

	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, Tag) {
		return env, invalid("missing %s prefix", Tag)
	}
	// The base64 decoder skips newlines, so a multi-line payload has to be
	// rejected here.
	if strings.ContainsAny(text, "\r\n") {
		return env, invalid("envelope must be a single line")
	}

	fields := strings.Split(text[len(Tag):], ":")
	if len(fields) != 2 {
		return env, invalid("expected %s<nonce>:<ciphertext>, got %d fields", Tag, len(fields))
	}

	nonce, err := base64.StdEncoding.DecodeString(fields[0])
	if err != nil {
		return env, invalid("invalid nonce base64: %v", err)
	}
	if len(nonce) != NonceSize {
		return env, invalid("nonce must be %d bytes, got %d", NonceSize, len(nonce))
	}

	ciphertext, err := base64.StdEncoding.DecodeString(fields[1])
	if err != nil {
		return env, invalid("invalid ciphertext base64: %v", err)
	}

	copy(env.Nonce[:], nonce)
	env.Ciphertext = ciphertext
	return env, nil
}

// HasTag reports whether a line, ignoring surrounding whitespace, starts
// with the envelope tag.
func HasTag(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), Tag)
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", kerrors.ErrInvalidEnvelope, fmt.Sprintf(format, args...))
}
