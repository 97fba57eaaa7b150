package envelope

import "strings"

// State is the encryption state of a file's contents.
type State int

const (
	// Plaintext content carries no envelope tag.
	Plaintext State = iota

	// Enciphered content is exactly one well-formed envelope line.
	Enciphered

	// CorruptedMixed content carries the tag but is not a single valid envelope.
	CorruptedMixed
)

func (s State) String() string {
	switch s {
	case Plaintext:
		return "plaintext"
	case Enciphered:
		return "enciphered"
	case CorruptedMixed:
		return "corrupted"
	default:
		return "unknown"
	}
}

// MarshalText renders the state by name in JSON and YAML output.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Classify determines the state of text.
func Classify(text string) State {
	if isEnciphered(text) {
		return Enciphered
	}
	for _, line := range Lines(text) {
		if HasTag(line) {
			return CorruptedMixed
		}
	}
	return Plaintext
}

func isEnciphered(text string) bool {
	if !strings.HasPrefix(strings.TrimSpace(text), Tag) {
		return false
	}

	nonBlank := 0
	for _, line := range Lines(text) {
		if strings.TrimSpace(line) != "" {
			nonBlank++
		}
	}
	if nonBlank != 1 {
		return false
	}

	_, err := Decode(text)
	return err == nil
}

// Lines splits text on newlines, dropping a final empty element left by a
// trailing newline and any carriage return before a newline.
func Lines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
