package secrets

import (
	"bytes"
	"encoding/base64"
	"fmt"

	kerrors "github.com/PolarWolf314/envcipher/internal/errors"

	"github.com/awnumar/memguard"
)

// ExportKey encodes key material for human transport. This is the only
// sanctioned way to turn a key into printable text.
func ExportKey(key *SecretKey) string {
	return base64.StdEncoding.EncodeToString(key.Bytes())
}

// ImportKey decodes exported key material. Anything that does not decode
// to exactly KeySize bytes is rejected.
func ImportKey(encoded string) (*SecretKey, error) {
	return ImportKeyBytes([]byte(encoded))
}

// ImportKeyBytes is ImportKey for material held in a buffer the caller
// wipes. No copy of the decoded key outlives the call.
func ImportKeyBytes(encoded []byte) (*SecretKey, error) {
	encoded = bytes.TrimSpace(encoded)
	raw := make([]byte, base64.StdEncoding.DecodedLen(len(encoded)))
	n, err := base64.StdEncoding.Decode(raw, encoded)
	if err != nil {
		memguard.WipeBytes(raw)
		return nil, fmt.Errorf("%w: %v", kerrors.ErrInvalidKeyEncoding, err)
	}
	key, err := NewSecretKey(raw[:n])
	memguard.WipeBytes(raw)
	return key, err
}
