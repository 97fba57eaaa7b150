package secrets

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	kerrors "github.com/PolarWolf314/envcipher/internal/errors"
	"github.com/PolarWolf314/envcipher/internal/envelope"
)

func newTestKey(t *testing.T) *SecretKey {
	t.Helper()
	key := GenerateKey()
	t.Cleanup(key.Destroy)
	return key
}

func TestEncipherDecipher_RoundTrip(t *testing.T) {
	key := newTestKey(t)

	cases := map[string][]byte{
		"empty":   {},
		"single":  []byte("A"),
		"dotenv":  []byte("DATABASE_URL=postgres://localhost/mydb"),
		"binary":  {0x00, 0xff, 0x10, 0x80},
		"large":   bytes.Repeat([]byte("KEY=value\n"), 10000),
		"unicode": []byte("GREETING=héllo wörld ✓\n"),
	}

	for name, plaintext := range cases {
		t.Run(name, func(t *testing.T) {
			ciphertext, nonce, err := Encipher(key, plaintext)
			require.NoError(t, err)
			assert.Len(t, ciphertext, len(plaintext)+16)

			got, err := Decipher(key, nonce, ciphertext)
			require.NoError(t, err)
			assert.True(t, bytes.Equal(plaintext, got))
		})
	}
}

func TestEncipher_FreshNonces(t *testing.T) {
	key := newTestKey(t)
	seen := make(map[[NonceSize]byte]bool)

	for i := 0; i < 100; i++ {
		_, nonce, err := Encipher(key, []byte("same"))
		require.NoError(t, err)
		assert.False(t, seen[nonce], "nonce reused")
		seen[nonce] = true
	}
}

func TestDecipher_TamperDetection(t *testing.T) {
	key := newTestKey(t)
	plaintext := []byte("API_KEY=secret")

	ciphertext, nonce, err := Encipher(key, plaintext)
	require.NoError(t, err)

	t.Run("EveryBitFlip", func(t *testing.T) {
		for i := 0; i < len(ciphertext)*8; i++ {
			tampered := append([]byte(nil), ciphertext...)
			tampered[i/8] ^= 1 << (i % 8)

			got, err := Decipher(key, nonce, tampered)
			require.ErrorIs(t, err, kerrors.ErrAuthenticationFailed, "bit %d", i)
			assert.Nil(t, got)
		}
	})

	t.Run("DifferentNonce", func(t *testing.T) {
		other := nonce
		other[0] ^= 0x01
		_, err := Decipher(key, other, ciphertext)
		assert.ErrorIs(t, err, kerrors.ErrAuthenticationFailed)
	})

	t.Run("DifferentKey", func(t *testing.T) {
		other := newTestKey(t)
		_, err := Decipher(other, nonce, ciphertext)
		assert.ErrorIs(t, err, kerrors.ErrAuthenticationFailed)
	})

	t.Run("Truncated", func(t *testing.T) {
		_, err := Decipher(key, nonce, ciphertext[:10])
		assert.ErrorIs(t, err, kerrors.ErrAuthenticationFailed)

		_, err = Decipher(key, nonce, nil)
		assert.ErrorIs(t, err, kerrors.ErrAuthenticationFailed)
	})

	t.Run("DestroyedKey", func(t *testing.T) {
		gone := GenerateKey()
		gone.Destroy()
		_, err := Decipher(gone, nonce, ciphertext)
		assert.ErrorIs(t, err, kerrors.ErrAuthenticationFailed)
	})
}

func TestSealOpen(t *testing.T) {
	key := newTestKey(t)
	content := "DATABASE_URL=postgres://localhost/mydb"

	line, err := Seal(key, []byte(content))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(line, envelope.Tag))
	assert.NotContains(t, line, "postgres")
	assert.Equal(t, envelope.Enciphered, envelope.Classify(line))

	got, err := Open(key, line)
	require.NoError(t, err)
	assert.Equal(t, content, string(got))
}

func TestOpen_InvalidEnvelope(t *testing.T) {
	key := newTestKey(t)
	_, err := Open(key, "FOO=bar")
	assert.ErrorIs(t, err, kerrors.ErrInvalidEnvelope)
	assert.False(t, errors.Is(err, kerrors.ErrAuthenticationFailed))
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("entropy exhausted")
}

func TestEncipher_RandomSourceFailure(t *testing.T) {
	key := newTestKey(t)

	original := randReader
	randReader = failingReader{}
	defer func() { randReader = original }()

	_, _, err := Encipher(key, []byte("x"))
	assert.ErrorIs(t, err, kerrors.ErrEncryptFailed)
}
