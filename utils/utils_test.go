package utils

import (
	"bytes"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateTrackingID(t *testing.T) {
	bookedAt := time.Date(2024, 3, 5, 18, 30, 0, 0, time.UTC)
	pattern := regexp.MustCompile(`^PCL-20240305-[0-9A-Z]{5}$`)

	t.Run("uses the booking day and five base36 chars", func(t *testing.T) {
		for i := 0; i < 50; i++ {
			id, err := GenerateTrackingID(bookedAt, nil)
			require.NoError(t, err)
			assert.Regexp(t, pattern, id)
		}
	})

	t.Run("deterministic for a fixed source", func(t *testing.T) {
		seed := bytes.Repeat([]byte{0x01, 0x02, 0x03, 0x04, 0x05}, 8)
		a, err := GenerateTrackingID(bookedAt, bytes.NewReader(seed))
		require.NoError(t, err)
		b, err := GenerateTrackingID(bookedAt, bytes.NewReader(seed))
		require.NoError(t, err)
		assert.Equal(t, a, b)
	})

	t.Run("exhausted source fails", func(t *testing.T) {
		_, err := GenerateTrackingID(bookedAt, bytes.NewReader(nil))
		assert.Error(t, err)
	})
}

func TestRedactHeaders(t *testing.T) {
	raw := []byte("Host: example.com\r\nAuthorization: Bearer abc\r\nCookie: access=xyz\r\n\r\n")

	out := redactHeaders(raw)

	assert.Contains(t, out, "Host: example.com")
	assert.Contains(t, out, "Authorization: [REDACTED]")
	assert.Contains(t, out, "Cookie: [REDACTED]")
	assert.NotContains(t, out, "abc")
	assert.NotContains(t, out, "xyz")
}

func TestSealer(t *testing.T) {
	// base64 of 32 bytes
	key := "MDEyMzQ1Njc4OWFiY2RlZjAxMjM0NTY3ODlhYmNkZWY="

	s, err := NewSealer(key)
	require.NoError(t, err)

	sealed, err := s.Seal("refresh-token-value")
	require.NoError(t, err)
	assert.NotContains(t, sealed, "refresh-token-value")

	opened, err := s.Open(sealed)
	require.NoError(t, err)
	assert.Equal(t, "refresh-token-value", opened)

	t.Run("empty round trips to empty", func(t *testing.T) {
		sealed, err := s.Seal("")
		require.NoError(t, err)
		assert.Empty(t, sealed)
	})

	t.Run("tampered value is rejected", func(t *testing.T) {
		b := []byte(sealed)
		if b[20] == 'A' {
			b[20] = 'B'
		} else {
			b[20] = 'A'
		}
		_, err := s.Open(string(b))
		assert.Error(t, err)
	})

	t.Run("missing key", func(t *testing.T) {
		_, err := NewSealer("")
		assert.ErrorIs(t, err, ErrNoEncryptionKey)
	})

	t.Run("short base64 key", func(t *testing.T) {
		_, err := NewSealer("c2hvcnQ=")
		assert.Error(t, err)
	})
}
