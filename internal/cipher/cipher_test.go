package cipher

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

var errEmptyKey = errors.New("cipher: empty key")

// newRotator builds a rotator for an arbitrary key.
func newRotator(key string) (rotator, error) {
	if key == "" {
		return rotator{}, errEmptyKey
	}
	return rotator{key: []byte(key)}, nil
}

func allBytes() []byte {
	b := make([]byte, 256)
	for i := range b {
		b[i] = byte(i)
	}
	return b
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
	}{
		{"empty", []byte{}},
		{"nil", nil},
		{"single", []byte{0x42}},
		{"ascii", []byte(`[{"title":"Buy milk","id":0}]`)},
		{"all_byte_values", allBytes()},
		{"high_bytes", []byte{0xff, 0xfe, 0xfd, 0x80, 0x81}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoded := Encode(tt.input)
			assert.Len(t, encoded, len(tt.input))
			assert.Equal(t, len(tt.input), len(Decode(encoded)))
			if len(tt.input) > 0 {
				assert.Equal(t, tt.input, Decode(encoded))
			}
		})
	}
}

func TestEncodeKnownValues(t *testing.T) {
	// Position 1 uses key[1] = 'o' (111), position 2 uses key[2] = 'd' (100).
	got := Encode([]byte{0x00, 0x00})
	assert.Equal(t, []byte{111, 100}, got)

	// Wraps modulo 256 instead of overflowing.
	got = Encode([]byte{200})
	assert.Equal(t, []byte{byte((200 + 111) % 256)}, got)
}

func TestDecodeWrapsNegative(t *testing.T) {
	// 0 - 111 must wrap to 145, not truncate.
	got := Decode([]byte{0x00})
	assert.Equal(t, []byte{145}, got)
}

func TestKeyCycles(t *testing.T) {
	// Position 7 wraps to key[0] = 't' (116).
	in := make([]byte, 7)
	got := Encode(in)
	assert.Equal(t, byte('t'), got[6])
}

func TestEncodeDoesNotMutateInput(t *testing.T) {
	in := []byte("hello")
	_ = Encode(in)
	assert.Equal(t, []byte("hello"), in)
}

func TestNewRotator(t *testing.T) {
	_, err := newRotator("")
	require.ErrorIs(t, err, errEmptyKey)

	r, err := newRotator("k")
	require.NoError(t, err)
	in := allBytes()
	assert.Equal(t, in, r.Decode(r.Encode(in)))
	assert.NotEqual(t, Encode(in), r.Encode(in))
}

func TestRoundTrip_Property(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		key := rapid.StringMatching(`[ -~]{1,32}`).Draw(t, "key")
		data := rapid.SliceOf(rapid.Byte()).Draw(t, "data")

		r, err := newRotator(key)
		if err != nil {
			t.Fatalf("newRotator(%q): %v", key, err)
		}
		encoded := r.Encode(data)
		if len(encoded) != len(data) {
			t.Fatalf("length changed: %d != %d", len(encoded), len(data))
		}
		decoded := r.Decode(encoded)
		for i := range data {
			if decoded[i] != data[i] {
				t.Fatalf("byte %d: got %d, want %d", i, decoded[i], data[i])
			}
		}
	})
}
