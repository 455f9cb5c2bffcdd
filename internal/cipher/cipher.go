// Package cipher implements the keyed byte rotation applied to store files.
//
// The rotation is NOT a security control. It only keeps the files from being
// trivially edited by hand: every byte is shifted by a key-derived amount that
// depends on its position, and decoding applies the inverse shift.
// There is no authentication; arbitrary bytes decode without error.
package cipher

// DefaultKey is the process-wide key used by Encode and Decode.
// Installations with different keys cannot read each other's files.
const DefaultKey = "todolor"

// rotator applies a position-dependent byte rotation derived from a key.
type rotator struct {
	key []byte
}

var defaultRotator = rotator{key: []byte(DefaultKey)}

// Encode returns a rotated copy of b. len(result) == len(b).
func (r rotator) Encode(b []byte) []byte {
	return r.rotate(b, 1)
}

// Decode reverses Encode.
func (r rotator) Decode(b []byte) []byte {
	return r.rotate(b, -1)
}

// rotate shifts the byte at 1-based position i by key[i % len(key)] * mul,
// wrapping modulo 256. The input slice is never modified.
func (r rotator) rotate(b []byte, mul int) []byte {
	out := make([]byte, len(b))
	n := len(r.key)
	for i := 1; i <= len(b); i++ {
		shift := int(r.key[i%n]) * mul
		v := (int(b[i-1]) + shift) % 256
		if v < 0 {
			v += 256
		}
		out[i-1] = byte(v)
	}
	return out
}

// Encode rotates b with DefaultKey.
func Encode(b []byte) []byte {
	return defaultRotator.Encode(b)
}

// Decode reverses Encode.
func Decode(b []byte) []byte {
	return defaultRotator.Decode(b)
}
