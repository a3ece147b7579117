// Package interleave implements the byte-plane transposition applied to
// every array MG1/MG2 sends through LZMA. Grouping bytes of similar
// magnitude across all words lets LZMA find longer runs than it would in
// the natural word-major layout.
package interleave

const wordWidth = 4

// Pack reorders N little-endian 4-byte words into N streams of
// LSB-then-MSB bytes: output[k*N+j] = word[j].bytes[k]. words is a flat
// byte slice of length 4*N (u32 or f32 bit patterns, already little-endian).
func Pack(words []byte) []byte {
	n := len(words) / wordWidth
	out := make([]byte, len(words))

	for k := 0; k < wordWidth; k++ {
		base := k * n
		for j := 0; j < n; j++ {
			out[base+j] = words[j*wordWidth+k]
		}
	}

	return out
}

// Unpack inverts Pack.
func Unpack(packed []byte) []byte {
	n := len(packed) / wordWidth
	out := make([]byte, len(packed))

	for k := 0; k < wordWidth; k++ {
		base := k * n
		for j := 0; j < n; j++ {
			out[j*wordWidth+k] = packed[base+j]
		}
	}

	return out
}

// PackU32 is a convenience wrapper for Pack over a []uint32, returning the
// interleaved byte layout ready for compress.Codec.Compress.
func PackU32(words []uint32) []byte {
	raw := make([]byte, wordWidth*len(words))
	for i, w := range words {
		raw[4*i] = byte(w)
		raw[4*i+1] = byte(w >> 8)
		raw[4*i+2] = byte(w >> 16)
		raw[4*i+3] = byte(w >> 24)
	}

	return Pack(raw)
}

// UnpackU32 inverts PackU32, returning n reconstructed uint32 words.
func UnpackU32(packed []byte, n int) []uint32 {
	raw := Unpack(packed)
	out := make([]uint32, n)
	for i := range out {
		out[i] = uint32(raw[4*i]) | uint32(raw[4*i+1])<<8 | uint32(raw[4*i+2])<<16 | uint32(raw[4*i+3])<<24
	}

	return out
}

// PackI32 interleaves a []int32 (two's-complement signed deltas) using the
// same byte layout as PackU32.
func PackI32(words []int32) []byte {
	u := make([]uint32, len(words))
	for i, v := range words {
		u[i] = uint32(v)
	}

	return PackU32(u)
}

// UnpackI32 inverts PackI32.
func UnpackI32(packed []byte, n int) []int32 {
	u := UnpackU32(packed, n)
	out := make([]int32, n)
	for i, v := range u {
		out[i] = int32(v)
	}

	return out
}
