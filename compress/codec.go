// Package compress provides the LZMA block adapter used by MG1/MG2 and the
// u32-length-prefixed framing every compressed section is wrapped in.
package compress

// Codec compresses and decompresses opaque byte blocks. MG1 and MG2 treat
// LZMA purely as a block codec with this contract: compress(raw, level) ->
// packed, decompress(packed, expected_len) -> raw.
type Codec interface {
	// Compress packs data and returns the compressed result.
	Compress(data []byte) ([]byte, error)

	// Decompress unpacks data, which must expand to exactly expectedLen
	// bytes. A mismatch is reported as an LZMA error.
	Decompress(data []byte, expectedLen int) ([]byte, error)
}
