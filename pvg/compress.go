package pvg

import (
	"fmt"

	"github.com/klauspost/compress/zstd"
)

// Shared encoder/decoder; both are safe for concurrent use.
var (
	zstdEncoder, _ = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	zstdDecoder, _ = zstd.NewReader(nil)
)

// compressBody zstd-compresses an encoded record stream. Used when the
// header's compressed flag is set.
func compressBody(body []byte) []byte {
	return zstdEncoder.EncodeAll(body, nil)
}

// decompressBody inverts compressBody.
func decompressBody(body []byte) ([]byte, error) {
	out, err := zstdDecoder.DecodeAll(body, nil)
	if err != nil {
		return nil, fmt.Errorf("pvg: zstd body: %w", err)
	}
	return out, nil
}
