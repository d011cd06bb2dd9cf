// Package pngenc encodes an RGBA frame as a minimal PNG: 8-bit truecolor
// with alpha, no per-row filtering, no interlace, no ancillary chunks.
// This is a closed encoder for screenshot delivery, not a general PNG
// writer; stdlib image/png remains the decoder of record in tests.
package pngenc

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"fmt"
	"hash/crc32"

	"github.com/1broseidon/deskloop/internal/raster"
)

var signature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

// Encode serializes the frame as IHDR + IDAT + IEND.
func Encode(f *raster.Frame) ([]byte, error) {
	var out bytes.Buffer
	out.Write(signature)

	ihdr := make([]byte, 13)
	binary.BigEndian.PutUint32(ihdr[0:], uint32(f.W))
	binary.BigEndian.PutUint32(ihdr[4:], uint32(f.H))
	ihdr[8] = 8 // bit depth
	ihdr[9] = 6 // truecolor with alpha
	writeChunk(&out, "IHDR", ihdr)

	// Each scanline is prefixed with filter type 0 (None). Level 6 trades
	// ratio for speed acceptably at one encode per turn.
	var compressed bytes.Buffer
	zw, err := zlib.NewWriterLevel(&compressed, 6)
	if err != nil {
		return nil, fmt.Errorf("zlib: %w", err)
	}
	stride := f.W * 4
	filterByte := []byte{0}
	for y := 0; y < f.H; y++ {
		if _, err := zw.Write(filterByte); err != nil {
			return nil, fmt.Errorf("compress scanline: %w", err)
		}
		if _, err := zw.Write(f.Pix[y*stride : (y+1)*stride]); err != nil {
			return nil, fmt.Errorf("compress scanline: %w", err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("flush zlib stream: %w", err)
	}
	writeChunk(&out, "IDAT", compressed.Bytes())

	writeChunk(&out, "IEND", nil)
	return out.Bytes(), nil
}

// writeChunk frames one chunk: big-endian length, 4-byte tag, body, and a
// CRC-32 over tag+body.
func writeChunk(out *bytes.Buffer, tag string, body []byte) {
	var head [8]byte
	binary.BigEndian.PutUint32(head[0:], uint32(len(body)))
	copy(head[4:], tag)
	out.Write(head[:])
	out.Write(body)

	crc := crc32.NewIEEE()
	crc.Write(head[4:])
	crc.Write(body)
	var sum [4]byte
	binary.BigEndian.PutUint32(sum[:], crc.Sum32())
	out.Write(sum[:])
}
