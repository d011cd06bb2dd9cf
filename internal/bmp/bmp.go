// Package bmp reads and writes the uncompressed Windows bitmap format used
// to persist the sandbox canvas. The writer always emits 24-bit bottom-up
// rows padded to 4 bytes; the reader additionally accepts 32-bit and
// top-down (negative height) files. Stored alpha is ignored: decoded
// frames are always fully opaque.
package bmp

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"

	"github.com/1broseidon/deskloop/internal/raster"
)

const (
	fileHeaderSize = 14
	infoHeaderSize = 40
	pixelOffset    = fileHeaderSize + infoHeaderSize

	// 72 DPI expressed in pixels per meter, the conventional default.
	pelsPerMeter = 2835
)

var ErrFormat = errors.New("bmp: unsupported or malformed file")

func rowStride(width, bytesPerPixel int) int {
	return (width*bytesPerPixel + 3) &^ 3
}

// Encode serializes a frame as a 24-bit uncompressed bitmap.
func Encode(f *raster.Frame) []byte {
	stride := rowStride(f.W, 3)
	imageSize := stride * f.H
	out := make([]byte, pixelOffset+imageSize)

	out[0] = 'B'
	out[1] = 'M'
	binary.LittleEndian.PutUint32(out[2:], uint32(len(out)))
	binary.LittleEndian.PutUint32(out[10:], pixelOffset)

	binary.LittleEndian.PutUint32(out[14:], infoHeaderSize)
	binary.LittleEndian.PutUint32(out[18:], uint32(int32(f.W)))
	binary.LittleEndian.PutUint32(out[22:], uint32(int32(f.H)))
	binary.LittleEndian.PutUint16(out[26:], 1) // planes
	binary.LittleEndian.PutUint16(out[28:], 24)
	binary.LittleEndian.PutUint32(out[34:], uint32(imageSize))
	binary.LittleEndian.PutUint32(out[38:], uint32(int32(pelsPerMeter)))
	binary.LittleEndian.PutUint32(out[42:], uint32(int32(pelsPerMeter)))

	// Rows are stored bottom-up, channels as BGR.
	for y := 0; y < f.H; y++ {
		src := (f.H - 1 - y) * f.W * 4
		dst := pixelOffset + y*stride
		for x := 0; x < f.W; x++ {
			out[dst+x*3] = f.Pix[src+x*4+2]
			out[dst+x*3+1] = f.Pix[src+x*4+1]
			out[dst+x*3+2] = f.Pix[src+x*4]
		}
	}
	return out
}

// Decode parses a single-plane uncompressed 24- or 32-bit bitmap into an
// RGBA frame with alpha forced opaque.
func Decode(data []byte) (*raster.Frame, error) {
	if len(data) < pixelOffset || data[0] != 'B' || data[1] != 'M' {
		return nil, ErrFormat
	}
	offset := int(binary.LittleEndian.Uint32(data[10:]))
	headerSize := binary.LittleEndian.Uint32(data[14:])
	if headerSize < infoHeaderSize {
		return nil, ErrFormat
	}
	width := int(int32(binary.LittleEndian.Uint32(data[18:])))
	rawHeight := int(int32(binary.LittleEndian.Uint32(data[22:])))
	planes := binary.LittleEndian.Uint16(data[26:])
	bpp := int(binary.LittleEndian.Uint16(data[28:]))
	compression := binary.LittleEndian.Uint32(data[30:])
	if planes != 1 || compression != 0 || (bpp != 24 && bpp != 32) {
		return nil, fmt.Errorf("%w: planes=%d bpp=%d compression=%d", ErrFormat, planes, bpp, compression)
	}

	topDown := rawHeight < 0
	height := rawHeight
	if topDown {
		height = -rawHeight
	}
	if width <= 0 || height <= 0 {
		return nil, ErrFormat
	}

	bytesPP := bpp / 8
	stride := rowStride(width, bytesPP)
	if offset < pixelOffset || len(data) < offset+stride*height {
		return nil, fmt.Errorf("%w: truncated pixel data", ErrFormat)
	}

	f := raster.NewFrame(width, height)
	for y := 0; y < height; y++ {
		srcY := height - 1 - y
		if topDown {
			srcY = y
		}
		row := data[offset+srcY*stride:]
		dst := y * width * 4
		for x := 0; x < width; x++ {
			i := x * bytesPP
			f.Pix[dst+x*4] = row[i+2]
			f.Pix[dst+x*4+1] = row[i+1]
			f.Pix[dst+x*4+2] = row[i]
			f.Pix[dst+x*4+3] = 255
		}
	}
	return f, nil
}

// WriteFile atomically replaces path with the encoded frame: the bytes go
// to a temporary sibling first, then rename over the target. On failure
// the temporary file is best-effort removed and the error returned; the
// previous file content is never left half-written.
func WriteFile(path string, f *raster.Frame) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, Encode(f), 0644); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename %s: %w", path, err)
	}
	return nil
}

// ReadFile loads and decodes the bitmap at path.
func ReadFile(path string) (*raster.Frame, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Decode(data)
}
