package ntru

import (
	"encoding/binary"
	"fmt"
	"io"
)

// fillBounded fills out with integers drawn uniformly from the inclusive
// range [min, max]. Words at or above the largest multiple of the span are
// rejected, so the result is unbiased and deterministic for a given stream.
func fillBounded(stream io.Reader, out []int64, min, max int64) error {
	if stream == nil {
		return fmt.Errorf("nil stream")
	}
	if max < min {
		return fmt.Errorf("invalid bounds: max < min (%d < %d)", max, min)
	}
	span := uint64(max - min + 1)
	if span > 1<<32 {
		return fmt.Errorf("invalid bounds: span %d exceeds 32 bits", span)
	}
	threshold := (uint64(1) << 32) / span * span

	// read in chunks to keep the number of stream calls low
	buf := make([]byte, 4*len(out))
	for i := 0; i < len(out); {
		chunk := buf[:4*(len(out)-i)]
		if _, err := io.ReadFull(stream, chunk); err != nil {
			return fmt.Errorf("stream read: %w", err)
		}
		for off := 0; off < len(chunk) && i < len(out); off += 4 {
			word := uint64(binary.LittleEndian.Uint32(chunk[off:]))
			if word >= threshold {
				continue
			}
			out[i] = int64(word%span) + min
			i++
		}
	}
	return nil
}

// sampleTrits fills out with uniform values in {-1, 0, 1}, five per byte
// below 243.
func sampleTrits(stream io.Reader, out []int64) error {
	var b [1]byte
	for i := 0; i < len(out); {
		if _, err := io.ReadFull(stream, b[:]); err != nil {
			return fmt.Errorf("stream read: %w", err)
		}
		v := int(b[0])
		if v >= 243 {
			continue
		}
		for k := 0; k < 5 && i < len(out); k++ {
			out[i] = int64(v%3) - 1
			v /= 3
			i++
		}
	}
	return nil
}
