package capture

import (
	"encoding/binary"
	"fmt"
	"io"
)

// StreamWriter writes the cubemap binary stream: a little-endian header of
// float32 fps, float32 gamma, uint32 frameCount, followed by frameCount
// groups of six length-prefixed image blocks in Directions order. Blocks are
// written whole; a consumer can rely on the stream never containing a torn
// chunk.
type StreamWriter struct {
	w io.Writer
}

// NewStreamWriter wraps an output sink. The sink is owned exclusively by one
// in-flight capture job.
func NewStreamWriter(w io.Writer) *StreamWriter {
	return &StreamWriter{w: w}
}

// WriteHeader writes the stream header. Must be called exactly once, before
// any block.
func (sw *StreamWriter) WriteHeader(fps, gamma float32, frameCount uint32) error {
	if err := binary.Write(sw.w, binary.LittleEndian, fps); err != nil {
		return fmt.Errorf("writing fps: %w", err)
	}
	if err := binary.Write(sw.w, binary.LittleEndian, gamma); err != nil {
		return fmt.Errorf("writing gamma: %w", err)
	}
	if err := binary.Write(sw.w, binary.LittleEndian, frameCount); err != nil {
		return fmt.Errorf("writing frame count: %w", err)
	}
	return nil
}

// WriteBlock writes one image block: a uint32 byte length followed by the
// raw bytes of the opaque image encoding.
func (sw *StreamWriter) WriteBlock(data []byte) error {
	if err := binary.Write(sw.w, binary.LittleEndian, uint32(len(data))); err != nil {
		return fmt.Errorf("writing block length: %w", err)
	}
	if _, err := sw.w.Write(data); err != nil {
		return fmt.Errorf("writing block data: %w", err)
	}
	return nil
}

// HeaderSize is the byte length of the stream header.
const HeaderSize = 4 + 4 + 4
