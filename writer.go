// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/vtf

package vtf

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

// Magic opens every VTF file.
const Magic = "VTF\x00"

// Reflectivity is the average texel color, written in R, B, G order.
type Reflectivity struct {
	R, G, B float32
}

// Writer encodes one VTF file. Fields not used by Version are ignored:
// Depth needs 7.2+, Resources and their values need 7.3+. On 7.3+ the
// image data is written only through its HIGHRES and LOWRES entries, and
// HighResData holds the levels smallest first.
type Writer struct {
	Version       Version
	Width         uint16
	Height        uint16
	Flags         Flag
	Frames        uint16
	FirstFrame    uint16
	Reflectivity  Reflectivity
	BumpmapScale  float32
	HighResFormat Format
	MipmapCount   uint8
	LowResFormat  Format
	LowResWidth   uint8
	LowResHeight  uint8
	LowResData    []byte
	HighResData   []byte

	// Depth is the slice count of a volume texture (7.2+).
	Depth uint16

	// Resources is the directory in file order (7.3+). Data blocks are
	// written in the same order.
	Resources     []Resource
	CRC           uint32
	KVD           string
	LOD           LOD
	TSO           uint32
	ParticleSheet []byte
}

// HeaderSize returns the header size field for the writer's version,
// resource directory included.
func (w *Writer) HeaderSize() (int, error) {
	c, err := w.Version.caps()
	if err != nil {
		return 0, err
	}

	return c.headerSize(len(w.Resources)), nil
}

// Encode writes the complete file to out.
func (w *Writer) Encode(out io.Writer) error {
	data, err := w.Bytes()
	if err != nil {
		return err
	}
	if _, err := out.Write(data); err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}

	return nil
}

// Bytes returns the complete file.
func (w *Writer) Bytes() ([]byte, error) {
	c, err := w.Version.caps()
	if err != nil {
		return nil, err
	}
	if err := w.validateResources(c); err != nil {
		return nil, err
	}

	headerSize := c.headerSize(len(w.Resources))
	size := headerSize + len(w.LowResData) + len(w.HighResData)
	for _, r := range w.Resources {
		if r.Tag == ResourceKVD || r.Tag == ResourceParticleSheet {
			size += len(w.blockData(r.Tag)) + 4
		}
	}

	buf := bytes.NewBuffer(make([]byte, 0, size))
	if err := w.writeHeader(buf, c, headerSize); err != nil {
		return nil, err
	}

	if pad := alignUp(buf.Len(), headerAlignment) - buf.Len(); pad > 0 {
		buf.Write(make([]byte, pad))
	}

	if !c.resources {
		buf.Write(w.LowResData)
		buf.Write(w.HighResData)
		return buf.Bytes(), nil
	}

	if err := w.writeDirectory(buf, headerSize); err != nil {
		return nil, err
	}
	for _, r := range w.Resources {
		if err := w.writeBlock(buf, r.Tag); err != nil {
			return nil, err
		}
	}

	return buf.Bytes(), nil
}

// WriteOut encodes the file and writes it to path.
// A failure while writing may leave a truncated file behind.
func (w *Writer) WriteOut(path string) error {
	data, err := w.Bytes()
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: create %q: %v", ErrIO, path, err)
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return fmt.Errorf("%w: write %q: %v", ErrIO, path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: close %q: %v", ErrIO, path, err)
	}

	return nil
}

func (w *Writer) validateResources(c capabilities) error {
	if !c.resources {
		if len(w.Resources) != 0 {
			return fmt.Errorf("%w: version %s has no resource directory", ErrUnsupportedResource, w.Version)
		}
		return nil
	}

	if _, err := u32FromInt(len(w.Resources)); err != nil {
		return fmt.Errorf("%w: %d resources", err, len(w.Resources))
	}

	seen := make(map[ResourceTag]bool, len(w.Resources))
	for i, r := range w.Resources {
		if !r.Tag.known() {
			return fmt.Errorf("%w: entry %d: tag 0x%06x", ErrUnsupportedResource, i, uint32(r.Tag))
		}
		if seen[r.Tag] {
			return fmt.Errorf("%w: entry %d: duplicate %s", ErrUnsupportedResource, i, r.Tag)
		}
		seen[r.Tag] = true
	}

	if len(w.HighResData) != 0 && !seen[ResourceHighRes] {
		return fmt.Errorf("%w: %d bytes of high-res data without a %s entry", ErrUnsupportedResource, len(w.HighResData), ResourceHighRes)
	}
	if len(w.LowResData) != 0 && !seen[ResourceLowRes] {
		return fmt.Errorf("%w: %d bytes of low-res data without a %s entry", ErrUnsupportedResource, len(w.LowResData), ResourceLowRes)
	}

	return nil
}

func (w *Writer) writeHeader(buf *bytes.Buffer, c capabilities, headerSize int) error {
	hdr := []any{
		[]byte(Magic),
		w.Version.Major,
		w.Version.Minor,
		uint32(headerSize), // #nosec G115 -- bounded by resource count check.
		w.Width,
		w.Height,
		uint32(w.Flags),
		w.Frames,
		w.FirstFrame,
		uint32(0),
		w.Reflectivity.R,
		w.Reflectivity.B,
		w.Reflectivity.G,
		uint32(0),
		w.BumpmapScale,
		uint32(w.HighResFormat),
		w.MipmapCount,
		uint32(w.LowResFormat),
		w.LowResWidth,
		w.LowResHeight,
	}
	if c.depth {
		hdr = append(hdr, w.Depth)
	}
	if c.resources {
		hdr = append(hdr, [3]byte{}, uint32(len(w.Resources))) // #nosec G115 -- checked in validateResources.
	}

	for _, v := range hdr {
		if err := binary.Write(buf, binary.LittleEndian, v); err != nil {
			return fmt.Errorf("%w: header: %v", ErrIO, err)
		}
	}

	return nil
}

// writeDirectory writes one 8-byte entry per resource. Data-bearing entries
// get the file offset of their block, assuming blocks follow in list order.
func (w *Writer) writeDirectory(buf *bytes.Buffer, headerSize int) error {
	offset := headerSize
	for _, r := range w.Resources {
		var value [4]byte

		switch r.Tag {
		case ResourceLowRes, ResourceHighRes, ResourceKVD, ResourceParticleSheet:
			off, err := u32FromInt(offset)
			if err != nil {
				return fmt.Errorf("%w: %s offset %d", err, r.Tag, offset)
			}
			binary.LittleEndian.PutUint32(value[:], off)
			offset += w.blockLength(r.Tag)
		case ResourceCRC:
			binary.LittleEndian.PutUint32(value[:], w.CRC)
		case ResourceLOD:
			value[0] = w.LOD.ClampU
			value[1] = w.LOD.ClampV
		case ResourceTSO:
			binary.LittleEndian.PutUint32(value[:], w.TSO)
		default:
			return fmt.Errorf("%w: %s", ErrUnsupportedResource, r.Tag)
		}

		_ = binary.Write(buf, binary.LittleEndian, r.word())
		buf.Write(value[:])
	}

	return nil
}

func (w *Writer) writeBlock(buf *bytes.Buffer, tag ResourceTag) error {
	switch tag {
	case ResourceLowRes:
		buf.Write(w.LowResData)
	case ResourceHighRes:
		buf.Write(w.HighResData)
	case ResourceKVD, ResourceParticleSheet:
		data := w.blockData(tag)
		n, err := u32FromInt(len(data))
		if err != nil {
			return fmt.Errorf("%w: %s length %d", err, tag, len(data))
		}
		_ = binary.Write(buf, binary.LittleEndian, n)
		buf.Write(data)
	}

	return nil
}

func (w *Writer) blockData(tag ResourceTag) []byte {
	switch tag {
	case ResourceLowRes:
		return w.LowResData
	case ResourceHighRes:
		return w.HighResData
	case ResourceKVD:
		return []byte(w.KVD)
	case ResourceParticleSheet:
		return w.ParticleSheet
	default:
		return nil
	}
}

// blockLength is the size of the block in the payload region; KVD and
// particle sheets carry a 4-byte length prefix.
func (w *Writer) blockLength(tag ResourceTag) int {
	n := len(w.blockData(tag))
	if tag == ResourceKVD || tag == ResourceParticleSheet {
		n += 4
	}

	return n
}
