// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/vtf

package vtf

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/pierrec/lz4/v4"
)

const (
	// BlockMagicCOPY marks an uncompressed EDDS block.
	BlockMagicCOPY = "COPY"
	// BlockMagicLZ4 marks an LZ4-compressed EDDS block.
	BlockMagicLZ4 = "LZ4 "

	// ChunkSize is the Enfusion chunk size for LZ4 streams.
	ChunkSize = 64 * 1024

	// minCompressSize is the payload size below which blocks stay COPY.
	minCompressSize = 1024
)

// block is the single EDDS block of a one-level payload.
type block struct {
	magic string
	data  []byte
	size  int32
	// uncompressedSize is set for LZ4 blocks only.
	uncompressedSize int32
}

// packBlock compresses data into an LZ4 chunk stream, or keeps it as COPY
// when compression does not save at least 15%.
func packBlock(data []byte) (*block, error) {
	rawSize, err := i32FromInt(len(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %d bytes", err, len(data))
	}
	raw := &block{magic: BlockMagicCOPY, size: rawSize, data: data}
	if len(data) < minCompressSize {
		return raw, nil
	}

	var stream bytes.Buffer
	scratch := make([]byte, lz4.CompressBlockBound(ChunkSize))

	for i := 0; i < len(data); i += ChunkSize {
		end := min(i+ChunkSize, len(data))
		src := data[i:end]

		cn, err := lz4.CompressBlockHC(src, scratch, 0, nil, nil)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLZ4Compress, err)
		}
		if cn == 0 || float64(cn) > float64(len(src))*0.85 {
			return raw, nil
		}
		if cn > 0x7FFFFF {
			return nil, fmt.Errorf("%w: %d", ErrChunkTooLarge, cn)
		}

		last := byte(0x00)
		if end == len(data) {
			last = 0x80
		}
		stream.Write([]byte{byte(cn), byte(cn >> 8), byte(cn >> 16), last})
		stream.Write(scratch[:cn])
	}

	total := 4 + stream.Len()
	if float64(total) > float64(len(data))*0.85 {
		return raw, nil
	}
	size, err := i32FromInt(total)
	if err != nil {
		return nil, err
	}

	return &block{magic: BlockMagicLZ4, size: size, uncompressedSize: rawSize, data: stream.Bytes()}, nil
}

// writeTo writes the block table entry followed by the block body.
func (b *block) writeTo(w io.Writer) error {
	if _, err := io.WriteString(w, b.magic); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, b.size); err != nil {
		return err
	}
	if b.magic == BlockMagicLZ4 {
		if err := binary.Write(w, binary.LittleEndian, b.uncompressedSize); err != nil {
			return err
		}
	}
	_, err := w.Write(b.data)
	return err
}

// unpackBlock inflates a block body into exactly expected bytes.
// LZ4 bodies start with the uncompressed size followed by the chunk stream.
func unpackBlock(magic string, body []byte, expected int) ([]byte, error) {
	switch magic {
	case BlockMagicCOPY:
		if len(body) != expected {
			return nil, fmt.Errorf("%w: expected %d, got %d", ErrCopySizeMismatch, expected, len(body))
		}
		return body, nil
	case BlockMagicLZ4:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBlockMagic, magic)
	}

	if len(body) < 4 {
		return nil, fmt.Errorf("%w: need 4 bytes size, have %d", ErrChunkStreamTruncated, len(body))
	}
	if size := int(binary.LittleEndian.Uint32(body[:4])); size != expected {
		return nil, fmt.Errorf("%w: expected %d, header says %d", ErrDecodedSizeMismatch, expected, size)
	}

	const dictCap = 64 * 1024
	dict := make([]byte, 0, dictCap)
	target := make([]byte, expected)
	outIdx := 0
	r := bytes.NewReader(body[4:])

	for {
		if r.Len() < 4 {
			return nil, fmt.Errorf("%w: need 4 bytes header, have %d", ErrChunkStreamTruncated, r.Len())
		}

		var hdr [4]byte
		_, _ = io.ReadFull(r, hdr[:])
		cSize := int(hdr[0]) | int(hdr[1])<<8 | int(hdr[2])<<16
		flags := hdr[3]
		if flags&^0x80 != 0 {
			return nil, fmt.Errorf("%w: 0x%02x", ErrUnknownLZ4Flags, flags)
		}
		if cSize <= 0 || cSize > r.Len() {
			return nil, fmt.Errorf("%w: %d (remaining %d)", ErrInvalidChunkSize, cSize, r.Len())
		}

		compressed := make([]byte, cSize)
		_, _ = io.ReadFull(r, compressed)

		remaining := expected - outIdx
		if remaining <= 0 {
			return nil, ErrDecodeOverrun
		}
		dst := target[outIdx : outIdx+min(ChunkSize, remaining)]

		n, err := lz4.UncompressBlockWithDict(compressed, dst, dict)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLZ4Decode, err)
		}
		decoded := target[outIdx : outIdx+n]
		outIdx += n

		// keep the trailing 64KB of output as the dictionary for the next chunk
		dict = append(dict, decoded...)
		if len(dict) > dictCap {
			dict = append(dict[:0], dict[len(dict)-dictCap:]...)
		}

		if flags&0x80 != 0 {
			break
		}
	}

	if outIdx != expected {
		return nil, fmt.Errorf("%w: expected %d, got %d", ErrDecodedSizeMismatch, expected, outIdx)
	}
	if r.Len() != 0 {
		return nil, fmt.Errorf("%w: %d bytes left after decode", ErrBlockLengthMismatch, r.Len())
	}

	return target, nil
}
