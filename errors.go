// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/vtf

package vtf

import "errors"

var (
	// ErrInvalidDimension indicates a resolution axis outside [1, 65535].
	ErrInvalidDimension = errors.New("invalid dimension")
	// ErrInvalidFrameCount indicates a frame count of zero or above 65535.
	ErrInvalidFrameCount = errors.New("invalid frame count")
	// ErrInvalidInputImage indicates a payload failing the DDS preconditions.
	ErrInvalidInputImage = errors.New("invalid input image")
	// ErrInvalidFaceCount indicates a face count not in {1, 6, 7} or a misused 7-face cubemap.
	ErrInvalidFaceCount = errors.New("invalid face count")
	// ErrInvalidFirstFrame indicates a first frame index beyond the frame count.
	ErrInvalidFirstFrame = errors.New("invalid first frame")
	// ErrUnsupportedVersion indicates a VTF version outside 7.0-7.5.
	ErrUnsupportedVersion = errors.New("unsupported version")
	// ErrUnsupportedResource indicates an unknown, duplicate or misplaced resource entry.
	ErrUnsupportedResource = errors.New("unsupported resource")
	// ErrIO indicates the output file could not be created or written.
	ErrIO = errors.New("i/o error")

	// ErrSizeOverflow indicates a size or count exceeds its field width.
	ErrSizeOverflow = errors.New("size overflow")
	// ErrInvalidGrid indicates an empty or ragged payload grid.
	ErrInvalidGrid = errors.New("invalid payload grid")
	// ErrMissingPayload indicates a texture frame without a payload.
	ErrMissingPayload = errors.New("missing payload")
	// ErrInvalidFormat indicates an unknown pixel format.
	ErrInvalidFormat = errors.New("invalid format")
	// ErrInvalidFlag indicates an unknown flag name.
	ErrInvalidFlag = errors.New("invalid flag")
	// ErrInvalidHeader indicates a VTF header that cannot be parsed.
	ErrInvalidHeader = errors.New("invalid VTF header")
	// ErrOpenFile indicates an input file open or read failed.
	ErrOpenFile = errors.New("open file failed")

	// ErrLZ4Compress indicates LZ4 compression failed.
	ErrLZ4Compress = errors.New("LZ4 compression failed")
	// ErrLZ4Decode indicates LZ4 decode failed.
	ErrLZ4Decode = errors.New("LZ4 decode failed")
	// ErrCopySizeMismatch indicates COPY block data size mismatch.
	ErrCopySizeMismatch = errors.New("COPY block size mismatch")
	// ErrUnknownBlockMagic indicates an unknown EDDS block magic.
	ErrUnknownBlockMagic = errors.New("unknown block magic")
	// ErrChunkTooLarge indicates a compressed chunk exceeds allowed size.
	ErrChunkTooLarge = errors.New("compressed chunk too large")
	// ErrChunkStreamTruncated indicates LZ4 chunk stream is truncated.
	ErrChunkStreamTruncated = errors.New("LZ4 chunk-stream truncated")
	// ErrUnknownLZ4Flags indicates unknown LZ4 chunk flags.
	ErrUnknownLZ4Flags = errors.New("unknown LZ4 flags")
	// ErrInvalidChunkSize indicates invalid LZ4 chunk size.
	ErrInvalidChunkSize = errors.New("invalid compressed chunk size")
	// ErrDecodeOverrun indicates decoded data overruns target buffer.
	ErrDecodeOverrun = errors.New("decoded LZ4 overruns target buffer")
	// ErrDecodedSizeMismatch indicates decoded size mismatch.
	ErrDecodedSizeMismatch = errors.New("LZ4 decoded size mismatch")
	// ErrBlockLengthMismatch indicates leftover bytes after decode.
	ErrBlockLengthMismatch = errors.New("LZ4 block length mismatch")
)
