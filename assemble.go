// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/vtf

package vtf

import (
	"fmt"
	"hash/crc32"
)

// FirstFrameNone is the first-frame sentinel required by 7-face cubemaps.
const FirstFrameNone = 0xFFFF

// Grid holds payload file paths indexed [mipmap][frame][face][slice],
// largest mipmap at index 0. The file stores the levels in reverse order.
type Grid [][][][]string

// Settings are the caller-chosen fields of the output file. Counts and
// dimensions are inferred from the payloads.
type Settings struct {
	Version      Version
	Flags        Flag
	Format       Format
	Reflectivity Reflectivity
	BumpmapScale float32
	FirstFrame   uint16

	// KeyValues is stored as a KVD resource when non-empty (7.3+).
	KeyValues string
	// LOD is stored as a LOD resource when set (7.3+).
	LOD *LOD
	// Checksum stores the CRC32 of the high-res data as a CRC resource (7.3+).
	Checksum bool
}

// Assemble reads every payload of grid and the optional thumbnail, then
// writes the VTF to out. All inputs are read and validated before out is
// created.
func Assemble(out string, grid Grid, thumbnail string, s *Settings) error {
	if _, err := gridShape(grid); err != nil {
		return err
	}

	payloads := make([][][][]*Payload, len(grid))
	for mi, frames := range grid {
		payloads[mi] = make([][][]*Payload, len(frames))
		for fi, faces := range frames {
			payloads[mi][fi] = make([][]*Payload, len(faces))
			for ci, slices := range faces {
				payloads[mi][fi][ci] = make([]*Payload, len(slices))
				for si, path := range slices {
					p, err := ReadPayload(path)
					if err != nil {
						return fmt.Errorf("mipmap %d frame %d face %d slice %d: %w", mi, fi, ci, si, err)
					}
					payloads[mi][fi][ci][si] = p
				}
			}
		}
	}

	var thumb *Payload
	if thumbnail != "" {
		p, err := ReadPayload(thumbnail)
		if err != nil {
			return fmt.Errorf("thumbnail: %w", err)
		}
		thumb = p
	}

	w, err := Build(payloads, thumb, s)
	if err != nil {
		return err
	}

	return w.WriteOut(out)
}

// Build validates the payload layout against s and returns a writer for it.
// Level i must be the base resolution halved i times, in s.Format.
// thumbnail may be nil.
func Build(payloads [][][][]*Payload, thumbnail *Payload, s *Settings) (*Writer, error) {
	shape, err := gridShape(payloads)
	if err != nil {
		return nil, err
	}
	mipmaps, frames, faces, slices := shape[0], shape[1], shape[2], shape[3]

	c, err := s.Version.caps()
	if err != nil {
		return nil, err
	}
	if !s.Format.Valid() || s.Format == FormatNone {
		return nil, fmt.Errorf("%w: high-res format %s", ErrInvalidFormat, s.Format)
	}

	switch faces {
	case 1, 6:
	case 7:
		if s.FirstFrame != FirstFrameNone {
			return nil, fmt.Errorf("%w: 7 faces need first frame 0x%04x, got %d", ErrInvalidFaceCount, FirstFrameNone, s.FirstFrame)
		}
		if s.Version.Major == 7 && s.Version.Minor >= 5 {
			return nil, fmt.Errorf("%w: 7 faces are not supported on version %s", ErrInvalidFaceCount, s.Version)
		}
	default:
		return nil, fmt.Errorf("%w: %d", ErrInvalidFaceCount, faces)
	}
	if faces != 7 && int(s.FirstFrame) >= frames {
		return nil, fmt.Errorf("%w: first frame %d with %d frames", ErrInvalidFirstFrame, s.FirstFrame, frames)
	}

	mip8, err := u8FromInt(mipmaps)
	if err != nil {
		return nil, fmt.Errorf("%w: mipmap count %d", err, mipmaps)
	}
	frames16, err := u16FromInt(frames)
	if err != nil {
		return nil, fmt.Errorf("%w: frame count %d", ErrInvalidFrameCount, frames)
	}
	depth16, err := u16FromInt(slices)
	if err != nil {
		return nil, fmt.Errorf("%w: slice count %d", err, slices)
	}

	top := payloads[0][0][0][0]
	if top == nil {
		return nil, fmt.Errorf("%w: mipmap 0 frame 0 face 0 slice 0: no payload", ErrInvalidInputImage)
	}
	base, err := NewResolution(top.Width, top.Height)
	if err != nil {
		return nil, fmt.Errorf("%w: mipmap 0: %w", ErrInvalidInputImage, err)
	}
	if chain := base.Chain(); mipmaps > len(chain) {
		return nil, fmt.Errorf("%w: %d mipmaps, %s has %d", ErrInvalidInputImage, mipmaps, base, len(chain))
	}

	size := 0
	level := base
	for mi, fr := range payloads {
		if mi > 0 {
			level = level.Halve()
		}
		want := s.Format.DataLength(level.Width(), level.Height())
		for fi, faces := range fr {
			for ci, face := range faces {
				for si, p := range face {
					if err := checkPayload(p, level, s.Format, want); err != nil {
						return nil, fmt.Errorf("mipmap %d frame %d face %d slice %d: %w", mi, fi, ci, si, err)
					}
					size += len(p.Data)
				}
			}
		}
	}

	// smallest mipmap first, then frame -> face -> slice within a level
	highRes := make([]byte, 0, size)
	for mi := len(payloads) - 1; mi >= 0; mi-- {
		for _, fr := range payloads[mi] {
			for _, face := range fr {
				for _, p := range face {
					highRes = append(highRes, p.Data...)
				}
			}
		}
	}

	w := &Writer{
		Version:       s.Version,
		Width:         uint16(base.Width()),  // #nosec G115 -- Resolution is bounded to 65535.
		Height:        uint16(base.Height()), // #nosec G115 -- Resolution is bounded to 65535.
		Flags:         s.Flags,
		Frames:        frames16,
		FirstFrame:    s.FirstFrame,
		Reflectivity:  s.Reflectivity,
		BumpmapScale:  s.BumpmapScale,
		HighResFormat: s.Format,
		MipmapCount:   mip8,
		LowResFormat:  FormatNone,
		HighResData:   highRes,
	}

	if thumbnail != nil && len(thumbnail.Data) > 0 {
		if thumbnail.Format == FormatNone {
			return nil, fmt.Errorf("%w: thumbnail has an unknown DDS pixel format", ErrInvalidInputImage)
		}
		tw, err := u8FromInt(thumbnail.Width)
		if err != nil {
			return nil, fmt.Errorf("%w: thumbnail width=%d", ErrInvalidInputImage, thumbnail.Width)
		}
		th, err := u8FromInt(thumbnail.Height)
		if err != nil {
			return nil, fmt.Errorf("%w: thumbnail height=%d", ErrInvalidInputImage, thumbnail.Height)
		}
		if n := thumbnail.Format.DataLength(thumbnail.Width, thumbnail.Height); n != len(thumbnail.Data) {
			return nil, fmt.Errorf("%w: thumbnail %dx%d %s: expected %d bytes, got %d",
				ErrInvalidInputImage, thumbnail.Width, thumbnail.Height, thumbnail.Format, n, len(thumbnail.Data))
		}
		w.LowResFormat = thumbnail.Format
		w.LowResWidth = tw
		w.LowResHeight = th
		w.LowResData = thumbnail.Data
	}

	if c.depth {
		w.Depth = depth16
	} else if slices != 1 {
		return nil, fmt.Errorf("%w: %d slices need version 7.2 or later", ErrUnsupportedVersion, slices)
	}

	if c.resources {
		w.Resources = append(w.Resources, Resource{Tag: ResourceHighRes})
		if len(w.LowResData) != 0 {
			w.Resources = append(w.Resources, Resource{Tag: ResourceLowRes})
		}
		if s.KeyValues != "" {
			w.Resources = append(w.Resources, Resource{Tag: ResourceKVD})
			w.KVD = s.KeyValues
		}
		if s.LOD != nil {
			w.Resources = append(w.Resources, Resource{Tag: ResourceLOD, Flag: ResourceFlagNoData})
			w.LOD = *s.LOD
		}
		if s.Checksum {
			w.Resources = append(w.Resources, Resource{Tag: ResourceCRC, Flag: ResourceFlagNoData})
			w.CRC = crc32.ChecksumIEEE(highRes)
		}
	} else if s.KeyValues != "" || s.LOD != nil || s.Checksum {
		return nil, fmt.Errorf("%w: version %s has no resource directory", ErrUnsupportedResource, s.Version)
	}

	return w, nil
}

// checkPayload verifies one payload of a level with resolution r. Payloads
// with an unrecognized DDS pixel format are taken verbatim.
func checkPayload(p *Payload, r Resolution, format Format, length int) error {
	if p == nil || len(p.Data) == 0 {
		return fmt.Errorf("%w: no data", ErrInvalidInputImage)
	}
	if p.Width != r.Width() || p.Height != r.Height() {
		return fmt.Errorf("%w: %dx%d, want %s", ErrInvalidInputImage, p.Width, p.Height, r)
	}
	if p.Format == FormatNone {
		return nil
	}
	if p.Format != format {
		return fmt.Errorf("%w: payload is %s, want %s", ErrInvalidFormat, p.Format, format)
	}
	if len(p.Data) != length {
		return fmt.Errorf("%w: %s %s: expected %d bytes, got %d", ErrInvalidInputImage, r, format, length, len(p.Data))
	}

	return nil
}

// gridShape returns the mipmap, frame, face and slice counts of a
// rectangular, non-empty grid.
func gridShape[T any](grid [][][][]T) ([4]int, error) {
	var shape [4]int
	if len(grid) == 0 || len(grid[0]) == 0 || len(grid[0][0]) == 0 || len(grid[0][0][0]) == 0 {
		return shape, fmt.Errorf("%w: empty", ErrInvalidGrid)
	}
	shape = [4]int{len(grid), len(grid[0]), len(grid[0][0]), len(grid[0][0][0])}

	for mi, frames := range grid {
		if len(frames) != shape[1] {
			return shape, fmt.Errorf("%w: mipmap %d has %d frames, want %d", ErrInvalidGrid, mi, len(frames), shape[1])
		}
		for fi, faces := range frames {
			if len(faces) != shape[2] {
				return shape, fmt.Errorf("%w: mipmap %d frame %d has %d faces, want %d", ErrInvalidGrid, mi, fi, len(faces), shape[2])
			}
			for ci, slices := range faces {
				if len(slices) != shape[3] {
					return shape, fmt.Errorf("%w: mipmap %d frame %d face %d has %d slices, want %d",
						ErrInvalidGrid, mi, fi, ci, len(slices), shape[3])
				}
			}
		}
	}

	return shape, nil
}
