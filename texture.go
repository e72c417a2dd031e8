// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/vtf

package vtf

import (
	"fmt"
	"slices"
)

// Texture owns a full mipmap chain, largest level first, and keeps every
// level at the same frame count.
//
// A resize may reallocate the mipmap list, so callers should not hold a
// Mipmap or Frame across calls to SetResolution.
type Texture struct {
	resolution Resolution
	frameCount int
	mipmaps    []*Mipmap
}

// NewTexture returns a texture with the full chain for resolution and frameCount
// empty frames per level.
func NewTexture(resolution Resolution, frameCount int) (*Texture, error) {
	if frameCount < 1 || frameCount > MaxFrames {
		return nil, fmt.Errorf("%w: %d", ErrInvalidFrameCount, frameCount)
	}
	if _, err := NewResolution(resolution.width, resolution.height); err != nil {
		return nil, err
	}

	t := &Texture{resolution: resolution, frameCount: frameCount}
	t.mipmaps = t.newLevels(resolution.Chain())

	return t, nil
}

// Resolution returns the resolution of the largest level.
func (t *Texture) Resolution() Resolution { return t.resolution }

// FrameCount returns the number of frames on every level.
func (t *Texture) FrameCount() int { return t.frameCount }

// MipmapCount returns the number of levels.
func (t *Texture) MipmapCount() int { return len(t.mipmaps) }

// Mipmaps returns the levels, largest first.
func (t *Texture) Mipmaps() []*Mipmap {
	out := make([]*Mipmap, len(t.mipmaps))
	copy(out, t.mipmaps)
	return out
}

// Mipmap returns level i, or nil when out of range.
func (t *Texture) Mipmap(i int) *Mipmap {
	if i < 0 || i >= len(t.mipmaps) {
		return nil
	}

	return t.mipmaps[i]
}

// SetResolution resizes the texture, reusing every existing level that is
// still part of the new chain. The texture is unchanged on error.
func (t *Texture) SetResolution(resolution Resolution) error {
	if _, err := NewResolution(resolution.width, resolution.height); err != nil {
		return err
	}
	if resolution == t.resolution {
		return nil
	}

	old := t.resolution
	t.resolution = resolution

	// smaller: an existing level becomes the new top
	if i := slices.IndexFunc(t.mipmaps, func(m *Mipmap) bool { return m.resolution == resolution }); i != -1 {
		clear(t.mipmaps[:i])
		t.mipmaps = slices.Clip(t.mipmaps[i:])
		return nil
	}

	chain := resolution.Chain()

	// larger: the old top is a level of the new chain
	if k := slices.Index(chain, old); k != -1 {
		t.mipmaps = append(t.newLevels(chain[:k]), t.mipmaps...)
		return nil
	}

	t.mipmaps = t.newLevels(chain)

	return nil
}

// SetFrameCount sets the frame count on every level.
func (t *Texture) SetFrameCount(n int) error {
	if n < 1 || n > MaxFrames {
		return fmt.Errorf("%w: %d", ErrInvalidFrameCount, n)
	}
	if n == t.frameCount {
		return nil
	}

	for _, m := range t.mipmaps {
		if err := m.SetFrameCount(n); err != nil {
			return err
		}
	}
	t.frameCount = n

	return nil
}

// Grid exports the frame payloads as an assembly grid with one face and one
// slice, largest level at index 0.
func (t *Texture) Grid() (Grid, error) {
	grid := make(Grid, len(t.mipmaps))
	for mi, m := range t.mipmaps {
		grid[mi] = make([][][]string, len(m.frames))
		for fi, f := range m.frames {
			if f.Payload == "" {
				return nil, fmt.Errorf("%w: mipmap %d (%s) frame %d", ErrMissingPayload, mi, m.resolution, fi)
			}
			grid[mi][fi] = [][]string{{f.Payload}}
		}
	}

	return grid, nil
}

func (t *Texture) newLevels(chain []Resolution) []*Mipmap {
	levels := make([]*Mipmap, 0, len(chain))
	for _, r := range chain {
		m := &Mipmap{resolution: r}
		for i := 0; i < t.frameCount; i++ {
			m.frames = append(m.frames, &Frame{index: i})
		}
		levels = append(levels, m)
	}

	return levels
}
