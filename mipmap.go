// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/vtf

package vtf

import "fmt"

// MaxFrames is the largest frame count a VTF can describe.
const MaxFrames = 65535

// Frame is one animation frame at one mipmap level.
type Frame struct {
	// Payload is the path of the DDS payload for this slot, empty until supplied.
	Payload string

	index int
}

// Index returns the zero-based position of the frame within its mipmap.
func (f *Frame) Index() int { return f.index }

// Mipmap is one level of a texture: a fixed resolution and a dense list of frames.
type Mipmap struct {
	resolution Resolution
	frames     []*Frame
}

// NewMipmap returns a mipmap with frameCount empty frames.
func NewMipmap(resolution Resolution, frameCount int) (*Mipmap, error) {
	m := &Mipmap{resolution: resolution}
	if err := m.SetFrameCount(frameCount); err != nil {
		return nil, err
	}

	return m, nil
}

// Resolution returns the level's resolution.
func (m *Mipmap) Resolution() Resolution { return m.resolution }

// FrameCount returns the number of frames.
func (m *Mipmap) FrameCount() int { return len(m.frames) }

// Frames returns the frames in index order.
func (m *Mipmap) Frames() []*Frame {
	out := make([]*Frame, len(m.frames))
	copy(out, m.frames)
	return out
}

// Frame returns the frame at index i, or nil when out of range.
func (m *Mipmap) Frame(i int) *Frame {
	if i < 0 || i >= len(m.frames) {
		return nil
	}

	return m.frames[i]
}

// SetFrameCount grows the frame list with empty frames or truncates it from the tail.
// Frames below the new bound keep their identity and payload.
func (m *Mipmap) SetFrameCount(n int) error {
	if n < 1 || n > MaxFrames {
		return fmt.Errorf("%w: mipmap %s: %d", ErrInvalidFrameCount, m.resolution, n)
	}

	if len(m.frames) > n {
		clear(m.frames[n:])
		m.frames = m.frames[:n]
		return nil
	}

	for len(m.frames) < n {
		m.frames = append(m.frames, &Frame{index: len(m.frames)})
	}

	return nil
}
