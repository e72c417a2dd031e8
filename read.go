// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/vtf

package vtf

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

// ResourceEntry is a parsed directory entry. Value is the block offset for
// data-bearing tags, otherwise the inline value.
type ResourceEntry struct {
	Resource
	Value uint32
}

// Info is a parsed VTF header.
type Info struct {
	Version       Version
	HeaderSize    uint32
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
	Depth         uint16
	Resources     []ResourceEntry
}

// Offset returns the recorded block offset of tag.
func (i *Info) Offset(tag ResourceTag) (uint32, bool) {
	if !tag.HasData() {
		return 0, false
	}
	for _, e := range i.Resources {
		if e.Tag == tag {
			return e.Value, true
		}
	}

	return 0, false
}

// ReadInfo reads the header of the VTF file at path.
func ReadInfo(path string) (*Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrOpenFile, path, err)
	}
	defer func() { _ = f.Close() }()

	return ReadHeader(f)
}

// ReadHeader parses a VTF header and, for 7.3+, its resource directory.
func ReadHeader(r io.Reader) (*Info, error) {
	var magic [4]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		return nil, fmt.Errorf("%w: magic: %v", ErrInvalidHeader, err)
	}
	if string(magic[:]) != Magic {
		return nil, fmt.Errorf("%w: magic %q", ErrInvalidHeader, magic[:])
	}

	info := &Info{}
	if err := binary.Read(r, binary.LittleEndian, &info.Version); err != nil {
		return nil, fmt.Errorf("%w: version: %v", ErrInvalidHeader, err)
	}
	c, err := info.Version.caps()
	if err != nil {
		return nil, err
	}

	var reflectivity [3]float32
	var pad uint32
	fields := []any{
		&info.HeaderSize,
		&info.Width,
		&info.Height,
		&info.Flags,
		&info.Frames,
		&info.FirstFrame,
		&pad,
		&reflectivity,
		&pad,
		&info.BumpmapScale,
		&info.HighResFormat,
		&info.MipmapCount,
		&info.LowResFormat,
		&info.LowResWidth,
		&info.LowResHeight,
	}
	var resourceCount uint32
	if c.depth {
		fields = append(fields, &info.Depth)
	}
	if c.resources {
		var zero [3]byte
		fields = append(fields, &zero, &resourceCount)
	}
	for _, v := range fields {
		if err := binary.Read(r, binary.LittleEndian, v); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidHeader, err)
		}
	}
	info.Reflectivity = Reflectivity{R: reflectivity[0], B: reflectivity[1], G: reflectivity[2]}

	if !c.resources {
		return info, nil
	}

	prefix := c.prefixLength()
	if _, err := io.CopyN(io.Discard, r, int64(alignUp(prefix, headerAlignment)-prefix)); err != nil {
		return nil, fmt.Errorf("%w: padding: %v", ErrInvalidHeader, err)
	}
	if uint64(resourceCount)*resourceEntryLength > uint64(info.HeaderSize) {
		return nil, fmt.Errorf("%w: %d resources exceed header size %d", ErrInvalidHeader, resourceCount, info.HeaderSize)
	}

	info.Resources = make([]ResourceEntry, 0, resourceCount)
	for i := uint32(0); i < resourceCount; i++ {
		var entry [2]uint32
		if err := binary.Read(r, binary.LittleEndian, &entry); err != nil {
			return nil, fmt.Errorf("%w: resource %d: %v", ErrInvalidHeader, i, err)
		}
		info.Resources = append(info.Resources, ResourceEntry{Resource: resourceFromWord(entry[0]), Value: entry[1]})
	}

	return info, nil
}
