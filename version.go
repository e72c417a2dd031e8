// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/vtf

package vtf

import (
	"fmt"
	"strconv"
	"strings"
)

// Version is a VTF major.minor revision.
type Version struct {
	Major uint32
	Minor uint32
}

// Supported revisions.
var (
	Version70 = Version{7, 0}
	Version71 = Version{7, 1}
	Version72 = Version{7, 2}
	Version73 = Version{7, 3}
	Version74 = Version{7, 4}
	Version75 = Version{7, 5}
)

// capabilities lists the trailer fields a revision appends to the 7.0 header.
// Every revision is a superset of the one before it.
type capabilities struct {
	depth     bool
	resources bool
}

var versionCaps = map[Version]capabilities{
	Version70: {},
	Version71: {},
	Version72: {depth: true},
	Version73: {depth: true, resources: true},
	Version74: {depth: true, resources: true},
	Version75: {depth: true, resources: true},
}

const (
	// baseHeaderLength is the unpadded 7.0 header, magic through low-res height.
	baseHeaderLength = 63
	depthLength      = 2
	// three zero bytes then the resource count
	resourceCountLength = 3 + 4
	resourceEntryLength = 8
	headerAlignment     = 16
)

func (v Version) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// Supported reports whether v is one of 7.0-7.5.
func (v Version) Supported() bool {
	_, ok := versionCaps[v]
	return ok
}

// ParseVersion parses "7.N".
func ParseVersion(s string) (Version, error) {
	major, minor, ok := strings.Cut(s, ".")
	if !ok {
		return Version{}, fmt.Errorf("%w: %q", ErrUnsupportedVersion, s)
	}
	ma, err := strconv.ParseUint(major, 10, 32)
	if err != nil {
		return Version{}, fmt.Errorf("%w: %q", ErrUnsupportedVersion, s)
	}
	mi, err := strconv.ParseUint(minor, 10, 32)
	if err != nil {
		return Version{}, fmt.Errorf("%w: %q", ErrUnsupportedVersion, s)
	}

	v := Version{Major: uint32(ma), Minor: uint32(mi)}
	if !v.Supported() {
		return Version{}, fmt.Errorf("%w: %s", ErrUnsupportedVersion, v)
	}

	return v, nil
}

func (v Version) caps() (capabilities, error) {
	c, ok := versionCaps[v]
	if !ok {
		return capabilities{}, fmt.Errorf("%w: %s", ErrUnsupportedVersion, v)
	}

	return c, nil
}

// prefixLength is the header length before alignment padding.
func (c capabilities) prefixLength() int {
	n := baseHeaderLength
	if c.depth {
		n += depthLength
	}
	if c.resources {
		n += resourceCountLength
	}

	return n
}

// headerSize is the value of the header size field: the aligned prefix plus
// the resource directory.
func (c capabilities) headerSize(resources int) int {
	n := alignUp(c.prefixLength(), headerAlignment)
	if c.resources {
		n += resources * resourceEntryLength
	}

	return n
}

func alignUp(n, align int) int {
	if rem := n % align; rem != 0 {
		return n + align - rem
	}

	return n
}
