// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/vtf

package vtf

import "fmt"

// ResourceTag identifies a 7.3+ resource directory entry. Only the low 3 bytes are used.
type ResourceTag uint32

// Known resource tags.
const (
	ResourceLowRes        ResourceTag = 0x00000001
	ResourceParticleSheet ResourceTag = 0x00000010
	ResourceHighRes       ResourceTag = 0x00000030
	ResourceCRC           ResourceTag = 0x00435243 // "CRC"
	ResourceLOD           ResourceTag = 0x00444F4C // "LOD"
	ResourceTSO           ResourceTag = 0x004F5354 // "TSO"
	ResourceKVD           ResourceTag = 0x0044564B // "KVD"
)

// ResourceFlag is the high byte of a resource directory entry.
type ResourceFlag uint8

// Resource flags.
const (
	ResourceFlagNone ResourceFlag = 0x00
	// ResourceFlagNoData marks an entry whose value is stored inline.
	ResourceFlagNoData ResourceFlag = 0x02
)

// Resource is one ordered directory entry.
type Resource struct {
	Tag  ResourceTag
	Flag ResourceFlag
}

// LOD holds the LOD resource clamp values.
type LOD struct {
	ClampU uint8
	ClampV uint8
}

var resourceNames = map[ResourceTag]string{
	ResourceLowRes:        "LOWRES",
	ResourceParticleSheet: "PARTICLESHEET",
	ResourceHighRes:       "HIGHRES",
	ResourceCRC:           "CRC",
	ResourceLOD:           "LOD",
	ResourceTSO:           "TSO",
	ResourceKVD:           "KVD",
}

func (t ResourceTag) String() string {
	if name, ok := resourceNames[t]; ok {
		return name
	}

	return fmt.Sprintf("ResourceTag(0x%06x)", uint32(t))
}

// HasData reports whether the entry points at a block in the payload region
// rather than carrying its value inline.
func (t ResourceTag) HasData() bool {
	switch t {
	case ResourceLowRes, ResourceHighRes, ResourceKVD, ResourceParticleSheet:
		return true
	default:
		return false
	}
}

func (t ResourceTag) known() bool {
	_, ok := resourceNames[t]
	return ok
}

// word packs the 3-byte tag and 1-byte flag as stored in the directory.
func (r Resource) word() uint32 {
	return uint32(r.Tag)&0x00FFFFFF | uint32(r.Flag)<<24
}

func resourceFromWord(w uint32) Resource {
	return Resource{Tag: ResourceTag(w & 0x00FFFFFF), Flag: ResourceFlag(w >> 24)}
}
