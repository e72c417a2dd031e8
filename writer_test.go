// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/vtf

package vtf

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

// sampleWriter mirrors a 128x128 RGBA8888 texture with tiny placeholder payloads.
func sampleWriter(v Version) *Writer {
	return &Writer{
		Version:       v,
		Width:         128,
		Height:        128,
		Flags:         0x2040,
		Frames:        1,
		FirstFrame:    0,
		Reflectivity:  Reflectivity{R: 0.1897, G: 0.3916, B: 0.5522},
		BumpmapScale:  1.0,
		HighResFormat: FormatRGBA8888,
		MipmapCount:   8,
		LowResFormat:  FormatRGBA8888,
		LowResWidth:   16,
		LowResHeight:  16,
		LowResData:    []byte("AAAA"),
		HighResData:   []byte("BBBB"),
		Depth:         1,
	}
}

func TestWriterV70Layout(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "v70.vtf")
	if err := sampleWriter(Version70).WriteOut(path); err != nil {
		t.Fatalf("WriteOut: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}

	if string(data[:4]) != Magic {
		t.Fatalf("magic = %q", data[:4])
	}
	le := binary.LittleEndian
	if major, minor := le.Uint32(data[4:]), le.Uint32(data[8:]); major != 7 || minor != 0 {
		t.Fatalf("version = %d.%d", major, minor)
	}
	if size := le.Uint32(data[12:]); size != 64 {
		t.Fatalf("header size = %d, want 64", size)
	}
	if len(data) != 64+4+4 {
		t.Fatalf("file length = %d, want 72", len(data))
	}
	if !bytes.Equal(data[64:], []byte("AAAABBBB")) {
		t.Fatalf("payload = %q", data[64:])
	}

	checks := []struct {
		name   string
		offset int
		want   uint32
	}{
		{name: "width", offset: 16, want: 128 | 128<<16},
		{name: "flags", offset: 20, want: 0x2040},
		{name: "frames-first", offset: 24, want: 1},
		{name: "pad-1", offset: 28, want: 0},
		{name: "reflectivity-r", offset: 32, want: math.Float32bits(0.1897)},
		{name: "reflectivity-b", offset: 36, want: math.Float32bits(0.5522)},
		{name: "reflectivity-g", offset: 40, want: math.Float32bits(0.3916)},
		{name: "pad-2", offset: 44, want: 0},
		{name: "bumpmap-scale", offset: 48, want: math.Float32bits(1.0)},
		{name: "high-res-format", offset: 52, want: uint32(FormatRGBA8888)},
		{name: "low-res-format", offset: 57, want: uint32(FormatRGBA8888)},
	}
	for _, c := range checks {
		if got := le.Uint32(data[c.offset:]); got != c.want {
			t.Errorf("%s at %d = 0x%08x, want 0x%08x", c.name, c.offset, got, c.want)
		}
	}
	if data[56] != 8 || data[61] != 16 || data[62] != 16 {
		t.Fatalf("mipmap count/low-res dims = %d %d %d", data[56], data[61], data[62])
	}
	if data[63] != 0 {
		t.Fatalf("alignment padding is not zero")
	}
}

func TestWriterHeaderSizes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		version   Version
		resources []Resource
		want      int
	}{
		{version: Version70, want: 64},
		{version: Version71, want: 64},
		{version: Version72, want: 80},
		{version: Version73, want: 80},
		{version: Version74, resources: []Resource{{Tag: ResourceHighRes}}, want: 88},
		{version: Version75, resources: []Resource{{Tag: ResourceHighRes}, {Tag: ResourceLowRes}, {Tag: ResourceCRC}}, want: 104},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.version.String(), func(t *testing.T) {
			t.Parallel()

			w := sampleWriter(tc.version)
			w.Resources = tc.resources
			if tc.version.Minor >= 3 {
				if !slices.Contains(tc.resources, Resource{Tag: ResourceHighRes}) {
					w.HighResData = nil
				}
				if !slices.Contains(tc.resources, Resource{Tag: ResourceLowRes}) {
					w.LowResData = nil
				}
			}
			got, err := w.HeaderSize()
			if err != nil {
				t.Fatalf("HeaderSize: %v", err)
			}
			if got != tc.want {
				t.Fatalf("HeaderSize() = %d, want %d", got, tc.want)
			}

			data, err := w.Bytes()
			if err != nil {
				t.Fatalf("Bytes: %v", err)
			}
			if size := binary.LittleEndian.Uint32(data[12:]); int(size) != tc.want {
				t.Fatalf("header size field = %d, want %d", size, tc.want)
			}
			if minor := binary.LittleEndian.Uint32(data[8:]); minor != tc.version.Minor {
				t.Fatalf("minor version = %d", minor)
			}
		})
	}
}

func TestWriterV72Depth(t *testing.T) {
	t.Parallel()

	w := sampleWriter(Version72)
	w.Depth = 9
	data, err := w.Bytes()
	if err != nil {
		t.Fatalf("Bytes: %v", err)
	}
	if depth := binary.LittleEndian.Uint16(data[63:]); depth != 9 {
		t.Fatalf("depth = %d, want 9", depth)
	}
	if len(data) != 80+8 {
		t.Fatalf("file length = %d, want 88", len(data))
	}
	if !bytes.Equal(data[65:80], make([]byte, 15)) {
		t.Fatalf("header padding is not zero")
	}
}

func TestWriterResourceOffsets(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		resources []Resource
	}{
		{
			name: "lowres-highres-lod-kvd",
			resources: []Resource{
				{Tag: ResourceLowRes},
				{Tag: ResourceHighRes},
				{Tag: ResourceLOD, Flag: ResourceFlagNoData},
				{Tag: ResourceKVD},
			},
		},
		{
			name: "highres-first",
			resources: []Resource{
				{Tag: ResourceHighRes},
				{Tag: ResourceCRC, Flag: ResourceFlagNoData},
				{Tag: ResourceLowRes},
			},
		},
		{
			name: "all-tags",
			resources: []Resource{
				{Tag: ResourceParticleSheet},
				{Tag: ResourceTSO, Flag: ResourceFlagNoData},
				{Tag: ResourceKVD},
				{Tag: ResourceHighRes},
				{Tag: ResourceCRC, Flag: ResourceFlagNoData},
				{Tag: ResourceLOD, Flag: ResourceFlagNoData},
				{Tag: ResourceLowRes},
			},
		},
	}

	for _, v := range []Version{Version73, Version74, Version75} {
		for _, tc := range tests {
			v, tc := v, tc
			t.Run(v.String()+"/"+tc.name, func(t *testing.T) {
				t.Parallel()

				w := sampleWriter(v)
				w.HighResData = []byte("BBBBBBBBBBBB")
				w.Resources = tc.resources
				w.KVD = "aaa"
				w.ParticleSheet = []byte("sheet")
				w.CRC = 0xDEADBEEF
				w.TSO = 0x01020304
				w.LOD = LOD{ClampU: 0x18, ClampV: 0x1e}

				path := filepath.Join(t.TempDir(), "res.vtf")
				if err := w.WriteOut(path); err != nil {
					t.Fatalf("WriteOut: %v", err)
				}
				data, err := os.ReadFile(path)
				if err != nil {
					t.Fatalf("ReadFile: %v", err)
				}
				info, err := ReadHeader(bytes.NewReader(data))
				if err != nil {
					t.Fatalf("ReadHeader: %v", err)
				}

				headerSize := 80 + 8*len(tc.resources)
				if int(info.HeaderSize) != headerSize {
					t.Fatalf("header size = %d, want %d", info.HeaderSize, headerSize)
				}
				if len(info.Resources) != len(tc.resources) {
					t.Fatalf("%d resources read back, want %d", len(info.Resources), len(tc.resources))
				}

				blocks := map[ResourceTag][]byte{
					ResourceLowRes:        w.LowResData,
					ResourceHighRes:       w.HighResData,
					ResourceKVD:           append([]byte{3, 0, 0, 0}, "aaa"...),
					ResourceParticleSheet: append([]byte{5, 0, 0, 0}, "sheet"...),
				}
				offset := headerSize
				for i, e := range info.Resources {
					if e.Resource != tc.resources[i] {
						t.Fatalf("entry %d = %+v, want %+v", i, e.Resource, tc.resources[i])
					}
					switch e.Tag {
					case ResourceCRC:
						if e.Value != 0xDEADBEEF {
							t.Fatalf("CRC = 0x%08x", e.Value)
						}
					case ResourceTSO:
						if e.Value != 0x01020304 {
							t.Fatalf("TSO = 0x%08x", e.Value)
						}
					case ResourceLOD:
						if e.Value != 0x1e18 {
							t.Fatalf("LOD = 0x%08x, want 0x00001e18", e.Value)
						}
					default:
						want := blocks[e.Tag]
						if int(e.Value) != offset {
							t.Fatalf("%s offset = %d, want %d", e.Tag, e.Value, offset)
						}
						if got := data[e.Value : int(e.Value)+len(want)]; !bytes.Equal(got, want) {
							t.Fatalf("%s block = %q, want %q", e.Tag, got, want)
						}
						offset += len(want)
					}
				}
				if len(data) != offset {
					t.Fatalf("file length = %d, want %d", len(data), offset)
				}
			})
		}
	}
}

func TestWriterErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(w *Writer)
		wantErr error
	}{
		{name: "version-6.5", mutate: func(w *Writer) { w.Version = Version{6, 5} }, wantErr: ErrUnsupportedVersion},
		{name: "version-7.6", mutate: func(w *Writer) { w.Version = Version{7, 6} }, wantErr: ErrUnsupportedVersion},
		{name: "unknown-tag", mutate: func(w *Writer) {
			w.Resources = []Resource{{Tag: ResourceHighRes}, {Tag: 0x00585858}}
		}, wantErr: ErrUnsupportedResource},
		{name: "duplicate-tag", mutate: func(w *Writer) {
			w.Resources = []Resource{{Tag: ResourceHighRes}, {Tag: ResourceHighRes}}
		}, wantErr: ErrUnsupportedResource},
		{name: "no-directory", mutate: func(w *Writer) { w.Resources = nil }, wantErr: ErrUnsupportedResource},
		{name: "high-res-unlisted", mutate: func(w *Writer) {
			w.Resources = []Resource{{Tag: ResourceLowRes}, {Tag: ResourceCRC, Flag: ResourceFlagNoData}}
		}, wantErr: ErrUnsupportedResource},
		{name: "low-res-unlisted", mutate: func(w *Writer) {
			w.Resources = []Resource{{Tag: ResourceHighRes}}
		}, wantErr: ErrUnsupportedResource},
		{name: "resources-on-7.2", mutate: func(w *Writer) {
			w.Version = Version72
			w.Resources = []Resource{{Tag: ResourceHighRes}}
		}, wantErr: ErrUnsupportedResource},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			w := sampleWriter(Version73)
			tc.mutate(w)

			path := filepath.Join(t.TempDir(), "out.vtf")
			err := w.WriteOut(path)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected error %v, got %v", tc.wantErr, err)
			}
			if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
				t.Fatalf("failed encode left a file behind")
			}
		})
	}
}

func TestWriteOutIOError(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "missing", "out.vtf")
	if err := sampleWriter(Version70).WriteOut(path); !errors.Is(err, ErrIO) {
		t.Fatalf("expected ErrIO, got %v", err)
	}
}

func TestReadHeaderRoundTrip(t *testing.T) {
	t.Parallel()

	w := sampleWriter(Version75)
	w.Flags = FlagTrilinear | FlagEightBitAlpha
	w.Resources = []Resource{{Tag: ResourceHighRes}, {Tag: ResourceLowRes}}

	var buf bytes.Buffer
	if err := w.Encode(&buf); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	info, err := ReadHeader(&buf)
	if err != nil {
		t.Fatalf("ReadHeader: %v", err)
	}

	if info.Version != Version75 || info.Width != 128 || info.Height != 128 || info.Flags != w.Flags {
		t.Fatalf("unexpected header: %+v", info)
	}
	if info.Reflectivity != w.Reflectivity || info.Depth != 1 || info.MipmapCount != 8 {
		t.Fatalf("unexpected header: %+v", info)
	}
	if off, ok := info.Offset(ResourceLowRes); !ok || off != 96+4 {
		t.Fatalf("low-res offset = %d, %v", off, ok)
	}
	if _, ok := info.Offset(ResourceCRC); ok {
		t.Fatalf("CRC reported as a data block")
	}

	if _, err := ReadHeader(bytes.NewReader([]byte("DDS xxxxxxxx"))); !errors.Is(err, ErrInvalidHeader) {
		t.Fatalf("expected ErrInvalidHeader, got %v", err)
	}
}
