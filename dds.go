// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/vtf

package vtf

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"image"
	"os"
	"slices"

	"github.com/woozymasta/bcn"
)

// DDSMagic opens every DDS file.
const DDSMagic = "DDS "

// Payload is the image data of one single-level DDS file.
type Payload struct {
	Width  int
	Height int
	// Format is the VTF format matching the DDS pixel format, FormatNone
	// when no known layout matches.
	Format Format
	Data   []byte
}

// ReadPayload reads a single-level DDS or EDDS file.
func ReadPayload(path string) (*Payload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrOpenFile, path, err)
	}

	p, err := ParsePayload(data)
	if err != nil {
		return nil, fmt.Errorf("%q: %w", path, err)
	}

	return p, nil
}

// ParsePayload validates a DDS file image and returns its texel data.
// The file must hold exactly one mipmap level, zero depth and dimensions in
// [1, 65535]. A single EDDS block after the header is inflated.
func ParsePayload(data []byte) (*Payload, error) {
	if len(data) < len(DDSMagic) || string(data[:len(DDSMagic)]) != DDSMagic {
		return nil, fmt.Errorf("%w: magic is not %q", ErrInvalidInputImage, DDSMagic)
	}

	r := bytes.NewReader(data)
	header, err := bcn.ReadDDSHeader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: header: %v", ErrInvalidInputImage, err)
	}
	dx10, err := bcn.ReadDDSHeaderDX10(r, header)
	if err != nil {
		return nil, fmt.Errorf("%w: DX10 header: %v", ErrInvalidInputImage, err)
	}

	if header.Width < 1 || header.Width > MaxDimension {
		return nil, fmt.Errorf("%w: width=%d", ErrInvalidInputImage, header.Width)
	}
	if header.Height < 1 || header.Height > MaxDimension {
		return nil, fmt.Errorf("%w: height=%d", ErrInvalidInputImage, header.Height)
	}
	if header.Depth != 0 {
		return nil, fmt.Errorf("%w: depth=%d", ErrInvalidInputImage, header.Depth)
	}
	levels := header.MipMapCount
	if levels == 0 && header.Flags&bcn.DDSFlagMipmapCount == 0 {
		levels = 1
	}
	if levels != 1 {
		return nil, fmt.Errorf("%w: mipmaps=%d", ErrInvalidInputImage, header.MipMapCount)
	}

	format := payloadFormat(header, dx10)
	p := &Payload{
		Width:  int(header.Width),
		Height: int(header.Height),
		Format: format,
	}

	rest := data[len(data)-r.Len():]
	if magic, size, ok := eddsBlock(rest); ok {
		expected := format.DataLength(p.Width, p.Height)
		if expected <= 0 {
			return nil, fmt.Errorf("%w: EDDS block with format %s", ErrInvalidInputImage, format)
		}
		p.Data, err = unpackBlock(magic, rest[8:8+size], expected)
		if err != nil {
			return nil, fmt.Errorf("%w: EDDS block: %w", ErrInvalidInputImage, err)
		}
		return p, nil
	}

	if len(rest) == 0 {
		return nil, fmt.Errorf("%w: no image data", ErrInvalidInputImage)
	}
	p.Data = rest

	return p, nil
}

// eddsBlock recognizes a single block table entry whose body fills the rest of the file.
func eddsBlock(rest []byte) (string, int, bool) {
	if len(rest) < 8 {
		return "", 0, false
	}
	magic := string(rest[:4])
	if magic != BlockMagicCOPY && magic != BlockMagicLZ4 {
		return "", 0, false
	}
	size := int(int32(binary.LittleEndian.Uint32(rest[4:8]))) // #nosec G115 -- sign checked below.
	if size < 0 || size != len(rest)-8 {
		return "", 0, false
	}

	return magic, size, true
}

// EncodePayload encodes img into a single-level payload with bcn. Only
// DXT1, DXT3, DXT5, RGBA8888 and BGRA8888 can be encoded.
func EncodePayload(img image.Image, format Format, opts *bcn.EncodeOptions) (*Payload, error) {
	b := img.Bounds()
	if _, err := NewResolution(b.Dx(), b.Dy()); err != nil {
		return nil, err
	}
	l, ok := ddsLayoutOf(format)
	if !ok || l.codec == bcn.FormatUnknown {
		return nil, fmt.Errorf("%w: cannot encode %s", ErrInvalidFormat, format)
	}

	data, _, _, err := bcn.EncodeImageWithOptions(img, l.codec, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: encode %s: %v", ErrInvalidFormat, format, err)
	}

	return &Payload{Width: b.Dx(), Height: b.Dy(), Format: format, Data: data}, nil
}

// WritePayload writes p as a single-level DDS file. With compress set the
// data is stored as an Enfusion EDDS block, LZ4 compressed when that pays off.
func WritePayload(path string, p *Payload, compress bool) error {
	expected := p.Format.DataLength(p.Width, p.Height)
	if expected <= 0 {
		return fmt.Errorf("%w: %s", ErrInvalidFormat, p.Format)
	}
	if len(p.Data) != expected {
		return fmt.Errorf("%w: %dx%d %s: expected %d bytes, got %d",
			ErrInvalidInputImage, p.Width, p.Height, p.Format, expected, len(p.Data))
	}

	w32, err := u32FromInt(p.Width)
	if err != nil {
		return err
	}
	h32, err := u32FromInt(p.Height)
	if err != nil {
		return err
	}
	header, err := makeDDSHeader(w32, h32, p.Format, compress)
	if err != nil {
		return err
	}

	var body *block
	if compress {
		body, err = packBlock(p.Data)
		if err != nil {
			return err
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: create %q: %v", ErrIO, path, err)
	}
	defer func() { _ = f.Close() }()

	bw := bufio.NewWriter(f)
	if err := bcn.WriteDDSMagic(bw); err != nil {
		return fmt.Errorf("%w: %q: magic: %v", ErrIO, path, err)
	}
	if err := bcn.WriteDDSHeader(bw, header); err != nil {
		return fmt.Errorf("%w: %q: header: %v", ErrIO, path, err)
	}
	if body != nil {
		err = body.writeTo(bw)
	} else {
		_, err = bw.Write(p.Data)
	}
	if err != nil {
		return fmt.Errorf("%w: %q: data: %v", ErrIO, path, err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("%w: %q: %v", ErrIO, path, err)
	}

	return nil
}

// ddsLayout is the plain DDS encoding of a VTF format.
type ddsLayout struct {
	format Format
	// codec is bcn.FormatUnknown when bcn cannot encode the format.
	codec bcn.Format
	// fourCC lists the legacy codes read as format; the first one is written.
	fourCC []string
	dxgi   uint32
	bits   uint32
	// masks are the R, G, B and A channel masks of uncompressed layouts.
	masks [4]uint32
}

var ddsLayouts = []ddsLayout{
	{format: FormatDXT1, codec: bcn.FormatDXT1, fourCC: []string{"DXT1"}, dxgi: 71},
	{format: FormatDXT3, codec: bcn.FormatDXT3, fourCC: []string{"DXT3", "DXT2"}, dxgi: 74},
	{format: FormatDXT5, codec: bcn.FormatDXT5, fourCC: []string{"DXT5", "DXT4"}, dxgi: 77},
	{format: FormatRGBA8888, codec: bcn.FormatRGBA8, dxgi: 28, bits: 32, masks: [4]uint32{0x000000ff, 0x0000ff00, 0x00ff0000, 0xff000000}},
	{format: FormatBGRA8888, codec: bcn.FormatBGRA8, dxgi: 87, bits: 32, masks: [4]uint32{0x00ff0000, 0x0000ff00, 0x000000ff, 0xff000000}},
	{format: FormatBGRX8888, codec: bcn.FormatUnknown, dxgi: 88, bits: 32, masks: [4]uint32{0x00ff0000, 0x0000ff00, 0x000000ff, 0}},
	{format: FormatBGR888, codec: bcn.FormatUnknown, bits: 24, masks: [4]uint32{0x00ff0000, 0x0000ff00, 0x000000ff, 0}},
	{format: FormatBGR565, codec: bcn.FormatUnknown, dxgi: 85, bits: 16, masks: [4]uint32{0xf800, 0x07e0, 0x001f, 0}},
}

// ddsLayoutOf returns the DDS layout of f.
func ddsLayoutOf(f Format) (ddsLayout, bool) {
	i := slices.IndexFunc(ddsLayouts, func(l ddsLayout) bool { return l.format == f })
	if i < 0 {
		return ddsLayout{}, false
	}

	return ddsLayouts[i], true
}

// payloadFormat resolves the VTF format of a DDS header, FormatNone when no
// layout matches.
func payloadFormat(header *bcn.DDSHeader, dx10 *bcn.DDSHeaderDX10) Format {
	pf := header.PixelFormat
	fourCC := string(binary.LittleEndian.AppendUint32(nil, pf.FourCC))
	masks := [4]uint32{pf.RBitMask, pf.GBitMask, pf.BBitMask, 0}
	if pf.Flags&bcn.DDSPFAlphaPixels != 0 {
		masks[3] = pf.ABitMask
	}

	for _, l := range ddsLayouts {
		switch {
		case dx10 != nil:
			if l.dxgi != 0 && l.dxgi == dx10.DXGIFormat {
				return l.format
			}
		case pf.Flags&bcn.DDSPFFourCC != 0:
			if slices.Contains(l.fourCC, fourCC) {
				return l.format
			}
		case pf.Flags&bcn.DDSPFRGB != 0:
			if l.bits != 0 && l.bits == pf.RGBBitCount && l.masks == masks {
				return l.format
			}
		}
	}

	return FormatNone
}

// makeDDSHeader builds a single-level, zero-depth header. Enfusion headers
// carry the ENF1 tag in the reserved words.
func makeDDSHeader(width, height uint32, format Format, enfusion bool) (*bcn.DDSHeader, error) {
	l, ok := ddsLayoutOf(format)
	if !ok {
		return nil, fmt.Errorf("%w: %s has no DDS layout", ErrInvalidFormat, format)
	}

	hdr := &bcn.DDSHeader{
		Size:        bcn.DDSHeaderSize,
		Flags:       uint32(bcn.DDSFlagCaps | bcn.DDSFlagHeight | bcn.DDSFlagWidth | bcn.DDSFlagPixelFormat | bcn.DDSFlagMipmapCount),
		Height:      height,
		Width:       width,
		MipMapCount: 1,
		Caps:        uint32(bcn.DDSCapsTexture),
	}
	if enfusion {
		hdr.Reserved1[1] = binary.LittleEndian.Uint32([]byte("ENF1"))
	}
	hdr.PixelFormat.Size = bcn.DDSPixelFormatSize

	if len(l.fourCC) != 0 {
		hdr.Flags |= bcn.DDSFlagLinearSize
		hdr.PixelFormat.Flags = bcn.DDSPFFourCC
		hdr.PixelFormat.FourCC = binary.LittleEndian.Uint32([]byte(l.fourCC[0]))
		return hdr, nil
	}

	hdr.Flags |= bcn.DDSFlagPitch
	hdr.PixelFormat.Flags = bcn.DDSPFRGB
	if l.masks[3] != 0 {
		hdr.PixelFormat.Flags |= bcn.DDSPFAlphaPixels
	}
	hdr.PixelFormat.RGBBitCount = l.bits
	hdr.PixelFormat.RBitMask = l.masks[0]
	hdr.PixelFormat.GBitMask = l.masks[1]
	hdr.PixelFormat.BBitMask = l.masks[2]
	hdr.PixelFormat.ABitMask = l.masks[3]
	hdr.PitchOrLinearSize = width * l.bits / 8

	return hdr, nil
}
