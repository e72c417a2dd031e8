// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/vtf

/*
Package vtf writes Valve Texture Format (VTF) containers, versions 7.0 through
7.5, from pre-encoded single-level DDS payloads.

A VTF file is a fixed little-endian header padded to 16 bytes, followed by a
low-res thumbnail and the high-res image data. Version 7.2 appends a depth
field; 7.3 and later add a resource directory which records where each data
block begins, so blocks may be stored in any order.

The package also models a texture under construction: a Texture owns its
mipmap chain, each Mipmap owns one Frame per animation frame, and resizing a
Texture keeps every level that stays valid for the new size.

Assemble ties both together: it reads a mipmap x frame x face x slice grid of
DDS (or Enfusion EDDS) payload files, validates the layout and writes the VTF.
*/
package vtf
