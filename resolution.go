// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/vtf

package vtf

import "fmt"

// MaxDimension is the largest width or height a VTF can describe.
const MaxDimension = 65535

// Resolution is an immutable width/height pair. Values compare with ==.
type Resolution struct {
	width  int
	height int
}

// NewResolution returns the resolution w x h.
// Both axes must lie in [1, MaxDimension].
func NewResolution(width, height int) (Resolution, error) {
	if width < 1 || width > MaxDimension {
		return Resolution{}, fmt.Errorf("%w: width=%d", ErrInvalidDimension, width)
	}
	if height < 1 || height > MaxDimension {
		return Resolution{}, fmt.Errorf("%w: height=%d", ErrInvalidDimension, height)
	}

	return Resolution{width: width, height: height}, nil
}

// Width returns the horizontal size in pixels.
func (r Resolution) Width() int { return r.width }

// Height returns the vertical size in pixels.
func (r Resolution) Height() int { return r.height }

func (r Resolution) String() string {
	return fmt.Sprintf("%dx%d", r.width, r.height)
}

// IsTerminal reports whether r is the last level of a mipmap chain.
func (r Resolution) IsTerminal() bool {
	return r.width|r.height == 1
}

// Halve returns the next mipmap level, each axis halved and clamped to 1.
func (r Resolution) Halve() Resolution {
	return Resolution{width: max(1, r.width/2), height: max(1, r.height/2)}
}

// Mul scales both axes up by factor.
func (r Resolution) Mul(factor int) (Resolution, error) {
	if factor < 1 {
		return Resolution{}, fmt.Errorf("%w: factor=%d", ErrInvalidDimension, factor)
	}

	return NewResolution(r.width*factor, r.height*factor)
}

// Div scales both axes down by divisor, clamping each to at least 1.
func (r Resolution) Div(divisor int) (Resolution, error) {
	if divisor < 1 {
		return Resolution{}, fmt.Errorf("%w: divisor=%d", ErrInvalidDimension, divisor)
	}

	return Resolution{width: max(1, r.width/divisor), height: max(1, r.height/divisor)}, nil
}

// Hash combines both axes with Szudzik's elegant pairing function.
func (r Resolution) Hash() int {
	if r.width > r.height {
		return r.width*r.width + r.width + r.height
	}

	return r.height*r.height + r.width
}

// Chain returns every mipmap level from r down to the terminal level.
func (r Resolution) Chain() []Resolution {
	chain := []Resolution{r}
	for !r.IsTerminal() {
		r = r.Halve()
		chain = append(chain, r)
	}

	return chain
}
