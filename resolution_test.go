// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/vtf

package vtf

import (
	"errors"
	"math/bits"
	"testing"
)

func TestNewResolutionTable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		w, h    int
		wantErr error
	}{
		{name: "1x1", w: 1, h: 1},
		{name: "max", w: 65535, h: 65535},
		{name: "non-square", w: 512, h: 64},
		{name: "zero-width", w: 0, h: 4, wantErr: ErrInvalidDimension},
		{name: "negative-height", w: 4, h: -1, wantErr: ErrInvalidDimension},
		{name: "too-wide", w: 65536, h: 1, wantErr: ErrInvalidDimension},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			r, err := NewResolution(tc.w, tc.h)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected error %v, got %v", tc.wantErr, err)
			}
			if err != nil {
				return
			}
			if r.Width() != tc.w || r.Height() != tc.h {
				t.Fatalf("got %s, want %dx%d", r, tc.w, tc.h)
			}
			again, _ := NewResolution(tc.w, tc.h)
			if r != again {
				t.Fatalf("independent %s values differ", r)
			}
		})
	}
}

func TestResolutionHalve(t *testing.T) {
	t.Parallel()

	r, _ := NewResolution(512, 8)
	want := []string{"256x4", "128x2", "64x1", "32x1"}
	for _, w := range want {
		r = r.Halve()
		if r.String() != w {
			t.Fatalf("Halve() = %s, want %s", r, w)
		}
	}
}

func TestResolutionChainConverges(t *testing.T) {
	t.Parallel()

	for _, dims := range [][2]int{{1, 1}, {2, 1}, {3, 5}, {512, 512}, {1000, 3}, {65535, 17}, {65535, 65535}} {
		r, err := NewResolution(dims[0], dims[1])
		if err != nil {
			t.Fatalf("NewResolution(%d,%d): %v", dims[0], dims[1], err)
		}

		chain := r.Chain()
		last := chain[len(chain)-1]
		if last.Width() != 1 || last.Height() != 1 {
			t.Fatalf("%s: chain ends at %s", r, last)
		}

		// ceil(log2(max))
		m := max(dims[0], dims[1])
		bound := bits.Len(uint(m - 1))
		if steps := len(chain) - 1; steps > bound {
			t.Fatalf("%s: %d halvings, bound %d", r, steps, bound)
		}
	}
}

func TestResolutionScale(t *testing.T) {
	t.Parallel()

	r, _ := NewResolution(3, 64)

	up, err := r.Mul(4)
	if err != nil || up.String() != "12x256" {
		t.Fatalf("Mul(4) = %s, %v", up, err)
	}
	down, err := r.Div(8)
	if err != nil || down.String() != "1x8" {
		t.Fatalf("Div(8) = %s, %v", down, err)
	}
	if _, err := r.Mul(2048); !errors.Is(err, ErrInvalidDimension) {
		t.Fatalf("Mul overflow: expected ErrInvalidDimension, got %v", err)
	}
	if _, err := r.Div(0); !errors.Is(err, ErrInvalidDimension) {
		t.Fatalf("Div(0): expected ErrInvalidDimension, got %v", err)
	}
}

func TestResolutionHash(t *testing.T) {
	t.Parallel()

	seen := make(map[int]Resolution)
	for w := 1; w <= 32; w++ {
		for h := 1; h <= 32; h++ {
			r, _ := NewResolution(w, h)
			if prev, ok := seen[r.Hash()]; ok {
				t.Fatalf("hash collision between %s and %s", prev, r)
			}
			seen[r.Hash()] = r
		}
	}
}
