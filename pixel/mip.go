// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package pixel

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"
)

// LevelDims returns the dimensions of the given mip level
// of an image whose base level has dimensions dims.
// Level 0 is the base level. Each dimension of level
// L > 0 is d/(2*(L+1)), but never less than 1.
func LevelDims(dims []int, level int) []int {
	ld := append([]int(nil), dims...)
	if level == 0 {
		return ld
	}
	for i := range ld {
		ld[i] = max(1, ld[i]/(2*(level+1)))
	}
	return ld
}

// Downsample resizes the 2D buffer b to w×h using
// bi-linear filtering.
// b must be a buffer that Image accepts.
func Downsample(b *Buffer, w, h int) (*Buffer, error) {
	if w < 1 || h < 1 {
		return nil, fmt.Errorf("%w: downsample to %dx%d", ErrBufferSize, w, h)
	}
	src, err := b.Image()
	if err != nil {
		return nil, err
	}
	r := image.Rect(0, 0, w, h)
	var dst draw.Image
	switch src.(type) {
	case *image.Gray:
		dst = image.NewGray(r)
	case *image.Gray16:
		dst = image.NewGray16(r)
	case *image.NRGBA64:
		dst = image.NewNRGBA64(r)
	default:
		dst = image.NewNRGBA(r)
	}
	draw.BiLinear.Scale(dst, r, src, src.Bounds(), draw.Src, nil)
	return FromImage(dst)
}

// MipChain creates levels buffers, the first being b
// itself and each subsequent one a downsampled copy of
// b sized as LevelDims prescribes.
func MipChain(b *Buffer, levels int) ([]*Buffer, error) {
	if levels < 1 {
		return nil, fmt.Errorf("%w: %d mip levels", ErrBufferSize, levels)
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	if len(b.Dims) > 2 {
		return nil, fmt.Errorf("%w: %d-dimensional mip chain", ErrNoMapping, len(b.Dims))
	}
	chain := make([]*Buffer, levels)
	chain[0] = b
	for i := 1; i < levels; i++ {
		d := LevelDims(b.Dims, i)
		h := 1
		if len(d) > 1 {
			h = d[1]
		}
		m, err := Downsample(b, d[0], h)
		if err != nil {
			return nil, err
		}
		m.Dims = d
		chain[i] = m
	}
	return chain, nil
}
