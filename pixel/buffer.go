// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package pixel

import (
	"encoding/binary"
	"fmt"
	"image"

	"golang.org/x/image/draw"
)

// Buffer is a host pixel buffer.
// Pixels are tightly packed, with the first dimension
// varying fastest. Rows of 2D buffers are stored top to
// bottom. Multi-byte components use the host byte order.
type Buffer struct {
	// Dims contains one to three positive sizes.
	Dims []int
	Fmt  Format
	Data []byte
}

// NewBuffer creates a zeroed Buffer of the given format
// and dimensions.
// It panics if dims is not valid or f has zero size.
func NewBuffer(f Format, dims ...int) *Buffer {
	n := f.Size()
	if n == 0 {
		panic("pixel.NewBuffer: invalid format " + f.String())
	}
	if len(dims) < 1 || len(dims) > 3 {
		panic("pixel.NewBuffer: invalid number of dimensions")
	}
	for _, d := range dims {
		if d < 1 {
			panic("pixel.NewBuffer: invalid dimension")
		}
		n *= d
	}
	return &Buffer{
		Dims: append([]int(nil), dims...),
		Fmt:  f,
		Data: make([]byte, n),
	}
}

// Len returns the number of pixels in b.
func (b *Buffer) Len() int {
	if len(b.Dims) == 0 {
		return 0
	}
	n := 1
	for _, d := range b.Dims {
		n *= d
	}
	return n
}

// Validate checks that the data of b agrees with its
// dimensions and format.
func (b *Buffer) Validate() error {
	if len(b.Dims) < 1 || len(b.Dims) > 3 {
		return fmt.Errorf("%w: %d dimensions", ErrBufferSize, len(b.Dims))
	}
	for _, d := range b.Dims {
		if d < 1 {
			return fmt.Errorf("%w: dimensions %v", ErrBufferSize, b.Dims)
		}
	}
	if b.Fmt.Size() == 0 {
		return fmt.Errorf("%w: %v", ErrNoMapping, b.Fmt)
	}
	if n := b.Len() * b.Fmt.Size(); len(b.Data) != n {
		return fmt.Errorf("%w: have %d bytes, want %d", ErrBufferSize, len(b.Data), n)
	}
	return nil
}

// Size returns the width, height and depth of b.
// Missing dimensions are reported as 1.
func (b *Buffer) Size() (w, h, d int) {
	w, h, d = 1, 1, 1
	switch len(b.Dims) {
	case 3:
		d = b.Dims[2]
		fallthrough
	case 2:
		h = b.Dims[1]
		fallthrough
	case 1:
		w = b.Dims[0]
	}
	return
}

// FromImage creates a 2D Buffer from img.
// Gray images produce Red/UN8 buffers, Gray16 images
// Red/UN16 and RGBA64 and NRGBA64 images RGBA/UN16.
// Any other image is converted to RGBA/UN8 with
// non-premultiplied alpha.
// It fails with ErrBufferSize if img is empty.
func FromImage(img image.Image) (*Buffer, error) {
	r := img.Bounds()
	w, h := r.Dx(), r.Dy()
	if w < 1 || h < 1 {
		return nil, fmt.Errorf("%w: empty image %v", ErrBufferSize, r)
	}
	switch m := img.(type) {
	case *image.Gray:
		b := NewBuffer(Format{Red, UN8}, w, h)
		for y := range h {
			i := m.PixOffset(r.Min.X, r.Min.Y+y)
			copy(b.Data[y*w:], m.Pix[i:i+w])
		}
		return b, nil
	case *image.Gray16:
		b := NewBuffer(Format{Red, UN16}, w, h)
		for y := range h {
			i := m.PixOffset(r.Min.X, r.Min.Y+y)
			for x := range w {
				v := binary.BigEndian.Uint16(m.Pix[i+2*x:])
				binary.NativeEndian.PutUint16(b.Data[2*(y*w+x):], v)
			}
		}
		return b, nil
	case *image.NRGBA64:
		return from16(m.Pix, m.Stride, m.PixOffset(r.Min.X, r.Min.Y), w, h), nil
	case *image.RGBA64:
		n := image.NewNRGBA64(image.Rect(0, 0, w, h))
		draw.Draw(n, n.Bounds(), m, r.Min, draw.Src)
		return from16(n.Pix, n.Stride, 0, w, h), nil
	case *image.NRGBA:
		b := NewBuffer(Format{RGBA, UN8}, w, h)
		for y := range h {
			i := m.PixOffset(r.Min.X, r.Min.Y+y)
			copy(b.Data[y*w*4:], m.Pix[i:i+w*4])
		}
		return b, nil
	}
	n := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(n, n.Bounds(), img, r.Min, draw.Src)
	return &Buffer{Dims: []int{w, h}, Fmt: Format{RGBA, UN8}, Data: n.Pix}, nil
}

// from16 creates a RGBA/UN16 Buffer from big-endian
// NRGBA64 pixels.
func from16(pix []byte, stride, off, w, h int) *Buffer {
	b := NewBuffer(Format{RGBA, UN16}, w, h)
	for y := range h {
		i := off + y*stride
		for x := range w * 4 {
			v := binary.BigEndian.Uint16(pix[i+2*x:])
			binary.NativeEndian.PutUint16(b.Data[2*(y*w*4+x):], v)
		}
	}
	return b
}

// Image returns an image.Image that holds a copy of the
// pixels of b.
// b must be a valid 1D or 2D buffer of format Red/UN8,
// Red/UN16, RGBA/UN8 or RGBA/UN16.
func (b *Buffer) Image() (image.Image, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	if len(b.Dims) > 2 {
		return nil, fmt.Errorf("%w: %d-dimensional buffer to image", ErrNoMapping, len(b.Dims))
	}
	w, h, _ := b.Size()
	r := image.Rect(0, 0, w, h)
	switch b.Fmt {
	case Format{Red, UN8}:
		m := image.NewGray(r)
		copy(m.Pix, b.Data)
		return m, nil
	case Format{Red, UN16}:
		m := image.NewGray16(r)
		for i := 0; i < len(b.Data); i += 2 {
			binary.BigEndian.PutUint16(m.Pix[i:], binary.NativeEndian.Uint16(b.Data[i:]))
		}
		return m, nil
	case Format{RGBA, UN8}:
		m := image.NewNRGBA(r)
		copy(m.Pix, b.Data)
		return m, nil
	case Format{RGBA, UN16}:
		m := image.NewNRGBA64(r)
		for i := 0; i < len(b.Data); i += 2 {
			binary.BigEndian.PutUint16(m.Pix[i:], binary.NativeEndian.Uint16(b.Data[i:]))
		}
		return m, nil
	}
	return nil, fmt.Errorf("%w: %v to image", ErrNoMapping, b.Fmt)
}
