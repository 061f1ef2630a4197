// Copyright 2024 Gustavo C. Viegas. All rights reserved.

// Package pixel defines host pixel formats and buffers
// and translates them to the formats used by drivers.
package pixel

import (
	"errors"
)

const prefix = "pixel: "

var (
	// ErrNoMapping means that a pixel format has no
	// counterpart on the other side of a translation.
	ErrNoMapping = errors.New(prefix + "no format mapping")
	// ErrMissingArg means that a required format
	// argument was not provided.
	ErrMissingArg = errors.New(prefix + "missing format argument")
	// ErrDepthTarget means that a depth format was used
	// with a texture kind that cannot store depth.
	ErrDepthTarget = errors.New(prefix + "depth format on non-depth texture kind")
	// ErrDepthMismatch means that only one of the wire
	// format and the internal format is a depth format.
	ErrDepthMismatch = errors.New(prefix + "depth format mismatch")
	// ErrBufferSize means that the data of a Buffer does
	// not agree with its dimensions and format.
	ErrBufferSize = errors.New(prefix + "buffer size mismatch")
)

// Layout is the channel layout of a pixel.
type Layout int

// Layouts.
const (
	LayoutNone Layout = iota
	Red
	RG
	RGB
	BGR
	RGBA
	BGRA
	Depth
	DepthStencil
)

var layoutNames = [...]string{
	LayoutNone:   "None",
	Red:          "Red",
	RG:           "RG",
	RGB:          "RGB",
	BGR:          "BGR",
	RGBA:         "RGBA",
	BGRA:         "BGRA",
	Depth:        "Depth",
	DepthStencil: "DepthStencil",
}

func (l Layout) String() string {
	if l < 0 || int(l) >= len(layoutNames) {
		return "Layout?"
	}
	return layoutNames[l]
}

// Channels returns the number of channels in l.
// Packed depth/stencil counts as one.
func (l Layout) Channels() int {
	switch l {
	case Red, Depth, DepthStencil:
		return 1
	case RG:
		return 2
	case RGB, BGR:
		return 3
	case RGBA, BGRA:
		return 4
	}
	return 0
}

// Comp is the type of the components of a pixel.
// UN and SN are normalized; U and S are integer.
type Comp int

// Component types.
const (
	CompNone Comp = iota
	UN8
	SN8
	U8
	S8
	UN16
	SN16
	U16
	S16
	U32
	S32
	F16
	F32
)

var compNames = [...]string{
	CompNone: "None",
	UN8:      "UN8",
	SN8:      "SN8",
	U8:       "U8",
	S8:       "S8",
	UN16:     "UN16",
	SN16:     "SN16",
	U16:      "U16",
	S16:      "S16",
	U32:      "U32",
	S32:      "S32",
	F16:      "F16",
	F32:      "F32",
}

func (c Comp) String() string {
	if c < 0 || int(c) >= len(compNames) {
		return "Comp?"
	}
	return compNames[c]
}

// Size returns the size in bytes of a component of
// type c.
func (c Comp) Size() int {
	switch c {
	case UN8, SN8, U8, S8:
		return 1
	case UN16, SN16, U16, S16, F16:
		return 2
	case U32, S32, F32:
		return 4
	}
	return 0
}

// IsInteger returns whether c is an unnormalized
// integer type.
func (c Comp) IsInteger() bool {
	switch c {
	case U8, S8, U16, S16, U32, S32:
		return true
	}
	return false
}

// IsSigned returns whether c is a signed type.
func (c Comp) IsSigned() bool {
	switch c {
	case SN8, S8, SN16, S16, S32, F16, F32:
		return true
	}
	return false
}

// Format describes the layout of a pixel in host memory.
type Format struct {
	Layout Layout
	Comp   Comp
}

// Size returns the size in bytes of a pixel of format f.
func (f Format) Size() int {
	if f.Layout == DepthStencil {
		switch f.Comp {
		case U32:
			// 24-bit depth, 8-bit stencil.
			return 4
		case F32:
			// 32-bit depth, 24 unused bits, 8-bit stencil.
			return 8
		}
		return 0
	}
	return f.Layout.Channels() * f.Comp.Size()
}

// IsDepth returns whether f carries depth data.
func (f Format) IsDepth() bool { return f.Layout == Depth || f.Layout == DepthStencil }

// IsZero returns whether f is the zero Format.
func (f Format) IsZero() bool { return f == Format{} }

func (f Format) String() string { return f.Layout.String() + "/" + f.Comp.String() }
