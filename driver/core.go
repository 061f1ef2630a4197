// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package driver

import (
	"github.com/gogpu/gputypes"
)

// GPU is the main interface to an underlying driver
// implementation.
// Calls that target a Target act on the texture that is
// currently bound to it. A GPU is obtained from a call to
// Driver.Open.
type GPU interface {
	// Driver returns the Driver that owns the GPU.
	Driver() Driver

	// GenTextures generates n texture handles.
	// Handles have no target until first bound.
	GenTextures(n int) ([]Handle, error)

	// DeleteTextures deletes every handle in h.
	// Unknown handles and NoHandle are ignored.
	DeleteTextures(h []Handle)

	// BindTexture binds h to target.
	// Binding NoHandle clears the target.
	// A handle that was bound before can only be
	// bound to the same target again.
	BindTexture(target Target, h Handle) error

	// TexParameteri sets a parameter of the texture
	// bound to target.
	TexParameteri(target Target, param Param, value int) error

	// GetTexParameteri queries a parameter of the
	// texture bound to target.
	GetTexParameteri(target Target, param Param) (int, error)

	// TexImage1D specifies a level of a 1D image.
	// data may be nil, in which case the contents of the
	// level are undefined.
	TexImage1D(target Target, level int, ifmt gputypes.TextureFormat, width int, format Format, typ Type, data []byte) error

	// TexImage2D specifies a level of a 2D image.
	// target may be a cube face.
	TexImage2D(target Target, level int, ifmt gputypes.TextureFormat, width, height int, format Format, typ Type, data []byte) error

	// TexImage3D specifies a level of a 3D image.
	TexImage3D(target Target, level int, ifmt gputypes.TextureFormat, width, height, depth int, format Format, typ Type, data []byte) error

	// TexSubImage1D updates a region of a 1D image.
	TexSubImage1D(target Target, level, x, width int, format Format, typ Type, data []byte) error

	// TexSubImage2D updates a region of a 2D image.
	TexSubImage2D(target Target, level, x, y, width, height int, format Format, typ Type, data []byte) error

	// TexSubImage3D updates a region of a 3D image.
	TexSubImage3D(target Target, level, x, y, z, width, height, depth int, format Format, typ Type, data []byte) error

	// TexStorage1D reserves immutable storage for every
	// level of a 1D image.
	TexStorage1D(target Target, levels int, ifmt gputypes.TextureFormat, width int) error

	// TexStorage2D reserves immutable storage for every
	// level of a 2D image.
	TexStorage2D(target Target, levels int, ifmt gputypes.TextureFormat, width, height int) error

	// TexStorage3D reserves immutable storage for every
	// level of a 3D image.
	TexStorage3D(target Target, levels int, ifmt gputypes.TextureFormat, width, height, depth int) error

	// TexStorage2DMultisample reserves immutable storage
	// for a multisample 2D image.
	TexStorage2DMultisample(target Target, samples int, ifmt gputypes.TextureFormat, width, height int, fixed bool) error

	// TexStorage3DMultisample reserves immutable storage
	// for a multisample 2D array image.
	TexStorage3DMultisample(target Target, samples int, ifmt gputypes.TextureFormat, width, height, depth int, fixed bool) error

	// TexLevelSize returns the size of a level of the
	// texture bound to target.
	// Levels that were never specified have zero size.
	TexLevelSize(target Target, level int) (Dim3D, error)

	// GetTexImage reads back a whole level of the texture
	// bound to target into dst.
	// len(dst) must be large enough to hold the level.
	GetTexImage(target Target, level int, format Format, typ Type, dst []byte) error

	// Limits returns the implementation limits.
	// They are immutable for the lifetime of the GPU.
	Limits() Limits
}

// Handle is an opaque texture name.
type Handle int

// NoHandle is the invalid handle.
const NoHandle Handle = -1

// Target identifies a texture kind and its bind point.
type Target int

// Targets.
const (
	TargetNone Target = iota
	Tex1D
	Tex2D
	Tex3D
	Tex1DArray
	Tex2DArray
	TexCube
	TexCubeArray
	TexRectangle
	TexBuffer
	Tex2DMS
	Tex2DMSArray

	// Cube faces, in the conventional order.
	// They are valid only as image targets.
	TexCubePosX
	TexCubeNegX
	TexCubePosY
	TexCubeNegY
	TexCubePosZ
	TexCubeNegZ

	// Proxy targets.
	ProxyTex1D
	ProxyTex2D
	ProxyTex3D
	ProxyTex1DArray
	ProxyTex2DArray
	ProxyTexCube
	ProxyTexCubeArray
	ProxyTexRectangle
	ProxyTex2DMS
	ProxyTex2DMSArray
)

// CubeFace returns the target of the ith cube face.
// It panics if i is not in the range [0, 6).
func CubeFace(i int) Target {
	if i < 0 || i >= 6 {
		panic("driver.CubeFace: face out of range")
	}
	return TexCubePosX + Target(i)
}

// IsCubeFace returns whether t is one of the six
// cube face targets.
func (t Target) IsCubeFace() bool { return t >= TexCubePosX && t <= TexCubeNegZ }

// IsProxy returns whether t is a proxy target.
func (t Target) IsProxy() bool { return t >= ProxyTex1D && t <= ProxyTex2DMSArray }

// Bind returns the target that t binds through.
// Cube faces bind through TexCube; every other
// target is returned unchanged.
func (t Target) Bind() Target {
	if t.IsCubeFace() {
		return TexCube
	}
	return t
}

var targetNames = [...]string{
	TargetNone:        "none",
	Tex1D:             "1D",
	Tex2D:             "2D",
	Tex3D:             "3D",
	Tex1DArray:        "1DArray",
	Tex2DArray:        "2DArray",
	TexCube:           "Cube",
	TexCubeArray:      "CubeArray",
	TexRectangle:      "2DRect",
	TexBuffer:         "Buffer",
	Tex2DMS:           "2DMS",
	Tex2DMSArray:      "2DMSArray",
	TexCubePosX:       "CubePosX",
	TexCubeNegX:       "CubeNegX",
	TexCubePosY:       "CubePosY",
	TexCubeNegY:       "CubeNegY",
	TexCubePosZ:       "CubePosZ",
	TexCubeNegZ:       "CubeNegZ",
	ProxyTex1D:        "Proxy1D",
	ProxyTex2D:        "Proxy2D",
	ProxyTex3D:        "Proxy3D",
	ProxyTex1DArray:   "Proxy1DArray",
	ProxyTex2DArray:   "Proxy2DArray",
	ProxyTexCube:      "ProxyCube",
	ProxyTexCubeArray: "ProxyCubeArray",
	ProxyTexRectangle: "Proxy2DRect",
	ProxyTex2DMS:      "Proxy2DMS",
	ProxyTex2DMSArray: "Proxy2DMSArray",
}

func (t Target) String() string {
	if t < 0 || int(t) >= len(targetNames) {
		return "unknown"
	}
	return targetNames[t]
}

// Format is the format of pixel data crossing the API
// (i.e., the layout of host memory).
type Format int

// Formats.
const (
	FormatNone Format = iota
	FRed
	FRG
	FRGB
	FBGR
	FRGBA
	FBGRA
	FRedInt
	FRGInt
	FRGBInt
	FRGBAInt
	FBGRAInt
	FDepth
	FDepthStencil
	FStencil
)

// IsDepth returns whether f carries depth data.
func (f Format) IsDepth() bool { return f == FDepth || f == FDepthStencil }

// Channels returns the number of components in f.
// Packed depth/stencil counts as one.
func (f Format) Channels() int {
	switch f {
	case FRed, FRedInt, FDepth, FDepthStencil, FStencil:
		return 1
	case FRG, FRGInt:
		return 2
	case FRGB, FBGR, FRGBInt:
		return 3
	case FRGBA, FBGRA, FRGBAInt, FBGRAInt:
		return 4
	}
	return 0
}

// Type is the component type of pixel data crossing
// the API.
type Type int

// Types.
const (
	TypeNone Type = iota
	TUByte
	TByte
	TUShort
	TShort
	TUInt
	TInt
	THalf
	TFloat
	// Packed 24-bit depth and 8-bit stencil.
	TUInt248
	// 32-bit float depth, 24 unused bits and 8-bit
	// stencil.
	TFloat32UInt248Rev
)

// Size returns the size in bytes of one component of
// type t. Packed types return the size of the whole
// pixel.
func (t Type) Size() int {
	switch t {
	case TUByte, TByte:
		return 1
	case TUShort, TShort, THalf:
		return 2
	case TUInt, TInt, TFloat, TUInt248:
		return 4
	case TFloat32UInt248Rev:
		return 8
	}
	return 0
}

// PixelSize returns the size in bytes of a pixel with
// the given format and type.
func PixelSize(f Format, t Type) int { return f.Channels() * t.Size() }

// Param identifies a texture parameter.
type Param int

// Texture parameters.
const (
	PBaseLevel Param = iota
	PMaxLevel
	PMinFilter
	PMagFilter
	// Read-only. Non-zero if the texture has
	// immutable storage.
	PImmutable
)

// Filter values for PMinFilter and PMagFilter.
const (
	FilterNearest = iota
	FilterLinear
	FilterLinearMipmapLinear
)

// Dim3D is a three-dimensional size.
type Dim3D struct {
	Width, Height, Depth int
}

// Limits describes implementation limits.
// These may vary across drivers and devices.
type Limits struct {
	// Maximum width of 1D images and width and
	// height of 2D images.
	Max2D int
	// Maximum width, height and depth of 3D images.
	Max3D int
	// Maximum width and height of cube images.
	MaxCube int
	// Maximum width and height of rectangle images.
	MaxRectangle int
	// Maximum number of layers in an array image.
	MaxLayers int
	// Maximum number of samples in a multisample
	// image.
	MaxSamples int
}
