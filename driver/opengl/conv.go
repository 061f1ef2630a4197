// Copyright 2024 Gustavo C. Viegas. All rights reserved.

//go:build cgo

package opengl

import (
	"fmt"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/gogpu/gputypes"

	"github.com/gviegas/texel/driver"
)

var targets = [...]uint32{
	driver.Tex1D:             gl.TEXTURE_1D,
	driver.Tex2D:             gl.TEXTURE_2D,
	driver.Tex3D:             gl.TEXTURE_3D,
	driver.Tex1DArray:        gl.TEXTURE_1D_ARRAY,
	driver.Tex2DArray:        gl.TEXTURE_2D_ARRAY,
	driver.TexCube:           gl.TEXTURE_CUBE_MAP,
	driver.TexCubeArray:      gl.TEXTURE_CUBE_MAP_ARRAY,
	driver.TexRectangle:      gl.TEXTURE_RECTANGLE,
	driver.TexBuffer:         gl.TEXTURE_BUFFER,
	driver.Tex2DMS:           gl.TEXTURE_2D_MULTISAMPLE,
	driver.Tex2DMSArray:      gl.TEXTURE_2D_MULTISAMPLE_ARRAY,
	driver.TexCubePosX:       gl.TEXTURE_CUBE_MAP_POSITIVE_X,
	driver.TexCubeNegX:       gl.TEXTURE_CUBE_MAP_NEGATIVE_X,
	driver.TexCubePosY:       gl.TEXTURE_CUBE_MAP_POSITIVE_Y,
	driver.TexCubeNegY:       gl.TEXTURE_CUBE_MAP_NEGATIVE_Y,
	driver.TexCubePosZ:       gl.TEXTURE_CUBE_MAP_POSITIVE_Z,
	driver.TexCubeNegZ:       gl.TEXTURE_CUBE_MAP_NEGATIVE_Z,
	driver.ProxyTex1D:        gl.PROXY_TEXTURE_1D,
	driver.ProxyTex2D:        gl.PROXY_TEXTURE_2D,
	driver.ProxyTex3D:        gl.PROXY_TEXTURE_3D,
	driver.ProxyTex1DArray:   gl.PROXY_TEXTURE_1D_ARRAY,
	driver.ProxyTex2DArray:   gl.PROXY_TEXTURE_2D_ARRAY,
	driver.ProxyTexCube:      gl.PROXY_TEXTURE_CUBE_MAP,
	driver.ProxyTexCubeArray: gl.PROXY_TEXTURE_CUBE_MAP_ARRAY,
	driver.ProxyTexRectangle: gl.PROXY_TEXTURE_RECTANGLE,
	driver.ProxyTex2DMS:      gl.PROXY_TEXTURE_2D_MULTISAMPLE,
	driver.ProxyTex2DMSArray: gl.PROXY_TEXTURE_2D_MULTISAMPLE_ARRAY,
}

// convTarget converts a driver.Target to a GL enum.
func convTarget(t driver.Target) (uint32, error) {
	if t <= driver.TargetNone || int(t) >= len(targets) {
		return 0, fmt.Errorf("%w: target %v", driver.ErrInvalidValue, t)
	}
	return targets[t], nil
}

var formats = [...]uint32{
	driver.FRed:          gl.RED,
	driver.FRG:           gl.RG,
	driver.FRGB:          gl.RGB,
	driver.FBGR:          gl.BGR,
	driver.FRGBA:         gl.RGBA,
	driver.FBGRA:         gl.BGRA,
	driver.FRedInt:       gl.RED_INTEGER,
	driver.FRGInt:        gl.RG_INTEGER,
	driver.FRGBInt:       gl.RGB_INTEGER,
	driver.FRGBAInt:      gl.RGBA_INTEGER,
	driver.FBGRAInt:      gl.BGRA_INTEGER,
	driver.FDepth:        gl.DEPTH_COMPONENT,
	driver.FDepthStencil: gl.DEPTH_STENCIL,
	driver.FStencil:      gl.STENCIL_INDEX,
}

// convFormat converts a driver.Format to a GL enum.
func convFormat(f driver.Format) (uint32, error) {
	if f <= driver.FormatNone || int(f) >= len(formats) {
		return 0, fmt.Errorf("%w: format %d", driver.ErrInvalidValue, f)
	}
	return formats[f], nil
}

var types = [...]uint32{
	driver.TUByte:             gl.UNSIGNED_BYTE,
	driver.TByte:              gl.BYTE,
	driver.TUShort:            gl.UNSIGNED_SHORT,
	driver.TShort:             gl.SHORT,
	driver.TUInt:              gl.UNSIGNED_INT,
	driver.TInt:               gl.INT,
	driver.THalf:              gl.HALF_FLOAT,
	driver.TFloat:             gl.FLOAT,
	driver.TUInt248:           gl.UNSIGNED_INT_24_8,
	driver.TFloat32UInt248Rev: gl.FLOAT_32_UNSIGNED_INT_24_8_REV,
}

// convType converts a driver.Type to a GL enum.
func convType(t driver.Type) (uint32, error) {
	if t <= driver.TypeNone || int(t) >= len(types) {
		return 0, fmt.Errorf("%w: type %d", driver.ErrInvalidValue, t)
	}
	return types[t], nil
}

// convWire converts a format/type pair.
func convWire(f driver.Format, t driver.Type) (wf, wt uint32, err error) {
	if wf, err = convFormat(f); err != nil {
		return
	}
	wt, err = convType(t)
	return
}

var internals = map[gputypes.TextureFormat]uint32{
	gputypes.TextureFormatR8Unorm:              gl.R8,
	gputypes.TextureFormatR8Snorm:              gl.R8_SNORM,
	gputypes.TextureFormatR8Uint:               gl.R8UI,
	gputypes.TextureFormatR8Sint:               gl.R8I,
	gputypes.TextureFormatR16Unorm:             gl.R16,
	gputypes.TextureFormatR16Snorm:             gl.R16_SNORM,
	gputypes.TextureFormatR16Uint:              gl.R16UI,
	gputypes.TextureFormatR16Sint:              gl.R16I,
	gputypes.TextureFormatR16Float:             gl.R16F,
	gputypes.TextureFormatRG8Unorm:             gl.RG8,
	gputypes.TextureFormatRG8Snorm:             gl.RG8_SNORM,
	gputypes.TextureFormatRG8Uint:              gl.RG8UI,
	gputypes.TextureFormatRG8Sint:              gl.RG8I,
	gputypes.TextureFormatR32Float:             gl.R32F,
	gputypes.TextureFormatR32Uint:              gl.R32UI,
	gputypes.TextureFormatR32Sint:              gl.R32I,
	gputypes.TextureFormatRG16Unorm:            gl.RG16,
	gputypes.TextureFormatRG16Snorm:            gl.RG16_SNORM,
	gputypes.TextureFormatRG16Uint:             gl.RG16UI,
	gputypes.TextureFormatRG16Sint:             gl.RG16I,
	gputypes.TextureFormatRG16Float:            gl.RG16F,
	gputypes.TextureFormatRGBA8Unorm:           gl.RGBA8,
	gputypes.TextureFormatRGBA8UnormSrgb:       gl.SRGB8_ALPHA8,
	gputypes.TextureFormatRGBA8Snorm:           gl.RGBA8_SNORM,
	gputypes.TextureFormatRGBA8Uint:            gl.RGBA8UI,
	gputypes.TextureFormatRGBA8Sint:            gl.RGBA8I,
	gputypes.TextureFormatBGRA8Unorm:           gl.RGBA8,
	gputypes.TextureFormatBGRA8UnormSrgb:       gl.SRGB8_ALPHA8,
	gputypes.TextureFormatRGB10A2Uint:          gl.RGB10_A2UI,
	gputypes.TextureFormatRGB10A2Unorm:         gl.RGB10_A2,
	gputypes.TextureFormatRG11B10Ufloat:        gl.R11F_G11F_B10F,
	gputypes.TextureFormatRGB9E5Ufloat:         gl.RGB9_E5,
	gputypes.TextureFormatRG32Float:            gl.RG32F,
	gputypes.TextureFormatRG32Uint:             gl.RG32UI,
	gputypes.TextureFormatRG32Sint:             gl.RG32I,
	gputypes.TextureFormatRGBA16Unorm:          gl.RGBA16,
	gputypes.TextureFormatRGBA16Snorm:          gl.RGBA16_SNORM,
	gputypes.TextureFormatRGBA16Uint:           gl.RGBA16UI,
	gputypes.TextureFormatRGBA16Sint:           gl.RGBA16I,
	gputypes.TextureFormatRGBA16Float:          gl.RGBA16F,
	gputypes.TextureFormatRGBA32Float:          gl.RGBA32F,
	gputypes.TextureFormatRGBA32Uint:           gl.RGBA32UI,
	gputypes.TextureFormatRGBA32Sint:           gl.RGBA32I,
	gputypes.TextureFormatStencil8:             gl.STENCIL_INDEX8,
	gputypes.TextureFormatDepth16Unorm:         gl.DEPTH_COMPONENT16,
	gputypes.TextureFormatDepth24Plus:          gl.DEPTH_COMPONENT24,
	gputypes.TextureFormatDepth24PlusStencil8:  gl.DEPTH24_STENCIL8,
	gputypes.TextureFormatDepth32Float:         gl.DEPTH_COMPONENT32F,
	gputypes.TextureFormatDepth32FloatStencil8: gl.DEPTH32F_STENCIL8,
}

// convInternal converts a gputypes.TextureFormat to a
// GL sized internal format.
// BGRA formats map to their RGBA counterparts, since
// swizzling happens in the wire format.
func convInternal(f gputypes.TextureFormat) (uint32, error) {
	if x, ok := internals[f]; ok {
		return x, nil
	}
	return 0, fmt.Errorf("%w: internal format %v", driver.ErrInvalidValue, f)
}

var params = [...]uint32{
	driver.PBaseLevel: gl.TEXTURE_BASE_LEVEL,
	driver.PMaxLevel:  gl.TEXTURE_MAX_LEVEL,
	driver.PMinFilter: gl.TEXTURE_MIN_FILTER,
	driver.PMagFilter: gl.TEXTURE_MAG_FILTER,
	driver.PImmutable: gl.TEXTURE_IMMUTABLE_FORMAT,
}

// convParam converts a driver.Param to a GL enum.
func convParam(p driver.Param) (uint32, error) {
	if p < 0 || int(p) >= len(params) {
		return 0, fmt.Errorf("%w: param %d", driver.ErrInvalidValue, p)
	}
	return params[p], nil
}

var filters = [...]int32{
	driver.FilterNearest:            gl.NEAREST,
	driver.FilterLinear:             gl.LINEAR,
	driver.FilterLinearMipmapLinear: gl.LINEAR_MIPMAP_LINEAR,
}

// convFilter converts a filter value to a GL enum.
func convFilter(v int) (int32, error) {
	if v < 0 || v >= len(filters) {
		return 0, fmt.Errorf("%w: filter %d", driver.ErrInvalidValue, v)
	}
	return filters[v], nil
}

// filterOf is the inverse of convFilter.
// GL filters that have no driver counterpart map to -1.
func filterOf(x int32) int {
	for i, f := range filters {
		if f == x {
			return i
		}
	}
	return -1
}

// isFilter returns whether p takes a filter value.
func isFilter(p driver.Param) bool { return p == driver.PMinFilter || p == driver.PMagFilter }
