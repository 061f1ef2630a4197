// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package pixel

import (
	"fmt"

	"github.com/gogpu/gputypes"

	"github.com/gviegas/texel/driver"
)

// Compile returns the wire format and type that describe
// pixels of format f.
// Integer components select the integer wire formats.
func Compile(f Format) (driver.Format, driver.Type, error) {
	switch f.Layout {
	case Depth:
		switch f.Comp {
		case UN16:
			return driver.FDepth, driver.TUShort, nil
		case U32:
			return driver.FDepth, driver.TUInt, nil
		case F32:
			return driver.FDepth, driver.TFloat, nil
		}
		return 0, 0, fmt.Errorf("%w: %v to wire format", ErrNoMapping, f)
	case DepthStencil:
		switch f.Comp {
		case U32:
			return driver.FDepthStencil, driver.TUInt248, nil
		case F32:
			return driver.FDepthStencil, driver.TFloat32UInt248Rev, nil
		}
		return 0, 0, fmt.Errorf("%w: %v to wire format", ErrNoMapping, f)
	}

	typ := lookup(compTypes[:], int(f.Comp))
	if typ == driver.TypeNone {
		return 0, 0, fmt.Errorf("%w: %v to wire type", ErrNoMapping, f)
	}
	var wfmt driver.Format
	if f.Comp.IsInteger() {
		wfmt = lookup(intFormats[:], int(f.Layout))
	} else {
		wfmt = lookup(normFormats[:], int(f.Layout))
	}
	if wfmt == driver.FormatNone {
		return 0, 0, fmt.Errorf("%w: %v to wire format", ErrNoMapping, f)
	}
	return wfmt, typ, nil
}

// lookup returns s[i], or the zero value if i is out
// of range.
func lookup[T any](s []T, i int) (x T) {
	if i >= 0 && i < len(s) {
		x = s[i]
	}
	return
}

var compTypes = [...]driver.Type{
	UN8:  driver.TUByte,
	SN8:  driver.TByte,
	U8:   driver.TUByte,
	S8:   driver.TByte,
	UN16: driver.TUShort,
	SN16: driver.TShort,
	U16:  driver.TUShort,
	S16:  driver.TShort,
	U32:  driver.TUInt,
	S32:  driver.TInt,
	F16:  driver.THalf,
	F32:  driver.TFloat,
}

var normFormats = [...]driver.Format{
	Red:  driver.FRed,
	RG:   driver.FRG,
	RGB:  driver.FRGB,
	BGR:  driver.FBGR,
	RGBA: driver.FRGBA,
	BGRA: driver.FBGRA,
}

var intFormats = [...]driver.Format{
	Red:  driver.FRedInt,
	RG:   driver.FRGInt,
	RGB:  driver.FRGBInt,
	RGBA: driver.FRGBAInt,
	BGRA: driver.FBGRAInt,
}

// internalFormats maps host formats to the internal
// format that stores them without conversion.
var internalFormats = map[Format]gputypes.TextureFormat{
	{Red, UN8}:  gputypes.TextureFormatR8Unorm,
	{Red, SN8}:  gputypes.TextureFormatR8Snorm,
	{Red, U8}:   gputypes.TextureFormatR8Uint,
	{Red, S8}:   gputypes.TextureFormatR8Sint,
	{Red, UN16}: gputypes.TextureFormatR16Unorm,
	{Red, SN16}: gputypes.TextureFormatR16Snorm,
	{Red, U16}:  gputypes.TextureFormatR16Uint,
	{Red, S16}:  gputypes.TextureFormatR16Sint,
	{Red, F16}:  gputypes.TextureFormatR16Float,
	{Red, U32}:  gputypes.TextureFormatR32Uint,
	{Red, S32}:  gputypes.TextureFormatR32Sint,
	{Red, F32}:  gputypes.TextureFormatR32Float,

	{RG, UN8}:  gputypes.TextureFormatRG8Unorm,
	{RG, SN8}:  gputypes.TextureFormatRG8Snorm,
	{RG, U8}:   gputypes.TextureFormatRG8Uint,
	{RG, S8}:   gputypes.TextureFormatRG8Sint,
	{RG, UN16}: gputypes.TextureFormatRG16Unorm,
	{RG, SN16}: gputypes.TextureFormatRG16Snorm,
	{RG, U16}:  gputypes.TextureFormatRG16Uint,
	{RG, S16}:  gputypes.TextureFormatRG16Sint,
	{RG, F16}:  gputypes.TextureFormatRG16Float,
	{RG, U32}:  gputypes.TextureFormatRG32Uint,
	{RG, S32}:  gputypes.TextureFormatRG32Sint,
	{RG, F32}:  gputypes.TextureFormatRG32Float,

	{RGBA, UN8}:  gputypes.TextureFormatRGBA8Unorm,
	{RGBA, SN8}:  gputypes.TextureFormatRGBA8Snorm,
	{RGBA, U8}:   gputypes.TextureFormatRGBA8Uint,
	{RGBA, S8}:   gputypes.TextureFormatRGBA8Sint,
	{RGBA, UN16}: gputypes.TextureFormatRGBA16Unorm,
	{RGBA, SN16}: gputypes.TextureFormatRGBA16Snorm,
	{RGBA, U16}:  gputypes.TextureFormatRGBA16Uint,
	{RGBA, S16}:  gputypes.TextureFormatRGBA16Sint,
	{RGBA, F16}:  gputypes.TextureFormatRGBA16Float,
	{RGBA, U32}:  gputypes.TextureFormatRGBA32Uint,
	{RGBA, S32}:  gputypes.TextureFormatRGBA32Sint,
	{RGBA, F32}:  gputypes.TextureFormatRGBA32Float,

	{BGRA, UN8}: gputypes.TextureFormatBGRA8Unorm,

	{Depth, UN16}: gputypes.TextureFormatDepth16Unorm,
	{Depth, U32}:  gputypes.TextureFormatDepth24Plus,
	{Depth, F32}:  gputypes.TextureFormatDepth32Float,

	{DepthStencil, U32}: gputypes.TextureFormatDepth24PlusStencil8,
	{DepthStencil, F32}: gputypes.TextureFormatDepth32FloatStencil8,
}

// hostFormats is the inverse of internalFormats.
var hostFormats = func() map[gputypes.TextureFormat]Format {
	m := make(map[gputypes.TextureFormat]Format, len(internalFormats)+2)
	for k, v := range internalFormats {
		m[v] = k
	}
	m[gputypes.TextureFormatRGBA8UnormSrgb] = Format{RGBA, UN8}
	m[gputypes.TextureFormatBGRA8UnormSrgb] = Format{BGRA, UN8}
	return m
}()

// InternalFormat returns the internal format that can
// store pixels of format f.
// It fails with ErrNoMapping if there is no such format
// (e.g., three-channel layouts).
func InternalFormat(f Format) (gputypes.TextureFormat, error) {
	if ifmt, ok := internalFormats[f]; ok {
		return ifmt, nil
	}
	return gputypes.TextureFormatUndefined, fmt.Errorf("%w: %v to internal format", ErrNoMapping, f)
}

// FromInternal returns the host format that matches the
// texels of ifmt.
func FromInternal(ifmt gputypes.TextureFormat) (Format, error) {
	if f, ok := hostFormats[ifmt]; ok {
		return f, nil
	}
	return Format{}, fmt.Errorf("%w: %v to host format", ErrNoMapping, ifmt)
}

// SampleType returns how shaders sample textures of
// format ifmt.
func SampleType(ifmt gputypes.TextureFormat) gputypes.TextureSampleType {
	if ifmt.HasDepth() {
		return gputypes.TextureSampleTypeDepth
	}
	switch ifmt {
	case gputypes.TextureFormatRGB10A2Uint:
		return gputypes.TextureSampleTypeUint
	case gputypes.TextureFormatRGB10A2Unorm, gputypes.TextureFormatRG11B10Ufloat,
		gputypes.TextureFormatRGB9E5Ufloat:
		return gputypes.TextureSampleTypeFloat
	}
	f, err := FromInternal(ifmt)
	switch {
	case err != nil:
		return gputypes.TextureSampleTypeUndefined
	case !f.Comp.IsInteger():
		return gputypes.TextureSampleTypeFloat
	case f.Comp.IsSigned():
		return gputypes.TextureSampleTypeSint
	}
	return gputypes.TextureSampleTypeUint
}

// DepthCapable returns whether textures of the given
// kind can have a depth internal format.
func DepthCapable(target driver.Target) bool {
	switch target {
	case driver.Tex1D, driver.Tex2D, driver.TexRectangle,
		driver.ProxyTex1D, driver.ProxyTex2D, driver.ProxyTexRectangle:
		return true
	}
	return false
}

// Validate checks whether pixels of the given wire format
// and type can be transferred to a texture of the given
// kind and internal format.
func Validate(target driver.Target, ifmt gputypes.TextureFormat, wfmt driver.Format, wtyp driver.Type) error {
	switch {
	case target == driver.TargetNone:
		return fmt.Errorf("%w: texture kind", ErrMissingArg)
	case ifmt == gputypes.TextureFormatUndefined:
		return fmt.Errorf("%w: internal format", ErrMissingArg)
	case wfmt == driver.FormatNone:
		return fmt.Errorf("%w: wire format", ErrMissingArg)
	case wtyp == driver.TypeNone:
		return fmt.Errorf("%w: wire type", ErrMissingArg)
	}
	if ifmt.HasDepth() && !DepthCapable(target) {
		return fmt.Errorf("%w: %v on %v", ErrDepthTarget, ifmt, target)
	}
	if ifmt.HasDepth() != wfmt.IsDepth() {
		return fmt.Errorf("%w: internal %v, wire %d", ErrDepthMismatch, ifmt, wfmt)
	}
	return nil
}
