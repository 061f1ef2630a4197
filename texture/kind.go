// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package texture

import (
	"github.com/gogpu/gputypes"

	"github.com/gviegas/texel/driver"
)

// Shape describes the features requested for a texture.
type Shape struct {
	// Number of spatial dimensions (1, 2 or 3).
	Rank        int
	Mipmap      bool
	Layered     bool
	Cube        bool
	Multisample bool
	Buffer      bool
	Rectangle   bool
}

// rule states how an entry treats a boolean feature.
type rule int8

const (
	// The feature must not be requested.
	absent rule = iota
	// The feature must be requested.
	required
	// The feature may or may not be requested.
	dontCare
)

func (r rule) match(b bool) bool {
	switch r {
	case required:
		return b
	case dontCare:
		return true
	}
	return !b
}

// entry is an element of the classification table.
// Rank and the multisample, buffer and rectangle
// features must match exactly.
type entry struct {
	rank                  int
	mipmap, layered, cube rule
	multisample           bool
	buffer                bool
	rectangle             bool
	kind                  driver.Target
}

func (e *entry) match(s *Shape) bool {
	return e.rank == s.Rank &&
		e.multisample == s.Multisample &&
		e.buffer == s.Buffer &&
		e.rectangle == s.Rectangle &&
		e.mipmap.match(s.Mipmap) &&
		e.layered.match(s.Layered) &&
		e.cube.match(s.Cube)
}

// kinds is the classification table.
// No two entries match the same Shape.
var kinds = [...]entry{
	{rank: 1, mipmap: dontCare, kind: driver.Tex1D},
	{rank: 2, mipmap: dontCare, kind: driver.Tex2D},
	{rank: 3, mipmap: dontCare, kind: driver.Tex3D},
	{rank: 1, mipmap: dontCare, layered: required, kind: driver.Tex1DArray},
	{rank: 2, mipmap: dontCare, layered: required, kind: driver.Tex2DArray},
	{rank: 2, mipmap: dontCare, cube: required, kind: driver.TexCube},
	{rank: 2, mipmap: dontCare, layered: required, cube: required, kind: driver.TexCubeArray},
	{rank: 2, rectangle: true, kind: driver.TexRectangle},
	{rank: 1, buffer: true, kind: driver.TexBuffer},
	{rank: 2, multisample: true, kind: driver.Tex2DMS},
	{rank: 2, layered: required, multisample: true, kind: driver.Tex2DMSArray},
}

// Classify returns the texture kind that provides the
// features described by s, or driver.TargetNone if no
// kind does.
func Classify(s Shape) driver.Target {
	for i := range kinds {
		if kinds[i].match(&s) {
			return kinds[i].kind
		}
	}
	return driver.TargetNone
}

// Kinds returns every kind that Classify can produce.
func Kinds() []driver.Target {
	ks := make([]driver.Target, len(kinds))
	for i := range kinds {
		ks[i] = kinds[i].kind
	}
	return ks
}

// ViewDimension returns the view dimension of textures
// of the given kind.
// Kinds with no equivalent (1D arrays and buffers) yield
// gputypes.TextureViewDimensionUndefined.
func ViewDimension(kind driver.Target) gputypes.TextureViewDimension {
	switch kind {
	case driver.Tex1D:
		return gputypes.TextureViewDimension1D
	case driver.Tex2D, driver.TexRectangle, driver.Tex2DMS:
		return gputypes.TextureViewDimension2D
	case driver.Tex2DArray, driver.Tex2DMSArray:
		return gputypes.TextureViewDimension2DArray
	case driver.TexCube:
		return gputypes.TextureViewDimensionCube
	case driver.TexCubeArray:
		return gputypes.TextureViewDimensionCubeArray
	case driver.Tex3D:
		return gputypes.TextureViewDimension3D
	}
	return gputypes.TextureViewDimensionUndefined
}

// isMultisample returns whether kind is a multisample
// kind.
func isMultisample(kind driver.Target) bool {
	return kind == driver.Tex2DMS || kind == driver.Tex2DMSArray
}

// isArray returns whether kind is an array kind.
func isArray(kind driver.Target) bool {
	switch kind {
	case driver.Tex1DArray, driver.Tex2DArray, driver.TexCubeArray, driver.Tex2DMSArray:
		return true
	}
	return false
}
