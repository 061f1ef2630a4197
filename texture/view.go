// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package texture

import (
	"fmt"

	"github.com/gogpu/gputypes"

	"github.com/gviegas/texel/driver"
	"github.com/gviegas/texel/internal/handle"
	"github.com/gviegas/texel/pixel"
)

// View addresses one (level, layer, face) slice of a
// Texture.
// It does not own the Texture: once the Texture is
// freed, the View is stale.
type View struct {
	id     handle.ID
	level  int
	layer  int
	face   int
	dims   []int
	kind   driver.Target
	format gputypes.TextureFormat
}

// View returns a view of the given level, layer and
// face of t.
// face must be 0 unless t is a cube texture.
func (t *Texture) View(level, layer, face int) (*View, error) {
	if t.handle == driver.NoHandle {
		return nil, ErrFreed
	}
	nf := 1
	if t.cube {
		nf = 6
	}
	switch {
	case level < 0 || level >= t.levels:
		return nil, fmt.Errorf("%w: level %d of %d", ErrRange, level, t.levels)
	case layer < 0 || layer >= t.layers:
		return nil, fmt.Errorf("%w: layer %d of %d", ErrRange, layer, t.layers)
	case face < 0 || face >= nf:
		return nil, fmt.Errorf("%w: face %d of %d", ErrRange, face, nf)
	}
	return &View{
		id:     t.id,
		level:  level,
		layer:  layer,
		face:   face,
		dims:   pixel.LevelDims(t.dims, level),
		kind:   t.kind,
		format: t.format,
	}, nil
}

// ViewAt is t.View(level, layer, face).
func ViewAt(t *Texture, level, layer, face int) (*View, error) { return t.View(level, layer, face) }

// Texture returns the Texture that v refers to.
// It fails with ErrStaleView if the Texture was freed.
func (v *View) Texture() (*Texture, error) {
	t, ok := registry.Get(v.id)
	if !ok {
		return nil, ErrStaleView
	}
	return t, nil
}

// Free always fails: views are freed along with their
// Texture.
func (v *View) Free() error { return ErrFreeView }

// Level returns the mip level of v.
func (v *View) Level() int { return v.level }

// Layer returns the layer of v.
func (v *View) Layer() int { return v.layer }

// Face returns the cube face of v.
func (v *View) Face() int { return v.face }

// Dims returns a copy of the dimensions of v.
func (v *View) Dims() []int { return append([]int(nil), v.dims...) }

// Kind returns the kind of the Texture of v.
func (v *View) Kind() driver.Target { return v.kind }

// Format returns the internal format of the Texture of v.
func (v *View) Format() gputypes.TextureFormat { return v.format }
