// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package texture

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/gviegas/texel/driver"
	"github.com/gviegas/texel/internal/ctxt"
	"github.com/gviegas/texel/pixel"
)

// Wire describes the layout of pixel data as the driver
// sees it. Format and Type must be set together.
type Wire struct {
	Format driver.Format
	Type   driver.Type
}

// isZero returns whether w is the zero Wire.
func (w Wire) isZero() bool { return w == Wire{} }

// Upload copies b to v.
// If wire is given, it overrides the wire format and type
// derived from b's format.
// Every argument is validated before any native call is
// made.
func Upload(v *View, b *pixel.Buffer, wire ...Wire) (err error) {
	if v == nil || b == nil {
		return ErrNilParam
	}
	t, err := v.Texture()
	if err != nil {
		return
	}
	if t.kind == driver.TexBuffer || isMultisample(t.kind) {
		return fmt.Errorf("%w: %v", ErrUploadUnsupported, t.kind)
	}
	var w Wire
	if len(wire) > 0 {
		w = wire[0]
	}
	switch {
	case w.isZero():
		if w.Format, w.Type, err = pixel.Compile(b.Fmt); err != nil {
			return
		}
	case w.Format == driver.FormatNone, w.Type == driver.TypeNone:
		return ErrWirePair
	}
	if err = pixel.Validate(t.kind, t.format, w.Format, w.Type); err != nil {
		return
	}
	if !sameDims(b.Dims, v.dims) {
		return fmt.Errorf("%w: %v, not %v", ErrDimMismatch, b.Dims, v.dims)
	}
	if n := b.Len() * driver.PixelSize(w.Format, w.Type); len(b.Data) != n {
		return fmt.Errorf("%w: have %d bytes, want %d", pixel.ErrBufferSize, len(b.Data), n)
	}
	if t.storage == Immutable {
		if err = t.fits(v); err != nil {
			return
		}
	}

	gpu, err := ctxt.GPU()
	if err != nil {
		return
	}
	if err = t.Bind(driver.TargetNone); err != nil {
		return
	}
	defer func() {
		if e := t.Unbind(); err == nil {
			err = e
		}
	}()

	if t.storage == Mutable {
		err = t.specify(gpu, v, w, b.Data)
	} else {
		err = t.update(gpu, v, w, b.Data)
	}
	if err == nil {
		ctxt.Log().WithFields(t.fields()).WithFields(v.fields()).WithField("bytes", len(b.Data)).Debug("view uploaded")
	}
	return
}

// specify uploads data to v with full image specification
// calls. Array kinds specify the whole level first.
func (t *Texture) specify(gpu driver.GPU, v *View, w Wire, data []byte) error {
	vw, vh, vd := dims3(v.dims)
	switch t.kind {
	case driver.Tex1D:
		return gpu.TexImage1D(t.kind, v.level, t.format, vw, w.Format, w.Type, data)
	case driver.Tex2D, driver.TexRectangle:
		return gpu.TexImage2D(t.kind, v.level, t.format, vw, vh, w.Format, w.Type, data)
	case driver.TexCube:
		return gpu.TexImage2D(driver.CubeFace(v.face), v.level, t.format, vw, vh, w.Format, w.Type, data)
	case driver.Tex3D:
		return gpu.TexImage3D(t.kind, v.level, t.format, vw, vh, vd, w.Format, w.Type, data)
	}

	if !t.specified[v.level] {
		var err error
		switch t.kind {
		case driver.Tex1DArray:
			err = gpu.TexImage2D(t.kind, v.level, t.format, vw, t.layers, w.Format, w.Type, nil)
		case driver.Tex2DArray:
			err = gpu.TexImage3D(t.kind, v.level, t.format, vw, vh, t.layers, w.Format, w.Type, nil)
		case driver.TexCubeArray:
			err = gpu.TexImage3D(t.kind, v.level, t.format, vw, vh, 6*t.layers, w.Format, w.Type, nil)
		default:
			return fmt.Errorf("%w: %v", ErrUploadUnsupported, t.kind)
		}
		if err != nil {
			return err
		}
		t.specified[v.level] = true
	}
	return t.update(gpu, v, w, data)
}

// update uploads data to v with sub-image calls starting
// at the origin of v.
func (t *Texture) update(gpu driver.GPU, v *View, w Wire, data []byte) error {
	vw, vh, vd := dims3(v.dims)
	switch t.kind {
	case driver.Tex1D:
		return gpu.TexSubImage1D(t.kind, v.level, 0, vw, w.Format, w.Type, data)
	case driver.Tex2D, driver.TexRectangle:
		return gpu.TexSubImage2D(t.kind, v.level, 0, 0, vw, vh, w.Format, w.Type, data)
	case driver.TexCube:
		return gpu.TexSubImage2D(driver.CubeFace(v.face), v.level, 0, 0, vw, vh, w.Format, w.Type, data)
	case driver.Tex3D:
		return gpu.TexSubImage3D(t.kind, v.level, 0, 0, 0, vw, vh, vd, w.Format, w.Type, data)
	case driver.Tex1DArray:
		return gpu.TexSubImage2D(t.kind, v.level, 0, v.layer, vw, 1, w.Format, w.Type, data)
	case driver.Tex2DArray:
		return gpu.TexSubImage3D(t.kind, v.level, 0, 0, v.layer, vw, vh, 1, w.Format, w.Type, data)
	case driver.TexCubeArray:
		return gpu.TexSubImage3D(t.kind, v.level, 0, 0, 6*v.layer+v.face, vw, vh, 1, w.Format, w.Type, data)
	}
	return fmt.Errorf("%w: %v", ErrUploadUnsupported, t.kind)
}

// fits checks that v lies within the storage that
// Allocate reserved for its level.
func (t *Texture) fits(v *View) error {
	for i, d := range v.dims {
		if n := max(1, t.dims[i]>>v.level); d > n {
			return fmt.Errorf("%w: view %v exceeds level %d storage", ErrRange, v.dims, v.level)
		}
	}
	return nil
}

// sameDims returns whether a and b are equal.
func sameDims(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// fields returns the log fields that identify v.
func (v *View) fields() logrus.Fields {
	return logrus.Fields{
		"level": v.level,
		"layer": v.layer,
		"face":  v.face,
	}
}

// Download copies v to a new buffer.
// The buffer's format is derived from the internal
// format of v's Texture.
func Download(v *View) (b *pixel.Buffer, err error) {
	if v == nil {
		return nil, ErrNilParam
	}
	t, err := v.Texture()
	if err != nil {
		return
	}
	if t.kind == driver.TexBuffer || isMultisample(t.kind) {
		return nil, fmt.Errorf("%w: %v", ErrDownloadUnsupported, t.kind)
	}
	f, err := pixel.FromInternal(t.format)
	if err != nil {
		return
	}
	wfmt, wtyp, err := pixel.Compile(f)
	if err != nil {
		return
	}

	gpu, err := ctxt.GPU()
	if err != nil {
		return
	}
	if err = t.Bind(driver.TargetNone); err != nil {
		return
	}
	defer func() {
		if e := t.Unbind(); err == nil && e != nil {
			b, err = nil, e
		}
	}()

	target := t.kind
	if target == driver.TexCube {
		target = driver.CubeFace(v.face)
	}
	size, err := gpu.TexLevelSize(target, v.level)
	if err != nil {
		return
	}
	if size.Width*size.Height*size.Depth == 0 {
		return nil, fmt.Errorf("%w: level %d has no storage", ErrRange, v.level)
	}
	px := f.Size()
	scratch := make([]byte, size.Width*size.Height*size.Depth*px)
	if err = gpu.GetTexImage(target, v.level, wfmt, wtyp, scratch); err != nil {
		return
	}

	// Select the layer/face.
	var y0, z0 int
	switch t.kind {
	case driver.Tex1DArray:
		y0 = v.layer
	case driver.Tex2DArray:
		z0 = v.layer
	case driver.TexCubeArray:
		z0 = 6*v.layer + v.face
	}
	vw, vh, vd := dims3(v.dims)
	if vw > size.Width || y0+vh > size.Height || z0+vd > size.Depth {
		return nil, fmt.Errorf("%w: view %v exceeds level %d storage", ErrRange, v.dims, v.level)
	}
	b = pixel.NewBuffer(f, v.dims...)
	row := vw * px
	for z := range vd {
		for y := range vh {
			src := ((z0+z)*size.Height + y0 + y) * size.Width * px
			dst := (z*vh + y) * row
			copy(b.Data[dst:dst+row], scratch[src:src+row])
		}
	}
	ctxt.Log().WithFields(t.fields()).WithFields(v.fields()).WithField("bytes", len(b.Data)).Debug("view downloaded")
	return
}

// GenerateMips builds a mip chain from b and uploads it
// to the levels of the first layer (and face) of t.
// b must be accepted by pixel.MipChain and have the
// dimensions of t's base level.
// For immutable textures, levels whose view exceeds the
// reserved storage are left untouched.
func GenerateMips(t *Texture, b *pixel.Buffer) (err error) {
	if t == nil || b == nil {
		return ErrNilParam
	}
	if t.handle == driver.NoHandle {
		return ErrFreed
	}
	chain, err := pixel.MipChain(b, t.levels)
	if err != nil {
		return
	}
	if err = t.Bind(driver.TargetNone); err != nil {
		return
	}
	defer func() {
		if e := t.Unbind(); err == nil {
			err = e
		}
	}()
	for i, m := range chain {
		var v *View
		if v, err = t.View(i, 0, 0); err != nil {
			return
		}
		if t.storage == Immutable && t.fits(v) != nil {
			ctxt.Log().WithFields(t.fields()).WithField("level", i).Warn("mip chain truncated")
			break
		}
		if err = Upload(v, m); err != nil {
			return fmt.Errorf("level %d: %w", i, err)
		}
	}
	return
}
