// Copyright 2024 Gustavo C. Viegas. All rights reserved.

// Package soft implements driver.GPU in host memory.
// It follows the same rules a conforming OpenGL
// implementation enforces for texture objects, records
// every call it receives and keeps texel data, so that
// uploads can be read back.
// It performs no format conversion: the size of a wire
// pixel must match the size of a texel of the internal
// format.
package soft

import (
	"sync"

	"github.com/gogpu/gputypes"

	"github.com/gviegas/texel/driver"
	"github.com/gviegas/texel/internal/ctxt"
	"github.com/gviegas/texel/internal/handle"
)

const name = "soft"

func init() { driver.Register(&Driver{}) }

// Driver implements driver.Driver.
type Driver struct {
	mu  sync.Mutex
	gpu *GPU
}

// Open initializes the driver.
func (d *Driver) Open() (driver.GPU, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.gpu == nil {
		d.gpu = newGPU(d)
		ctxt.Log().WithField("driver", name).Debug("driver opened")
	}
	return d.gpu, nil
}

// Name returns the driver name.
func (*Driver) Name() string { return name }

// Close deinitializes the driver.
func (d *Driver) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.gpu = nil
}

// Call is a record of a driver.GPU method call.
type Call struct {
	// Method name (e.g., "TexStorage2D").
	Name   string
	Target driver.Target
	Level  int
	// Handle bound to Target when the call was made,
	// or the affected handle for generation, deletion
	// and binding.
	Handle driver.Handle
}

// image is one image of a level (one per face for
// cube textures).
type image struct {
	size driver.Dim3D
	data []byte
}

// texture is a texture object.
type texture struct {
	target    driver.Target
	immutable bool
	ifmt      gputypes.TextureFormat
	samples   int
	// levels[level][face].
	levels [][]image
	params map[driver.Param]int
}

// GPU implements driver.GPU.
// It is safe for concurrent use, although the bind
// state it keeps is shared by every caller.
type GPU struct {
	drv    driver.Driver
	limits driver.Limits

	mu    sync.Mutex
	texs  handle.Table[*texture]
	ids   map[driver.Handle]handle.ID
	bound map[driver.Target]driver.Handle
	calls []Call
}

// New creates a GPU that is not owned by the registered
// Driver. It is useful as a fake in tests.
func New() *GPU {
	d := &Driver{}
	d.gpu = newGPU(d)
	return d.gpu
}

func newGPU(d driver.Driver) *GPU {
	lim := gputypes.DefaultLimits()
	return &GPU{
		drv: d,
		limits: driver.Limits{
			Max2D:        int(lim.MaxTextureDimension2D),
			Max3D:        int(lim.MaxTextureDimension3D),
			MaxCube:      int(lim.MaxTextureDimension2D),
			MaxRectangle: int(lim.MaxTextureDimension2D),
			MaxLayers:    int(lim.MaxTextureArrayLayers),
			MaxSamples:   8,
		},
		ids:   make(map[driver.Handle]handle.ID),
		bound: make(map[driver.Target]driver.Handle),
	}
}

// Calls returns a copy of the calls recorded so far.
func (g *GPU) Calls() []Call {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]Call(nil), g.calls...)
}

// Reset discards the recorded calls.
func (g *GPU) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls = g.calls[:0]
}

// Bound returns the handle bound to target, or
// driver.NoHandle.
func (g *GPU) Bound(target driver.Target) driver.Handle {
	g.mu.Lock()
	defer g.mu.Unlock()
	if h, ok := g.bound[target]; ok {
		return h
	}
	return driver.NoHandle
}

// Live returns the number of texture objects that were
// generated and not yet deleted.
func (g *GPU) Live() int { return g.texs.Len() }

// record appends a call to the log.
// g.mu must be held.
func (g *GPU) record(fn string, target driver.Target, level int) {
	h, ok := g.bound[target.Bind()]
	if !ok {
		h = driver.NoHandle
	}
	g.calls = append(g.calls, Call{fn, target, level, h})
}

// current returns the texture bound to target.
// g.mu must be held.
func (g *GPU) current(target driver.Target) (*texture, error) {
	h, ok := g.bound[target.Bind()]
	if !ok {
		return nil, driver.ErrInvalidOp
	}
	t, ok := g.texs.Get(g.ids[h])
	if !ok {
		return nil, driver.ErrInvalidOp
	}
	return t, nil
}

// Driver returns the Driver that owns g.
func (g *GPU) Driver() driver.Driver { return g.drv }

// Limits returns the implementation limits.
func (g *GPU) Limits() driver.Limits { return g.limits }

// GenTextures generates n texture handles.
func (g *GPU) GenTextures(n int) ([]driver.Handle, error) {
	if n < 0 {
		return nil, driver.ErrInvalidValue
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	hs := make([]driver.Handle, n)
	for i := range hs {
		id := g.texs.Insert(&texture{params: make(map[driver.Param]int)})
		// Names start at 1; 0 is reserved.
		hs[i] = driver.Handle(id.Index + 1)
		g.ids[hs[i]] = id
		g.calls = append(g.calls, Call{"GenTextures", driver.TargetNone, 0, hs[i]})
	}
	return hs, nil
}

// DeleteTextures deletes every handle in h.
func (g *GPU) DeleteTextures(h []driver.Handle) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls = append(g.calls, Call{"DeleteTextures", driver.TargetNone, 0, driver.Handle(len(h))})
	for _, x := range h {
		id, ok := g.ids[x]
		if !ok {
			continue
		}
		g.texs.Remove(id)
		delete(g.ids, x)
		for t, b := range g.bound {
			if b == x {
				delete(g.bound, t)
			}
		}
	}
}

// BindTexture binds h to target.
func (g *GPU) BindTexture(target driver.Target, h driver.Handle) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls = append(g.calls, Call{"BindTexture", target, 0, h})
	if target == driver.TargetNone || target.IsCubeFace() || target.IsProxy() {
		return driver.ErrInvalidValue
	}
	if h == driver.NoHandle {
		delete(g.bound, target)
		return nil
	}
	t, ok := g.texs.Get(g.ids[h])
	if !ok {
		return driver.ErrInvalidValue
	}
	switch t.target {
	case driver.TargetNone:
		t.target = target
	case target:
	default:
		return driver.ErrInvalidOp
	}
	g.bound[target] = h
	return nil
}

// TexParameteri sets a parameter of the bound texture.
func (g *GPU) TexParameteri(target driver.Target, param driver.Param, value int) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.record("TexParameteri", target, 0)
	t, err := g.current(target)
	if err != nil {
		return err
	}
	switch param {
	case driver.PImmutable:
		return driver.ErrInvalidOp
	case driver.PBaseLevel, driver.PMaxLevel:
		if value < 0 {
			return driver.ErrInvalidValue
		}
		if target == driver.TexRectangle && value != 0 && param == driver.PBaseLevel {
			return driver.ErrInvalidOp
		}
	}
	t.params[param] = value
	return nil
}

// GetTexParameteri queries a parameter of the bound
// texture.
func (g *GPU) GetTexParameteri(target driver.Target, param driver.Param) (int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.record("GetTexParameteri", target, 0)
	t, err := g.current(target)
	if err != nil {
		return 0, err
	}
	if param == driver.PImmutable {
		if t.immutable {
			return 1, nil
		}
		return 0, nil
	}
	if v, ok := t.params[param]; ok {
		return v, nil
	}
	if param == driver.PMaxLevel {
		return 1000, nil
	}
	return 0, nil
}

// levelSize returns the size of the given level of an
// image whose base level has the given size.
// Array layers are not reduced.
func levelSize(target driver.Target, base driver.Dim3D, level int) driver.Dim3D {
	half := func(x int) int { return max(1, x>>level) }
	switch target {
	case driver.Tex1D:
		return driver.Dim3D{half(base.Width), 1, 1}
	case driver.Tex1DArray:
		return driver.Dim3D{half(base.Width), base.Height, 1}
	case driver.Tex2D, driver.TexRectangle, driver.TexCube:
		return driver.Dim3D{half(base.Width), half(base.Height), 1}
	case driver.Tex2DArray, driver.TexCubeArray:
		return driver.Dim3D{half(base.Width), half(base.Height), base.Depth}
	default:
		return driver.Dim3D{half(base.Width), half(base.Height), half(base.Depth)}
	}
}

// maxLevels returns the number of levels in a full mip
// chain of an image with the given base size.
func maxLevels(target driver.Target, base driver.Dim3D) int {
	x := base.Width
	switch target {
	case driver.TexRectangle:
		return 1
	case driver.Tex2D, driver.TexCube, driver.Tex2DArray, driver.TexCubeArray:
		x = max(x, base.Height)
	case driver.Tex3D:
		x = max(x, base.Height, base.Depth)
	}
	var n int
	for ; x > 0; n++ {
		x >>= 1
	}
	return n
}

// faces returns the number of images per level.
func faces(target driver.Target) int {
	if target == driver.TexCube {
		return 6
	}
	return 1
}

// checkSize validates a base size against g's limits.
func (g *GPU) checkSize(target driver.Target, size driver.Dim3D) error {
	if size.Width < 1 || size.Height < 1 || size.Depth < 1 {
		return driver.ErrInvalidValue
	}
	var lim int
	switch target {
	case driver.Tex3D:
		lim = g.limits.Max3D
	case driver.TexCube, driver.TexCubeArray:
		lim = g.limits.MaxCube
	case driver.TexRectangle:
		lim = g.limits.MaxRectangle
	default:
		lim = g.limits.Max2D
	}
	switch target {
	case driver.Tex1DArray:
		if size.Width > lim || size.Height > g.limits.MaxLayers {
			return driver.ErrInvalidValue
		}
	case driver.Tex2DArray, driver.Tex2DMSArray:
		if size.Width > lim || size.Height > lim || size.Depth > g.limits.MaxLayers {
			return driver.ErrInvalidValue
		}
	case driver.TexCubeArray:
		if size.Width != size.Height || size.Depth%6 != 0 {
			return driver.ErrInvalidValue
		}
		if size.Width > lim || size.Depth > 6*g.limits.MaxLayers {
			return driver.ErrInvalidValue
		}
	default:
		if size.Width > lim || size.Height > lim || size.Depth > lim {
			return driver.ErrInvalidValue
		}
	}
	return nil
}

// checkWire validates that a wire format/type pair can
// be stored as ifmt without conversion.
func checkWire(ifmt gputypes.TextureFormat, format driver.Format, typ driver.Type) (int, error) {
	n := TexelSize(ifmt)
	if n == 0 {
		return 0, driver.ErrInvalidValue
	}
	if format == driver.FormatNone || typ == driver.TypeNone {
		return 0, driver.ErrInvalidValue
	}
	if format.IsDepth() != ifmt.HasDepth() {
		return 0, driver.ErrInvalidOp
	}
	if driver.PixelSize(format, typ) != n {
		return 0, driver.ErrInvalidOp
	}
	return n, nil
}

// texImage implements the TexImage* methods.
func (g *GPU) texImage(fn string, target driver.Target, level int, ifmt gputypes.TextureFormat, size driver.Dim3D, format driver.Format, typ driver.Type, data []byte) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.record(fn, target, level)
	t, err := g.current(target)
	if err != nil {
		return err
	}
	if t.immutable {
		return driver.ErrInvalidOp
	}
	bind := target.Bind()
	if level < 0 || (bind == driver.TexRectangle && level != 0) {
		return driver.ErrInvalidValue
	}
	if bind == driver.TexCube && size.Width != size.Height {
		return driver.ErrInvalidValue
	}
	if err := g.checkSize(bind, size); err != nil {
		return err
	}
	n, err := checkWire(ifmt, format, typ)
	if err != nil {
		return err
	}
	n *= size.Width * size.Height * size.Depth
	if data != nil && len(data) < n {
		return driver.ErrInvalidValue
	}
	for len(t.levels) <= level {
		t.levels = append(t.levels, make([]image, faces(bind)))
	}
	face := 0
	if target.IsCubeFace() {
		face = int(target - driver.TexCubePosX)
	}
	img := image{size: size, data: make([]byte, n)}
	copy(img.data, data)
	t.levels[level][face] = img
	t.ifmt = ifmt
	return nil
}

// TexImage1D specifies a level of a 1D image.
func (g *GPU) TexImage1D(target driver.Target, level int, ifmt gputypes.TextureFormat, width int, format driver.Format, typ driver.Type, data []byte) error {
	if target != driver.Tex1D {
		g.reject("TexImage1D", target, level)
		return driver.ErrInvalidValue
	}
	return g.texImage("TexImage1D", target, level, ifmt, driver.Dim3D{width, 1, 1}, format, typ, data)
}

// TexImage2D specifies a level of a 2D image.
func (g *GPU) TexImage2D(target driver.Target, level int, ifmt gputypes.TextureFormat, width, height int, format driver.Format, typ driver.Type, data []byte) error {
	switch {
	case target == driver.Tex2D, target == driver.TexRectangle, target == driver.Tex1DArray, target.IsCubeFace():
	default:
		g.reject("TexImage2D", target, level)
		return driver.ErrInvalidValue
	}
	return g.texImage("TexImage2D", target, level, ifmt, driver.Dim3D{width, height, 1}, format, typ, data)
}

// TexImage3D specifies a level of a 3D image.
func (g *GPU) TexImage3D(target driver.Target, level int, ifmt gputypes.TextureFormat, width, height, depth int, format driver.Format, typ driver.Type, data []byte) error {
	switch target {
	case driver.Tex3D, driver.Tex2DArray, driver.TexCubeArray:
	default:
		g.reject("TexImage3D", target, level)
		return driver.ErrInvalidValue
	}
	return g.texImage("TexImage3D", target, level, ifmt, driver.Dim3D{width, height, depth}, format, typ, data)
}

// reject records a call that failed argument checks
// before reaching the texture.
func (g *GPU) reject(fn string, target driver.Target, level int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.record(fn, target, level)
}

// image returns the image that target/level refer to.
func (t *texture) image(target driver.Target, level int) (*image, bool) {
	if level < 0 || level >= len(t.levels) {
		return nil, false
	}
	face := 0
	if target.IsCubeFace() {
		face = int(target - driver.TexCubePosX)
	}
	img := &t.levels[level][face]
	return img, img.data != nil
}

// texSubImage implements the TexSubImage* methods.
func (g *GPU) texSubImage(fn string, target driver.Target, level int, off, size driver.Dim3D, format driver.Format, typ driver.Type, data []byte) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.record(fn, target, level)
	t, err := g.current(target)
	if err != nil {
		return err
	}
	if t.target == driver.TexCube && !target.IsCubeFace() {
		return driver.ErrInvalidValue
	}
	img, ok := t.image(target, level)
	if !ok {
		return driver.ErrInvalidOp
	}
	if off.Width < 0 || off.Height < 0 || off.Depth < 0 ||
		size.Width < 0 || size.Height < 0 || size.Depth < 0 ||
		off.Width+size.Width > img.size.Width ||
		off.Height+size.Height > img.size.Height ||
		off.Depth+size.Depth > img.size.Depth {
		return driver.ErrInvalidValue
	}
	n, err := checkWire(t.ifmt, format, typ)
	if err != nil {
		return err
	}
	row := n * size.Width
	if len(data) < row*size.Height*size.Depth {
		return driver.ErrInvalidValue
	}
	for z := 0; z < size.Depth; z++ {
		for y := 0; y < size.Height; y++ {
			dst := ((off.Depth+z)*img.size.Height + off.Height + y) * img.size.Width
			dst = (dst + off.Width) * n
			src := (z*size.Height + y) * row
			copy(img.data[dst:dst+row], data[src:src+row])
		}
	}
	return nil
}

// TexSubImage1D updates a region of a 1D image.
func (g *GPU) TexSubImage1D(target driver.Target, level, x, width int, format driver.Format, typ driver.Type, data []byte) error {
	return g.texSubImage("TexSubImage1D", target, level, driver.Dim3D{x, 0, 0}, driver.Dim3D{width, 1, 1}, format, typ, data)
}

// TexSubImage2D updates a region of a 2D image.
func (g *GPU) TexSubImage2D(target driver.Target, level, x, y, width, height int, format driver.Format, typ driver.Type, data []byte) error {
	return g.texSubImage("TexSubImage2D", target, level, driver.Dim3D{x, y, 0}, driver.Dim3D{width, height, 1}, format, typ, data)
}

// TexSubImage3D updates a region of a 3D image.
func (g *GPU) TexSubImage3D(target driver.Target, level, x, y, z, width, height, depth int, format driver.Format, typ driver.Type, data []byte) error {
	return g.texSubImage("TexSubImage3D", target, level, driver.Dim3D{x, y, z}, driver.Dim3D{width, height, depth}, format, typ, data)
}

// texStorage implements the TexStorage* methods.
func (g *GPU) texStorage(fn string, target driver.Target, levels, samples int, ifmt gputypes.TextureFormat, size driver.Dim3D) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.record(fn, target, 0)
	t, err := g.current(target)
	if err != nil {
		return err
	}
	if t.immutable {
		return driver.ErrInvalidOp
	}
	if err := g.checkSize(target, size); err != nil {
		return err
	}
	if target == driver.TexCube && size.Width != size.Height {
		return driver.ErrInvalidValue
	}
	if levels < 1 || levels > maxLevels(target, size) {
		return driver.ErrInvalidValue
	}
	if samples < 0 || samples > g.limits.MaxSamples {
		return driver.ErrInvalidValue
	}
	n := TexelSize(ifmt)
	if n == 0 {
		return driver.ErrInvalidValue
	}
	t.levels = make([][]image, levels)
	for i := range t.levels {
		sz := levelSize(target, size, i)
		m := n * sz.Width * sz.Height * sz.Depth * max(1, samples)
		t.levels[i] = make([]image, faces(target))
		for j := range t.levels[i] {
			t.levels[i][j] = image{sz, make([]byte, m)}
		}
	}
	t.immutable = true
	t.ifmt = ifmt
	t.samples = samples
	t.params[driver.PMaxLevel] = levels - 1
	return nil
}

// TexStorage1D reserves immutable storage for a 1D image.
func (g *GPU) TexStorage1D(target driver.Target, levels int, ifmt gputypes.TextureFormat, width int) error {
	if target != driver.Tex1D {
		g.reject("TexStorage1D", target, 0)
		return driver.ErrInvalidValue
	}
	return g.texStorage("TexStorage1D", target, levels, 0, ifmt, driver.Dim3D{width, 1, 1})
}

// TexStorage2D reserves immutable storage for a 2D image.
func (g *GPU) TexStorage2D(target driver.Target, levels int, ifmt gputypes.TextureFormat, width, height int) error {
	switch target {
	case driver.Tex2D, driver.TexRectangle, driver.Tex1DArray, driver.TexCube:
	default:
		g.reject("TexStorage2D", target, 0)
		return driver.ErrInvalidValue
	}
	return g.texStorage("TexStorage2D", target, levels, 0, ifmt, driver.Dim3D{width, height, 1})
}

// TexStorage3D reserves immutable storage for a 3D image.
func (g *GPU) TexStorage3D(target driver.Target, levels int, ifmt gputypes.TextureFormat, width, height, depth int) error {
	switch target {
	case driver.Tex3D, driver.Tex2DArray, driver.TexCubeArray:
	default:
		g.reject("TexStorage3D", target, 0)
		return driver.ErrInvalidValue
	}
	return g.texStorage("TexStorage3D", target, levels, 0, ifmt, driver.Dim3D{width, height, depth})
}

// TexStorage2DMultisample reserves immutable storage for
// a multisample 2D image.
func (g *GPU) TexStorage2DMultisample(target driver.Target, samples int, ifmt gputypes.TextureFormat, width, height int, _ bool) error {
	if target != driver.Tex2DMS || samples < 1 {
		g.reject("TexStorage2DMultisample", target, 0)
		return driver.ErrInvalidValue
	}
	return g.texStorage("TexStorage2DMultisample", target, 1, samples, ifmt, driver.Dim3D{width, height, 1})
}

// TexStorage3DMultisample reserves immutable storage for
// a multisample 2D array image.
func (g *GPU) TexStorage3DMultisample(target driver.Target, samples int, ifmt gputypes.TextureFormat, width, height, depth int, _ bool) error {
	if target != driver.Tex2DMSArray || samples < 1 {
		g.reject("TexStorage3DMultisample", target, 0)
		return driver.ErrInvalidValue
	}
	return g.texStorage("TexStorage3DMultisample", target, 1, samples, ifmt, driver.Dim3D{width, height, depth})
}

// TexLevelSize returns the size of a level of the bound
// texture.
func (g *GPU) TexLevelSize(target driver.Target, level int) (driver.Dim3D, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.record("TexLevelSize", target, level)
	t, err := g.current(target)
	if err != nil {
		return driver.Dim3D{}, err
	}
	if img, ok := t.image(target, level); ok {
		return img.size, nil
	}
	return driver.Dim3D{}, nil
}

// GetTexImage reads back a whole level of the bound
// texture into dst.
func (g *GPU) GetTexImage(target driver.Target, level int, format driver.Format, typ driver.Type, dst []byte) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.record("GetTexImage", target, level)
	t, err := g.current(target)
	if err != nil {
		return err
	}
	if t.samples > 0 || t.target == driver.TexBuffer {
		return driver.ErrInvalidOp
	}
	if t.target == driver.TexCube && !target.IsCubeFace() {
		return driver.ErrInvalidValue
	}
	img, ok := t.image(target, level)
	if !ok {
		return driver.ErrInvalidOp
	}
	if _, err := checkWire(t.ifmt, format, typ); err != nil {
		return err
	}
	if len(dst) < len(img.data) {
		return driver.ErrInvalidValue
	}
	copy(dst, img.data)
	return nil
}

// TexelSize returns the size in bytes of a texel of
// the given format, or 0 if the format is not supported.
func TexelSize(f gputypes.TextureFormat) int {
	switch f {
	case gputypes.TextureFormatR8Unorm, gputypes.TextureFormatR8Snorm,
		gputypes.TextureFormatR8Uint, gputypes.TextureFormatR8Sint,
		gputypes.TextureFormatStencil8:
		return 1
	case gputypes.TextureFormatR16Unorm, gputypes.TextureFormatR16Snorm,
		gputypes.TextureFormatR16Uint, gputypes.TextureFormatR16Sint,
		gputypes.TextureFormatR16Float,
		gputypes.TextureFormatRG8Unorm, gputypes.TextureFormatRG8Snorm,
		gputypes.TextureFormatRG8Uint, gputypes.TextureFormatRG8Sint,
		gputypes.TextureFormatDepth16Unorm:
		return 2
	case gputypes.TextureFormatR32Float, gputypes.TextureFormatR32Uint,
		gputypes.TextureFormatR32Sint,
		gputypes.TextureFormatRG16Unorm, gputypes.TextureFormatRG16Snorm,
		gputypes.TextureFormatRG16Uint, gputypes.TextureFormatRG16Sint,
		gputypes.TextureFormatRG16Float,
		gputypes.TextureFormatRGBA8Unorm, gputypes.TextureFormatRGBA8UnormSrgb,
		gputypes.TextureFormatRGBA8Snorm, gputypes.TextureFormatRGBA8Uint,
		gputypes.TextureFormatRGBA8Sint,
		gputypes.TextureFormatBGRA8Unorm, gputypes.TextureFormatBGRA8UnormSrgb,
		gputypes.TextureFormatRGB10A2Uint, gputypes.TextureFormatRGB10A2Unorm,
		gputypes.TextureFormatRG11B10Ufloat, gputypes.TextureFormatRGB9E5Ufloat,
		gputypes.TextureFormatDepth24Plus, gputypes.TextureFormatDepth24PlusStencil8,
		gputypes.TextureFormatDepth32Float:
		return 4
	case gputypes.TextureFormatRG32Float, gputypes.TextureFormatRG32Uint,
		gputypes.TextureFormatRG32Sint,
		gputypes.TextureFormatRGBA16Unorm, gputypes.TextureFormatRGBA16Snorm,
		gputypes.TextureFormatRGBA16Uint, gputypes.TextureFormatRGBA16Sint,
		gputypes.TextureFormatRGBA16Float,
		gputypes.TextureFormatDepth32FloatStencil8:
		return 8
	case gputypes.TextureFormatRGBA32Float, gputypes.TextureFormatRGBA32Uint,
		gputypes.TextureFormatRGBA32Sint:
		return 16
	}
	return 0
}
