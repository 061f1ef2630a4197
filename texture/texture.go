// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Package texture manages GPU texture resources.
//
// A Texture owns a native handle and the metadata that
// describes its shape. Views address one (level, layer,
// face) slice of a Texture and are the unit of transfer
// for Upload and Download.
package texture

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/sirupsen/logrus"

	"github.com/gviegas/texel/driver"
	"github.com/gviegas/texel/internal/ctxt"
	"github.com/gviegas/texel/internal/handle"
	"github.com/gviegas/texel/pixel"
)

const prefix = "texture: "

// Configuration errors.
var (
	ErrNilParam        = errors.New(prefix + "nil param")
	ErrNoFormat        = errors.New(prefix + "no format given and none can be inferred")
	ErrDimsAndContents = errors.New(prefix + "both dimensions and contents given")
	ErrNoDims          = errors.New(prefix + "no valid dimensions given")
	ErrWirePair        = errors.New(prefix + "wire format and type must be given together")
	ErrDimMismatch     = errors.New(prefix + "buffer dimensions differ from view dimensions")
)

// Classification errors.
var (
	ErrInvalidCombination = errors.New(prefix + "invalid combination of texture features")
	ErrNotSquare          = errors.New(prefix + "cube texture is not square")
	ErrTooBig             = errors.New(prefix + "texture exceeds driver limits")
)

// State errors.
var (
	ErrAllocated    = errors.New(prefix + "texture already allocated")
	ErrKindConflict = errors.New(prefix + "texture already bound to a different kind")
	ErrSlotBusy     = errors.New(prefix + "bind slot held by another texture")
	ErrFreed        = errors.New(prefix + "texture has been freed")
	ErrFreeView     = errors.New(prefix + "cannot free a texture-backed array; free the containing texture")
	ErrStaleView    = errors.New(prefix + "view refers to a freed texture")
	ErrRange        = errors.New(prefix + "index out of range")
)

// Unsupported-operation errors.
var (
	ErrBufferUnsupported   = errors.New(prefix + "buffer textures are not supported")
	ErrUploadUnsupported   = errors.New(prefix + "not currently supported for upload")
	ErrDownloadUnsupported = errors.New(prefix + "not currently supported for download")
)

// Storage is the mutability variant of a Texture.
type Storage int

// Storage variants.
const (
	// Mutable textures have storage specified lazily,
	// one image at a time, by Upload.
	Mutable Storage = iota + 1
	// Immutable textures have storage for every level
	// reserved once, by Allocate.
	Immutable
)

func (s Storage) String() string {
	switch s {
	case Mutable:
		return "mutable"
	case Immutable:
		return "immutable"
	}
	return "Storage?"
}

// StorageOf returns a pointer to a copy of s, for use in
// Param.
func StorageOf(s Storage) *Storage { return &s }

// Param describes a texture to create.
type Param struct {
	// Base dimensions (one to three spatial sizes).
	// Must be empty if Contents is set.
	Dims []int
	// Internal format. If undefined, it is inferred from
	// Contents.
	Format gputypes.TextureFormat
	Mipmap bool
	// Number of layers. For cube textures, this is the
	// number of cubes. Zero means one.
	Layers      int
	Cube        bool
	Rectangle   bool
	Multisample bool
	// Buffer textures are not supported.
	Buffer bool
	// Mutability variant. If nil, the configured default
	// is used.
	Storage *Storage
	// Initial contents of the base view.
	Contents *pixel.Buffer
}

// Texture is a GPU texture resource.
// A Texture must not be used concurrently.
type Texture struct {
	handle    driver.Handle
	dims      []int
	kind      driver.Target
	format    gputypes.TextureFormat
	sampler   SamplerKind
	levels    int
	layers    int
	cube      bool
	allocated bool
	storage   Storage
	samples   int
	id        handle.ID
	// Levels that were specified natively.
	// Only used by mutable array kinds.
	specified []bool
}

// registry maps view IDs to textures.
var registry handle.Table[*Texture]

// computeLevels returns the number of levels in a full
// mip chain of the given dimensions.
func computeLevels(dims []int) int {
	x := 0
	for _, d := range dims {
		x = max(x, d)
	}
	var l int
	for ; x > 0; l++ {
		x /= 2
	}
	return l
}

// checkLimits validates dims, layers and samples against
// the limits of the GPU for the given kind.
func checkLimits(kind driver.Target, dims []int, layers, samples int, lim *driver.Limits) error {
	var top int
	switch kind {
	case driver.Tex3D:
		top = lim.Max3D
	case driver.TexCube, driver.TexCubeArray:
		top = lim.MaxCube
	case driver.TexRectangle:
		top = lim.MaxRectangle
	default:
		top = lim.Max2D
	}
	for _, d := range dims {
		if d > top {
			return fmt.Errorf("%w: dimension %d > %d", ErrTooBig, d, top)
		}
	}
	if layers > lim.MaxLayers {
		return fmt.Errorf("%w: %d layers > %d", ErrTooBig, layers, lim.MaxLayers)
	}
	if samples > lim.MaxSamples {
		return fmt.Errorf("%w: %d samples > %d", ErrTooBig, samples, lim.MaxSamples)
	}
	return nil
}

// New creates a new texture.
// The texture is allocated and, if p.Contents is set,
// its base view is initialized with p.Contents.
func New(p *Param) (t *Texture, err error) {
	if p == nil {
		return nil, ErrNilParam
	}
	if p.Buffer {
		return nil, ErrBufferUnsupported
	}

	format := p.Format
	if format == gputypes.TextureFormatUndefined {
		if p.Contents == nil {
			return nil, ErrNoFormat
		}
		if format, err = pixel.InternalFormat(p.Contents.Fmt); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrNoFormat, err)
		}
	}

	var dims []int
	switch {
	case len(p.Dims) > 0 && p.Contents != nil:
		return nil, ErrDimsAndContents
	case len(p.Dims) > 0:
		dims = append(dims, p.Dims...)
	case p.Contents != nil:
		dims = append(dims, p.Contents.Dims...)
	default:
		return nil, ErrNoDims
	}
	if len(dims) == 0 || len(dims) > 3 {
		return nil, fmt.Errorf("%w: %v", ErrNoDims, dims)
	}
	for _, d := range dims {
		if d < 1 {
			return nil, fmt.Errorf("%w: %v", ErrNoDims, dims)
		}
	}

	layers := p.Layers
	switch {
	case layers == 0:
		layers = 1
	case layers < 0:
		return nil, fmt.Errorf("%w: %d layers", ErrRange, layers)
	}

	kind := Classify(Shape{
		Rank:        len(dims),
		Mipmap:      p.Mipmap,
		Layered:     layers > 1,
		Cube:        p.Cube,
		Multisample: p.Multisample,
		Rectangle:   p.Rectangle,
	})
	if kind == driver.TargetNone {
		return nil, ErrInvalidCombination
	}
	if p.Cube && dims[0] != dims[1] {
		return nil, fmt.Errorf("%w: %dx%d", ErrNotSquare, dims[0], dims[1])
	}

	cfg := ctxt.Config()
	var samples int
	if isMultisample(kind) {
		samples = cfg.Samples
	}
	gpu, err := ctxt.GPU()
	if err != nil {
		return nil, err
	}
	lim := ctxt.Limits()
	if err = checkLimits(kind, dims, layers, samples, &lim); err != nil {
		return nil, err
	}

	levels := 1
	if p.Mipmap {
		levels = computeLevels(dims)
	}
	storage := Mutable
	switch {
	case p.Storage != nil:
		storage = *p.Storage
	case cfg.Immutable:
		storage = Immutable
	}
	if storage != Mutable && storage != Immutable {
		return nil, fmt.Errorf("%w: storage %d", ErrInvalidCombination, storage)
	}

	h, err := gpu.GenTextures(1)
	if err != nil {
		return nil, err
	}
	t = &Texture{
		handle:  h[0],
		dims:    dims,
		kind:    kind,
		format:  format,
		sampler: SamplerKind{pixel.SampleType(format), kind},
		levels:  levels,
		layers:  layers,
		cube:    p.Cube,
		storage: storage,
		samples: samples,
	}
	t.id = registry.Insert(t)
	ctxt.Log().WithFields(t.fields()).Debug("texture created")

	if err = t.init(p.Contents); err != nil {
		t.Free()
		return nil, err
	}
	return t, nil
}

// init allocates t and uploads the initial contents.
func (t *Texture) init(contents *pixel.Buffer) (err error) {
	if err = t.Bind(driver.TargetNone); err != nil {
		return
	}
	defer func() {
		if e := t.Unbind(); err == nil {
			err = e
		}
	}()
	if err = t.Allocate(); err != nil {
		return
	}
	if contents != nil {
		var v *View
		if v, err = t.View(0, 0, 0); err != nil {
			return
		}
		err = Upload(v, contents)
	}
	return
}

// fields returns the log fields that identify t.
func (t *Texture) fields() logrus.Fields {
	return logrus.Fields{
		"texture": t.handle,
		"kind":    t.kind,
		"format":  t.format,
	}
}

// Allocate allocates storage for t.
// For mutable textures, this only sets the range of
// levels; storage is specified by each upload.
// For immutable textures, storage for every level is
// reserved. It fails with ErrAllocated if called again,
// leaving t unchanged.
func (t *Texture) Allocate() (err error) {
	switch {
	case t.handle == driver.NoHandle:
		return ErrFreed
	case t.allocated:
		return ErrAllocated
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

	switch {
	case isMultisample(t.kind):
		err = t.allocMultisample(gpu)
	case t.storage == Mutable:
		err = t.allocMutable(gpu)
	case t.storage == Immutable:
		err = t.allocImmutable(gpu)
	default:
		panic("undefined texture storage")
	}
	if err != nil {
		return
	}
	t.allocated = true
	ctxt.Log().WithFields(t.fields()).WithField("storage", t.storage).Debug("texture allocated")
	return
}

func (t *Texture) allocMutable(gpu driver.GPU) error {
	if err := gpu.TexParameteri(t.kind, driver.PBaseLevel, 0); err != nil {
		return err
	}
	if err := gpu.TexParameteri(t.kind, driver.PMaxLevel, t.levels-1); err != nil {
		return err
	}
	if isArray(t.kind) {
		t.specified = make([]bool, t.levels)
	}
	return nil
}

func (t *Texture) allocImmutable(gpu driver.GPU) error {
	w, h, d := t.extent()
	switch t.kind {
	case driver.Tex1D:
		return gpu.TexStorage1D(t.kind, t.levels, t.format, w)
	case driver.Tex2D, driver.TexRectangle, driver.TexCube:
		return gpu.TexStorage2D(t.kind, t.levels, t.format, w, h)
	case driver.Tex1DArray:
		return gpu.TexStorage2D(t.kind, t.levels, t.format, w, t.layers)
	case driver.Tex3D:
		return gpu.TexStorage3D(t.kind, t.levels, t.format, w, h, d)
	case driver.Tex2DArray:
		return gpu.TexStorage3D(t.kind, t.levels, t.format, w, h, t.layers)
	case driver.TexCubeArray:
		return gpu.TexStorage3D(t.kind, t.levels, t.format, w, h, 6*t.layers)
	}
	return fmt.Errorf("%w: %v", ErrInvalidCombination, t.kind)
}

// allocMultisample reserves storage for multisample
// kinds, which cannot be specified lazily.
func (t *Texture) allocMultisample(gpu driver.GPU) error {
	w, h, _ := t.extent()
	if t.kind == driver.Tex2DMS {
		return gpu.TexStorage2DMultisample(t.kind, t.samples, t.format, w, h, true)
	}
	return gpu.TexStorage3DMultisample(t.kind, t.samples, t.format, w, h, t.layers, true)
}

// extent returns the base dimensions of t, with missing
// ones reported as 1.
func (t *Texture) extent() (w, h, d int) {
	return dims3(t.dims)
}

func dims3(dims []int) (w, h, d int) {
	w, h, d = 1, 1, 1
	switch len(dims) {
	case 3:
		d = dims[2]
		fallthrough
	case 2:
		h = dims[1]
		fallthrough
	case 1:
		w = dims[0]
	}
	return
}

// Bind binds t to the bind slot of its kind.
// If kind is not driver.TargetNone and t has no kind
// yet, t adopts kind. Binding t under a kind other than
// its own fails with ErrKindConflict.
// Bind is re-entrant: every successful call must be
// paired with a call to Unbind.
func (t *Texture) Bind(kind driver.Target) error {
	if t.handle == driver.NoHandle {
		return ErrFreed
	}
	switch {
	case kind == driver.TargetNone:
		kind = t.kind
		if kind == driver.TargetNone {
			return fmt.Errorf("%w: no kind to bind under", ErrKindConflict)
		}
	case t.kind == driver.TargetNone:
		t.kind = kind
		t.sampler.Kind = kind
	case kind != t.kind:
		return fmt.Errorf("%w: %v, not %v", ErrKindConflict, t.kind, kind)
	}
	gpu, err := ctxt.GPU()
	if err != nil {
		return err
	}
	depth, ok := ctxt.Acquire(kind, t)
	if !ok {
		return fmt.Errorf("%w: %v", ErrSlotBusy, kind)
	}
	if depth == 1 {
		if err = gpu.BindTexture(kind, t.handle); err != nil {
			ctxt.Release(kind, t)
			return err
		}
	}
	return nil
}

// Unbind undoes one call to Bind.
// The bind slot is cleared when every Bind call has
// been undone. Unbinding a texture that is not bound
// has no effect.
func (t *Texture) Unbind() error {
	if t.kind == driver.TargetNone {
		return nil
	}
	if ctxt.Release(t.kind, t) != 0 {
		return nil
	}
	gpu, err := ctxt.GPU()
	if err != nil {
		return err
	}
	return gpu.BindTexture(t.kind, driver.NoHandle)
}

// Free frees t.
// The native handle is deleted and t's metadata is
// cleared. Views of t become stale.
func (t *Texture) Free() error {
	if t.handle == driver.NoHandle {
		return ErrFreed
	}
	gpu, err := ctxt.GPU()
	if err != nil {
		return err
	}
	gpu.DeleteTextures([]driver.Handle{t.handle})
	t.invalidate()
	return nil
}

// FreeAll frees every texture in ts with a single native
// call. Textures that were already freed and nil
// textures are ignored.
func FreeAll(ts ...*Texture) error {
	hs := make([]driver.Handle, 0, len(ts))
	for _, t := range ts {
		if t != nil && t.handle != driver.NoHandle {
			hs = append(hs, t.handle)
		}
	}
	if len(hs) == 0 {
		return nil
	}
	gpu, err := ctxt.GPU()
	if err != nil {
		return err
	}
	gpu.DeleteTextures(hs)
	for _, t := range ts {
		if t != nil && t.handle != driver.NoHandle {
			t.invalidate()
		}
	}
	return nil
}

// invalidate clears t's metadata after its handle was
// deleted.
func (t *Texture) invalidate() {
	ctxt.Log().WithFields(t.fields()).Debug("texture freed")
	if t.kind != driver.TargetNone {
		// Deleting the handle unbinds it.
		for ctxt.Release(t.kind, t) > 0 {
		}
	}
	registry.Remove(t.id)
	t.handle = driver.NoHandle
	t.dims = nil
	t.kind = driver.TargetNone
	t.format = gputypes.TextureFormatUndefined
	t.sampler = SamplerKind{}
	t.levels = 0
	t.layers = 0
	t.cube = false
	t.samples = 0
	t.specified = nil
}

// Handle returns the native handle of t.
// It is driver.NoHandle after t is freed.
func (t *Texture) Handle() driver.Handle { return t.handle }

// Kind returns the kind of t.
func (t *Texture) Kind() driver.Target { return t.kind }

// Dims returns a copy of the base dimensions of t.
func (t *Texture) Dims() []int { return append([]int(nil), t.dims...) }

// Format returns the internal format of t.
func (t *Texture) Format() gputypes.TextureFormat { return t.format }

// Sampler returns the sampler kind of t.
func (t *Texture) Sampler() SamplerKind { return t.sampler }

// Levels returns the number of mip levels in t.
func (t *Texture) Levels() int { return t.levels }

// Layers returns the number of layers in t.
// For cube textures, this is the number of cubes.
func (t *Texture) Layers() int { return t.layers }

// IsCube returns whether t is a cube texture.
func (t *Texture) IsCube() bool { return t.cube }

// IsAllocated returns whether storage for t has been
// allocated.
func (t *Texture) IsAllocated() bool { return t.allocated }

// Storage returns the mutability variant of t.
func (t *Texture) Storage() Storage { return t.storage }

// Samples returns the number of samples of t, or 0 if
// t is not a multisample texture.
func (t *Texture) Samples() int { return t.samples }

// SamplerKind describes how shaders sample a texture.
type SamplerKind struct {
	Type gputypes.TextureSampleType
	Kind driver.Target
}

// String returns the name of the GLSL sampler type
// (e.g., "usampler2DArray", "sampler2DShadow").
func (s SamplerKind) String() string {
	var pre, suf string
	switch s.Type {
	case gputypes.TextureSampleTypeFloat, gputypes.TextureSampleTypeUnfilterableFloat:
	case gputypes.TextureSampleTypeSint:
		pre = "i"
	case gputypes.TextureSampleTypeUint:
		pre = "u"
	case gputypes.TextureSampleTypeDepth:
		suf = "Shadow"
	default:
		return "invalid"
	}
	switch {
	case s.Kind == driver.TargetNone, s.Kind.IsCubeFace(), s.Kind.IsProxy():
		return "invalid"
	case s.Kind == driver.TexBuffer && suf != "":
		return "invalid"
	}
	return pre + "sampler" + s.Kind.String() + suf
}
