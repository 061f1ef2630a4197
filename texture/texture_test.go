// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package texture

import (
	"errors"
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/gviegas/texel/config"
	"github.com/gviegas/texel/driver"
	"github.com/gviegas/texel/driver/soft"
	"github.com/gviegas/texel/internal/ctxt"
	"github.com/gviegas/texel/pixel"
)

// use makes a new soft.GPU the current GPU for the
// duration of the test.
func use(t *testing.T) *soft.GPU {
	t.Helper()
	g := soft.New()
	ctxt.Use(g)
	t.Cleanup(ctxt.Close)
	return g
}

// newTex creates a texture or fails the test.
func newTex(t *testing.T, p *Param) *Texture {
	t.Helper()
	tex, err := New(p)
	if err != nil {
		t.Fatalf("New(%+v): unexpected error: %v", p, err)
	}
	return tex
}

// check checks that tex is valid and not bound.
func (tex *Texture) check(t *testing.T) {
	t.Helper()
	if tex.handle == driver.NoHandle {
		t.Fatal("Texture.handle: unexpected NoHandle")
	}
	if !tex.allocated {
		t.Fatal("Texture.allocated: unexpected false")
	}
	if tex.levels < 1 || tex.layers < 1 {
		t.Fatalf("Texture.levels/layers: unexpected %d/%d", tex.levels, tex.layers)
	}
	if tex.cube && tex.dims[0] != tex.dims[1] {
		t.Fatalf("Texture.dims: cube is not square: %v", tex.dims)
	}
	if o := ctxt.Bound(tex.kind); o != nil {
		t.Fatalf("ctxt.Bound(%v): slot left held by %v", tex.kind, o)
	}
	if _, ok := registry.Get(tex.id); !ok {
		t.Fatal("Texture.id: not in registry")
	}
}

func TestNew(t *testing.T) {
	g := use(t)
	for _, x := range [...]struct {
		p       Param
		kind    driver.Target
		levels  int
		layers  int
		storage Storage
		sampler string
	}{
		{Param{Dims: []int{64, 32}, Format: gputypes.TextureFormatRGBA8Unorm, Mipmap: true},
			driver.Tex2D, 7, 1, Immutable, "sampler2D"},
		{Param{Dims: []int{64, 32}, Format: gputypes.TextureFormatRGBA8Unorm, Storage: StorageOf(Mutable)},
			driver.Tex2D, 1, 1, Mutable, "sampler2D"},
		{Param{Dims: []int{100}, Format: gputypes.TextureFormatR8Unorm, Mipmap: true},
			driver.Tex1D, 7, 1, Immutable, "sampler1D"},
		{Param{Dims: []int{8, 8, 8}, Format: gputypes.TextureFormatR32Float, Mipmap: true},
			driver.Tex3D, 4, 1, Immutable, "sampler3D"},
		{Param{Dims: []int{16}, Format: gputypes.TextureFormatR16Sint, Layers: 4},
			driver.Tex1DArray, 1, 4, Immutable, "isampler1DArray"},
		{Param{Dims: []int{16, 16}, Format: gputypes.TextureFormatR8Uint, Layers: 3, Mipmap: true},
			driver.Tex2DArray, 5, 3, Immutable, "usampler2DArray"},
		{Param{Dims: []int{32, 32}, Format: gputypes.TextureFormatRGBA16Float, Cube: true, Mipmap: true},
			driver.TexCube, 6, 1, Immutable, "samplerCube"},
		{Param{Dims: []int{8, 8}, Format: gputypes.TextureFormatRGBA8Unorm, Cube: true, Layers: 2, Storage: StorageOf(Mutable)},
			driver.TexCubeArray, 1, 2, Mutable, "samplerCubeArray"},
		{Param{Dims: []int{30, 20}, Format: gputypes.TextureFormatRG8Unorm, Rectangle: true},
			driver.TexRectangle, 1, 1, Immutable, "sampler2DRect"},
		{Param{Dims: []int{16, 16}, Format: gputypes.TextureFormatDepth32Float},
			driver.Tex2D, 1, 1, Immutable, "sampler2DShadow"},
		{Param{Dims: []int{16, 16}, Format: gputypes.TextureFormatRGBA8Unorm, Multisample: true},
			driver.Tex2DMS, 1, 1, Immutable, "sampler2DMS"},
		{Param{Dims: []int{16, 16}, Format: gputypes.TextureFormatRGBA8Unorm, Multisample: true, Layers: 2},
			driver.Tex2DMSArray, 1, 2, Immutable, "sampler2DMSArray"},
	} {
		tex := newTex(t, &x.p)
		tex.check(t)
		if k := tex.Kind(); k != x.kind {
			t.Fatalf("Texture.Kind:\nhave %v\nwant %v", k, x.kind)
		}
		if n := tex.Levels(); n != x.levels {
			t.Fatalf("Texture.Levels:\nhave %d\nwant %d", n, x.levels)
		}
		if n := tex.Layers(); n != x.layers {
			t.Fatalf("Texture.Layers:\nhave %d\nwant %d", n, x.layers)
		}
		if s := tex.Storage(); s != x.storage {
			t.Fatalf("Texture.Storage:\nhave %v\nwant %v", s, x.storage)
		}
		if s := tex.Sampler().String(); s != x.sampler {
			t.Fatalf("Texture.Sampler:\nhave %s\nwant %s", s, x.sampler)
		}
		if f := tex.Format(); f != x.p.Format {
			t.Fatalf("Texture.Format:\nhave %v\nwant %v", f, x.p.Format)
		}
		if c := tex.IsCube(); c != x.p.Cube {
			t.Fatalf("Texture.IsCube:\nhave %t\nwant %t", c, x.p.Cube)
		}
		if !tex.IsAllocated() {
			t.Fatal("Texture.IsAllocated: unexpected false")
		}
		if isMultisample(x.kind) {
			if n := tex.Samples(); n != config.Default().Samples {
				t.Fatalf("Texture.Samples:\nhave %d\nwant %d", n, config.Default().Samples)
			}
		} else if n := tex.Samples(); n != 0 {
			t.Fatalf("Texture.Samples:\nhave %d\nwant 0", n)
		}
		if h := g.Bound(x.kind); h != driver.NoHandle {
			t.Fatalf("soft.GPU.Bound(%v): left bound to %v", x.kind, h)
		}
		// Dims must be a copy.
		d := tex.Dims()
		d[0] = -1
		if tex.Dims()[0] == -1 {
			t.Fatal("Texture.Dims: not a copy")
		}
		if err := tex.Free(); err != nil {
			t.Fatalf("Texture.Free: unexpected error: %v", err)
		}
	}
	if n := g.Live(); n != 0 {
		t.Fatalf("soft.GPU.Live:\nhave %d\nwant 0", n)
	}
}

func TestNewFail(t *testing.T) {
	g := use(t)
	rgba := gputypes.TextureFormatRGBA8Unorm
	contents := pixel.NewBuffer(pixel.Format{Layout: pixel.RGBA, Comp: pixel.UN8}, 4, 4)
	for _, x := range [...]struct {
		p    *Param
		want error
	}{
		{nil, ErrNilParam},
		{&Param{Dims: []int{16}, Format: rgba, Buffer: true}, ErrBufferUnsupported},
		{&Param{Dims: []int{16, 16}}, ErrNoFormat},
		{&Param{Contents: pixel.NewBuffer(pixel.Format{Layout: pixel.RGB, Comp: pixel.UN8}, 4, 4)}, ErrNoFormat},
		{&Param{Dims: []int{4, 4}, Contents: contents}, ErrDimsAndContents},
		{&Param{Format: rgba}, ErrNoDims},
		{&Param{Contents: &pixel.Buffer{Fmt: pixel.Format{Layout: pixel.RGBA, Comp: pixel.UN8}}}, ErrNoDims},
		{&Param{Dims: []int{16, 0}, Format: rgba}, ErrNoDims},
		{&Param{Dims: []int{2, 2, 2, 2}, Format: rgba}, ErrNoDims},
		{&Param{Dims: []int{16, 16}, Format: rgba, Layers: -1}, ErrRange},
		{&Param{Dims: []int{16, 16}, Format: rgba, Rectangle: true, Mipmap: true}, ErrInvalidCombination},
		{&Param{Dims: []int{16, 16}, Format: rgba, Multisample: true, Mipmap: true}, ErrInvalidCombination},
		{&Param{Dims: []int{4, 4, 4}, Format: rgba, Layers: 2}, ErrInvalidCombination},
		{&Param{Dims: []int{16}, Format: rgba, Cube: true}, ErrInvalidCombination},
		{&Param{Dims: []int{16, 8}, Format: rgba, Cube: true}, ErrNotSquare},
		{&Param{Dims: []int{1 << 20, 1}, Format: rgba}, ErrTooBig},
		{&Param{Dims: []int{16, 16}, Format: rgba, Layers: 1 << 20}, ErrTooBig},
		{&Param{Dims: []int{16, 16}, Format: rgba, Storage: StorageOf(Storage(42))}, ErrInvalidCombination},
	} {
		tex, err := New(x.p)
		if !errors.Is(err, x.want) {
			t.Fatalf("New(%+v):\nhave %v\nwant %v", x.p, err, x.want)
		}
		if tex != nil {
			t.Fatalf("New(%+v): unexpected non-nil Texture", x.p)
		}
	}
	if n := g.Live(); n != 0 {
		t.Fatalf("soft.GPU.Live:\nhave %d\nwant 0", n)
	}

	ctxt.Close()
	if _, err := New(&Param{Dims: []int{4, 4}, Format: rgba}); !errors.Is(err, ctxt.ErrNotLoaded) {
		t.Fatalf("New: no driver:\nhave %v\nwant %v", err, ctxt.ErrNotLoaded)
	}
}

func TestNewContents(t *testing.T) {
	use(t)
	for _, s := range [...]Storage{Mutable, Immutable} {
		b := pixel.NewBuffer(pixel.Format{Layout: pixel.RGBA, Comp: pixel.UN8}, 4, 2)
		copy(b.Data, pattern(len(b.Data)))
		tex := newTex(t, &Param{Contents: b, Storage: StorageOf(s)})
		tex.check(t)
		if f := tex.Format(); f != gputypes.TextureFormatRGBA8Unorm {
			t.Fatalf("Texture.Format: %v:\nhave %v\nwant %v", s, f, gputypes.TextureFormatRGBA8Unorm)
		}
		if d := tex.Dims(); !sameDims(d, b.Dims) {
			t.Fatalf("Texture.Dims: %v:\nhave %v\nwant %v", s, d, b.Dims)
		}
		v, err := tex.View(0, 0, 0)
		if err != nil {
			t.Fatalf("Texture.View: unexpected error: %v", err)
		}
		have, err := Download(v)
		if err != nil {
			t.Fatalf("Download: %v: unexpected error: %v", s, err)
		}
		if string(have.Data) != string(b.Data) {
			t.Fatalf("Download: %v:\nhave %v\nwant %v", s, have.Data, b.Data)
		}
		tex.Free()
	}
}

func TestConfigured(t *testing.T) {
	use(t)
	defer ctxt.Configure(config.Default())
	ctxt.Configure(config.Config{LogLevel: "info", Immutable: false, Samples: 2})

	tex := newTex(t, &Param{Dims: []int{8, 8}, Format: gputypes.TextureFormatRGBA8Unorm})
	if s := tex.Storage(); s != Mutable {
		t.Fatalf("Texture.Storage:\nhave %v\nwant %v", s, Mutable)
	}
	ms := newTex(t, &Param{Dims: []int{8, 8}, Format: gputypes.TextureFormatRGBA8Unorm, Multisample: true})
	if n := ms.Samples(); n != 2 {
		t.Fatalf("Texture.Samples:\nhave %d\nwant 2", n)
	}
	// Param overrides the configured default.
	imm := newTex(t, &Param{Dims: []int{8, 8}, Format: gputypes.TextureFormatRGBA8Unorm, Storage: StorageOf(Immutable)})
	if s := imm.Storage(); s != Immutable {
		t.Fatalf("Texture.Storage:\nhave %v\nwant %v", s, Immutable)
	}

	ctxt.Configure(config.Config{LogLevel: "info", Immutable: true, Samples: 16})
	_, err := New(&Param{Dims: []int{8, 8}, Format: gputypes.TextureFormatRGBA8Unorm, Multisample: true})
	if !errors.Is(err, ErrTooBig) {
		t.Fatalf("New: 16 samples:\nhave %v\nwant %v", err, ErrTooBig)
	}
	FreeAll(tex, ms, imm)
}

func TestAllocate(t *testing.T) {
	g := use(t)
	for _, s := range [...]Storage{Immutable, Mutable} {
		tex := newTex(t, &Param{Dims: []int{32, 32}, Format: gputypes.TextureFormatRGBA8Unorm, Mipmap: true, Storage: StorageOf(s)})
		levels, dims := tex.Levels(), tex.Dims()
		g.Reset()
		if err := tex.Allocate(); !errors.Is(err, ErrAllocated) {
			t.Fatalf("Texture.Allocate: %v: again:\nhave %v\nwant %v", s, err, ErrAllocated)
		}
		if c := g.Calls(); len(c) != 0 {
			t.Fatalf("Texture.Allocate: %v: unexpected native calls %v", s, c)
		}
		if !tex.IsAllocated() || tex.Levels() != levels || !sameDims(tex.Dims(), dims) || tex.Storage() != s {
			t.Fatalf("Texture.Allocate: %v: state changed on failure", s)
		}

		if err := tex.Bind(driver.TargetNone); err != nil {
			t.Fatalf("Texture.Bind: unexpected error: %v", err)
		}
		imm, err := g.GetTexParameteri(driver.Tex2D, driver.PImmutable)
		if err != nil {
			t.Fatalf("soft.GPU.GetTexParameteri: unexpected error: %v", err)
		}
		if (imm != 0) != (s == Immutable) {
			t.Fatalf("soft.GPU.GetTexParameteri: %v: PImmutable is %d", s, imm)
		}
		maxl, _ := g.GetTexParameteri(driver.Tex2D, driver.PMaxLevel)
		if maxl != levels-1 {
			t.Fatalf("soft.GPU.GetTexParameteri: %v: PMaxLevel:\nhave %d\nwant %d", s, maxl, levels-1)
		}
		tex.Unbind()
		tex.Free()
		if err := tex.Allocate(); !errors.Is(err, ErrFreed) {
			t.Fatalf("Texture.Allocate: %v: freed:\nhave %v\nwant %v", s, err, ErrFreed)
		}
	}
}

func TestBind(t *testing.T) {
	g := use(t)
	a := newTex(t, &Param{Dims: []int{4, 4}, Format: gputypes.TextureFormatRGBA8Unorm})
	b := newTex(t, &Param{Dims: []int{4, 4}, Format: gputypes.TextureFormatRGBA8Unorm})
	c := newTex(t, &Param{Dims: []int{4, 4, 4}, Format: gputypes.TextureFormatRGBA8Unorm})
	defer FreeAll(a, b, c)

	if err := a.Bind(driver.Tex3D); !errors.Is(err, ErrKindConflict) {
		t.Fatalf("Texture.Bind: other kind:\nhave %v\nwant %v", err, ErrKindConflict)
	}
	if err := a.Bind(driver.Tex2D); err != nil {
		t.Fatalf("Texture.Bind: unexpected error: %v", err)
	}
	if h := g.Bound(driver.Tex2D); h != a.Handle() {
		t.Fatalf("soft.GPU.Bound:\nhave %v\nwant %v", h, a.Handle())
	}
	if err := b.Bind(driver.TargetNone); !errors.Is(err, ErrSlotBusy) {
		t.Fatalf("Texture.Bind: busy slot:\nhave %v\nwant %v", err, ErrSlotBusy)
	}
	// Other targets are independent.
	if err := c.Bind(driver.TargetNone); err != nil {
		t.Fatalf("Texture.Bind: other target: unexpected error: %v", err)
	}
	c.Unbind()

	// Re-entrant.
	g.Reset()
	if err := a.Bind(driver.TargetNone); err != nil {
		t.Fatalf("Texture.Bind: re-entrant: unexpected error: %v", err)
	}
	if err := a.Unbind(); err != nil {
		t.Fatalf("Texture.Unbind: unexpected error: %v", err)
	}
	if c := g.Calls(); len(c) != 0 {
		t.Fatalf("Texture.Bind/Unbind: nested pair made native calls %v", c)
	}
	if h := g.Bound(driver.Tex2D); h != a.Handle() {
		t.Fatalf("soft.GPU.Bound: after nested Unbind:\nhave %v\nwant %v", h, a.Handle())
	}
	if err := a.Unbind(); err != nil {
		t.Fatalf("Texture.Unbind: unexpected error: %v", err)
	}
	if h := g.Bound(driver.Tex2D); h != driver.NoHandle {
		t.Fatalf("soft.GPU.Bound: after Unbind:\nhave %v\nwant NoHandle", h)
	}
	if err := b.Bind(driver.TargetNone); err != nil {
		t.Fatalf("Texture.Bind: free slot: unexpected error: %v", err)
	}
	b.Unbind()
	// Unbinding an unbound texture has no effect.
	g.Reset()
	if err := b.Unbind(); err != nil || len(g.Calls()) != 0 {
		t.Fatalf("Texture.Unbind: unbound: %v, %v", err, g.Calls())
	}
}

func TestFree(t *testing.T) {
	g := use(t)
	tex := newTex(t, &Param{Dims: []int{8, 8}, Format: gputypes.TextureFormatRGBA8Unorm, Mipmap: true})
	v, err := tex.View(1, 0, 0)
	if err != nil {
		t.Fatalf("Texture.View: unexpected error: %v", err)
	}
	if err := tex.Bind(driver.TargetNone); err != nil {
		t.Fatalf("Texture.Bind: unexpected error: %v", err)
	}
	if err := tex.Free(); err != nil {
		t.Fatalf("Texture.Free: unexpected error: %v", err)
	}
	if h := tex.Handle(); h != driver.NoHandle {
		t.Fatalf("Texture.Handle: after Free:\nhave %v\nwant %v", h, driver.NoHandle)
	}
	if tex.Dims() != nil || tex.Levels() != 0 || tex.Layers() != 0 ||
		tex.Kind() != driver.TargetNone || tex.Format() != gputypes.TextureFormatUndefined {
		t.Fatalf("Texture: after Free: metadata not cleared: %+v", tex)
	}
	if o := ctxt.Bound(driver.Tex2D); o != nil {
		t.Fatalf("ctxt.Bound: after Free:\nhave %v\nwant nil", o)
	}
	if n := g.Live(); n != 0 {
		t.Fatalf("soft.GPU.Live: after Free:\nhave %d\nwant 0", n)
	}
	if err := tex.Bind(driver.Tex2D); !errors.Is(err, ErrFreed) {
		t.Fatalf("Texture.Bind: after Free:\nhave %v\nwant %v", err, ErrFreed)
	}
	if err := tex.Free(); !errors.Is(err, ErrFreed) {
		t.Fatalf("Texture.Free: again:\nhave %v\nwant %v", err, ErrFreed)
	}
	if _, err := tex.View(0, 0, 0); !errors.Is(err, ErrFreed) {
		t.Fatalf("Texture.View: after Free:\nhave %v\nwant %v", err, ErrFreed)
	}
	if _, err := v.Texture(); !errors.Is(err, ErrStaleView) {
		t.Fatalf("View.Texture: after Free:\nhave %v\nwant %v", err, ErrStaleView)
	}
	b := pixel.NewBuffer(pixel.Format{Layout: pixel.RGBA, Comp: pixel.UN8}, v.Dims()...)
	if err := Upload(v, b); !errors.Is(err, ErrStaleView) {
		t.Fatalf("Upload: stale view:\nhave %v\nwant %v", err, ErrStaleView)
	}
	if _, err := Download(v); !errors.Is(err, ErrStaleView) {
		t.Fatalf("Download: stale view:\nhave %v\nwant %v", err, ErrStaleView)
	}
	// A new texture must not revive the stale view.
	other := newTex(t, &Param{Dims: []int{8, 8}, Format: gputypes.TextureFormatRGBA8Unorm})
	defer other.Free()
	if _, err := v.Texture(); !errors.Is(err, ErrStaleView) {
		t.Fatalf("View.Texture: after reuse:\nhave %v\nwant %v", err, ErrStaleView)
	}
}

func TestFreeAll(t *testing.T) {
	g := use(t)
	var ts []*Texture
	for range 3 {
		ts = append(ts, newTex(t, &Param{Dims: []int{4, 4}, Format: gputypes.TextureFormatR8Unorm}))
	}
	ts[1].Free()
	ts = append(ts, nil)
	g.Reset()
	if err := FreeAll(ts...); err != nil {
		t.Fatalf("FreeAll: unexpected error: %v", err)
	}
	c := g.Calls()
	if len(c) != 1 || c[0].Name != "DeleteTextures" || c[0].Handle != 2 {
		t.Fatalf("FreeAll: native calls:\nhave %v\nwant one DeleteTextures of 2 handles", c)
	}
	for i, tex := range ts {
		if tex != nil && tex.Handle() != driver.NoHandle {
			t.Fatalf("FreeAll: texture %d not freed", i)
		}
	}
	if n := g.Live(); n != 0 {
		t.Fatalf("soft.GPU.Live:\nhave %d\nwant 0", n)
	}
	g.Reset()
	if err := FreeAll(ts...); err != nil || len(g.Calls()) != 0 {
		t.Fatalf("FreeAll: again: %v, %v", err, g.Calls())
	}
}

func TestStorageString(t *testing.T) {
	for _, x := range [...]struct {
		s    Storage
		want string
	}{
		{Mutable, "mutable"},
		{Immutable, "immutable"},
		{0, "Storage?"},
	} {
		if have := x.s.String(); have != x.want {
			t.Fatalf("Storage.String:\nhave %s\nwant %s", have, x.want)
		}
	}
}

func TestSamplerKind(t *testing.T) {
	for _, x := range [...]struct {
		s    SamplerKind
		want string
	}{
		{SamplerKind{gputypes.TextureSampleTypeFloat, driver.Tex2D}, "sampler2D"},
		{SamplerKind{gputypes.TextureSampleTypeUnfilterableFloat, driver.Tex1D}, "sampler1D"},
		{SamplerKind{gputypes.TextureSampleTypeUint, driver.Tex2DArray}, "usampler2DArray"},
		{SamplerKind{gputypes.TextureSampleTypeSint, driver.Tex3D}, "isampler3D"},
		{SamplerKind{gputypes.TextureSampleTypeDepth, driver.Tex2D}, "sampler2DShadow"},
		{SamplerKind{gputypes.TextureSampleTypeDepth, driver.TexCube}, "samplerCubeShadow"},
		{SamplerKind{gputypes.TextureSampleTypeFloat, driver.TexRectangle}, "sampler2DRect"},
		{SamplerKind{gputypes.TextureSampleTypeFloat, driver.TexBuffer}, "samplerBuffer"},
		{SamplerKind{gputypes.TextureSampleTypeSint, driver.Tex2DMSArray}, "isampler2DMSArray"},
		{SamplerKind{gputypes.TextureSampleTypeDepth, driver.TexBuffer}, "invalid"},
		{SamplerKind{gputypes.TextureSampleTypeUndefined, driver.Tex2D}, "invalid"},
		{SamplerKind{gputypes.TextureSampleTypeFloat, driver.TargetNone}, "invalid"},
		{SamplerKind{gputypes.TextureSampleTypeFloat, driver.CubeFace(2)}, "invalid"},
		{SamplerKind{gputypes.TextureSampleTypeFloat, driver.ProxyTex2D}, "invalid"},
	} {
		if have := x.s.String(); have != x.want {
			t.Fatalf("SamplerKind.String:\nhave %s\nwant %s", have, x.want)
		}
	}
}

func TestLog(t *testing.T) {
	use(t)
	defer ctxt.SetLogger(nil)
	l, hook := test.NewNullLogger()
	l.SetLevel(logrus.DebugLevel)
	ctxt.SetLogger(l)

	b := pixel.NewBuffer(pixel.Format{Layout: pixel.Red, Comp: pixel.UN8}, 4, 4)
	tex := newTex(t, &Param{Contents: b})
	h := tex.Handle()
	tex.Free()
	want := map[string]bool{
		"texture created":   false,
		"texture allocated": false,
		"view uploaded":     false,
		"texture freed":     false,
	}
	for _, e := range hook.AllEntries() {
		if _, ok := want[e.Message]; ok && e.Data["texture"] == h {
			want[e.Message] = true
		}
	}
	for m, ok := range want {
		if !ok {
			t.Fatalf("Log: missing entry %q", m)
		}
	}
}
