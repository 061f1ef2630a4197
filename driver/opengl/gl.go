// Copyright 2024 Gustavo C. Viegas. All rights reserved.

//go:build cgo

package opengl

import (
	"errors"
	"fmt"
	"runtime"
	"sync"
	"unsafe"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/gogpu/gputypes"
	"github.com/sirupsen/logrus"

	"github.com/gviegas/texel/driver"
)

const name = "opengl"

func init() { driver.Register(&Driver{}) }

// Driver implements driver.Driver and driver.GPU.
type Driver struct {
	mu  sync.Mutex
	win *glfw.Window
	lim driver.Limits
}

// Open initializes the driver.
// It locks the calling goroutine to its thread, creates
// a hidden window and makes its context current.
func (d *Driver) Open() (gpu driver.GPU, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.win != nil {
		return d, nil
	}

	runtime.LockOSThread()
	defer func() {
		if err != nil {
			runtime.UnlockOSThread()
		}
	}()
	if err = glfw.Init(); err != nil {
		return nil, fmt.Errorf("%w: %v", driver.ErrNotInstalled, err)
	}
	glfw.WindowHint(glfw.Visible, glfw.False)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 6)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	win, err := glfw.CreateWindow(1, 1, name, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("%w: %v", driver.ErrNoDevice, err)
	}
	win.MakeContextCurrent()
	if err = gl.Init(); err != nil {
		win.Destroy()
		glfw.Terminate()
		return nil, fmt.Errorf("%w: %v", driver.ErrNotInstalled, err)
	}

	// Wire rows are tightly packed.
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)

	d.win = win
	d.lim = queryLimits()
	logrus.WithFields(logrus.Fields{
		"driver":   name,
		"version":  gl.GoStr(gl.GetString(gl.VERSION)),
		"renderer": gl.GoStr(gl.GetString(gl.RENDERER)),
	}).Debug("driver opened")
	return d, nil
}

// queryLimits queries the implementation limits of the
// current context.
func queryLimits() driver.Limits {
	get := func(pname uint32) int {
		var x int32
		gl.GetIntegerv(pname, &x)
		return int(x)
	}
	return driver.Limits{
		Max2D:        get(gl.MAX_TEXTURE_SIZE),
		Max3D:        get(gl.MAX_3D_TEXTURE_SIZE),
		MaxCube:      get(gl.MAX_CUBE_MAP_TEXTURE_SIZE),
		MaxRectangle: get(gl.MAX_RECTANGLE_TEXTURE_SIZE),
		MaxLayers:    get(gl.MAX_ARRAY_TEXTURE_LAYERS),
		MaxSamples:   get(gl.MAX_SAMPLES),
	}
}

// Name returns the driver name.
func (*Driver) Name() string { return name }

// Close deinitializes the driver.
func (d *Driver) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.win == nil {
		return
	}
	d.win.Destroy()
	glfw.Terminate()
	runtime.UnlockOSThread()
	d.win = nil
	d.lim = driver.Limits{}
}

// Driver returns d.
func (d *Driver) Driver() driver.Driver { return d }

// checkError drains the GL error queue and returns the
// first error in it.
func checkError() (err error) {
	for {
		code := gl.GetError()
		if code == gl.NO_ERROR {
			return
		}
		var e error
		switch code {
		case gl.INVALID_ENUM, gl.INVALID_VALUE:
			e = driver.ErrInvalidValue
		case gl.INVALID_OPERATION, gl.INVALID_FRAMEBUFFER_OPERATION:
			e = driver.ErrInvalidOp
		case gl.OUT_OF_MEMORY:
			e = driver.ErrNoDeviceMemory
		default:
			// CONTEXT_LOST and anything unknown.
			e = driver.ErrFatal
		}
		if err == nil {
			err = e
		}
		if e == driver.ErrFatal {
			return
		}
	}
}

// ptr returns a pointer to the first byte of data, or
// nil if data is empty.
func ptr(data []byte) unsafe.Pointer {
	if len(data) == 0 {
		return nil
	}
	return unsafe.Pointer(&data[0])
}

// GenTextures generates n texture handles.
func (d *Driver) GenTextures(n int) ([]driver.Handle, error) {
	if n < 0 {
		return nil, driver.ErrInvalidValue
	}
	if n == 0 {
		return []driver.Handle{}, nil
	}
	names := make([]uint32, n)
	gl.GenTextures(int32(n), &names[0])
	if err := checkError(); err != nil {
		return nil, err
	}
	h := make([]driver.Handle, n)
	for i, x := range names {
		h[i] = driver.Handle(x)
	}
	return h, nil
}

// DeleteTextures deletes every handle in h.
func (d *Driver) DeleteTextures(h []driver.Handle) {
	names := make([]uint32, 0, len(h))
	for _, x := range h {
		if x > 0 {
			names = append(names, uint32(x))
		}
	}
	if len(names) > 0 {
		gl.DeleteTextures(int32(len(names)), &names[0])
	}
}

// BindTexture binds h to target.
func (d *Driver) BindTexture(target driver.Target, h driver.Handle) error {
	t, err := convTarget(target)
	if err != nil {
		return err
	}
	var x uint32
	if h != driver.NoHandle {
		if h < 0 {
			return driver.ErrInvalidValue
		}
		x = uint32(h)
	}
	gl.BindTexture(t, x)
	return checkError()
}

// TexParameteri sets a parameter of the bound texture.
func (d *Driver) TexParameteri(target driver.Target, param driver.Param, value int) error {
	if param == driver.PImmutable {
		return driver.ErrInvalidOp
	}
	t, err := convTarget(target)
	if err != nil {
		return err
	}
	p, err := convParam(param)
	if err != nil {
		return err
	}
	v := int32(value)
	if isFilter(param) {
		if v, err = convFilter(value); err != nil {
			return err
		}
	}
	gl.TexParameteri(t, p, v)
	return checkError()
}

// GetTexParameteri queries a parameter of the bound
// texture.
func (d *Driver) GetTexParameteri(target driver.Target, param driver.Param) (int, error) {
	t, err := convTarget(target)
	if err != nil {
		return 0, err
	}
	p, err := convParam(param)
	if err != nil {
		return 0, err
	}
	var v int32
	gl.GetTexParameteriv(t, p, &v)
	if err := checkError(); err != nil {
		return 0, err
	}
	if isFilter(param) {
		return filterOf(v), nil
	}
	return int(v), nil
}

// image converts the arguments shared by every image
// specification call.
func image(target driver.Target, ifmt gputypes.TextureFormat, format driver.Format, typ driver.Type) (t uint32, ifx int32, wf, wt uint32, err error) {
	if t, err = convTarget(target); err != nil {
		return
	}
	var x uint32
	if x, err = convInternal(ifmt); err != nil {
		return
	}
	ifx = int32(x)
	wf, wt, err = convWire(format, typ)
	return
}

// TexImage1D specifies a level of a 1D image.
func (d *Driver) TexImage1D(target driver.Target, level int, ifmt gputypes.TextureFormat, width int, format driver.Format, typ driver.Type, data []byte) error {
	t, ifx, wf, wt, err := image(target, ifmt, format, typ)
	if err != nil {
		return err
	}
	gl.TexImage1D(t, int32(level), ifx, int32(width), 0, wf, wt, ptr(data))
	return checkError()
}

// TexImage2D specifies a level of a 2D image.
func (d *Driver) TexImage2D(target driver.Target, level int, ifmt gputypes.TextureFormat, width, height int, format driver.Format, typ driver.Type, data []byte) error {
	t, ifx, wf, wt, err := image(target, ifmt, format, typ)
	if err != nil {
		return err
	}
	gl.TexImage2D(t, int32(level), ifx, int32(width), int32(height), 0, wf, wt, ptr(data))
	return checkError()
}

// TexImage3D specifies a level of a 3D image.
func (d *Driver) TexImage3D(target driver.Target, level int, ifmt gputypes.TextureFormat, width, height, depth int, format driver.Format, typ driver.Type, data []byte) error {
	t, ifx, wf, wt, err := image(target, ifmt, format, typ)
	if err != nil {
		return err
	}
	gl.TexImage3D(t, int32(level), ifx, int32(width), int32(height), int32(depth), 0, wf, wt, ptr(data))
	return checkError()
}

// subImage converts the arguments shared by every
// sub-image call.
func subImage(target driver.Target, format driver.Format, typ driver.Type) (t, wf, wt uint32, err error) {
	if t, err = convTarget(target); err != nil {
		return
	}
	wf, wt, err = convWire(format, typ)
	return
}

// TexSubImage1D updates a region of a 1D image.
func (d *Driver) TexSubImage1D(target driver.Target, level, x, width int, format driver.Format, typ driver.Type, data []byte) error {
	t, wf, wt, err := subImage(target, format, typ)
	if err != nil {
		return err
	}
	gl.TexSubImage1D(t, int32(level), int32(x), int32(width), wf, wt, ptr(data))
	return checkError()
}

// TexSubImage2D updates a region of a 2D image.
func (d *Driver) TexSubImage2D(target driver.Target, level, x, y, width, height int, format driver.Format, typ driver.Type, data []byte) error {
	t, wf, wt, err := subImage(target, format, typ)
	if err != nil {
		return err
	}
	gl.TexSubImage2D(t, int32(level), int32(x), int32(y), int32(width), int32(height), wf, wt, ptr(data))
	return checkError()
}

// TexSubImage3D updates a region of a 3D image.
func (d *Driver) TexSubImage3D(target driver.Target, level, x, y, z, width, height, depth int, format driver.Format, typ driver.Type, data []byte) error {
	t, wf, wt, err := subImage(target, format, typ)
	if err != nil {
		return err
	}
	gl.TexSubImage3D(t, int32(level), int32(x), int32(y), int32(z), int32(width), int32(height), int32(depth), wf, wt, ptr(data))
	return checkError()
}

// storage converts the arguments shared by every
// storage call.
func storage(target driver.Target, ifmt gputypes.TextureFormat) (t, ifx uint32, err error) {
	if t, err = convTarget(target); err != nil {
		return
	}
	ifx, err = convInternal(ifmt)
	return
}

// TexStorage1D reserves immutable storage for a 1D image.
func (d *Driver) TexStorage1D(target driver.Target, levels int, ifmt gputypes.TextureFormat, width int) error {
	t, ifx, err := storage(target, ifmt)
	if err != nil {
		return err
	}
	gl.TexStorage1D(t, int32(levels), ifx, int32(width))
	return checkError()
}

// TexStorage2D reserves immutable storage for a 2D image.
func (d *Driver) TexStorage2D(target driver.Target, levels int, ifmt gputypes.TextureFormat, width, height int) error {
	t, ifx, err := storage(target, ifmt)
	if err != nil {
		return err
	}
	gl.TexStorage2D(t, int32(levels), ifx, int32(width), int32(height))
	return checkError()
}

// TexStorage3D reserves immutable storage for a 3D image.
func (d *Driver) TexStorage3D(target driver.Target, levels int, ifmt gputypes.TextureFormat, width, height, depth int) error {
	t, ifx, err := storage(target, ifmt)
	if err != nil {
		return err
	}
	gl.TexStorage3D(t, int32(levels), ifx, int32(width), int32(height), int32(depth))
	return checkError()
}

// TexStorage2DMultisample reserves immutable storage for
// a multisample 2D image.
func (d *Driver) TexStorage2DMultisample(target driver.Target, samples int, ifmt gputypes.TextureFormat, width, height int, fixed bool) error {
	t, ifx, err := storage(target, ifmt)
	if err != nil {
		return err
	}
	gl.TexStorage2DMultisample(t, int32(samples), ifx, int32(width), int32(height), fixed)
	return checkError()
}

// TexStorage3DMultisample reserves immutable storage for
// a multisample 2D array image.
func (d *Driver) TexStorage3DMultisample(target driver.Target, samples int, ifmt gputypes.TextureFormat, width, height, depth int, fixed bool) error {
	t, ifx, err := storage(target, ifmt)
	if err != nil {
		return err
	}
	gl.TexStorage3DMultisample(t, int32(samples), ifx, int32(width), int32(height), int32(depth), fixed)
	return checkError()
}

// TexLevelSize returns the size of a level of the bound
// texture.
func (d *Driver) TexLevelSize(target driver.Target, level int) (driver.Dim3D, error) {
	t, err := convTarget(target)
	if err != nil {
		return driver.Dim3D{}, err
	}
	var w, h, z int32
	gl.GetTexLevelParameteriv(t, int32(level), gl.TEXTURE_WIDTH, &w)
	gl.GetTexLevelParameteriv(t, int32(level), gl.TEXTURE_HEIGHT, &h)
	gl.GetTexLevelParameteriv(t, int32(level), gl.TEXTURE_DEPTH, &z)
	if err := checkError(); err != nil {
		return driver.Dim3D{}, err
	}
	return driver.Dim3D{Width: int(w), Height: int(h), Depth: int(z)}, nil
}

// errShortBuffer means that the destination of a read
// back cannot hold the whole level.
var errShortBuffer = errors.New("opengl: destination too small")

// GetTexImage reads back a whole level of the bound
// texture.
func (d *Driver) GetTexImage(target driver.Target, level int, format driver.Format, typ driver.Type, dst []byte) error {
	size, err := d.TexLevelSize(target, level)
	if err != nil {
		return err
	}
	if n := size.Width * size.Height * size.Depth * driver.PixelSize(format, typ); len(dst) < n {
		return fmt.Errorf("%w: %w: have %d bytes, want %d", driver.ErrInvalidValue, errShortBuffer, len(dst), n)
	}
	t, wf, wt, err := subImage(target, format, typ)
	if err != nil {
		return err
	}
	gl.GetTexImage(t, int32(level), wf, wt, ptr(dst))
	return checkError()
}

// Limits returns the implementation limits.
func (d *Driver) Limits() driver.Limits { return d.lim }
