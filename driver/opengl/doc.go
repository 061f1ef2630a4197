// Copyright 2024 Gustavo C. Viegas. All rights reserved.

// Package opengl implements driver.GPU on top of an
// OpenGL 4.6 core profile context.
// The context belongs to a hidden window created by
// Driver.Open, and it is current on the thread that
// called Open. Every GPU method must be called from
// that thread.
// The package requires cgo; without it, no driver is
// registered.
package opengl
