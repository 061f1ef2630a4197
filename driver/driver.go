// Copyright 2022 Gustavo C. Viegas. All rights reserved.

// Package driver defines the native texture API that the
// texture package is a client of.
// It follows the bind-based model of OpenGL: a texture
// handle is bound to a target and subsequent calls act
// on whatever is bound to that target.
package driver

import (
	"errors"
	"sync"

	"github.com/sirupsen/logrus"
)

// Driver is the interface that provides methods for
// loading and unloading an underlying implementation.
type Driver interface {
	// Open initializes the driver.
	// If it succeeds, further calls with the same receiver
	// have no effect and must return the same GPU instance.
	// Callers should assume that Open is not safe for
	// parallel execution.
	Open() (GPU, error)

	// Name returns the name of the driver.
	// It must not cause the driver to be opened.
	Name() string

	// Close deinitializes the driver.
	// Closing a driver that is not open has no effect.
	Close()
}

// ErrNotInstalled means that a platform-specific library
// required for the driver to work is not present in the
// system.
var ErrNotInstalled = errors.New("driver: missing required library")

// ErrNoDevice means that no suitable device could be
// found.
var ErrNoDevice = errors.New("driver: no suitable device found")

// ErrNoDeviceMemory means that device memory could not
// be allocated.
var ErrNoDeviceMemory = errors.New("driver: out of device memory")

// ErrInvalidOp means that a call is not allowed in the
// current state (e.g., respecifying immutable storage).
var ErrInvalidOp = errors.New("driver: invalid operation")

// ErrInvalidValue means that a call received an
// argument out of the accepted range.
var ErrInvalidValue = errors.New("driver: invalid value")

// ErrFatal means that the driver is in an unrecoverable
// state. Upon encountering such an error, the application
// must free everything that it created using the driver's
// GPU and then call the Close method.
var ErrFatal = errors.New("driver: fatal error")

// Drivers returns the registered Drivers.
// Client code imports specific driver packages, which
// register themselves from init.
func Drivers() []Driver {
	mu.Lock()
	defer mu.Unlock()
	drv := make([]Driver, len(drivers))
	copy(drv, drivers)
	return drv
}

// Register registers a Driver.
// Driver implementations are expected to call Register
// exactly once, from an init function.
// If a driver with the same name has already been
// registered, it will be replaced by drv.
func Register(drv Driver) {
	mu.Lock()
	defer mu.Unlock()
	for i := range drivers {
		if drivers[i].Name() == drv.Name() {
			drivers[i] = drv
			logrus.WithField("driver", drv.Name()).Warn("driver replaced")
			return
		}
	}
	drivers = append(drivers, drv)
	logrus.WithField("driver", drv.Name()).Debug("driver registered")
}

// Variables used for driver registration.
var (
	mu      sync.Mutex
	drivers = make([]Driver, 0, 2)
)
