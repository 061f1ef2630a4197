// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Package ctxt provides the GPU driver used by texel.
package ctxt

import (
	"errors"
	"strings"
	"sync"

	"github.com/gviegas/texel/config"
	"github.com/gviegas/texel/driver"
)

var (
	mu     sync.Mutex
	drv    driver.Driver
	gpu    driver.GPU
	limits driver.Limits
	slots  = make(map[driver.Target]*slot)
	cfg    = config.Default()
)

// ErrNoDriver means that no registered driver matched
// the requested name or none could be opened.
var ErrNoDriver = errors.New("ctxt: driver not found")

// ErrNotLoaded means that no driver has been loaded yet.
var ErrNotLoaded = errors.New("ctxt: driver not loaded")

// Load attempts to load any driver whose name contains
// the name string. It is case insensitive.
// If name is the empty string, then all registered
// drivers are considered.
// A previously loaded driver is closed first, even if
// Load fails.
// The limits are queried from the new GPU.
func Load(name string) error {
	mu.Lock()
	defer mu.Unlock()
	unload()
	drivers := driver.Drivers()
	err := ErrNoDriver
	name = strings.ToLower(name)
	for i := range drivers {
		if !strings.Contains(strings.ToLower(drivers[i].Name()), name) {
			continue
		}
		var u driver.GPU
		if u, err = drivers[i].Open(); err != nil {
			Log().WithField("driver", drivers[i].Name()).WithError(err).Warn("driver probe failed")
			continue
		}
		drv = drivers[i]
		gpu = u
		limits = gpu.Limits()
		Log().WithField("driver", drv.Name()).Info("driver opened")
		return nil
	}
	if errors.Is(err, ErrNoDriver) {
		return err
	}
	return errors.Join(ErrNoDriver, err)
}

// Use makes u the current GPU.
// The previous driver, if any, is closed.
// It is intended for GPUs that are not obtained through
// the driver registry, such as soft.New.
func Use(u driver.GPU) {
	mu.Lock()
	defer mu.Unlock()
	unload()
	drv = u.Driver()
	gpu = u
	limits = gpu.Limits()
}

// Close closes the current driver.
// It has no effect if no driver is loaded.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	unload()
}

// unload closes the current driver and clears every
// bind slot.
// mu must be held.
func unload() {
	if drv != nil {
		drv.Close()
		Log().WithField("driver", drv.Name()).Info("driver closed")
	}
	drv = nil
	gpu = nil
	limits = driver.Limits{}
	clear(slots)
}

// Driver returns the driver.Driver.
func Driver() driver.Driver {
	mu.Lock()
	defer mu.Unlock()
	return drv
}

// GPU returns the driver.GPU.
// It fails with ErrNotLoaded if no driver is loaded.
func GPU() (driver.GPU, error) {
	mu.Lock()
	defer mu.Unlock()
	if gpu == nil {
		return nil, ErrNotLoaded
	}
	return gpu, nil
}

// Limits returns GPU().Limits().
// This value is retrieved only once per load.
func Limits() driver.Limits {
	mu.Lock()
	defer mu.Unlock()
	return limits
}

// slot is a bind slot.
type slot struct {
	owner any
	depth int
}

// Acquire acquires the bind slot of target on behalf
// of owner.
// It returns the number of times owner holds the slot,
// which is 1 when the slot was free. ok is false if a
// different owner holds the slot.
func Acquire(target driver.Target, owner any) (depth int, ok bool) {
	mu.Lock()
	defer mu.Unlock()
	s := slots[target]
	switch {
	case s == nil:
		slots[target] = &slot{owner, 1}
		return 1, true
	case s.owner == owner:
		s.depth++
		return s.depth, true
	}
	return s.depth, false
}

// Release releases one hold of the bind slot of target
// on behalf of owner.
// It returns the number of holds left, which is 0 when
// the slot became free. It returns -1 if owner does not
// hold the slot.
func Release(target driver.Target, owner any) int {
	mu.Lock()
	defer mu.Unlock()
	s := slots[target]
	if s == nil || s.owner != owner {
		return -1
	}
	if s.depth--; s.depth == 0 {
		delete(slots, target)
	}
	return s.depth
}

// Bound returns the owner of the bind slot of target,
// or nil if the slot is free.
func Bound(target driver.Target) any {
	mu.Lock()
	defer mu.Unlock()
	if s := slots[target]; s != nil {
		return s.owner
	}
	return nil
}

// Configure sets the configuration that packages consult
// for their defaults.
func Configure(c config.Config) {
	mu.Lock()
	defer mu.Unlock()
	cfg = c
}

// Config returns the current configuration.
// It is config.Default() unless Configure is called.
func Config() config.Config {
	mu.Lock()
	defer mu.Unlock()
	return cfg
}
