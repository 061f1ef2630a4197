// Copyright 2024 Gustavo C. Viegas. All rights reserved.

// Package texel manages GPU texture resources.
//
// Init must be called before any texture is created.
// The texture package does the actual work; this package
// only selects the driver and sets up logging.
package texel

import (
	"github.com/sirupsen/logrus"

	"github.com/gviegas/texel/config"
	"github.com/gviegas/texel/internal/ctxt"
)

// preferred lists the drivers that Init tries, in order,
// when the configuration names none.
var preferred = []string{"opengl", ""}

// Init applies cfg and loads a driver.
// If cfg.Driver is empty, the preferred drivers are tried
// first and then every registered driver.
// Calling Init again closes the current driver.
func Init(cfg config.Config) (err error) {
	if err = cfg.Validate(); err != nil {
		return
	}
	ctxt.Configure(cfg)
	ctxt.SetLevel(cfg.Level())
	if cfg.Driver != "" {
		return ctxt.Load(cfg.Driver)
	}
	for _, name := range preferred {
		if err = ctxt.Load(name); err == nil {
			return
		}
	}
	return
}

// InitEnv calls Init with the configuration read from the
// environment.
func InitEnv() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	return Init(cfg)
}

// Close closes the current driver.
// Every texture must be freed before Close is called.
func Close() { ctxt.Close() }

// SetLogger sets the logger used by texel.
// By default nothing is logged. Passing nil restores the
// default.
// The level of l is replaced by the configured level on
// the next call to Init.
func SetLogger(l logrus.FieldLogger) { ctxt.SetLogger(l) }

// DriverName returns the name of the loaded driver, or
// the empty string if none is loaded.
func DriverName() string {
	if d := ctxt.Driver(); d != nil {
		return d.Name()
	}
	return ""
}
