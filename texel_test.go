// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package texel

import (
	"bytes"
	"errors"
	"testing"

	"github.com/gobuffalo/envy"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/gviegas/texel/config"
	"github.com/gviegas/texel/internal/ctxt"
	"github.com/gviegas/texel/pixel"
	"github.com/gviegas/texel/texture"
)

func TestInit(t *testing.T) {
	defer Close()
	cfg := config.Default()
	cfg.Driver = "soft"
	if err := Init(cfg); err != nil {
		t.Fatalf("Init: unexpected error: %v", err)
	}
	if s := DriverName(); s != "soft" {
		t.Fatalf("DriverName:\nhave %q\nwant \"soft\"", s)
	}

	b := pixel.NewBuffer(pixel.Format{Layout: pixel.RGBA, Comp: pixel.UN8}, 2, 2)
	copy(b.Data, []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16})
	tex, err := texture.New(&texture.Param{Contents: b})
	if err != nil {
		t.Fatalf("texture.New: unexpected error: %v", err)
	}
	v, err := tex.View(0, 0, 0)
	if err != nil {
		t.Fatalf("Texture.View: unexpected error: %v", err)
	}
	d, err := texture.Download(v)
	if err != nil {
		t.Fatalf("texture.Download: unexpected error: %v", err)
	}
	if !bytes.Equal(d.Data, b.Data) {
		t.Fatalf("texture.Download:\nhave %v\nwant %v", d.Data, b.Data)
	}
	tex.Free()

	Close()
	if s := DriverName(); s != "" {
		t.Fatalf("DriverName: after Close:\nhave %q\nwant \"\"", s)
	}
}

func TestInitFail(t *testing.T) {
	defer Close()
	cfg := config.Default()
	cfg.Samples = 3
	if err := Init(cfg); !errors.Is(err, config.ErrInvalid) {
		t.Fatalf("Init: invalid config:\nhave %v\nwant %v", err, config.ErrInvalid)
	}
	cfg = config.Default()
	cfg.Driver = "no such driver"
	if err := Init(cfg); !errors.Is(err, ctxt.ErrNoDriver) {
		t.Fatalf("Init: unknown driver:\nhave %v\nwant %v", err, ctxt.ErrNoDriver)
	}
	if s := DriverName(); s != "" {
		t.Fatalf("DriverName: after failed Init:\nhave %q\nwant \"\"", s)
	}
}

func TestInitEnv(t *testing.T) {
	defer Close()
	envy.Temp(func() {
		envy.Set(config.EnvDriver, "SOFT")
		envy.Set(config.EnvLogLevel, "")
		envy.Set(config.EnvImmutable, "false")
		envy.Set(config.EnvSamples, "")
		if err := InitEnv(); err != nil {
			t.Fatalf("InitEnv: unexpected error: %v", err)
		}
	})
	if s := DriverName(); s != "soft" {
		t.Fatalf("DriverName:\nhave %q\nwant \"soft\"", s)
	}
	if ctxt.Config().Immutable {
		t.Fatalf("InitEnv: %s was not applied", config.EnvImmutable)
	}
	ctxt.Configure(config.Default())

	envy.Temp(func() {
		envy.Set(config.EnvSamples, "many")
		if err := InitEnv(); !errors.Is(err, config.ErrInvalid) {
			t.Fatalf("InitEnv: invalid samples:\nhave %v\nwant %v", err, config.ErrInvalid)
		}
	})
}

func TestSetLogger(t *testing.T) {
	defer Close()
	defer SetLogger(nil)
	l, hook := test.NewNullLogger()
	SetLogger(l)
	cfg := config.Default()
	cfg.Driver = "soft"
	cfg.LogLevel = "debug"
	if err := Init(cfg); err != nil {
		t.Fatalf("Init: unexpected error: %v", err)
	}
	if lvl := l.GetLevel(); lvl != logrus.DebugLevel {
		t.Fatalf("Init: log level:\nhave %v\nwant %v", lvl, logrus.DebugLevel)
	}
	if e := hook.LastEntry(); e == nil || e.Message != "driver opened" {
		t.Fatalf("Init: last log entry:\nhave %v\nwant \"driver opened\"", e)
	}
}
