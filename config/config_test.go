// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package config

import (
	"errors"
	"testing"

	"github.com/gobuffalo/envy"
	"github.com/sirupsen/logrus"
)

func TestDefault(t *testing.T) {
	c := Default()
	want := Config{"", "warning", true, 4}
	if c != want {
		t.Fatalf("Default:\nhave %+v\nwant %+v", c, want)
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("Config.Validate: unexpected error: %v", err)
	}
	if l := c.Level(); l != logrus.WarnLevel {
		t.Fatalf("Config.Level:\nhave %v\nwant %v", l, logrus.WarnLevel)
	}
}

func TestLoad(t *testing.T) {
	for _, x := range [...]struct {
		env  map[string]string
		want Config
	}{
		{nil, Default()},
		{map[string]string{EnvDriver: "opengl"}, Config{"opengl", "warning", true, 4}},
		{map[string]string{EnvLogLevel: "debug"}, Config{"", "debug", true, 4}},
		{map[string]string{EnvImmutable: "false"}, Config{"", "warning", false, 4}},
		{map[string]string{EnvImmutable: "1", EnvSamples: "8"}, Config{"", "warning", true, 8}},
		{map[string]string{EnvDriver: "soft", EnvLogLevel: "info", EnvImmutable: "0", EnvSamples: "1"}, Config{"soft", "info", false, 1}},
	} {
		envy.Temp(func() {
			for _, k := range [...]string{EnvDriver, EnvLogLevel, EnvImmutable, EnvSamples} {
				envy.Set(k, "")
			}
			for k, v := range x.env {
				envy.Set(k, v)
			}
			c, err := Load()
			if err != nil {
				t.Fatalf("Load(%v): unexpected error: %v", x.env, err)
			}
			if c != x.want {
				t.Fatalf("Load(%v):\nhave %+v\nwant %+v", x.env, c, x.want)
			}
		})
	}
}

func TestLoadInvalid(t *testing.T) {
	for _, x := range [...]map[string]string{
		{EnvImmutable: "maybe"},
		{EnvSamples: "four"},
		{EnvSamples: "0"},
		{EnvSamples: "6"},
		{EnvLogLevel: "loud"},
	} {
		envy.Temp(func() {
			for _, k := range [...]string{EnvDriver, EnvLogLevel, EnvImmutable, EnvSamples} {
				envy.Set(k, "")
			}
			for k, v := range x {
				envy.Set(k, v)
			}
			if _, err := Load(); !errors.Is(err, ErrInvalid) {
				t.Fatalf("Load(%v):\nhave %v\nwant %v", x, err, ErrInvalid)
			}
		})
	}
}
