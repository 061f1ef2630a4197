// Copyright 2024 Gustavo C. Viegas. All rights reserved.

//go:build cgo && (linux || windows || darwin)

package texel

import (
	_ "github.com/gviegas/texel/driver/opengl"
)
