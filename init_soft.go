// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package texel

import (
	_ "github.com/gviegas/texel/driver/soft"
)
