package ui

import "tiledworld/internal/core"

// View is the minimal surface the overlay needs from the world.
type View interface {
	Size() core.Size
}

// NamedView adds the identifier the HUD uses for its panel title.
type NamedView interface {
	View
	Name() string
}
