package world

import (
	"image/color"

	"tiledworld/internal/core"
	"tiledworld/internal/geom"
	"tiledworld/internal/quadtree"
	pcore "tiledworld/pkg/core"
)

// World owns the grid of cells, regenerates them from the palette, and
// derives each cell's accumulated field through the spatial index. It is
// single-threaded: a field pass runs to completion before any query is
// served, and the index it builds is discarded on the next pass.
type World struct {
	cfg Config

	w, h int

	palette Palette
	custom  bool

	cells     []Cell
	display   []color.RGBA
	fieldView bool

	tree     *quadtree.Tree
	falloff  Falloff
	maxField float64
}

// New returns a world with the provided dimensions using defaults.
func New(w, h int) *World {
	cfg := DefaultConfig()
	cfg.Width = w
	cfg.Height = h
	return NewWithConfig(cfg)
}

// NewWithConfig returns a world configured from the provided options, using
// the default palette with the configured weights.
func NewWithConfig(cfg Config) *World {
	return newWorld(cfg, nil)
}

// NewWithPalette returns a world generated from an arbitrary palette. The
// palette's weights are used as provided; the weight tunables in cfg.Params
// are ignored.
func NewWithPalette(cfg Config, palette Palette) *World {
	return newWorld(cfg, palette)
}

func newWorld(cfg Config, palette Palette) *World {
	if cfg.Width <= 0 {
		cfg.Width = 1
	}
	if cfg.Height <= 0 {
		cfg.Height = 1
	}
	total := cfg.Width * cfg.Height
	w := &World{
		cfg:     cfg,
		w:       cfg.Width,
		h:       cfg.Height,
		cells:   make([]Cell, 0, total),
		display: make([]color.RGBA, total),
		falloff: LinearFalloff,
	}
	if palette != nil {
		w.palette = palette
		w.custom = true
	} else {
		w.palette = w.paletteFromParams()
	}
	return w
}

// paletteFromParams stamps the configured weights onto the default palette.
func (w *World) paletteFromParams() Palette {
	p := DefaultPalette()
	p[0].Weight = w.cfg.Params.FreeWeight
	p[1].Weight = w.cfg.Params.ObstructedWeight
	p[2].Weight = w.cfg.Params.UndesirableWeight
	p[3].Weight = w.cfg.Params.DesirableWeight
	return p
}

// Name returns the world identifier.
func (w *World) Name() string { return "tiledworld" }

// Size reports the grid dimensions.
func (w *World) Size() core.Size { return core.Size{W: w.w, H: w.h} }

// Bounds returns the world box used to root the spatial index.
func (w *World) Bounds() geom.AABB {
	return geom.NewAABB(geom.Vec2{}, geom.Vec2{X: float64(w.w), Y: float64(w.h)})
}

// Cells exposes the backing cell slice. Row-major: index y*W+x.
func (w *World) Cells() []Cell { return w.cells }

// Palette exposes the world's palette templates.
func (w *World) Palette() Palette { return w.palette }

// Reset regenerates the world from scratch using deterministic randomness
// and runs one field pass. A zero seed falls back to the configured seed.
func (w *World) Reset(seed int64) {
	effective := seed
	if effective == 0 {
		effective = w.cfg.Seed
	}
	if !w.custom {
		w.palette = w.paletteFromParams()
	}
	w.palette.Normalise()
	w.generate(pcore.NewRNG(effective))
	w.CalculateField()
	w.rebuildDisplay()
}

// generate stamps one cell per grid position from a weighted palette roll.
func (w *World) generate(rng *pcore.RNG) {
	w.cells = w.cells[:0]
	if len(w.palette) == 0 {
		return
	}
	for y := 0; y < w.h; y++ {
		for x := 0; x < w.w; x++ {
			tmpl := w.palette.Pick(rng.Float64())
			w.cells = append(w.cells, Cell{
				Pos:      geom.Vec2{X: float64(x), Y: float64(y)},
				Type:     tmpl.Type,
				Strength: tmpl.Strength,
				Range:    tmpl.Range,
				Color:    tmpl.Color,
			})
		}
	}
}
