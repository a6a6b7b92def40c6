package app

import "flag"

// Config represents the command-line parameters for the viewer.
type Config struct {
	Width    int
	Height   int
	Scale    int
	Seed     int64
	HUDWidth int
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{Width: 120, Height: 120, Scale: 6, Seed: 1337, HUDWidth: 240}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.IntVar(&c.Width, "w", c.Width, "world width in cells")
	fs.IntVar(&c.Height, "h", c.Height, "world height in cells")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for world generation")
	fs.IntVar(&c.HUDWidth, "hud", c.HUDWidth, "parameter panel width in pixels (0 hides it)")
}
