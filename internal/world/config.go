package world

import "strconv"

// Params holds the tunable weights and spatial index policy for the world.
type Params struct {
	FreeWeight        int
	ObstructedWeight  int
	UndesirableWeight int
	DesirableWeight   int

	SplitThreshold int
	MinNodeSize    float64
}

// Config controls the tiled world dimensions and generation.
type Config struct {
	Width  int
	Height int

	Seed int64

	Params Params
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Width:  120,
		Height: 120,
		Seed:   1337,
		Params: Params{
			FreeWeight:        85,
			ObstructedWeight:  10,
			UndesirableWeight: 4,
			DesirableWeight:   1,
			SplitThreshold:    4,
			MinNodeSize:       1,
		},
	}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Height = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["free_weight"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Params.FreeWeight = parsed
		}
	}
	if v, ok := cfg["obstructed_weight"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Params.ObstructedWeight = parsed
		}
	}
	if v, ok := cfg["undesirable_weight"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Params.UndesirableWeight = parsed
		}
	}
	if v, ok := cfg["desirable_weight"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Params.DesirableWeight = parsed
		}
	}
	if v, ok := cfg["split_threshold"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Params.SplitThreshold = parsed
		}
	}
	if v, ok := cfg["min_node_size"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
			c.Params.MinNodeSize = parsed
		}
	}
	return c
}
