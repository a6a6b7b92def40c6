package world

import (
	"strconv"

	"tiledworld/internal/core"
)

// Parameters reports the current tunables for HUD presentation.
func (w *World) Parameters() core.ParameterSnapshot {
	params := w.cfg.Params
	groups := []core.ParameterGroup{
		{
			Name: "World",
			Params: []core.Parameter{
				intParam("w", "Width", w.cfg.Width),
				intParam("h", "Height", w.cfg.Height),
				int64Param("seed", "Seed", w.cfg.Seed),
			},
		},
		{
			Name: "Palette",
			Params: []core.Parameter{
				intParam("free_weight", "Free weight", params.FreeWeight),
				intParam("obstructed_weight", "Obstructed weight", params.ObstructedWeight),
				intParam("undesirable_weight", "Undesirable weight", params.UndesirableWeight),
				intParam("desirable_weight", "Desirable weight", params.DesirableWeight),
			},
		},
		{
			Name: "Spatial Index",
			Params: []core.Parameter{
				intParam("split_threshold", "Split threshold", params.SplitThreshold),
				floatParam("min_node_size", "Min node size", params.MinNodeSize),
			},
		},
	}
	return core.ParameterSnapshot{Groups: groups}
}

// ParameterControls lists the HUD-adjustable tunables.
func (w *World) ParameterControls() []core.ParameterControl {
	controls := []core.ParameterControl{}
	if !w.custom {
		controls = append(controls,
			intControl("free_weight", "Free weight", 1, 0, 0, true, false),
			intControl("obstructed_weight", "Obstructed weight", 1, 0, 0, true, false),
			intControl("undesirable_weight", "Undesirable weight", 1, 0, 0, true, false),
			intControl("desirable_weight", "Desirable weight", 1, 0, 0, true, false),
		)
	}
	controls = append(controls,
		intControl("split_threshold", "Split threshold", 1, 1, 64, true, true),
		core.ParameterControl{
			Key: "min_node_size", Label: "Min node size", Type: core.ParamTypeFloat,
			Step: 0.5, Min: 0.5, Max: 32, HasMin: true, HasMax: true,
		},
	)
	return controls
}

// SetIntParameter updates an integer tunable. Palette weights apply on the
// next Reset; spatial index policy changes re-run the field pass
// immediately.
func (w *World) SetIntParameter(key string, value int) bool {
	switch key {
	case "free_weight", "obstructed_weight", "undesirable_weight", "desirable_weight":
		if w.custom || value < 0 {
			return false
		}
		switch key {
		case "free_weight":
			w.cfg.Params.FreeWeight = value
		case "obstructed_weight":
			w.cfg.Params.ObstructedWeight = value
		case "undesirable_weight":
			w.cfg.Params.UndesirableWeight = value
		case "desirable_weight":
			w.cfg.Params.DesirableWeight = value
		}
		return true
	case "split_threshold":
		if value < 1 {
			value = 1
		}
		if value > 64 {
			value = 64
		}
		w.cfg.Params.SplitThreshold = value
		w.recalculate()
		return true
	default:
		return false
	}
}

// SetFloatParameter updates a floating point tunable.
func (w *World) SetFloatParameter(key string, value float64) bool {
	switch key {
	case "min_node_size":
		if value < 0.5 {
			value = 0.5
		}
		if value > 32 {
			value = 32
		}
		w.cfg.Params.MinNodeSize = value
		w.recalculate()
		return true
	default:
		return false
	}
}

func (w *World) recalculate() {
	if len(w.cells) == 0 {
		return
	}
	w.CalculateField()
	w.rebuildDisplay()
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.Itoa(value),
	}
}

func int64Param(key, label string, value int64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.FormatInt(value, 10),
	}
}

func floatParam(key, label string, value float64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeFloat,
		Value: strconv.FormatFloat(value, 'f', -1, 64),
	}
}

func intControl(key, label string, step, min, max float64, hasMin, hasMax bool) core.ParameterControl {
	return core.ParameterControl{
		Key:    key,
		Label:  label,
		Type:   core.ParamTypeInt,
		Step:   step,
		Min:    min,
		Max:    max,
		HasMin: hasMin,
		HasMax: hasMax,
	}
}
