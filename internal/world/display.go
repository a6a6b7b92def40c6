package world

import "image/color"

// Colors exposes the display buffer, one RGBA value per grid position.
func (w *World) Colors() []color.RGBA { return w.display }

// FieldView reports whether the display shows field directions.
func (w *World) FieldView() bool { return w.fieldView }

// SetFieldView toggles between base cell colors and the field direction
// view, repainting the display buffer when the mode changes.
func (w *World) SetFieldView(on bool) {
	if w.fieldView == on {
		return
	}
	w.fieldView = on
	w.rebuildDisplay()
}

// rebuildDisplay repaints the display buffer. The field view packs each
// cell's normalized field direction into the red and green channels around a
// mid-gray origin; cells with zero field render as that gray.
func (w *World) rebuildDisplay() {
	total := len(w.display)
	for i := 0; i < total; i++ {
		if i >= len(w.cells) {
			w.display[i] = color.RGBA{}
			continue
		}
		cell := &w.cells[i]
		if w.fieldView && w.maxField > 0 {
			dir := cell.Field.Normalized()
			w.display[i] = color.RGBA{
				R: channel(0.5 + dir.X/2),
				G: channel(0.5 + dir.Y/2),
				B: 0,
				A: 255,
			}
			continue
		}
		w.display[i] = color.RGBA{R: cell.Color.R, G: cell.Color.G, B: cell.Color.B, A: cell.Color.A}
	}
}

func channel(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
