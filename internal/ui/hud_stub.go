//go:build !ebiten

package ui

// HUD is inert in the headless build.
type HUD struct{}

// NewHUD returns nil in the headless build.
func NewHUD(NamedView, int) *HUD { return nil }

// SetStatus is a no-op in the headless build.
func (h *HUD) SetStatus(string) {}
