//go:build !ebiten

package ui

// Overlay is inert in the headless build.
type Overlay struct{}

// NewOverlay constructs a stub overlay.
func NewOverlay(View, int) *Overlay { return &Overlay{} }

// Update is a no-op in the headless build.
func (o *Overlay) Update() {}

// Draw is a no-op placeholder to satisfy the interface shape.
func (o *Overlay) Draw(any) {}
