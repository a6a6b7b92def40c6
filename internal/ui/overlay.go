//go:build ebiten

package ui

import (
	"image/color"
	"math"

	"tiledworld/internal/core"
	"tiledworld/internal/geom"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type fieldProvider interface {
	FieldVectorAt(x, y float64) (float64, float64)
	MaxFieldMagnitude() float64
}

type leafProvider interface {
	VisitLeaves(fn func(box geom.AABB, depth, count int))
}

// Overlay draws optional debugging visuals on top of the base world view.
type Overlay struct {
	view       View
	scale      int
	showField  bool
	showLeaves bool

	pixel      *ebiten.Image
	samples    []fieldSample
	cacheW     int
	cacheH     int
	cacheScale int
	pixelSpan  float64
}

type fieldSample struct {
	cx float64
	cy float64
	sx float64
	sy float64
}

// NewOverlay constructs a new overlay instance.
func NewOverlay(view View, scale int) *Overlay {
	o := &Overlay{view: view, scale: scale}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Update toggles the overlay layers from keyboard input.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit1) {
		o.showField = !o.showField
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit2) {
		o.showLeaves = !o.showLeaves
	}
}

// Draw renders the enabled overlay layers onto the provided screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	size := o.view.Size()
	if size.W <= 0 || size.H <= 0 {
		return
	}
	scale := o.scale
	if scale <= 0 {
		scale = 1
	}

	if o.showLeaves {
		if provider, ok := o.view.(leafProvider); ok {
			o.drawLeafBounds(screen, provider, scale)
		}
	}
	if o.showField {
		if provider, ok := o.view.(fieldProvider); ok {
			o.drawFieldVectors(screen, provider, size, scale)
		}
	}
}

// drawLeafBounds outlines every leaf of the spatial index, brighter at
// greater depth so dense regions stand out.
func (o *Overlay) drawLeafBounds(screen *ebiten.Image, provider leafProvider, scale int) {
	if o.pixel == nil {
		return
	}
	provider.VisitLeaves(func(box geom.AABB, depth, count int) {
		t := clamp01(float64(depth) / 7)
		col := color.RGBA{
			R: uint8(90 + 110*t),
			G: uint8(90 + 60*t),
			B: uint8(140 + 100*t),
			A: uint8(110 + 100*t),
		}
		x1 := box.Min.X * float64(scale)
		y1 := box.Min.Y * float64(scale)
		x2 := box.Max.X * float64(scale)
		y2 := box.Max.Y * float64(scale)
		o.drawLine(screen, x1, y1, x2, y1, 1, col)
		o.drawLine(screen, x2, y1, x2, y2, 1, col)
		o.drawLine(screen, x2, y2, x1, y2, 1, col)
		o.drawLine(screen, x1, y2, x1, y1, 1, col)
	})
}

func (o *Overlay) drawFieldVectors(screen *ebiten.Image, provider fieldProvider, size core.Size, scale int) {
	if o.pixel == nil {
		return
	}
	if !o.ensureSamples(size, scale) {
		return
	}

	const (
		headAngle    = math.Pi / 6
		calmDotScale = 0.18
		minThickness = 0.65
		maxThickness = 1.05
	)

	maxMag := provider.MaxFieldMagnitude()
	baseSpan := o.pixelSpan
	if baseSpan <= 0 {
		baseSpan = float64(scale) * 4
	}
	minLength := baseSpan * 0.35
	maxLength := baseSpan * 0.7
	if maxLength < minLength {
		maxLength = minLength
	}

	calmDotSize := baseSpan * calmDotScale
	if calmDotSize < float64(scale)*0.75 {
		calmDotSize = float64(scale) * 0.75
	}

	for _, sample := range o.samples {
		vx, vy := provider.FieldVectorAt(sample.cx, sample.cy)
		mag := math.Hypot(vx, vy)
		if mag == 0 || maxMag == 0 {
			o.drawPoint(screen, sample.sx, sample.sy, calmDotSize, color.RGBA{R: 90, G: 130, B: 170, A: 120})
			continue
		}

		nx := vx / mag
		ny := vy / mag
		normalized := clamp01(mag / maxMag)
		length := minLength + (maxLength-minLength)*math.Sqrt(normalized)
		headLength := math.Min(length*0.3, float64(scale)*4.5)
		tailLength := length * 0.4
		tipX := sample.sx + nx*(length-tailLength)
		tipY := sample.sy + ny*(length-tailLength)
		tailX := sample.sx - nx*tailLength
		tailY := sample.sy - ny*tailLength
		bodyEndX := tipX - nx*headLength
		bodyEndY := tipY - ny*headLength

		thickness := float64(scale) * (minThickness + (maxThickness-minThickness)*normalized)
		if thickness < 1 {
			thickness = 1
		}

		col := interpolateColor(normalized)
		o.drawLine(screen, tailX, tailY, bodyEndX, bodyEndY, thickness, col)

		angle := math.Atan2(ny, nx)
		leftX := tipX - math.Cos(angle+headAngle)*headLength
		leftY := tipY - math.Sin(angle+headAngle)*headLength
		rightX := tipX - math.Cos(angle-headAngle)*headLength
		rightY := tipY - math.Sin(angle-headAngle)*headLength
		o.drawLine(screen, tipX, tipY, leftX, leftY, thickness*0.85, col)
		o.drawLine(screen, tipX, tipY, rightX, rightY, thickness*0.85, col)
	}
}

func (o *Overlay) ensureSamples(size core.Size, scale int) bool {
	if size.W <= 0 || size.H <= 0 {
		return false
	}
	if scale <= 0 {
		scale = 1
	}
	if o.cacheW == size.W && o.cacheH == size.H && o.cacheScale == scale && len(o.samples) > 0 {
		return true
	}

	const (
		targetSamples = 360.0
		minSpacing    = 4
		maxSpacing    = 20
	)

	area := float64(size.W * size.H)
	spacing := int(math.Sqrt(area / targetSamples))
	if spacing < minSpacing {
		spacing = minSpacing
	}
	if spacing > maxSpacing {
		spacing = maxSpacing
	}

	countX := (size.W + spacing - 1) / spacing
	if countX <= 0 {
		countX = 1
	}
	countY := (size.H + spacing - 1) / spacing
	if countY <= 0 {
		countY = 1
	}

	totalSpanX := (countX - 1) * spacing
	totalSpanY := (countY - 1) * spacing
	startX := (size.W - 1 - totalSpanX) / 2
	if startX < 0 {
		startX = 0
	}
	startY := (size.H - 1 - totalSpanY) / 2
	if startY < 0 {
		startY = 0
	}

	o.samples = o.samples[:0]
	for yi := 0; yi < countY; yi++ {
		cellY := startY + yi*spacing
		if cellY >= size.H {
			cellY = size.H - 1
		}
		cy := float64(cellY) + 0.5
		for xi := 0; xi < countX; xi++ {
			cellX := startX + xi*spacing
			if cellX >= size.W {
				cellX = size.W - 1
			}
			cx := float64(cellX) + 0.5
			sx := cx * float64(scale)
			sy := cy * float64(scale)
			o.samples = append(o.samples, fieldSample{cx: cx, cy: cy, sx: sx, sy: sy})
		}
	}

	o.cacheW = size.W
	o.cacheH = size.H
	o.cacheScale = scale
	o.pixelSpan = float64(spacing) * float64(scale)
	return len(o.samples) > 0
}

func (o *Overlay) drawPoint(screen *ebiten.Image, x, y, size float64, col color.RGBA) {
	if o.pixel == nil || size <= 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(size, size)
	op.GeoM.Translate(x-size*0.5, y-size*0.5)
	op.ColorM.Scale(float64(col.R)/255.0, float64(col.G)/255.0, float64(col.B)/255.0, float64(col.A)/255.0)
	screen.DrawImage(o.pixel, op)
}

func (o *Overlay) drawLine(screen *ebiten.Image, x1, y1, x2, y2, thickness float64, col color.RGBA) {
	if o.pixel == nil || thickness <= 0 {
		return
	}
	dx := x2 - x1
	dy := y2 - y1
	length := math.Hypot(dx, dy)
	if length <= 1e-4 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(length, thickness)
	op.GeoM.Translate(0, -thickness/2)
	op.GeoM.Rotate(math.Atan2(dy, dx))
	op.GeoM.Translate(x1, y1)
	op.ColorM.Scale(float64(col.R)/255.0, float64(col.G)/255.0, float64(col.B)/255.0, float64(col.A)/255.0)
	screen.DrawImage(o.pixel, op)
}

func interpolateColor(t float64) color.RGBA {
	t = clamp01(t)
	r := uint8(math.Round(80 + 150*t))
	g := uint8(math.Round(170 + 40*t))
	b := uint8(math.Round(230 - 60*t))
	a := uint8(math.Round(150 + 90*t))
	return color.RGBA{R: r, G: g, B: b, A: a}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
