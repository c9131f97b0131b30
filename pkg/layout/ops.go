// Package layout turns a template document plus per-request values into an
// ordered list of draw operations. Order is the compositing contract:
// later operations paint over earlier ones.
package layout

import (
	"image"
	"image/color"
)

// Op is one atomic compositing instruction. The set of variants is closed;
// the renderer consumes them strictly in slice order.
type Op interface {
	op()
}

// Shape selects the clip geometry of a Blit.
type Shape int

const (
	ShapeCircle Shape = iota
	ShapeRounded
)

// Clip restricts a Blit to a circle or rounded rectangle over its
// destination rect.
type Clip struct {
	Shape  Shape
	Radius float64 // rounded-rect corner radius; ignored for circles
}

// FillRect fills a rectangle, rounded when Radius > 0.
type FillRect struct {
	X, Y, W, H float64
	Radius     float64
	Color      color.RGBA
}

// StrokeRect strokes a rectangle outline, rounded when Radius > 0.
type StrokeRect struct {
	X, Y, W, H float64
	Radius     float64
	LineWidth  float64
	Color      color.RGBA
}

// Blit draws Src scaled into the destination rect, optionally clipped.
type Blit struct {
	Src        image.Image
	X, Y, W, H float64
	Clip       *Clip
}

// Text draws a single line of text with its baseline at (X, Y).
type Text struct {
	Value  string
	X, Y   float64
	Size   float64
	Weight string
	Color  color.RGBA
}

// ProgressBar is the composite bar operation: background track, fill of
// Width×Fraction, border over the full extent, optional label below.
type ProgressBar struct {
	X, Y, W, H float64
	Radius     float64
	Fraction   float64 // 0..1
	Background color.RGBA
	Fill       color.RGBA
	Border     color.RGBA
	Label      string
	LabelSize  float64
	LabelColor color.RGBA
}

func (FillRect) op()    {}
func (StrokeRect) op()  {}
func (Blit) op()        {}
func (Text) op()        {}
func (ProgressBar) op() {}
