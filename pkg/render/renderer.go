// Package render executes draw-operation lists against a raster surface
// and encodes the result. Single forward pass: operations run strictly in
// input order, later layers occlude earlier ones.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"

	"github.com/fogleman/gg"
	xdraw "golang.org/x/image/draw"

	"github.com/aurautils/perfilcard/pkg/layout"
)

// ErrEncode wraps PNG encoding failures, the only error the renderer's
// encode stage can raise.
var ErrEncode = errors.New("png encode failed")

// Renderer rasterizes operation lists.
type Renderer struct {
	fonts *FontManager
}

// NewRenderer creates a renderer drawing text with the given fonts.
func NewRenderer(fonts *FontManager) *Renderer {
	return &Renderer{fonts: fonts}
}

// Render executes ops on a fresh w×h surface.
func (r *Renderer) Render(ops []layout.Op, w, h int) (image.Image, error) {
	dc := gg.NewContext(w, h)

	for _, op := range ops {
		switch v := op.(type) {
		case layout.FillRect:
			dc.SetColor(v.Color)
			if v.Radius > 0 {
				dc.DrawRoundedRectangle(v.X, v.Y, v.W, v.H, v.Radius)
			} else {
				dc.DrawRectangle(v.X, v.Y, v.W, v.H)
			}
			dc.Fill()

		case layout.StrokeRect:
			dc.SetColor(v.Color)
			dc.SetLineWidth(v.LineWidth)
			if v.Radius > 0 {
				dc.DrawRoundedRectangle(v.X, v.Y, v.W, v.H, v.Radius)
			} else {
				dc.DrawRectangle(v.X, v.Y, v.W, v.H)
			}
			dc.Stroke()

		case layout.Blit:
			r.blit(dc, v)

		case layout.Text:
			if err := r.text(dc, v.Value, v.X, v.Y, v.Size, v.Weight, v.Color); err != nil {
				return nil, err
			}

		case layout.ProgressBar:
			if err := r.progressBar(dc, v); err != nil {
				return nil, err
			}

		default:
			return nil, fmt.Errorf("unknown draw operation %T", op)
		}
	}

	return dc.Image(), nil
}

// blit scales the source into the destination rect, under an optional
// circle or rounded-rect clip.
func (r *Renderer) blit(dc *gg.Context, v layout.Blit) {
	if v.Src == nil || v.W <= 0 || v.H <= 0 {
		return
	}

	dc.Push()
	if v.Clip != nil {
		switch v.Clip.Shape {
		case layout.ShapeCircle:
			dc.DrawCircle(v.X+v.W/2, v.Y+v.H/2, v.W/2)
		case layout.ShapeRounded:
			dc.DrawRoundedRectangle(v.X, v.Y, v.W, v.H, v.Clip.Radius)
		}
		dc.Clip()
	}
	dc.DrawImage(scaleTo(v.Src, int(v.W), int(v.H)), int(v.X), int(v.Y))
	dc.Pop()
}

func (r *Renderer) text(dc *gg.Context, s string, x, y, size float64, weight string, c color.RGBA) error {
	face, err := r.fonts.Face(size, weight)
	if err != nil {
		return err
	}
	dc.SetFontFace(face)
	dc.SetColor(c)
	dc.DrawString(s, x, y)
	return nil
}

// progressBar draws track, fill clipped to the track shape, border, and
// the optional label below the bar.
func (r *Renderer) progressBar(dc *gg.Context, v layout.ProgressBar) error {
	dc.SetColor(v.Background)
	dc.DrawRoundedRectangle(v.X, v.Y, v.W, v.H, v.Radius)
	dc.Fill()

	if v.Fraction > 0 {
		dc.Push()
		dc.DrawRoundedRectangle(v.X, v.Y, v.W, v.H, v.Radius)
		dc.Clip()
		dc.SetColor(v.Fill)
		dc.DrawRectangle(v.X, v.Y, v.W*v.Fraction, v.H)
		dc.Fill()
		dc.Pop()
	}

	dc.SetColor(v.Border)
	dc.SetLineWidth(2)
	dc.DrawRoundedRectangle(v.X, v.Y, v.W, v.H, v.Radius)
	dc.Stroke()

	if v.Label != "" {
		return r.text(dc, v.Label, v.X, v.Y+v.H+v.LabelSize+4, v.LabelSize, "", v.LabelColor)
	}
	return nil
}

// scaleTo resamples src to w×h. Bilinear keeps avatar downscales smooth
// without the cost of CatmullRom on large backgrounds.
func scaleTo(src image.Image, w, h int) image.Image {
	b := src.Bounds()
	if b.Dx() == w && b.Dy() == h {
		return src
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, b, xdraw.Over, nil)
	return dst
}

// EncodePNG serializes img to a PNG byte buffer.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncode, err)
	}
	return buf.Bytes(), nil
}
