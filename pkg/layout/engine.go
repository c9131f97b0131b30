// engine.go — Builds the ordered draw-operation list for one card.
//
// Layering order is fixed: background → template overlay → sidebar →
// avatar → text slots → XP bar → coins. Optional layers degrade to a
// no-op on resolution failure; the avatar and an explicit background
// override are the only references whose failure aborts the build.
package layout

import (
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strconv"

	"github.com/aurautils/perfilcard/pkg/resource"
	"github.com/aurautils/perfilcard/pkg/template"
)

// Terminal build failures, mapped to error codes at the HTTP boundary.
var (
	ErrBackground = errors.New("invalid or unloadable background")
	ErrAvatar     = errors.New("avatar not loadable")
)

// DefaultCoinGlyph is drawn when neither the request nor the template
// names a coin icon.
const DefaultCoinGlyph = "🪙"

// Request carries the dynamic values of one render call. It is consumed
// once by Build and discarded.
type Request struct {
	Username   string
	Avatar     string
	Bio        string
	Level      *int
	XP         *int
	MaxXP      *int
	Coins      *int
	CoinIcon   string
	Template   string
	Background string
	WantJSON   bool
}

// Engine merges template documents with request values.
type Engine struct {
	resolver *resource.Resolver
	measurer Measurer
}

// NewEngine creates an engine. The measurer supplies text metrics for
// word wrapping.
func NewEngine(resolver *resource.Resolver, m Measurer) *Engine {
	return &Engine{resolver: resolver, measurer: m}
}

// Build produces the draw list for doc and req. assetDir is the template's
// local asset directory ("" when none) used for the overlay image and
// relative icon references.
func (e *Engine) Build(doc *template.Document, req *Request, assetDir string) ([]Op, error) {
	w, h := doc.CanvasSize()
	fw, fh := float64(w), float64(h)

	var ops []Op

	// Background layer.
	bg, err := e.backgroundOps(doc, req, fw, fh)
	if err != nil {
		return nil, err
	}
	ops = append(ops, bg...)

	// Template overlay. Absence or decode failure is not an error.
	if assetDir != "" {
		if res, err := e.resolver.Resolve(filepath.Join(assetDir, template.OverlayFile), ""); err == nil && !res.IsGlyph() {
			ops = append(ops, Blit{Src: res.Image, X: 0, Y: 0, W: fw, H: fh})
		}
	}

	// Sidebar.
	if sb := doc.Sidebar; sb != nil && sb.Enabled {
		ops = append(ops, e.sidebarOps(*sb)...)
	}

	// Avatar. The one reference whose failure is always fatal.
	if av := doc.Avatar; av != nil && av.Enabled {
		avOps, err := e.avatarOps(*av, req.Avatar)
		if err != nil {
			return nil, err
		}
		ops = append(ops, avOps...)
	}

	// Text slots, in fixed vocabulary order.
	for _, name := range template.SlotOrder {
		slot, ok := doc.Text[name]
		if !ok || !slot.Enabled {
			continue
		}
		ops = append(ops, e.slotOps(name, slot, req)...)
	}

	// XP bar: requires level, xp and maxXP.
	if bar := doc.XPBar; bar != nil && bar.Enabled &&
		req.Level != nil && req.XP != nil && req.MaxXP != nil {
		ops = append(ops, e.barOps(*bar, doc, req, w))
	}

	// Coins. Icon failure falls back to a text run, never an error.
	if c := doc.Coins; c != nil && c.Enabled && req.Coins != nil {
		ops = append(ops, e.coinOps(*c, req, assetDir)...)
	}

	return ops, nil
}

// backgroundOps resolves the background override or the document default.
func (e *Engine) backgroundOps(doc *template.Document, req *Request, fw, fh float64) ([]Op, error) {
	if req.Background != "" {
		if resource.IsColor(req.Background) {
			c, _ := resource.ParseColor(req.Background)
			return []Op{FillRect{W: fw, H: fh, Color: c}}, nil
		}
		if resource.Classify(req.Background) == resource.KindURL {
			res, err := e.resolver.Resolve(req.Background, "")
			if err != nil || res.IsGlyph() {
				return nil, fmt.Errorf("%w: %q", ErrBackground, req.Background)
			}
			return []Op{Blit{Src: res.Image, W: fw, H: fh}}, nil
		}
		return nil, fmt.Errorf("%w: %q", ErrBackground, req.Background)
	}

	c := resource.MustColor(doc.Background.DefaultColor, fallbackCanvas)
	return []Op{FillRect{W: fw, H: fh, Color: c}}, nil
}

// sidebarOps draws the panel then stacks text items top to bottom,
// advancing a running baseline by each item's line height.
func (e *Engine) sidebarOps(sb template.Sidebar) []Op {
	sb = sidebarDefaults(sb)

	ops := []Op{FillRect{
		X: float64(sb.X), Y: float64(sb.Y),
		W: float64(sb.Width), H: float64(sb.Height),
		Radius: float64(sb.Radius),
		Color:  resource.MustColor(sb.Color, fallbackPanel),
	}}

	items, warnings := sb.DecodedItems()
	for _, warning := range warnings {
		log.Printf("sidebar: %s", warning)
	}

	baseY := sb.Y + sb.Padding
	for _, item := range items {
		text, ok := item.(template.TextItem)
		if !ok {
			continue
		}
		text = itemDefaults(text)
		baseY += text.LineHeight
		if text.Text == "" {
			continue
		}
		ops = append(ops, Text{
			Value:  text.Text,
			X:      float64(sb.X + sb.Padding),
			Y:      float64(baseY + text.YOffset),
			Size:   text.Font.Size,
			Weight: text.Font.Weight,
			Color:  resource.MustColor(text.Color, fallbackText),
		})
	}
	return ops
}

// avatarOps resolves the avatar, clips it to the configured shape and
// strokes the optional border on the outer geometry so the stroke hugs
// the clip edge.
func (e *Engine) avatarOps(av template.Avatar, ref string) ([]Op, error) {
	av = avatarDefaults(av)

	res, err := e.resolver.Resolve(ref, "")
	if err != nil || res.IsGlyph() {
		return nil, fmt.Errorf("%w: %q", ErrAvatar, ref)
	}

	size := float64(av.Size)
	clip := &Clip{Shape: ShapeCircle}
	if av.Shape == "rounded" {
		clip = &Clip{Shape: ShapeRounded, Radius: float64(av.Radius)}
	}

	ops := []Op{Blit{
		Src: res.Image,
		X:   float64(av.X), Y: float64(av.Y),
		W: size, H: size,
		Clip: clip,
	}}

	if b := av.Border; b != nil && b.Width > 0 {
		bw := float64(b.Width)
		stroke := StrokeRect{
			X: float64(av.X) - bw/2, Y: float64(av.Y) - bw/2,
			W: size + bw, H: size + bw,
			LineWidth: bw,
			Color:     resource.MustColor(b.Color, fallbackText),
		}
		if av.Shape == "rounded" {
			stroke.Radius = float64(av.Radius) + bw/2
		} else {
			stroke.Radius = (size + bw) / 2
		}
		ops = append(ops, stroke)
	}
	return ops, nil
}

// slotOps computes the slot's literal value and emits one Text op per
// wrapped line. Empty values suppress the draw entirely.
func (e *Engine) slotOps(name string, slot template.TextSlot, req *Request) []Op {
	slot = slotDefaults(slot)

	value := slotValue(name, slot, req)
	if value == "" {
		return nil
	}

	lines := []string{value}
	if slot.MaxWidth > 0 {
		lines = wrapText(value, slot.MaxWidth, slot.MaxLines, slot.Font.Size, slot.Font.Weight, e.measurer)
	}

	lineHeight := slot.Font.Size * 1.5
	c := resource.MustColor(slot.Color, fallbackText)

	ops := make([]Op, 0, len(lines))
	for i, line := range lines {
		ops = append(ops, Text{
			Value:  line,
			X:      float64(slot.X),
			Y:      float64(slot.Y) + float64(i)*lineHeight,
			Size:   slot.Font.Size,
			Weight: slot.Font.Weight,
			Color:  c,
		})
	}
	return ops
}

// slotValue is the fixed per-slot value rule. Unknown slot names yield ""
// and therefore draw nothing.
func slotValue(name string, slot template.TextSlot, req *Request) string {
	var base string
	switch name {
	case template.SlotUsername:
		base = req.Username
	case template.SlotTag:
		base = req.Username
	case template.SlotBio:
		base = req.Bio
	case template.SlotLevel:
		level := 0
		if req.Level != nil {
			level = *req.Level
		}
		base = "Lv " + strconv.Itoa(level)
	case template.SlotXP:
		if req.XP == nil || req.MaxXP == nil {
			return ""
		}
		base = strconv.Itoa(*req.XP) + "/" + strconv.Itoa(*req.MaxXP)
	case template.SlotCoins:
		if req.Coins == nil {
			return ""
		}
		base = strconv.Itoa(*req.Coins)
	default:
		return ""
	}
	if base == "" {
		return ""
	}
	return slot.Prefix + base
}

// Fraction is the XP bar fill ratio: clamp(xp/maxXP, 0, 1). A zero or
// negative maxXP yields 0 instead of dividing by zero.
func Fraction(xp, maxXP int) float64 {
	if maxXP < 1 {
		return 0
	}
	f := float64(xp) / float64(maxXP)
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

func (e *Engine) barOps(bar template.XPBar, doc *template.Document, req *Request, canvasW int) Op {
	bar = barDefaults(bar, canvasW)

	op := ProgressBar{
		X: float64(bar.X), Y: float64(bar.Y),
		W: float64(bar.Width), H: float64(bar.Height),
		Radius:     float64(bar.Radius),
		Fraction:   Fraction(*req.XP, *req.MaxXP),
		Background: resource.MustColor(bar.Background, fallbackPanel),
		Fill:       resource.MustColor(bar.Fill, fallbackFill),
		Border:     resource.MustColor(bar.BorderColor, fallbackBorder),
	}

	// Optional label below the bar, styled by the xp text slot.
	if slot, ok := doc.Text[template.SlotXP]; ok && slot.Enabled && slot.ShowXPText {
		slot = slotDefaults(slot)
		op.Label = strconv.Itoa(*req.XP) + "/" + strconv.Itoa(*req.MaxXP)
		op.LabelSize = slot.Font.Size
		op.LabelColor = resource.MustColor(slot.Color, fallbackText)
	}
	return op
}

// coinOps draws icon + value, or a single "{icon} {coins}" text run when
// the icon is a glyph or fails to resolve.
func (e *Engine) coinOps(c template.Coins, req *Request, assetDir string) []Op {
	c = coinsDefaults(c)

	iconRef := req.CoinIcon
	if iconRef == "" {
		iconRef = c.Icon
	}
	if iconRef == "" {
		iconRef = DefaultCoinGlyph
	}

	value := strconv.Itoa(*req.Coins)
	col := resource.MustColor(c.Color, fallbackText)
	size := float64(c.Size)

	if !resource.IsGlyph(iconRef) {
		res, err := e.resolver.Resolve(iconRef, assetDir)
		if err == nil && !res.IsGlyph() {
			return []Op{
				Blit{Src: res.Image, X: float64(c.X), Y: float64(c.Y), W: size, H: size},
				Text{
					Value: value,
					X:     float64(c.X) + size + defaultIconPad,
					Y:     float64(c.Y) + size*0.8,
					Size:  c.Font.Size, Weight: c.Font.Weight,
					Color: col,
				},
			}
		}
		log.Printf("coins: icon %q not loadable, falling back to text", iconRef)
	}

	return []Op{Text{
		Value: iconRef + " " + value,
		X:     float64(c.X),
		Y:     float64(c.Y) + size*0.8,
		Size:  c.Font.Size, Weight: c.Font.Weight,
		Color: col,
	}}
}
