// Package template provides the JSON document model for profile-card
// layouts: canvas geometry, background, sidebar, avatar, text slots and
// the coins block.
package template

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// ── Document types ──

// Document is the top-level structure of a template.json file.
// A Document is immutable once loaded and cached.
type Document struct {
	Meta       Meta                `json:"meta"`
	Background Background          `json:"background"`
	Sidebar    *Sidebar            `json:"sidebar,omitempty"`
	Avatar     *Avatar             `json:"avatar,omitempty"`
	Text       map[string]TextSlot `json:"text"`
	XPBar      *XPBar              `json:"xpBar,omitempty"`
	Coins      *Coins              `json:"coins,omitempty"`
}

// Meta holds canvas dimensions.
type Meta struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Default canvas size when meta is absent or non-positive.
const (
	DefaultWidth  = 800
	DefaultHeight = 400
)

// CanvasSize returns the declared dimensions, defaulting to 800×400.
func (d *Document) CanvasSize() (w, h int) {
	w, h = d.Meta.Width, d.Meta.Height
	if w <= 0 {
		w = DefaultWidth
	}
	if h <= 0 {
		h = DefaultHeight
	}
	return w, h
}

// Background holds the fill used when the request supplies no override.
type Background struct {
	DefaultColor string `json:"defaultColor"`
}

// Font selects a face for a text element.
type Font struct {
	Size   float64 `json:"size" mapstructure:"size"`
	Weight string  `json:"weight,omitempty" mapstructure:"weight"` // "" / "regular" / "bold"
}

// Sidebar is an optional side panel with stacked text items.
// Items are declared as raw maps and decoded per kind; see DecodedItems.
type Sidebar struct {
	Enabled bool             `json:"enabled"`
	X       int              `json:"x"`
	Y       int              `json:"y"`
	Width   int              `json:"width"`
	Height  int              `json:"height"`
	Radius  int              `json:"radius"`
	Color   string           `json:"color"`
	Padding int              `json:"padding"`
	Items   []map[string]any `json:"items"`
}

// Item is a sidebar entry. The set of kinds is closed: only text items
// are defined today, other kinds are reserved and skipped.
type Item interface {
	itemKind() string
}

// TextItem is a single line of styled sidebar text.
type TextItem struct {
	Text       string `json:"text" mapstructure:"text"`
	Color      string `json:"color" mapstructure:"color"`
	Font       Font   `json:"font" mapstructure:"font"`
	YOffset    int    `json:"yOffset" mapstructure:"yOffset"`
	LineHeight int    `json:"lineHeight" mapstructure:"lineHeight"`
}

func (TextItem) itemKind() string { return "text" }

// DecodedItems decodes the raw item maps into typed items, preserving
// document order. Unknown kinds are dropped; a kind that fails to decode
// is reported in warnings but never aborts the load.
func (s *Sidebar) DecodedItems() (items []Item, warnings []string) {
	for i, raw := range s.Items {
		kind, _ := raw["type"].(string)
		switch kind {
		case "text":
			var item TextItem
			if err := mapstructure.WeakDecode(raw, &item); err != nil {
				warnings = append(warnings, fmt.Sprintf("sidebar item %d: %v", i, err))
				continue
			}
			items = append(items, item)
		default:
			warnings = append(warnings, fmt.Sprintf("sidebar item %d: unknown kind %q — skipped", i, kind))
		}
	}
	return items, warnings
}

// Avatar geometry. Shape is "circle" or "rounded".
type Avatar struct {
	Enabled bool    `json:"enabled"`
	X       int     `json:"x"`
	Y       int     `json:"y"`
	Size    int     `json:"size"`
	Shape   string  `json:"shape"`
	Radius  int     `json:"radius"`
	Border  *Border `json:"border,omitempty"`
}

// Border is an optional stroke around the avatar clip shape.
type Border struct {
	Width int    `json:"width"`
	Color string `json:"color"`
}

// TextSlot is a named, independently positioned text element.
type TextSlot struct {
	Enabled    bool   `json:"enabled"`
	Font       Font   `json:"font"`
	Color      string `json:"color"`
	X          int    `json:"x"`
	Y          int    `json:"y"`
	Prefix     string `json:"prefix,omitempty"`
	MaxWidth   int    `json:"maxWidth,omitempty"`
	MaxLines   int    `json:"maxLines,omitempty"`
	ShowXPText bool   `json:"showXPText,omitempty"`
}

// XPBar is the optional level-progress bar block.
type XPBar struct {
	Enabled     bool   `json:"enabled"`
	X           int    `json:"x"`
	Y           int    `json:"y"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Radius      int    `json:"radius"`
	Background  string `json:"background"`
	Fill        string `json:"fill"`
	BorderColor string `json:"borderColor"`
}

// Coins is the optional coin counter block.
type Coins struct {
	Enabled bool   `json:"enabled"`
	X       int    `json:"x"`
	Y       int    `json:"y"`
	Size    int    `json:"size"`
	Color   string `json:"color"`
	Font    Font   `json:"font"`
	Icon    string `json:"icon,omitempty"`
}

// ── Slot vocabulary ──

// Slot names the layout engine binds to values. Unknown names parse fine
// but no renderer produces a value for them.
const (
	SlotUsername = "username"
	SlotTag      = "tag"
	SlotBio      = "bio"
	SlotLevel    = "level"
	SlotXP       = "xp"
	SlotCoins    = "coins"
)

// SlotOrder is the deterministic draw order for text slots.
var SlotOrder = []string{SlotUsername, SlotTag, SlotBio, SlotLevel, SlotXP, SlotCoins}

// KnownSlot reports whether name is part of the bound vocabulary.
func KnownSlot(name string) bool {
	for _, s := range SlotOrder {
		if s == name {
			return true
		}
	}
	return false
}
