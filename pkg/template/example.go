// example.go — Starter template document for the init command.
package template

// ExampleJSON returns a complete sample template.json demonstrating every
// block the layout engine understands.
func ExampleJSON() string {
	return `{
  "meta": { "width": 800, "height": 400 },
  "background": { "defaultColor": "#1e1e1e" },
  "sidebar": {
    "enabled": true,
    "x": 20, "y": 20, "width": 200, "height": 360,
    "radius": 16, "color": "#16213e", "padding": 20,
    "items": [
      { "type": "text", "text": "PROFILE", "color": "#00ffcc", "font": { "size": 22, "weight": "bold" }, "lineHeight": 34 },
      { "type": "text", "text": "member card", "color": "#888888", "font": { "size": 16 }, "lineHeight": 26 }
    ]
  },
  "avatar": {
    "enabled": true,
    "x": 250, "y": 40, "size": 120,
    "shape": "circle",
    "border": { "width": 6, "color": "#00ffcc" }
  },
  "text": {
    "username": { "enabled": true, "font": { "size": 36, "weight": "bold" }, "color": "#ffffff", "x": 400, "y": 90 },
    "tag":      { "enabled": true, "font": { "size": 20 }, "color": "#aaaaaa", "x": 400, "y": 120, "prefix": "@" },
    "bio":      { "enabled": true, "font": { "size": 18 }, "color": "#cccccc", "x": 400, "y": 160, "maxWidth": 360, "maxLines": 3 },
    "level":    { "enabled": true, "font": { "size": 24, "weight": "bold" }, "color": "#ffd700", "x": 250, "y": 220 },
    "xp":       { "enabled": true, "font": { "size": 16 }, "color": "#bbbbbb", "x": 250, "y": 330, "showXPText": true }
  },
  "xpBar": {
    "enabled": true,
    "x": 250, "y": 280, "width": 500, "height": 28, "radius": 14,
    "background": "#2a2a2a", "fill": "#00ffcc", "borderColor": "#444444"
  },
  "coins": {
    "enabled": true,
    "x": 250, "y": 350, "size": 28,
    "color": "#ffd700",
    "font": { "size": 24, "weight": "bold" },
    "icon": "coin.png"
  }
}`
}
