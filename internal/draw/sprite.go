package draw

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/tomz197/spacesurvivor/internal/object"
	"github.com/tomz197/spacesurvivor/internal/physics"
)

// Sprite is how an image key looks in the terminal. A nil Shape fills the
// whole rectangle; otherwise Shape is an outline in the unit square that is
// stretched over the entity's rectangle.
type Sprite struct {
	Glyph rune
	Color lipgloss.Color
	Shape []Point
}

// Sprites resolves the engine's image keys.
var Sprites = map[string]Sprite{
	object.ImagePlayer: {
		Glyph: '█',
		Color: lipgloss.Color("42"),
		Shape: []Point{{0.5, 0}, {1, 1}, {0, 1}},
	},
	object.ImageOpponent: {
		Glyph: '▓',
		Color: lipgloss.Color("203"),
		Shape: []Point{{0, 0}, {1, 0}, {0.5, 1}},
	},
	object.ImageBoss: {
		Glyph: '█',
		Color: lipgloss.Color("171"),
		Shape: []Point{{0.25, 0}, {0.75, 0}, {1, 0.5}, {0.75, 1}, {0.25, 1}, {0, 0.5}},
	},
	object.ImageDead: {
		Glyph: '*',
		Color: lipgloss.Color("220"),
		Shape: []Point{
			{0.5, 0}, {0.62, 0.38}, {1, 0.38}, {0.69, 0.62}, {0.81, 1},
			{0.5, 0.76}, {0.19, 1}, {0.31, 0.62}, {0, 0.38}, {0.38, 0.38},
		},
	},
	object.ImagePlayerShot: {Glyph: '|', Color: lipgloss.Color("51")},
	object.ImageEnemyShot:  {Glyph: '!', Color: lipgloss.Color("208")},
}

// unknownSprite draws image keys missing from Sprites.
var unknownSprite = Sprite{Glyph: '?', Color: lipgloss.Color("250")}

// DrawSprite draws the sprite for key over r. Shapes too small to light any
// cell fall back to a filled rectangle, so nothing on the field disappears.
func (c *Canvas) DrawSprite(key string, r physics.Rect) {
	s, ok := Sprites[key]
	if !ok {
		s = unknownSprite
	}
	if s.Shape != nil && c.FillPolygon(c.shapeIn(s.Shape, r), s.Glyph, key) {
		return
	}
	c.FillRect(r, s.Glyph, key)
}

// Palette holds the pre-rendered, coloured glyph of every sprite.
type Palette struct {
	glyphs map[string]string
	style  lipgloss.Style
}

// NewPalette renders every sprite glyph with r, which decides the colour
// profile of the output.
func NewPalette(r *lipgloss.Renderer) *Palette {
	p := &Palette{
		glyphs: make(map[string]string, len(Sprites)),
		style:  r.NewStyle(),
	}
	for key, s := range Sprites {
		p.glyphs[key] = r.NewStyle().Foreground(s.Color).Render(string(s.Glyph))
	}
	return p
}

// Glyph returns the styled glyph for a sprite key, rendering unknown
// combinations on the fly.
func (p *Palette) Glyph(sprite string, glyph rune) string {
	if s, ok := Sprites[sprite]; ok && s.Glyph == glyph {
		return p.glyphs[sprite]
	}
	return p.style.Foreground(unknownSprite.Color).Render(string(glyph))
}
