package downpour

import (
	"fmt"
	"math"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/vovakirdan/downpour/internal/core"
	"github.com/vovakirdan/downpour/internal/games/downpour/sim"
)

// Glyphs.
const (
	BlockChar    = '▓'
	PlayerChar   = '█'
	ShieldChar   = '░'
	SplashChar   = '\''
	SplashLow    = '.'
	BarFullChar  = '█'
	BarEmptyChar = '░'

	barWidth = 10
)

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.failure != nil {
		g.drawCenteredMessage(dst, "ERROR", g.failure.Error())
		return
	}
	if g.world == nil || !g.world.InGameplay() {
		return
	}
	if dst.Width() < minWidth || dst.Height() < minHeight {
		dst.DrawTextCentered(dst.Height()/2, "Terminal too small")
		return
	}

	// Back to front: shield, blocks, player, rain
	if s := g.world.Shield(); s.Visible {
		dst.DrawRectTinted(g.view.Rect(s.WorldRect()), ShieldChar, hex(s.Flash.Current))
	}
	for _, b := range g.world.Level().Blocks() {
		dst.DrawRectColored(g.view.Rect(b.Rect()), BlockChar, core.ColorGray)
	}
	p := g.world.Player()
	dst.DrawRectTinted(g.view.Rect(p.WorldRect()), PlayerChar, hex(p.Flash.Current))
	for i := range g.world.Drops() {
		g.drawDrop(dst, &g.world.Drops()[i])
	}

	g.drawHUD(dst)

	if g.paused {
		g.drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}
	if g.gameOver {
		g.drawCenteredMessage(dst, "GAME OVER", fmt.Sprintf("Score: %d  |  Press R to restart", g.score))
	}
}

// drawDrop renders a drop as a single glyph at its anchor.
func (g *Game) drawDrop(dst *core.Screen, d *sim.Drop) {
	// Collapsed splashes are waiting for despawn
	if d.Scale.X <= 0 {
		return
	}
	x, y := g.view.Point(d.Body.Pos)
	if !g.view.Area().Contains(x, y) {
		return
	}
	if d.State == sim.DropSplashing {
		glyph := SplashChar
		if d.Scale.Y < 0.3 {
			glyph = SplashLow
		}
		dst.SetColored(x, y, glyph, core.ColorCyan)
		return
	}
	dst.SetColored(x, y, dropGlyph(d.Direction()), core.ColorBrightBlue)
}

// dropGlyph picks the streak that best matches a falling direction.
func dropGlyph(dir sim.Vec2) rune {
	switch {
	case math.Abs(dir.X) < 0.25:
		return '|'
	case (dir.X > 0) == (dir.Y < 0):
		// down-right or up-left
		return '\\'
	default:
		return '/'
	}
}

// drawHUD draws the status line.
func (g *Game) drawHUD(dst *core.Screen) {
	w := dst.Width()
	dst.DrawHLine(0, 0, w, ' ')

	left := fmt.Sprintf(" Score: %d  %s ", g.score, g.level.Name)
	dst.DrawText(1, 0, left)

	health := g.world.Health()
	hp := fmt.Sprintf("HP %s %3d", bar(health.Fraction()), health.Value)
	pw := fmt.Sprintf("SH %s", bar(g.world.Power()))

	x := w - len([]rune(hp)) - len([]rune(pw)) - 4
	dst.DrawTextColored(x, 0, hp, core.ColorGreen)
	dst.DrawTextColored(x+len([]rune(hp))+2, 0, pw, core.ColorCyan)
}

// bar renders a fraction in [0, 1] as a fixed-width gauge.
func bar(frac float64) string {
	n := int(math.Round(core.ClampF(frac, 0, 1) * barWidth))
	return strings.Repeat(string(BarFullChar), n) + strings.Repeat(string(BarEmptyChar), barWidth-n)
}

func hex(c colorful.Color) string {
	return c.Clamped().Hex()
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := min(max(len(title), len(subtitle))+4, w)
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	titleX := boxX + (boxW-len(title))/2
	dst.DrawText(titleX, boxY+1, title)

	subtitleX := boxX + max(0, (boxW-len(subtitle))/2)
	dst.DrawText(subtitleX, boxY+3, subtitle)
}
