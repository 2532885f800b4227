package game

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

var (
	hudFace = text.NewGoXFace(basicfont.Face7x13)

	cellFill   = color.RGBA{R: 128, G: 128, B: 128, A: 255}
	cellBorder = color.RGBA{R: 100, G: 100, B: 100, A: 128}
	textColor  = color.RGBA{R: 230, G: 230, B: 230, A: 255}
	dimColor   = color.RGBA{R: 150, G: 150, B: 160, A: 255}
	enabledCol = color.RGBA{R: 76, G: 175, B: 80, A: 255}
)

// highlightColors are the Darts Mode row backgrounds. Perfect rows get the
// rainbow instead.
var highlightColors = map[Highlight]color.RGBA{
	HighlightBust:   {R: 255, G: 0, B: 0, A: 76},
	HighlightValid:  {R: 255, G: 255, B: 0, A: 76},
	HighlightWinner: {R: 0, G: 255, B: 0, A: 76},
}

var rainbow = []color.RGBA{
	{R: 255, A: 255}, {R: 255, G: 165, A: 255}, {R: 255, G: 255, A: 255},
	{G: 128, A: 255}, {B: 255, A: 255}, {R: 75, B: 130, A: 255}, {R: 238, G: 130, B: 238, A: 255},
}

// drawText draws s with its top-left corner at (x, y).
func drawText(dst *ebiten.Image, s string, x, y float64, c color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	op.LineSpacing = 16
	text.Draw(dst, s, hudFace, op)
}

func fillRect(dst *ebiten.Image, x, y, w, h float32, c color.Color) {
	vector.FillRect(dst, x, y, w, h, c, false)
}

func strokeRect(dst *ebiten.Image, x, y, w, h, width float32, c color.Color) {
	vector.StrokeRect(dst, x, y, w, h, width, c, false)
}

func (g *Game) drawViewportFrame(screen *ebiten.Image) {
	ox, oy := float32(g.offX), float32(g.offY)
	vw, vh := float32(g.viewW), float32(g.viewH)
	fillRect(screen, ox, oy, vw, vh, color.RGBA{R: 24, G: 24, B: 30, A: 255})
	strokeRect(screen, ox-1, oy-1, vw+2, vh+2, 2, color.RGBA{R: 70, G: 70, B: 90, A: 255})
}

func (g *Game) drawLobby(screen *ebiten.Image) {
	g.drawViewportFrame(screen)
	x := float64(g.offX + 40)
	y := float64(g.offY + 30)
	title := "LOCAL LOBBY"
	if g.online {
		title = "ONLINE CUSTOM LOBBY"
	}
	drawText(screen, title+"  [O] switch", x, y, textColor)
	y += 36
	label, _ := g.TimeLabel()
	drawText(screen, fmt.Sprintf("Round time  %s   [<-/->] adjust", label), x, y, textColor)
	y += 20
	drawText(screen, fmt.Sprintf("Rounds      %d", g.rounds), x, y, dimColor)
	y += 36

	card := g.visibleCard()
	if len(card.Groups()) == 0 {
		drawText(screen, "(settings card re-rendered, waiting for injection...)", x, y, dimColor)
		y += 24
	}
	focused := g.focusedGroup()
	for _, grp := range card.Groups() {
		g.drawModeGroup(screen, grp, grp == focused, x, y)
		y += 64
	}

	y += 12
	drawText(screen, fmt.Sprintf("Darts target box: %s", g.session.Darts.TargetText()), x, y, dimColor)
	y += 36
	drawText(screen, "[G] grid mode  [D] darts mode  [Tab] focus  digits+[Enter] submit\n[Space] start game", x, y, dimColor)
}

func (g *Game) drawModeGroup(screen *ebiten.Image, grp *ModeGroup, focused bool, x, y float64) {
	track := color.RGBA{R: 90, G: 90, B: 100, A: 255}
	thumbX := float32(x)
	if grp.Enabled {
		track = enabledCol
		thumbX += 18
	}
	fillRect(screen, float32(x), float32(y+3), 36, 12, track)
	fillRect(screen, thumbX, float32(y), 18, 18, color.RGBA{R: 240, G: 240, B: 240, A: 255})
	drawText(screen, grp.Spec.Label, x+48, y+2, textColor)
	if !grp.InputVisible() {
		return
	}
	iy := float32(y + 26)
	fillRect(screen, float32(x), iy, 250, 24, color.RGBA{R: 40, G: 40, B: 48, A: 255})
	border := color.RGBA{R: 80, G: 80, B: 96, A: 255}
	if focused {
		border = enabledCol
	}
	strokeRect(screen, float32(x), iy, 250, 24, 1, border)
	value := grp.Input
	col := color.Color(textColor)
	if value == "" && !focused {
		value = grp.Spec.Placeholder
		col = dimColor
	}
	if focused {
		value += "_"
	}
	drawText(screen, value, x+6, float64(iy)+5, col)
}

func (g *Game) drawRound(screen *ebiten.Image) {
	g.drawViewportFrame(screen)
	if !g.panoramaReady {
		drawText(screen, "loading panorama...", float64(g.offX+g.viewW/2-70), float64(g.offY+g.viewH/2), dimColor)
		return
	}
	g.panoBuf.Clear()
	g.pano.Render(g.panoBuf, g.camera.POV())

	// Only the imagery layer is flipped; the overlay and HUD stay upright.
	op := &ebiten.DrawImageOptions{}
	if g.session.Flip.Flipped() {
		op.GeoM.Scale(-1, -1)
		op.GeoM.Translate(float64(g.viewW), float64(g.viewH))
	}
	op.GeoM.Translate(float64(g.offX), float64(g.offY))
	screen.DrawImage(g.panoBuf, op)

	g.drawGridOverlay(screen)
}

// drawGridOverlay paints the remaining cells over the viewport. The overlay
// is never consulted for input, so it blocks sight but not clicks.
func (g *Game) drawGridOverlay(screen *ebiten.Image) {
	o := g.session.Overlay.Overlay()
	if o == nil || !o.Mounted() {
		return
	}
	ox, oy := float32(g.offX), float32(g.offY)
	for _, c := range o.Cells() {
		x, y := ox+float32(c.X), oy+float32(c.Y)
		fillRect(screen, x, y, float32(c.W), float32(c.H), cellFill)
		strokeRect(screen, x, y, float32(c.W), float32(c.H), 1, cellBorder)
	}
}

func (g *Game) drawResult(screen *ebiten.Image) {
	g.drawViewportFrame(screen)
	x := float64(g.offX + 40)
	y := float64(g.offY + 30)
	drawText(screen, fmt.Sprintf("ROUND %d / %d RESULT", g.round, g.rounds), x, y, textColor)
	y += 36
	for _, p := range g.players {
		drawText(screen, fmt.Sprintf("%-8s +%5d   total %7s", p.name, p.last, formatScore(p.total)), x, y, textColor)
		y += 20
	}
	y += 24
	next := "[Enter] Next Round"
	if g.online {
		next = "[Enter] Continue"
	}
	if g.round >= g.rounds {
		next = "[Enter] Final results"
	}
	drawText(screen, next, x, y, dimColor)
}

func (g *Game) drawGameOver(screen *ebiten.Image) {
	g.drawViewportFrame(screen)
	x := float64(g.offX + 40)
	y := float64(g.offY + 30)
	drawText(screen, fmt.Sprintf("GAME %d OVER", g.gameNo), x, y, textColor)
	y += 24
	drawText(screen, fmt.Sprintf("Target Score  %s", g.session.Darts.TargetText()), x, y, dimColor)
	y += 32

	standings := map[string]DartsStanding{}
	for _, st := range g.session.Darts.Standings() {
		standings[st.Name] = st
	}
	for _, p := range g.players {
		rowY := float32(y - 3)
		if st, ok := standings[p.name]; ok && g.online {
			if st.Highlight == HighlightPerfect {
				bw := float32(420) / float32(len(rainbow))
				for i, c := range rainbow {
					fillRect(screen, float32(x)+float32(i)*bw-6, rowY, bw, 20, c)
				}
			} else if c, ok := highlightColors[st.Highlight]; ok {
				fillRect(screen, float32(x)-6, rowY, 420, 20, c)
			}
		}
		drawText(screen, fmt.Sprintf("%-8s %9s", p.name, formatScore(p.total)), x, y, textColor)
		y += 24
	}
	y += 24
	again := "[R] Play again (new local game)"
	if g.online {
		again = "[R] Play again"
	}
	drawText(screen, again+"   [L] Back to Lobby", x, y, dimColor)
}

// drawStatus renders the strip under the viewport: round clock, overlay
// state and key hints.
func (g *Game) drawStatus(screen *ebiten.Image) {
	x := float64(g.offX)
	y := float64(g.offY + g.viewH + 12)

	speed := "PAUSED"
	if g.simSpeed > 0 {
		speed = fmt.Sprintf("%gx", g.simSpeed)
	}
	left := "--:--"
	if g.phase == PhaseRound && g.panoramaReady {
		rem := g.roundDuration() - (g.clock.Now() - g.roundStart)
		if rem < 0 {
			rem = 0
		}
		left = FormatTimeLabel(int((rem + time.Second - 1) / time.Second))
	}
	cells := "-"
	if o := g.session.Overlay.Overlay(); o != nil {
		cells = fmt.Sprintf("%d/%d", o.Remaining(), o.Total())
	}
	interval := "-"
	if t := g.session.Overlay.RemovalTimer(); t != nil {
		interval = t.Period().String()
	}
	pov := g.camera.POV()
	lines := []string{
		fmt.Sprintf("%s  round %d/%d  time left %s  sim %s  [P] pause  [,/.] speed", g.phase, g.round, g.rounds, left, speed),
		fmt.Sprintf("grid %s  cells %s  removal every %s  resets %d", g.session.Overlay.State(), cells, interval, g.session.Resets),
		fmt.Sprintf("heading %.0f  pitch %.0f  [N] north  [M] pitch down  [K] lock=%v  [U] upside down=%v", pov.Heading, pov.Pitch, g.movement.Locked(), g.session.Flip.Enabled()),
	}
	if g.phase == PhaseRound {
		lines = append(lines, "[Enter] guess  arrows=look around")
	}
	for i, l := range lines {
		drawText(screen, l, x, y+float64(i)*18, textColor)
	}
	if g.notice != "" {
		drawText(screen, g.notice, x+float64(g.viewW)-360, y+float64(len(lines))*18, enabledCol)
	}
}
