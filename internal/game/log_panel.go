package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	logPanelWidth = 420
	logMaxEntries = 80
	logLineHeight = 14
)

// categoryColors tints the marker next to each log line.
var categoryColors = map[string]color.RGBA{
	"overlay":  {R: 200, G: 200, B: 200, A: 255},
	"removal":  {R: 230, G: 170, B: 60, A: 255},
	"poll":     {R: 90, G: 140, B: 220, A: 255},
	"settings": {R: 80, G: 190, B: 110, A: 255},
	"darts":    {R: 220, G: 80, B: 200, A: 255},
	"camera":   {R: 80, G: 200, B: 200, A: 255},
	"store":    {R: 220, G: 90, B: 70, A: 255},
	"session":  {R: 240, G: 240, B: 120, A: 255},
}

// LogPanel is a ring buffer of event log entries rendered on-screen.
type LogPanel struct {
	entries []EventLogEntry
	head    int
	count   int
}

// NewLogPanel creates a panel with a fixed capacity.
func NewLogPanel() *LogPanel {
	return &LogPanel{
		entries: make([]EventLogEntry, logMaxEntries),
	}
}

// Add appends an entry to the panel, evicting the oldest when full.
func (lp *LogPanel) Add(e EventLogEntry) {
	lp.entries[lp.head] = e
	lp.head = (lp.head + 1) % logMaxEntries
	if lp.count < logMaxEntries {
		lp.count++
	}
}

// Recent returns entries in chronological order (oldest first).
func (lp *LogPanel) Recent() []EventLogEntry {
	result := make([]EventLogEntry, lp.count)
	for i := 0; i < lp.count; i++ {
		idx := (lp.head - lp.count + i + logMaxEntries) % logMaxEntries
		result[i] = lp.entries[idx]
	}
	return result
}

// Draw renders the panel on the right side of the screen.
func (lp *LogPanel) Draw(screen *ebiten.Image, panelX int, panelH int) {
	vector.FillRect(screen, float32(panelX), 0, float32(logPanelWidth), float32(panelH), color.RGBA{R: 14, G: 14, B: 18, A: 248}, false)
	vector.StrokeLine(screen, float32(panelX), 0, float32(panelX), float32(panelH), 1.0, color.RGBA{R: 60, G: 60, B: 80, A: 255}, false)

	vector.FillRect(screen, float32(panelX), 0, float32(logPanelWidth), 16, color.RGBA{R: 26, G: 26, B: 36, A: 255}, false)
	ebitenutil.DebugPrintAt(screen, "EVENT LOG  [C] copy", panelX+8, 0)
	vector.StrokeLine(screen, float32(panelX), 16, float32(panelX+logPanelWidth), 16, 1.0, color.RGBA{R: 60, G: 60, B: 90, A: 200}, false)

	entries := lp.Recent()

	// Newest at the bottom.
	maxVisible := (panelH - 24) / logLineHeight
	startIdx := 0
	if len(entries) > maxVisible {
		startIdx = len(entries) - maxVisible
	}
	visible := entries[startIdx:]
	recent := 3

	y := 20
	for i, e := range visible {
		if i >= len(visible)-recent {
			vector.FillRect(screen, float32(panelX+2), float32(y), float32(logPanelWidth-4), float32(logLineHeight), color.RGBA{R: 34, G: 34, B: 48, A: 160}, false)
		}
		dot, ok := categoryColors[e.Category]
		if !ok {
			dot = color.RGBA{R: 120, G: 120, B: 120, A: 255}
		}
		vector.FillRect(screen, float32(panelX+5), float32(y+4), 3, 6, dot, false)

		line := fmt.Sprintf("%6.1f %-8s %s", e.At.Seconds(), e.Key, e.Value)
		if len(line) > 66 {
			line = line[:66]
		}
		ebitenutil.DebugPrintAt(screen, line, panelX+12, y-2)
		y += logLineHeight
	}
}
