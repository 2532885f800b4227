package game

import (
	"image/color"
	"math"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// panoramaSpan is how many viewport widths cover a full 360° turn.
const panoramaSpan = 4

// skyline is one building or hill silhouette on the horizon.
type skyline struct {
	heading float64 // degrees
	w, h    float32 // fraction of viewport width / height above horizon
	col     color.RGBA
	windows bool
}

// Panorama is a procedurally generated street-level scene standing in for
// the game's imagery. The same seed always yields the same scene.
type Panorama struct {
	sky, skyTop color.RGBA
	ground      color.RGBA
	road        color.RGBA
	roadHeading float64
	skylines    []skyline
	poles       []float64 // headings of roadside poles
}

// NewPanorama generates the scene for seed.
func NewPanorama(seed int64) *Panorama {
	rng := rand.New(rand.NewSource(seed)) // #nosec G404 -- cosmetic only
	p := &Panorama{
		sky:         color.RGBA{R: uint8(120 + rng.Intn(60)), G: uint8(160 + rng.Intn(50)), B: uint8(200 + rng.Intn(55)), A: 255},
		skyTop:      color.RGBA{R: uint8(40 + rng.Intn(40)), G: uint8(80 + rng.Intn(50)), B: uint8(150 + rng.Intn(80)), A: 255},
		ground:      color.RGBA{R: uint8(70 + rng.Intn(60)), G: uint8(90 + rng.Intn(60)), B: uint8(40 + rng.Intn(30)), A: 255},
		road:        color.RGBA{R: 60, G: 60, B: 64, A: 255},
		roadHeading: float64(rng.Intn(360)),
	}
	count := 14 + rng.Intn(12)
	for i := 0; i < count; i++ {
		shade := uint8(50 + rng.Intn(120))
		p.skylines = append(p.skylines, skyline{
			heading: float64(rng.Intn(360)),
			w:       0.04 + rng.Float32()*0.12,
			h:       0.05 + rng.Float32()*0.35,
			col:     color.RGBA{R: shade, G: shade - shade/8, B: shade - shade/5, A: 255},
			windows: rng.Intn(3) > 0,
		})
	}
	for i := 0; i < 8+rng.Intn(8); i++ {
		p.poles = append(p.poles, float64(rng.Intn(360)))
	}
	return p
}

// screenX maps a world heading to a viewport x for the camera heading.
func screenX(heading, camHeading float64, w float32) float32 {
	d := math.Mod(heading-camHeading+540, 360) - 180 // -180..180
	return w/2 + float32(d/360*panoramaSpan)*w
}

// Render draws the scene as seen from pov into dst.
func (p *Panorama) Render(dst *ebiten.Image, pov POV) {
	b := dst.Bounds()
	w, h := float32(b.Dx()), float32(b.Dy())
	horizon := h/2 + float32(pov.Pitch/90)*h/2

	// Sky: vertical gradient in bands.
	const bands = 24
	for i := 0; i < bands; i++ {
		t := float32(i) / bands
		c := lerpRGBA(p.skyTop, p.sky, t)
		vector.FillRect(dst, 0, horizon-h+t*h, w, h/bands+1, c, false)
	}
	vector.FillRect(dst, 0, horizon, w, h, p.ground, false)

	for _, s := range p.skylines {
		x := screenX(s.heading, pov.Heading, w)
		sw, sh := s.w*w, s.h*h
		if x+sw < 0 || x-sw > w {
			continue
		}
		vector.FillRect(dst, x-sw/2, horizon-sh, sw, sh, s.col, false)
		if !s.windows {
			continue
		}
		win := color.RGBA{R: 230, G: 220, B: 150, A: 200}
		for wy := horizon - sh + 8; wy < horizon-10; wy += 18 {
			for wx := x - sw/2 + 6; wx < x+sw/2-10; wx += 16 {
				vector.FillRect(dst, wx, wy, 6, 8, win, false)
			}
		}
	}

	// Road: a trapezoid from the vanishing point to the bottom edge.
	rx := screenX(p.roadHeading, pov.Heading, w)
	var road vector.Path
	road.MoveTo(rx-4, horizon)
	road.LineTo(rx+4, horizon)
	road.LineTo(rx+w*0.6, h)
	road.LineTo(rx-w*0.6, h)
	road.Close()
	op := &vector.DrawPathOptions{AntiAlias: true}
	op.ColorScale.ScaleWithColor(p.road)
	vector.FillPath(dst, &road, &vector.FillOptions{}, op)
	for y := horizon + 6; y < h; y += (y - horizon) * 0.35 {
		dash := (y - horizon) * 0.15
		vector.FillRect(dst, rx-dash*0.1, y, dash*0.2+1, dash+1, color.RGBA{R: 240, G: 240, B: 220, A: 255}, false)
	}

	for _, ph := range p.poles {
		x := screenX(ph, pov.Heading, w)
		if x < -4 || x > w+4 {
			continue
		}
		vector.StrokeLine(dst, x, horizon+h*0.05, x, horizon-h*0.25, 3, color.RGBA{R: 40, G: 34, B: 30, A: 255}, false)
	}

	// Compass ribbon along the top edge.
	for deg := 0; deg < 360; deg += 45 {
		x := screenX(float64(deg), pov.Heading, w)
		if x < 0 || x > w {
			continue
		}
		c := color.RGBA{R: 255, G: 255, B: 255, A: 120}
		if deg == 0 {
			c = color.RGBA{R: 255, G: 80, B: 80, A: 220}
		}
		vector.StrokeLine(dst, x, 0, x, 10, 2, c, false)
	}
}

func lerpRGBA(a, b color.RGBA, t float32) color.RGBA {
	mix := func(x, y uint8) uint8 { return uint8(float32(x) + (float32(y)-float32(x))*t) }
	return color.RGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: 255}
}
