package game

import (
	"math"
	"unicode"
)

// Road aligning key bindings.
const (
	KeyFaceNorth = 'n'
	KeyPitchDown = 'm'
)

// POV is the street-level camera orientation in degrees.
type POV struct {
	Heading float64 // 0 = north, clockwise
	Pitch   float64 // -90 = straight down, 90 = straight up
}

// MovementSettings mirrors the active game's movement restrictions.
// Known is false when the game has not published its settings.
type MovementSettings struct {
	Known   bool
	CanMove bool
	CanZoom bool
	CanPan  bool
}

// Locked reports whether all camera movement is disabled.
func (m MovementSettings) Locked() bool {
	return m.Known && !m.CanMove && !m.CanZoom && !m.CanPan
}

// Camera holds the panorama orientation and applies road aligning hotkeys.
type Camera struct {
	pov POV
	log *EventLog
}

// NewCamera creates a camera facing north, level.
func NewCamera(log *EventLog) *Camera {
	return &Camera{log: log}
}

// POV returns the current orientation.
func (c *Camera) POV() POV { return c.pov }

// SetPOV replaces the orientation, normalising heading and clamping pitch.
func (c *Camera) SetPOV(p POV) {
	p.Heading = math.Mod(p.Heading, 360)
	if p.Heading < 0 {
		p.Heading += 360
	}
	p.Pitch = math.Max(-90, math.Min(90, p.Pitch))
	c.pov = p
}

// Pan turns the camera by the given deltas.
func (c *Camera) Pan(dHeading, dPitch float64) {
	c.SetPOV(POV{Heading: c.pov.Heading + dHeading, Pitch: c.pov.Pitch + dPitch})
}

// HandleKey applies a road aligning hotkey, ignoring case. It reports
// whether the orientation changed.
func (c *Camera) HandleKey(r rune, mv MovementSettings) bool {
	key := unicode.ToLower(r)
	if key != KeyFaceNorth && key != KeyPitchDown {
		return false
	}
	if mv.Locked() {
		c.log.Add("camera", "locked", "movement disabled by active settings")
		return false
	}
	p := c.pov
	switch key {
	case KeyFaceNorth:
		p.Heading = 0
		c.log.Add("camera", "north", "set heading to 0")
	case KeyPitchDown:
		p.Pitch = -90
		c.log.Add("camera", "pitch_down", "set pitch to -90")
	}
	c.SetPOV(p)
	return true
}

// PanoramaFlip turns the panorama's visual layer upside down while it is
// shown. Pointer handling is unaffected; only drawing reads Flipped.
type PanoramaFlip struct {
	log     *EventLog
	enabled bool
	present bool
	flipped bool

	// Applied counts how many times the flip was applied.
	Applied int
}

// NewPanoramaFlip returns an enabled flip monitor.
func NewPanoramaFlip(log *EventLog) *PanoramaFlip {
	return &PanoramaFlip{log: log, enabled: true}
}

// Observe is one monitor pass: the flip is applied when the panorama
// appears and removed when it goes away.
func (f *PanoramaFlip) Observe(present bool) {
	switch {
	case present && !f.present && f.enabled:
		f.flipped = true
		f.Applied++
		f.log.Add("camera", "flip", "applied upside down transform")
	case !present && f.present && f.flipped:
		f.flipped = false
		f.log.Add("camera", "unflip", "removed upside down transform")
	}
	f.present = present
}

// SetEnabled switches the flip on or off, taking effect immediately.
func (f *PanoramaFlip) SetEnabled(on bool) {
	f.enabled = on
	if !on && f.flipped {
		f.flipped = false
		f.log.Add("camera", "unflip", "flip disabled")
	}
	if on && f.present && !f.flipped {
		f.flipped = true
		f.Applied++
		f.log.Add("camera", "flip", "applied upside down transform")
	}
}

// Enabled reports whether the flip is switched on.
func (f *PanoramaFlip) Enabled() bool { return f.enabled }

// Flipped reports whether the panorama is currently drawn upside down.
func (f *PanoramaFlip) Flipped() bool { return f.flipped }
