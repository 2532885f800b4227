package game

import (
	"fmt"
	"image/color"
	"math/rand"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// borderWidth is the pixel gap between the window edge and the panorama.
const borderWidth = 24

// hudHeight is the strip under the panorama holding round status.
const hudHeight = 132

// Phase is where the simulated game currently is.
type Phase int

const (
	PhaseLobby Phase = iota
	PhaseRound
	PhaseResult
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseLobby:
		return "lobby"
	case PhaseRound:
		return "round"
	case PhaseResult:
		return "result"
	case PhaseGameOver:
		return "game over"
	default:
		return "unknown"
	}
}

// panoramaLoadDelay is how long an online panorama takes to appear.
const panoramaLoadDelay = 1200 * time.Millisecond

// Options configures the viewer.
type Options struct {
	Online bool
	Rounds int
	Seed   int64
	Store  Store // nil means in-memory
}

type player struct {
	name  string
	total int
	last  int
}

// Game is the ebiten viewer. It plays a simulated map-guessing session and
// acts as the Host the Grid Mode session observes.
type Game struct {
	width  int
	height int
	viewW  int // panorama viewport width
	viewH  int // panorama viewport height
	offX   int // pixel offset from window left to panorama left
	offY   int // pixel offset from window top to panorama top

	online       bool
	rounds       int
	round        int
	gameNo       int
	sessionGames int
	phase        Phase
	roundSeconds int // time slider value

	panoramaReady bool
	roundStart    time.Duration
	loadTimer     *Timer

	clock    *Clock
	store    Store
	log      *EventLog
	panel    *LogPanel
	session  *Session
	camera   *Camera
	movement MovementSettings

	localCard  *SettingsContainer
	onlineCard *SettingsContainer
	focus      int // index of the focused input among visible groups

	notice      string
	noticeUntil time.Duration

	players  []player
	scoreRng *rand.Rand

	pano    *Panorama
	panoBuf *ebiten.Image

	// Simulation speed: 0 = paused.
	simSpeed float64
	chars    []rune
}

// New builds the viewer and opens the lobby.
func New(opts Options) *Game {
	if opts.Rounds <= 0 {
		opts.Rounds = 5
	}
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}
	store := opts.Store
	if store == nil {
		store = NewMemStore()
	}
	viewW, viewH := 1280, 720
	g := &Game{
		width:        borderWidth + viewW + borderWidth + logPanelWidth,
		height:       borderWidth + viewH + hudHeight,
		viewW:        viewW,
		viewH:        viewH,
		offX:         borderWidth,
		offY:         borderWidth,
		online:       opts.Online,
		rounds:       opts.Rounds,
		roundSeconds: 90,
		clock:        NewClock(),
		store:        store,
		panel:        NewLogPanel(),
		localCard:    NewSettingsContainer(SettingsLocal),
		onlineCard:   NewSettingsContainer(SettingsOnline),
		scoreRng:     rand.New(rand.NewSource(opts.Seed + 7777)), // #nosec G404 -- game only
		simSpeed:     1,
	}
	g.log = NewEventLog(g.clock, false)
	g.log.OnAdd = g.panel.Add
	g.camera = NewCamera(g.log)
	g.session = NewSession(g, g.clock, g.store, g.log, rand.New(rand.NewSource(opts.Seed))) // #nosec G404 -- game only
	if label, ok := store.Get(KeyRoundDurationLabel); ok {
		if secs, err := ParseTimeLabel(label); err == nil && secs > 0 {
			g.roundSeconds = secs
		}
	}
	g.panoBuf = ebiten.NewImage(viewW, viewH)
	for _, name := range []string{"You", "Alex", "Sam", "Robin"} {
		g.players = append(g.players, player{name: name})
	}
	g.enterLobby()
	return g
}

// Size reports the panorama viewport while imagery is on screen.
func (g *Game) Size() (int, int) {
	if g.phase != PhaseRound || !g.panoramaReady {
		return 0, 0
	}
	return g.viewW, g.viewH
}

// PanoramaID identifies the imagery on screen, "" when none is loaded.
func (g *Game) PanoramaID() string {
	if g.phase != PhaseRound || !g.panoramaReady {
		return ""
	}
	return fmt.Sprintf("g%d-r%d", g.gameNo, g.round)
}

// TimeLabel is the time slider label, visible in the lobby only.
func (g *Game) TimeLabel() (string, bool) {
	if g.phase != PhaseLobby {
		return "", false
	}
	return FormatTimeLabel(g.roundSeconds), true
}

// SettingsContainers returns the settings card shown in the lobby.
func (g *Game) SettingsContainers() []*SettingsContainer {
	if g.phase != PhaseLobby {
		return nil
	}
	if g.online {
		return []*SettingsContainer{g.onlineCard}
	}
	return []*SettingsContainer{g.localCard}
}

// PlayerResults returns the online final results.
func (g *Game) PlayerResults() []PlayerResult {
	if !g.online || g.phase != PhaseGameOver {
		return nil
	}
	out := make([]PlayerResult, 0, len(g.players))
	for _, p := range g.players {
		out = append(out, PlayerResult{Name: p.name, TotalText: formatScore(p.total)})
	}
	return out
}

// Movement returns the active game's movement restrictions.
func (g *Game) Movement() MovementSettings { return g.movement }

func formatScore(n int) string {
	s := fmt.Sprint(n)
	var sb strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			sb.WriteByte(',')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// enterLobby re-renders the settings cards, which drops any injected groups,
// and starts a grid mode session if none is running.
func (g *Game) enterLobby() {
	g.phase = PhaseLobby
	g.round = 0
	g.focus = 0
	g.log.SetRound(0)
	g.localCard.Clear()
	g.onlineCard.Clear()
	if !g.session.Running() {
		g.session.Start()
		g.sessionGames = 0
	}
}

func (g *Game) startGame() {
	g.gameNo++
	g.sessionGames++
	g.round = 0
	for i := range g.players {
		g.players[i].total = 0
		g.players[i].last = 0
	}
	g.log.Addf("session", "game", "game %d (%s, %d rounds of %s)", g.gameNo, g.modeName(), g.rounds, FormatTimeLabel(g.roundSeconds))
	if g.online {
		g.session.StartOnlineGame()
	}
	g.beginRound()
	if !g.online && g.sessionGames > 1 {
		g.session.NextRound()
	}
}

func (g *Game) modeName() string {
	if g.online {
		return "online"
	}
	return "local"
}

// beginRound loads the next panorama. Online imagery arrives after a delay,
// which is what the session's panorama wait is for.
func (g *Game) beginRound() {
	g.round++
	g.log.SetRound(g.round)
	g.phase = PhaseRound
	g.pano = NewPanorama(int64(g.gameNo)*1000 + int64(g.round))
	g.camera.SetPOV(POV{})
	g.loadTimer.Stop()
	g.panoramaReady = false
	if !g.online {
		g.panoramaLoaded()
		return
	}
	g.loadTimer = g.clock.After(panoramaLoadDelay, g.panoramaLoaded)
}

func (g *Game) panoramaLoaded() {
	g.panoramaReady = true
	g.roundStart = g.clock.Now()
	g.session.PanoramaShown()
}

func (g *Game) endRound() {
	g.phase = PhaseResult
	g.panoramaReady = false
	for i := range g.players {
		s := g.scoreRng.Intn(5001)
		g.players[i].last = s
		g.players[i].total += s
	}
	g.log.Addf("session", "round_end", "round %d/%d scored", g.round, g.rounds)
}

func (g *Game) roundDuration() time.Duration {
	return time.Duration(g.roundSeconds) * time.Second
}

func (g *Game) setNotice(msg string) {
	g.notice = msg
	g.noticeUntil = g.clock.Now() + 4*time.Second
}

func (g *Game) Update() error {
	g.handleInput()

	if g.simSpeed > 0 {
		step := time.Duration(float64(time.Second) / float64(ebiten.TPS()) * g.simSpeed)
		g.clock.Advance(step)
	}
	if g.phase == PhaseRound && g.panoramaReady && g.clock.Now()-g.roundStart >= g.roundDuration() {
		g.endRound()
	}
	if g.notice != "" && g.clock.Now() >= g.noticeUntil {
		g.notice = ""
	}
	return nil
}

// handleInput processes keypresses for the current phase (edge-triggered).
func (g *Game) handleInput() {
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.copyLog()
	}
	g.handleSpeedKeys()

	switch g.phase {
	case PhaseLobby:
		g.handleLobbyInput()
	case PhaseRound:
		g.handleRoundInput()
	case PhaseResult:
		if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
			g.advanceFromResult()
		}
	case PhaseGameOver:
		if inpututil.IsKeyJustPressed(ebiten.KeyR) {
			g.playAgain()
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyL) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			g.session.BackToLobby()
			g.enterLobby()
		}
	}
}

func (g *Game) copyLog() {
	if err := clipboard.WriteAll(g.log.Format()); err != nil {
		g.setNotice("clipboard: " + err.Error())
		return
	}
	g.setNotice(fmt.Sprintf("copied %d log entries", len(g.log.Entries())))
}

// handleSpeedKeys: P = pause/resume, , = slower, . = faster.
func (g *Game) handleSpeedKeys() {
	speeds := []float64{0, 0.5, 1, 2, 4, 8}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		if g.simSpeed > 0 {
			g.simSpeed = 0
		} else {
			g.simSpeed = 1
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyComma) {
		for i, s := range speeds {
			if s >= g.simSpeed && i > 0 {
				g.simSpeed = speeds[i-1]
				break
			}
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyPeriod) {
		for i, s := range speeds {
			if s <= g.simSpeed && i < len(speeds)-1 && speeds[i+1] > g.simSpeed {
				g.simSpeed = speeds[i+1]
				break
			}
		}
	}
}

func (g *Game) visibleCard() *SettingsContainer {
	if g.online {
		return g.onlineCard
	}
	return g.localCard
}

// focusedGroup returns the group whose input takes typed digits.
func (g *Game) focusedGroup() *ModeGroup {
	var open []*ModeGroup
	for _, grp := range g.visibleCard().Groups() {
		if grp.InputVisible() {
			open = append(open, grp)
		}
	}
	if len(open) == 0 {
		return nil
	}
	return open[g.focus%len(open)]
}

func (g *Game) handleLobbyInput() {
	card := g.visibleCard()
	if inpututil.IsKeyJustPressed(ebiten.KeyG) {
		if _, err := g.session.Settings.Toggle(card, GridModeUI.GroupID); err != nil {
			g.setNotice("grid mode UI not injected yet")
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyD) {
		if _, err := g.session.Settings.Toggle(card, DartsModeUI.GroupID); err != nil {
			g.setNotice("darts mode UI not injected yet")
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		g.focus++
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyO) {
		g.online = !g.online
		g.focus = 0
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft) && g.roundSeconds > 10 {
		g.roundSeconds -= 10
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowRight) && g.roundSeconds < 600 {
		g.roundSeconds += 10
	}

	if grp := g.focusedGroup(); grp != nil {
		g.chars = ebiten.AppendInputChars(g.chars[:0])
		for _, r := range g.chars {
			if r >= '0' && r <= '9' && len(grp.Input) < 6 {
				grp.Input += string(r)
			}
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) && len(grp.Input) > 0 {
			grp.Input = grp.Input[:len(grp.Input)-1]
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
			if n, err := g.session.Settings.Submit(card, grp.Spec.GroupID, grp.Input); err != nil {
				g.setNotice(err.Error())
			} else {
				g.setNotice(fmt.Sprintf("%s set to %d", grp.Spec.Label, n))
			}
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.startGame()
	}
}

func (g *Game) handleRoundInput() {
	if inpututil.IsKeyJustPressed(ebiten.KeyU) {
		g.session.Flip.SetEnabled(!g.session.Flip.Enabled())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyK) {
		if g.movement.Locked() {
			g.movement = MovementSettings{}
		} else {
			g.movement = MovementSettings{Known: true}
		}
	}
	g.chars = ebiten.AppendInputChars(g.chars[:0])
	for _, r := range g.chars {
		g.camera.HandleKey(r, g.movement)
	}
	if !g.movement.Locked() {
		const turn = 1.5
		if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
			g.camera.Pan(-turn, 0)
		}
		if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
			g.camera.Pan(turn, 0)
		}
		if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
			g.camera.Pan(0, turn)
		}
		if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
			g.camera.Pan(0, -turn)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) && g.panoramaReady {
		g.log.Add("session", "guess", "guess placed")
		g.endRound()
	}
}

func (g *Game) advanceFromResult() {
	if g.round >= g.rounds {
		g.phase = PhaseGameOver
		g.log.SetRound(0)
		g.log.Addf("session", "game_over", "game %d finished", g.gameNo)
		return
	}
	if g.online {
		g.session.Continue()
		g.beginRound()
		return
	}
	g.beginRound()
	g.session.NextRound()
}

func (g *Game) playAgain() {
	if g.online {
		g.gameNo++
		g.sessionGames++
		g.round = 0
		for i := range g.players {
			g.players[i].total = 0
		}
		g.session.PlayAgain()
		g.beginRound()
		return
	}
	g.startGame()
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 16, G: 16, B: 20, A: 255})

	switch g.phase {
	case PhaseLobby:
		g.drawLobby(screen)
	case PhaseRound:
		g.drawRound(screen)
	case PhaseResult:
		g.drawResult(screen)
	case PhaseGameOver:
		g.drawGameOver(screen)
	}
	g.drawStatus(screen)

	logX := g.offX + g.viewW + g.offX
	g.panel.Draw(screen, logX, g.height)
}

func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}

// WindowSize returns the window dimensions the layout expects.
func (g *Game) WindowSize() (int, int) {
	return g.width, g.height
}
