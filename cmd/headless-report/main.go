package main

import (
	"flag"
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"time"

	"github.com/Garsondee/Grid-Mode/internal/game"
)

// onlineLoadDelay is how long online imagery takes to appear after a signal.
const onlineLoadDelay = 1200 * time.Millisecond

type roundStats struct {
	round     int
	ticks     int
	drainedAt time.Duration // since the panorama appeared, -1 if never
}

type runStats struct {
	runIndex int
	seed     int64
	mode     string

	cells       int
	interval    time.Duration
	rounds      []roundStats
	timersArmed int
	resets      int
	injections  int
	staleTicks  int

	storeCleared bool
	pollersIdle  bool
	winner       string
	standings    []game.DartsStanding
}

type config struct {
	runs      int
	rounds    int
	squares   int
	timeLabel string
	target    int
	seedBase  int64
	seedStep  int64
	mode      string
}

func main() {
	var cfg config
	flag.IntVar(&cfg.runs, "runs", 5, "number of headless sessions")
	flag.IntVar(&cfg.rounds, "rounds", 5, "rounds per session")
	flag.IntVar(&cfg.squares, "squares", 9, "stored square count")
	flag.StringVar(&cfg.timeLabel, "time", "1:30", "round time slider label")
	flag.IntVar(&cfg.target, "target", 15000, "darts target score (0 = darts off)")
	flag.Int64Var(&cfg.seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&cfg.seedStep, "seed-step", 1, "seed increment between runs")
	flag.StringVar(&cfg.mode, "mode", "local", "lobby flow: local or online")
	flag.Parse()

	if cfg.runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}
	if cfg.rounds <= 0 {
		fmt.Println("error: -rounds must be > 0")
		return
	}
	if cfg.mode != "local" && cfg.mode != "online" {
		fmt.Printf("error: unsupported mode %q (supported: local, online)\n", cfg.mode)
		return
	}
	secs, err := game.ParseTimeLabel(cfg.timeLabel)
	if err != nil {
		fmt.Printf("warning: %v, cell removal disabled\n", err)
	}

	fmt.Printf("=== Headless Grid Mode Report ===\n")
	fmt.Printf("mode=%s runs=%d rounds=%d squares=%d time=%s (%ds) target=%d seed_base=%d seed_step=%d\n\n",
		cfg.mode, cfg.runs, cfg.rounds, cfg.squares, cfg.timeLabel, secs, cfg.target, cfg.seedBase, cfg.seedStep)

	all := make([]runStats, 0, cfg.runs)
	for i := 0; i < cfg.runs; i++ {
		seed := cfg.seedBase + int64(i)*cfg.seedStep
		rs := runSession(i+1, seed, cfg, secs)
		all = append(all, rs)
		printRun(rs)
	}
	printAggregate(all)
}

func runSession(runIndex int, seed int64, cfg config, secs int) runStats {
	opts := []game.SessionOption{
		game.WithSeed(seed),
		game.WithSquares(cfg.squares),
		game.WithTimeLabel(cfg.timeLabel),
	}
	kind := game.SettingsLocal
	if cfg.mode == "online" {
		kind = game.SettingsOnline
	}
	opts = append(opts, game.WithSettingsCards(kind))
	if cfg.target > 0 {
		opts = append(opts, game.WithDartsTarget(cfg.target))
	}
	ts := game.NewTestSession(opts...)
	s := ts.Session
	s.Start()
	// Let the label poller copy the slider value before the game starts.
	ts.RunFor(time.Second)

	roundLen := time.Duration(secs)*time.Second + 2*time.Second
	if secs <= 0 {
		roundLen = 10 * time.Second
	}
	shownAt := make(map[int]time.Duration, cfg.rounds)
	for r := 1; r <= cfg.rounds; r++ {
		switch {
		case cfg.mode == "online" && r == 1:
			s.StartOnlineGame()
			ts.RunFor(onlineLoadDelay)
			ts.ShowRound()
		case cfg.mode == "online":
			s.Continue()
			ts.RunFor(onlineLoadDelay)
			ts.ShowRound()
		default:
			ts.ShowRound()
			if r > 1 {
				s.NextRound()
			}
		}
		shownAt[ts.Round] = ts.Clock.Now()
		ts.RunFor(roundLen)
		ts.HideRound()
	}

	rs := runStats{
		runIndex:    runIndex,
		seed:        seed,
		mode:        cfg.mode,
		timersArmed: s.Overlay.TimersArmed,
		resets:      s.Resets,
		injections:  s.Settings.Injections,
	}
	if o := s.Overlay.Overlay(); o != nil {
		rs.cells = o.Total()
	}
	if e, ok := ts.Log.LastOf("removal", "schedule"); ok {
		rs.interval = parseInterval(e.Value)
	}
	entries := ts.Log.Entries()
	for r := 1; r <= ts.Round; r++ {
		rd := roundStats{round: r, ticks: countInRound(entries, r, "removal", "tick"), drainedAt: -1}
		if at, ok := firstAt(entries, r, "removal", "drained"); ok {
			rd.drainedAt = at - shownAt[r]
		}
		rs.rounds = append(rs.rounds, rd)
	}
	rs.staleTicks = ts.Log.CountCategory("removal", "stale")

	// Final results, then back to the lobby.
	ts.Host.Results = fakeResults(seed)
	ts.RunFor(2 * time.Second)
	rs.standings = s.Darts.Standings()
	rs.winner = winnerName(rs.standings)

	s.BackToLobby()
	_, hasSquares := ts.Store.Get(game.KeySquareCount)
	_, hasLabel := ts.Store.Get(game.KeyRoundDurationLabel)
	rs.storeCleared = !hasSquares && !hasLabel
	rs.pollersIdle = ts.Clock.Pending() == 0
	return rs
}

// fakeResults produces four players with totals spread across a 5-round game.
func fakeResults(seed int64) []game.PlayerResult {
	rng := rand.New(rand.NewSource(seed)) // #nosec G404 -- report only
	names := []string{"You", "Alex", "Sam", "Robin"}
	out := make([]game.PlayerResult, 0, len(names))
	for _, n := range names {
		out = append(out, game.PlayerResult{Name: n, TotalText: fmt.Sprintf("%d pts", rng.Intn(25001))})
	}
	return out
}

// parseInterval pulls the interval=... field out of a schedule entry.
func parseInterval(value string) time.Duration {
	for _, f := range strings.Fields(value) {
		if v, ok := strings.CutPrefix(f, "interval="); ok {
			d, err := time.ParseDuration(v)
			if err == nil {
				return d
			}
		}
	}
	return 0
}

func countInRound(entries []game.EventLogEntry, round int, category, key string) int {
	n := 0
	for _, e := range entries {
		if e.Round == round && e.Category == category && e.Key == key {
			n++
		}
	}
	return n
}

func firstAt(entries []game.EventLogEntry, round int, category, key string) (time.Duration, bool) {
	for _, e := range entries {
		if e.Round == round && e.Category == category && e.Key == key {
			return e.At, true
		}
	}
	return 0, false
}

func winnerName(standings []game.DartsStanding) string {
	for _, st := range standings {
		if st.Highlight == game.HighlightWinner {
			return st.Name
		}
	}
	if len(standings) == 0 {
		return "n/a"
	}
	return "none"
}

func printRun(rs runStats) {
	fmt.Printf("--- Run %d (seed=%d mode=%s) ---\n", rs.runIndex, rs.seed, rs.mode)
	fmt.Printf("overlay: cells=%d interval=%s timers_armed=%d resets=%d injections=%d stale_ticks=%d\n",
		rs.cells, rs.interval, rs.timersArmed, rs.resets, rs.injections, rs.staleTicks)
	for _, rd := range rs.rounds {
		drained := "never"
		if rd.drainedAt >= 0 {
			drained = rd.drainedAt.String()
		}
		fmt.Printf("  round %d: ticks=%d drained_after=%s\n", rd.round, rd.ticks, drained)
	}
	fmt.Printf("teardown: store_cleared=%v pollers_idle=%v\n", rs.storeCleared, rs.pollersIdle)
	fmt.Printf("darts: winner=%s %s\n", rs.winner, formatStandings(rs.standings))
	fmt.Println()
}

func formatStandings(standings []game.DartsStanding) string {
	if len(standings) == 0 {
		return "[]"
	}
	parts := make([]string, 0, len(standings))
	for _, st := range standings {
		parts = append(parts, fmt.Sprintf("%s:%d:%s", st.Name, st.Score, st.Highlight))
	}
	return "[" + strings.Join(parts, " ") + "]"
}

func printAggregate(all []runStats) {
	totalTicks := 0
	totalRounds := 0
	totalArmed := 0
	totalResets := 0
	totalStale := 0
	cleared := 0
	var drains []time.Duration
	winners := map[string]int{}

	for _, rs := range all {
		totalArmed += rs.timersArmed
		totalResets += rs.resets
		totalStale += rs.staleTicks
		if rs.storeCleared && rs.pollersIdle {
			cleared++
		}
		for _, rd := range rs.rounds {
			totalRounds++
			totalTicks += rd.ticks
			if rd.drainedAt >= 0 {
				drains = append(drains, rd.drainedAt)
			}
		}
		winners[rs.winner]++
	}

	fmt.Println("=== Aggregate ===")
	fmt.Printf("runs=%d rounds=%d\n", len(all), totalRounds)
	fmt.Printf("avg_per_round: ticks=%.1f drained_after=%s drained_rounds=%d/%d\n",
		avg(totalTicks, totalRounds), avgDurationString(drains), len(drains), totalRounds)
	fmt.Printf("avg_per_run: timers_armed=%.1f resets=%.1f stale_ticks=%.1f\n",
		avg(totalArmed, len(all)), avg(totalResets, len(all)), avg(totalStale, len(all)))
	fmt.Printf("clean_teardowns=%d/%d\n", cleared, len(all))
	fmt.Printf("darts_winners: %s\n", formatCounts(winners))
}

func avg(sum int, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func avgDurationString(vals []time.Duration) string {
	if len(vals) == 0 {
		return "n/a"
	}
	var sum time.Duration
	for _, v := range vals {
		sum += v
	}
	return (sum / time.Duration(len(vals))).String()
}

func formatCounts(counts map[string]int) string {
	if len(counts) == 0 {
		return "none"
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s(%d)", k, counts[k]))
	}
	return strings.Join(parts, ",")
}
