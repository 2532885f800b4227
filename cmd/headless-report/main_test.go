package main

import (
	"testing"
	"time"

	"github.com/Garsondee/Grid-Mode/internal/game"
)

func TestParseInterval(t *testing.T) {
	got := parseInterval("round=90s cells=9 interval=10s")
	if got != 10*time.Second {
		t.Fatalf("expected 10s, got %s", got)
	}
	if got := parseInterval("round=90s cells=9"); got != 0 {
		t.Fatalf("expected 0 without interval field, got %s", got)
	}
}

func TestCountInRoundAndFirstAt(t *testing.T) {
	entries := []game.EventLogEntry{
		{At: 1 * time.Second, Round: 1, Category: "removal", Key: "tick"},
		{At: 2 * time.Second, Round: 1, Category: "removal", Key: "tick"},
		{At: 3 * time.Second, Round: 1, Category: "removal", Key: "drained"},
		{At: 4 * time.Second, Round: 2, Category: "removal", Key: "tick"},
	}
	if n := countInRound(entries, 1, "removal", "tick"); n != 2 {
		t.Fatalf("expected 2 ticks in round 1, got %d", n)
	}
	if n := countInRound(entries, 2, "removal", "tick"); n != 1 {
		t.Fatalf("expected 1 tick in round 2, got %d", n)
	}
	at, ok := firstAt(entries, 1, "removal", "drained")
	if !ok || at != 3*time.Second {
		t.Fatalf("expected drained at 3s, got %s ok=%v", at, ok)
	}
	if _, ok := firstAt(entries, 2, "removal", "drained"); ok {
		t.Fatal("round 2 never drained")
	}
}

func TestWinnerName(t *testing.T) {
	if got := winnerName(nil); got != "n/a" {
		t.Fatalf("expected n/a for empty standings, got %s", got)
	}
	busted := []game.DartsStanding{{Name: "Sam", Highlight: game.HighlightBust}}
	if got := winnerName(busted); got != "none" {
		t.Fatalf("expected none when everyone busted, got %s", got)
	}
	mixed := []game.DartsStanding{
		{Name: "Sam", Highlight: game.HighlightValid},
		{Name: "Alex", Highlight: game.HighlightWinner},
	}
	if got := winnerName(mixed); got != "Alex" {
		t.Fatalf("expected Alex, got %s", got)
	}
}

func TestAvgDurationString(t *testing.T) {
	if got := avgDurationString(nil); got != "n/a" {
		t.Fatalf("expected n/a, got %s", got)
	}
	got := avgDurationString([]time.Duration{89 * time.Second, 91 * time.Second})
	if got != "1m30s" {
		t.Fatalf("expected 1m30s, got %s", got)
	}
	if avg(3, 0) != 0 {
		t.Fatal("avg with n=0 should be 0")
	}
}

func TestRunSessionLocalDrainsEveryRound(t *testing.T) {
	cfg := config{rounds: 3, squares: 9, timeLabel: "1:30", target: 15000, mode: "local"}
	rs := runSession(1, 42, cfg, 90)
	if rs.cells != 9 || rs.interval != 10*time.Second {
		t.Fatalf("expected 9 cells every 10s, got cells=%d interval=%s", rs.cells, rs.interval)
	}
	if len(rs.rounds) != 3 {
		t.Fatalf("expected 3 rounds, got %d", len(rs.rounds))
	}
	for _, rd := range rs.rounds {
		if rd.ticks != 9 {
			t.Fatalf("round %d: expected 9 ticks, got %d", rd.round, rd.ticks)
		}
		if rd.drainedAt < 0 {
			t.Fatalf("round %d never drained", rd.round)
		}
	}
	if !rs.storeCleared || !rs.pollersIdle {
		t.Fatalf("expected clean teardown, store_cleared=%v pollers_idle=%v", rs.storeCleared, rs.pollersIdle)
	}
	if rs.staleTicks != 0 {
		t.Fatalf("expected no stale ticks, got %d", rs.staleTicks)
	}
}

func TestRunSessionOnlineDrainsEveryRound(t *testing.T) {
	cfg := config{rounds: 2, squares: 16, timeLabel: "2:00", mode: "online"}
	rs := runSession(1, 7, cfg, 120)
	if rs.cells != 16 {
		t.Fatalf("expected 16 cells, got %d", rs.cells)
	}
	for _, rd := range rs.rounds {
		if rd.ticks != 16 {
			t.Fatalf("round %d: expected 16 ticks, got %d", rd.round, rd.ticks)
		}
	}
	if rs.resets != 2 {
		t.Fatalf("expected one reset per online round, got %d", rs.resets)
	}
	if !rs.storeCleared {
		t.Fatal("expected grid flags cleared on back to lobby")
	}
}
