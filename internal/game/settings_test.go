package game

import (
	"errors"
	"testing"
)

func newTestInjector() (*SettingsInjector, *MemStore, *EventLog) {
	store := NewMemStore()
	log := NewEventLog(nil, false)
	return NewSettingsInjector(store, log, GridModeUI, DartsModeUI), store, log
}

func TestInjectIsIdempotent(t *testing.T) {
	si, _, _ := newTestInjector()
	card := NewSettingsContainer(SettingsLocal)
	if n := si.Inject(card); n != 2 {
		t.Fatalf("expected 2 groups injected, got %d", n)
	}
	for i := 0; i < 3; i++ {
		if n := si.Inject(card); n != 0 {
			t.Fatalf("repeat inject added %d groups", n)
		}
	}
	groups := card.Groups()
	if len(groups) != 2 || groups[0].Spec.GroupID != "gridModeUI" || groups[1].Spec.GroupID != "dartsModeUI" {
		t.Fatalf("unexpected groups %+v", groups)
	}
	if si.Injections != 2 {
		t.Fatalf("expected 2 injections, got %d", si.Injections)
	}
}

func TestInjectRestoresAfterRerender(t *testing.T) {
	si, store, _ := newTestInjector()
	store.Set(KeySquareCount, "16")
	local := NewSettingsContainer(SettingsLocal)
	online := NewSettingsContainer(SettingsOnline)
	si.InjectAll([]*SettingsContainer{local, online})

	online.Clear()
	if n := si.InjectAll([]*SettingsContainer{local, online}); n != 2 {
		t.Fatalf("only the re-rendered card should be refilled, added %d", n)
	}
	g := online.Group(GridModeUI.GroupID)
	if g == nil || g.Input != "16" {
		t.Fatalf("re-injected input should restore the stored value, got %+v", g)
	}
	if g.Enabled || g.InputVisible() {
		t.Fatal("a fresh group starts with the switch off and the input hidden")
	}
	if si.InjectAll(nil) != 0 || si.Inject(nil) != 0 {
		t.Fatal("missing cards should inject nothing")
	}
}

func TestToggleShowsInput(t *testing.T) {
	si, _, _ := newTestInjector()
	card := NewSettingsContainer(SettingsLocal)
	si.Inject(card)
	on, err := si.Toggle(card, GridModeUI.GroupID)
	if err != nil || !on {
		t.Fatalf("toggle should enable, on=%v err=%v", on, err)
	}
	if !card.Group(GridModeUI.GroupID).InputVisible() {
		t.Fatal("input should be visible while enabled")
	}
	if on, _ := si.Toggle(card, GridModeUI.GroupID); on {
		t.Fatal("second toggle should disable")
	}
	if _, err := si.Toggle(card, "nope"); !errors.Is(err, ErrUnknownControl) {
		t.Fatalf("expected ErrUnknownControl, got %v", err)
	}
}

func TestSubmitValidatesSquares(t *testing.T) {
	si, store, _ := newTestInjector()
	card := NewSettingsContainer(SettingsLocal)
	si.Inject(card)

	n, err := si.Submit(card, GridModeUI.GroupID, " 25 ")
	if err != nil || n != 25 {
		t.Fatalf("expected 25 accepted, got %d err=%v", n, err)
	}
	if v, _ := store.Get(KeySquareCount); v != "25" {
		t.Fatalf("expected stored 25, got %q", v)
	}

	for _, bad := range []string{"0", "101", "abc", ""} {
		_, err := si.Submit(card, GridModeUI.GroupID, bad)
		if !errors.Is(err, ErrInvalidSquares) {
			t.Fatalf("%q: expected ErrInvalidSquares, got %v", bad, err)
		}
		if card.Group(GridModeUI.GroupID).Input != "" {
			t.Fatalf("%q: invalid input should clear the field", bad)
		}
		if v, _ := store.Get(KeySquareCount); v != "25" {
			t.Fatalf("%q: invalid input must not overwrite the stored value, got %q", bad, v)
		}
	}
}

func TestSubmitValidatesDartsTarget(t *testing.T) {
	si, store, _ := newTestInjector()
	card := NewSettingsContainer(SettingsOnline)
	si.Inject(card)
	if _, err := si.Submit(card, DartsModeUI.GroupID, "30001"); !errors.Is(err, ErrInvalidTarget) {
		t.Fatalf("expected ErrInvalidTarget, got %v", err)
	}
	if n, err := si.Submit(card, DartsModeUI.GroupID, "30000"); err != nil || n != 30000 {
		t.Fatalf("30000 should be accepted, got %d err=%v", n, err)
	}
	if v, _ := store.Get(KeyDartsTarget); v != "30000" {
		t.Fatalf("expected stored target, got %q", v)
	}
}

func TestRemoveGroupFromCards(t *testing.T) {
	si, _, log := newTestInjector()
	local := NewSettingsContainer(SettingsLocal)
	online := NewSettingsContainer(SettingsOnline)
	cards := []*SettingsContainer{local, online, nil}
	si.InjectAll(cards)
	if n := si.Remove(cards, GridModeUI.GroupID); n != 2 {
		t.Fatalf("expected removal from 2 cards, got %d", n)
	}
	if local.Group(GridModeUI.GroupID) != nil || local.Group(DartsModeUI.GroupID) == nil {
		t.Fatal("only the grid group should be removed")
	}
	if !log.HasEntry("settings", "remove", "gridModeUI") {
		t.Fatal("removal should be logged")
	}
}
