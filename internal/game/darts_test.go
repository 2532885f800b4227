package game

import "testing"

func TestParseScoreText(t *testing.T) {
	cases := map[string]int{"12,345": 12345, "500 pts": 500, "0": 0, " 1 2 ": 12}
	for text, want := range cases {
		got, ok := ParseScoreText(text)
		if !ok || got != want {
			t.Fatalf("ParseScoreText(%q) = %d,%v want %d", text, got, ok, want)
		}
	}
	if _, ok := ParseScoreText("--"); ok {
		t.Fatal("text without digits should not parse")
	}
}

func TestClassifyDarts(t *testing.T) {
	results := []PlayerResult{
		{Name: "Alex", TotalText: "15,200"},
		{Name: "Sam", TotalText: "14,100"},
		{Name: "", TotalText: "14,800"},
		{Name: "Robin", TotalText: "15,000"},
		{Name: "Ghost", TotalText: "-"},
	}
	got := ClassifyDarts(results, 15000)
	if len(got) != 4 {
		t.Fatalf("unreadable rows should be skipped, got %d rows", len(got))
	}
	want := []struct {
		name string
		hl   Highlight
		diff int
	}{
		{"Alex", HighlightBust, 0},
		{"Sam", HighlightValid, 900},
		{"Unknown", HighlightWinner, 200},
		{"Robin", HighlightPerfect, 0},
	}
	for i, w := range want {
		if got[i].Name != w.name || got[i].Highlight != w.hl || got[i].Diff != w.diff {
			t.Fatalf("row %d: got %+v, want %s %s diff=%d", i, got[i], w.name, w.hl, w.diff)
		}
	}
}

func TestClassifyDartsTieGoesToFirstRow(t *testing.T) {
	got := ClassifyDarts([]PlayerResult{
		{Name: "A", TotalText: "900"},
		{Name: "B", TotalText: "950"},
		{Name: "C", TotalText: "950"},
	}, 1000)
	if got[1].Highlight != HighlightWinner || got[2].Highlight != HighlightValid {
		t.Fatalf("first of tied rows should win, got %+v", got)
	}
}

func TestClassifyDartsAllBust(t *testing.T) {
	got := ClassifyDarts([]PlayerResult{{Name: "A", TotalText: "2000"}}, 1000)
	if got[0].Highlight != HighlightBust {
		t.Fatalf("expected bust, got %s", got[0].Highlight)
	}
}

func TestDartsTracker(t *testing.T) {
	store := NewMemStore()
	log := NewEventLog(nil, false)
	d := NewDartsTracker(store, log)
	if d.TargetText() != "Not set" {
		t.Fatalf("expected Not set, got %q", d.TargetText())
	}
	results := []PlayerResult{{Name: "A", TotalText: "400"}, {Name: "B", TotalText: "600"}}
	if d.Check(results) != nil {
		t.Fatal("no target, no standings")
	}

	store.Set(KeyDartsTarget, "500")
	if d.RefreshTarget() != "500" {
		t.Fatalf("expected 500, got %q", d.TargetText())
	}
	st := d.Check(results)
	if len(st) != 2 || st[0].Highlight != HighlightWinner || st[1].Highlight != HighlightBust {
		t.Fatalf("unexpected standings %+v", st)
	}
	if !log.HasEntry("darts", "winner", "A") {
		t.Fatalf("winner should be logged:\n%s", log.Format())
	}

	if d.Check(nil) != nil || d.Standings() != nil {
		t.Fatal("empty results should clear standings")
	}
	d.Check([]PlayerResult{{Name: "B", TotalText: "600"}})
	if !log.HasEntry("darts", "no_winner", "") {
		t.Fatal("all bust should log no winner")
	}

	store.Remove(KeyDartsTarget)
	if d.RefreshTarget() != "Not set" {
		t.Fatal("removed target should read Not set")
	}
}

func TestTargetScoreRejectsInvalid(t *testing.T) {
	store := NewMemStore()
	for _, v := range []string{"abc", "0", "-5"} {
		store.Set(KeyDartsTarget, v)
		if _, ok := TargetScore(store); ok {
			t.Fatalf("%q should not be a valid target", v)
		}
	}
}
