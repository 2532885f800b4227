package game

import (
	"errors"
	"testing"
)

func TestParseTimeLabel(t *testing.T) {
	cases := []struct {
		label string
		want  int
		ok    bool
	}{
		{"1:30", 90, true},
		{"01:30", 90, true},
		{"0:45", 45, true},
		{"10:00", 600, true},
		{" 2:05 ", 125, true},
		{"abc", 0, false},
		{"", 0, false},
		{"1:2:3", 0, false},
		{"x:30", 0, false},
		{"1:yy", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseTimeLabel(tc.label)
		if got != tc.want {
			t.Fatalf("ParseTimeLabel(%q) = %d, want %d", tc.label, got, tc.want)
		}
		if tc.ok && err != nil {
			t.Fatalf("ParseTimeLabel(%q) unexpected error: %v", tc.label, err)
		}
		if !tc.ok && !errors.Is(err, ErrTimeLabel) {
			t.Fatalf("ParseTimeLabel(%q) expected ErrTimeLabel, got %v", tc.label, err)
		}
	}
}

func TestFormatTimeLabel(t *testing.T) {
	for secs, want := range map[int]string{0: "0:00", 5: "0:05", 90: "1:30", 600: "10:00", -3: "0:00"} {
		if got := FormatTimeLabel(secs); got != want {
			t.Fatalf("FormatTimeLabel(%d) = %q, want %q", secs, got, want)
		}
	}
	if secs, _ := ParseTimeLabel(FormatTimeLabel(754)); secs != 754 {
		t.Fatalf("format/parse should agree, got %d", secs)
	}
}

func TestLoadOverlayConfigDefaults(t *testing.T) {
	s := NewMemStore()
	log := NewEventLog(nil, false)
	cfg := LoadOverlayConfig(s, log)
	if cfg.SquareCount != DefaultSquareCount || cfg.RoundDurationSeconds != 0 {
		t.Fatalf("empty store should give 9 squares and 0s, got %+v", cfg)
	}
	if !log.HasEntry("store", "no_round_time", "") {
		t.Fatal("missing round time should be logged")
	}
}

func TestLoadOverlayConfigReadsStore(t *testing.T) {
	s := NewMemStore()
	s.Set(KeySquareCount, "16")
	s.Set(KeyRoundDurationLabel, "2:00")
	cfg := LoadOverlayConfig(s, nil)
	if cfg.SquareCount != 16 || cfg.RoundDurationSeconds != 120 {
		t.Fatalf("expected 16 squares over 120s, got %+v", cfg)
	}
}

func TestLoadOverlayConfigRejectsBadValues(t *testing.T) {
	s := NewMemStore()
	s.Set(KeySquareCount, "500")
	s.Set(KeyRoundDurationLabel, "abc")
	log := NewEventLog(nil, false)
	cfg := LoadOverlayConfig(s, log)
	if cfg.SquareCount != DefaultSquareCount {
		t.Fatalf("out of range squares should fall back to 9, got %d", cfg.SquareCount)
	}
	if cfg.RoundDurationSeconds != 0 {
		t.Fatalf("bad label should give 0s, got %d", cfg.RoundDurationSeconds)
	}
	if !log.HasEntry("store", "bad_squares", "500") || !log.HasEntry("store", "bad_round_time", "abc") {
		t.Fatalf("bad values should be logged:\n%s", log.Format())
	}
}

func TestValidSquareCount(t *testing.T) {
	for n, want := range map[int]bool{0: false, 1: true, 9: true, 100: true, 101: false, -4: false} {
		if ValidSquareCount(n) != want {
			t.Fatalf("ValidSquareCount(%d) != %v", n, want)
		}
	}
}
