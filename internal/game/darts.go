package game

import (
	"sort"
	"strconv"
	"strings"
	"unicode"
)

// PlayerResult is one row of the online end-of-game results.
type PlayerResult struct {
	Name      string
	TotalText string // score text as displayed, e.g. "12,345"
}

// Highlight is the colour a result row gets in Darts Mode.
type Highlight int

const (
	HighlightNone    Highlight = iota
	HighlightBust              // total above target
	HighlightPerfect           // total equals target
	HighlightValid             // below target
	HighlightWinner            // closest valid total
)

func (h Highlight) String() string {
	switch h {
	case HighlightBust:
		return "bust"
	case HighlightPerfect:
		return "perfect"
	case HighlightValid:
		return "valid"
	case HighlightWinner:
		return "winner"
	default:
		return "none"
	}
}

// DartsStanding is a classified result row, in display order.
type DartsStanding struct {
	Name      string
	Score     int
	Diff      int // target - score, only meaningful for valid rows
	Highlight Highlight
}

// ParseScoreText extracts the digits of a displayed score ("12,345 pts" → 12345).
func ParseScoreText(text string) (int, bool) {
	var sb strings.Builder
	for _, r := range text {
		if unicode.IsDigit(r) {
			sb.WriteRune(r)
		}
	}
	if sb.Len() == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(sb.String())
	if err != nil {
		return 0, false
	}
	return n, true
}

// ClassifyDarts highlights every row against target. Rows without a
// readable total are skipped. Among rows below the target, the smallest
// difference wins; ties go to the row shown first.
func ClassifyDarts(results []PlayerResult, target int) []DartsStanding {
	out := make([]DartsStanding, 0, len(results))
	var valid []int
	for _, r := range results {
		score, ok := ParseScoreText(r.TotalText)
		if !ok {
			continue
		}
		name := strings.TrimSpace(r.Name)
		if name == "" {
			name = "Unknown"
		}
		st := DartsStanding{Name: name, Score: score}
		switch {
		case score > target:
			st.Highlight = HighlightBust
		case score == target:
			st.Highlight = HighlightPerfect
		default:
			st.Highlight = HighlightValid
			st.Diff = target - score
			valid = append(valid, len(out))
		}
		out = append(out, st)
	}
	if len(valid) > 0 {
		sort.SliceStable(valid, func(i, j int) bool { return out[valid[i]].Diff < out[valid[j]].Diff })
		out[valid[0]].Highlight = HighlightWinner
	}
	return out
}

// TargetScore reads the stored darts target.
func TargetScore(s Store) (int, bool) {
	raw, ok := s.Get(KeyDartsTarget)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// DartsTracker keeps the target score box and the last scoreboard pass.
type DartsTracker struct {
	store     Store
	log       *EventLog
	display   string
	standings []DartsStanding
}

// NewDartsTracker creates a tracker whose box reads "Not set".
func NewDartsTracker(store Store, log *EventLog) *DartsTracker {
	return &DartsTracker{store: store, log: log, display: "Not set"}
}

// RefreshTarget updates and returns the target box text.
func (d *DartsTracker) RefreshTarget() string {
	if raw, ok := d.store.Get(KeyDartsTarget); ok && raw != "" {
		d.display = raw
	} else {
		d.display = "Not set"
	}
	return d.display
}

// TargetText returns the target box text from the last refresh.
func (d *DartsTracker) TargetText() string { return d.display }

// Check classifies results against the stored target. Without a valid
// target or without results the previous standings are cleared.
func (d *DartsTracker) Check(results []PlayerResult) []DartsStanding {
	target, ok := TargetScore(d.store)
	if !ok {
		d.standings = nil
		return nil
	}
	if len(results) == 0 {
		d.standings = nil
		return nil
	}
	d.standings = ClassifyDarts(results, target)
	for _, st := range d.standings {
		if st.Highlight == HighlightWinner {
			d.log.Addf("darts", "winner", "%s score=%d diff=%d", st.Name, st.Score, st.Diff)
			return d.standings
		}
	}
	d.log.Add("darts", "no_winner", "no valid non-busted players")
	return d.standings
}

// Standings returns the result of the last Check.
func (d *DartsTracker) Standings() []DartsStanding { return d.standings }
