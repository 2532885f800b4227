package game

import (
	"fmt"
	"strings"
	"time"
)

// EventLogEntry is one recorded event during a session.
type EventLogEntry struct {
	At       time.Duration
	Round    int    // 0 outside a round
	Category string // overlay, removal, poll, settings, darts, camera, store, session
	Key      string // specific event name within the category
	Value    string // human-readable detail
}

// String formats the entry as a fixed-width log line.
//
//	[  12.500s R2] removal  tick            index=4 remaining=7
func (e EventLogEntry) String() string {
	return fmt.Sprintf("[%8.3fs R%d] %-9s %-16s %s",
		e.At.Seconds(), e.Round, e.Category, e.Key, e.Value)
}

// EventLog collects structured events stamped with the scheduler's time.
// A nil *EventLog discards everything, so components can log unconditionally.
type EventLog struct {
	clock   Scheduler
	round   int
	entries []EventLogEntry
	verbose bool

	// OnAdd, when set, receives every recorded entry (the viewer mirrors
	// entries into its on-screen panel).
	OnAdd func(EventLogEntry)
}

// NewEventLog creates a log stamped by clock. If verbose is true, per-poll
// entries are also recorded.
func NewEventLog(clock Scheduler, verbose bool) *EventLog {
	return &EventLog{clock: clock, verbose: verbose}
}

// SetRound sets the round number stamped onto subsequent entries.
func (el *EventLog) SetRound(round int) {
	if el == nil {
		return
	}
	el.round = round
}

// Add records a new entry.
func (el *EventLog) Add(category, key, value string) {
	if el == nil {
		return
	}
	var at time.Duration
	if el.clock != nil {
		at = el.clock.Now()
	}
	e := EventLogEntry{
		At:       at,
		Round:    el.round,
		Category: category,
		Key:      key,
		Value:    value,
	}
	el.entries = append(el.entries, e)
	if el.OnAdd != nil {
		el.OnAdd(e)
	}
}

// Addf records a new entry with a formatted value.
func (el *EventLog) Addf(category, key, format string, args ...any) {
	if el == nil {
		return
	}
	el.Add(category, key, fmt.Sprintf(format, args...))
}

// AddVerbose records an entry only when verbose mode is on.
func (el *EventLog) AddVerbose(category, key, value string) {
	if el == nil || !el.verbose {
		return
	}
	el.Add(category, key, value)
}

// Entries returns all recorded entries.
func (el *EventLog) Entries() []EventLogEntry {
	if el == nil {
		return nil
	}
	return el.entries
}

// Filter returns entries matching the given category and/or key.
// Pass empty string to match any value for that field.
func (el *EventLog) Filter(category, key string) []EventLogEntry {
	var out []EventLogEntry
	for _, e := range el.Entries() {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		out = append(out, e)
	}
	return out
}

// FilterRound returns entries stamped with the given round.
func (el *EventLog) FilterRound(round int) []EventLogEntry {
	var out []EventLogEntry
	for _, e := range el.Entries() {
		if e.Round == round {
			out = append(out, e)
		}
	}
	return out
}

// CountCategory returns how many entries match the given category and key.
func (el *EventLog) CountCategory(category, key string) int {
	return len(el.Filter(category, key))
}

// LastOf returns the most recent entry matching category+key, or false if none.
func (el *EventLog) LastOf(category, key string) (EventLogEntry, bool) {
	entries := el.Filter(category, key)
	if len(entries) == 0 {
		return EventLogEntry{}, false
	}
	return entries[len(entries)-1], true
}

// HasEntry returns true if at least one entry matches category, key, and value substring.
func (el *EventLog) HasEntry(category, key, valueSubstr string) bool {
	for _, e := range el.Entries() {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		if valueSubstr != "" && !strings.Contains(e.Value, valueSubstr) {
			continue
		}
		return true
	}
	return false
}

// Format returns the full log as a single string.
func (el *EventLog) Format() string {
	var sb strings.Builder
	for _, e := range el.Entries() {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
