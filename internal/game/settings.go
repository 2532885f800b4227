package game

import (
	"fmt"
	"strconv"
	"strings"
)

// ModeSpec describes one injected settings group: a switch and a numeric
// input that only shows while the switch is on.
type ModeSpec struct {
	GroupID     string
	SwitchID    string
	InputID     string
	Label       string
	Placeholder string
	Min, Max    int
	StoreKey    string
	Err         error // wrapped when the input is out of range
}

// GridModeUI is the Grid Mode switch and square count input.
var GridModeUI = ModeSpec{
	GroupID:     "gridModeUI",
	SwitchID:    "gridModeSwitch",
	InputID:     "gridSquaresInput",
	Label:       "Grid Mode",
	Placeholder: "Enter number of squares",
	Min:         MinSquareCount,
	Max:         MaxSquareCount,
	StoreKey:    KeySquareCount,
	Err:         ErrInvalidSquares,
}

// DartsModeUI is the Darts Mode switch and target score input.
var DartsModeUI = ModeSpec{
	GroupID:     "dartsModeUI",
	SwitchID:    "dartsModeSwitch",
	InputID:     "dartsTarget",
	Label:       "Darts Mode",
	Placeholder: "Enter Target Score",
	Min:         1,
	Max:         30000,
	StoreKey:    KeyDartsTarget,
	Err:         ErrInvalidTarget,
}

// ModeGroup is an injected instance of a ModeSpec.
type ModeGroup struct {
	Spec    ModeSpec
	Enabled bool
	Input   string
}

// InputVisible reports whether the numeric input is shown.
func (g *ModeGroup) InputVisible() bool { return g.Enabled }

// SettingsKind distinguishes the lobby settings cards.
type SettingsKind int

const (
	SettingsLocal SettingsKind = iota
	SettingsOnline
)

func (k SettingsKind) String() string {
	if k == SettingsOnline {
		return "online"
	}
	return "local"
}

// SettingsContainer is a settings card that groups can be injected into.
// The host owns it; groups vanish when the host rebuilds the card.
type SettingsContainer struct {
	Kind   SettingsKind
	groups []*ModeGroup
}

// NewSettingsContainer returns an empty card.
func NewSettingsContainer(kind SettingsKind) *SettingsContainer {
	return &SettingsContainer{Kind: kind}
}

// Group returns the injected group with the given id, or nil.
func (c *SettingsContainer) Group(id string) *ModeGroup {
	for _, g := range c.groups {
		if g.Spec.GroupID == id {
			return g
		}
	}
	return nil
}

// Groups returns the injected groups in injection order.
func (c *SettingsContainer) Groups() []*ModeGroup {
	return c.groups
}

// Clear drops every injected group, as when the host re-renders the card.
func (c *SettingsContainer) Clear() {
	c.groups = nil
}

func (c *SettingsContainer) remove(id string) bool {
	for i, g := range c.groups {
		if g.Spec.GroupID == id {
			c.groups = append(c.groups[:i], c.groups[i+1:]...)
			return true
		}
	}
	return false
}

// SettingsInjector adds mode groups to settings cards and persists their
// input. Injection is keyed by group id, so repeated passes are harmless and
// one poller can serve the local and online cards alike.
type SettingsInjector struct {
	store Store
	log   *EventLog
	specs []ModeSpec

	// Injections counts groups added over the injector's lifetime.
	Injections int
}

// NewSettingsInjector injects the given specs, in order, into every card.
func NewSettingsInjector(store Store, log *EventLog, specs ...ModeSpec) *SettingsInjector {
	return &SettingsInjector{store: store, log: log, specs: specs}
}

// Inject adds any missing groups to c and returns how many were added.
func (si *SettingsInjector) Inject(c *SettingsContainer) int {
	if c == nil {
		return 0
	}
	added := 0
	for _, spec := range si.specs {
		if c.Group(spec.GroupID) != nil {
			continue
		}
		g := &ModeGroup{Spec: spec}
		if v, ok := si.store.Get(spec.StoreKey); ok {
			g.Input = v
		}
		c.groups = append(c.groups, g)
		added++
		si.Injections++
		si.log.Addf("settings", "inject", "%s into %s settings", spec.GroupID, c.Kind)
	}
	return added
}

// InjectAll runs Inject over every card.
func (si *SettingsInjector) InjectAll(cs []*SettingsContainer) int {
	n := 0
	for _, c := range cs {
		n += si.Inject(c)
	}
	return n
}

// Toggle flips the switch of the given group and returns its new state.
func (si *SettingsInjector) Toggle(c *SettingsContainer, groupID string) (bool, error) {
	g := c.Group(groupID)
	if g == nil {
		return false, fmt.Errorf("%w: %s", ErrUnknownControl, groupID)
	}
	g.Enabled = !g.Enabled
	state := "disabled"
	if g.Enabled {
		state = "enabled"
	}
	si.log.Addf("settings", "toggle", "%s %s", g.Spec.Label, state)
	return g.Enabled, nil
}

// Submit validates and stores the input of the given group. Out-of-range or
// non-numeric input clears the field and returns an error wrapping the
// spec's Err.
func (si *SettingsInjector) Submit(c *SettingsContainer, groupID, value string) (int, error) {
	g := c.Group(groupID)
	if g == nil {
		return 0, fmt.Errorf("%w: %s", ErrUnknownControl, groupID)
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || n < g.Spec.Min || n > g.Spec.Max {
		g.Input = ""
		si.log.Addf("settings", "invalid", "%s rejected %q", g.Spec.InputID, value)
		return 0, fmt.Errorf("%w: got %q", g.Spec.Err, value)
	}
	g.Input = strconv.Itoa(n)
	si.store.Set(g.Spec.StoreKey, g.Input)
	si.log.Addf("settings", "store", "%s=%d", g.Spec.StoreKey, n)
	return n, nil
}

// Remove takes the given group out of every card and returns how many were removed.
func (si *SettingsInjector) Remove(cs []*SettingsContainer, groupID string) int {
	n := 0
	for _, c := range cs {
		if c != nil && c.remove(groupID) {
			n++
		}
	}
	if n > 0 {
		si.log.Addf("settings", "remove", "%s from %d card(s)", groupID, n)
	}
	return n
}
