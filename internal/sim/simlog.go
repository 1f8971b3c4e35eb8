package sim

import (
	"fmt"
	"strings"
)

// SimLog categories.
const (
	CatMove      = "move"
	CatGhost     = "ghost"
	CatClock     = "clock"
	CatDetect    = "detect"
	CatTakedown  = "takedown"
	CatObjective = "objective"
	CatDeath     = "death"
	CatAnim      = "anim"
	CatStage     = "stage"
)

// SimLogEntry is one recorded event of a world.
type SimLogEntry struct {
	Tick     int
	Stamp    float64 // absolute session time when the event happened
	Actor    string  // actor name, or "--" for world events
	Category string
	Key      string  // specific event name within the category
	Value    string  // human-readable detail
	NumVal   float64 // optional numeric value for threshold checks
}

// String formats the entry as a fixed-width log line.
//
//	[T=0042  2.10s] Enemy    detect    spotted         player at 0.31 rad
func (e SimLogEntry) String() string {
	return fmt.Sprintf("[T=%04d %6.2fs] %-8s %-9s %-15s %s",
		e.Tick, e.Stamp, e.Actor, e.Category, e.Key, e.Value)
}

// SimLog collects structured events while a world runs. It is unbounded and
// machine-readable; hosts that only want the latest few lines subscribe to
// it and keep their own ring.
type SimLog struct {
	entries   []SimLogEntry
	verbose   bool
	listeners []func(SimLogEntry)
}

// NewSimLog creates a SimLog. If verbose is true, per-tick entries such as
// ghost samples and animation changes are also recorded.
func NewSimLog(verbose bool) *SimLog {
	return &SimLog{verbose: verbose}
}

// Subscribe calls fn for every entry added from now on.
func (sl *SimLog) Subscribe(fn func(SimLogEntry)) {
	sl.listeners = append(sl.listeners, fn)
}

// Add records a new entry.
func (sl *SimLog) Add(tick int, stamp float64, actor, category, key, value string, numVal float64) {
	e := SimLogEntry{
		Tick:     tick,
		Stamp:    stamp,
		Actor:    actor,
		Category: category,
		Key:      key,
		Value:    value,
		NumVal:   numVal,
	}
	sl.entries = append(sl.entries, e)
	for _, fn := range sl.listeners {
		fn(e)
	}
}

// AddVerbose records an entry only when verbose mode is on.
func (sl *SimLog) AddVerbose(tick int, stamp float64, actor, category, key, value string, numVal float64) {
	if !sl.verbose {
		return
	}
	sl.Add(tick, stamp, actor, category, key, value, numVal)
}

// Entries returns all recorded entries.
func (sl *SimLog) Entries() []SimLogEntry {
	return sl.entries
}

// Filter returns entries matching the given category and/or key.
// Pass empty string to match any value for that field.
func (sl *SimLog) Filter(category, key string) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
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

// FilterActor returns entries for one actor name.
func (sl *SimLog) FilterActor(name string) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if e.Actor == name {
			out = append(out, e)
		}
	}
	return out
}

// FilterTickRange returns entries within [fromTick, toTick] inclusive.
func (sl *SimLog) FilterTickRange(fromTick, toTick int) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if e.Tick >= fromTick && e.Tick <= toTick {
			out = append(out, e)
		}
	}
	return out
}

// CountCategory returns how many entries match the given category and key.
func (sl *SimLog) CountCategory(category, key string) int {
	return len(sl.Filter(category, key))
}

// LastOf returns the most recent entry matching category+key, or false if none.
func (sl *SimLog) LastOf(category, key string) (SimLogEntry, bool) {
	for i := len(sl.entries) - 1; i >= 0; i-- {
		e := sl.entries[i]
		if (category == "" || e.Category == category) && (key == "" || e.Key == key) {
			return e, true
		}
	}
	return SimLogEntry{}, false
}

// HasEntry returns true if at least one entry matches category, key, and value substring.
func (sl *SimLog) HasEntry(category, key, valueSubstr string) bool {
	for _, e := range sl.entries {
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

// Format returns the full log as a single string for t.Log output.
func (sl *SimLog) Format() string {
	return formatEntries(sl.entries)
}

// FormatRange returns a log string filtered to a tick range.
func (sl *SimLog) FormatRange(fromTick, toTick int) string {
	return formatEntries(sl.FilterTickRange(fromTick, toTick))
}

func formatEntries(entries []SimLogEntry) string {
	var sb strings.Builder
	for _, e := range entries {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Summary returns a short human-readable summary of a world's state.
func (sl *SimLog) Summary(w *World) string {
	var sb strings.Builder
	clock := w.Clock()
	fmt.Fprintf(&sb, "--- Summary at T=%04d ---\n", w.Tick())
	fmt.Fprintf(&sb, "Clock: %.2f/%.2fs  generation=%d\n", clock.CurrentTime, clock.MaxTime, clock.Generation)

	p := w.Player()
	fmt.Fprintf(&sb, "Player: %s at (%.2f, %.2f)\n", p.Life.Phase(), p.Transform.Translation.X, p.Transform.Translation.Z)

	counts := map[GuardMode]int{}
	for _, g := range w.Guards() {
		counts[g.State.Mode()]++
	}
	fmt.Fprintf(&sb, "Guards: patrolling=%d  shooting=%d  down=%d\n",
		counts[GuardPatrolling], counts[GuardShooting], counts[GuardDown])
	fmt.Fprintf(&sb, "Ghosts: %d  samples=%d\n", len(w.Ghosts()), w.GhostPath().Len())
	fmt.Fprintf(&sb, "Events: detections=%d  takedowns=%d  wraps=%d\n",
		sl.CountCategory(CatDetect, "spotted"), sl.CountCategory(CatTakedown, ""), sl.CountCategory(CatClock, "wrap"))
	return sb.String()
}
