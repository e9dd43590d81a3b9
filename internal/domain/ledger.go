package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
)

// Ledger holds every member's weight history, each sequence ascending by
// date. Entry ids are unique across the whole ledger.
type Ledger struct {
	roster  *Roster
	entries map[string][]WeightEntry
	lastID  int64
}

// ChartRow is one date of the merged chart table. Weights has a key for
// every roster member; the value is nil when the member has no entry on
// that exact date.
type ChartRow struct {
	Date    string              `json:"date"`
	Weights map[string]*float64 `json:"weights"`
}

// NewLedger creates an empty ledger for the roster.
func NewLedger(roster *Roster) *Ledger {
	l := &Ledger{
		roster:  roster,
		entries: make(map[string][]WeightEntry, len(roster.members)),
	}
	for _, k := range roster.Keys() {
		l.entries[k] = []WeightEntry{}
	}
	return l
}

// Roster returns the roster the ledger was built for.
func (l *Ledger) Roster() *Roster {
	return l.roster
}

func (l *Ledger) member(key string) (Member, error) {
	m, ok := l.roster.Get(key)
	if !ok {
		return Member{}, &UnknownMemberError{Key: key}
	}
	return m, nil
}

// Add validates and inserts a new entry, keeping the member's history sorted
// by date. Entries sharing a date keep their insertion order. The ledger is
// untouched when validation fails.
func (l *Ledger) Add(member, date string, weight float64) (WeightEntry, error) {
	if _, err := l.member(member); err != nil {
		return WeightEntry{}, err
	}
	day, err := ParseDate(date)
	if err != nil {
		return WeightEntry{}, err
	}
	if err := ValidateWeight(weight); err != nil {
		return WeightEntry{}, err
	}

	l.lastID++
	e := WeightEntry{ID: l.lastID, Date: day, Weight: weight}
	history := append(l.entries[member], e)
	sortByDate(history)
	l.entries[member] = history
	return e, nil
}

// Delete removes the entry with the given id from the member's history.
// It reports whether an entry was removed; a missing id is not an error.
func (l *Ledger) Delete(member string, id int64) (bool, error) {
	if _, err := l.member(member); err != nil {
		return false, err
	}
	history := l.entries[member]
	for i, e := range history {
		if e.ID == id {
			out := make([]WeightEntry, 0, len(history)-1)
			out = append(out, history[:i]...)
			out = append(out, history[i+1:]...)
			l.entries[member] = out
			return true, nil
		}
	}
	return false, nil
}

// History returns a copy of the member's entries in date order.
func (l *Ledger) History(member string) ([]WeightEntry, error) {
	if _, err := l.member(member); err != nil {
		return nil, err
	}
	history := l.entries[member]
	out := make([]WeightEntry, len(history))
	copy(out, history)
	return out, nil
}

// Latest returns the weight of the chronologically last entry, or the
// member's starting weight when there are no entries.
func (l *Ledger) Latest(member string) (float64, error) {
	m, err := l.member(member)
	if err != nil {
		return 0, err
	}
	history := l.entries[member]
	if len(history) == 0 {
		return m.StartWeight, nil
	}
	return history[len(history)-1].Weight, nil
}

// Progress returns the share of the weight-loss goal achieved, clamped to
// [0, 100].
func (l *Ledger) Progress(member string) (float64, error) {
	m, err := l.member(member)
	if err != nil {
		return 0, err
	}
	latest, err := l.Latest(member)
	if err != nil {
		return 0, err
	}
	return ProgressPercent(m.StartWeight, m.TargetWeight, latest), nil
}

// ProgressPercent computes clamp(0, 100, (start-latest)/(start-target)*100).
// A goal that asks for no loss yields 0.
func ProgressPercent(start, target, latest float64) float64 {
	span := start - target
	if span <= 0 {
		return 0
	}
	pct := (start - latest) / span * 100
	switch {
	case math.IsNaN(pct):
		return 0
	case pct < 0:
		return 0
	case pct > 100:
		return 100
	}
	return pct
}

// Len returns the number of entries across all members.
func (l *Ledger) Len() int {
	n := 0
	for _, h := range l.entries {
		n += len(h)
	}
	return n
}

// ChartSeries merges all members' histories into one table, one row per
// distinct date in ascending order. A member's value for a date is its first
// entry on exactly that date; there is no interpolation.
func (l *Ledger) ChartSeries() []ChartRow {
	keys := l.roster.Keys()

	byDate := make(map[string]map[string]*float64)
	for _, k := range keys {
		for _, e := range l.entries[k] {
			row, ok := byDate[e.Date]
			if !ok {
				row = make(map[string]*float64, len(keys))
				byDate[e.Date] = row
			}
			if _, seen := row[k]; seen {
				continue
			}
			w := e.Weight
			row[k] = &w
		}
	}

	dates := make([]string, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	rows := make([]ChartRow, 0, len(dates))
	for _, d := range dates {
		weights := make(map[string]*float64, len(keys))
		for _, k := range keys {
			weights[k] = byDate[d][k]
		}
		rows = append(rows, ChartRow{Date: d, Weights: weights})
	}
	return rows
}

// MarshalJSON encodes the ledger as an object keyed by member, every roster
// member present.
func (l *Ledger) MarshalJSON() ([]byte, error) {
	out := make(map[string][]WeightEntry, len(l.entries))
	for _, k := range l.roster.Keys() {
		history := l.entries[k]
		if history == nil {
			history = []WeightEntry{}
		}
		out[k] = history
	}
	return json.Marshal(out)
}

// DecodeLedger rebuilds a ledger from its JSON form. Unknown member keys,
// entries that fail validation and duplicate ids are skipped and counted.
// Entries without an id get a fresh one. A malformed document is an error.
func DecodeLedger(roster *Roster, data []byte) (*Ledger, int, error) {
	var raw map[string][]WeightEntry
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, 0, fmt.Errorf("decode ledger: %w", err)
	}

	l := NewLedger(roster)
	skipped := 0
	seen := make(map[int64]bool)
	var unnumbered []*WeightEntry

	for key, history := range raw {
		if !roster.Has(key) {
			skipped += len(history)
		}
	}
	for _, key := range roster.Keys() {
		history := raw[key]
		kept := make([]WeightEntry, 0, len(history))
		for _, e := range history {
			day, err := ParseDate(e.Date)
			if err != nil || ValidateWeight(e.Weight) != nil {
				skipped++
				continue
			}
			e.Date = day
			if e.ID > 0 {
				if seen[e.ID] {
					skipped++
					continue
				}
				seen[e.ID] = true
				if e.ID > l.lastID {
					l.lastID = e.ID
				}
			}
			kept = append(kept, e)
		}
		sortByDate(kept)
		l.entries[key] = kept
	}

	for _, k := range roster.Keys() {
		history := l.entries[k]
		for i := range history {
			if history[i].ID <= 0 {
				unnumbered = append(unnumbered, &history[i])
			}
		}
	}
	for _, e := range unnumbered {
		l.lastID++
		e.ID = l.lastID
	}
	return l, skipped, nil
}

func sortByDate(history []WeightEntry) {
	sort.SliceStable(history, func(i, j int) bool {
		return history[i].Date < history[j].Date
	})
}
