package entity

import (
	"sort"
	"strings"
)

// SlotKey is the unit of mutual exclusion: one slot label of one court on one date.
// Dates and labels are compared as exact strings.
type SlotKey struct {
	CourtID string
	Date    string
	Slot    string
}

// NormalizeSlots trims labels, drops empty ones and collapses duplicates while
// keeping the first occurrence order. Slot order carries no meaning for conflicts.
func NormalizeSlots(slots []string) []string {
	seen := make(map[string]struct{}, len(slots))
	out := make([]string, 0, len(slots))
	for _, slot := range slots {
		slot = strings.TrimSpace(slot)
		if slot == "" {
			continue
		}
		if _, ok := seen[slot]; ok {
			continue
		}
		seen[slot] = struct{}{}
		out = append(out, slot)
	}
	return out
}

func KeysFor(courtID, date string, slots []string) []SlotKey {
	normalized := NormalizeSlots(slots)
	keys := make([]SlotKey, len(normalized))
	for i, slot := range normalized {
		keys[i] = SlotKey{CourtID: courtID, Date: date, Slot: slot}
	}
	return keys
}

// SharedSlots returns the labels present in both sets, sorted.
func SharedSlots(a, b []string) []string {
	set := make(map[string]struct{}, len(a))
	for _, slot := range NormalizeSlots(a) {
		set[slot] = struct{}{}
	}

	var shared []string
	for _, slot := range NormalizeSlots(b) {
		if _, ok := set[slot]; ok {
			shared = append(shared, slot)
		}
	}
	sort.Strings(shared)
	return shared
}

// Conflicts reports whether two bookings target the same court and date and
// share at least one slot label. Status is not considered here.
func Conflicts(a, b *Booking) bool {
	if a.CourtID != b.CourtID || a.Date != b.Date {
		return false
	}
	return len(SharedSlots(a.Slots, b.Slots)) > 0
}
