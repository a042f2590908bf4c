package services

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/staffbook/staff_ledger_app/internal/core/domain"
	"github.com/staffbook/staff_ledger_app/internal/utils/compensation"
)

// Selection is the working set of pending entries being assembled into one
// payment. Granularity is the whole calendar day: toggling a day selects or
// deselects every pending entry attributed to it, never a single entry within
// a day. Paid entries are filtered out at construction, so a selection can
// only ever reference entries that are still payable.
type Selection struct {
	loc      *time.Location
	byDay    map[string][]domain.LedgerEntry
	days     []string // sorted ascending
	selected map[string]bool
}

// NewSelection builds a selection over the pending subset of entries,
// bucketed by calendar day in the reference zone. Nothing starts selected.
func NewSelection(entries []domain.LedgerEntry, loc *time.Location) *Selection {
	byDay := compensation.BucketByDay(compensation.FilterPending(entries), loc)

	days := make([]string, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Strings(days)

	return &Selection{
		loc:      loc,
		byDay:    byDay,
		days:     days,
		selected: make(map[string]bool, len(days)),
	}
}

// Days returns the selectable calendar days in ascending order.
func (s *Selection) Days() []string {
	return s.days
}

// IsSelected reports whether the given day is currently selected.
func (s *Selection) IsSelected(day string) bool {
	return s.selected[day]
}

// ToggleDay flips the selection state of a day: if the day's pending entries
// are all selected they become deselected, otherwise they all become
// selected. Days with no pending entries are ignored. Returns the resulting
// state of the day.
func (s *Selection) ToggleDay(day string) bool {
	if _, ok := s.byDay[day]; !ok {
		return false
	}
	s.selected[day] = !s.selected[day]
	return s.selected[day]
}

// SelectAll selects every day with pending entries.
func (s *Selection) SelectAll() {
	for _, day := range s.days {
		s.selected[day] = true
	}
}

// ClearAll deselects every day.
func (s *Selection) ClearAll() {
	s.selected = make(map[string]bool, len(s.days))
}

// SelectedEntries returns the entries covered by the current selection,
// ordered by ascending day.
func (s *Selection) SelectedEntries() []domain.LedgerEntry {
	var entries []domain.LedgerEntry
	for _, day := range s.days {
		if s.selected[day] {
			entries = append(entries, s.byDay[day]...)
		}
	}
	return entries
}

// SelectedEntryIDs returns the IDs of the selected entries, ordered by
// ascending day. This is the id set handed to payment creation.
func (s *Selection) SelectedEntryIDs() []string {
	entries := s.SelectedEntries()
	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.EntryID
	}
	return ids
}

// PreviewTotal returns the payable total of the current selection. It tracks
// toggles live: every call recomputes from the selected entries.
func (s *Selection) PreviewTotal() decimal.Decimal {
	return compensation.SumContributions(s.SelectedEntries())
}
