package services_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staffbook/staff_ledger_app/internal/core/domain"
	"github.com/staffbook/staff_ledger_app/internal/core/services"
)

func selectionEntry(date time.Time, pay string, state domain.PaymentState) domain.LedgerEntry {
	return domain.LedgerEntry{
		EntryID:        uuid.NewString(),
		CollaboratorID: "collab-1",
		EntryDate:      date,
		Kind:           domain.KindDailyPay,
		PaymentState:   state,
		Amounts: domain.EntryAmounts{
			Pay:      decimal.RequireFromString(pay),
			Bonus:    decimal.Zero,
			Advance:  decimal.Zero,
			Shortage: decimal.Zero,
			Expense:  decimal.Zero,
		},
	}
}

func TestSelectionToggleIsWholeDay(t *testing.T) {
	loc := mustLoadLocation("America/Lima")
	day1 := time.Date(2026, 3, 1, 8, 0, 0, 0, loc)
	e1 := selectionEntry(day1, "100", domain.StatePending)
	e2 := selectionEntry(day1.Add(4*time.Hour), "20", domain.StatePending)

	sel := services.NewSelection([]domain.LedgerEntry{e1, e2}, loc)

	require.True(t, sel.ToggleDay("2026-03-01"))
	assert.ElementsMatch(t, []string{e1.EntryID, e2.EntryID}, sel.SelectedEntryIDs())
	assert.True(t, sel.PreviewTotal().Equal(decimal.RequireFromString("120")))

	// Toggling again deselects the whole day.
	require.False(t, sel.ToggleDay("2026-03-01"))
	assert.Empty(t, sel.SelectedEntryIDs())
	assert.True(t, sel.PreviewTotal().IsZero())
}

func TestSelectionExcludesPaidEntries(t *testing.T) {
	loc := mustLoadLocation("America/Lima")
	day1 := time.Date(2026, 3, 1, 8, 0, 0, 0, loc)
	pending := selectionEntry(day1, "100", domain.StatePending)
	paid := selectionEntry(day1, "999", domain.StatePaid)

	sel := services.NewSelection([]domain.LedgerEntry{pending, paid}, loc)
	sel.SelectAll()

	assert.Equal(t, []string{pending.EntryID}, sel.SelectedEntryIDs())
	assert.True(t, sel.PreviewTotal().Equal(decimal.RequireFromString("100")))
}

func TestSelectionUnknownDayIgnored(t *testing.T) {
	loc := mustLoadLocation("America/Lima")
	sel := services.NewSelection(nil, loc)

	assert.False(t, sel.ToggleDay("2026-03-01"))
	assert.Empty(t, sel.Days())
}

func TestSelectionSelectAllAndClear(t *testing.T) {
	loc := mustLoadLocation("America/Lima")
	day1 := time.Date(2026, 3, 1, 8, 0, 0, 0, loc)
	day2 := time.Date(2026, 3, 2, 8, 0, 0, 0, loc)
	e1 := selectionEntry(day1, "100", domain.StatePending)
	e2 := selectionEntry(day2, "80", domain.StatePending)

	sel := services.NewSelection([]domain.LedgerEntry{e2, e1}, loc)

	assert.Equal(t, []string{"2026-03-01", "2026-03-02"}, sel.Days())

	sel.SelectAll()
	assert.Len(t, sel.SelectedEntryIDs(), 2)
	// Entries come back ordered by ascending day.
	assert.Equal(t, []string{e1.EntryID, e2.EntryID}, sel.SelectedEntryIDs())
	assert.True(t, sel.PreviewTotal().Equal(decimal.RequireFromString("180")))

	sel.ClearAll()
	assert.Empty(t, sel.SelectedEntryIDs())
}

func TestSelectionPreviewTracksToggles(t *testing.T) {
	loc := mustLoadLocation("America/Lima")
	day1 := time.Date(2026, 3, 1, 8, 0, 0, 0, loc)
	day2 := time.Date(2026, 3, 2, 8, 0, 0, 0, loc)
	e1 := selectionEntry(day1, "100", domain.StatePending)
	e2 := selectionEntry(day2, "80", domain.StatePending)

	sel := services.NewSelection([]domain.LedgerEntry{e1, e2}, loc)

	sel.ToggleDay("2026-03-01")
	assert.True(t, sel.PreviewTotal().Equal(decimal.RequireFromString("100")))

	sel.ToggleDay("2026-03-02")
	assert.True(t, sel.PreviewTotal().Equal(decimal.RequireFromString("180")))

	sel.ToggleDay("2026-03-01")
	assert.True(t, sel.PreviewTotal().Equal(decimal.RequireFromString("80")))
}
