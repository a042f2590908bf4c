package compensation

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/staffbook/staff_ledger_app/internal/core/domain"
)

// DayKeyFormat renders a calendar day in the reference time zone.
const DayKeyFormat = "2006-01-02"

// NormalizeKind resolves the stored kind of an entry. Legacy records created
// before kinds existed have an empty kind and are treated as daily pay. This
// is the single place that migration rule lives.
func NormalizeKind(kind domain.EntryKind) domain.EntryKind {
	if kind == "" {
		return domain.KindDailyPay
	}
	return kind
}

// KnownKind reports whether kind is one of the supported entry kinds.
// The empty kind is accepted as the legacy daily-pay alias.
func KnownKind(kind domain.EntryKind) bool {
	switch NormalizeKind(kind) {
	case domain.KindDailyPay,
		domain.KindBonusManual,
		domain.KindBonusGoal,
		domain.KindAdvanceManual,
		domain.KindAdjustmentManual,
		domain.KindShortageAutomatic,
		domain.KindShortageManual,
		domain.KindExpenseAutomatic,
		domain.KindLatePenalty:
		return true
	}
	return false
}

// Contribution returns the signed amount an entry adds to the collaborator's
// payable balance: pay + bonus - shortage - advance. Expense is informational
// and never enters the total. The function is total: zero-valued amount
// fields contribute zero, whatever the kind.
func Contribution(e domain.LedgerEntry) decimal.Decimal {
	return e.Amounts.Pay.
		Add(e.Amounts.Bonus).
		Sub(e.Amounts.Shortage).
		Sub(e.Amounts.Advance)
}

// SumContributions folds Contribution over entries. Addition is commutative,
// so the result does not depend on entry order.
func SumContributions(entries []domain.LedgerEntry) decimal.Decimal {
	total := decimal.Zero
	for _, e := range entries {
		total = total.Add(Contribution(e))
	}
	return total
}

// DayKey renders the calendar day an entry timestamp falls on in the
// reference zone. Entries stamped at arbitrary times of day collapse onto the
// operational day they belong to.
func DayKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(DayKeyFormat)
}

// BucketByDay groups entries by their calendar day in the reference zone.
// The union of the buckets is exactly the input set.
func BucketByDay(entries []domain.LedgerEntry, loc *time.Location) map[string][]domain.LedgerEntry {
	buckets := make(map[string][]domain.LedgerEntry)
	for _, e := range entries {
		day := DayKey(e.EntryDate, loc)
		buckets[day] = append(buckets[day], e)
	}
	return buckets
}

// AggregateByDay reduces entries into per-day totals, sorted by ascending day.
// Empty input yields an empty slice, not an error.
func AggregateByDay(entries []domain.LedgerEntry, loc *time.Location) []domain.DayTotal {
	buckets := BucketByDay(entries, loc)

	days := make([]string, 0, len(buckets))
	for day := range buckets {
		days = append(days, day)
	}
	sort.Strings(days)

	totals := make([]domain.DayTotal, 0, len(days))
	for _, day := range days {
		dt := domain.DayTotal{
			Day:      day,
			Pay:      decimal.Zero,
			Bonus:    decimal.Zero,
			Advance:  decimal.Zero,
			Shortage: decimal.Zero,
			Expense:  decimal.Zero,
			Payable:  decimal.Zero,
		}
		for _, e := range buckets[day] {
			dt.Pay = dt.Pay.Add(e.Amounts.Pay)
			dt.Bonus = dt.Bonus.Add(e.Amounts.Bonus)
			dt.Advance = dt.Advance.Add(e.Amounts.Advance)
			dt.Shortage = dt.Shortage.Add(e.Amounts.Shortage)
			dt.Expense = dt.Expense.Add(e.Amounts.Expense)
			dt.Payable = dt.Payable.Add(Contribution(e))
		}
		totals = append(totals, dt)
	}
	return totals
}

// AggregateTotal reduces entries into a single payable total. It equals the
// sum of DayTotal.Payable over AggregateByDay for the same input.
func AggregateTotal(entries []domain.LedgerEntry, loc *time.Location) domain.GlobalTotal {
	buckets := BucketByDay(entries, loc)
	return domain.GlobalTotal{
		Payable: SumContributions(entries),
		Days:    len(buckets),
		Entries: len(entries),
	}
}

// FilterPending returns the subset of entries still awaiting payment.
func FilterPending(entries []domain.LedgerEntry) []domain.LedgerEntry {
	pending := make([]domain.LedgerEntry, 0, len(entries))
	for _, e := range entries {
		if e.PaymentState == domain.StatePending {
			pending = append(pending, e)
		}
	}
	return pending
}

// DaysPaidBreakdown builds the per-day payment breakdown for the given
// entries, ordered by ascending day. The amounts sum to the payment total.
func DaysPaidBreakdown(entries []domain.LedgerEntry, loc *time.Location) []domain.PaymentDay {
	buckets := BucketByDay(entries, loc)

	days := make([]string, 0, len(buckets))
	for day := range buckets {
		days = append(days, day)
	}
	sort.Strings(days)

	breakdown := make([]domain.PaymentDay, 0, len(days))
	for _, day := range days {
		breakdown = append(breakdown, domain.PaymentDay{
			Day:    day,
			Amount: SumContributions(buckets[day]),
		})
	}
	return breakdown
}
