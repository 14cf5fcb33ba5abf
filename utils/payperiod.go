// utils/payperiod.go
package utils

import "time"

// Pay periods are fixed-length windows anchored at a known Monday. Commission
// resolution, payout reports and hour totals all use PeriodFor so they agree
// on what "the current period" means for any instant.
const PayPeriodDays = 14

// PayPeriodAnchor is the start of an arbitrary historical period. Monday,
// 2024-01-01 00:00 UTC.
var PayPeriodAnchor = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

// PeriodFor maps an instant to the [start, end) window containing it.
// Windows tile the whole timeline, including dates before the anchor.
func PeriodFor(t time.Time) (start, end time.Time) {
	periodLen := time.Duration(PayPeriodDays) * 24 * time.Hour
	elapsed := t.UTC().Sub(PayPeriodAnchor)

	n := elapsed / periodLen
	if elapsed < 0 && elapsed%periodLen != 0 {
		n--
	}

	start = PayPeriodAnchor.Add(n * periodLen)
	return start, start.Add(periodLen)
}
