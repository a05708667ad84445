// Package billing converts elapsed rental time into credit charges.
package billing

import "time"

// Calculator prices a rental. A rental costs Rate credits per Period, with
// partial periods rounded up and a minimum of one period.
type Calculator struct {
	Rate   int64         // credits per billing period
	Period time.Duration // length of one billing period
}

// Periods returns the number of billing periods covered by elapsed.
// Partial periods count in full, and even an instant return costs one.
func (c Calculator) Periods(elapsed time.Duration) int64 {
	secs := int64(elapsed / time.Second)
	period := int64(c.Period / time.Second)
	if secs <= period {
		return 1
	}
	periods := secs / period
	if secs%period > 0 {
		periods++
	}
	return periods
}

// Charge returns the total cost of a closed rental of the given duration.
func (c Calculator) Charge(elapsed time.Duration) int64 {
	return c.Periods(elapsed) * c.Rate
}

// Overdue reports whether elapsed has exceeded the paid-for first period,
// which makes the rental eligible for an extended-hold auto-deduction.
func (c Calculator) Overdue(elapsed time.Duration) bool {
	return elapsed > c.Period
}

// Remaining returns the time left until the current period runs out.
// Zero once the rental is overdue.
func (c Calculator) Remaining(elapsed time.Duration) time.Duration {
	if elapsed >= c.Period {
		return 0
	}
	return (c.Period - elapsed).Truncate(time.Second)
}
