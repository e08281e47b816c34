package template

import "strconv"

// Counter is a sequence number that is either resolved to a concrete value
// or still pending because the item's position is not known yet.
//
// The zero value is a resolved 0.
type Counter struct {
	n       int
	pending bool
}

// Resolved returns a counter holding n.
func Resolved(n int) Counter {
	return Counter{n: n}
}

// Pending returns a counter with no position. It renders as a marker
// instead of a number.
func Pending() Counter {
	return Counter{pending: true}
}

// Value returns the counter value and whether it is resolved.
func (c Counter) Value() (int, bool) {
	return c.n, !c.pending
}

// format renders the counter shifted by offset, or marker when pending.
func (c Counter) format(offset int, marker string) string {
	n, ok := c.Value()
	if !ok {
		return marker
	}
	return strconv.Itoa(n + offset)
}

// Counters returns the ascending and descending counters for the item at
// index (0-based) in a batch of total items.
//
// Across a batch the ascending counter visits total, total-1, ..., 1 and
// the descending counter visits 0, 1, ..., total-1, both in item order.
func Counters(index, total int) (ascending, descending Counter) {
	return Resolved(total - index), Resolved(index)
}
