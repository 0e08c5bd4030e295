// Package billnumber formats human-readable bill numbers.
package billnumber

import (
	"fmt"
	"time"
)

// Format builds a bill number like KB-20260828-00042 from a prefix, the sale
// day and the day's running sequence. Independent of database identity so
// numbers stay readable on printed receipts.
func Format(prefix string, day time.Time, seq int64) string {
	return fmt.Sprintf("%s-%s-%05d", prefix, day.Format("20060102"), seq)
}
