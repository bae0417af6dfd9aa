package model

import "time"

// Commit is a single commit authored inside the fetch window. Only the author
// date is kept; Date is nil when GitHub did not report one.
type Commit struct {
	Date *time.Time
}

// DailyCount is the number of commits authored on one UTC calendar day.
type DailyCount struct {
	Date  string // YYYY-MM-DD
	Count int
}
