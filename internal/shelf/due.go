package shelf

import (
	"fmt"
	"math"
	"time"
)

// dueSoonDays is the largest number of remaining days still reported as due soon.
const dueSoonDays = 3

type Kind string

const (
	KindOverdue Kind = "OVERDUE"
	KindDueSoon Kind = "DUE_SOON"
	KindOnTrack Kind = "ON_TRACK"
)

// Status is the classification of a loan relative to its due date. Days is the
// number of days overdue for KindOverdue and days remaining otherwise.
type Status struct {
	Kind Kind `json:"kind"`
	Days int  `json:"days"`
}

// Classify computes the loan status of a due date at time now. Remaining days
// are rounded up, so a due date that passed earlier today still counts as 0
// days left and is not overdue.
func Classify(due, now time.Time) Status {
	days := int(math.Ceil(float64(due.Sub(now)) / float64(24*time.Hour)))
	switch {
	case days < 0:
		return Status{Kind: KindOverdue, Days: -days}
	case days <= dueSoonDays:
		return Status{Kind: KindDueSoon, Days: days}
	default:
		return Status{Kind: KindOnTrack, Days: days}
	}
}

// Label renders the status the way the borrowed list shows it.
func (s Status) Label() string {
	switch s.Kind {
	case KindOverdue:
		return fmt.Sprintf("%d days overdue", s.Days)
	case KindDueSoon:
		return fmt.Sprintf("Due in %d days", s.Days)
	default:
		return fmt.Sprintf("%d days left", s.Days)
	}
}
