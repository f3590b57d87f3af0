package shelf

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	day := 24 * time.Hour

	tests := []struct {
		name  string
		due   time.Time
		want  Status
		label string
	}{
		{"two days left", t0.Add(2 * day), Status{KindDueSoon, 2}, "Due in 2 days"},
		{"one day overdue", t0.Add(-day), Status{KindOverdue, 1}, "1 days overdue"},
		{"ten days left", t0.Add(10 * day), Status{KindOnTrack, 10}, "10 days left"},
		{"three days is still due soon", t0.Add(3 * day), Status{KindDueSoon, 3}, "Due in 3 days"},
		{"four days is on track", t0.Add(4 * day), Status{KindOnTrack, 4}, "4 days left"},
		{"due right now", t0, Status{KindDueSoon, 0}, "Due in 0 days"},
		{"later today rounds up", t0.Add(5 * time.Hour), Status{KindDueSoon, 1}, "Due in 1 days"},
		{"earlier today is not overdue", t0.Add(-5 * time.Hour), Status{KindDueSoon, 0}, "Due in 0 days"},
		{"a day and a half overdue", t0.Add(-36 * time.Hour), Status{KindOverdue, 1}, "1 days overdue"},
		{"fresh loan", t0.Add(DefaultLoanPeriod), Status{KindOnTrack, 14}, "14 days left"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.due, t0)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.label, got.Label())
		})
	}
}
