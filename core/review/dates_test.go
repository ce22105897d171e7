package review

import (
	"testing"
	"time"
)

func TestDeadlineInterval(t *testing.T) {
	day := func(d int) *Time {
		return &Time{Time: time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)}
	}
	now := time.Date(2024, 1, 4, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		first  *Time
		second *Time
		want   Interval
	}{
		{name: "before first", first: day(6), second: day(9), want: BeforeFirstDeadline},
		{name: "between", first: day(3), second: day(6), want: BetweenDeadlines},
		{name: "after second", first: day(1), second: day(2), want: AfterSecondDeadline},
		{name: "exactly on second", first: day(1), second: &Time{Time: now}, want: BetweenDeadlines},
		{name: "no first deadline", first: nil, second: day(9), want: AfterSecondDeadline},
		{name: "no second deadline", first: day(1), second: nil, want: AfterSecondDeadline},
		{name: "no deadlines", first: nil, second: nil, want: AfterSecondDeadline},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DeadlineInterval(now, tt.first, tt.second); got != tt.want {
				t.Errorf("DeadlineInterval() = %v, want %v", got, tt.want)
			}
		})
	}
}
