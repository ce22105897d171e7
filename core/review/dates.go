package review

import "time"

// Interval locates "now" relative to a lesson's two deadlines: answers
// are due before the first, feedback between the two.
type Interval int

const (
	BeforeFirstDeadline Interval = iota
	BetweenDeadlines
	AfterSecondDeadline
)

// DeadlineInterval classifies now against the deadlines. Lessons with
// missing deadlines count as closed.
func DeadlineInterval(now time.Time, first, second *Time) Interval {
	if first == nil {
		return AfterSecondDeadline
	}
	if now.Before(first.Time) {
		return BeforeFirstDeadline
	}
	if second != nil && !now.After(second.Time) {
		return BetweenDeadlines
	}
	return AfterSecondDeadline
}
