// Package schedule decides when the panel's status view is due for a redraw.
package schedule

import "time"

// Scheduler keeps the periodic refresh deadline. Forced redraws bypass
// ShouldRefresh but still call ScheduleNext, so the countdown always restarts
// from the most recent redraw.
type Scheduler struct {
	interval      time.Duration
	nextRefreshAt time.Time
}

// New creates a scheduler whose first refresh is due at now.
func New(now time.Time, interval time.Duration) *Scheduler {
	return &Scheduler{
		interval:      interval,
		nextRefreshAt: now,
	}
}

// ShouldRefresh reports whether the periodic refresh is due.
func (s *Scheduler) ShouldRefresh(now time.Time) bool {
	return !now.Before(s.nextRefreshAt)
}

// ScheduleNext anchors the next periodic refresh one interval after now.
func (s *Scheduler) ScheduleNext(now time.Time) {
	s.nextRefreshAt = now.Add(s.interval)
}

// NextRefreshAt returns when the next periodic refresh is due.
func (s *Scheduler) NextRefreshAt() time.Time {
	return s.nextRefreshAt
}

// Interval returns the periodic refresh interval.
func (s *Scheduler) Interval() time.Duration {
	return s.interval
}
