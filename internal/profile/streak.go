package profile

import "time"

// CalendarDaysBetween returns the number of calendar-day boundaries between
// from and to, measured in to's location. Negative when from is later.
func CalendarDaysBetween(from, to time.Time) int {
	from = from.In(to.Location())
	fy, fm, fd := from.Date()
	ty, tm, td := to.Date()
	// Compare at UTC midnight so DST shifts never produce 23h or 25h days.
	a := time.Date(fy, fm, fd, 0, 0, 0, 0, time.UTC)
	b := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}

// SameDay reports whether a and b fall on the same calendar day in b's location.
func SameDay(a, b time.Time) bool {
	return CalendarDaysBetween(a, b) == 0
}

// CompletedOn reports whether a challenge was completed on now's calendar day.
func (p UserProfile) CompletedOn(now time.Time) bool {
	if p.LastCompletionDate == nil {
		return false
	}
	return SameDay(*p.LastCompletionDate, now)
}

// RecordCompletion applies a completion of challengeID at now. It returns
// false, leaving p untouched, when a completion already happened that day.
//
// Streak rules: the day after the previous completion extends the streak, a
// longer gap restarts it at 1, and the first completion ever starts it at 1.
func (p *UserProfile) RecordCompletion(challengeID string, now time.Time) bool {
	if p.CompletedOn(now) {
		return false
	}

	if p.LastCompletionDate == nil {
		p.StreakCount = 1
	} else {
		switch delta := CalendarDaysBetween(*p.LastCompletionDate, now); {
		case delta == 1:
			p.StreakCount++
		case delta > 1:
			p.StreakCount = 1
		}
	}

	if challengeID != "" {
		p.CompletedChallenges = append(p.CompletedChallenges, challengeID)
	}
	t := now
	p.LastCompletionDate = &t
	return true
}
