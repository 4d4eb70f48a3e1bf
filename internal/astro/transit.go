package astro

import "time"

const minutesPerCentury = 24 * 60 * daysPerCentury

// scanStepMinutes is the coarse step of the transit search. The Moon covers
// well under one degree an hour, far less than a mansion.
const scanStepMinutes = 60

// Transit is the Moon crossing from one mansion into the next.
type Transit struct {
	From  int           `json:"from"`
	To    int           `json:"to"`
	After time.Duration `json:"after"` // from the reference moment, whole minutes
}

// NextMansionChange finds the first minute after m at which the Moon is in a
// different mansion. ok is false when no change happens within the window.
func NextMansionChange(m CivilMoment, within time.Duration) (tr Transit, ok bool) {
	t0 := JulianCenturies(m)
	indexAt := func(minute int) int {
		return MansionIndex(siderealLongitude(t0 + float64(minute)/minutesPerCentury))
	}

	limit := int(within / time.Minute)
	if limit <= 0 {
		return Transit{}, false
	}
	from := indexAt(0)

	lo := 0
	hi := -1
	for step := scanStepMinutes; ; step += scanStepMinutes {
		if step > limit {
			step = limit
		}
		if indexAt(step) != from {
			hi = step
			break
		}
		lo = step
		if step == limit {
			return Transit{}, false
		}
	}

	// indexAt(lo) == from and indexAt(hi) != from.
	for hi-lo > 1 {
		mid := lo + (hi-lo)/2
		if indexAt(mid) == from {
			lo = mid
		} else {
			hi = mid
		}
	}

	return Transit{
		From:  from,
		To:    indexAt(hi),
		After: time.Duration(hi) * time.Minute,
	}, true
}
