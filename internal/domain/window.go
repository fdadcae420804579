package domain

import "time"

const windowBoundaryHour = 10

// Seoul is the civil timezone all windows and pubDate comparisons use.
var Seoul = loadSeoul()

func loadSeoul() *time.Location {
	loc, err := time.LoadLocation("Asia/Seoul")
	if err != nil {
		return time.FixedZone("KST", 9*60*60)
	}
	return loc
}

// TimeWindow is a civil-time interval, inclusive on both ends.
type TimeWindow struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the window, bounds included.
func (w TimeWindow) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// DefaultWindow returns the collection window around now: the most recent
// 10:00 KST boundary through the adjacent one. On Mondays the start reaches
// back to Friday 10:00 so weekend print editions are covered.
func DefaultWindow(now time.Time) TimeWindow {
	now = now.In(Seoul)
	boundary := time.Date(now.Year(), now.Month(), now.Day(), windowBoundaryHour, 0, 0, 0, Seoul)

	var w TimeWindow
	if now.Hour() < windowBoundaryHour {
		w.End = boundary
		w.Start = boundary.AddDate(0, 0, -1)
	} else {
		w.Start = boundary
		w.End = boundary.AddDate(0, 0, 1)
	}

	if now.Weekday() == time.Monday {
		w.Start = w.End.AddDate(0, 0, -3)
	}

	return w
}

// ParsePubDate parses the provider timestamp ("Mon, 02 Jan 2006 15:04:05 +0900")
// and converts it to KST. Callers treat a parse failure as "outside any
// window", never as a free pass.
func ParsePubDate(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC1123Z, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.In(Seoul), nil
}
