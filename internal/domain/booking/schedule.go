package booking

import (
	"sync"
	"time"
)

// Tatkal timing constants, India local time. The window bounds are
// strict: the window is open only strictly between start and end.
const (
	tatkalWindowStart = 9*time.Hour + 30*time.Minute
	tatkalWindowEnd   = 11*time.Hour + 31*time.Minute

	acLoginThreshold = 9*time.Hour + 59*time.Minute
	acBookingStart   = 10*time.Hour + 1*time.Second
)

// nonACShift moves the login threshold and booking start one hour later
// for sleeper and second-sitting classes.
const nonACShift = time.Hour

// searchDateLayout renders the journey date the way the inventory table
// labels its seat columns.
const searchDateLayout = "Mon, 02 Jan"

// Schedule carries the scheduling facts derived once from the journey
// date and the wall clock when the plan was validated. It replaces the
// ambient mutable state the rest of the run would otherwise consult.
type Schedule struct {
	// SearchDateLabel locates the journey date's column in the
	// inventory table.
	SearchDateLabel string

	// TatkalWindow is true when validation ran strictly inside the
	// daily Tatkal interval.
	TatkalWindow bool

	// LoginThreshold and BookingStart are offsets from midnight IST.
	// Logging in before LoginThreshold under Tatkal rules means the
	// window was missed; BookingStart is the instant seat selection
	// becomes permitted.
	LoginThreshold time.Duration
	BookingStart   time.Duration
}

func deriveSchedule(journeyDate time.Time, class TrainClass, now time.Time) Schedule {
	s := Schedule{
		SearchDateLabel: journeyDate.Format(searchDateLayout),
		LoginThreshold:  acLoginThreshold,
		BookingStart:    acBookingStart,
	}
	if !class.AirConditioned() {
		s.LoginThreshold += nonACShift
		s.BookingStart += nonACShift
	}
	tod := TimeOfDay(now.In(Location()))
	s.TatkalWindow = tod > tatkalWindowStart && tod < tatkalWindowEnd
	return s
}

// TimeOfDay returns the offset of t from midnight in t's own location,
// including sub-second precision so deadline waits stay exact.
func TimeOfDay(t time.Time) time.Duration {
	h, m, s := t.Clock()
	return time.Duration(h)*time.Hour +
		time.Duration(m)*time.Minute +
		time.Duration(s)*time.Second +
		time.Duration(t.Nanosecond())
}

var (
	locOnce sync.Once
	loc     *time.Location
)

// Location returns the India Standard Time location. All date and
// time-of-day comparisons in the system happen in this zone.
func Location() *time.Location {
	locOnce.Do(func() {
		l, err := time.LoadLocation("Asia/Kolkata")
		if err != nil {
			l = time.FixedZone("IST", 5*3600+1800)
		}
		loc = l
	})
	return loc
}
