package booking

import (
	"testing"
	"time"
)

func at(h, m, s int) time.Time {
	return time.Date(2026, 8, 30, h, m, s, 0, Location())
}

func TestDeriveScheduleWindowBounds(t *testing.T) {
	journey := time.Date(2026, 8, 31, 0, 0, 0, 0, Location())

	cases := []struct {
		name string
		now  time.Time
		open bool
	}{
		{"well before", at(8, 0, 0), false},
		{"at start", at(9, 30, 0), false},
		{"just after start", at(9, 30, 1), true},
		{"mid window", at(10, 15, 0), true},
		{"just before end", at(11, 30, 59), true},
		{"at end", at(11, 31, 0), false},
		{"after end", at(12, 0, 0), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := deriveSchedule(journey, ClassChairCar, tc.now)
			if s.TatkalWindow != tc.open {
				t.Errorf("TatkalWindow = %t, want %t", s.TatkalWindow, tc.open)
			}
		})
	}
}

func TestDeriveScheduleClassThresholds(t *testing.T) {
	journey := time.Date(2026, 8, 31, 0, 0, 0, 0, Location())
	now := at(10, 0, 0)

	ac := deriveSchedule(journey, ClassThirdAC, now)
	if ac.LoginThreshold != 9*time.Hour+59*time.Minute {
		t.Errorf("AC login threshold = %s", ac.LoginThreshold)
	}
	if ac.BookingStart != 10*time.Hour+time.Second {
		t.Errorf("AC booking start = %s", ac.BookingStart)
	}

	for _, class := range []TrainClass{ClassSleeper, ClassSecondSitting} {
		s := deriveSchedule(journey, class, now)
		if s.LoginThreshold != 10*time.Hour+59*time.Minute {
			t.Errorf("%s login threshold = %s", class, s.LoginThreshold)
		}
		if s.BookingStart != 11*time.Hour+time.Second {
			t.Errorf("%s booking start = %s", class, s.BookingStart)
		}
	}
}

func TestDeriveScheduleSearchLabel(t *testing.T) {
	journey := time.Date(2026, 9, 15, 0, 0, 0, 0, Location())
	s := deriveSchedule(journey, ClassChairCar, at(12, 0, 0))
	if s.SearchDateLabel != "Tue, 15 Sep" {
		t.Errorf("label = %q", s.SearchDateLabel)
	}
}

func TestTimeOfDay(t *testing.T) {
	tod := TimeOfDay(time.Date(2026, 8, 30, 9, 59, 1, 500_000_000, Location()))
	want := 9*time.Hour + 59*time.Minute + time.Second + 500*time.Millisecond
	if tod != want {
		t.Errorf("TimeOfDay = %s, want %s", tod, want)
	}
}

func TestAirConditioned(t *testing.T) {
	nonAC := map[TrainClass]bool{ClassSleeper: true, ClassSecondSitting: true}
	for _, c := range validClasses {
		if c.AirConditioned() == nonAC[c] {
			t.Errorf("%s AirConditioned = %t", c, c.AirConditioned())
		}
	}
}
