package booking

import "time"

// Quota is the reservation quota requested for the journey.
type Quota string

const (
	QuotaTatkal  Quota = "TATKAL"
	QuotaGeneral Quota = "GENERAL"
)

// TrainClass is one of the coach classes offered by the railway.
type TrainClass string

const (
	ClassSecondSitting TrainClass = "2S"
	ClassSleeper       TrainClass = "SL"
	ClassChairCar      TrainClass = "CC"
	ClassThirdEconomy  TrainClass = "3E"
	ClassThirdAC       TrainClass = "3A"
	ClassSecondAC      TrainClass = "2A"
	ClassFirstAC       TrainClass = "1A"
)

var validClasses = []TrainClass{
	ClassSecondSitting, ClassSleeper, ClassChairCar, ClassThirdEconomy,
	ClassThirdAC, ClassSecondAC, ClassFirstAC,
}

// AirConditioned reports whether the class belongs to the AC tier. The
// Tatkal login and booking-start thresholds shift by one hour for the
// two non-AC classes.
func (c TrainClass) AirConditioned() bool {
	return c != ClassSleeper && c != ClassSecondSitting
}

type Gender string

const (
	GenderMale        Gender = "M"
	GenderFemale      Gender = "F"
	GenderTransgender Gender = "T"
)

// Berth is an optional berth preference.
type Berth string

const (
	BerthLower      Berth = "LB"
	BerthMiddle     Berth = "MB"
	BerthUpper      Berth = "UB"
	BerthSideLower  Berth = "SL"
	BerthSideUpper  Berth = "SU"
)

var validBerths = []Berth{BerthLower, BerthMiddle, BerthUpper, BerthSideLower, BerthSideUpper}

// Passenger is one traveller on the plan. Name may be longer than the
// booking form accepts; the workflow truncates it to the form's reported
// maximum when filling the field.
type Passenger struct {
	Name   string
	Age    int
	Gender Gender
	Berth  Berth // empty means no preference
}

// Plan is the validated booking configuration. It is built once by
// ParsePlan and never mutated afterwards; the whole run reads from it.
type Plan struct {
	Username string
	Password string

	FromStation string
	ToStation   string

	// JourneyDate is midnight of the travel day in India Standard Time.
	JourneyDate time.Time
	Quota       Quota
	TrainNumber string
	Class       TrainClass

	Passengers []Passenger

	// PaymentAddress is the UPI id the payment stage types into the
	// gateway form.
	PaymentAddress string

	CaptchaAutoSolve bool

	// Schedule holds the facts derived from JourneyDate and the wall
	// clock at validation time.
	Schedule Schedule
}

// JourneyDateLiteral renders the journey date in the dd/mm/yyyy form
// the search form's date field expects.
func (p Plan) JourneyDateLiteral() string {
	return p.JourneyDate.Format(journeyDateLayout)
}

// TatkalRules reports whether the Tatkal timing gates apply to this plan:
// the quota is Tatkal and validation happened inside the Tatkal window.
func (p Plan) TatkalRules() bool {
	return p.Quota == QuotaTatkal && p.Schedule.TatkalWindow
}
