package booking

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Config keys of the flat booking properties file.
const (
	KeyUsername       = "irctc_username"
	KeyPassword       = "irctc_password"
	KeyFromStation    = "from_station_code"
	KeyToStation      = "to_station_code"
	KeyJourneyDate    = "journey_date"
	KeyQuota          = "journey_quota"
	KeyTrainNumber    = "train_number"
	KeyTrainClass     = "train_class"
	KeyPassengerCount = "passenger_count"
	KeyPaymentAddress = "upi_id"
	KeyCaptchaSolve   = "captcha_text_extraction_enabled"
)

// journeyDateLayout is the literal dd/mm/yyyy format the config uses.
const journeyDateLayout = "02/01/2006"

// MaxPassengersTatkal and MaxPassengersGeneral bound the party size per
// quota.
const (
	MaxPassengersTatkal  = 4
	MaxPassengersGeneral = 6
)

const (
	MinPassengerAge = 1
	MaxPassengerAge = 125
)

var (
	paymentAddressRe = regexp.MustCompile(`^(\w+[.\-])*\w+@(\w+[.\-])*\w+$`)
	passengerSplitRe = regexp.MustCompile(`\s*\|\s*`)
)

// ParsePlan validates the raw key-value booking config and produces the
// immutable Plan the rest of the run consumes. Validation is fail-fast:
// the first failing rule aborts. now anchors the date rules and the
// derived scheduling facts; it is converted to India Standard Time
// internally.
func ParsePlan(raw map[string]string, now time.Time) (Plan, error) {
	var plan Plan

	now = now.In(Location())
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, Location())

	get := func(key string) (string, error) {
		v := strings.TrimSpace(raw[key])
		if v == "" {
			return "", &MissingFieldError{Field: key}
		}
		return v, nil
	}

	var err error
	if plan.Username, err = get(KeyUsername); err != nil {
		return Plan{}, err
	}
	if plan.Password, err = get(KeyPassword); err != nil {
		return Plan{}, err
	}
	if plan.FromStation, err = get(KeyFromStation); err != nil {
		return Plan{}, err
	}
	if plan.ToStation, err = get(KeyToStation); err != nil {
		return Plan{}, err
	}

	rawDate, err := get(KeyJourneyDate)
	if err != nil {
		return Plan{}, err
	}
	plan.JourneyDate, err = time.ParseInLocation(journeyDateLayout, rawDate, Location())
	if err != nil {
		return Plan{}, &InvalidFieldError{Field: KeyJourneyDate, Reason: "it should be in dd/mm/yyyy format"}
	}
	if plan.JourneyDate.Before(today) {
		return Plan{}, &InvalidFieldError{Field: KeyJourneyDate, Reason: "it should not be a past date"}
	}

	rawQuota, err := get(KeyQuota)
	if err != nil {
		return Plan{}, err
	}
	switch Quota(strings.ToUpper(rawQuota)) {
	case QuotaTatkal:
		plan.Quota = QuotaTatkal
	case QuotaGeneral:
		plan.Quota = QuotaGeneral
	default:
		return Plan{}, &InvalidFieldError{Field: KeyQuota}
	}
	if plan.Quota == QuotaTatkal && !plan.JourneyDate.Equal(today.AddDate(0, 0, 1)) {
		return Plan{}, &InvalidFieldError{
			Field:  KeyQuota,
			Reason: "TATKAL journeys must be for exactly the next day",
		}
	}

	if plan.TrainNumber, err = get(KeyTrainNumber); err != nil {
		return Plan{}, err
	}
	if _, convErr := strconv.Atoi(plan.TrainNumber); convErr != nil {
		return Plan{}, &InvalidFieldError{Field: KeyTrainNumber, Reason: "it should be numeric"}
	}

	rawClass, err := get(KeyTrainClass)
	if err != nil {
		return Plan{}, err
	}
	plan.Class, err = parseClass(rawClass)
	if err != nil {
		return Plan{}, err
	}
	if plan.Quota == QuotaTatkal && plan.Class == ClassFirstAC {
		return Plan{}, &InvalidFieldError{
			Field:  KeyTrainClass,
			Reason: "'1A' train class is not applicable for the 'TATKAL' journey quota",
		}
	}

	rawCount, err := get(KeyPassengerCount)
	if err != nil {
		return Plan{}, err
	}
	count, convErr := strconv.Atoi(rawCount)
	if convErr != nil || count < 1 {
		return Plan{}, &InvalidFieldError{Field: KeyPassengerCount}
	}
	if plan.Quota == QuotaTatkal && count > MaxPassengersTatkal {
		return Plan{}, &InvalidFieldError{
			Field:  KeyPassengerCount,
			Reason: fmt.Sprintf("maximum %d passengers are allowed in the 'TATKAL' journey quota", MaxPassengersTatkal),
		}
	}
	if count > MaxPassengersGeneral {
		return Plan{}, &InvalidFieldError{
			Field:  KeyPassengerCount,
			Reason: fmt.Sprintf("maximum %d passengers are allowed in the 'GENERAL' journey quota", MaxPassengersGeneral),
		}
	}

	if plan.PaymentAddress, err = get(KeyPaymentAddress); err != nil {
		return Plan{}, err
	}
	if !paymentAddressRe.MatchString(plan.PaymentAddress) {
		return Plan{}, &InvalidFieldError{Field: KeyPaymentAddress}
	}

	// Optional: absent means the captcha stage is left to the operator.
	if v := strings.TrimSpace(raw[KeyCaptchaSolve]); v != "" {
		switch strings.ToLower(v) {
		case "true":
			plan.CaptchaAutoSolve = true
		case "false":
			plan.CaptchaAutoSolve = false
		default:
			return Plan{}, &InvalidFieldError{Field: KeyCaptchaSolve, Reason: "it should be true or false"}
		}
	}

	plan.Passengers = make([]Passenger, 0, count)
	for i := 1; i <= count; i++ {
		p, perr := parsePassenger(i, raw[fmt.Sprintf("passenger%d", i)])
		if perr != nil {
			return Plan{}, perr
		}
		plan.Passengers = append(plan.Passengers, p)
	}

	// Derived last so a valid plan is always schedule-ready.
	plan.Schedule = deriveSchedule(plan.JourneyDate, plan.Class, now)
	return plan, nil
}

func parseClass(s string) (TrainClass, error) {
	c := TrainClass(strings.ToUpper(s))
	for _, valid := range validClasses {
		if c == valid {
			return c, nil
		}
	}
	return "", &InvalidFieldError{Field: KeyTrainClass}
}

func parsePassenger(index int, record string) (Passenger, error) {
	record = strings.TrimSpace(record)
	if record == "" {
		return Passenger{}, &MalformedPassengerError{Index: index, Reason: "details not provided"}
	}

	fields := passengerSplitRe.Split(record, -1)
	if len(fields) < 3 {
		return Passenger{}, &MalformedPassengerError{
			Index:  index,
			Reason: "mandatory fields (<full name> | <age> | <gender>) not provided",
		}
	}

	var p Passenger
	p.Name = fields[0]
	if p.Name == "" {
		return Passenger{}, &MalformedPassengerError{Index: index, Reason: "name not provided"}
	}

	if fields[1] == "" {
		return Passenger{}, &MalformedPassengerError{Index: index, Reason: "age not provided"}
	}
	age, err := strconv.Atoi(fields[1])
	if err != nil || age < MinPassengerAge || age > MaxPassengerAge {
		return Passenger{}, &MalformedPassengerError{
			Index:  index,
			Reason: fmt.Sprintf("invalid age, it should be between %d and %d", MinPassengerAge, MaxPassengerAge),
		}
	}
	p.Age = age

	if fields[2] == "" {
		return Passenger{}, &MalformedPassengerError{Index: index, Reason: "gender not provided"}
	}
	switch g := Gender(strings.ToUpper(fields[2])); g {
	case GenderMale, GenderFemale, GenderTransgender:
		p.Gender = g
	default:
		return Passenger{}, &MalformedPassengerError{Index: index, Reason: "invalid gender"}
	}

	if len(fields) >= 4 && fields[3] != "" {
		b := Berth(strings.ToUpper(fields[3]))
		valid := false
		for _, vb := range validBerths {
			if b == vb {
				valid = true
				break
			}
		}
		if !valid {
			return Passenger{}, &MalformedPassengerError{Index: index, Reason: "invalid berth preference"}
		}
		p.Berth = b
	}

	return p, nil
}
