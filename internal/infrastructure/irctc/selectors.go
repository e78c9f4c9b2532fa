// Package irctc holds everything specific to the IRCTC markup: the
// entry URL and the selector catalog the workflow drives the booking
// through. The rest of the system treats these values as opaque lookup
// keys, so markup churn stays confined to this package.
package irctc

import (
	"fmt"

	"github.com/example/irctc-booker/internal/application/workflow"
)

// TrainSearchURL is the booking entry point.
const TrainSearchURL = "https://www.irctc.co.in/nget/train-search"

// Selectors returns the catalog for the current IRCTC train-search UI.
func Selectors() workflow.Selectors {
	return workflow.Selectors{
		TrainSearchButton: workflow.CSS("button[type='submit'][class='search_btn train_Search']"),

		OriginInput:            workflow.CSS("input[aria-controls='pr_id_1_list']"),
		OriginFirstOption:      workflow.CSS("#pr_id_1_list li:first-child"),
		DestinationInput:       workflow.CSS("input[aria-controls='pr_id_2_list']"),
		DestinationFirstOption: workflow.CSS("#pr_id_2_list li:first-child"),
		JourneyDateInput:       workflow.CSS("span.ui-calendar input"),
		QuotaDropdown:          workflow.CSS("#journeyQuota"),
		QuotaOption: func(quota string) workflow.Selector {
			return workflow.CSS(fmt.Sprintf("div.ui-dropdown-items-wrapper li[aria-label='%s']", quota))
		},

		LoginUserInput:     workflow.CSS("input[formcontrolname='userid']"),
		LoginPasswordInput: workflow.CSS("input[formcontrolname='password']"),
		LoginSubmitButton:  workflow.XPath("//button[@type='submit'][contains(text(), 'SIGN IN')]"),
		PendingTransactionClose: workflow.XPath(
			"//div[@aria-labelledby='ui-dialog-2-label']//button[contains(text(), 'Close')]"),

		TrainRow:           trainRow,
		ClassCell:          classCell,
		SeatDateCell:       seatDateCell,
		AvailabilityMarker: availabilityMarker,
		BookNowButton: func(trainNumber string) workflow.Selector {
			return workflow.XPath(trainRowExpr(trainNumber) + "//button[contains(text(), 'Book Now')]")
		},

		PartialMatchConfirm: workflow.XPath(
			"//span[@class='ui-button-text ui-clickable'][contains(text(), 'Yes')]"),

		PassengerBlock:   passengerBlock,
		PassengerName:    passengerField("input[@placeholder='Passenger Name']"),
		PassengerAge:     passengerField("input[@placeholder='Age']"),
		PassengerGender:  passengerField("select[@formcontrolname='passengerGender']"),
		PassengerBerth:   passengerField("select[@formcontrolname='passengerBerthChoice']"),
		AddPassengerLink: workflow.XPath("//span[contains(text(), 'Add Passenger')]/parent::a"),

		AutoUpgradeToggle:   workflow.CSS("[for='autoUpgradation']"),
		ConfirmBerthsToggle: workflow.CSS("[for='confirmberths']"),
		UPIPaymentRadio:     workflow.CSS("p-radiobutton[name='paymentType'][id='2'] div[role='radio']"),
		ContinueButton: workflow.XPath(
			"//button[@class='train_Search btnDefault'][contains(text(), 'Continue')]"),

		DifferentCoachDismiss: workflow.XPath(
			"//span[@class='ui-button-text ui-clickable'][contains(text(), 'No')]"),

		CaptchaImage: workflow.CSS("img.captcha-img"),
		CaptchaInput: workflow.CSS("input#captcha"),
		ReviewContinueButton: workflow.XPath(
			"//button[@class='btnDefault train_Search'][contains(text(), 'Continue')]"),

		GatewayOption:      workflow.XPath("//span[contains(text(), 'IRCTC iPay')]/parent::div"),
		GatewayActiveClass: "bank-type-active",
		PayAndBookButton: workflow.XPath(
			"//button[contains(text(), 'Pay & Book')][contains(@class, 'btn btn-primary')]"),
		PaymentAddressInput: workflow.CSS("#vpaCheck"),
		PaySubmitButton:     workflow.CSS("#upi-sbmt"),
	}
}

func trainRowExpr(trainNumber string) string {
	return fmt.Sprintf(
		"//strong[contains(text(), '(%s)')]/ancestor::div[contains(@class, 'border-all')]",
		trainNumber)
}

func trainRow(trainNumber string) workflow.Selector {
	return workflow.XPath(trainRowExpr(trainNumber))
}

func classCell(trainNumber, class string) workflow.Selector {
	return workflow.XPath(fmt.Sprintf(
		"%s//td//*[contains(text(), '(%s)')]/ancestor::td", trainRowExpr(trainNumber), class))
}

func seatDateCell(trainNumber, dateLabel string) workflow.Selector {
	return workflow.XPath(fmt.Sprintf(
		"%s//td//strong[contains(text(), '%s')]/ancestor::td", trainRowExpr(trainNumber), dateLabel))
}

func availabilityMarker(trainNumber, dateLabel string) workflow.Selector {
	return workflow.XPath(fmt.Sprintf(
		"%s//td//strong[contains(text(), '%s')]/ancestor::td//div[contains(@class, 'AVAILABLE')]",
		trainRowExpr(trainNumber), dateLabel))
}

func passengerBlock(i int) workflow.Selector {
	return workflow.XPath(fmt.Sprintf("(//app-passenger)[%d]", i))
}

func passengerField(field string) func(int) workflow.Selector {
	return func(i int) workflow.Selector {
		return workflow.XPath(fmt.Sprintf("(//app-passenger)[%d]//%s", i, field))
	}
}
