package workflow

// Selectors is the catalog of lookup keys the orchestrator drives the
// booking through. The concrete values live in the site-specific
// infrastructure package; the workflow treats them as opaque. Indexed
// entries are factories because the page stamps out one block per
// passenger and one row per train.
type Selectors struct {
	TrainSearchButton Selector

	OriginInput            Selector
	OriginFirstOption      Selector
	DestinationInput       Selector
	DestinationFirstOption Selector
	JourneyDateInput       Selector
	QuotaDropdown          Selector
	QuotaOption            func(quota string) Selector

	LoginUserInput          Selector
	LoginPasswordInput      Selector
	LoginSubmitButton       Selector
	PendingTransactionClose Selector

	TrainRow           func(trainNumber string) Selector
	ClassCell          func(trainNumber, class string) Selector
	SeatDateCell       func(trainNumber, dateLabel string) Selector
	AvailabilityMarker func(trainNumber, dateLabel string) Selector
	BookNowButton      func(trainNumber string) Selector

	PartialMatchConfirm Selector

	PassengerBlock   func(i int) Selector
	PassengerName    func(i int) Selector
	PassengerAge     func(i int) Selector
	PassengerGender  func(i int) Selector
	PassengerBerth   func(i int) Selector
	AddPassengerLink Selector

	AutoUpgradeToggle   Selector
	ConfirmBerthsToggle Selector
	UPIPaymentRadio     Selector
	ContinueButton      Selector

	DifferentCoachDismiss Selector

	CaptchaImage         Selector
	CaptchaInput         Selector
	ReviewContinueButton Selector

	GatewayOption Selector
	// GatewayActiveClass marks the gateway option as already selected
	// in its class attribute.
	GatewayActiveClass  string
	PayAndBookButton    Selector
	PaymentAddressInput Selector
	PaySubmitButton     Selector
}
