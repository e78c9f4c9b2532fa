package workflow

// State is a position in the booking state machine. The machine is
// strictly ordered: no state is revisited and there is no branching
// back. Authenticated floats: it follows Searched inside the Tatkal
// window and SeatAssigned outside it.
type State int

const (
	StateStart State = iota
	StateSearched
	StateAuthenticated
	StateInventorySelected
	StateSeatAssigned
	StateReviewConfirmed
	StatePassengersEntered
	StatePaymentInitiated
	StatePaid
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateStart:
		return "start"
	case StateSearched:
		return "searched"
	case StateAuthenticated:
		return "authenticated"
	case StateInventorySelected:
		return "inventory_selected"
	case StateSeatAssigned:
		return "seat_assigned"
	case StateReviewConfirmed:
		return "review_confirmed"
	case StatePassengersEntered:
		return "passengers_entered"
	case StatePaymentInitiated:
		return "payment_initiated"
	case StatePaid:
		return "paid"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}
