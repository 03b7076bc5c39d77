package booking

import "vibezone/models"

// allowedTransitions is the booking state machine. A transition absent from
// this map must never be applied, by any caller, automatic or admin.
//
//	pending   -> confirmed | expired | cancelled | payment_failed
//	confirmed -> cancelled (admin only)
//	payment_failed -> confirmed | expired | cancelled (a retried payment
//	                  can still confirm; the sweep or an admin resolves it)
//
// confirmed, expired and cancelled are otherwise terminal.
var allowedTransitions = map[string]map[string]bool{
	models.StatusPending: {
		models.StatusConfirmed:     true,
		models.StatusExpired:       true,
		models.StatusCancelled:     true,
		models.StatusPaymentFailed: true,
	},
	models.StatusConfirmed: {
		models.StatusCancelled: true,
	},
	models.StatusPaymentFailed: {
		models.StatusConfirmed: true,
		models.StatusExpired:   true,
		models.StatusCancelled: true,
	},
	models.StatusExpired:   {},
	models.StatusCancelled: {},
}

// CanTransition reports whether the state machine allows from -> to.
func CanTransition(from, to string) bool {
	return allowedTransitions[from][to]
}

// ValidStatus reports whether s is a known booking status.
func ValidStatus(s string) bool {
	_, ok := allowedTransitions[s]
	return ok
}
