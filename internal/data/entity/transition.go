package entity

// TransitionPolicy decides which status rewrites the lifecycle engine accepts.
type TransitionPolicy struct {
	strict bool
}

// PermissiveTransitions accepts any recognized status from any recognized status.
func PermissiveTransitions() TransitionPolicy {
	return TransitionPolicy{}
}

// StrictTransitions only accepts the moves listed in Transitions.
func StrictTransitions() TransitionPolicy {
	return TransitionPolicy{strict: true}
}

// Transitions is the forward state machine. Rejected and cancelled are terminal.
var Transitions = map[BookingStatus][]BookingStatus{
	BookingStatusPending:   {BookingStatusApproved, BookingStatusRejected, BookingStatusCancelled},
	BookingStatusApproved:  {BookingStatusCancelled},
	BookingStatusRejected:  {},
	BookingStatusCancelled: {},
}

func (p TransitionPolicy) Strict() bool {
	return p.strict
}

// Allows reports whether from -> to may be written. Same-status writes are
// allowed here; the engine decides whether they are no-ops.
func (p TransitionPolicy) Allows(from, to BookingStatus) bool {
	if !from.Valid() || !to.Valid() {
		return false
	}
	if !p.strict || from == to {
		return true
	}
	for _, next := range Transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
