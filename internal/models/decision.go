package models

// Decision is the approval verdict on a project.
type Decision string

const (
	DecisionPending  Decision = "Pending"
	DecisionApproved Decision = "Approved"
	DecisionRejected Decision = "Rejected"
)

// Valid reports whether d is one of the three known states.
func (d Decision) Valid() bool {
	switch d {
	case DecisionPending, DecisionApproved, DecisionRejected:
		return true
	}
	return false
}

// Requestable reports whether d may be passed to a decision toggle.
// Pending is only reachable by toggling a decision off.
func (d Decision) Requestable() bool {
	return d == DecisionApproved || d == DecisionRejected
}

// NextDecision applies the toggle rule: requesting the current decision
// again resets it to Pending, anything else adopts the requested state.
func NextDecision(current, requested Decision) Decision {
	if current == requested {
		return DecisionPending
	}
	return requested
}
