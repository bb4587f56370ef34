package domain

type DonationStatus string

const (
	StatusAvailable DonationStatus = "available"
	StatusAssigned  DonationStatus = "assigned"
	StatusInTransit DonationStatus = "in-transit"
	StatusDelivered DonationStatus = "delivered"
	StatusCancelled DonationStatus = "cancelled"
)

// donationTransitions lists the legal successors of each state.
// Terminal states have no entry.
var donationTransitions = map[DonationStatus][]DonationStatus{
	StatusAvailable: {StatusAssigned, StatusCancelled},
	StatusAssigned:  {StatusInTransit, StatusCancelled},
	StatusInTransit: {StatusDelivered, StatusCancelled},
}

func (s DonationStatus) Valid() bool {
	switch s {
	case StatusAvailable, StatusAssigned, StatusInTransit, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

func (s DonationStatus) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// HasVolunteer reports whether a donation in this state must carry an assigned volunteer.
func (s DonationStatus) HasVolunteer() bool {
	return s == StatusAssigned || s == StatusInTransit || s == StatusDelivered
}

func (s DonationStatus) CanTransitionTo(next DonationStatus) bool {
	for _, candidate := range donationTransitions[s] {
		if candidate == next {
			return true
		}
	}
	return false
}

// CheckTransition returns a *TransitionError when next is not a legal successor of s.
func (s DonationStatus) CheckTransition(next DonationStatus) error {
	if !s.CanTransitionTo(next) {
		return &TransitionError{From: s, To: next}
	}
	return nil
}

func ActiveDonationStatuses() []DonationStatus {
	return []DonationStatus{StatusAvailable, StatusAssigned}
}
