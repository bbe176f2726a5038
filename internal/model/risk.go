package model

import "time"

// RiskTier is the derived urgency of a container. It is never stored.
type RiskTier int

const (
	RiskNone RiskTier = iota
	RiskWarning
	RiskOverdue
)

// WarningWindowDays is the inclusive number of days before the LFD that
// raises a warning.
const WarningWindowDays = 3

func (r RiskTier) String() string {
	switch r {
	case RiskWarning:
		return "warning"
	case RiskOverdue:
		return "overdue"
	default:
		return "none"
	}
}

// Classify derives the risk tier from the last free day, the status and the
// current instant. "Today" is the calendar day of now in now's location.
func Classify(lfd *Date, status Status, now time.Time) RiskTier {
	if lfd == nil || lfd.IsZero() || status.Settled() {
		return RiskNone
	}

	days := lfd.DaysSince(DateOf(now))
	switch {
	case days < 0:
		return RiskOverdue
	case days <= WarningWindowDays:
		return RiskWarning
	default:
		return RiskNone
	}
}
