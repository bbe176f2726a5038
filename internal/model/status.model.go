package model

// Status is the customs lifecycle state of a container. The set is closed,
// but the store does not enforce it, so readers must tolerate other values.
type Status string

const (
	StatusOnBoard          Status = "On Board"
	StatusArrived          Status = "Arrived"
	StatusCustomsClearance Status = "Customs Clearance"
	StatusReleased         Status = "Released"
	StatusClosed           Status = "Closed"
	StatusHold             Status = "Hold"
)

// DefaultStatus is used when a new record is submitted without a status.
const DefaultStatus = StatusOnBoard

var Statuses = []Status{
	StatusOnBoard,
	StatusArrived,
	StatusCustomsClearance,
	StatusReleased,
	StatusClosed,
	StatusHold,
}

func (s Status) Valid() bool {
	switch s {
	case StatusOnBoard, StatusArrived, StatusCustomsClearance, StatusReleased, StatusClosed, StatusHold:
		return true
	}
	return false
}

// Settled reports whether the shipment has left the time-sensitive window.
func (s Status) Settled() bool {
	return s == StatusReleased || s == StatusClosed
}

type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityCaution  Severity = "caution"
	SeverityProgress Severity = "progress"
	SeveritySuccess  Severity = "success"
	SeverityNeutral  Severity = "neutral"
	SeverityDanger   Severity = "danger"
)

type Presentation struct {
	Label    string   `json:"label"`
	Severity Severity `json:"severity"`
	Class    string   `json:"class"`
}

const fallbackClass = "badge badge-default"

// Present maps a status to its badge. Unknown values keep their raw text
// and get the neutral default style.
func Present(s Status) Presentation {
	switch s {
	case StatusOnBoard:
		return Presentation{Label: "On Board", Severity: SeverityInfo, Class: "badge badge-blue"}
	case StatusArrived:
		return Presentation{Label: "Arrived at Port", Severity: SeverityCaution, Class: "badge badge-yellow"}
	case StatusCustomsClearance:
		return Presentation{Label: "Clearing Customs", Severity: SeverityProgress, Class: "badge badge-purple"}
	case StatusReleased:
		return Presentation{Label: "Released", Severity: SeveritySuccess, Class: "badge badge-green"}
	case StatusClosed:
		return Presentation{Label: "Closed", Severity: SeverityNeutral, Class: "badge badge-gray"}
	case StatusHold:
		return Presentation{Label: "Inspection / Hold", Severity: SeverityDanger, Class: "badge badge-red"}
	}
	label := string(s)
	if label == "" {
		label = "Unknown"
	}
	return Presentation{Label: label, Severity: SeverityNeutral, Class: fallbackClass}
}
