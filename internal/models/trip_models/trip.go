package trip_models

import "time"

type Pace string

const (
	PaceEasy    Pace = "easy"
	PaceNormal  Pace = "normal"
	PaceIntense Pace = "intense"
)

type NightlifeLevel string

const (
	NightlifeNone  NightlifeLevel = "none"
	NightlifeSome  NightlifeLevel = "some"
	NightlifeHeavy NightlifeLevel = "heavy"
)

type Preferences struct {
	Interests   []string       `json:"interests"`
	Constraints []string       `json:"constraints"`
	Pace        Pace           `json:"pace"`
	Nightlife   NightlifeLevel `json:"nightlife"`
}

// TripSpec is the caller-supplied description of the trip to generate.
// StartDate may be zero; day dates are then anchored on the current day.
type TripSpec struct {
	ID           string      `json:"id"`
	Destination  string      `json:"destination"`
	Country      string      `json:"country,omitempty"`
	StartDate    time.Time   `json:"start_date,omitempty"`
	DurationDays int         `json:"duration_days"`
	Budget       string      `json:"budget,omitempty"`
	Preferences  Preferences `json:"preferences"`
}

// TripContext is the slice of trip information the POI extractor needs.
type TripContext struct {
	Destination string `json:"destination"`
	City        string `json:"city,omitempty"`
	Country     string `json:"country,omitempty"`
}
