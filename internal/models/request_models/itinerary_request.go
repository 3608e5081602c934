package request_models

import "tripforge/internal/models/trip_models"

type PreferencesRequest struct {
	Interests   []string `json:"interests"`
	Constraints []string `json:"constraints"`
	Pace        string   `json:"pace"`
	Nightlife   string   `json:"nightlife"`
}

type GenerateItineraryRequest struct {
	Destination  string             `json:"destination" binding:"required"`
	Country      string             `json:"country"`
	StartDate    string             `json:"start_date"`
	DurationDays int                `json:"duration_days" binding:"required,gte=1,lte=60"`
	Budget       string             `json:"budget"`
	Preferences  PreferencesRequest `json:"preferences"`
}

// ExtractPOIsRequest accepts either whole days or a flat activity list.
// Days win when both are present.
type ExtractPOIsRequest struct {
	Destination string                 `json:"destination" binding:"required"`
	City        string                 `json:"city"`
	Country     string                 `json:"country"`
	Days        []trip_models.Day      `json:"days"`
	Activities  []trip_models.Activity `json:"activities"`
}
