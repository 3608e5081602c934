package response_models

import "tripforge/internal/models/trip_models"

type ItineraryResponse struct {
	ID              string            `json:"id,omitempty"`
	Destination     string            `json:"destination"`
	DurationDays    int               `json:"duration_days"`
	Days            []trip_models.Day `json:"days"`
	ChunkCount      int               `json:"chunk_count"`
	FallbackDays    int               `json:"fallback_days"`
	EstimatedTokens int               `json:"estimated_tokens"`
	TokensUsed      int               `json:"tokens_used"`
	Cached          bool              `json:"cached"`
}

type ItinerarySummaryResponse struct {
	ID           string `json:"id"`
	Destination  string `json:"destination"`
	DurationDays int    `json:"duration_days"`
	ChunkCount   int    `json:"chunk_count"`
	FallbackDays int    `json:"fallback_days"`
	CreatedAt    int64  `json:"created_at"`
}

type ItineraryListResponse struct {
	Itineraries []ItinerarySummaryResponse `json:"itineraries"`
	Count       int                        `json:"count"`
}

type POIListResponse struct {
	POIs  []trip_models.POI `json:"pois"`
	Count int               `json:"count"`
}
