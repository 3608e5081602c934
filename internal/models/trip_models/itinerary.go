package trip_models

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type Location struct {
	Name        string       `json:"name"`
	Address     string       `json:"address,omitempty"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
}

type Activity struct {
	Time            string    `json:"time"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Location        *Location `json:"location,omitempty"`
	DurationMinutes int       `json:"duration_minutes"`
	Cost            float64   `json:"cost"`
	Category        string    `json:"category"`
}

// Day holds one generated itinerary day. IsFallback marks days that were
// synthesized locally after a chunk failed, so callers can tell them apart
// from AI-generated content.
type Day struct {
	Date       string     `json:"date"`
	Activities []Activity `json:"activities"`
	IsFallback bool       `json:"is_fallback,omitempty"`
}

// GenerationContext is the rolling state threaded between sequential chunk
// generations. It is owned by exactly one generation run and mutated once
// per completed chunk.
type GenerationContext struct {
	PreviousDays []Day    `json:"previous_days"`
	OverallTheme string   `json:"overall_theme"`
	Budget       string   `json:"budget"`
	Constraints  []string `json:"constraints"`
}

// ItineraryResult is the assembled output of one generation run.
type ItineraryResult struct {
	Days            []Day `json:"days"`
	ChunkCount      int   `json:"chunk_count"`
	FallbackDays    int   `json:"fallback_days"`
	EstimatedTokens int   `json:"estimated_tokens"`
	TokensUsed      int   `json:"tokens_used"`
}

// POI is a named place recovered from itinerary text, with an inferred
// category and a confidence in [0,1].
type POI struct {
	Name          string       `json:"name"`
	City          string       `json:"city"`
	Country       string       `json:"country"`
	Category      string       `json:"category"`
	Confidence    float64      `json:"confidence"`
	ExtractedFrom string       `json:"extracted_from"`
	OriginalText  string       `json:"original_text"`
	Coordinates   *Coordinates `json:"coordinates,omitempty"`
}
