package db_models

// Itinerary persists one generated trip. The day list is stored as a JSON
// document; the scalar columns exist for listing and filtering.
type Itinerary struct {
	BaseModel
	Destination     string `gorm:"index"`
	Country         string
	DurationDays    int
	StartDate       int64
	Budget          string
	Pace            string
	ChunkCount      int
	FallbackDays    int
	EstimatedTokens int
	TokensUsed      int
	DaysJSON        string `gorm:"type:jsonb"`
}
