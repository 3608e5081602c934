package config

import (
	"os"
	"strconv"
	"time"

	"tripforge/internal/models/trip_models"
)

// SegmenterConfig holds every knob the trip segmenter reads. Values are
// loaded once and never mutated, so segmentation and token estimation stay
// deterministic and reproducible.
type SegmenterConfig struct {
	ChunkingThreshold int
	ArrivalSize       int
	ChunkSize         int
	OverlapDays       int

	BaseTokensPerDay  map[trip_models.DetailLevel]int
	ActivitiesPerDay  map[trip_models.DetailLevel]int
	TokensPerActivity map[trip_models.DetailLevel]int
	FocusComplexity   map[string]float64
	ContextOverhead   int

	FocusThemes    []string
	NightlifeTheme string
}

type GatewayConfig struct {
	Provider      string
	GeminiAPIKey  string
	OpenAIAPIKey  string
	FastModel     string
	StandardModel string
	MaxAttempts   int
	RequestTimeout time.Duration
}

type OrchestratorConfig struct {
	InterChunkDelay  time.Duration
	BaseOutputTokens int
	DetailMultiplier map[trip_models.DetailLevel]float64
	TempHighPriority float32
	TempDefault      float32
}

type Config struct {
	HTTPAddr    string
	PostgresURL string
	CacheTTL    time.Duration

	Gateway      GatewayConfig
	Segmenter    SegmenterConfig
	Orchestrator OrchestratorConfig
}

const (
	FocusArrival   = "arrival_orientation"
	FocusDeparture = "departure_logistics"
)

// DefaultSegmenterConfig returns the segmentation defaults. The pattern
// tables are declarative data; only the scalar thresholds are overridable
// from the environment in Load.
func DefaultSegmenterConfig() SegmenterConfig {
	return SegmenterConfig{
		ChunkingThreshold: 5,
		ArrivalSize:       2,
		ChunkSize:         3,
		OverlapDays:       2,
		BaseTokensPerDay: map[trip_models.DetailLevel]int{
			trip_models.DetailComprehensive: 700,
			trip_models.DetailBalanced:      500,
			trip_models.DetailSimplified:    300,
		},
		ActivitiesPerDay: map[trip_models.DetailLevel]int{
			trip_models.DetailComprehensive: 5,
			trip_models.DetailBalanced:      4,
			trip_models.DetailSimplified:    2,
		},
		TokensPerActivity: map[trip_models.DetailLevel]int{
			trip_models.DetailComprehensive: 160,
			trip_models.DetailBalanced:      120,
			trip_models.DetailSimplified:    80,
		},
		FocusComplexity: map[string]float64{
			FocusArrival:                  1.2,
			FocusDeparture:                0.8,
			"local_culture":               1.0,
			"nature_and_outdoors":         1.1,
			"food_and_markets":            1.0,
			"history_and_architecture":    1.1,
			"hidden_gems":                 1.2,
			"nightlife_and_entertainment": 1.1,
		},
		ContextOverhead: 150,
		FocusThemes: []string{
			"local_culture",
			"nature_and_outdoors",
			"food_and_markets",
			"history_and_architecture",
			"hidden_gems",
		},
		NightlifeTheme: "nightlife_and_entertainment",
	}
}

func defaultOrchestratorConfig() OrchestratorConfig {
	return OrchestratorConfig{
		InterChunkDelay:  2 * time.Second,
		BaseOutputTokens: 2000,
		DetailMultiplier: map[trip_models.DetailLevel]float64{
			trip_models.DetailComprehensive: 1.5,
			trip_models.DetailBalanced:      1.0,
			trip_models.DetailSimplified:    0.7,
		},
		TempHighPriority: 0.7,
		TempDefault:      0.8,
	}
}

// Load reads configuration from the environment, falling back to defaults.
func Load() Config {
	seg := DefaultSegmenterConfig()
	seg.ChunkingThreshold = envOrDefaultInt("SEGMENT_CHUNKING_THRESHOLD", seg.ChunkingThreshold)
	seg.ArrivalSize = envOrDefaultInt("SEGMENT_ARRIVAL_SIZE", seg.ArrivalSize)
	seg.ChunkSize = envOrDefaultInt("SEGMENT_CHUNK_SIZE", seg.ChunkSize)
	seg.OverlapDays = envOrDefaultInt("SEGMENT_OVERLAP_DAYS", seg.OverlapDays)

	orch := defaultOrchestratorConfig()
	orch.InterChunkDelay = envOrDefaultDuration("GENERATION_INTER_CHUNK_DELAY", orch.InterChunkDelay)
	orch.BaseOutputTokens = envOrDefaultInt("GENERATION_BASE_OUTPUT_TOKENS", orch.BaseOutputTokens)

	return Config{
		HTTPAddr:    envOrDefault("HTTP_ADDR", ":8080"),
		PostgresURL: os.Getenv("POSTGRES_URL"),
		CacheTTL:    envOrDefaultDuration("ITINERARY_CACHE_TTL", time.Hour),
		Gateway: GatewayConfig{
			Provider:       envOrDefault("AI_PROVIDER", "gemini"),
			GeminiAPIKey:   os.Getenv("GEMINI_API_KEY"),
			OpenAIAPIKey:   os.Getenv("OPENAI_API_KEY"),
			FastModel:      envOrDefault("AI_FAST_MODEL", "gemini-2.0-flash"),
			StandardModel:  envOrDefault("AI_STANDARD_MODEL", "gemini-1.5-pro"),
			MaxAttempts:    envOrDefaultInt("AI_MAX_ATTEMPTS", 3),
			RequestTimeout: envOrDefaultDuration("AI_REQUEST_TIMEOUT", 30*time.Second),
		},
		Segmenter:    seg,
		Orchestrator: orch,
	}
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrDefaultInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envOrDefaultDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
