package services

import (
	"fmt"
	"math"
	"strings"

	"tripforge/internal/config"
	"tripforge/internal/models/trip_models"
)

// FocusFullTrip marks the single chunk of a short trip that never got
// segmented.
const FocusFullTrip = "full_trip"

// AnalyzeTrip splits a trip into generation chunks. It is a pure function
// of the spec and the segmenter config: same input, same plan.
//
// Trips below the chunking threshold become a single full-coverage chunk.
// Longer trips get an arrival chunk, middle chunks sized by pace, and a
// one-day departure chunk. Chunks are contiguous, disjoint and cover every
// day of the trip exactly once.
func AnalyzeTrip(trip trip_models.TripSpec, cfg config.SegmenterConfig) trip_models.SegmentationPlan {
	days := trip.DurationDays
	if days < 1 {
		return trip_models.SegmentationPlan{}
	}

	if days < cfg.ChunkingThreshold {
		chunk := trip_models.Chunk{
			ID:          "chunk-1",
			StartDay:    1,
			EndDay:      days,
			Priority:    trip_models.PriorityHigh,
			FocusTheme:  FocusFullTrip,
			DetailLevel: trip_models.DetailComprehensive,
		}
		return trip_models.SegmentationPlan{
			NeedsChunking:   false,
			Chunks:          []trip_models.Chunk{chunk},
			EstimatedTokens: EstimateTokens(chunk, trip, cfg),
		}
	}

	var chunks []trip_models.Chunk

	arrivalEnd := cfg.ArrivalSize
	if arrivalEnd > days {
		arrivalEnd = days
	}
	chunks = append(chunks, trip_models.Chunk{
		ID:          "chunk-1",
		StartDay:    1,
		EndDay:      arrivalEnd,
		Priority:    trip_models.PriorityHigh,
		FocusTheme:  config.FocusArrival,
		DetailLevel: trip_models.DetailComprehensive,
	})

	// The last day is reserved for departure logistics whenever the trip
	// extends past the arrival chunk.
	middleEnd := days
	hasDeparture := days > arrivalEnd
	if hasDeparture {
		middleEnd = days - 1
	}

	step := paceChunkSize(cfg.ChunkSize, trip.Preferences.Pace)
	middleIdx := 0
	for start := arrivalEnd + 1; start <= middleEnd; start += step {
		end := start + step - 1
		if end > middleEnd {
			end = middleEnd
		}
		chunks = append(chunks, trip_models.Chunk{
			ID:          fmt.Sprintf("chunk-%d", len(chunks)+1),
			StartDay:    start,
			EndDay:      end,
			Priority:    trip_models.PriorityNormal,
			FocusTheme:  middleFocusTheme(cfg, trip.Preferences, middleIdx, days),
			DetailLevel: trip_models.DetailBalanced,
		})
		middleIdx++
	}

	if hasDeparture {
		chunks = append(chunks, trip_models.Chunk{
			ID:          fmt.Sprintf("chunk-%d", len(chunks)+1),
			StartDay:    days,
			EndDay:      days,
			Priority:    trip_models.PriorityLow,
			FocusTheme:  config.FocusDeparture,
			DetailLevel: trip_models.DetailSimplified,
		})
	}

	total := 0
	for _, c := range chunks {
		total += EstimateTokens(c, trip, cfg)
	}

	return trip_models.SegmentationPlan{
		NeedsChunking:   true,
		Chunks:          chunks,
		EstimatedTokens: total,
	}
}

// paceChunkSize scales the configured middle-chunk size by travel pace.
// Easy trips get smaller chunks so each request covers less ground;
// intense trips pack more days per request.
func paceChunkSize(base int, pace trip_models.Pace) int {
	var size int
	switch pace {
	case trip_models.PaceEasy:
		size = int(math.Floor(float64(base) * 0.8))
	case trip_models.PaceIntense:
		size = int(math.Ceil(float64(base) * 1.2))
	default:
		size = base
	}
	if size < 1 {
		size = 1
	}
	return size
}

// middleFocusTheme rotates through the configured themes. On week-or-longer
// trips the second and fourth middle chunks are forced to nightlife so
// evening content recurs roughly weekly instead of landing on arrival or
// departure days; a heavy nightlife preference also adds the theme to the
// rotation itself.
func middleFocusTheme(cfg config.SegmenterConfig, prefs trip_models.Preferences, idx, days int) string {
	if (idx == 1 || idx == 3) && days >= 7 {
		return cfg.NightlifeTheme
	}

	themes := cfg.FocusThemes
	if prefs.Nightlife == trip_models.NightlifeHeavy {
		themes = append(append([]string{}, themes...), cfg.NightlifeTheme)
	}
	if len(themes) == 0 {
		return FocusFullTrip
	}
	return themes[idx%len(themes)]
}

// EstimateTokens predicts the output budget one chunk will need. The
// model: per-day base plus per-activity cost, scaled by focus and
// destination complexity, plus a flat overhead for chunks that carry
// continuity context from previous days.
func EstimateTokens(chunk trip_models.Chunk, trip trip_models.TripSpec, cfg config.SegmenterConfig) int {
	base := cfg.BaseTokensPerDay[chunk.DetailLevel]
	activities := cfg.ActivitiesPerDay[chunk.DetailLevel]
	perActivity := cfg.TokensPerActivity[chunk.DetailLevel]

	focus, ok := cfg.FocusComplexity[chunk.FocusTheme]
	if !ok {
		focus = 1.0
	}
	dest := DestinationComplexity(trip.Destination)

	perDay := float64(base) + float64(activities)*float64(perActivity)*focus*dest
	tokens := int(math.Round(perDay * float64(chunk.Span())))

	if chunk.FocusTheme != config.FocusArrival && chunk.FocusTheme != config.FocusDeparture {
		tokens += cfg.ContextOverhead
	}
	return tokens
}

// destinationWeights is checked in order; the first matching keyword wins.
var destinationWeights = []struct {
	keyword string
	weight  float64
}{
	{"multi-city", 1.4},
	{"grand tour", 1.4},
	{"road trip", 1.4},
	{"japan", 1.25},
	{"italy", 1.25},
	{"france", 1.25},
	{"vietnam", 1.25},
	{"thailand", 1.25},
	{"spain", 1.25},
	{"tuscany", 1.15},
	{"provence", 1.15},
	{"mekong", 1.15},
	{"bavaria", 1.15},
	{"patagonia", 1.15},
}

// DestinationComplexity weighs how much descriptive output a destination
// tends to need. Multi-stop trips rank above whole countries, which rank
// above regions; a plain city gets weight 1.0.
func DestinationComplexity(destination string) float64 {
	lower := strings.ToLower(destination)
	for _, dw := range destinationWeights {
		if strings.Contains(lower, dw.keyword) {
			return dw.weight
		}
	}
	return 1.0
}
