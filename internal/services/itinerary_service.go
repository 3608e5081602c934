package services

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"tripforge/internal/config"
	"tripforge/internal/models/trip_models"
	"tripforge/pkg/utils"
)

type ItineraryServiceInterface interface {
	// GenerateItinerary runs segmentation and picks the chunked or
	// single-request path. The returned day list always has exactly
	// trip.DurationDays entries; the only error it can return is the
	// credential failure.
	GenerateItinerary(ctx context.Context, trip trip_models.TripSpec) (*trip_models.ItineraryResult, error)
	GenerateChunkedItinerary(ctx context.Context, trip trip_models.TripSpec) (*trip_models.ItineraryResult, error)
}

type ItineraryService struct {
	ai      utils.AIClientInterface
	prompts PromptBuilderInterface
	parser  ResponseParserInterface
	segCfg  config.SegmenterConfig
	orchCfg config.OrchestratorConfig
	limiter *rate.Limiter
	log     *logrus.Logger
}

func NewItineraryService(
	ai utils.AIClientInterface,
	prompts PromptBuilderInterface,
	parser ResponseParserInterface,
	segCfg config.SegmenterConfig,
	orchCfg config.OrchestratorConfig,
	log *logrus.Logger,
) ItineraryServiceInterface {
	return &ItineraryService{
		ai:      ai,
		prompts: prompts,
		parser:  parser,
		segCfg:  segCfg,
		orchCfg: orchCfg,
		limiter: rate.NewLimiter(rate.Every(orchCfg.InterChunkDelay), 1),
		log:     log,
	}
}

func (s *ItineraryService) GenerateItinerary(ctx context.Context, trip trip_models.TripSpec) (*trip_models.ItineraryResult, error) {
	if trip.DurationDays < 1 || strings.TrimSpace(trip.Destination) == "" {
		return nil, utils.ErrInvalidInput
	}

	plan := AnalyzeTrip(trip, s.segCfg)
	if plan.NeedsChunking {
		return s.generateChunks(ctx, trip, plan)
	}
	return s.generateStandard(ctx, trip, plan)
}

func (s *ItineraryService) GenerateChunkedItinerary(ctx context.Context, trip trip_models.TripSpec) (*trip_models.ItineraryResult, error) {
	if trip.DurationDays < 1 || strings.TrimSpace(trip.Destination) == "" {
		return nil, utils.ErrInvalidInput
	}
	return s.generateChunks(ctx, trip, AnalyzeTrip(trip, s.segCfg))
}

// generateStandard handles trips below the chunking threshold with one
// request. Failure degrades to a fully synthetic itinerary rather than an
// error; only a credential failure aborts.
func (s *ItineraryService) generateStandard(ctx context.Context, trip trip_models.TripSpec, plan trip_models.SegmentationPlan) (*trip_models.ItineraryResult, error) {
	result := &trip_models.ItineraryResult{
		ChunkCount:      1,
		EstimatedTokens: plan.EstimatedTokens,
	}

	prompt := s.prompts.BuildStandardItineraryPrompt(trip)
	resp, err := s.ai.Generate(ctx, utils.AIRequest{
		Tier:            utils.TierStandard,
		Prompt:          prompt,
		Temperature:     s.orchCfg.TempHighPriority,
		MaxOutputTokens: s.maxOutputTokens(trip_models.DetailComprehensive),
		ForceJSON:       true,
	})

	var days []trip_models.Day
	if err == nil {
		days, err = s.parser.ProcessStandardItineraryResponse(resp.Content, trip)
	}
	if err != nil {
		if utils.IsCredentialErr(err) {
			return nil, err
		}
		s.log.WithField("trip", trip.Destination).Warnf("standard generation failed, using fallback days: %v", err)
		days = nil
	} else {
		result.TokensUsed = resp.TokensUsed
	}

	result.Days, result.FallbackDays = s.fitToDuration(days, trip)
	return result, nil
}

// generateChunks is the sequential chunk loop. Each chunk feeds forward a
// bounded window of previous days; a failed chunk is filled with fallback
// days and never aborts the trip.
func (s *ItineraryService) generateChunks(ctx context.Context, trip trip_models.TripSpec, plan trip_models.SegmentationPlan) (*trip_models.ItineraryResult, error) {
	if len(plan.Chunks) == 0 {
		return nil, utils.ErrInvalidInput
	}

	genCtx := &trip_models.GenerationContext{
		OverallTheme: strings.Join(trip.Preferences.Interests, ", "),
		Budget:       trip.Budget,
		Constraints:  trip.Preferences.Constraints,
	}

	result := &trip_models.ItineraryResult{
		ChunkCount:      len(plan.Chunks),
		EstimatedTokens: plan.EstimatedTokens,
	}

	var days []trip_models.Day
	cancelled := false

	for _, chunk := range plan.Chunks {
		// Once the caller's context is gone, stop calling out and fill
		// the remaining ranges deterministically so the day count still
		// comes out right.
		if cancelled || ctx.Err() != nil {
			cancelled = true
			days = append(days, s.fallbackDaysFor(trip, chunk)...)
			continue
		}

		// Inter-chunk pacing keeps us under provider rate limits.
		if err := s.limiter.Wait(ctx); err != nil {
			cancelled = true
			days = append(days, s.fallbackDaysFor(trip, chunk)...)
			continue
		}

		chunkTrip := deriveChunkTrip(trip, chunk, genCtx)
		prompt := s.prompts.BuildChunkedItineraryPrompt(chunkTrip, chunk, genCtx)

		resp, err := s.ai.Generate(ctx, utils.AIRequest{
			Tier:            utils.TierFast,
			Prompt:          prompt,
			Temperature:     s.temperatureFor(chunk),
			MaxOutputTokens: s.maxOutputTokens(chunk.DetailLevel),
			ForceJSON:       true,
		})
		if err != nil {
			if utils.IsCredentialErr(err) {
				return nil, err
			}
			s.log.WithFields(logrus.Fields{
				"chunk": chunk.ID,
				"range": fmt.Sprintf("%d-%d", chunk.StartDay, chunk.EndDay),
			}).Warnf("chunk generation failed, synthesizing fallback days: %v", err)
			days = append(days, s.fallbackDaysFor(trip, chunk)...)
			continue
		}
		result.TokensUsed += resp.TokensUsed

		chunkDays, err := s.parser.ProcessChunkedItineraryResponse(resp.Content, chunkTrip, chunk)
		if err != nil {
			s.log.WithField("chunk", chunk.ID).Warnf("chunk response unusable, synthesizing fallback days: %v", err)
			days = append(days, s.fallbackDaysFor(trip, chunk)...)
			continue
		}

		days = append(days, s.normalizeChunkDays(chunkDays, trip, chunk)...)
		genCtx.PreviousDays = lastDays(days, s.segCfg.OverlapDays)
	}

	result.Days, result.FallbackDays = s.fitToDuration(days, trip)
	return result, nil
}

// deriveChunkTrip narrows the trip spec to one chunk: the duration becomes
// the chunk span and the start date shifts to the chunk's first day.
func deriveChunkTrip(trip trip_models.TripSpec, chunk trip_models.Chunk, genCtx *trip_models.GenerationContext) trip_models.ChunkTrip {
	spec := trip
	spec.DurationDays = chunk.Span()
	spec.StartDate = utils.AnchorDate(trip.StartDate).AddDate(0, 0, chunk.StartDay-1)

	return trip_models.ChunkTrip{
		Spec: spec,
		Chunk: trip_models.ChunkInfo{
			ID:             chunk.ID,
			FocusTheme:     chunk.FocusTheme,
			DetailLevel:    chunk.DetailLevel,
			StartDay:       chunk.StartDay,
			EndDay:         chunk.EndDay,
			IsContinuation: len(genCtx.PreviousDays) > 0,
		},
	}
}

func (s *ItineraryService) temperatureFor(chunk trip_models.Chunk) float32 {
	if chunk.Priority == trip_models.PriorityHigh {
		return s.orchCfg.TempHighPriority
	}
	return s.orchCfg.TempDefault
}

func (s *ItineraryService) maxOutputTokens(level trip_models.DetailLevel) int {
	mult, ok := s.orchCfg.DetailMultiplier[level]
	if !ok {
		mult = 1.0
	}
	return int(math.Floor(float64(s.orchCfg.BaseOutputTokens) * mult))
}

// normalizeChunkDays forces a chunk's parsed days to exactly the chunk
// span: extra days are dropped, missing trailing days are synthesized, and
// dates are rewritten by position so the assembled trip stays aligned.
func (s *ItineraryService) normalizeChunkDays(days []trip_models.Day, trip trip_models.TripSpec, chunk trip_models.Chunk) []trip_models.Day {
	span := chunk.Span()
	if len(days) > span {
		days = days[:span]
	}
	for i := range days {
		days[i].Date = utils.DayDate(trip.StartDate, chunk.StartDay+i)
	}
	for day := chunk.StartDay + len(days); day <= chunk.EndDay; day++ {
		days = append(days, s.fallbackDay(trip, day))
	}
	return days
}

// fitToDuration trims or pads the assembled list to exactly the trip
// duration and counts the fallback days in the final result.
func (s *ItineraryService) fitToDuration(days []trip_models.Day, trip trip_models.TripSpec) ([]trip_models.Day, int) {
	if len(days) > trip.DurationDays {
		days = days[:trip.DurationDays]
	}
	for len(days) < trip.DurationDays {
		days = append(days, s.fallbackDay(trip, len(days)+1))
	}

	fallbacks := 0
	for _, d := range days {
		if d.IsFallback {
			fallbacks++
		}
	}
	return days, fallbacks
}

func (s *ItineraryService) fallbackDaysFor(trip trip_models.TripSpec, chunk trip_models.Chunk) []trip_models.Day {
	out := make([]trip_models.Day, 0, chunk.Span())
	for day := chunk.StartDay; day <= chunk.EndDay; day++ {
		out = append(out, s.fallbackDay(trip, day))
	}
	return out
}

// fallbackDay is the deterministic placeholder for a day whose generation
// failed: a single free-form leisure activity, clearly labeled, zero cost.
func (s *ItineraryService) fallbackDay(trip trip_models.TripSpec, day int) trip_models.Day {
	return trip_models.Day{
		Date:       utils.DayDate(trip.StartDate, day),
		IsFallback: true,
		Activities: []trip_models.Activity{{
			Time:  "10:00",
			Title: fmt.Sprintf("Flexible exploration in %s", trip.Destination),
			Description: fmt.Sprintf(
				"Open day to explore %s at your own pace. Wander the main neighborhoods, follow local recommendations and revisit anything you missed.",
				trip.Destination),
			Location:        fallbackLocation(trip.Destination),
			DurationMinutes: 240,
			Cost:            0,
			Category:        "leisure",
		}},
	}
}

// Rough city-center coordinates for common destinations, used only for
// fallback days. Jitter keeps consecutive fallback pins from stacking.
var fallbackCoords = []struct {
	keyword  string
	lat, lng float64
}{
	{"tokyo", 35.6762, 139.6503},
	{"kyoto", 35.0116, 135.7681},
	{"paris", 48.8566, 2.3522},
	{"london", 51.5074, -0.1278},
	{"new york", 40.7128, -74.0060},
	{"rome", 41.9028, 12.4964},
	{"barcelona", 41.3851, 2.1734},
	{"bangkok", 13.7563, 100.5018},
	{"hanoi", 21.0278, 105.8342},
	{"sydney", -33.8688, 151.2093},
}

func fallbackLocation(destination string) *trip_models.Location {
	lower := strings.ToLower(destination)
	for _, c := range fallbackCoords {
		if strings.Contains(lower, c.keyword) {
			return &trip_models.Location{
				Name: destination,
				Coordinates: &trip_models.Coordinates{
					Lat: c.lat + coordJitter(),
					Lng: c.lng + coordJitter(),
				},
			}
		}
	}
	return &trip_models.Location{Name: destination}
}

// coordJitter returns a value in [-0.01, 0.01].
func coordJitter() float64 {
	return (rand.Float64() - 0.5) * 0.02
}

func lastDays(days []trip_models.Day, n int) []trip_models.Day {
	if n <= 0 || len(days) == 0 {
		return nil
	}
	if len(days) <= n {
		return append([]trip_models.Day{}, days...)
	}
	return append([]trip_models.Day{}, days[len(days)-n:]...)
}
