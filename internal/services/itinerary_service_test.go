package services

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripforge/internal/config"
	"tripforge/internal/models/trip_models"
	"tripforge/pkg/utils"
)

// fakeAIClient scripts the gateway so the generation loop can be driven
// without any provider.
type fakeAIClient struct {
	generate func(call int, req utils.AIRequest) (*utils.AIResponse, error)
	calls    int
}

func (f *fakeAIClient) Generate(ctx context.Context, req utils.AIRequest) (*utils.AIResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.calls++
	return f.generate(f.calls, req)
}

func (f *fakeAIClient) Close() error { return nil }

var requestedDaysPattern = regexp.MustCompile(`(?:Generate exactly|Create a complete) (\d+)`)

// planJSONFor answers a prompt with a valid plan holding exactly the
// number of days the prompt asked for.
func planJSONFor(prompt string) string {
	days := 1
	if m := requestedDaysPattern.FindStringSubmatch(prompt); m != nil {
		days, _ = strconv.Atoi(m[1])
	}

	var entries []string
	for i := 1; i <= days; i++ {
		entries = append(entries, fmt.Sprintf(`{
			"date": "",
			"activities": [{
				"time": "09:00",
				"title": "Visit the Meiji Shrine",
				"description": "Morning walk through the shrine grounds.",
				"location": {"name": "Meiji Shrine", "address": "", "lat": 35.6764, "lng": 139.6993},
				"duration_minutes": 120,
				"cost": 0,
				"category": "cultural"
			}]
		}`))
	}
	return fmt.Sprintf(`{"days": [%s]}`, strings.Join(entries, ","))
}

func newTestItineraryService(ai utils.AIClientInterface) ItineraryServiceInterface {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	orch := config.OrchestratorConfig{
		InterChunkDelay:  0, // no pacing in tests
		BaseOutputTokens: 2000,
		DetailMultiplier: map[trip_models.DetailLevel]float64{
			trip_models.DetailComprehensive: 1.5,
			trip_models.DetailBalanced:      1.0,
			trip_models.DetailSimplified:    0.7,
		},
		TempHighPriority: 0.7,
		TempDefault:      0.8,
	}

	ps := NewPromptService()
	return NewItineraryService(ai, ps, ps, config.DefaultSegmenterConfig(), orch, log)
}

func longTrip() trip_models.TripSpec {
	return trip_models.TripSpec{
		Destination:  "Tokyo, Japan",
		DurationDays: 10,
	}
}

func TestGenerateItineraryChunkedSuccess(t *testing.T) {
	ai := &fakeAIClient{
		generate: func(call int, req utils.AIRequest) (*utils.AIResponse, error) {
			return &utils.AIResponse{Content: planJSONFor(req.Prompt), TokensUsed: 500}, nil
		},
	}
	svc := newTestItineraryService(ai)

	result, err := svc.GenerateItinerary(context.Background(), longTrip())
	require.NoError(t, err)

	assert.Len(t, result.Days, 10)
	assert.Zero(t, result.FallbackDays)
	assert.Equal(t, 5, result.ChunkCount)
	assert.Equal(t, 5, ai.calls)
	assert.Equal(t, 2500, result.TokensUsed)

	for i, day := range result.Days {
		assert.False(t, day.IsFallback, "day %d", i+1)
		assert.NotEmpty(t, day.Date, "day %d", i+1)
		assert.NotEmpty(t, day.Activities, "day %d", i+1)
	}
}

func TestGenerateItineraryAllChunksFail(t *testing.T) {
	ai := &fakeAIClient{
		generate: func(call int, req utils.AIRequest) (*utils.AIResponse, error) {
			return nil, &utils.TransientError{Op: "generate", Err: fmt.Errorf("rate limited")}
		},
	}
	svc := newTestItineraryService(ai)

	result, err := svc.GenerateItinerary(context.Background(), longTrip())
	require.NoError(t, err)

	assert.Len(t, result.Days, 10)
	assert.Equal(t, 10, result.FallbackDays)
	for _, day := range result.Days {
		assert.True(t, day.IsFallback)
		require.Len(t, day.Activities, 1)
		assert.Equal(t, "leisure", day.Activities[0].Category)
		assert.Zero(t, day.Activities[0].Cost)
	}
}

func TestGenerateItineraryOneChunkFails(t *testing.T) {
	ai := &fakeAIClient{
		generate: func(call int, req utils.AIRequest) (*utils.AIResponse, error) {
			if call == 2 {
				return nil, &utils.TransientError{Op: "generate", Err: fmt.Errorf("timeout")}
			}
			return &utils.AIResponse{Content: planJSONFor(req.Prompt), TokensUsed: 500}, nil
		},
	}
	svc := newTestItineraryService(ai)

	result, err := svc.GenerateItinerary(context.Background(), longTrip())
	require.NoError(t, err)

	// Second chunk covers days 3-5; exactly those become fallback days and
	// the later chunks still generate normally.
	assert.Len(t, result.Days, 10)
	assert.Equal(t, 3, result.FallbackDays)
	for i, day := range result.Days {
		dayNum := i + 1
		if dayNum >= 3 && dayNum <= 5 {
			assert.True(t, day.IsFallback, "day %d", dayNum)
		} else {
			assert.False(t, day.IsFallback, "day %d", dayNum)
		}
	}
}

func TestGenerateItineraryMalformedChunkResponse(t *testing.T) {
	ai := &fakeAIClient{
		generate: func(call int, req utils.AIRequest) (*utils.AIResponse, error) {
			if call == 3 {
				return &utils.AIResponse{Content: `{"days": []}`}, nil
			}
			return &utils.AIResponse{Content: planJSONFor(req.Prompt), TokensUsed: 500}, nil
		},
	}
	svc := newTestItineraryService(ai)

	result, err := svc.GenerateItinerary(context.Background(), longTrip())
	require.NoError(t, err)

	assert.Len(t, result.Days, 10)
	assert.Equal(t, 3, result.FallbackDays)
}

func TestGenerateItineraryCredentialErrorAborts(t *testing.T) {
	ai := &fakeAIClient{
		generate: func(call int, req utils.AIRequest) (*utils.AIResponse, error) {
			return nil, utils.ErrMissingAPIKey
		},
	}
	svc := newTestItineraryService(ai)

	result, err := svc.GenerateItinerary(context.Background(), longTrip())
	require.Error(t, err)
	assert.ErrorIs(t, err, utils.ErrMissingAPIKey)
	assert.Nil(t, result)
	assert.Equal(t, 1, ai.calls)
}

func TestGenerateItineraryStandardPath(t *testing.T) {
	ai := &fakeAIClient{
		generate: func(call int, req utils.AIRequest) (*utils.AIResponse, error) {
			assert.Equal(t, utils.TierStandard, req.Tier)
			return &utils.AIResponse{Content: planJSONFor(req.Prompt), TokensUsed: 900}, nil
		},
	}
	svc := newTestItineraryService(ai)

	trip := trip_models.TripSpec{Destination: "Kyoto, Japan", DurationDays: 3}
	result, err := svc.GenerateItinerary(context.Background(), trip)
	require.NoError(t, err)

	assert.Len(t, result.Days, 3)
	assert.Equal(t, 1, result.ChunkCount)
	assert.Equal(t, 1, ai.calls)
	assert.Zero(t, result.FallbackDays)
}

func TestGenerateItineraryStandardFailureFallsBack(t *testing.T) {
	ai := &fakeAIClient{
		generate: func(call int, req utils.AIRequest) (*utils.AIResponse, error) {
			return nil, &utils.TransientError{Op: "generate", Err: fmt.Errorf("unavailable")}
		},
	}
	svc := newTestItineraryService(ai)

	trip := trip_models.TripSpec{Destination: "Kyoto, Japan", DurationDays: 3}
	result, err := svc.GenerateItinerary(context.Background(), trip)
	require.NoError(t, err)

	assert.Len(t, result.Days, 3)
	assert.Equal(t, 3, result.FallbackDays)
}

func TestGenerateItineraryContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	ai := &fakeAIClient{
		generate: func(call int, req utils.AIRequest) (*utils.AIResponse, error) {
			if call == 1 {
				// Cancel after the first chunk completes.
				defer cancel()
				return &utils.AIResponse{Content: planJSONFor(req.Prompt), TokensUsed: 500}, nil
			}
			return nil, ctx.Err()
		},
	}
	svc := newTestItineraryService(ai)

	result, err := svc.GenerateItinerary(ctx, longTrip())
	require.NoError(t, err)

	// The caller still gets a full-length itinerary; everything after the
	// cancellation point is synthesized.
	assert.Len(t, result.Days, 10)
	assert.Equal(t, 1, ai.calls)
	assert.False(t, result.Days[0].IsFallback)
	assert.Equal(t, 8, result.FallbackDays)
}

func TestGenerateItineraryInvalidInput(t *testing.T) {
	svc := newTestItineraryService(&fakeAIClient{
		generate: func(call int, req utils.AIRequest) (*utils.AIResponse, error) {
			t.Fatal("AI must not be called for invalid input")
			return nil, nil
		},
	})

	_, err := svc.GenerateItinerary(context.Background(), trip_models.TripSpec{DurationDays: 0, Destination: "Tokyo"})
	assert.ErrorIs(t, err, utils.ErrInvalidInput)

	_, err = svc.GenerateItinerary(context.Background(), trip_models.TripSpec{DurationDays: 5, Destination: "  "})
	assert.ErrorIs(t, err, utils.ErrInvalidInput)
}

func TestGenerateItineraryDatesAreSequential(t *testing.T) {
	ai := &fakeAIClient{
		generate: func(call int, req utils.AIRequest) (*utils.AIResponse, error) {
			return &utils.AIResponse{Content: planJSONFor(req.Prompt), TokensUsed: 100}, nil
		},
	}
	svc := newTestItineraryService(ai)

	trip := longTrip()
	trip.StartDate = utils.ParseDate("2026-09-01")

	result, err := svc.GenerateItinerary(context.Background(), trip)
	require.NoError(t, err)
	require.Len(t, result.Days, 10)

	for i, day := range result.Days {
		assert.Equal(t, utils.DayDate(trip.StartDate, i+1), day.Date, "day %d", i+1)
	}
}
