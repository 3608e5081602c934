package services

import (
	"encoding/json"
	"fmt"
	"strings"

	"tripforge/internal/models/trip_models"
	"tripforge/pkg/utils"
)

// PromptBuilderInterface and ResponseParserInterface are the collaborator
// seams of the generation loop. The defaults below can be swapped out by
// callers that want their own prompt templates or parsing.
type PromptBuilderInterface interface {
	BuildChunkedItineraryPrompt(chunkTrip trip_models.ChunkTrip, chunk trip_models.Chunk, genCtx *trip_models.GenerationContext) string
	BuildStandardItineraryPrompt(trip trip_models.TripSpec) string
}

type ResponseParserInterface interface {
	ProcessChunkedItineraryResponse(raw string, chunkTrip trip_models.ChunkTrip, chunk trip_models.Chunk) ([]trip_models.Day, error)
	ProcessStandardItineraryResponse(raw string, trip trip_models.TripSpec) ([]trip_models.Day, error)
}

type PromptService struct{}

func NewPromptService() *PromptService {
	return &PromptService{}
}

var _ PromptBuilderInterface = (*PromptService)(nil)
var _ ResponseParserInterface = (*PromptService)(nil)

// Wire format shared between the prompt schema and the parser.
type wireLocation struct {
	Name    string  `json:"name"`
	Address string  `json:"address"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
}

type wireActivity struct {
	Time            string        `json:"time"`
	Title           string        `json:"title"`
	Description     string        `json:"description"`
	Location        *wireLocation `json:"location"`
	DurationMinutes int           `json:"duration_minutes"`
	Cost            float64       `json:"cost"`
	Category        string        `json:"category"`
}

type wireDay struct {
	Date       string         `json:"date"`
	Activities []wireActivity `json:"activities"`
}

type wirePlan struct {
	Days []wireDay `json:"days"`
}

const planSchema = `{
  "days": [
    {
      "date": "2026-01-01",
      "activities": [
        {
          "time": "09:00",
          "title": "Visit [place name]",
          "description": "What to do and why it fits the trip",
          "location": {"name": "Place Name", "address": "street address", "lat": 0.0, "lng": 0.0},
          "duration_minutes": 90,
          "cost": 12.5,
          "category": "cultural"
        }
      ]
    }
  ]
}`

var detailInstructions = map[trip_models.DetailLevel]string{
	trip_models.DetailComprehensive: "Plan 4-6 activities per day with rich descriptions, concrete place names and practical tips.",
	trip_models.DetailBalanced:      "Plan 3-4 activities per day with concise descriptions and concrete place names.",
	trip_models.DetailSimplified:    "Plan 2-3 light activities per day. Keep descriptions short.",
}

func (p *PromptService) BuildChunkedItineraryPrompt(chunkTrip trip_models.ChunkTrip, chunk trip_models.Chunk, genCtx *trip_models.GenerationContext) string {
	spec := chunkTrip.Spec
	info := chunkTrip.Chunk

	var b strings.Builder
	fmt.Fprintf(&b, "You are planning days %d to %d of a trip to %s.\n",
		info.StartDay, info.EndDay, spec.Destination)
	fmt.Fprintf(&b, "Generate exactly %d day(s), starting on %s.\n\n",
		spec.DurationDays, utils.DayDate(spec.StartDate, 1))

	fmt.Fprintf(&b, "Focus for these days: %s.\n", strings.ReplaceAll(chunk.FocusTheme, "_", " "))
	b.WriteString(detailInstructions[chunk.DetailLevel])
	b.WriteString("\n")

	if spec.Budget != "" {
		fmt.Fprintf(&b, "Budget: %s.\n", spec.Budget)
	}
	if len(spec.Preferences.Interests) > 0 {
		fmt.Fprintf(&b, "Traveller interests: %s.\n", strings.Join(spec.Preferences.Interests, ", "))
	}
	if len(spec.Preferences.Constraints) > 0 {
		fmt.Fprintf(&b, "Constraints: %s.\n", strings.Join(spec.Preferences.Constraints, ", "))
	}
	if spec.Preferences.Pace != "" {
		fmt.Fprintf(&b, "Pace: %s.\n", spec.Preferences.Pace)
	}

	if info.IsContinuation && genCtx != nil && len(genCtx.PreviousDays) > 0 {
		b.WriteString("\nThis continues an itinerary already in progress. Most recent days:\n")
		for _, day := range genCtx.PreviousDays {
			var titles []string
			for _, act := range day.Activities {
				titles = append(titles, act.Title)
			}
			fmt.Fprintf(&b, "- %s: %s\n", day.Date, strings.Join(titles, "; "))
		}
		b.WriteString("Do not repeat these places. Keep the narrative consistent with them.\n")
	}

	fmt.Fprintf(&b, "\nReturn ONLY valid JSON matching this exact schema, with %d entries in \"days\":\n%s\n",
		spec.DurationDays, planSchema)
	b.WriteString("No markdown, no commentary, JSON only.")

	return b.String()
}

func (p *PromptService) BuildStandardItineraryPrompt(trip trip_models.TripSpec) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Create a complete %d-day itinerary for a trip to %s, starting on %s.\n",
		trip.DurationDays, trip.Destination, utils.DayDate(trip.StartDate, 1))
	b.WriteString(detailInstructions[trip_models.DetailComprehensive])
	b.WriteString("\n")

	if trip.Budget != "" {
		fmt.Fprintf(&b, "Budget: %s.\n", trip.Budget)
	}
	if len(trip.Preferences.Interests) > 0 {
		fmt.Fprintf(&b, "Traveller interests: %s.\n", strings.Join(trip.Preferences.Interests, ", "))
	}
	if len(trip.Preferences.Constraints) > 0 {
		fmt.Fprintf(&b, "Constraints: %s.\n", strings.Join(trip.Preferences.Constraints, ", "))
	}

	fmt.Fprintf(&b, "\nReturn ONLY valid JSON matching this exact schema, with %d entries in \"days\":\n%s\n",
		trip.DurationDays, planSchema)
	b.WriteString("No markdown, no commentary, JSON only.")

	return b.String()
}

func (p *PromptService) ProcessChunkedItineraryResponse(raw string, chunkTrip trip_models.ChunkTrip, chunk trip_models.Chunk) ([]trip_models.Day, error) {
	return parsePlan(raw, chunkTrip.Spec)
}

func (p *PromptService) ProcessStandardItineraryResponse(raw string, trip trip_models.TripSpec) ([]trip_models.Day, error) {
	return parsePlan(raw, trip)
}

// parsePlan recovers JSON from the raw model output and converts it to
// domain days. Dates missing from the response are filled from the trip's
// start date by position.
func parsePlan(raw string, spec trip_models.TripSpec) ([]trip_models.Day, error) {
	cleaned, err := utils.RecoverJSON(raw)
	if err != nil {
		return nil, err
	}

	var plan wirePlan
	if err := json.Unmarshal([]byte(cleaned), &plan); err != nil {
		return nil, &utils.MalformedResponseError{Reason: "plan JSON does not match schema", Raw: raw, Err: err}
	}
	if len(plan.Days) == 0 {
		return nil, &utils.MalformedResponseError{Reason: "plan JSON contains no days", Raw: raw}
	}

	days := make([]trip_models.Day, 0, len(plan.Days))
	for i, wd := range plan.Days {
		day := trip_models.Day{Date: wd.Date}
		if day.Date == "" {
			day.Date = utils.DayDate(spec.StartDate, i+1)
		}
		for _, wa := range wd.Activities {
			act := trip_models.Activity{
				Time:            wa.Time,
				Title:           wa.Title,
				Description:     wa.Description,
				DurationMinutes: wa.DurationMinutes,
				Cost:            wa.Cost,
				Category:        wa.Category,
			}
			if wa.Location != nil && wa.Location.Name != "" {
				loc := &trip_models.Location{Name: wa.Location.Name, Address: wa.Location.Address}
				if wa.Location.Lat != 0 || wa.Location.Lng != 0 {
					loc.Coordinates = &trip_models.Coordinates{Lat: wa.Location.Lat, Lng: wa.Location.Lng}
				}
				act.Location = loc
			}
			day.Activities = append(day.Activities, act)
		}
		days = append(days, day)
	}

	return days, nil
}
