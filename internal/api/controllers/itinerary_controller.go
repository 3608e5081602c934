package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"tripforge/internal/config"
	"tripforge/internal/models/db_models"
	"tripforge/internal/models/request_models"
	"tripforge/internal/models/response_models"
	"tripforge/internal/models/trip_models"
	"tripforge/internal/repositories"
	"tripforge/internal/services"
	mem "tripforge/pkg/memcache"
	"tripforge/pkg/utils"
)

type ItineraryController struct {
	service services.ItineraryServiceInterface
	repo    repositories.ItineraryRepositoryInterface
	cache   mem.ItineraryCacheInterface
	cfg     config.Config
	log     *logrus.Logger
}

func NewItineraryController(
	service services.ItineraryServiceInterface,
	repo repositories.ItineraryRepositoryInterface,
	cache mem.ItineraryCacheInterface,
	cfg config.Config,
	log *logrus.Logger,
) *ItineraryController {
	return &ItineraryController{
		service: service,
		repo:    repo,
		cache:   cache,
		cfg:     cfg,
		log:     log,
	}
}

func (ctl *ItineraryController) RegisterRoutes(rg *gin.RouterGroup) {
	itineraries := rg.Group("/itineraries")
	{
		itineraries.POST("", ctl.GenerateItinerary)
		itineraries.GET("", ctl.ListItineraries)
		itineraries.GET("/:id", ctl.GetItineraryByID)
	}
}

func (ctl *ItineraryController) GenerateItinerary(c *gin.Context) {
	var req request_models.GenerateItineraryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	trip := toTripSpec(req)

	// Identical specs within the TTL reuse the cached result instead of
	// burning another round of AI calls.
	cacheKey := utils.HashKey(trip)
	if cached, ok := ctl.cache.Get(cacheKey); ok {
		utils.RespondSuccess(c, toItineraryResponse("", trip, cached, true), "Itinerary generated")
		return
	}

	result, err := ctl.service.GenerateItinerary(c.Request.Context(), trip)
	if err != nil {
		utils.HandleServiceError(c, ctl.log, err)
		return
	}

	ctl.cache.Set(cacheKey, result, ctl.cfg.CacheTTL)

	id := ctl.persist(c, trip, result)
	utils.RespondSuccess(c, toItineraryResponse(id, trip, result, false), "Itinerary generated")
}

func (ctl *ItineraryController) GetItineraryByID(c *gin.Context) {
	id := c.Param("id")

	record, err := ctl.repo.GetItineraryByID(c.Request.Context(), id)
	if err != nil {
		ctl.log.Errorf("loading itinerary %s: %v", id, err)
		utils.HandleServiceError(c, ctl.log, utils.ErrDatabaseError)
		return
	}
	if record == nil {
		utils.HandleServiceError(c, ctl.log, utils.ErrItineraryNotFound)
		return
	}

	var days []trip_models.Day
	if err := json.Unmarshal([]byte(record.DaysJSON), &days); err != nil {
		ctl.log.Errorf("decoding stored days for %s: %v", id, err)
		utils.HandleServiceError(c, ctl.log, utils.ErrDatabaseError)
		return
	}

	utils.RespondSuccess(c, response_models.ItineraryResponse{
		ID:              record.ID.String(),
		Destination:     record.Destination,
		DurationDays:    record.DurationDays,
		Days:            days,
		ChunkCount:      record.ChunkCount,
		FallbackDays:    record.FallbackDays,
		EstimatedTokens: record.EstimatedTokens,
		TokensUsed:      record.TokensUsed,
	}, "")
}

func (ctl *ItineraryController) ListItineraries(c *gin.Context) {
	destination := strings.TrimSpace(c.Query("destination"))
	if destination == "" {
		utils.RespondError(c, http.StatusBadRequest, "destination query parameter is required")
		return
	}

	page, pageSize, err := paginationParams(c)
	if err != nil {
		utils.HandleServiceError(c, ctl.log, err)
		return
	}

	records, err := ctl.repo.ListItinerariesByDestination(c.Request.Context(), destination, page, pageSize)
	if err != nil {
		ctl.log.Errorf("listing itineraries for %s: %v", destination, err)
		utils.HandleServiceError(c, ctl.log, utils.ErrDatabaseError)
		return
	}

	summaries := make([]response_models.ItinerarySummaryResponse, 0, len(records))
	for _, r := range records {
		summaries = append(summaries, response_models.ItinerarySummaryResponse{
			ID:           r.ID.String(),
			Destination:  r.Destination,
			DurationDays: r.DurationDays,
			ChunkCount:   r.ChunkCount,
			FallbackDays: r.FallbackDays,
			CreatedAt:    r.CreatedAt,
		})
	}

	utils.RespondSuccess(c, response_models.ItineraryListResponse{
		Itineraries: summaries,
		Count:       len(summaries),
	}, "")
}

func paginationParams(c *gin.Context) (int, int, error) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		return 0, 0, utils.ErrInvalidPage
	}
	pageSize, err := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if err != nil || pageSize < 1 || pageSize > 100 {
		return 0, 0, utils.ErrInvalidPageSize
	}
	return page, pageSize, nil
}

// persist stores the generated itinerary; storage failure is logged but
// never fails the request, since the caller already has the result.
func (ctl *ItineraryController) persist(c *gin.Context, trip trip_models.TripSpec, result *trip_models.ItineraryResult) string {
	daysJSON, err := json.Marshal(result.Days)
	if err != nil {
		ctl.log.Errorf("encoding days for storage: %v", err)
		return ""
	}

	record := &db_models.Itinerary{
		Destination:     trip.Destination,
		Country:         trip.Country,
		DurationDays:    trip.DurationDays,
		StartDate:       utils.AnchorDate(trip.StartDate).Unix(),
		Budget:          trip.Budget,
		Pace:            string(trip.Preferences.Pace),
		ChunkCount:      result.ChunkCount,
		FallbackDays:    result.FallbackDays,
		EstimatedTokens: result.EstimatedTokens,
		TokensUsed:      result.TokensUsed,
		DaysJSON:        string(daysJSON),
	}
	if err := ctl.repo.CreateItinerary(c.Request.Context(), record); err != nil {
		ctl.log.Errorf("saving itinerary: %v", err)
		return ""
	}
	return record.ID.String()
}

func toTripSpec(req request_models.GenerateItineraryRequest) trip_models.TripSpec {
	return trip_models.TripSpec{
		Destination:  strings.TrimSpace(req.Destination),
		Country:      strings.TrimSpace(req.Country),
		StartDate:    utils.ParseDate(req.StartDate),
		DurationDays: req.DurationDays,
		Budget:       req.Budget,
		Preferences: trip_models.Preferences{
			Interests:   req.Preferences.Interests,
			Constraints: req.Preferences.Constraints,
			Pace:        trip_models.Pace(req.Preferences.Pace),
			Nightlife:   trip_models.NightlifeLevel(req.Preferences.Nightlife),
		},
	}
}

func toItineraryResponse(id string, trip trip_models.TripSpec, result *trip_models.ItineraryResult, cached bool) response_models.ItineraryResponse {
	return response_models.ItineraryResponse{
		ID:              id,
		Destination:     trip.Destination,
		DurationDays:    trip.DurationDays,
		Days:            result.Days,
		ChunkCount:      result.ChunkCount,
		FallbackDays:    result.FallbackDays,
		EstimatedTokens: result.EstimatedTokens,
		TokensUsed:      result.TokensUsed,
		Cached:          cached,
	}
}
