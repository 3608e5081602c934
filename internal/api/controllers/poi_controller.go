package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"tripforge/internal/models/request_models"
	"tripforge/internal/models/response_models"
	"tripforge/internal/models/trip_models"
	"tripforge/internal/services"
	"tripforge/pkg/utils"
)

type POIController struct {
	extractor services.POIExtractorInterface
	log       *logrus.Logger
}

func NewPOIController(extractor services.POIExtractorInterface, log *logrus.Logger) *POIController {
	return &POIController{extractor: extractor, log: log}
}

func (ctl *POIController) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/itineraries/pois", ctl.ExtractPOIs)
}

func (ctl *POIController) ExtractPOIs(c *gin.Context) {
	var req request_models.ExtractPOIsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(req.Days) == 0 && len(req.Activities) == 0 {
		utils.RespondError(c, http.StatusBadRequest, "Provide days or activities to extract from")
		return
	}

	tripCtx := trip_models.TripContext{
		Destination: strings.TrimSpace(req.Destination),
		City:        strings.TrimSpace(req.City),
		Country:     strings.TrimSpace(req.Country),
	}

	var pois []trip_models.POI
	if len(req.Days) > 0 {
		pois = ctl.extractor.ExtractPOIsFromDays(req.Days, tripCtx)
	} else {
		pois = ctl.extractor.ExtractPOIsFromItinerary(req.Activities, tripCtx)
	}

	utils.RespondSuccess(c, response_models.POIListResponse{
		POIs:  pois,
		Count: len(pois),
	}, "")
}
