package poi_fx

import (
	"github.com/sirupsen/logrus"
	"go.uber.org/fx"

	"tripforge/internal/api/controllers"
	"tripforge/internal/services"
)

var Module = fx.Provide(
	providePOIExtractor, providePOIController)

func providePOIExtractor(log *logrus.Logger) services.POIExtractorInterface {
	return services.NewPOIExtractorService(log)
}

func providePOIController(extractor services.POIExtractorInterface, log *logrus.Logger) *controllers.POIController {
	return controllers.NewPOIController(extractor, log)
}
