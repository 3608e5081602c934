package itinerary_fx

import (
	"github.com/sirupsen/logrus"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"tripforge/internal/api/controllers"
	"tripforge/internal/config"
	"tripforge/internal/repositories"
	"tripforge/internal/services"
	mem "tripforge/pkg/memcache"
	"tripforge/pkg/utils"
)

var Module = fx.Provide(
	providePromptService,
	provideItineraryRepo,
	provideItineraryService,
	provideItineraryController)

// PromptService implements both the builder and the parser side; fx gets
// one instance exposed under each interface.
func providePromptService() (services.PromptBuilderInterface, services.ResponseParserInterface) {
	ps := services.NewPromptService()
	return ps, ps
}

func provideItineraryRepo(db *gorm.DB) repositories.ItineraryRepositoryInterface {
	return repositories.NewItineraryRepository(db)
}

func provideItineraryService(
	ai utils.AIClientInterface,
	prompts services.PromptBuilderInterface,
	parser services.ResponseParserInterface,
	cfg config.Config,
	log *logrus.Logger,
) services.ItineraryServiceInterface {
	return services.NewItineraryService(ai, prompts, parser, cfg.Segmenter, cfg.Orchestrator, log)
}

func provideItineraryController(
	service services.ItineraryServiceInterface,
	repo repositories.ItineraryRepositoryInterface,
	cache mem.ItineraryCacheInterface,
	cfg config.Config,
	log *logrus.Logger,
) *controllers.ItineraryController {
	return controllers.NewItineraryController(service, repo, cache, cfg, log)
}
