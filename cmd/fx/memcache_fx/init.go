package memcache_fx

import (
	"go.uber.org/fx"

	mem "tripforge/pkg/memcache"
)

var Module = fx.Provide(provideItineraryCache)

func provideItineraryCache() mem.ItineraryCacheInterface {
	return mem.NewItineraryCache()
}
