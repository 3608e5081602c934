package gateway_fx

import (
	"context"

	"github.com/sirupsen/logrus"
	"go.uber.org/fx"

	"tripforge/internal/config"
	"tripforge/pkg/utils"
)

var Module = fx.Provide(
	provideAIClient)

func provideAIClient(lc fx.Lifecycle, cfg config.Config, log *logrus.Logger) (utils.AIClientInterface, error) {
	client, err := utils.NewAIClient(context.Background(), cfg.Gateway, log)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})
	return client, nil
}
