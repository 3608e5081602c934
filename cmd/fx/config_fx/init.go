package config_fx

import (
	"github.com/sirupsen/logrus"
	"go.uber.org/fx"

	"tripforge/internal/config"
)

var Module = fx.Provide(
	provideConfig, provideLogger)

func provideConfig() config.Config {
	return config.Load()
}

func provideLogger() *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return log
}
