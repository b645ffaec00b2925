//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/yanqian/outfit-advisor/internal/bootstrap"
	"github.com/yanqian/outfit-advisor/internal/domain/outfit"
	"github.com/yanqian/outfit-advisor/internal/infra/config"
	httpiface "github.com/yanqian/outfit-advisor/internal/interface/http"
	"github.com/yanqian/outfit-advisor/pkg/logger"
)

var outfitSet = wire.NewSet(
	provideOutfitConfig,
	provideGenerator,
	provideOutcomeRecorder,
	outfit.NewService,
)

func initializeApp(cfg *config.Config) (*bootstrap.App, func(), error) {
	wire.Build(
		logger.New,
		outfitSet,
		provideRateLimiter,
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil, nil
}

func initializeRecommender(cfg *config.Config) (outfit.Service, func(), error) {
	wire.Build(
		provideCLILogger,
		outfitSet,
	)
	return nil, nil, nil
}
