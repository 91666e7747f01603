//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"
	"psgdle/internal"
	"psgdle/internal/controllers"
	"psgdle/internal/dataset"
	"psgdle/internal/providers"
	"psgdle/internal/services"
	"psgdle/internal/storage"
	"psgdle/internal/structures"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewCacheProvider,
		providers.NewMetricsProvider,

		dataset.NewDatasetProvider,
		storage.NewZstdCompressor,
		storage.NewFileStore,
		storage.NewScheduler,
		services.NewGameService,
		controllers.NewApiController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,

		wire.Bind(new(services.DataSource), new(*dataset.Dataset)),
		wire.Bind(new(providers.EntryCounter), new(storage.StoreInterface)),
		wire.Bind(new(storage.MetricsObserver), new(providers.MetricsProviderInterface)),
	)

	return nil, nil
}
