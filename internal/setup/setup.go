package setup

import (
	"github.com/gushi-cookie/chan-parser/internal/handler"
	"github.com/gushi-cookie/chan-parser/internal/service"
	"github.com/gushi-cookie/chan-parser/internal/storage/sqlite"
	"github.com/gushi-cookie/chan-parser/shared/config"
)

// Dependencies struct to hold all initialized dependencies.
type Dependencies struct {
	Storage *sqlite.Storage
	Handler *handler.Handler
	Config  *config.Config
}

// SetupDependencies initializes all dependencies required for the application.
func SetupDependencies(cfg *config.Config) (*Dependencies, error) {
	storage, err := sqlite.New(cfg.Public.SqlitePath)
	if err != nil {
		return nil, err
	}

	catalog := service.NewCatalog(storage, cfg.Public.CatalogBatchReads)
	thread := service.NewThread(storage)

	h := handler.New(catalog, thread, storage, cfg)

	return &Dependencies{
		Storage: storage,
		Handler: h,
		Config:  cfg,
	}, nil
}
