package main

import (
	"flag"
	"log"
	"net/http"

	"github.com/gushi-cookie/chan-parser/internal/router"
	"github.com/gushi-cookie/chan-parser/internal/setup"
	"github.com/gushi-cookie/chan-parser/shared/config"
	"github.com/gushi-cookie/chan-parser/shared/logger"
)

func main() {
	var configFolder string
	flag.StringVar(&configFolder, "config_folder", "config", "path to folder with configs")
	flag.Parse()

	cfg := config.MustLoad(configFolder)
	logger.Initialize(cfg.Public.LogLevel, cfg.Public.LogJSON)

	deps, err := setup.SetupDependencies(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer deps.Storage.Cleanup()

	r := router.New(deps)

	logger.Log.Info("server started", "address", cfg.Public.Address)
	log.Fatal(http.ListenAndServe(cfg.Public.Address, r))
}
