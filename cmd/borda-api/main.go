package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"

	"github.com/borda-dev/borda/internal/config"
	"github.com/borda-dev/borda/internal/logger"
	"github.com/borda-dev/borda/internal/router"
	"github.com/borda-dev/borda/internal/setup"
)

func main() {
	log.SetFlags(log.Lshortfile)

	var configFolder string
	flag.StringVar(&configFolder, "config_folder", "config", "path to folder with configs")
	flag.Parse()

	cfg := config.MustLoad(configFolder)
	logger.Initialize(cfg.Public.LogLevel, cfg.Public.LogJSON)

	deps, err := setup.SetupDependencies(context.Background(), cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer deps.Storage.Cleanup()

	r := router.New(deps)

	httpPort := os.Getenv("PORT")
	if httpPort == "" {
		httpPort = cfg.Public.Port
	}

	logger.Log.Info("server is running", "port", httpPort)
	log.Fatal(http.ListenAndServe(":"+httpPort, r))
}
