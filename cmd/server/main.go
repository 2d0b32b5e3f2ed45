package main

import (
	"log"
	"net/http"

	"github.com/joho/godotenv"

	"github.com/salomonMuriel/schedule-creator/internal/config"
	"github.com/salomonMuriel/schedule-creator/internal/serverapp"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadOrDefault("schedule_config.yml")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	config.FromEnv(cfg)
	if serverapp.UseDiskStaticByEnv() {
		cfg.Server.UseDiskStatic = true
	}

	handler, err := serverapp.NewHandler(serverapp.Options{
		Config: cfg,
		Logger: log.Default(),
	})
	if err != nil {
		log.Fatalf("build server: %v", err)
	}

	addr := ":" + cfg.Server.Port
	log.Printf("listening on http://localhost%s", addr)
	log.Fatal(http.ListenAndServe(addr, handler))
}
