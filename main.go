package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/salomonMuriel/schedule-creator/internal/planner"
	"github.com/salomonMuriel/schedule-creator/internal/server"
	"github.com/salomonMuriel/schedule-creator/internal/storage"
	"github.com/salomonMuriel/schedule-creator/internal/telemetry"
	staticfiles "github.com/salomonMuriel/schedule-creator/static"
)

const PORT = "8080"

func main() {
	mux := http.NewServeMux()

	rr := &server.RouteRegistry{}
	server.RegisterAdminUI(mux, rr, PORT)
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticfiles.EmbeddedFS()))))
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/static/index.html", http.StatusFound)
	})

	app, err := buildApp()
	if err != nil {
		log.Fatal(err)
	}

	server.RegisterAPIRoutes(mux, rr, app)

	addr := ":" + PORT
	fmt.Printf("schedule-creator listening on %s\n", addr)
	log.Fatal(http.ListenAndServe(addr, mux))
}

func buildApp() (*server.App, error) {
	mirror, err := storage.NewFileMirror("data")
	if err != nil {
		return nil, err
	}

	events := telemetry.NewMemoryRepository()

	svc, err := planner.NewService(planner.Options{
		Mirror: mirror,
		Events: events,
		Logger: log.Default(),
	})
	if err != nil {
		return nil, err
	}

	return &server.App{
		Planner: svc,
		Events:  events,
		BootNow: time.Now(),
	}, nil
}
