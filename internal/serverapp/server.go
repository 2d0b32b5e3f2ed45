// Package serverapp wires the planner service, storage, telemetry, and the
// HTTP surface into one handler. It is the composition root shared by the
// server binary and the integration tests.
package serverapp

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/salomonMuriel/schedule-creator/internal/config"
	"github.com/salomonMuriel/schedule-creator/internal/httpmw"
	"github.com/salomonMuriel/schedule-creator/internal/planner"
	"github.com/salomonMuriel/schedule-creator/internal/server"
	"github.com/salomonMuriel/schedule-creator/internal/storage"
	"github.com/salomonMuriel/schedule-creator/internal/telemetry"
	staticfiles "github.com/salomonMuriel/schedule-creator/static"
)

type Options struct {
	Config *config.Config
	Logger *log.Logger
}

func NewHandler(opts Options) (http.Handler, error) {
	if opts.Config == nil {
		opts.Config = config.Default()
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	cfg := opts.Config

	mirror, err := storage.NewFileMirror(cfg.Data.Dir)
	if err != nil {
		return nil, err
	}

	var seed []byte
	if cfg.Schedule.SeedPath != "" {
		seed, err = os.ReadFile(cfg.Schedule.SeedPath)
		if err != nil {
			return nil, err
		}
	}

	events := telemetry.NewMemoryRepository()
	svc, err := planner.NewService(planner.Options{
		Mirror:       mirror,
		Events:       events,
		Logger:       opts.Logger,
		HistoryLimit: cfg.Schedule.HistoryLimit,
		Seed:         seed,
	})
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()

	staticHandler := http.FileServer(http.FS(staticfiles.EmbeddedFS()))
	if cfg.Server.UseDiskStatic {
		staticHandler = http.FileServer(http.Dir(cfg.Server.StaticDir))
	}
	mux.Handle("/static/", http.StripPrefix("/static/", staticHandler))

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		http.Redirect(w, r, "/static/index.html", http.StatusFound)
	})

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"ok":      true,
			"service": "schedule-creator",
			"time":    time.Now().UTC().Format(time.RFC3339),
		})
	})

	mux.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		if _, _, err := mirror.Load(); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]any{
				"ok":    false,
				"error": "schedule storage unavailable",
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"ok":      true,
			"service": "schedule-creator",
			"time":    time.Now().UTC().Format(time.RFC3339),
		})
	})

	rr := &server.RouteRegistry{}
	server.RegisterAPIRoutes(mux, rr, &server.App{
		Planner: svc,
		Events:  events,
		BootNow: time.Now(),
	})
	server.RegisterAdminUI(mux, rr, cfg.Server.Port)

	mux.HandleFunc("GET /api/config", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(cfg); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	})

	return httpmw.Chain(
		mux,
		httpmw.WithAccessLog(opts.Logger),
		httpmw.WithRequestID,
		httpmw.WithRecover(opts.Logger),
	), nil
}

func UseDiskStaticByEnv() bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("USE_DISK_STATIC"))) {
	case "1", "true", "yes":
		return true
	default:
		return false
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
