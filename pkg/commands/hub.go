package commands

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"tableflip.dev/eduhub/pkg/app"
	"tableflip.dev/eduhub/pkg/calendar"
	"tableflip.dev/eduhub/pkg/config"
	"tableflip.dev/eduhub/pkg/logging"
	"tableflip.dev/eduhub/pkg/store"
)

// env is everything a command needs to talk to the hub.
type env struct {
	Config   *config.Config
	Log      *zap.Logger
	Registry *prometheus.Registry
	Hub      *app.Service
}

func loadEnv() (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	log, err := logging.New(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	p, err := store.Load(cfg)
	if err != nil {
		return nil, err
	}
	reg := prometheus.NewRegistry()
	hub := &app.Service{
		Persistence:    p,
		Log:            log,
		Metrics:        app.NewMetrics(reg),
		UploadMinDelay: cfg.UploadMinDelay,
		UploadJitter:   cfg.UploadJitter,
	}
	log.Debug("hub ready",
		zap.String("path", cfg.BasePath()),
		zap.String("backend", string(cfg.Backend())),
	)
	return &env{Config: cfg, Log: log, Registry: reg, Hub: hub}, nil
}

func today() calendar.Date {
	return calendar.Today(time.Now(), time.Local)
}
