package main

import (
	"log/slog"
	"os"

	"github.com/programme-lv/unsolved/cfapi"
	"github.com/programme-lv/unsolved/conf"
	"github.com/programme-lv/unsolved/http"
	"github.com/programme-lv/unsolved/logger"
	"github.com/programme-lv/unsolved/metrics"
	"github.com/programme-lv/unsolved/unsolved/unsolvedhttp"
	"github.com/programme-lv/unsolved/unsolved/unsolvedsrvc"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var version = "dev"

func main() {
	cfg, err := conf.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	log := logger.New(os.Stdout, cfg.LogLevel, cfg.Env)
	slog.SetDefault(log)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	cfClient := cfapi.NewClient(
		cfapi.WithBaseURL(cfg.CfAPIBaseURL),
		cfapi.WithCount(cfg.SubmCount),
		cfapi.WithTimeout(cfg.HTTPTimeout),
	)
	unsolvedSrvc := unsolvedsrvc.NewUnsolvedSrvc(cfClient, m)
	unsolvedHandler := unsolvedhttp.NewUnsolvedHttpHandler(unsolvedSrvc, cfg.ProblemBaseURL, cfg.HandleCooldown, m)

	httpServer := http.NewHttpServer(unsolvedHandler, reg, http.Options{
		LogLevel:    cfg.LogLevel,
		Env:         cfg.Env,
		Version:     version,
		CorsOrigins: cfg.CorsOrigins,
	})

	log.Info("starting server", "address", cfg.HTTPAddr, "version", version)
	err = httpServer.Start(cfg.HTTPAddr)
	log.Error("server stopped", "error", err)
	os.Exit(1)
}
