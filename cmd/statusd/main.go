package main

import (
	"log"
	"net/http"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/hamed0406/statuscheck/internal/config"
	"github.com/hamed0406/statuscheck/internal/downdetector"
	"github.com/hamed0406/statuscheck/internal/httpapi"
	"github.com/hamed0406/statuscheck/internal/logging"
	"github.com/hamed0406/statuscheck/internal/probe"
	"github.com/hamed0406/statuscheck/internal/resolver"
	"github.com/hamed0406/statuscheck/internal/usage"
)

func main() {
	cfg := config.FromEnv()

	addr := pflag.StringP("addr", "a", cfg.Addr, "bind address for the status API")
	logDir := pflag.String("log-dir", cfg.LogDir, "directory for rotated JSON logs")
	noDD := pflag.Bool("no-downdetector", false, "skip the crowd-sourced source; probe directly")
	pflag.Parse()

	logger, err := logging.NewLogger(*logDir)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	var source resolver.Source
	if cfg.DowndetectorBase != "" && !*noDD {
		source = downdetector.New(logger, cfg.DowndetectorBase, cfg.Domains, cfg.CascadeTimeout)
	} else {
		logger.Info("downdetector_disabled")
	}

	counters := usage.New(logger)
	engine := resolver.New(logger, source, probe.New(cfg.ProbeTimeout), counters)
	api := httpapi.NewServer(logger, engine, counters)

	logger.Info("api_listen", zap.String("addr", *addr))
	if err := http.ListenAndServe(*addr, api.Router()); err != nil {
		log.Fatal(err)
	}
}
