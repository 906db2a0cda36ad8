package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr             string        // API bind address, e.g., "127.0.0.1:8080" (Windows) or ":8080" (Docker)
	LogDir           string        // logs directory
	Domains          []string      // downdetector domain cascade order
	DowndetectorBase string        // endpoint template; empty disables the integration
	ProbeTimeout     time.Duration // active probe deadline
	CascadeTimeout   time.Duration // per-domain attempt deadline
}

func FromEnv() Config {
	// Best-effort .env for local runs; real deployments set the environment.
	_ = godotenv.Load()

	// Bind address (Windows-friendly default)
	addr := os.Getenv("ADDR")
	if addr == "" {
		addr = "127.0.0.1:8080"
	}

	// Logs
	logDir := os.Getenv("LOG_DIR")
	if logDir == "" {
		logDir = "logs"
	}

	// Cascade order; comma-separated, no spaces
	domains := []string{"com", "co.uk", "ca", "com.au", "in"}
	if v := os.Getenv("STATUS_DOMAINS"); v != "" {
		domains = strings.Split(v, ",")
	}

	// Empty template (or STATUS_DD_ENABLED=false) means the crowd-sourced
	// integration is not deployed and every query goes to the fallback path.
	base := "https://downdetector.%s/api/v1/service/%s/reports"
	if v, ok := os.LookupEnv("STATUS_DD_BASE"); ok {
		base = v
	}
	if v := os.Getenv("STATUS_DD_ENABLED"); v == "false" || v == "0" {
		base = ""
	}

	probeTimeout := 10 * time.Second
	if v := os.Getenv("PROBE_TIMEOUT_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			probeTimeout = time.Duration(ms) * time.Millisecond
		}
	}

	cascadeTimeout := 10 * time.Second
	if v := os.Getenv("CASCADE_TIMEOUT_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			cascadeTimeout = time.Duration(ms) * time.Millisecond
		}
	}

	return Config{
		Addr:             addr,
		LogDir:           logDir,
		Domains:          domains,
		DowndetectorBase: base,
		ProbeTimeout:     probeTimeout,
		CascadeTimeout:   cascadeTimeout,
	}
}
