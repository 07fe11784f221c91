package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/nhdewitt/memwatch/internal/api"
	"github.com/nhdewitt/memwatch/internal/counters"
	"github.com/nhdewitt/memwatch/internal/platform"
	"github.com/nhdewitt/memwatch/internal/report"
	"github.com/nhdewitt/memwatch/internal/sampler"
)

// Config holds the runtime configuration.
type Config struct {
	Interval time.Duration
	Listen   string
	LogLevel string
}

func main() {
	_ = godotenv.Load()
	cfg := loadConfig()
	setupLogging(cfg.LogLevel)

	host, _ := os.Hostname()
	info := platform.Detect()
	logrus.WithFields(logrus.Fields{
		"host":     host,
		"os":       info.OS,
		"kernel":   info.KernelVersion,
		"interval": cfg.Interval,
	}).Info("memwatch starting")
	if !info.HasPressureSysctl && !info.HasPSI {
		logrus.Warn("no kernel pressure signal available, severity will always read normal")
	}

	s := sampler.New(counters.NewSource(), report.NewRunner(), cfg.Interval)

	sub := s.Subscribe()
	go logSamples(sub)

	s.Start()
	defer s.Stop()

	var srv *api.Server
	if cfg.Listen != "" {
		srv = api.NewServer(s)
		go func() {
			if err := srv.Start(cfg.Listen); err != nil {
				logrus.WithError(err).Error("status server exited")
			}
		}()
		logrus.WithField("listen", cfg.Listen).Info("status API listening")
	}

	waitForSignal()

	logrus.Info("shutting down")
	if srv != nil {
		if err := srv.Shutdown(); err != nil {
			logrus.WithError(err).Warn("status server shutdown")
		}
	}
	s.Unsubscribe(sub)
}

func loadConfig() Config {
	cfg := Config{
		Interval: sampler.DefaultInterval,
		Listen:   os.Getenv("MEMWATCH_LISTEN"),
		LogLevel: os.Getenv("MEMWATCH_LOG_LEVEL"),
	}

	if raw := os.Getenv("MEMWATCH_INTERVAL"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil && d > 0 {
			cfg.Interval = d
		} else {
			logrus.WithField("value", raw).Warn("invalid MEMWATCH_INTERVAL, using default")
		}
	}

	return cfg
}

func setupLogging(level string) {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if level == "" {
		return
	}
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		logrus.WithField("value", level).Warn("invalid MEMWATCH_LOG_LEVEL, using info")
		return
	}
	logrus.SetLevel(parsed)
}

func waitForSignal() {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
}
