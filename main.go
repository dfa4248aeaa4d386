package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/Givikap120/droidguard/app/analysis"
	"github.com/Givikap120/droidguard/app/settings"
	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "settings file (YAML)")

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [-config settings.yaml] job.yaml...\n", os.Args[0])
		flag.PrintDefaults()
	}

	flag.Parse()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	s, err := settings.Load(*configPath)
	if err != nil {
		log.WithError(err).Error("unable to load settings")
		return 1
	}

	log.SetLevel(s.Level())

	if flag.NArg() == 0 {
		flag.Usage()
		return 2
	}

	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: dsn}); err != nil {
			log.WithError(err).Warn("sentry disabled")
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	var cache *analysis.Cache

	if s.CachePath != "" {
		if cache, err = analysis.OpenCache(s.CachePath); err != nil {
			log.WithError(err).Warn("running without result cache")
			cache = nil
		} else {
			defer cache.Close()
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	runner := analysis.NewRunner(s, cache, log)

	log.WithFields(logrus.Fields{
		"run_id":  runner.RunID(),
		"jobs":    flag.NArg(),
		"workers": s.Workers,
	}).Info("starting analysis")

	reports := runner.Run(ctx, flag.Args())

	analysis.RenderReports(os.Stdout, reports)

	for _, r := range reports {
		if r.Err != nil {
			return 1
		}
	}

	return 0
}
