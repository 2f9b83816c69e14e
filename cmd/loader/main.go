package main

import (
	"context"
	"crypto/tls"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/woozymasta/geojson/internal/config"
	"github.com/woozymasta/geojson/internal/logger"
	"github.com/woozymasta/geojson/internal/processor"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	ConfigFile  string        `short:"c" long:"config"      env:"CONFIG_FILE"  description:"Path to configuration file" default:"config.yaml"`
	OutDir      string        `short:"o" long:"out-dir"     env:"OUT_DIR"      description:"Override output directory from configuration"`
	Limit       []string      `short:"l" long:"limit"       env:"LIMIT_NAMES"  description:"Limit processing to specific document names"`
	Concurrency int           `short:"p" long:"concurrency" env:"CONCURRENCY"  description:"Concurrency" default:"4"`
	Timeout     time.Duration `short:"t" long:"timeout"     env:"HTTP_TIMEOUT" description:"HTTP request timeout" default:"15s"`
	Force       bool          `short:"f" long:"force"       description:"Force overwrite of existing files"`
}

func main() {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	opts.Logger.Setup()

	cfg, err := config.Load(opts.ConfigFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	if opts.OutDir != "" {
		cfg.OutDir = opts.OutDir
	}

	docs, err := cfg.Select(opts.Limit)
	if err != nil {
		log.Error().Err(err).Msg("Document specified in --limit not found in configuration")
	}

	client := &http.Client{
		Transport: &http.Transport{
			TLSNextProto:        make(map[string]func(string, *tls.Conn) http.RoundTripper),
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 100,
		},
		Timeout: opts.Timeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info().
		Int("documents_total", len(cfg.Documents)).
		Int("documents_queued", len(docs)).
		Str("out_dir", cfg.OutDir).
		Msg("Starting loader")

	results := processor.ProcessAll(ctx, client, docs, cfg.OutDir, opts.Concurrency, opts.Force)

	counts := make(map[processor.Status]int)
	for _, res := range results {
		counts[res.Status]++
	}

	log.Info().
		Int("written", counts[processor.StatusWritten]).
		Int("skipped", counts[processor.StatusSkipped]).
		Int("invalid", counts[processor.StatusInvalid]).
		Int("failed", counts[processor.StatusFailed]).
		Msg("Loader finished")

	if counts[processor.StatusInvalid]+counts[processor.StatusFailed] > 0 {
		stop()
		os.Exit(1)
	}
}
