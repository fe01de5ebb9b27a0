package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/profile"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/andersy005/covidtrend"
	"github.com/andersy005/covidtrend/internal/config"
	"github.com/andersy005/covidtrend/internal/store/sqlite"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("unable to load configuration")
	}
	setupLogging(cfg.LogLevel)

	if os.Getenv("PROFILE") != "" {
		defer profile.Start(profile.ProfilePath(".")).Stop()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	report, err := covidtrend.Run(ctx, cfg, log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("run failed")
	}

	if err := report.RenderHTML(cfg.ReportPath); err != nil {
		log.Fatal().Err(err).Str("path", cfg.ReportPath).Msg("unable to render report")
	}
	log.Info().Str("path", cfg.ReportPath).Msg("wrote report")

	if cfg.JSONPath != "" {
		if err := report.ExportJSON(cfg.JSONPath); err != nil {
			log.Fatal().Err(err).Str("path", cfg.JSONPath).Msg("unable to export report")
		}
		log.Info().Str("path", cfg.JSONPath).Msg("wrote json export")
	}

	if cfg.SQLitePath != "" {
		if err := writeStore(ctx, cfg.SQLitePath, report); err != nil {
			log.Fatal().Err(err).Str("path", cfg.SQLitePath).Msg("unable to write sqlite artifact")
		}
		log.Info().Str("path", cfg.SQLitePath).Msg("wrote sqlite artifact")
	}
}

func writeStore(ctx context.Context, path string, report *covidtrend.Report) error {
	s, err := sqlite.New(path)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.InsertObservations(ctx, report.Observations); err != nil {
		return err
	}
	if err := s.InsertSummary(ctx, "global_daily", report.GlobalDaily); err != nil {
		return err
	}
	if err := s.InsertSummary(ctx, "global_daily_change", report.GlobalDailyChange); err != nil {
		return err
	}
	if err := s.InsertSummary(ctx, "top_countries", report.TopCountries); err != nil {
		return err
	}
	if err := s.InsertSummary(ctx, "country_daily", report.CountryDaily); err != nil {
		return err
	}
	if err := s.InsertForecast(ctx, "confirmed", report.ConfirmedForecast); err != nil {
		return err
	}
	return s.InsertForecast(ctx, "deaths", report.DeathsForecast)
}

func setupLogging(logLevel string) {
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	log.Logger = log.Output(output)

	level, err := zerolog.ParseLevel(logLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
}
