package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ANIKETSHETTY47/construction-command-center/internal/cloud"
	"github.com/ANIKETSHETTY47/construction-command-center/internal/config"
	"github.com/ANIKETSHETTY47/construction-command-center/internal/database"
	"github.com/ANIKETSHETTY47/construction-command-center/internal/dataset"
	httpHandlers "github.com/ANIKETSHETTY47/construction-command-center/internal/http"
	"github.com/ANIKETSHETTY47/construction-command-center/internal/realtime"
	"github.com/ANIKETSHETTY47/construction-command-center/internal/service"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if err := config.Load(); err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}
	zerolog.SetGlobalLevel(config.LogLevel())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	catalog := dataset.Default()
	opts := config.FeedOptions()
	opts.Catalog = catalog
	feed := realtime.New(opts)
	if err := feed.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("feed start failed")
	}
	defer feed.Stop()

	deps := httpHandlers.Deps{Catalog: catalog, Feed: feed}

	if config.PersistHistory() {
		db, err := database.Connect()
		if err != nil {
			log.Fatal().Err(err).Msg("db connect failed")
		}
		defer db.Close()
		deps.History = service.New(db, config.MQTTTopicPrefix()).Repos
	}

	if config.UseCloudServices() {
		table, err := cloud.NewDynamoDBClient(ctx, config.AWSRegion(), config.AlertsTable())
		if err != nil {
			log.Fatal().Err(err).Msg("dynamodb init failed")
		}
		sns, err := cloud.NewSNSClient(ctx, config.AWSRegion(), config.SNSTopicArn())
		if err != nil {
			log.Fatal().Err(err).Msg("sns init failed")
		}
		deps.Alerts = service.NewAlertService(table, sns, config.AlertMinConfidence())

		s3, err := cloud.NewS3Client(ctx, config.AWSRegion(), config.S3Bucket())
		if err != nil {
			log.Fatal().Err(err).Msg("s3 init failed")
		}
		deps.Archive = service.NewArchiver(s3, config.MQTTTopicPrefix())
	}

	app := fiber.New()
	app.Get("/health", func(c *fiber.Ctx) error { return c.SendString("ok") })
	httpHandlers.Register(app, deps)

	go func() {
		<-ctx.Done()
		if err := app.Shutdown(); err != nil {
			log.Error().Err(err).Msg("shutdown failed")
		}
	}()

	addr := config.APIAddr()
	log.Info().Str("addr", addr).Msg("api listening")
	if err := app.Listen(addr); err != nil {
		log.Error().Err(err).Msg("server exit")
	}
}
