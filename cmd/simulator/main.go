package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ANIKETSHETTY47/construction-command-center/internal/broker"
	"github.com/ANIKETSHETTY47/construction-command-center/internal/cloud"
	"github.com/ANIKETSHETTY47/construction-command-center/internal/config"
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

	client, err := broker.Connect(config.MQTTBroker(), fmt.Sprintf("cc-simulator-%d", os.Getpid()))
	if err != nil {
		log.Fatal().Err(err).Msg("mqtt connect")
	}
	defer client.Disconnect(250)

	feed := realtime.New(config.FeedOptions())
	pub := broker.NewPublisher(client, config.MQTTTopicPrefix())
	feed.Subscribe(pub.Forward)

	if config.UseCloudServices() {
		alerts, archive, err := cloudServices(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("cloud services init failed")
		}
		feed.Subscribe(func(u realtime.Update) {
			if u.Kind != realtime.KindInsights && u.Kind != realtime.KindRefresh {
				return
			}
			octx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			if n, err := alerts.Process(octx, u.State.Predictions); err != nil {
				log.Error().Err(err).Msg("alert processing failed")
			} else if n > 0 {
				log.Info().Int("raised", n).Msg("alerts raised")
			}
			if _, err := archive.Snapshot(octx, u.State.Data); err != nil {
				log.Error().Err(err).Msg("snapshot archive failed")
			}
			if _, err := archive.Predictions(octx, u.State.LastUpdate, u.State.Predictions); err != nil {
				log.Error().Err(err).Msg("prediction archive failed")
			}
		})
		log.Info().Str("region", config.AWSRegion()).Msg("cloud services enabled")
	}

	if err := feed.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("feed start failed")
	}
	log.Info().Str("broker", config.MQTTBroker()).Str("prefix", config.MQTTTopicPrefix()).Msg("simulator running; Ctrl+C to stop")
	<-ctx.Done()
	feed.Stop()
	log.Info().Msg("simulation done")
}

func cloudServices(ctx context.Context) (*service.AlertService, *service.Archiver, error) {
	region := config.AWSRegion()
	table, err := cloud.NewDynamoDBClient(ctx, region, config.AlertsTable())
	if err != nil {
		return nil, nil, err
	}
	sns, err := cloud.NewSNSClient(ctx, region, config.SNSTopicArn())
	if err != nil {
		return nil, nil, err
	}
	s3, err := cloud.NewS3Client(ctx, region, config.S3Bucket())
	if err != nil {
		return nil, nil, err
	}
	return service.NewAlertService(table, sns, config.AlertMinConfidence()),
		service.NewArchiver(s3, config.MQTTTopicPrefix()), nil
}
