package main

import (
	"time"

	_ "time/tzdata"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog/log"

	"github.com/tilemart/catalog-gateway/config"
	"github.com/tilemart/catalog-gateway/internal/app"
	"github.com/tilemart/catalog-gateway/internal/infrastructure/message-queue/kafka"
)

func main() {
	conf := config.CreateNewConfig()

	application := app.App{Config: conf}

	if conf.KafkaConfig.BrokerAddress != "" {
		application.KafkaProducer = kafka.CreateKafkaProducer(conf)
		defer application.KafkaProducer.Close()
	}

	s, err := gocron.NewScheduler()
	if err != nil {
		panic(err)
	}

	_, err = s.NewJob(
		gocron.DurationJob(
			60*time.Second,
		),
		gocron.NewTask(
			func() {
				if application.Service != nil {
					application.Service.ReportBackendHealth()
				}
			},
		),
	)
	if err != nil {
		panic(err)
	}

	s.Start()
	log.Info().Msg("starting catalog gateway")

	application.Start()
}
