package main

import (
	"context"

	"github.com/Sameer-09816/api/internal/app"
	log "github.com/sirupsen/logrus"
)

func main() {
	application, err := app.New()
	if err != nil {
		log.WithField("error", err).Fatal("failed to initialize application")
	}

	if err := application.Run(context.Background()); err != nil {
		log.WithField("error", err).Fatal("application exited with error")
	}
}
