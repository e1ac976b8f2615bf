package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/alimikegami/laundry-payment-service/config"
	"github.com/alimikegami/laundry-payment-service/internal/app"
	"github.com/rs/zerolog/log"
)

func main() {
	app.InitLogger()

	config := config.CreateNewConfig()

	a := app.App{Config: config}
	if err := a.Setup(); err != nil {
		log.Fatal().Err(err).Msg("Failed to set up application")
	}

	go func() {
		if err := a.Start(); err != nil {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down")
	if err := a.StopServer(); err != nil {
		log.Error().Err(err).Msg("Failed to shut down cleanly")
	}
}
