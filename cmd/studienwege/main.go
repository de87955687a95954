package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/common-nighthawk/go-figure"
	"github.com/rs/zerolog"

	"github.com/studienwege/go-client/api"
	"github.com/studienwege/go-client/i18n"
	"github.com/studienwege/go-client/internal/config"
	"github.com/studienwege/go-client/session"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Error running client: %s\n", err)
	}
	log.Printf("Client stopped\n")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Recovered from panic: %v\n", r)
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	c := config.New()
	displayAppname(c.GetAppName())

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	client, err := api.New(c, api.WithLogger(logger))
	if err != nil {
		return err
	}

	snapshots, err := session.NewFileSnapshotRepo(c.GetDataFolder(), c.GetSnapshotFile())
	if err != nil {
		return err
	}

	store, err := session.NewStore(client,
		session.WithSnapshots(snapshots),
		session.WithLogger(logger),
	)
	if err != nil {
		return err
	}
	client.SetTokenProvider(store)

	translator := i18n.NewTranslator(selectedLanguage(c))
	translator.Register("en", i18n.Bundle{
		"app.ready": "Connected to {{url}}",
	})
	translator.Register("de", i18n.Bundle{
		"app.ready": "Verbunden mit {{url}}",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if status, err := client.Health(ctx); err != nil {
		logger.Warn().Err(err).Str("base_url", client.BaseURL()).Msg("API health check failed")
	} else {
		logger.Info().Str("service", status.Service).Str("status", status.Status).Msg("API healthy")
	}

	scheduler := session.NewScheduler(store, c, session.WithSchedulerLogger(logger))
	done := make(chan struct{})
	go func() {
		defer close(done)
		scheduler.Run(ctx)
	}()

	logger.Info().Msg(translator.T("app.ready", map[string]string{"url": client.BaseURL()}))
	if user := store.User(); user != nil {
		logger.Info().Str("email", user.Email).Msg("session restored")
	}

	<-ctx.Done()
	<-done
	return nil
}

func selectedLanguage(c config.Config) string {
	if persisted := i18n.LoadLanguage(c.GetDataFolder()); persisted != "" {
		return persisted
	}
	return c.GetLanguage()
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
