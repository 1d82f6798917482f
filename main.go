package main

import (
	"context"
	"flag"
	"os"
	"os/signal"

	"github.com/apex/log"
	"github.com/apex/log/handlers/json"
	"github.com/apex/log/handlers/text"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

var sigint chan os.Signal

func waitShutdown(e *echo.Echo, idleConnsClosed chan<- interface{}) {
	defer close(idleConnsClosed)

	sigint = make(chan os.Signal, 1)
	signal.Notify(sigint, os.Interrupt)
	defer signal.Stop(sigint)

	<-sigint
	log.Info("received shutdown signal")

	idleError("HTTP server shutdown:", e.Shutdown(context.Background()))
}

func listenAndServe(service *Service, addr string, idleConnsClosed chan<- interface{}) {
	e := apiHandler(service)
	go waitShutdown(e, idleConnsClosed)

	e.Use(middleware.Logger())

	log.WithField("addr", addr).Info("listening")
	idleError("HTTP server end:", e.Start(addr))
}

// Open serves the API on addr until interrupted.
func Open(service *Service, addr string) {
	idleConnsClosed := make(chan interface{})
	go listenAndServe(service, addr, idleConnsClosed)
	<-idleConnsClosed
}

func setupLogging(config Config) {
	if config.LogJSON {
		log.SetHandler(json.New(os.Stderr))
	} else {
		log.SetHandler(text.New(os.Stderr))
	}
	if level, err := log.ParseLevel(config.LogLevel); err != nil {
		log.WithError(err).WithField("level", config.LogLevel).Warn("unknown log level")
	} else {
		log.SetLevel(level)
	}
}

func openArchive(config ArchiveConfig) (Archive, error) {
	if config.Backend == "postgres" {
		return openPostgres(config.DSN)
	}
	return openBadger(config.Path)
}

func openSessions(ctx context.Context, config SessionsConfig) (Sessions, error) {
	if config.Backend == "redis" {
		return openRedisSessions(ctx, config.RedisURL, config.TTL)
	}
	return newMemorySessions(), nil
}

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	addr := flag.String("addr", "", "listen address, overrides the config file")
	flag.Parse()

	config, err := loadConfig(*configPath)
	if err != nil {
		log.WithError(err).Fatal("failed to load config")
	}
	if *addr != "" {
		config.Addr = *addr
	}
	setupLogging(config)

	archive, err := openArchive(config.Archive)
	if err != nil {
		log.WithError(err).WithField("backend", config.Archive.Backend).Fatal("failed to open archive")
	}
	sessions, err := openSessions(context.Background(), config.Sessions)
	if err != nil {
		idleError("close archive:", archive.Close())
		log.WithError(err).WithField("backend", config.Sessions.Backend).Fatal("failed to open sessions")
	}
	service := NewService(archive, sessions)
	defer func() {
		idleError("close server:", service.Close())
	}()

	Open(service, config.Addr)
}
