package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/lmittmann/tint"

	"github.com/angas/elkvart-go/announce"
	"github.com/angas/elkvart-go/config"
	"github.com/angas/elkvart-go/database"
	"github.com/angas/elkvart-go/dayahead"
	"github.com/angas/elkvart-go/elprisetjustnu"
	"github.com/angas/elkvart-go/logging"
	"github.com/angas/elkvart-go/pricecache"
	"github.com/angas/elkvart-go/task"
	"github.com/angas/elkvart-go/types"
	"github.com/angas/elkvart-go/www"
)

var Version = "?.?.?"

func main() {
	defer func() {
		if err := recover(); err != nil {
			exitWithError(slog.Default(), fmt.Errorf("application panicked: %v", err))
		} else {
			slog.Default().Info("application is shutting down...")
		}
	}()

	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cnfg, err := config.Load(*configPath)
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}

	area, err := types.ParseArea(cnfg.Price.Area)
	if err != nil {
		panic(fmt.Sprintf("bad price area in config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	consoleHandler := tint.NewHandler(os.Stdout, &tint.Options{
		Level:      cnfg.Logging.GetConsoleLevel(),
		TimeFormat: time.RFC3339,
	})
	slog.New(consoleHandler).Debug("elkvart is starting...", slog.String("version", Version))

	db, err := database.New(ctx, cnfg.Database.Path)
	if err != nil {
		panic(fmt.Sprintf("failed to connect to database: %v", err))
	}
	defer db.Close()

	logger := slog.New(logging.NewMultiHandler(
		consoleHandler,
		logging.NewSQLiteHandler(db, cnfg.Logging.GetDbLevel(), cnfg.Logging.GetDbAttrsFormat())))
	slog.SetDefault(logger)

	// Now we can use the logger to log database operations into the database itself
	db.SetLogger(logger.With("module", "database"))

	cache := pricecache.New(cnfg.Price.GetCacheTtl())
	service := dayahead.New(
		logger.With("module", "dayahead"),
		cache,
		elprisetjustnu.New(cnfg.Price.GetFetchTimeout()))

	var announceFn func(dayahead.Snapshot) error
	if cnfg.Announce.Enabled() {
		announcer := announce.New(cnfg.Announce)
		if isDevMode() {
			logger.Info("dev mode, skipping MQTT connection")
		} else {
			if err := announcer.Connect(); err != nil {
				panic(fmt.Sprintf("MQTT connection error: %v", err))
			}
			defer announcer.Disconnect()
			announceFn = announcer.PublishCurrent
		}
	}

	server := www.StartServer(db, service, area, cnfg, Version)

	tasks := task.NewTasks(db, service, cache, area, announceFn, func() { server.BroadcastCurrent(ctx) }, cnfg)
	if isDevMode() {
		logger.Info("dev mode, skipping task scheduling")
	} else {
		tasks.RefreshTask()
		tasks.Run()
		defer tasks.Stop()
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case <-ctx.Done():
			logger.Info("main context done")
		case sig := <-sigCh:
			logger.Info("received signal", slog.Any("signal", sig))
			cancel()
		}
	}()

	server.Run(ctx)
}

func isDevMode() bool {
	return strings.EqualFold(os.Getenv("APP_ENV"), "development")
}

func exitWithError(logger *slog.Logger, err error) {
	if err != nil {
		logger.Error("application shutting down with error", slog.Any("error", err))
	}

	time.Sleep(2 * time.Second)
	os.Exit(1)
}
