package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/trezcool/gpacalc/apps/api/echo"
	"github.com/trezcool/gpacalc/core"
	"github.com/trezcool/gpacalc/core/grading"
	"github.com/trezcool/gpacalc/services/logger"
	"github.com/trezcool/gpacalc/storage/database/inmem"
)

const shutdownTimeout = 10 * time.Second

func main() {
	conf := core.NewConfig()

	std := log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	logger := logsvc.New(std, conf)

	// set up storage
	db, err := inmemdb.Open(conf.Grading.MaxSheets)
	if err != nil {
		logger.Fatal("opening sheet storage", err)
	}

	// set up services
	gradingSvc := grading.NewService(inmemdb.NewSheetRepository(db), logger, grading.OptionsFromConfig(conf))

	// start API server
	app := echoapi.NewServer(
		&echoapi.Options{
			Address:    conf.Server.Address(),
			AppName:    conf.AppName,
			Debug:      conf.Debug,
			Logger:     logger,
			GradingSvc: gradingSvc,
		},
	)
	go app.Start()
	logger.Info("server started", map[string]interface{}{"address": conf.Server.Address(), "env": conf.Env})

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	<-shutdown

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := app.Stop(ctx); err != nil {
		logger.Error("graceful shutdown failed", err)
	}
	if rl, ok := logger.(*logsvc.RollbarLogger); ok {
		rl.Close()
	}
}
