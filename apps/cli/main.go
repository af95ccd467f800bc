package main

import (
	"log"
	"os"

	"github.com/trezcool/gpacalc/core"
	"github.com/trezcool/gpacalc/core/grading"
	"github.com/trezcool/gpacalc/services/logger"
)

var logger *log.Logger

func main() {
	logger = log.New(os.Stderr, "GPACALC : ", 0)
	conf := core.NewConfig()

	// the CLI works on request data only; no sheet storage needed
	svc := grading.NewService(nil, logsvc.NewConsoleLogger(logger, false), grading.OptionsFromConfig(conf))

	cli := commandLine{
		out: os.Stdout,
		svc: svc,
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("error: %s\n", err)
		}
		os.Exit(1)
	}
}
