// Package main is the entry point for the casting agency application
package main

import (
	"github.com/jrschumacher/casting-agency/cmd"
	"github.com/jrschumacher/casting-agency/internal/config"
	"github.com/jrschumacher/casting-agency/internal/logger"
)

func main() {
	cfg := config.Load()
	logger.InitWithFormat(cfg.LogLevel, cfg.LogFormat)

	cmd.Execute(cfg)
}
