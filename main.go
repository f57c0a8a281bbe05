package main

import (
	"fmt"
	"os"

	"github.com/jkallio/pomodoro-cli/internal/cli"
	"github.com/jkallio/pomodoro-cli/internal/config"
	"github.com/jkallio/pomodoro-cli/internal/output"
)

func main() {
	if err := run(); err != nil {
		output.NewFormatter(os.Stderr, "").Error(err.Error())
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	deps := &cli.Dependencies{Config: cfg}
	return cli.NewRootCmd(deps).Execute()
}
