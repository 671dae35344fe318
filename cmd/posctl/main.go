package main

import (
	"fmt"
	"os"

	"burger_pos/internal/app"
	"burger_pos/internal/config"
	"burger_pos/internal/logger"
)

func main() {
	if err := newRootCmd(buildApp, config.Load).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// buildApp connects to the same stores the server uses. The CLI logs
// warnings and above only so its own output stays readable.
func buildApp() (*app.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	zl, err := logger.New(cfg.AppEnv, "warn")
	if err != nil {
		return nil, err
	}
	return app.New(cfg, zl)
}
