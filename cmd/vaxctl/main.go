// Package main is the entry point for vaxctl, the portal's operations CLI.
// It runs schema migrations and seeds the admin account as explicit deploy steps.
package main

import (
	"os"

	"github.com/SheershikaSB/school-vaccination-portal/cmd/vaxctl/internal/commands"
	"github.com/SheershikaSB/school-vaccination-portal/internal/pkg/logger"
)

func main() {
	if err := commands.NewRootCmd().Execute(); err != nil {
		logger.Error().Err(err).Msg("vaxctl failed")
		os.Exit(1)
	}
}
